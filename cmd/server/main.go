package main

import (
	"github.com/blues/fes/internal/clock"
	"github.com/blues/fes/internal/config"
	"github.com/blues/fes/internal/database"
	"github.com/blues/fes/internal/logger"
	"github.com/blues/fes/internal/logic"
	"github.com/blues/fes/internal/notify"
	"github.com/blues/fes/internal/router"
	"github.com/blues/fes/internal/scheduler"
	"github.com/blues/fes/internal/token"
	"github.com/blues/fes/internal/ws"
	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	initLogger(cfg.Log)
	defer logger.Sync()

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// 初始化代币网关
	gateway, err := token.Init(cfg.Chain)
	if err != nil {
		logger.Fatal("Failed to initialize token gateway: %v", err)
	}

	// 初始化事件推送
	hub := ws.NewHub()
	go hub.Run()

	dispatcher, err := notify.NewDispatcher(db, hub)
	if err != nil {
		logger.Fatal("Failed to initialize event dispatcher: %v", err)
	}
	defer dispatcher.Release()

	// 初始化生命周期引擎
	clk := clock.New()
	lifecycle := logic.NewLifecycle(db, clk, gateway, gateway.CustodyAddress(), dispatcher)

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(lifecycle, dispatcher, hub)

	// 启动定时任务
	manager := scheduler.Start(db, clk, dispatcher, cfg)
	defer manager.Stop()

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}

// initLogger 按配置初始化默认日志器
func initLogger(cfg config.LogConfig) {
	level := logger.ParseLogLevel(cfg.Level)

	if cfg.Output == "file" {
		l, err := logger.NewWithFileRotation(level, cfg.File)
		if err != nil {
			logger.Fatal("Failed to initialize file logger: %v", err)
		}
		logger.SetDefaultLogger(l)
		return
	}

	l, err := logger.New(level)
	if err != nil {
		logger.Fatal("Failed to initialize logger: %v", err)
	}
	logger.SetDefaultLogger(l)
}
