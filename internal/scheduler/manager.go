package scheduler

import (
	"github.com/blues/fes/internal/clock"
	"github.com/blues/fes/internal/config"
	"github.com/blues/fes/internal/logger"
	"github.com/blues/fes/internal/logic"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// Manager 定时任务管理器
type Manager struct {
	scheduler gocron.Scheduler
	db        *gorm.DB
	clock     clock.Clock
	notifier  logic.Notifier
	config    *config.Config
}

// NewManager 创建定时任务管理器
func NewManager(db *gorm.DB, clk clock.Clock, notifier logic.Notifier, cfg *config.Config) *Manager {
	s, err := gocron.NewScheduler()
	if err != nil {
		logger.Fatal("Failed to create scheduler: %v", err)
	}

	return &Manager{
		scheduler: s,
		db:        db,
		clock:     clk,
		notifier:  notifier,
		config:    cfg,
	}
}

// Start 启动定时任务
func Start(db *gorm.DB, clk clock.Clock, notifier logic.Notifier, cfg *config.Config) *Manager {
	manager := NewManager(db, clk, notifier, cfg)
	manager.RegisterJobs()
	manager.scheduler.Start()
	logger.Info("Scheduler started successfully")
	return manager
}

// RegisterJobs 注册所有任务
func (m *Manager) RegisterJobs() {
	m.registerCampaignFinishJob(NewCampaignFinishJob(m.db, m.clock, m.notifier, m.config))
}

// registerCampaignFinishJob 注册活动收尾任务
func (m *Manager) registerCampaignFinishJob(job *CampaignFinishJob) {
	_, err := m.scheduler.NewJob(
		job.GetSchedule(),
		gocron.NewTask(job.Execute),
		gocron.WithName(job.GetName()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		logger.Error("Failed to register job %s: %v", job.GetName(), err)
	}
}

// Stop 停止定时任务
func (m *Manager) Stop() {
	if err := m.scheduler.Shutdown(); err != nil {
		logger.Error("Failed to shutdown scheduler: %v", err)
	}
	logger.Info("Scheduler stopped")
}
