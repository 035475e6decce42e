package router

import (
	"github.com/blues/fes/internal/handler"
	"github.com/blues/fes/internal/logic"
	"github.com/blues/fes/internal/notify"
	"github.com/blues/fes/internal/ws"
	"github.com/gin-gonic/gin"
)

func Setup(lifecycle *logic.Lifecycle, dispatcher *notify.Dispatcher, hub *ws.Hub) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "fundraising-escrow-service",
		})
	})

	// 事件推送
	r.GET("/ws", hub.HandleWebSocket)

	// API版本组
	v1 := r.Group("/api/v1")
	{
		campaignHandler := handler.NewCampaignHandler(lifecycle, dispatcher)
		campaigns := v1.Group("/campaigns")
		{
			campaigns.POST("", campaignHandler.CreateCampaign)
			campaigns.GET("", campaignHandler.GetCampaigns)
			campaigns.GET("/count", campaignHandler.GetCampaignCount)
			campaigns.GET("/:id", campaignHandler.GetCampaign)
			campaigns.POST("/:id/donations", campaignHandler.Donate)
			campaigns.GET("/:id/donations/:address", campaignHandler.GetDonation)
			campaigns.POST("/:id/withdraw", campaignHandler.Withdraw)
			campaigns.POST("/:id/refund", campaignHandler.Refund)
			campaigns.GET("/:id/events", campaignHandler.GetEvents)
		}
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
