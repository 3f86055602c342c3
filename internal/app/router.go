package app

import (
	"rebirth_backend/docs"
	"rebirth_backend/internal/config"
	"rebirth_backend/internal/middleware"
	"rebirth_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(不区分设备)
	router.GET("/health", c.health.HealthCheck)
	router.GET("/api/worker/status", c.worker.GetStatus)

	// 2. 设备作用域路由
	api := router.Group("/api")
	api.Use(middleware.DeviceMiddleware())
	{
		a.registerStreakRoutes(api, c)
		a.registerTrackingRoutes(api, c)
		a.registerNotificationRoutes(api, c)
		a.registerWorkerRoutes(api, c)
	}
}

func (a *App) registerStreakRoutes(api *gin.RouterGroup, c *controllers) {
	api.GET("/streak", c.streak.GetStreak)
	api.PUT("/streak/quit-date", c.streak.SetQuitDate)
	api.POST("/streak/reset", c.streak.Reset)

	api.GET("/achievements", c.achievement.ListAchievements)
	api.GET("/achievements/next", c.achievement.NextAchievement)
	api.GET("/achievements/unlocked", c.achievement.UnlockedAchievements)
}

func (a *App) registerTrackingRoutes(api *gin.RouterGroup, c *controllers) {
	api.POST("/checkins", c.checkin.CheckInToday)
	api.GET("/checkins/today", c.checkin.GetToday)
	api.GET("/checkins/stats", c.checkin.GetStats)
	api.GET("/checkins/recent", c.checkin.GetRecent)

	api.GET("/economics", c.economics.GetEconomics)
	api.PUT("/economics", c.economics.UpdateEconomics)
	api.POST("/economics/reset", c.economics.ResetEconomics)
	api.GET("/economics/savings", c.streak.GetSavings)

	api.GET("/goals", c.goal.ListGoals)
	api.POST("/goals", c.goal.AddGoal)
	api.DELETE("/goals/:id", c.goal.RemoveGoal)
	api.POST("/goals/image", c.goal.UploadImage)

	api.GET("/profile/name", c.user.GetName)
	api.PUT("/profile/name", c.user.SetName)
	api.GET("/flags/:key", c.user.GetFlag)
	api.PUT("/flags/:key", c.user.SetFlag)
}

func (a *App) registerNotificationRoutes(api *gin.RouterGroup, c *controllers) {
	api.GET("/notifications/settings", c.notification.GetSettings)
	api.PUT("/notifications/settings", c.notification.UpdateSettings)
	api.POST("/notifications/permission", c.notification.SetPermission)
	api.POST("/notifications/subscription", c.notification.Subscribe)
	api.DELETE("/notifications/subscription", c.notification.Unsubscribe)
	api.POST("/notifications/test", c.notification.SendTest)
}

func (a *App) registerWorkerRoutes(api *gin.RouterGroup, c *controllers) {
	api.POST("/worker/message", c.worker.PostMessage)
	api.POST("/worker/sync", c.worker.RegisterSync)
}
