package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/pawtrack-backend-go/internal/config"
	"github.com/jengzang/pawtrack-backend-go/internal/handler"
	"github.com/jengzang/pawtrack-backend-go/internal/middleware"
	"github.com/jengzang/pawtrack-backend-go/internal/service"
	"go.uber.org/zap"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, app *service.App, logger *zap.Logger) *gin.Engine {
	if !cfg.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.Recovery(logger), middleware.Logger(logger))
	r.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window()))

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Pawtrack Backend API is running",
		})
	})

	svcs := service.NewServices(app)
	entries := handler.NewEntryHandler(svcs.Entries, svcs.Stats)
	stats := handler.NewStatsHandler(svcs.Stats)
	grid := handler.NewGridHandler(svcs.Achievements)
	profile := handler.NewProfileHandler(svcs.Profile)
	notes := handler.NewNoteHandler(svcs.Notes)
	backup := handler.NewBackupHandler(svcs.Backup)
	auth := handler.NewAuthHandler(cfg.JWTSecret, cfg.AccessKey, nil)

	requireAuth := middleware.JWTAuth(cfg.JWTSecret, cfg.AuthEnabled)

	// API 路由组
	api := r.Group("/api/v1")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
		api.POST("/auth/token", auth.IssueToken)

		// 记录
		api.GET("/entries", entries.ListEntries)
		api.GET("/entries/recent", entries.RecentEntries)
		api.GET("/entries/:id", entries.GetEntry)
		api.POST("/entries", requireAuth, entries.CreateEntry)
		api.DELETE("/entries/:id", requireAuth, entries.DeleteEntry)
		api.DELETE("/entries", requireAuth, entries.ClearEntries)
		api.GET("/foods", entries.ListFoods)

		// 统计
		statsGroup := api.Group("/stats")
		{
			statsGroup.GET("", stats.GetStatistics)
			statsGroup.GET("/timeseries", stats.GetTimeSeries)
			statsGroup.GET("/correlations", stats.GetCorrelations)
			statsGroup.GET("/report", stats.GetReport)
		}

		// 网格与成就
		api.GET("/grid", grid.GetGridCells)
		api.GET("/grid/cells/:id", grid.GetGridCell)
		api.POST("/grid/placement", grid.FindPlacement)
		api.GET("/achievements", grid.GetAchievements)

		// 档案
		api.GET("/profile", profile.GetProfile)
		api.PUT("/profile", requireAuth, profile.UpdateProfile)
		api.GET("/profile/reminders", profile.GetReminders)

		// 备注
		api.GET("/notes", notes.ListNotes)
		api.POST("/notes", requireAuth, notes.AddNote)
		api.DELETE("/notes", requireAuth, notes.RemoveNote)

		// 备份
		api.GET("/backup", requireAuth, backup.ExportBackup)
		api.POST("/backup", requireAuth, backup.ImportBackup)
	}

	return r
}
