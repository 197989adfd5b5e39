package routes

import (
	"github.com/fabiomatricardi/cm-log-system/configs"
	"github.com/fabiomatricardi/cm-log-system/controllers"
	"github.com/fabiomatricardi/cm-log-system/middlewares"
	"github.com/fabiomatricardi/cm-log-system/repository"
	"github.com/fabiomatricardi/cm-log-system/services"
	"github.com/fabiomatricardi/cm-log-system/ws"

	"github.com/gin-gonic/gin"
)

// Services is everything the HTTP layer needs, built once at startup.
type Services struct {
	Logs          *services.LogService
	Submissions   *services.SubmissionService
	Attachments   *services.AttachmentStorage
	Auth          *services.AuthService
	Recipients    *services.RecipientService
	Exports       *services.ExportService
	Notifications *repository.NotificationRepository
	Hub           *ws.LogHub
	Departments   configs.Departments
	NetworkURL    string
}

func RegisterRoutes(r *gin.Engine, s Services, cfg *configs.Config) {
	r.Use(middlewares.CORSMiddleware(cfg.CORSOrigins))
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Stored attachments (photos, PDFs)
	r.Static("/attachments", cfg.AttachmentsDir)

	// Controllers
	logCtrl := controllers.NewLogEntryController(s.Logs, s.Submissions)
	uploadCtrl := controllers.NewUploadController(s.Attachments, cfg.MaxAttachments)
	authCtrl := controllers.NewAuthController(s.Auth)
	adminCtrl := controllers.NewAdminController(s.Recipients, s.Exports, s.Notifications)
	infoCtrl := controllers.NewInfoController(cfg, s.Departments, s.NetworkURL)

	r.GET("/info", infoCtrl.Info)
	r.GET("/manual", infoCtrl.Manual)

	// Log entries
	logs := r.Group("/logs")
	{
		logs.GET("", logCtrl.List)
		logs.GET("/ids", logCtrl.Options)
		logs.GET("/:id", logCtrl.Detail)
		logs.POST("/:dept", logCtrl.Submit) // dept: inst, icss
		logs.PATCH("/:id", logCtrl.Update)
		logs.DELETE("/:id", logCtrl.Delete)
	}

	// Mobile upload page
	r.POST("/uploads", uploadCtrl.Upload)

	// Live table refresh
	if s.Hub != nil {
		r.GET("/ws/logs", s.Hub.HandleWebSocket)
	}

	// Auth
	a := r.Group("/auth")
	{
		a.POST("/login", authCtrl.Login)
		a.GET("/me", middlewares.AuthMiddleware(cfg.JWTSecret), authCtrl.Me)
	}

	// Admin panel (admin only)
	admin := r.Group("/admin", middlewares.AuthMiddleware(cfg.JWTSecret, "admin"))
	{
		admin.GET("/recipients/:dept", adminCtrl.Recipients)
		admin.PUT("/recipients/:dept", adminCtrl.SaveRecipients)
		admin.GET("/export", adminCtrl.Export)
		admin.GET("/notifications", adminCtrl.Notifications)
	}
}
