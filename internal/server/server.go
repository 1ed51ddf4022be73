// Package server wires the HTTP surface: routing, middleware and the
// lifecycle of the underlying http.Server.
package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/baatolabs/baatometrics-api/internal/config"
	"github.com/baatolabs/baatometrics-api/internal/handlers"
	"github.com/baatolabs/baatometrics-api/internal/invite"
	"github.com/baatolabs/baatometrics-api/internal/logger"
	"github.com/baatolabs/baatometrics-api/internal/middleware/requests"
	"github.com/baatolabs/baatometrics-api/internal/store"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	config     *config.Config
	stores     *store.Stores
	shortLinks *invite.ShortLinks
}

// New creates a new server instance
func New(cfg *config.Config, stores *store.Stores, shortLinks *invite.ShortLinks) *Server {
	return &Server{
		config:     cfg,
		stores:     stores,
		shortLinks: shortLinks,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	router := s.setupRouter()

	s.httpServer = &http.Server{
		Addr:    ":" + s.config.Server.Port,
		Handler: router,

		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Get().Info("Starting HTTP server", "port", s.config.Server.Port, "read_only", s.stores.Records.ReadOnly())

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	logger.Get().Info("Shutting down HTTP server...")

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}

	return nil
}

// setupRouter configures the HTTP router with middleware and routes
func (s *Server) setupRouter() *gin.Engine {
	gin.SetMode(s.config.Server.GinMode)

	router := gin.New()

	router.Use(requests.Log())
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	origins := strings.Split(s.config.CORS.AllowOrigins, ",")
	if len(origins) == 1 && origins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
		corsConfig.AllowCredentials = true
	}
	corsConfig.AllowMethods = strings.Split(s.config.CORS.AllowMethods, ",")
	corsConfig.AllowHeaders = strings.Split(s.config.CORS.AllowHeaders, ",")
	router.Use(cors.New(corsConfig))

	recordHandler := handlers.NewRecordHandler(s.stores.Records, s.stores.Images)
	imageHandler := handlers.NewImageHandler(s.stores.Images, s.config.Upload.MaxFileSize)
	shareHandler := handlers.NewShareHandler(s.stores.Shares, s.stores.Records, s.stores.Images, s.stores.Session)
	sessionHandler := handlers.NewSessionHandler(s.stores.Session)
	inviteHandler := handlers.NewInviteHandler(s.stores.Session, s.shortLinks, s.config)
	notificationHandler := handlers.NewNotificationHandler(s.stores.Notifications)
	reportHandler := handlers.NewReportHandler(s.stores.Reports)

	// Health check
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":  "BaatoMetrics API is running",
			"status":   "healthy",
			"readOnly": s.stores.Records.ReadOnly(),
		})
	})

	// Invitation short links live outside /api so they stay typeable
	router.GET("/j/:code", inviteHandler.ResolveShortLink)

	s.setupAPIRoutes(router,
		recordHandler, imageHandler, shareHandler,
		sessionHandler, inviteHandler, notificationHandler, reportHandler)

	return router
}

// setupAPIRoutes configures all API routes
func (s *Server) setupAPIRoutes(
	router *gin.Engine,
	recordHandler *handlers.RecordHandler,
	imageHandler *handlers.ImageHandler,
	shareHandler *handlers.ShareHandler,
	sessionHandler *handlers.SessionHandler,
	inviteHandler *handlers.InviteHandler,
	notificationHandler *handlers.NotificationHandler,
	reportHandler *handlers.ReportHandler,
) {
	api := router.Group("/api")
	{
		records := api.Group("/records")
		{
			records.GET("", recordHandler.GetAllRecords)
			records.POST("", recordHandler.CreateRecord)
			records.GET("/stats", recordHandler.GetStats)
			records.GET("/:id", recordHandler.GetRecord)
			records.PATCH("/:id", recordHandler.UpdateRecord)
			records.DELETE("/:id", recordHandler.DeleteRecord)
		}

		images := api.Group("/images")
		{
			images.GET("", imageHandler.ListImages)
			images.POST("/upload", imageHandler.UploadImages)
			images.GET("/:id", imageHandler.GetImage)
			images.DELETE("/:id", imageHandler.DeleteImage)
		}

		shares := api.Group("/shares")
		{
			shares.POST("", shareHandler.CreateShare)
			shares.GET("/:id", shareHandler.GetShare)
		}

		auth := api.Group("/auth")
		{
			auth.POST("/login", sessionHandler.Login)
			auth.POST("/logout", sessionHandler.Logout)
			auth.GET("/me", sessionHandler.Me)
			auth.PATCH("/me", sessionHandler.UpdateProfile)
		}

		team := api.Group("/team")
		{
			team.GET("/members", sessionHandler.ListMembers)
			team.PATCH("/members/:id/role", sessionHandler.UpdateMemberRole)
			team.DELETE("/members/:id", sessionHandler.RemoveMember)
		}

		api.POST("/invite", inviteHandler.SendInvite)

		notifications := api.Group("/notifications")
		{
			notifications.GET("", notificationHandler.ListNotifications)
			notifications.POST("", notificationHandler.CreateNotification)
			notifications.PATCH("/read-all", notificationHandler.MarkAllNotificationsRead)
			notifications.PATCH("/:id/read", notificationHandler.MarkNotificationRead)
			notifications.DELETE("/:id", notificationHandler.DeleteNotification)
			notifications.DELETE("", notificationHandler.ClearNotifications)
		}

		reports := api.Group("/reports")
		{
			reports.GET("", reportHandler.ListReports)
			reports.POST("", reportHandler.CreateReport)
		}
	}
}
