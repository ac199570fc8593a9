// @title           LabelWorks Backend API
// @version         1.0.0
// @description     Backend API for the LabelWorks marketing site and client portal. Handles pricing estimates, lead capture, project file management, and the client dashboard.

// @contact.name   API Support
// @contact.email  support@example.com

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"labelworks-backend/internal/config"
	"labelworks-backend/internal/dashboard"
	"labelworks-backend/internal/database"
	"labelworks-backend/internal/handlers"
	"labelworks-backend/internal/logger"
	"labelworks-backend/internal/middleware"
	"labelworks-backend/internal/supabase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	logger.Init(cfg.LogLevel, cfg.Environment)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.DatabaseURL == "" {
		logger.Log.Warn("DATABASE_URL not set, migrations and database operations will be skipped")
	}

	supabaseClient, err := supabase.NewClient(cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to initialize supabase client")
	}

	storageClient, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabasePublishableKey, cfg.SupabaseStorageBucket)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to initialize storage client")
	}

	realtimeClient := supabase.NewRealtimeClient(supabaseClient.Supabase)

	// Handlers tolerate a nil database client and answer 500 on the routes
	// that need it, so a misconfigured deploy still serves /health and
	// pricing estimates.
	var dbClient *supabase.DatabaseClient
	if cfg.DatabaseURL != "" {
		dbClient, err = supabase.NewDatabaseClient(cfg.DatabaseURL)
		if err != nil {
			logger.Log.WithError(err).Warn("failed to initialize database client, database operations disabled")
			dbClient = nil
		} else {
			defer dbClient.Close()

			migrator, err := database.NewMigrator(cfg.DatabaseURL)
			if err != nil {
				logger.Log.WithError(err).Warn("failed to initialize migrator")
			} else {
				defer migrator.Close()
				if err := migrator.Run(); err != nil {
					logger.Log.WithError(err).Warn("migration failed")
				} else {
					logger.Log.Info("migrations completed")
				}
			}
		}
	}

	var aggregator *dashboard.Aggregator
	if dbClient != nil {
		aggregator = dashboard.NewAggregator(dbClient, cfg.RecentPerProject, cfg.RecentFeedCap)
	}

	pricingHandler := handlers.NewPricingHandler()
	leadsHandler := handlers.NewLeadsHandler(dbClient)
	projectsHandler := handlers.NewProjectsHandler(dbClient, storageClient, realtimeClient)
	filesHandler := handlers.NewFilesHandler(dbClient, storageClient, realtimeClient, cfg.MaxUploadSizeMB)
	dashboardHandler := handlers.NewDashboardHandler(aggregator)

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	// Health check (no auth)
	router.GET("/health", handlers.HealthHandler)

	// Public routes: pricing estimator and lead forms
	public := router.Group("/api/v1")
	public.POST("/pricing/estimate", pricingHandler.Estimate)

	forms := public.Group("")
	forms.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))
	forms.POST("/contact", leadsHandler.SubmitContact)
	forms.POST("/join", leadsHandler.SubmitJoin)

	// Authenticated client portal
	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg))

	api.POST("/projects", projectsHandler.CreateProject)
	api.GET("/projects", projectsHandler.ListProjects)
	api.GET("/projects/:project_id", projectsHandler.GetProject)
	api.DELETE("/projects/:project_id", projectsHandler.DeleteProject)

	api.POST("/projects/:project_id/files", filesHandler.Upload)
	api.GET("/projects/:project_id/files", filesHandler.ListFiles)
	api.DELETE("/projects/:project_id/files/:file_id", filesHandler.DeleteFile)

	api.GET("/dashboard", dashboardHandler.GetDashboard)

	// Admin lead review
	admin := api.Group("/admin")
	admin.Use(middleware.RequireAdmin(cfg))

	admin.GET("/contacts", leadsHandler.ListContacts)
	admin.GET("/contacts/export", leadsHandler.ExportContactsCSV)
	admin.GET("/contacts/emails", leadsHandler.ListContactEmails)
	admin.DELETE("/contacts/:lead_id", leadsHandler.DeleteContact)

	admin.GET("/join-requests", leadsHandler.ListJoinRequests)
	admin.GET("/join-requests/export", leadsHandler.ExportJoinRequestsCSV)
	admin.GET("/join-requests/emails", leadsHandler.ListJoinRequestEmails)
	admin.DELETE("/join-requests/:lead_id", leadsHandler.DeleteJoinRequest)

	logger.Log.WithField("port", cfg.Port).Info("server starting")
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		logger.Log.WithError(err).Fatal("server exited")
	}
}
