package main

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/teamflow/backend/internal/config"
	"github.com/teamflow/backend/internal/handlers"
	"github.com/teamflow/backend/internal/middleware"
	"github.com/teamflow/backend/internal/services"
	"github.com/teamflow/backend/pkg/logger"
)

// buildRouter assembles the full API surface.
func buildRouter(cfg *config.Config, db *gorm.DB, queue services.TaskQueue, systemLog *services.SystemLogService) *gin.Engine {
	r := gin.New()
	r.Use(logger.GinLogger())
	r.Use(logger.GinRecovery())
	r.Use(middleware.CORS())

	authService := services.NewAuthService(db, &cfg.LDAP, &cfg.JWT)
	workspaceService := services.NewWorkspaceService(db)
	inviteService := services.NewInviteService(db, queue)
	releaseService := services.NewReleaseService(db)
	bugService := services.NewBugService(db)
	hotfixService := services.NewHotfixService(db)
	prdService := services.NewPrdService(db)
	assetService := services.NewDesignAssetService(db)
	taskService := services.NewTaskService(db)

	authHandler := handlers.NewAuthHandler(authService)
	workspaceHandler := handlers.NewWorkspaceHandler(workspaceService)
	memberHandler := handlers.NewMemberHandler(workspaceService)
	inviteHandler := handlers.NewInviteHandler(inviteService)
	releaseHandler := handlers.NewReleaseHandler(releaseService)
	bugHandler := handlers.NewBugHandler(bugService)
	hotfixHandler := handlers.NewHotfixHandler(hotfixService)
	prdHandler := handlers.NewPrdHandler(prdService)
	assetHandler := handlers.NewDesignAssetHandler(assetService)
	taskHandler := handlers.NewTaskHandler(taskService)
	healthHandler := handlers.NewHealthHandler(db)
	systemLogHandler := handlers.NewSystemLogHandler(systemLog)

	r.GET("/health", healthHandler.Check)

	api := r.Group("/api/v1")
	api.Use(middleware.Audit(systemLog))

	// Public auth routes, rate limited per client IP
	loginLimiter := middleware.NewRateLimiter(rate.Limit(1), 5)
	auth := api.Group("/auth")
	{
		auth.GET("/modes", authHandler.AuthModes)
		auth.POST("/register", loginLimiter.Middleware(), authHandler.Register)
		auth.POST("/login", loginLimiter.Middleware(), authHandler.Login)
		auth.POST("/refresh", loginLimiter.Middleware(), authHandler.Refresh)
	}

	protected := api.Group("")
	protected.Use(middleware.AuthRequired())
	{
		protected.GET("/auth/me", authHandler.Me)
		protected.POST("/auth/logout", authHandler.Logout)
		protected.PUT("/auth/password", authHandler.ChangePassword)

		protected.GET("/workspaces", workspaceHandler.List)
		protected.POST("/workspaces", workspaceHandler.Create)

		// Invites addressed to the caller, and invite responses
		protected.GET("/invites", inviteHandler.ListMine)
		protected.POST("/invites/:inviteID/respond", inviteHandler.Respond)
		protected.DELETE("/invites/:inviteID", inviteHandler.Delete)

		// Release detail routes carry their own workspace via the release row
		protected.GET("/releases/:releaseID", releaseHandler.Get)
		protected.PUT("/releases/:releaseID", releaseHandler.Update)
		protected.DELETE("/releases/:releaseID", releaseHandler.Delete)
		protected.POST("/releases/:releaseID/deploy", releaseHandler.Deploy)
		protected.PUT("/releases/:releaseID/qa-status", releaseHandler.UpdateQAStatus)
		protected.POST("/releases/:releaseID/bugs", bugHandler.Create)
		protected.GET("/releases/:releaseID/bugs", bugHandler.ListForRelease)
		protected.POST("/releases/:releaseID/hotfixes", hotfixHandler.Create)
		protected.GET("/releases/:releaseID/hotfixes", hotfixHandler.ListForRelease)

		protected.GET("/bugs/:bugID", bugHandler.Get)
		protected.PUT("/bugs/:bugID", bugHandler.Update)
		protected.DELETE("/bugs/:bugID", bugHandler.Delete)

		protected.GET("/hotfixes/:hotfixID", hotfixHandler.Get)
		protected.PUT("/hotfixes/:hotfixID", hotfixHandler.Update)
		protected.DELETE("/hotfixes/:hotfixID", hotfixHandler.Delete)

		protected.GET("/prds/:prdID", prdHandler.Get)
		protected.PUT("/prds/:prdID", prdHandler.Update)
		protected.DELETE("/prds/:prdID", prdHandler.Delete)

		protected.GET("/design-assets/:assetID", assetHandler.Get)
		protected.PUT("/design-assets/:assetID", assetHandler.Update)
		protected.DELETE("/design-assets/:assetID", assetHandler.Delete)

		protected.GET("/tasks/:taskID", taskHandler.Get)
		protected.PUT("/tasks/:taskID", taskHandler.Update)
		protected.POST("/tasks/:taskID/move", taskHandler.Move)
		protected.DELETE("/tasks/:taskID", taskHandler.Delete)

		protected.GET("/system-logs", systemLogHandler.List)

		// Workspace-scoped routes
		workspace := protected.Group("/workspaces/:workspaceID")
		workspace.Use(middleware.WorkspaceScoped())
		{
			workspace.GET("", workspaceHandler.Get)
			workspace.PUT("", workspaceHandler.Update)
			workspace.DELETE("", workspaceHandler.Delete)

			workspace.GET("/members", memberHandler.List)
			workspace.POST("/members", memberHandler.Add)
			workspace.PUT("/members/:userID", memberHandler.Update)
			workspace.DELETE("/members/:userID", memberHandler.Remove)

			workspace.GET("/invites", inviteHandler.ListForWorkspace)
			workspace.POST("/invites", inviteHandler.Create)

			workspace.GET("/releases", releaseHandler.List)
			workspace.POST("/releases", releaseHandler.Create)

			workspace.GET("/prds", prdHandler.List)
			workspace.POST("/prds", prdHandler.Create)

			workspace.GET("/design-assets", assetHandler.List)
			workspace.POST("/design-assets", assetHandler.Create)

			workspace.GET("/tasks", taskHandler.List)
			workspace.POST("/tasks", taskHandler.Create)
		}
	}

	return r
}
