package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pulseroom/api-go/controllers"
	"github.com/pulseroom/api-go/middleware"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Initialize controllers
	authController := controllers.NewAuthController(db)
	userController := controllers.NewUserController(db)
	postController := controllers.NewPostController(db)
	interactionController := controllers.NewInteractionController(db)
	tagController := controllers.NewTagController(db)
	feedController := controllers.NewFeedController(db)
	appealController := controllers.NewAppealController(db)
	moderationController := controllers.NewModerationController(db)
	reportController := controllers.NewReportController(db)
	uploadController := controllers.NewUploadController(db)

	// Public routes
	public := r.Group("/api")
	{
		public.POST("/register", authController.Register)
		public.POST("/login", authController.Login)
		public.POST("/auth/google", authController.GoogleLogin)
	}

	// Protected routes
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/logout", authController.Logout)
		protected.POST("/refresh-token", authController.RefreshToken)
		protected.GET("/profile", authController.GetProfile)

		// Setup other routes within the protected group
		SetupUserRoutes(protected, userController)
		SetupPostRoutes(protected, postController)
		SetupInteractionRoutes(protected, interactionController)
		SetupTagRoutes(protected, tagController)
		SetupFeedRoutes(protected, feedController)
		SetupAppealRoutes(protected, appealController)
		SetupReportRoutes(protected, reportController)
		SetupUploadRoutes(protected, uploadController)
	}

	// Admin routes
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		SetupModerationRoutes(admin, moderationController)

		admin.GET("/appeals", appealController.GetPendingAppeals)
		admin.PUT("/appeals/:id", appealController.ResolveAppeal)

		admin.GET("/reports", reportController.GetPendingReports)
		admin.PUT("/reports/:id", reportController.ReviewReport)
	}
}
