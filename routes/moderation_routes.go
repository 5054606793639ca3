package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pulseroom/api-go/controllers"
)

func SetupModerationRoutes(admin *gin.RouterGroup, moderationController *controllers.ModerationController) {
	moderation := admin.Group("/moderation")
	{
		moderation.POST("/actions", moderationController.CreateAction)
		moderation.GET("/:targetType/:targetId/actions", moderationController.GetTargetActions)
		moderation.GET("/audit", moderationController.GetAuditTrail)
	}
}
