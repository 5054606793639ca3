package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pulseroom/api-go/controllers"
)

func SetupInteractionRoutes(protected *gin.RouterGroup, interactionController *controllers.InteractionController) {
	users := protected.Group("/users")
	{
		users.POST("/:userId/follow", interactionController.FollowUser)
		users.GET("/:userId/followers", interactionController.GetUserFollowers)
		users.GET("/:userId/following", interactionController.GetUserFollowing)
	}

	follows := protected.Group("/follow-requests")
	{
		follows.GET("", interactionController.GetFollowRequests)
		follows.PUT("/:id", interactionController.RespondFollowRequest)
	}
}
