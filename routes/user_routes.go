package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pulseroom/api-go/controllers"
)

func SetupUserRoutes(protected *gin.RouterGroup, userController *controllers.UserController) {
	users := protected.Group("/users")
	{
		users.GET("/:userId", userController.GetUserProfile)
		users.POST("/:userId/block", userController.BlockUser)
	}

	// Own profile and tag policy
	me := protected.Group("/me")
	{
		me.PUT("/profile", userController.UpdateProfile)
		me.GET("/tag-settings", userController.GetTagSettings)
		me.PUT("/tag-settings", userController.UpdateTagSettings)
	}
}
