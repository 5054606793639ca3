package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pulseroom/api-go/controllers"
)

func SetupTagRoutes(protected *gin.RouterGroup, tagController *controllers.TagController) {
	posts := protected.Group("/posts")
	{
		posts.POST("/:id/tags", tagController.CreateTag)
		posts.GET("/:id/tags", tagController.GetPostTags)
	}

	tags := protected.Group("/tags")
	{
		tags.GET("/pending", tagController.GetMyPendingTags)
		tags.PUT("/:id", tagController.RespondTag)
		tags.DELETE("/:id", tagController.RemoveTag)
	}
}
