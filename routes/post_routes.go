package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pulseroom/api-go/controllers"
)

func SetupPostRoutes(protected *gin.RouterGroup, postController *controllers.PostController) {
	posts := protected.Group("/posts")
	{
		posts.POST("", postController.CreatePost)
		posts.GET("/:id", postController.GetPost)
		posts.GET("/:id/state", postController.GetEffectiveState)
		posts.PUT("/:id", postController.UpdatePost)
		posts.DELETE("/:id", postController.DeletePost)
	}

	// User posts routes
	users := protected.Group("/users")
	{
		users.GET("/:userId/posts", postController.GetUserPosts)
	}
}
