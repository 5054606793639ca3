package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pulseroom/api-go/controllers"
)

func SetupAppealRoutes(protected *gin.RouterGroup, appealController *controllers.AppealController) {
	appeals := protected.Group("/appeals")
	{
		appeals.POST("", appealController.SubmitAppeal)
		appeals.GET("", appealController.GetMyAppeals)
		appeals.POST("/:id/withdraw", appealController.WithdrawAppeal)
	}
}
