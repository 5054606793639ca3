package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pulseroom/api-go/controllers"
)

func SetupReportRoutes(protected *gin.RouterGroup, reportController *controllers.ReportController) {
	protected.POST("/reports", reportController.CreateReport)
}
