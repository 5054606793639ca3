package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pulseroom/api-go/controllers"
)

func SetupUploadRoutes(protected *gin.RouterGroup, uploadController *controllers.UploadController) {
	uploads := protected.Group("/uploads")
	{
		uploads.POST("/evidence", uploadController.GetEvidenceUploadURL)
		uploads.POST("/evidence/confirm", uploadController.ConfirmEvidenceUpload)
		uploads.DELETE("/evidence/:key", uploadController.DeleteEvidence)
	}
}
