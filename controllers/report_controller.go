package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pulseroom/api-go/models"
	"github.com/pulseroom/api-go/utils"
	"gorm.io/gorm"
)

type ReportController struct {
	DB *gorm.DB
}

type CreateReportRequest struct {
	TargetType  string `json:"targetType" binding:"required,oneof=post comment user chat_message"`
	TargetID    uint   `json:"targetId" binding:"required"`
	Reason      string `json:"reason" binding:"required"`
	Description string `json:"description"`
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

// CreateReport godoc
// @Summary Report content or a user
// @Description Files a complaint for admin review. Reporting never changes visibility by itself
// @Tags reports
// @Accept json
// @Produce json
// @Param report body CreateReportRequest true "Report creation request"
// @Success 201 {object} map[string]interface{}
// @Router /reports [post]
func (rc *ReportController) CreateReport(c *gin.Context) {
	user := utils.GetUser(c)
	var req CreateReportRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.TargetType == models.TargetTypeUser && req.TargetID == user.UserID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot report yourself"})
		return
	}

	var existing models.Report
	if err := rc.DB.Where("reporter_user_id = ? AND target_type = ? AND target_id = ? AND status = ?",
		user.UserID, req.TargetType, req.TargetID, models.ReportStatusPending).
		First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "You have already reported this"})
		return
	}

	report := models.Report{
		ReporterUserID: user.UserID,
		TargetType:     req.TargetType,
		TargetID:       req.TargetID,
		Reason:         req.Reason,
		Description:    req.Description,
		Status:         models.ReportStatusPending,
	}

	if err := rc.DB.Create(&report).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create report"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "report": report})
}

// GetPendingReports godoc
// @Summary List pending reports for review
// @Description Admin-only, oldest first
// @Tags reports
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /admin/reports [get]
func (rc *ReportController) GetPendingReports(c *gin.Context) {
	var reports []models.Report
	result := rc.DB.Preload("ReporterUser").
		Where("status = ?", models.ReportStatusPending).
		Order("created_at ASC").
		Find(&reports)

	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching reports"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "reports": reports})
}

// ReviewReport godoc
// @Summary Mark a report reviewed or dismissed
// @Description Admin-only. Any resulting moderation action is appended separately through the moderation endpoints
// @Tags reports
// @Accept json
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} map[string]interface{}
// @Router /admin/reports/{id} [put]
func (rc *ReportController) ReviewReport(c *gin.Context) {
	reportID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report ID"})
		return
	}

	var input struct {
		Action string `json:"action" binding:"required,oneof=review dismiss"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var report models.Report
	if err := rc.DB.First(&report, reportID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}

	if report.Status != models.ReportStatusPending {
		c.JSON(http.StatusConflict, gin.H{"error": "Report has already been handled"})
		return
	}

	admin := utils.GetUser(c)

	if input.Action == "review" {
		report.Status = models.ReportStatusReviewed
	} else {
		report.Status = models.ReportStatusDismissed
	}

	tx := rc.DB.Begin()

	if err := tx.Save(&report).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update report"})
		return
	}

	if err := appendAuditLog(tx, admin.UserID, report.TargetType, report.TargetID,
		"report_"+report.Status, report.Reason, ""); err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create audit log"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "report": report})
}
