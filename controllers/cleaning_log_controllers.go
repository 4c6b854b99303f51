package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/rental-backoffice/models"
	"github.com/yeremiapane/rental-backoffice/utils"
	"gorm.io/gorm"
)

type CleaningLogController struct {
	DB *gorm.DB
}

func NewCleaningLogController(db *gorm.DB) *CleaningLogController {
	return &CleaningLogController{DB: db}
}

// GetAllCleaningLogs, newest first. Filters: ?booking_id, ?cleaner_id
func (clc *CleaningLogController) GetAllCleaningLogs(c *gin.Context) {
	query := clc.DB.Preload("Cleaner").Order("created_at DESC, id DESC")
	if bookingID := c.Query("booking_id"); bookingID != "" {
		query = query.Where("booking_id = ?", bookingID)
	}
	if cleanerID := c.Query("cleaner_id"); cleanerID != "" {
		query = query.Where("cleaner_id = ?", cleanerID)
	}

	var logs []models.CleaningLog
	if err := query.Find(&logs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All cleaning logs", logs)
}

func (clc *CleaningLogController) GetCleaningLogByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("clean_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var logEntry models.CleaningLog
	if err := clc.DB.Preload("Cleaner").First(&logEntry, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cleaning log detail", logEntry)
}
