package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/rental-backoffice/models"
	"github.com/yeremiapane/rental-backoffice/utils"
	"gorm.io/gorm"
)

type NotificationController struct {
	DB *gorm.DB
	// Notify pushes a stored notification to connected clients
	Notify func(models.Notification)
}

func NewNotificationController(db *gorm.DB, notify func(models.Notification)) *NotificationController {
	return &NotificationController{DB: db, Notify: notify}
}

// GetAllNotifications, newest first. ?employee_id narrows to one recipient.
func (nc *NotificationController) GetAllNotifications(c *gin.Context) {
	query := nc.DB.Preload("Employee").Order("created_at DESC, id DESC")
	if employeeID := c.Query("employee_id"); employeeID != "" {
		query = query.Where("employee_id = ?", employeeID)
	}

	var notifs []models.Notification
	if err := query.Find(&notifs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All notifications", notifs)
}

// CreateNotification -> broadcast or for one employee
func (nc *NotificationController) CreateNotification(c *gin.Context) {
	type reqBody struct {
		EmployeeID *string `json:"employee_id"`
		BookingID  *string `json:"booking_id"`
		Title      string  `json:"title"`
		Message    string  `json:"message" binding:"required"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	notif := models.Notification{
		EmployeeID: body.EmployeeID,
		BookingID:  body.BookingID,
		Message:    body.Message,
	}
	if body.Title != "" {
		notif.Title = &body.Title
	}

	if err := nc.DB.Create(&notif).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Notification created: %v", notif.Message)
	if nc.Notify != nil {
		nc.Notify(notif)
	}

	utils.RespondJSON(c, http.StatusCreated, "Notification created", notif)
}

func (nc *NotificationController) GetNotificationByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("notif_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var notif models.Notification
	if err := nc.DB.Preload("Employee").First(&notif, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notification detail", notif)
}

func (nc *NotificationController) DeleteNotification(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("notif_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := nc.DB.Delete(&models.Notification{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Notification deleted", gin.H{"notif_id": id})
}
