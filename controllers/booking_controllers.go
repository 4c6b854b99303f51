package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/rental-backoffice/cleaning"
	"github.com/yeremiapane/rental-backoffice/models"
	"github.com/yeremiapane/rental-backoffice/utils"
	"gorm.io/gorm"
)

// Refresher is poked after every booking write so the board catches up
// before the next tick.
type Refresher interface {
	Refresh(ctx context.Context) error
}

type BookingController struct {
	DB        *gorm.DB
	Refresher Refresher
}

func NewBookingController(db *gorm.DB, refresher Refresher) *BookingController {
	return &BookingController{DB: db, Refresher: refresher}
}

type bookingRequest struct {
	BookingID       string   `json:"booking_id" binding:"required,max=50"`
	RoomName        *string  `json:"room_name" binding:"omitempty,max=100"`
	GuestFirstName  string   `json:"guest_first_name" binding:"required"`
	GuestLastName   string   `json:"guest_last_name"`
	GuestEmail      string   `json:"guest_email" binding:"omitempty,email"`
	GuestPhone      string   `json:"guest_phone"`
	CheckInDate     string   `json:"check_in_date" binding:"required,isodate"`
	CheckInTime     string   `json:"check_in_time" binding:"clocktime"`
	CheckOutDate    string   `json:"check_out_date" binding:"required,isodate"`
	CheckOutTime    string   `json:"check_out_time" binding:"clocktime"`
	Status          string   `json:"status" binding:"omitempty,oneof=pending confirmed checked-in checked-out cancelled"`
	TotalAmount     *float64 `json:"total_amount" binding:"omitempty,gte=0"`
	PaymentMethodID *string  `json:"payment_method_id"`
	CleaningStatus  string   `json:"cleaning_status" binding:"omitempty,oneof=pending"`
}

type bookingPatch struct {
	RoomName        *string  `json:"room_name" binding:"omitempty,max=100"`
	GuestFirstName  *string  `json:"guest_first_name"`
	GuestLastName   *string  `json:"guest_last_name"`
	GuestEmail      *string  `json:"guest_email" binding:"omitempty,email"`
	GuestPhone      *string  `json:"guest_phone"`
	CheckInDate     *string  `json:"check_in_date" binding:"omitempty,isodate"`
	CheckInTime     *string  `json:"check_in_time" binding:"omitempty,clocktime"`
	CheckOutDate    *string  `json:"check_out_date" binding:"omitempty,isodate"`
	CheckOutTime    *string  `json:"check_out_time" binding:"omitempty,clocktime"`
	Status          *string  `json:"status" binding:"omitempty,oneof=pending confirmed checked-in checked-out cancelled"`
	TotalAmount     *float64 `json:"total_amount" binding:"omitempty,gte=0"`
	PaymentMethodID *string  `json:"payment_method_id"`
	CleaningStatus  *string  `json:"cleaning_status" binding:"omitempty,oneof=pending in-progress cleaned inspected"`
}

// GetAllBookings supports ?status, ?cleaning_status, ?from, ?to (check-out
// date, inclusive) and ?q over booking code, room and guest name.
func (bc *BookingController) GetAllBookings(c *gin.Context) {
	query := bc.DB.Order("check_out_date ASC, check_out_time ASC, created_at ASC")

	if status := strings.TrimSpace(c.Query("status")); status != "" {
		query = query.Where("status = ?", status)
	}
	if cs := strings.TrimSpace(c.Query("cleaning_status")); cs != "" {
		query = query.Where("cleaning_status = ?", cs)
	}
	if from := strings.TrimSpace(c.Query("from")); from != "" {
		query = query.Where("check_out_date >= ?", from)
	}
	if to := strings.TrimSpace(c.Query("to")); to != "" {
		query = query.Where("check_out_date <= ?", to)
	}
	if q := strings.ToLower(strings.TrimSpace(c.Query("q"))); q != "" {
		like := "%" + q + "%"
		query = query.Where(
			"(LOWER(booking_id) LIKE ? OR LOWER(room_name) LIKE ? OR LOWER(guest_first_name) LIKE ? OR LOWER(guest_last_name) LIKE ?)",
			like, like, like, like)
	}

	var bookings []models.Booking
	if err := query.Find(&bookings).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	views := make([]cleaning.BookingView, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, cleaning.BookingView{Booking: b, Cleaning: cleaning.ClassifyBooking(b)})
	}
	utils.RespondJSON(c, http.StatusOK, "All bookings", views)
}

func (bc *BookingController) GetBookingByID(c *gin.Context) {
	var booking models.Booking
	if err := bc.DB.First(&booking, "id = ?", c.Param("booking_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("booking not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Booking detail", cleaning.BookingView{
		Booking:  booking,
		Cleaning: cleaning.ClassifyBooking(booking),
	})
}

func (bc *BookingController) CreateBooking(c *gin.Context) {
	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	booking := models.Booking{
		BookingID:       strings.TrimSpace(req.BookingID),
		RoomName:        req.RoomName,
		GuestFirstName:  req.GuestFirstName,
		GuestLastName:   req.GuestLastName,
		GuestEmail:      req.GuestEmail,
		GuestPhone:      req.GuestPhone,
		CheckInDate:     req.CheckInDate,
		CheckInTime:     req.CheckInTime,
		CheckOutDate:    req.CheckOutDate,
		CheckOutTime:    req.CheckOutTime,
		Status:          req.Status,
		PaymentMethodID: req.PaymentMethodID,
		CleaningStatus:  req.CleaningStatus,
	}
	if booking.Status == "" {
		booking.Status = models.BookingStatusPending
	}
	if req.TotalAmount != nil {
		booking.TotalAmount = *req.TotalAmount
	}
	if booking.CheckOutDate < booking.CheckInDate {
		utils.RespondError(c, http.StatusBadRequest, errors.New("check_out_date is before check_in_date"))
		return
	}

	if err := bc.DB.Create(&booking).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Booking created: %s", booking.BookingID)
	bc.refresh(c)
	utils.RespondJSON(c, http.StatusCreated, "Booking created", booking)
}

func (bc *BookingController) UpdateBooking(c *gin.Context) {
	var req bookingPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var booking models.Booking
	if err := bc.DB.First(&booking, "id = ?", c.Param("booking_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("booking not found"))
		return
	}

	updates := map[string]interface{}{}
	setString := func(column string, v *string) {
		if v != nil {
			updates[column] = *v
		}
	}
	if req.RoomName != nil {
		updates["room_name"] = req.RoomName
	}
	setString("guest_first_name", req.GuestFirstName)
	setString("guest_last_name", req.GuestLastName)
	setString("guest_email", req.GuestEmail)
	setString("guest_phone", req.GuestPhone)
	setString("check_in_date", req.CheckInDate)
	setString("check_in_time", req.CheckInTime)
	setString("check_out_date", req.CheckOutDate)
	setString("check_out_time", req.CheckOutTime)
	setString("status", req.Status)
	if req.TotalAmount != nil {
		updates["total_amount"] = *req.TotalAmount
	}
	if req.PaymentMethodID != nil {
		updates["payment_method_id"] = req.PaymentMethodID
	}
	if req.CleaningStatus != nil {
		updates["cleaning_status"] = *req.CleaningStatus
		// finishing a cleaning closes the session
		done := *req.CleaningStatus == models.CleaningStatusCleaned || *req.CleaningStatus == models.CleaningStatusInspected
		if done && booking.CleaningTimeOut == nil {
			updates["cleaning_time_out"] = time.Now().UTC()
		}
	}

	if len(updates) == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("no fields to update"))
		return
	}

	if err := bc.DB.Model(&booking).Updates(updates).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := bc.DB.First(&booking, "id = ?", booking.ID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	bc.refresh(c)
	utils.RespondJSON(c, http.StatusOK, "Booking updated", cleaning.BookingView{
		Booking:  booking,
		Cleaning: cleaning.ClassifyBooking(booking),
	})
}

func (bc *BookingController) DeleteBooking(c *gin.Context) {
	res := bc.DB.Delete(&models.Booking{}, "id = ?", c.Param("booking_id"))
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("booking not found"))
		return
	}

	bc.refresh(c)
	utils.RespondJSON(c, http.StatusOK, "Booking deleted", nil)
}

func (bc *BookingController) refresh(c *gin.Context) {
	if bc.Refresher == nil {
		return
	}
	if err := bc.Refresher.Refresh(c.Request.Context()); err != nil {
		utils.ErrorLogger.WithError(err).Error("Board refresh after booking change failed")
	}
}
