package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/rental-backoffice/cleaning"
	"github.com/yeremiapane/rental-backoffice/models"
	"github.com/yeremiapane/rental-backoffice/utils"
	"gorm.io/gorm"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

type dashboardStats struct {
	TotalBookings  int64   `json:"total_bookings"`
	TodayCheckOuts int64   `json:"today_check_outs"`
	TodayCheckIns  int64   `json:"today_check_ins"`
	TotalRevenue   float64 `json:"total_revenue"`
	BookingStats   struct {
		Pending    int64 `json:"pending"`
		Confirmed  int64 `json:"confirmed"`
		CheckedIn  int64 `json:"checked_in"`
		CheckedOut int64 `json:"checked_out"`
		Cancelled  int64 `json:"cancelled"`
	} `json:"booking_stats"`
	CleaningStats struct {
		Pending    int64 `json:"pending"`
		InProgress int64 `json:"in_progress"`
		Cleaned    int64 `json:"cleaned"`
		Inspected  int64 `json:"inspected"`
	} `json:"cleaning_stats"`
	Cleaners int64 `json:"cleaners"`
}

// GetDashboardStats aggregates booking and cleaning counts for the back office home page
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	today := time.Now().Format("2006-01-02")
	var stats dashboardStats

	bookings := func() *gorm.DB { return ac.DB.Model(&models.Booking{}) }

	bookings().Count(&stats.TotalBookings)
	bookings().Where("check_out_date = ?", today).Count(&stats.TodayCheckOuts)
	bookings().Where("check_in_date = ?", today).Count(&stats.TodayCheckIns)

	bookings().Where("status = ?", models.BookingStatusPending).Count(&stats.BookingStats.Pending)
	bookings().Where("status = ?", models.BookingStatusConfirmed).Count(&stats.BookingStats.Confirmed)
	bookings().Where("status = ?", models.BookingStatusCheckedIn).Count(&stats.BookingStats.CheckedIn)
	bookings().Where("status = ?", models.BookingStatusCheckedOut).Count(&stats.BookingStats.CheckedOut)
	bookings().Where("status = ?", models.BookingStatusCancelled).Count(&stats.BookingStats.Cancelled)

	bookings().Where("cleaning_status = ? OR cleaning_status = ''", models.CleaningStatusPending).Count(&stats.CleaningStats.Pending)
	bookings().Where("cleaning_status = ?", models.CleaningStatusInProgress).Count(&stats.CleaningStats.InProgress)
	bookings().Where("cleaning_status = ?", models.CleaningStatusCleaned).Count(&stats.CleaningStats.Cleaned)
	bookings().Where("cleaning_status = ?", models.CleaningStatusInspected).Count(&stats.CleaningStats.Inspected)

	if err := bookings().Where("status <> ?", models.BookingStatusCancelled).
		Select("COALESCE(SUM(total_amount), 0)").Row().Scan(&stats.TotalRevenue); err != nil {
		utils.ErrorLogger.WithError(err).Error("Failed to sum booking revenue")
	}

	ac.DB.Model(&models.Employee{}).Scopes(cleaning.CleanerScope).Count(&stats.Cleaners)

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats retrieved successfully", stats)
}
