package Controllers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yeremiapane/rental-backoffice/cleaning"
	"github.com/yeremiapane/rental-backoffice/controllers"
	"github.com/yeremiapane/rental-backoffice/models"
)

type countingRefresher struct{ calls int }

func (r *countingRefresher) Refresh(context.Context) error {
	r.calls++
	return nil
}

func setupBookingRouter(db *gorm.DB, refresher controllers.Refresher) *gin.Engine {
	router := gin.New()
	ctrl := controllers.NewBookingController(db, refresher)
	router.GET("/bookings", ctrl.GetAllBookings)
	router.GET("/bookings/:booking_id", ctrl.GetBookingByID)
	router.POST("/bookings", ctrl.CreateBooking)
	router.PATCH("/bookings/:booking_id", ctrl.UpdateBooking)
	router.DELETE("/bookings/:booking_id", ctrl.DeleteBooking)
	return router
}

func TestBookingCRUD(t *testing.T) {
	db := setupTestDB(t)
	refresher := &countingRefresher{}
	router := setupBookingRouter(db, refresher)

	w, env := doJSON(t, router, http.MethodPost, "/bookings", map[string]interface{}{
		"booking_id":       "BK-100",
		"room_name":        "Haven 3",
		"guest_first_name": "Sari",
		"check_in_date":    "2024-06-01",
		"check_in_time":    "14:00",
		"check_out_date":   "2024-06-03",
		"check_out_time":   "11:00",
		"total_amount":     150.5,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created models.Booking
	decode(t, env.Data, &created)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, models.BookingStatusPending, created.Status)
	assert.Equal(t, 1, refresher.calls)

	w, env = doJSON(t, router, http.MethodGet, "/bookings/"+created.ID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var view cleaning.BookingView
	decode(t, env.Data, &view)
	assert.Equal(t, "BK-100", view.BookingID)
	assert.Equal(t, cleaning.StatusUnassigned, view.Cleaning.Status)
	assert.Equal(t, cleaning.ColorGray, view.Cleaning.Color)

	w, env = doJSON(t, router, http.MethodPatch, "/bookings/"+created.ID, map[string]interface{}{
		"status":         "checked-out",
		"check_out_time": "10:30",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, env.Data, &view)
	assert.Equal(t, models.BookingStatusCheckedOut, view.Status)
	assert.Equal(t, "10:30", view.CheckOutTime)
	assert.Equal(t, "Haven 3", *view.RoomName)

	w, _ = doJSON(t, router, http.MethodDelete, "/bookings/"+created.ID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = doJSON(t, router, http.MethodGet, "/bookings/"+created.ID, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 3, refresher.calls)
}

func TestBookingValidation(t *testing.T) {
	db := setupTestDB(t)
	router := setupBookingRouter(db, nil)

	base := func() map[string]interface{} {
		return map[string]interface{}{
			"booking_id":       "BK-1",
			"guest_first_name": "Sari",
			"check_in_date":    "2024-06-01",
			"check_out_date":   "2024-06-02",
		}
	}

	bad := base()
	bad["check_out_date"] = "02/06/2024"
	w, _ := doJSON(t, router, http.MethodPost, "/bookings", bad, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	for _, date := range []string{"2024-13-45", "2023-02-29", "2024-6-2"} {
		bad = base()
		bad["check_out_date"] = date
		w, _ = doJSON(t, router, http.MethodPost, "/bookings", bad, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, date)
	}

	bad = base()
	bad["check_out_time"] = "25:00"
	w, _ = doJSON(t, router, http.MethodPost, "/bookings", bad, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	bad = base()
	bad["check_out_date"] = "2024-05-30"
	w, _ = doJSON(t, router, http.MethodPost, "/bookings", bad, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// assignment goes through the cleaning endpoints only
	bad = base()
	bad["cleaning_status"] = "in-progress"
	w, _ = doJSON(t, router, http.MethodPost, "/bookings", bad, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doJSON(t, router, http.MethodPost, "/bookings", base(), "")
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestBookingFilters(t *testing.T) {
	db := setupTestDB(t)
	router := setupBookingRouter(db, nil)

	for _, b := range []models.Booking{
		{ID: "a", BookingID: "BK-A", RoomName: strPtr("Haven 1"), GuestFirstName: "Ana", CheckOutDate: "2024-06-01", Status: "confirmed", CleaningStatus: "pending"},
		{ID: "b", BookingID: "BK-B", RoomName: strPtr("Haven 2"), GuestFirstName: "Budi", CheckOutDate: "2024-06-02", Status: "checked-out", CleaningStatus: "in-progress", AssignedCleanerID: strPtr("c1")},
		{ID: "c", BookingID: "BK-C", RoomName: strPtr("Loft 1"), GuestFirstName: "Citra", CheckOutDate: "2024-06-05", Status: "checked-out", CleaningStatus: "cleaned"},
	} {
		require.NoError(t, db.Create(&b).Error)
	}

	list := func(query string) []string {
		w, env := doJSON(t, router, http.MethodGet, "/bookings"+query, nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		var views []cleaning.BookingView
		decode(t, env.Data, &views)
		ids := make([]string, 0, len(views))
		for _, v := range views {
			ids = append(ids, v.ID)
		}
		return ids
	}

	assert.Equal(t, []string{"a", "b", "c"}, list(""))
	assert.Equal(t, []string{"b", "c"}, list("?status=checked-out"))
	assert.Equal(t, []string{"b"}, list("?cleaning_status=in-progress"))
	assert.Equal(t, []string{"a", "b"}, list("?from=2024-06-01&to=2024-06-02"))
	assert.Equal(t, []string{"a", "b"}, list("?q=haven"))
	assert.Equal(t, []string{"c"}, list("?q=citra"))
}

func TestBookingFinishCleaningClosesSession(t *testing.T) {
	db := setupTestDB(t)
	router := setupBookingRouter(db, nil)
	require.NoError(t, db.Create(&models.Booking{
		ID: "b", BookingID: "BK-B", CleaningStatus: "in-progress", AssignedCleanerID: strPtr("c1"),
	}).Error)

	w, env := doJSON(t, router, http.MethodPatch, "/bookings/b", map[string]interface{}{"cleaning_status": "cleaned"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var view cleaning.BookingView
	decode(t, env.Data, &view)
	assert.NotNil(t, view.CleaningTimeOut)
	assert.Equal(t, cleaning.StatusCompleted, view.Cleaning.Status)
}
