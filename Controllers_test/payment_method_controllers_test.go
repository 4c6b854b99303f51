package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/rental-backoffice/controllers"
	"github.com/yeremiapane/rental-backoffice/models"
)

func TestPaymentMethodCRUD(t *testing.T) {
	db := setupTestDB(t)
	ctrl := controllers.NewPaymentMethodController(db)
	router := gin.New()
	router.GET("/payment-methods", ctrl.GetActivePaymentMethods)
	router.GET("/admin/payment-methods", ctrl.GetAllPaymentMethods)
	router.POST("/admin/payment-methods", ctrl.CreatePaymentMethod)
	router.PUT("/admin/payment-methods/:method_id", ctrl.UpdatePaymentMethod)
	router.DELETE("/admin/payment-methods/:method_id", ctrl.DeletePaymentMethod)

	w, _ := doJSON(t, router, http.MethodPost, "/admin/payment-methods", map[string]interface{}{
		"name": "Crypto", "type": "bitcoin",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doJSON(t, router, http.MethodPost, "/admin/payment-methods", map[string]interface{}{
		"name": "BCA", "type": "bank_transfer",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env := doJSON(t, router, http.MethodPost, "/admin/payment-methods", map[string]interface{}{
		"name": "BCA", "type": "bank_transfer", "account_number": "123-456", "sort_order": 2,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var bank models.PaymentMethod
	decode(t, env.Data, &bank)
	assert.True(t, bank.IsActive)

	w, env = doJSON(t, router, http.MethodPost, "/admin/payment-methods", map[string]interface{}{
		"name": "Cash", "type": "cash", "sort_order": 1,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	var cash models.PaymentMethod
	decode(t, env.Data, &cash)

	w, env = doJSON(t, router, http.MethodGet, "/payment-methods", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var active []models.PaymentMethod
	decode(t, env.Data, &active)
	require.Len(t, active, 2)
	assert.Equal(t, "Cash", active[0].Name)

	w, _ = doJSON(t, router, http.MethodPut, "/admin/payment-methods/"+bank.ID, map[string]interface{}{"is_active": false}, "")
	require.Equal(t, http.StatusOK, w.Code)

	w, env = doJSON(t, router, http.MethodGet, "/payment-methods", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, env.Data, &active)
	require.Len(t, active, 1)
	assert.Equal(t, cash.ID, active[0].ID)

	require.NoError(t, db.Create(&models.Booking{ID: "b1", BookingID: "BK-1", PaymentMethodID: &cash.ID}).Error)
	w, _ = doJSON(t, router, http.MethodDelete, "/admin/payment-methods/"+cash.ID, nil, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = doJSON(t, router, http.MethodDelete, "/admin/payment-methods/"+bank.ID, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = doJSON(t, router, http.MethodGet, "/admin/payment-methods", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var all []models.PaymentMethod
	decode(t, env.Data, &all)
	assert.Len(t, all, 1)
}
