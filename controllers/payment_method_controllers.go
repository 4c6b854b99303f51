package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/rental-backoffice/models"
	"github.com/yeremiapane/rental-backoffice/utils"
	"gorm.io/gorm"
)

type PaymentMethodController struct {
	DB *gorm.DB
}

func NewPaymentMethodController(db *gorm.DB) *PaymentMethodController {
	return &PaymentMethodController{DB: db}
}

type paymentMethodRequest struct {
	Name          *string `json:"name" binding:"omitempty,min=1,max=100"`
	Type          *string `json:"type" binding:"omitempty,oneof=cash bank_transfer card e_wallet"`
	AccountName   *string `json:"account_name"`
	AccountNumber *string `json:"account_number"`
	Instructions  *string `json:"instructions"`
	IsActive      *bool   `json:"is_active"`
	SortOrder     *int    `json:"sort_order"`
}

// GetActivePaymentMethods is the public list shown to guests
func (pc *PaymentMethodController) GetActivePaymentMethods(c *gin.Context) {
	var methods []models.PaymentMethod
	if err := pc.DB.Where("is_active = ?", true).Order("sort_order ASC, name ASC").Find(&methods).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Active payment methods", methods)
}

func (pc *PaymentMethodController) GetAllPaymentMethods(c *gin.Context) {
	var methods []models.PaymentMethod
	if err := pc.DB.Order("sort_order ASC, name ASC").Find(&methods).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All payment methods", methods)
}

func (pc *PaymentMethodController) CreatePaymentMethod(c *gin.Context) {
	var req paymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Name == nil || req.Type == nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("name and type are required"))
		return
	}

	method := models.PaymentMethod{Name: *req.Name, Type: *req.Type, IsActive: true}
	if req.AccountName != nil {
		method.AccountName = *req.AccountName
	}
	if req.AccountNumber != nil {
		method.AccountNumber = *req.AccountNumber
	}
	if req.Instructions != nil {
		method.Instructions = *req.Instructions
	}
	if req.IsActive != nil {
		method.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		method.SortOrder = *req.SortOrder
	}
	if method.Type == models.PaymentTypeBankTransfer && method.AccountNumber == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("bank transfer needs an account number"))
		return
	}

	if err := pc.DB.Create(&method).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Payment method created", method)
}

func (pc *PaymentMethodController) UpdatePaymentMethod(c *gin.Context) {
	var req paymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var method models.PaymentMethod
	if err := pc.DB.First(&method, "id = ?", c.Param("method_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("payment method not found"))
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.AccountName != nil {
		updates["account_name"] = *req.AccountName
	}
	if req.AccountNumber != nil {
		updates["account_number"] = *req.AccountNumber
	}
	if req.Instructions != nil {
		updates["instructions"] = *req.Instructions
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.SortOrder != nil {
		updates["sort_order"] = *req.SortOrder
	}
	if len(updates) == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("no fields to update"))
		return
	}

	if err := pc.DB.Model(&method).Updates(updates).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	pc.DB.First(&method, "id = ?", method.ID)
	utils.RespondJSON(c, http.StatusOK, "Payment method updated", method)
}

func (pc *PaymentMethodController) DeletePaymentMethod(c *gin.Context) {
	id := c.Param("method_id")

	var inUse int64
	pc.DB.Model(&models.Booking{}).Where("payment_method_id = ?", id).Count(&inUse)
	if inUse > 0 {
		utils.RespondError(c, http.StatusConflict, errors.New("payment method is used by bookings, deactivate it instead"))
		return
	}

	res := pc.DB.Delete(&models.PaymentMethod{}, "id = ?", id)
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("payment method not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Payment method deleted", nil)
}
