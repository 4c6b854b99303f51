package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/rental-backoffice/cleaning"
	"github.com/yeremiapane/rental-backoffice/models"
	"github.com/yeremiapane/rental-backoffice/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type EmployeeController struct {
	DB *gorm.DB
}

func NewEmployeeController(db *gorm.DB) *EmployeeController {
	return &EmployeeController{DB: db}
}

type registerRequest struct {
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name"`
	Email        string `json:"email" binding:"required,email"`
	EmploymentID string `json:"employment_id"`
	Password     string `json:"password" binding:"required,min=6"`
	Role         string `json:"role" binding:"required"` // Admin, Manager, Front Desk, Cleaner
}

// privileged roles can manage staff and payment settings
func isPrivilegedRole(role string) bool {
	return role == models.RoleAdmin || role == models.RoleManager
}

// Register creates an employee account. Self-registration is limited to
// Front Desk and Cleaner, except for the very first account, which may be
// an Admin so the system can be bootstrapped.
func (ec *EmployeeController) Register(c *gin.Context) {
	ec.createEmployee(c, false)
}

// CreateEmployee lets an authenticated Admin create an account with any role.
func (ec *EmployeeController) CreateEmployee(c *gin.Context) {
	ec.createEmployee(c, true)
}

func (ec *EmployeeController) createEmployee(c *gin.Context, allowPrivileged bool) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	role, ok := models.NormalizeRole(req.Role)
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, errors.New("unknown role"))
		return
	}

	if isPrivilegedRole(role) && !allowPrivileged {
		var total int64
		if err := ec.DB.Model(&models.Employee{}).Count(&total).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		if total > 0 {
			utils.RespondError(c, http.StatusForbidden, errors.New("only an administrator can create "+role+" accounts"))
			return
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	employee := models.Employee{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		EmploymentID: strings.TrimSpace(req.EmploymentID),
		Password:     string(hashed),
		Role:         role,
	}

	var count int64
	ec.DB.Model(&models.Employee{}).Where("email = ?", employee.Email).Count(&count)
	if count > 0 {
		utils.RespondError(c, http.StatusConflict, errors.New("email already registered"))
		return
	}

	if err := ec.DB.Create(&employee).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New employee registered: %s (role=%s)", employee.Email, employee.Role)

	utils.RespondJSON(c, http.StatusCreated, "Employee registered", gin.H{
		"employee_id": employee.ID,
	})
}

// Login returns a JWT for valid credentials
func (ec *EmployeeController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var employee models.Employee
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if err := ec.DB.Where("email = ?", email).First(&employee).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(employee.Password), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	token, err := utils.GenerateToken(employee.ID, employee.Role)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Login successful for employee: %s, role: %s", employee.Email, employee.Role)

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token":    token,
		"role":     employee.Role,
		"employee": employee,
	})
}

// Logout revokes the bearer token of the current request
func (ec *EmployeeController) Logout(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if token == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("token missing"))
		return
	}
	utils.BlacklistToken(token)
	utils.RespondJSON(c, http.StatusOK, "Logged out", nil)
}

func (ec *EmployeeController) GetProfile(c *gin.Context) {
	employeeID := c.GetString("employee_id")
	if employeeID == "" {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("employee id not found in context"))
		return
	}

	var employee models.Employee
	if err := ec.DB.First(&employee, "id = ?", employeeID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Profile data retrieved successfully", employee)
}

// GetEmployees lists employees, optionally narrowed by ?role=
func (ec *EmployeeController) GetEmployees(c *gin.Context) {
	query := ec.DB.Order("first_name ASC, last_name ASC")
	if role := strings.TrimSpace(c.Query("role")); role != "" {
		query = query.Scopes(cleaning.RoleScope(role))
	}

	var employees []models.Employee
	if err := query.Find(&employees).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All employees", employees)
}

// GetCleaners lists employees eligible for assignment. ?q searches name,
// email and employment id.
func (ec *EmployeeController) GetCleaners(c *gin.Context) {
	query := ec.DB.Scopes(cleaning.CleanerScope).
		Order("first_name ASC, last_name ASC")
	if q := strings.ToLower(strings.TrimSpace(c.Query("q"))); q != "" {
		like := "%" + q + "%"
		query = query.Where(
			"(LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(employment_id) LIKE ?)",
			like, like, like, like)
	}

	var employees []models.Employee
	if err := query.Find(&employees).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cleaners", cleaning.FilterCleaners(employees))
}

func (ec *EmployeeController) DeleteEmployee(c *gin.Context) {
	id := c.Param("employee_id")
	if id == c.GetString("employee_id") {
		utils.RespondError(c, http.StatusBadRequest, errors.New("cannot delete your own account"))
		return
	}

	res := ec.DB.Delete(&models.Employee{}, "id = ?", id)
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("employee not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Employee deleted", nil)
}
