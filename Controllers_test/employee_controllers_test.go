package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yeremiapane/rental-backoffice/controllers"
	"github.com/yeremiapane/rental-backoffice/middlewares"
	"github.com/yeremiapane/rental-backoffice/models"
)

func setupEmployeeRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	ctrl := controllers.NewEmployeeController(db)
	router.POST("/register", ctrl.Register)
	router.POST("/login", ctrl.Login)
	admin := router.Group("/admin", middlewares.AuthMiddleware())
	admin.GET("/profile", ctrl.GetProfile)
	admin.POST("/logout", ctrl.Logout)
	admin.GET("/employees", ctrl.GetEmployees)
	admin.GET("/cleaners", ctrl.GetCleaners)
	admin.POST("/employees", middlewares.RequireRoles(models.RoleAdmin), ctrl.CreateEmployee)
	return router
}

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	router := setupEmployeeRouter(db)

	w, env := doJSON(t, router, http.MethodPost, "/register", map[string]string{
		"first_name": "Rina",
		"last_name":  "Putri",
		"email":      "Rina@Example.com",
		"password":   "password123",
		"role":       "front desk",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Employee registered", env.Message)

	var stored models.Employee
	require.NoError(t, db.First(&stored, "email = ?", "rina@example.com").Error)
	assert.Equal(t, models.RoleFrontDesk, stored.Role)
	assert.NotEqual(t, "password123", stored.Password)

	w, _ = doJSON(t, router, http.MethodPost, "/register", map[string]string{
		"first_name": "Rina", "email": "rina@example.com", "password": "password123", "role": "Cleaner",
	}, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = doJSON(t, router, http.MethodPost, "/login", map[string]string{
		"email": "rina@example.com", "password": "wrong-password",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env = doJSON(t, router, http.MethodPost, "/login", map[string]string{
		"email": "rina@example.com", "password": "password123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}
	decode(t, env.Data, &login)
	require.NotEmpty(t, login.Token)
	assert.Equal(t, models.RoleFrontDesk, login.Role)

	w, env = doJSON(t, router, http.MethodGet, "/admin/profile", nil, login.Token)
	require.Equal(t, http.StatusOK, w.Code)
	var profile models.Employee
	decode(t, env.Data, &profile)
	assert.Equal(t, stored.ID, profile.ID)
	assert.Empty(t, profile.Password)

	w, _ = doJSON(t, router, http.MethodPost, "/admin/logout", nil, login.Token)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = doJSON(t, router, http.MethodGet, "/admin/profile", nil, login.Token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	db := setupTestDB(t)
	router := setupEmployeeRouter(db)

	w, _ := doJSON(t, router, http.MethodPost, "/register", map[string]string{
		"first_name": "Joko", "email": "joko@example.com", "password": "password123", "role": "Chef",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterLimitsPrivilegedRoles(t *testing.T) {
	db := setupTestDB(t)
	router := setupEmployeeRouter(db)

	// the first account bootstraps the system
	w, _ := doJSON(t, router, http.MethodPost, "/register", map[string]string{
		"first_name": "Owner", "email": "owner@example.com", "password": "password123", "role": "admin",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	for _, role := range []string{"Admin", "manager"} {
		w, _ = doJSON(t, router, http.MethodPost, "/register", map[string]string{
			"first_name": "Mallory", "email": "mallory@example.com", "password": "password123", "role": role,
		}, "")
		assert.Equal(t, http.StatusForbidden, w.Code, role)
	}
	var count int64
	db.Model(&models.Employee{}).Where("email = ?", "mallory@example.com").Count(&count)
	assert.Zero(t, count)

	w, _ = doJSON(t, router, http.MethodPost, "/register", map[string]string{
		"first_name": "Sari", "email": "sari@example.com", "password": "password123", "role": "Cleaner",
	}, "")
	assert.Equal(t, http.StatusCreated, w.Code)

	var owner models.Employee
	require.NoError(t, db.First(&owner, "email = ?", "owner@example.com").Error)
	frontDesk := seedEmployee(t, db, "fina", models.RoleFrontDesk)

	manager := map[string]string{
		"first_name": "Dewi", "email": "dewi@example.com", "password": "password123", "role": "Manager",
	}
	w, _ = doJSON(t, router, http.MethodPost, "/admin/employees", manager, tokenFor(t, frontDesk))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = doJSON(t, router, http.MethodPost, "/admin/employees", manager, tokenFor(t, owner))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created models.Employee
	require.NoError(t, db.First(&created, "email = ?", "dewi@example.com").Error)
	assert.Equal(t, models.RoleManager, created.Role)
}

func TestGetCleanersUsesOneRolePredicate(t *testing.T) {
	db := setupTestDB(t)
	router := setupEmployeeRouter(db)

	admin := seedEmployee(t, db, "admin", models.RoleAdmin)
	seedEmployee(t, db, "ayu", "Cleaner")
	seedEmployee(t, db, "budi", "cleaner")
	seedEmployee(t, db, "citra", " CLEANER ")
	seedEmployee(t, db, "dewi", models.RoleManager)
	token := tokenFor(t, admin)

	w, env := doJSON(t, router, http.MethodGet, "/admin/cleaners", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var cleaners []models.Employee
	decode(t, env.Data, &cleaners)
	require.Len(t, cleaners, 3)
	assert.Equal(t, "ayu", cleaners[0].ID)

	w, env = doJSON(t, router, http.MethodGet, "/admin/cleaners?q=BUD", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, env.Data, &cleaners)
	require.Len(t, cleaners, 1)
	assert.Equal(t, "budi", cleaners[0].ID)

	w, env = doJSON(t, router, http.MethodGet, "/admin/employees?role=manager", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var managers []models.Employee
	decode(t, env.Data, &managers)
	require.Len(t, managers, 1)
	assert.Equal(t, "dewi", managers[0].ID)

	w, _ = doJSON(t, router, http.MethodGet, "/admin/cleaners", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
