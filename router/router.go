package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/rental-backoffice/controllers"
	"github.com/yeremiapane/rental-backoffice/middlewares"
	"github.com/yeremiapane/rental-backoffice/models"
	"github.com/yeremiapane/rental-backoffice/realtime"
	"github.com/yeremiapane/rental-backoffice/services"
	"gorm.io/gorm"
)

// Dependencies are the wired components the HTTP layer talks to.
type Dependencies struct {
	DB       *gorm.DB
	Board    services.BoardReader
	Cache    services.BoardCache
	Assigner controllers.Assigner
	Hub      *realtime.Hub
	// Notify pushes manually created notifications to the hub
	Notify func(models.Notification)

	CORSOrigins []string
	RateLimit   int // requests per second per IP, 0 disables
}

func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(deps.CORSOrigins))
	if deps.RateLimit > 0 {
		r.Use(middlewares.NewRateLimiter(deps.RateLimit, time.Second).RateLimit())
	}

	employeeCtrl := controllers.NewEmployeeController(deps.DB)
	bookingCtrl := controllers.NewBookingController(deps.DB, deps.Board)
	cleaningCtrl := controllers.NewCleaningController(deps.Board, deps.Cache, deps.Assigner)
	cleaningLogCtrl := controllers.NewCleaningLogController(deps.DB)
	paymentMethodCtrl := controllers.NewPaymentMethodController(deps.DB)
	notifCtrl := controllers.NewNotificationController(deps.DB, deps.Notify)
	adminCtrl := controllers.NewAdminController(deps.DB)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public
	auth := r.Group("/", middlewares.NewStrictRateLimiter())
	{
		auth.POST("/register", employeeCtrl.Register)
		auth.POST("/login", employeeCtrl.Login)
	}
	r.GET("/payment-methods", paymentMethodCtrl.GetActivePaymentMethods)

	if deps.Hub != nil {
		r.GET("/ws", middlewares.WebSocketAuthMiddleware(), controllers.WebSocketHandler(deps.Hub))
	}

	staffRoles := []string{models.RoleAdmin, models.RoleManager, models.RoleFrontDesk}
	managerRoles := []string{models.RoleAdmin, models.RoleManager}

	admin := r.Group("/admin", middlewares.AuthMiddleware())
	{
		admin.GET("/profile", employeeCtrl.GetProfile)
		admin.POST("/logout", employeeCtrl.Logout)
		admin.GET("/dashboard", adminCtrl.GetDashboardStats)

		// Employees
		admin.GET("/employees", employeeCtrl.GetEmployees)
		admin.GET("/cleaners", employeeCtrl.GetCleaners)
		admin.POST("/employees", middlewares.RequireRoles(models.RoleAdmin), employeeCtrl.CreateEmployee)
		admin.DELETE("/employees/:employee_id", middlewares.RequireRoles(managerRoles...), employeeCtrl.DeleteEmployee)

		// Bookings
		admin.GET("/bookings", bookingCtrl.GetAllBookings)
		admin.GET("/bookings/:booking_id", bookingCtrl.GetBookingByID)
		staff := admin.Group("/", middlewares.RequireRoles(staffRoles...))
		staff.POST("/bookings", bookingCtrl.CreateBooking)
		staff.PATCH("/bookings/:booking_id", bookingCtrl.UpdateBooking)
		staff.DELETE("/bookings/:booking_id", bookingCtrl.DeleteBooking)

		// Cleaning board
		admin.GET("/cleaning/board", cleaningCtrl.GetBoard)
		admin.GET("/cleaning/queue", cleaningCtrl.GetQueue)
		admin.GET("/cleaning/availability", cleaningCtrl.GetAvailability)
		admin.GET("/cleaning/metrics", cleaningCtrl.GetMetrics)
		admin.POST("/cleaning/refresh", cleaningCtrl.Refresh)
		assign := admin.Group("/cleaning", middlewares.RequireRoles(staffRoles...), middlewares.AssignmentLogger())
		assign.POST("/assign", cleaningCtrl.Assign)
		assign.POST("/assign-next", cleaningCtrl.AssignNext)

		// Cleaning history
		admin.GET("/cleaning-logs", cleaningLogCtrl.GetAllCleaningLogs)
		admin.GET("/cleaning-logs/:clean_id", cleaningLogCtrl.GetCleaningLogByID)

		// Payment methods
		managers := admin.Group("/", middlewares.RequireRoles(managerRoles...))
		managers.GET("/payment-methods", paymentMethodCtrl.GetAllPaymentMethods)
		managers.POST("/payment-methods", paymentMethodCtrl.CreatePaymentMethod)
		managers.PUT("/payment-methods/:method_id", paymentMethodCtrl.UpdatePaymentMethod)
		managers.DELETE("/payment-methods/:method_id", paymentMethodCtrl.DeletePaymentMethod)

		// Notifications
		admin.GET("/notifications", notifCtrl.GetAllNotifications)
		admin.GET("/notifications/:notif_id", notifCtrl.GetNotificationByID)
		admin.POST("/notifications", notifCtrl.CreateNotification)
		admin.DELETE("/notifications/:notif_id", notifCtrl.DeleteNotification)
	}

	return r
}
