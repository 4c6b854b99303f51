package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/rental-backoffice/utils"
)

func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}

		entry := utils.InfoLogger.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
			"ip":      c.ClientIP(),
			"path":    path,
		})
		if employeeID := c.GetString("employee_id"); employeeID != "" {
			entry = entry.WithField("employee_id", employeeID)
		}
		entry.Info("request")
	}
}

// AssignmentLogger records every assignment attempt and its outcome.
func AssignmentLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		fields := logrus.Fields{
			"path":        c.FullPath(),
			"employee_id": c.GetString("employee_id"),
		}
		utils.InfoLogger.WithFields(fields).Info("Assignment requested")

		c.Next()

		fields["status"] = c.Writer.Status()
		if c.Writer.Status() < 300 {
			utils.InfoLogger.WithFields(fields).Info("Assignment succeeded")
		} else {
			utils.ErrorLogger.WithFields(fields).Error("Assignment rejected")
		}
	}
}
