package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/yeremiapane/rental-backoffice/utils"
)

// InitCronJobs registers the stale cleaning sweep on c and starts it.
func InitCronJobs(c *cron.Cron, schedule string, job *StaleCleaningJob) error {
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		n, err := job.Run(ctx)
		if err != nil {
			utils.ErrorLogger.WithError(err).Error("Stale cleaning sweep failed")
			return
		}
		utils.InfoLogger.Printf("Stale cleaning sweep done, %d new notifications", n)
	})
	if err != nil {
		return fmt.Errorf("invalid stale cleaning schedule %q: %w", schedule, err)
	}

	c.Start()
	utils.InfoLogger.Println("Cron jobs initialized successfully")
	return nil
}
