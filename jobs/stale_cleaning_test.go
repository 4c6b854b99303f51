package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/rental-backoffice/database"
	"github.com/yeremiapane/rental-backoffice/models"
	"github.com/yeremiapane/rental-backoffice/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

func setupJobsDB(t *testing.T) *gorm.DB {
	t.Helper()
	utils.InitLogger()
	db, err := gorm.Open(sqlite.Open("file:jobs_test?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.Migrate(db))
	return db
}

func TestStaleCleaningJob(t *testing.T) {
	db := setupJobsDB(t)
	now := time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)
	long := now.Add(-5 * time.Hour)
	short := now.Add(-time.Hour)
	done := now.Add(-time.Minute)

	require.NoError(t, db.Create(&models.Employee{ID: "c1", FirstName: "Ana", Email: "c1@example.com", Password: "x", Role: "Cleaner"}).Error)
	require.NoError(t, db.Create(&[]models.Booking{
		{ID: "overdue", RoomName: strPtr("Haven 3"), CleaningStatus: "in-progress", AssignedCleanerID: strPtr("c1"), CleaningTimeIn: &long},
		{ID: "recent", RoomName: strPtr("Haven 4"), CleaningStatus: "in-progress", AssignedCleanerID: strPtr("c1"), CleaningTimeIn: &short},
		{ID: "finished", CleaningStatus: "in-progress", AssignedCleanerID: strPtr("c1"), CleaningTimeIn: &long, CleaningTimeOut: &done},
		{ID: "waiting", CleaningStatus: "pending"},
	}).Error)

	var pushed []models.Notification
	job := NewStaleCleaningJob(db, 4*time.Hour, func(n models.Notification) { pushed = append(pushed, n) })
	job.now = func() time.Time { return now }

	n, err := job.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Len(t, pushed, 1)
	assert.Equal(t, "overdue", *pushed[0].BookingID)
	assert.Equal(t, "Haven 3 has been in cleaning for 5:00:00", pushed[0].Message)

	// the same session is not flagged twice
	n, err = job.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	var stored []models.Notification
	require.NoError(t, db.Find(&stored).Error)
	require.Len(t, stored, 1)
	assert.Equal(t, "c1", *stored[0].EmployeeID)
	assert.Equal(t, staleCleaningTitle, *stored[0].Title)
}

func TestInitCronJobsRejectsBadSchedule(t *testing.T) {
	utils.InitLogger()
	c := cron.New()
	err := InitCronJobs(c, "not a schedule", &StaleCleaningJob{})
	assert.Error(t, err)
}
