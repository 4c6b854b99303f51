package database

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/yeremiapane/rental-backoffice/models"
	"github.com/yeremiapane/rental-backoffice/utils"
	"gorm.io/gorm"
)

func Migrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "20240601_create_employees",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Employee{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("employees")
			},
		},
		{
			ID: "20240601_create_payment_methods",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.PaymentMethod{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("payment_methods")
			},
		},
		{
			ID: "20240601_create_bookings",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Booking{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("bookings")
			},
		},
		{
			ID: "20240602_create_cleaning_logs",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.CleaningLog{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("cleaning_logs")
			},
		},
		{
			ID: "20240602_create_notifications",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Notification{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("notifications")
			},
		},
	}
}

// Migrate brings the schema up to date.
func Migrate(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, Migrations())
	if err := m.Migrate(); err != nil {
		return err
	}
	if utils.InfoLogger != nil {
		utils.InfoLogger.Println("Migrations completed.")
	}
	return nil
}
