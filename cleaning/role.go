package cleaning

import (
	"strings"

	"github.com/yeremiapane/rental-backoffice/models"
	"gorm.io/gorm"
)

// IsCleaner is the one place the cleaner role is matched.
func IsCleaner(e models.Employee) bool {
	return IsCleanerRole(e.Role)
}

func IsCleanerRole(role string) bool {
	return strings.EqualFold(strings.TrimSpace(role), models.RoleCleaner)
}

// RoleScope narrows an employee query to role, matched the way IsCleanerRole
// matches: trimmed and case-insensitive.
func RoleScope(role string) func(db *gorm.DB) *gorm.DB {
	role = strings.ToLower(strings.TrimSpace(role))
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("LOWER(TRIM(role)) = ?", role)
	}
}

// CleanerScope is the SQL side of IsCleaner.
func CleanerScope(db *gorm.DB) *gorm.DB {
	return RoleScope(models.RoleCleaner)(db)
}

// FilterCleaners keeps the employees eligible for assignment, in input order.
func FilterCleaners(employees []models.Employee) []models.Employee {
	cleaners := make([]models.Employee, 0, len(employees))
	for _, e := range employees {
		if IsCleaner(e) {
			cleaners = append(cleaners, e)
		}
	}
	return cleaners
}
