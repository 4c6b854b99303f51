package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee roles. RoleCleaner is the one eligible for cleaning assignments.
const (
	RoleAdmin     = "Admin"
	RoleManager   = "Manager"
	RoleFrontDesk = "Front Desk"
	RoleCleaner   = "Cleaner"
)

type Employee struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	FirstName    string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName     string    `gorm:"type:varchar(100)" json:"last_name"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	EmploymentID string    `gorm:"type:varchar(50);index" json:"employment_id"`
	Password     string    `gorm:"type:varchar(255);not null" json:"-"`
	Role         string    `gorm:"type:varchar(50);not null" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NormalizeRole maps a role name to its canonical spelling, ignoring case and
// surrounding spaces. ok is false for unknown roles.
func NormalizeRole(role string) (canonical string, ok bool) {
	role = strings.TrimSpace(role)
	for _, r := range []string{RoleAdmin, RoleManager, RoleFrontDesk, RoleCleaner} {
		if strings.EqualFold(r, role) {
			return r, true
		}
	}
	return "", false
}

func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

func (e Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}
