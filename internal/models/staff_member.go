package models

import (
	"strings"
	"time"
)

// StaffMember represents an employee who can receive scoped notifications.
type StaffMember struct {
	BaseModel

	Name         string     `gorm:"type:varchar(120);not null" json:"name"`
	Position     string     `gorm:"type:varchar(64);index" json:"position"`
	Email        string     `gorm:"type:varchar(255);uniqueIndex" json:"email"`
	Phone        string     `gorm:"type:varchar(32)" json:"phone,omitempty"`
	HireDate     *time.Time `json:"hire_date,omitempty"`
	IsActive     bool       `gorm:"default:true;index" json:"is_active"`
	ProfileImage string     `gorm:"type:text" json:"profile_image,omitempty"`
}

// Normalise trims identity fields and lower-cases the email.
func (s *StaffMember) Normalise() {
	s.Name = strings.TrimSpace(s.Name)
	s.Position = strings.TrimSpace(s.Position)
	s.Email = strings.ToLower(strings.TrimSpace(s.Email))
}
