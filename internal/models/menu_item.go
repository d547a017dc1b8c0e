package models

import "strings"

// MenuItem represents a dish or drink offered on the menu.
type MenuItem struct {
	BaseModel

	Name        string  `gorm:"type:varchar(120);not null;index" json:"name"`
	Description string  `gorm:"type:text" json:"description,omitempty"`
	Price       float64 `gorm:"not null" json:"price"`
	Category    string  `gorm:"type:varchar(64);index" json:"category"`
	ImagePath   string  `gorm:"type:text" json:"image_path,omitempty"`
	Tags        string  `gorm:"type:varchar(255)" json:"tags,omitempty"`
	IsActive    bool    `gorm:"default:true;index" json:"is_active"`
}

// Normalise trims free-text fields before persistence.
func (m *MenuItem) Normalise() {
	m.Name = strings.TrimSpace(m.Name)
	m.Category = strings.TrimSpace(m.Category)
}
