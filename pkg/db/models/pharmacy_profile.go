package models

import "time"

// PharmacyProfile holds the storefront configuration record served to the
// dashboard (name, contact details, operating hours).
type PharmacyProfile struct {
	ID               int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name             string    `gorm:"column:name;not null" json:"name"`
	Description      string    `gorm:"column:description" json:"description,omitempty"`
	Address          string    `gorm:"column:address" json:"address,omitempty"`
	Phone            string    `gorm:"column:phone" json:"phone,omitempty"`
	Email            string    `gorm:"column:email" json:"email,omitempty"`
	OperatingHours   string    `gorm:"column:operating_hours" json:"operating_hours,omitempty"`
	EmergencyContact string    `gorm:"column:emergency_contact" json:"emergency_contact,omitempty"`
	LicenseNumber    string    `gorm:"column:license_number" json:"license_number,omitempty"`
	Website          string    `gorm:"column:website" json:"website,omitempty"`
	SpecialServices  string    `gorm:"column:special_services" json:"special_services,omitempty"`
	IsActive         bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
