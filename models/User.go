package models

import (
	"gorm.io/gorm"
)

// User is the minimal guest/host identity the engine references.
// Authentication and account management live in a separate service.
type User struct {
	gorm.Model
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber" gorm:"uniqueIndex"`
	Role        string `json:"role" gorm:"type:varchar(20);default:user;index"` // user, host, admin

	Properties []Property `json:"properties,omitempty" gorm:"foreignKey:HostID;references:ID"`
}
