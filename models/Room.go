package models

import (
	"gorm.io/gorm"
)

// Room is a bookable unit within a property. Creation and deletion are
// plain CRUD; the calendar engine treats rooms as immutable.
type Room struct {
	gorm.Model
	PropertyID   uint    `json:"propertyID" gorm:"not null;index"`
	Name         string  `json:"name" gorm:"not null"`
	Floor        string  `json:"floor" gorm:"type:varchar(10)"`
	Capacity     int     `json:"capacity" gorm:"default:2"`
	NightlyPrice float64 `json:"nightlyPrice"`
	Notes        string  `json:"notes"`

	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
}
