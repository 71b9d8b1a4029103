package models

import (
	"gorm.io/gorm"
)

type Property struct {
	gorm.Model
	HostID       uint    `json:"hostID" gorm:"index"`
	Name         string  `json:"name" gorm:"not null"`
	AddressLine1 string  `json:"addressLine1"`
	AddressLine2 string  `json:"addressLine2"`
	City         string  `json:"city"`
	Country      string  `json:"country"`
	Currency     string  `json:"currency" gorm:"type:varchar(8);default:'CNY'"`
	Lat          float32 `json:"lat"`
	Lng          float32 `json:"lng"`

	Rooms []Room `json:"rooms,omitempty"`
	Host  *User  `json:"host,omitempty" gorm:"foreignKey:HostID"`
}
