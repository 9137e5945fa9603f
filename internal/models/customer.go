package models

import "gorm.io/gorm"

// Customer is a sender on record. Shipments reference customers by phone
// number, which is the unique lookup key used by the shipment form.
type Customer struct {
	gorm.Model
	Name        string `json:"name" gorm:"not null"`
	Address     string `json:"address" gorm:"not null"`
	PhoneNumber string `json:"phoneNumber" gorm:"column:phone_number;unique;not null"`
}

// TableName specifies the table name
func (Customer) TableName() string {
	return "customers"
}
