package models

import "gorm.io/gorm"

// Price is a pricing document. The setup screen creates one category per
// document, but the schema allows several; the category name is the display
// key the shipment form selects by.
type Price struct {
	gorm.Model
	CreatedBy  uint            `json:"createdBy" gorm:"column:created_by"`
	Categories []PriceCategory `json:"categories" gorm:"foreignKey:PriceID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name
func (Price) TableName() string {
	return "prices"
}

// PriceCategory is a named pricing tier: a base price plus ordered charge
// tables keyed by weight range, delivery type and delivery scope.
type PriceCategory struct {
	gorm.Model
	PriceID              uint             `json:"-" gorm:"not null;index"`
	Name                 string           `json:"name" gorm:"not null"`
	BasePrice            float64          `json:"basePrice" gorm:"column:base_price;not null"`
	InsuranceCharge      float64          `json:"insuranceCharge" gorm:"column:insurance_charge;not null;default:0"`
	WeightCharges        []WeightCharge   `json:"weightCharges" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	DeliveryCharges      []DeliveryCharge `json:"deliveryCharges" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	DeliveryScopeCharges []ScopeCharge    `json:"deliveryScopeCharges" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name
func (PriceCategory) TableName() string {
	return "price_categories"
}

// WeightCharge maps a weight range such as "0-5" or "20+" (kg) to a charge.
type WeightCharge struct {
	gorm.Model
	CategoryID uint    `json:"-" gorm:"not null;index"`
	Range      string  `json:"range" gorm:"not null"`
	Charge     float64 `json:"charge" gorm:"not null"`
}

// TableName specifies the table name
func (WeightCharge) TableName() string {
	return "weight_charges"
}

// DeliveryCharge maps a delivery type (hubToHub, officeToHub) to a charge.
type DeliveryCharge struct {
	gorm.Model
	CategoryID uint    `json:"-" gorm:"not null;index"`
	Type       string  `json:"type" gorm:"not null"`
	Charge     float64 `json:"charge" gorm:"not null"`
}

// TableName specifies the table name
func (DeliveryCharge) TableName() string {
	return "delivery_charges"
}

// ScopeCharge maps a delivery scope (withinState, interstate) to a charge.
type ScopeCharge struct {
	gorm.Model
	CategoryID uint    `json:"-" gorm:"not null;index"`
	Scope      string  `json:"scope" gorm:"not null"`
	Charge     float64 `json:"charge" gorm:"not null"`
}

// TableName specifies the table name
func (ScopeCharge) TableName() string {
	return "scope_charges"
}
