package models

import "gorm.io/gorm"

type DeliveryType string

const (
	DeliveryHubToHub    DeliveryType = "hubToHub"
	DeliveryOfficeToHub DeliveryType = "officeToHub"
)

type DeliveryScope string

const (
	ScopeWithinState DeliveryScope = "withinState"
	ScopeInterstate  DeliveryScope = "interstate"
)

type ShipmentStatus string

const (
	StatusPending   ShipmentStatus = "Pending"
	StatusInTransit ShipmentStatus = "In Transit"
	StatusDelivered ShipmentStatus = "Delivered"
	StatusCanceled  ShipmentStatus = "Canceled"
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentTransfer PaymentMethod = "transfer"
)

type ItemCondition string

const (
	ConditionGood             ItemCondition = "Not Damaged or Good"
	ConditionPartiallyDamaged ItemCondition = "Partially Damaged"
	ConditionDamaged          ItemCondition = "Damaged"
)

// Shipment is the central aggregate. The core fields are immutable after
// creation; only the status is updated afterwards. The waybill number is
// generated server side and is the external lookup key.
type Shipment struct {
	gorm.Model
	WaybillNumber     string   `json:"waybillNumber" gorm:"column:waybill_number;unique;not null"`
	SenderName        string   `json:"senderName" gorm:"column:sender_name;not null"`
	SenderPhoneNumber string   `json:"senderPhoneNumber" gorm:"column:sender_phone_number;not null"`
	ReceiverName      string   `json:"receiverName" gorm:"column:receiver_name;not null"`
	ReceiverAddress   string   `json:"receiverAddress" gorm:"column:receiver_address;not null"`
	ReceiverPhone     string   `json:"receiverPhone" gorm:"column:receiver_phone;not null"`
	Description       string   `json:"description" gorm:"not null"`
	DeliveryType      string   `json:"deliveryType" gorm:"column:delivery_type;not null"`
	OriginState       string   `json:"originState" gorm:"column:origin_state;not null"`
	DestinationState  string   `json:"destinationState" gorm:"column:destination_state;not null"`
	Weight            float64  `json:"weight" gorm:"not null"`
	Category          string   `json:"name" gorm:"column:category;not null"`
	Insurance         bool     `json:"insurance" gorm:"not null;default:false"`
	ItemValue         float64  `json:"itemValue" gorm:"column:item_value;not null;default:0"`
	InsuranceAmount   float64  `json:"insuranceAmount" gorm:"column:insurance_amount;not null;default:0"`
	ItemCondition     string   `json:"itemCondition" gorm:"column:item_condition;not null"`
	TotalPrice        float64  `json:"totalPrice" gorm:"column:total_price;not null"`
	PaymentMethod     string   `json:"paymentMethod" gorm:"column:payment_method;not null"`
	AmountPaid        float64  `json:"amountPaid" gorm:"column:amount_paid;not null"`
	BranchName        string   `json:"branchName" gorm:"column:branch_name;not null"`
	RiderID           uint     `json:"riderId" gorm:"column:rider_id;not null"`
	StaffID           uint     `json:"staffId" gorm:"column:staff_id;not null"`
	Status            string   `json:"status" gorm:"not null;default:'Pending'"`
	Rider             *Rider   `json:"rider,omitempty" gorm:"foreignKey:RiderID"`
	Staff             *Payroll `json:"staff,omitempty" gorm:"foreignKey:StaffID"`
}

// TableName specifies the table name
func (Shipment) TableName() string {
	return "shipments"
}

// ValidShipmentStatus reports whether s is a known shipment status.
func ValidShipmentStatus(s string) bool {
	switch ShipmentStatus(s) {
	case StatusPending, StatusInTransit, StatusDelivered, StatusCanceled:
		return true
	}
	return false
}

// ValidDeliveryType reports whether t is a known delivery type.
func ValidDeliveryType(t string) bool {
	return DeliveryType(t) == DeliveryHubToHub || DeliveryType(t) == DeliveryOfficeToHub
}

// ValidItemCondition reports whether c is a known item condition.
func ValidItemCondition(c string) bool {
	switch ItemCondition(c) {
	case ConditionGood, ConditionPartiallyDamaged, ConditionDamaged:
		return true
	}
	return false
}

// ValidPaymentMethod reports whether m is a known payment method.
func ValidPaymentMethod(m string) bool {
	return PaymentMethod(m) == PaymentCash || PaymentMethod(m) == PaymentTransfer
}
