package models

import "gorm.io/gorm"

// Receipt is the printable record generated when a shipment is created. It
// is immutable and is looked up by the shipment's waybill number; when more
// than one exists for a waybill the latest one wins.
type Receipt struct {
	gorm.Model
	WaybillNumber string `json:"waybillNumber" gorm:"column:waybill_number;not null;index"`
	SenderName    string `json:"senderName" gorm:"column:sender_name;not null;index"`
	PDF           []byte `json:"-" gorm:"column:pdf;not null"`
}

// TableName specifies the table name
func (Receipt) TableName() string {
	return "receipts"
}
