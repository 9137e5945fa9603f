package models

import "gorm.io/gorm"

type VehicleType string

const (
	VehicleBike       VehicleType = "Bike"
	VehicleMotorcycle VehicleType = "Motorcycle"
	VehicleVan        VehicleType = "Van"
	VehicleTruck      VehicleType = "Truck"
	VehicleOther      VehicleType = "Other"
)

// Rider is a delivery rider that can be assigned to shipments.
type Rider struct {
	gorm.Model
	RiderName     string `json:"riderName" gorm:"column:rider_name;not null"`
	VehicleModel  string `json:"vehicleModel" gorm:"column:vehicle_model;not null"`
	PlateNumber   string `json:"plateNumber" gorm:"column:plate_number;not null"`
	ContactNumber string `json:"contactNumber" gorm:"column:contact_number;not null"`
	VehicleType   string `json:"vehicleType" gorm:"column:vehicle_type;not null"`
}

// TableName specifies the table name
func (Rider) TableName() string {
	return "riders"
}

// ValidVehicleType reports whether t is a known vehicle type.
func ValidVehicleType(t string) bool {
	switch VehicleType(t) {
	case VehicleBike, VehicleMotorcycle, VehicleVan, VehicleTruck, VehicleOther:
		return true
	}
	return false
}
