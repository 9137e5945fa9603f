package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/royalcourier/backoffice-backend/internal/models"
	"gorm.io/gorm"
)

type RiderInput struct {
	RiderName     string `json:"riderName" binding:"required"`
	VehicleModel  string `json:"vehicleModel" binding:"required"`
	PlateNumber   string `json:"plateNumber" binding:"required"`
	ContactNumber string `json:"contactNumber" binding:"required"`
	VehicleType   string `json:"vehicleType" binding:"required"`
}

// GetRiders lists all riders
func GetRiders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var riders []models.Rider
		if err := db.Order("rider_name ASC").Find(&riders).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch riders"})
			return
		}

		c.JSON(200, riders)
	}
}

// CreateRider registers a new rider
func CreateRider(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RiderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if !models.ValidVehicleType(input.VehicleType) {
			c.JSON(400, gin.H{"error": "Invalid vehicle type"})
			return
		}

		rider := models.Rider{
			RiderName:     input.RiderName,
			VehicleModel:  input.VehicleModel,
			PlateNumber:   input.PlateNumber,
			ContactNumber: input.ContactNumber,
			VehicleType:   input.VehicleType,
		}

		if err := db.Create(&rider).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create rider"})
			return
		}

		c.JSON(201, rider)
	}
}

// UpdateRider edits an existing rider
func UpdateRider(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rider models.Rider
		if err := db.First(&rider, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Rider not found"})
			return
		}

		var input RiderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if !models.ValidVehicleType(input.VehicleType) {
			c.JSON(400, gin.H{"error": "Invalid vehicle type"})
			return
		}

		rider.RiderName = input.RiderName
		rider.VehicleModel = input.VehicleModel
		rider.PlateNumber = input.PlateNumber
		rider.ContactNumber = input.ContactNumber
		rider.VehicleType = input.VehicleType

		if err := db.Save(&rider).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update rider"})
			return
		}

		c.JSON(200, rider)
	}
}

// DeleteRider removes a rider
func DeleteRider(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Delete(&models.Rider{}, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to delete rider"})
			return
		}

		c.JSON(200, gin.H{"message": "Rider deleted successfully"})
	}
}
