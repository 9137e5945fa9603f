package handlers

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/royalcourier/backoffice-backend/internal/models"
	"github.com/royalcourier/backoffice-backend/internal/services"
	"github.com/royalcourier/backoffice-backend/pkg/utils"
	"gorm.io/gorm"
)

// InsuranceRate is the fraction of the declared item value charged when
// insurance is requested (0.5%).
const InsuranceRate = 0.005

type ShipmentInput struct {
	SenderName        string  `json:"senderName" binding:"required"`
	SenderPhoneNumber string  `json:"senderPhoneNumber" binding:"required"`
	ReceiverName      string  `json:"receiverName" binding:"required"`
	ReceiverAddress   string  `json:"receiverAddress" binding:"required"`
	ReceiverPhone     string  `json:"receiverPhone" binding:"required"`
	Description       string  `json:"description" binding:"required"`
	DeliveryType      string  `json:"deliveryType" binding:"required"`
	OriginState       string  `json:"originState" binding:"required"`
	DestinationState  string  `json:"destinationState" binding:"required"`
	Weight            float64 `json:"weight" binding:"required"`
	Name              string  `json:"name" binding:"required"` // category name
	Insurance         bool    `json:"insurance"`
	ItemValue         float64 `json:"itemValue"`
	ItemCondition     string  `json:"itemCondition"`
	PaymentMethod     string  `json:"paymentMethod" binding:"required"`
	AmountPaid        float64 `json:"amountPaid"`
	BranchName        string  `json:"branchName" binding:"required"`
	RiderID           uint    `json:"riderId" binding:"required"`
	StaffID           uint    `json:"staffId" binding:"required"`
}

// GetShipments lists all shipments, newest first
func GetShipments(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var shipments []models.Shipment
		if err := db.Order("created_at DESC").Find(&shipments).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch shipments"})
			return
		}

		c.JSON(200, shipments)
	}
}

// CreateShipment validates every referenced entity, recomputes the price and
// the insurance amount server side, generates the waybill number, persists
// the shipment together with its receipt, and notifies connected sessions.
func CreateShipment(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ShipmentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if !models.ValidDeliveryType(input.DeliveryType) {
			c.JSON(400, gin.H{"error": "Invalid delivery type"})
			return
		}
		if !models.ValidPaymentMethod(input.PaymentMethod) {
			c.JSON(400, gin.H{"error": "Invalid payment method"})
			return
		}
		if input.ItemCondition == "" {
			input.ItemCondition = string(models.ConditionGood)
		}
		if !models.ValidItemCondition(input.ItemCondition) {
			c.JSON(400, gin.H{"error": "Invalid item condition"})
			return
		}
		if input.Insurance && input.ItemValue < 0 {
			c.JSON(400, gin.H{"error": "Item value must be non-negative"})
			return
		}

		// Cross-reference every entity the shipment points at.
		var customer models.Customer
		if result := db.Where("phone_number = ?", input.SenderPhoneNumber).First(&customer); result.Error != nil {
			c.JSON(400, gin.H{"error": "Sender is not a registered customer"})
			return
		}
		var branch models.Branch
		if result := db.Where("name = ?", input.BranchName).First(&branch); result.Error != nil {
			c.JSON(400, gin.H{"error": "Unknown branch"})
			return
		}
		var rider models.Rider
		if result := db.First(&rider, "id = ?", input.RiderID); result.Error != nil {
			c.JSON(400, gin.H{"error": "Unknown rider"})
			return
		}
		var staff models.Payroll
		if result := db.First(&staff, "id = ?", input.StaffID); result.Error != nil {
			c.JSON(400, gin.H{"error": "Unknown staff"})
			return
		}

		// The price is authoritative here, not whatever the form held.
		categories, err := loadAllCategories(c, db)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch price categories"})
			return
		}
		breakdown, err := utils.CalculateShipmentPrice(
			categories, input.Name, input.DeliveryType,
			input.OriginState, input.DestinationState, input.Weight,
		)
		if err != nil {
			c.JSON(400, gin.H{"error": "Failed to calculate shipment price: " + err.Error()})
			return
		}

		insuranceAmount := 0.0
		if input.Insurance {
			insuranceAmount = input.ItemValue * InsuranceRate
		}
		totalPrice := breakdown.TotalPrice + insuranceAmount

		amountPaid := input.AmountPaid
		if amountPaid == 0 {
			amountPaid = totalPrice
		}

		shipment := models.Shipment{
			WaybillNumber:     utils.GenerateWaybillNumber(),
			SenderName:        input.SenderName,
			SenderPhoneNumber: input.SenderPhoneNumber,
			ReceiverName:      input.ReceiverName,
			ReceiverAddress:   input.ReceiverAddress,
			ReceiverPhone:     input.ReceiverPhone,
			Description:       input.Description,
			DeliveryType:      input.DeliveryType,
			OriginState:       input.OriginState,
			DestinationState:  input.DestinationState,
			Weight:            input.Weight,
			Category:          input.Name,
			Insurance:         input.Insurance,
			ItemValue:         input.ItemValue,
			InsuranceAmount:   insuranceAmount,
			ItemCondition:     input.ItemCondition,
			TotalPrice:        totalPrice,
			PaymentMethod:     input.PaymentMethod,
			AmountPaid:        amountPaid,
			BranchName:        input.BranchName,
			RiderID:           input.RiderID,
			StaffID:           input.StaffID,
			Status:            string(models.StatusPending),
		}

		// The shipment and its receipt land together or not at all.
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&shipment).Error; err != nil {
				return err
			}

			pdf, err := services.GenerateReceiptPDF(&shipment)
			if err != nil {
				return err
			}

			receipt := models.Receipt{
				WaybillNumber: shipment.WaybillNumber,
				SenderName:    shipment.SenderName,
				PDF:           pdf,
			}
			return tx.Create(&receipt).Error
		})
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to create shipment"})
			return
		}

		// Best-effort side effects; the shipment already exists.
		var receipt models.Receipt
		if err := db.Where("waybill_number = ?", shipment.WaybillNumber).First(&receipt).Error; err == nil {
			if err := services.ArchiveReceiptPDF(shipment.WaybillNumber, receipt.PDF); err != nil {
				log.Printf("Failed to archive receipt %s: %v", shipment.WaybillNumber, err)
			}
		}
		hub.BroadcastShipmentCreated(services.ShipmentCreated{
			ShipmentID:    shipment.ID,
			WaybillNumber: shipment.WaybillNumber,
			SenderName:    shipment.SenderName,
			BranchName:    shipment.BranchName,
		})

		c.JSON(201, gin.H{"shipment": shipment})
	}
}

// GetShipmentByID fetches a shipment by its database id
func GetShipmentByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var shipment models.Shipment
		result := db.Preload("Rider").Preload("Staff").First(&shipment, "id = ?", c.Param("id"))
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				c.JSON(404, gin.H{"error": "Shipment not found"})
				return
			}
			c.JSON(500, gin.H{"error": "Failed to fetch shipment"})
			return
		}

		c.JSON(200, shipment)
	}
}

// GetShipmentByWaybill fetches a shipment by its waybill number
func GetShipmentByWaybill(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var shipment models.Shipment
		result := db.Preload("Rider").Preload("Staff").
			Where("waybill_number = ?", c.Param("waybillNumber")).First(&shipment)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				c.JSON(404, gin.H{"error": "Shipment not found"})
				return
			}
			c.JSON(500, gin.H{"error": "Failed to fetch shipment"})
			return
		}

		c.JSON(200, shipment)
	}
}

type ShipmentStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// UpdateShipmentStatus is the only mutation allowed after creation
func UpdateShipmentStatus(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ShipmentStatusInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if !models.ValidShipmentStatus(input.Status) {
			c.JSON(400, gin.H{"error": "Invalid shipment status"})
			return
		}

		var shipment models.Shipment
		if err := db.First(&shipment, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Shipment not found"})
			return
		}

		if err := db.Model(&shipment).Update("status", input.Status).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update shipment status"})
			return
		}
		shipment.Status = input.Status

		hub.BroadcastShipmentStatus(services.ShipmentStatusUpdate{
			ShipmentID:    shipment.ID,
			WaybillNumber: shipment.WaybillNumber,
			Status:        shipment.Status,
		})
		if err := services.PublishShipmentUpdate(c.Request.Context(), shipment.WaybillNumber, shipment.Status); err != nil {
			log.Printf("Failed to publish shipment update: %v", err)
		}

		c.JSON(200, shipment)
	}
}
