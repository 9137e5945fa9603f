package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/royalcourier/backoffice-backend/internal/models"
	"gorm.io/gorm"
)

// receiptView carries the PDF payload the way the print screen consumes it.
type receiptView struct {
	ID            uint   `json:"id"`
	WaybillNumber string `json:"waybillNumber"`
	SenderName    string `json:"senderName"`
	PDF           struct {
		Data []byte `json:"data"`
	} `json:"pdf"`
}

func toReceiptView(r models.Receipt) receiptView {
	v := receiptView{ID: r.ID, WaybillNumber: r.WaybillNumber, SenderName: r.SenderName}
	v.PDF.Data = r.PDF
	return v
}

// GetReceiptsBySender lists all receipts for a sender name
func GetReceiptsBySender(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var receipts []models.Receipt
		if err := db.Where("sender_name = ?", c.Param("senderName")).
			Order("created_at DESC").Find(&receipts).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch receipts"})
			return
		}

		views := make([]receiptView, 0, len(receipts))
		for _, r := range receipts {
			views = append(views, toReceiptView(r))
		}
		c.JSON(200, views)
	}
}

// GetLatestReceiptBySender returns the most recent receipt for a sender
func GetLatestReceiptBySender(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var receipt models.Receipt
		result := db.Where("sender_name = ?", c.Param("senderName")).
			Order("created_at DESC").First(&receipt)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				c.JSON(404, gin.H{"error": "No receipt found for sender"})
				return
			}
			c.JSON(500, gin.H{"error": "Failed to fetch receipt"})
			return
		}

		c.JSON(200, toReceiptView(receipt))
	}
}

// GetReceiptByWaybill returns the latest receipt bound to a waybill number.
// A missing receipt is a normal state for the detail screen, hence 404.
func GetReceiptByWaybill(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var receipt models.Receipt
		result := db.Where("waybill_number = ?", c.Param("waybillNumber")).
			Order("created_at DESC").First(&receipt)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				c.JSON(404, gin.H{"error": "No receipt found for waybill"})
				return
			}
			c.JSON(500, gin.H{"error": "Failed to fetch receipt"})
			return
		}

		c.JSON(200, toReceiptView(receipt))
	}
}

// DeleteReceipt removes a receipt by id
func DeleteReceipt(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Delete(&models.Receipt{}, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to delete receipt"})
			return
		}

		c.JSON(200, gin.H{"message": "Receipt deleted successfully"})
	}
}
