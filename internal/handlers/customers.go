package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/royalcourier/backoffice-backend/internal/models"
	"gorm.io/gorm"
)

type CustomerInput struct {
	Name        string `json:"name" binding:"required"`
	Address     string `json:"address" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
}

// GetCustomers lists all customers
func GetCustomers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var customers []models.Customer
		if err := db.Order("created_at DESC").Find(&customers).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch customers"})
			return
		}

		c.JSON(200, customers)
	}
}

// CreateCustomer registers a new sender
func CreateCustomer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CustomerInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		customer := models.Customer{
			Name:        input.Name,
			Address:     input.Address,
			PhoneNumber: input.PhoneNumber,
		}

		if err := db.Create(&customer).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create customer"})
			return
		}

		c.JSON(201, customer)
	}
}

// UpdateCustomer edits an existing customer
func UpdateCustomer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var customer models.Customer
		if err := db.First(&customer, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Customer not found"})
			return
		}

		var input CustomerInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		customer.Name = input.Name
		customer.Address = input.Address
		customer.PhoneNumber = input.PhoneNumber

		if err := db.Save(&customer).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update customer"})
			return
		}

		c.JSON(200, customer)
	}
}

// DeleteCustomer removes a customer
func DeleteCustomer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Delete(&models.Customer{}, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to delete customer"})
			return
		}

		c.JSON(200, gin.H{"message": "Customer deleted successfully"})
	}
}

// GetCustomerByPhone resolves a sender by phone number. A miss is a normal
// state for the shipment form, so it answers 404 rather than 500.
func GetCustomerByPhone(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var customer models.Customer
		result := db.Where("phone_number = ?", c.Param("phoneNumber")).First(&customer)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				c.JSON(404, gin.H{"error": "No customer found for phone number"})
				return
			}
			c.JSON(500, gin.H{"error": "Failed to fetch customer"})
			return
		}

		c.JSON(200, customer)
	}
}
