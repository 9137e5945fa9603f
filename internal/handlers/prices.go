package handlers

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/royalcourier/backoffice-backend/internal/models"
	"github.com/royalcourier/backoffice-backend/internal/services"
	"github.com/royalcourier/backoffice-backend/pkg/utils"
	"gorm.io/gorm"
)

type ChargeInput struct {
	Range  string  `json:"range"`
	Type   string  `json:"type"`
	Scope  string  `json:"scope"`
	Charge float64 `json:"charge"`
}

type PriceCategoryInput struct {
	Name                 string        `json:"name" binding:"required"`
	BasePrice            float64       `json:"basePrice"`
	InsuranceCharge      float64       `json:"insuranceCharge"`
	WeightCharges        []ChargeInput `json:"weightCharges"`
	DeliveryCharges      []ChargeInput `json:"deliveryCharges"`
	DeliveryScopeCharges []ChargeInput `json:"deliveryScopeCharges"`
}

type PriceInput struct {
	Categories []PriceCategoryInput `json:"categories" binding:"required,min=1"`
	CreatedBy  uint                 `json:"createdBy"`
}

func buildPrice(input PriceInput) models.Price {
	price := models.Price{CreatedBy: input.CreatedBy}
	for _, cat := range input.Categories {
		category := models.PriceCategory{
			Name:            cat.Name,
			BasePrice:       cat.BasePrice,
			InsuranceCharge: cat.InsuranceCharge,
		}
		for _, wc := range cat.WeightCharges {
			category.WeightCharges = append(category.WeightCharges, models.WeightCharge{Range: wc.Range, Charge: wc.Charge})
		}
		for _, dc := range cat.DeliveryCharges {
			category.DeliveryCharges = append(category.DeliveryCharges, models.DeliveryCharge{Type: dc.Type, Charge: dc.Charge})
		}
		for _, sc := range cat.DeliveryScopeCharges {
			category.DeliveryScopeCharges = append(category.DeliveryScopeCharges, models.ScopeCharge{Scope: sc.Scope, Charge: sc.Charge})
		}
		price.Categories = append(price.Categories, category)
	}
	return price
}

func preloadCategories(db *gorm.DB) *gorm.DB {
	return db.Preload("Categories").
		Preload("Categories.WeightCharges").
		Preload("Categories.DeliveryCharges").
		Preload("Categories.DeliveryScopeCharges")
}

// GetPrices lists all price documents with their categories
func GetPrices(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var prices []models.Price
		if err := preloadCategories(db).Order("created_at DESC").Find(&prices).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch prices"})
			return
		}

		c.JSON(200, prices)
	}
}

// GetPriceByID fetches a single price document
func GetPriceByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var price models.Price
		result := preloadCategories(db).First(&price, "id = ?", c.Param("id"))
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				c.JSON(404, gin.H{"error": "Price not found"})
				return
			}
			c.JSON(500, gin.H{"error": "Failed to fetch price"})
			return
		}

		c.JSON(200, price)
	}
}

// CreatePrice stores a new price document and drops the category cache
func CreatePrice(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input PriceInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		price := buildPrice(input)
		if err := db.Create(&price).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create price"})
			return
		}

		if err := services.InvalidatePriceCache(c.Request.Context()); err != nil {
			log.Printf("Failed to invalidate price cache: %v", err)
		}

		c.JSON(201, price)
	}
}

// UpdatePrice replaces a price document's categories and drops the cache
func UpdatePrice(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var price models.Price
		if err := db.First(&price, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Price not found"})
			return
		}

		var input PriceInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("price_id = ?", price.ID).Delete(&models.PriceCategory{}).Error; err != nil {
				return err
			}
			replacement := buildPrice(input)
			replacement.ID = price.ID
			replacement.CreatedAt = price.CreatedAt
			return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(&replacement).Error
		})
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to update price"})
			return
		}

		if err := services.InvalidatePriceCache(c.Request.Context()); err != nil {
			log.Printf("Failed to invalidate price cache: %v", err)
		}

		var updated models.Price
		if err := preloadCategories(db).First(&updated, "id = ?", price.ID).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch price"})
			return
		}
		c.JSON(200, updated)
	}
}

// DeletePrice removes a price document and drops the cache
func DeletePrice(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Select("Categories").Delete(&models.Price{}, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to delete price"})
			return
		}

		if err := services.InvalidatePriceCache(c.Request.Context()); err != nil {
			log.Printf("Failed to invalidate price cache: %v", err)
		}

		c.JSON(200, gin.H{"message": "Price deleted successfully"})
	}
}

type CalculatePriceInput struct {
	DeliveryType     string  `json:"deliveryType" binding:"required"`
	OriginState      string  `json:"originState" binding:"required"`
	DestinationState string  `json:"destinationState" binding:"required"`
	Weight           float64 `json:"weight" binding:"required"`
	Name             string  `json:"name" binding:"required"`
	Insurance        bool    `json:"insurance"`
}

// CalculatePrice is the authoritative quote endpoint: base price + weight
// band + delivery type charge + route scope charge for the named category.
// Insurance is not part of this total; the caller composes it from the
// declared item value. Identical inputs give identical totals.
func CalculatePrice(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CalculatePriceInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if !models.ValidDeliveryType(input.DeliveryType) {
			c.JSON(400, gin.H{"error": "Invalid delivery type"})
			return
		}

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
			switch {
			case errors.Is(err, utils.ErrCategoryNotFound):
				c.JSON(404, gin.H{"error": "Price category not found"})
			case errors.Is(err, utils.ErrInvalidWeight):
				c.JSON(400, gin.H{"error": "Weight must be a positive number"})
			default:
				c.JSON(400, gin.H{"error": err.Error()})
			}
			return
		}

		c.JSON(200, gin.H{
			"totalPrice": breakdown.TotalPrice,
			"breakdown":  breakdown,
		})
	}
}

// loadAllCategories reads the category set through the Redis cache, falling
// back to the database on a miss or on any cache error.
func loadAllCategories(c *gin.Context, db *gorm.DB) ([]models.PriceCategory, error) {
	ctx := c.Request.Context()

	cached, err := services.GetCachedPriceCategories(ctx)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, redis.Nil) {
		log.Printf("Price cache read failed: %v", err)
	}

	var categories []models.PriceCategory
	if err := db.Preload("WeightCharges").
		Preload("DeliveryCharges").
		Preload("DeliveryScopeCharges").
		Find(&categories).Error; err != nil {
		return nil, err
	}

	if err := services.CachePriceCategories(ctx, categories); err != nil {
		log.Printf("Price cache write failed: %v", err)
	}
	return categories, nil
}
