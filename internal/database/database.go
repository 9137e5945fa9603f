package database

import (
	"fmt"
	"os"

	"github.com/royalcourier/backoffice-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitDB() (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Auto migrate the schema
	err = db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Branch{},
		&models.Payroll{},
		&models.Rider{},
		&models.Price{},
		&models.PriceCategory{},
		&models.WeightCharge{},
		&models.DeliveryCharge{},
		&models.ScopeCharge{},
		&models.Shipment{},
		&models.Receipt{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}
