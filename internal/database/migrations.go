package database

import (
	"github.com/royalcourier/backoffice-backend/internal/models"
	"gorm.io/gorm"
)

func RunMigrations(db *gorm.DB) error {
	// Create tables if they don't exist
	err := db.AutoMigrate(
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
		return err
	}

	// Status values predate the enum check; normalize then constrain.
	if db.Migrator().HasTable(&models.Shipment{}) {
		db.Exec(`UPDATE shipments SET status = 'Pending' WHERE status IS NULL OR status = ''`)
		db.Exec(`ALTER TABLE shipments DROP CONSTRAINT IF EXISTS shipments_status_check`)
		if err := db.Exec(`ALTER TABLE shipments ADD CONSTRAINT shipments_status_check CHECK (status IN ('Pending', 'In Transit', 'Delivered', 'Canceled'))`).Error; err != nil {
			return err
		}
	}

	if db.Migrator().HasTable(&models.Payroll{}) {
		db.Exec(`ALTER TABLE payrolls DROP CONSTRAINT IF EXISTS payrolls_pay_period_check`)
		if err := db.Exec(`ALTER TABLE payrolls ADD CONSTRAINT payrolls_pay_period_check CHECK (pay_period IN ('weekly', 'endOfMonth'))`).Error; err != nil {
			return err
		}
	}

	return nil
}
