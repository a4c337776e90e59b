package config

import (
	"fmt"

	"github.com/printshop/printshop-api/models"
	"gorm.io/gorm"
)

// Migrate creates or updates every table of the mock backend
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.MaterialType{},
		&models.Design{},
		&models.Order{},
		&models.OrderDetail{},
		&models.TimelineEntry{},
		&models.Payment{},
		&models.Invoice{},
		&models.DeliveryNote{},
		&models.PaperSize{},
		&models.ProofingOrder{},
		&models.ProofingOrderDesign{},
		&models.Production{},
		&models.PlateVendor{},
		&models.PlateExport{},
		&models.DieExport{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
