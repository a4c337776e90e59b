package services

import (
	"fmt"
	"time"

	"github.com/printshop/printshop-api/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var fixtureTime = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func itemStatusPtr(s models.OrderItemStatus) *models.OrderItemStatus { return &s }

// SeedFixtures loads the development data set. It does nothing when customers
// already exist, so restarting against a persistent database is safe.
func SeedFixtures(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Customer{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check fixtures: %w", err)
	}
	if count > 0 {
		zap.L().Debug("Fixtures already present, skipping seed")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		users := []models.User{
			{Auth0ID: "auth0|manager", Username: "manager", FullName: "Nguyễn Văn Quản", Email: "manager@printshop.test", Role: models.RoleManager, IsActive: true},
			{Auth0ID: "auth0|designer", Username: "designer", FullName: "Trần Thị Thiết", Email: "designer@printshop.test", Role: models.RoleDesigner, IsActive: true},
			{Auth0ID: "auth0|proofer", Username: "proofer", FullName: "Lê Văn Bình", Email: "proofer@printshop.test", Role: models.RoleProofer, IsActive: true},
		}
		customers := []models.Customer{
			{Code: "ABC", Name: "Công ty ABC", CompanyName: strPtr("Công ty TNHH ABC"), Phone: strPtr("0901234567"), Email: strPtr("order@abc.test")},
			{Code: "XYZ", Name: "Cửa hàng XYZ", Phone: strPtr("0912345678")},
		}
		materials := []models.MaterialType{
			{Code: "DECAL", Name: "Decal giấy", IsActive: true},
			{Code: "IVORY", Name: "Giấy ivory 300", IsActive: true},
		}
		paperSizes := []models.PaperSize{
			{Name: "A4", Width: floatPtr(210), Height: floatPtr(297)},
			{Name: "A3", Width: floatPtr(297), Height: floatPtr(420)},
			{Name: "32x43", Width: floatPtr(320), Height: floatPtr(430)},
		}
		vendors := []models.PlateVendor{
			{Name: "Kẽm Sài Gòn", Phone: strPtr("0281234567"), IsActive: true},
			{Name: "Kẽm Tân Bình", IsActive: true},
		}

		for _, batch := range []interface{}{&users, &customers, &materials, &paperSizes, &vendors} {
			if err := tx.Create(batch).Error; err != nil {
				return fmt.Errorf("failed to seed fixtures: %w", err)
			}
		}

		designer := users[1].ID
		designs := []models.Design{
			{Code: "ABC-T-001-240301", Name: "Tem chai nước", DesignTypeID: strPtr("1"), MaterialTypeID: materials[0].ID, DesignerID: &designer, Status: models.DesignStatusCompleted},
			{Code: "ABC-T-002-240301", Name: "Tem nắp", DesignTypeID: strPtr("1"), MaterialTypeID: materials[0].ID, DesignerID: &designer, Status: models.DesignStatusCompleted},
			{Code: "ABC-H-001", Name: "Hộp quà", DesignTypeID: strPtr("2"), MaterialTypeID: materials[1].ID, DesignerID: &designer, Status: models.DesignStatusInProgress},
			{Code: "XYZ-T-001-240301", Name: "Tem giá", DesignTypeID: strPtr("1"), MaterialTypeID: materials[0].ID, Status: models.DesignStatusPending},
		}
		if err := tx.Create(&designs).Error; err != nil {
			return fmt.Errorf("failed to seed designs: %w", err)
		}

		delivery := fixtureTime.AddDate(0, 0, 14)
		orders := []models.Order{
			{
				Code: "DH-0001", CustomerID: customers[0].ID, Status: models.OrderStatusWaitingForProofing,
				TotalAmount: 2000000, DepositAmount: 1000000, PaymentMethod: strPtr("bank_transfer"),
				DeliveryDate: &delivery, RecipientName: strPtr("Anh Minh"), RecipientPhone: strPtr("0901234567"),
				OrderDetails: []models.OrderDetail{
					{DesignID: designs[0].ID, Quantity: 100, UnitPrice: 10000, TotalPrice: 1000000, DerivedStatus: itemStatusPtr(models.ItemStatusProofing)},
					{DesignID: designs[1].ID, Quantity: 50, UnitPrice: 10000, TotalPrice: 500000, DerivedStatus: itemStatusPtr(models.ItemStatusProofing)},
					{DesignID: designs[2].ID, Quantity: 20, UnitPrice: 25000, TotalPrice: 500000, IsCutOver: true, ItemStatus: itemStatusPtr(models.ItemStatusDesigning)},
				},
			},
			{
				Code: "DH-0002", CustomerID: customers[1].ID, Status: models.OrderStatusDesigning,
				TotalAmount: 300000,
				OrderDetails: []models.OrderDetail{
					{DesignID: designs[3].ID, Quantity: 200, UnitPrice: 1500, TotalPrice: 300000, DerivedStatus: itemStatusPtr(models.ItemStatusDesigning)},
				},
			},
		}
		if err := tx.Create(&orders).Error; err != nil {
			return fmt.Errorf("failed to seed orders: %w", err)
		}

		proofing := models.ProofingOrder{
			Code: "PO-0001", MaterialTypeID: materials[0].ID, PaperSizeID: &paperSizes[2].ID,
			TotalQuantity: 10, Status: models.ProofingStatusWaitingPlate,
			ProofingOrderDesigns: []models.ProofingOrderDesign{
				{OrderDetailID: orders[0].OrderDetails[0].ID, Quantity: 70},
			},
		}
		if err := tx.Create(&proofing).Error; err != nil {
			return fmt.Errorf("failed to seed proofing orders: %w", err)
		}

		issued := fixtureTime.AddDate(0, 0, 1)
		rest := []interface{}{
			&models.Production{ProofingOrderID: proofing.ID, Status: models.ProductionStatusWaiting},
			&models.PlateExport{ProofingOrderID: proofing.ID, PlateVendorID: vendors[0].ID, PlateCount: 4},
			&models.Payment{OrderID: orders[0].ID, Amount: 1000000, Method: "bank_transfer", PaidAt: fixtureTime},
			&models.Invoice{OrderID: orders[0].ID, InvoiceNumber: "HD-0001", Amount: 2000000, TaxAmount: 160000, Status: models.InvoiceStatusIssued, IssuedAt: &issued},
			&models.DeliveryNote{OrderID: orders[0].ID, Code: "PGH-0001", Status: models.DeliveryStatusPending, RecipientName: strPtr("Anh Minh")},
		}
		for _, record := range rest {
			if err := tx.Create(record).Error; err != nil {
				return fmt.Errorf("failed to seed fixtures: %w", err)
			}
		}

		zap.L().Info("Seeded fixtures",
			zap.Int("customers", len(customers)),
			zap.Int("orders", len(orders)),
			zap.Int("designs", len(designs)))
		return nil
	})
}

func floatPtr(f float64) *float64 { return &f }
