package services

import (
	"errors"
	"fmt"

	"github.com/printshop/printshop-api/models"
	"gorm.io/gorm"
)

var (
	// ErrProofingOrderNotFound indicates the proofing order does not exist.
	ErrProofingOrderNotFound = errors.New("proofing order not found")

	// ErrOrderDetailNotFound indicates an allocated order line does not exist.
	ErrOrderDetailNotFound = errors.New("order detail not found")

	// ErrMaterialMismatch indicates lines of different material types were mixed.
	ErrMaterialMismatch = errors.New("all designs in a proofing order must share one material type")

	// ErrAllocationExceeded indicates a quantity above what is still available.
	ErrAllocationExceeded = errors.New("quantity exceeds available quantity")
)

// AvailableQuantity is quantity minus allocated, never negative.
func AvailableQuantity(quantity, allocated int) int {
	if allocated >= quantity {
		return 0
	}
	return quantity - allocated
}

// AllocatedQuantities sums the quantities already placed on proofing orders
// for each of the given order lines.
func AllocatedQuantities(db *gorm.DB, detailIDs []uint) (map[uint]int, error) {
	allocated := make(map[uint]int, len(detailIDs))
	if len(detailIDs) == 0 {
		return allocated, nil
	}

	var rows []struct {
		OrderDetailID uint
		Total         int
	}
	err := db.Model(&models.ProofingOrderDesign{}).
		Select("order_detail_id, COALESCE(SUM(quantity), 0) AS total").
		Where("order_detail_id IN ?", detailIDs).
		Group("order_detail_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum allocations: %w", err)
	}

	for _, r := range rows {
		allocated[r.OrderDetailID] = r.Total
	}
	return allocated, nil
}

// FillAvailableQuantities sets AvailableQuantity on each line in place.
func FillAvailableQuantities(db *gorm.DB, details []models.OrderDetail) error {
	ids := make([]uint, len(details))
	for i, d := range details {
		ids[i] = d.ID
	}
	allocated, err := AllocatedQuantities(db, ids)
	if err != nil {
		return err
	}
	for i := range details {
		details[i].AvailableQuantity = AvailableQuantity(details[i].Quantity, allocated[details[i].ID])
	}
	return nil
}

// AddDesignsToProofingOrder allocates order lines to a proofing order in one
// transaction. Every line must match the proofing order's material type and
// fit within its available quantity.
func AddDesignsToProofingOrder(db *gorm.DB, proofingOrderID uint, req models.AddDesignsToProofingOrderRequest) (*models.ProofingOrder, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		var po models.ProofingOrder
		if err := tx.First(&po, proofingOrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %d", ErrProofingOrderNotFound, proofingOrderID)
			}
			return err
		}

		ids := make([]uint, 0, len(req.Items))
		requested := make(map[uint]int, len(req.Items))
		for _, item := range req.Items {
			if _, seen := requested[item.OrderDetailID]; !seen {
				ids = append(ids, item.OrderDetailID)
			}
			requested[item.OrderDetailID] += item.Quantity
		}

		var details []models.OrderDetail
		if err := tx.Preload("Design").Where("id IN ?", ids).Find(&details).Error; err != nil {
			return err
		}
		if len(details) != len(ids) {
			return ErrOrderDetailNotFound
		}

		allocated, err := AllocatedQuantities(tx, ids)
		if err != nil {
			return err
		}
		for _, d := range details {
			if d.MaterialTypeID() != po.MaterialTypeID {
				return fmt.Errorf("%w: order detail %d", ErrMaterialMismatch, d.ID)
			}
			available := AvailableQuantity(d.Quantity, allocated[d.ID])
			if requested[d.ID] > available {
				return fmt.Errorf("%w: order detail %d requested %d, available %d",
					ErrAllocationExceeded, d.ID, requested[d.ID], available)
			}
		}

		for _, id := range ids {
			line := models.ProofingOrderDesign{
				ProofingOrderID: po.ID,
				OrderDetailID:   id,
				Quantity:        requested[id],
			}
			if err := tx.Create(&line).Error; err != nil {
				return err
			}
		}

		updates := map[string]interface{}{"total_quantity": req.TotalQuantity}
		if req.PaperSizeID != nil {
			updates["paper_size_id"] = *req.PaperSizeID
		}
		if req.Notes != nil {
			updates["notes"] = *req.Notes
		}
		return tx.Model(&po).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	return LoadProofingOrder(db, proofingOrderID)
}

// LoadProofingOrder fetches a proofing order with its allocations, material
// and paper size.
func LoadProofingOrder(db *gorm.DB, id uint) (*models.ProofingOrder, error) {
	var po models.ProofingOrder
	err := db.Preload("MaterialType").
		Preload("PaperSize").
		Preload("ProofingOrderDesigns.OrderDetail.Design").
		First(&po, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrProofingOrderNotFound, id)
		}
		return nil, err
	}
	return &po, nil
}
