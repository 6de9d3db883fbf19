package services

import (
	"strings"

	"gorm.io/gorm"

	"github.com/cuecafe/pos/events"
	"github.com/cuecafe/pos/models"
)

type InventoryService struct {
	DB *gorm.DB
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{DB: db}
}

type InventoryInput struct {
	Name              string `json:"name"`
	Quantity          int    `json:"quantity"`
	Unit              string `json:"unit"`
	LowStockThreshold *int   `json:"low_stock_threshold"`
}

func (in InventoryInput) validate() FieldErrors {
	fe := FieldErrors{}
	if strings.TrimSpace(in.Name) == "" {
		fe["name"] = "Item name is required."
	}
	if in.LowStockThreshold != nil && *in.LowStockThreshold < 0 {
		fe["low_stock_threshold"] = "Threshold cannot be negative."
	}
	if len(fe) == 0 {
		return nil
	}
	return fe
}

func (s *InventoryService) List() ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := s.DB.Order("name asc").Find(&items).Error
	return items, err
}

func (s *InventoryService) Create(in InventoryInput) (*models.InventoryItem, error) {
	if fe := in.validate(); fe != nil {
		return nil, fe
	}
	item := models.InventoryItem{
		Name:              strings.TrimSpace(in.Name),
		Quantity:          in.Quantity,
		Unit:              in.Unit,
		LowStockThreshold: in.LowStockThreshold,
	}
	if err := s.DB.Create(&item).Error; err != nil {
		if IsDuplicateKey(err) {
			return nil, FieldErrors{"name": "An item with this name already exists."}
		}
		return nil, err
	}
	return &item, nil
}

func (s *InventoryService) Update(id uint, in InventoryInput) (*models.InventoryItem, error) {
	if fe := in.validate(); fe != nil {
		return nil, fe
	}
	var item models.InventoryItem
	if err := s.DB.First(&item, id).Error; err != nil {
		return nil, err
	}
	item.Name = strings.TrimSpace(in.Name)
	item.Quantity = in.Quantity
	item.Unit = in.Unit
	item.LowStockThreshold = in.LowStockThreshold
	if err := s.DB.Save(&item).Error; err != nil {
		if IsDuplicateKey(err) {
			return nil, FieldErrors{"name": "An item with this name already exists."}
		}
		return nil, err
	}
	return &item, nil
}

func (s *InventoryService) Delete(id uint) error {
	return s.DB.Delete(&models.InventoryItem{}, id).Error
}

// AdjustStock applies a signed delta to the stock counter of the named item.
// Items without an inventory row are skipped silently: order lines like table
// play charges are services, not stocked goods. The update is a single
// in-database increment, so concurrent orders touching the same item cannot
// lose each other's adjustment.
func (s *InventoryService) AdjustStock(db *gorm.DB, name string, delta int) error {
	res := db.Model(&models.InventoryItem{}).
		Where("name = ?", name).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 || delta >= 0 {
		return nil
	}

	// After a debit, surface the row if it crossed its low-stock threshold.
	var item models.InventoryItem
	if err := db.Where("name = ?", name).First(&item).Error; err == nil && item.LowStock() {
		events.BroadcastLowStock(item)
	}
	return nil
}
