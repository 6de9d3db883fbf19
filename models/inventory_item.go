package models

import "time"

// InventoryItem tracks stock by item name. Quantity has no floor and may go
// negative when sales outrun restock bookkeeping.
type InventoryItem struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Name              string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Quantity          int       `gorm:"not null;default:0" json:"quantity"`
	Unit              string    `gorm:"type:varchar(32)" json:"unit,omitempty"`
	LowStockThreshold *int      `json:"low_stock_threshold,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (i InventoryItem) LowStock() bool {
	return i.LowStockThreshold != nil && i.Quantity <= *i.LowStockThreshold
}
