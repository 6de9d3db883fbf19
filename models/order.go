package models

import "time"

const (
	OrderStatusPending   = "pending"
	OrderStatusDelivered = "delivered"
	OrderStatusPaid      = "paid"
)

type Order struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	TableNumber  *int        `json:"table_number,omitempty"`
	CustomerName *string     `gorm:"type:varchar(255)" json:"customer_name,omitempty"`
	PhoneNumber  *string     `gorm:"type:varchar(32)" json:"phone_number,omitempty"`
	Status       string      `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	TotalAmount  float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"total_amount"`
	CreatedBy    *uint       `gorm:"index" json:"created_by,omitempty"`
	Creator      *User       `gorm:"foreignKey:CreatedBy" json:"-"`
	Items        []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt    time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"not null" json:"updated_at"`
}

// ValidOrderStatus reports whether s is one of the known lifecycle states.
// Transition direction is deliberately not checked here; status writes are
// single-field updates and staff may correct a mis-tap backwards.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusDelivered, OrderStatusPaid:
		return true
	}
	return false
}
