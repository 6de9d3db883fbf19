package services

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/cuecafe/pos/events"
	"github.com/cuecafe/pos/models"
)

// OrderService owns the order lifecycle and keeps inventory stock in step
// with it: every item added to an order debits the matching inventory row by
// its quantity, every item removed credits it back. Each multi-step mutation
// runs inside one database transaction so an order can never end up with new
// items but stale inventory.
type OrderService struct {
	DB        *gorm.DB
	Inventory *InventoryService
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{DB: db, Inventory: NewInventoryService(db)}
}

type OrderItemInput struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type OrderInput struct {
	TableNumber  *int             `json:"table_number"`
	CustomerName *string          `json:"customer_name"`
	PhoneNumber  *string          `json:"phone_number"`
	Items        []OrderItemInput `json:"items"`
}

func validateItems(items []OrderItemInput, fe FieldErrors) {
	for i, item := range items {
		if strings.TrimSpace(item.Name) == "" {
			fe[fmt.Sprintf("items.%d.name", i)] = "Item name is required"
		}
		if item.Quantity < 1 {
			fe[fmt.Sprintf("items.%d.quantity", i)] = "Quantity must be at least 1"
		}
		if item.Price < 0 {
			fe[fmt.Sprintf("items.%d.price", i)] = "Price cannot be negative"
		}
	}
}

func (in OrderInput) validate() FieldErrors {
	fe := FieldErrors{}
	if len(in.Items) == 0 {
		fe["items"] = "At least one item is required"
	}
	validateItems(in.Items, fe)

	hasTable := in.TableNumber != nil
	hasName := in.CustomerName != nil && strings.TrimSpace(*in.CustomerName) != ""
	if !hasTable && !hasName {
		fe["form"] = "Either Table Number or Customer Name must be provided."
	}
	if len(fe) == 0 {
		return nil
	}
	return fe
}

func itemTotal(items []OrderItemInput) float64 {
	var total float64
	for _, item := range items {
		total += float64(item.Quantity) * item.Price
	}
	return total
}

// GetOrders lists orders newest first, optionally filtered by status.
func (s *OrderService) GetOrders(status string) ([]models.Order, error) {
	q := s.DB.Preload("Items").Order("created_at desc")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var orders []models.Order
	err := q.Find(&orders).Error
	return orders, err
}

// GetOrder fetches one order with its items.
func (s *OrderService) GetOrder(id uint) (*models.Order, error) {
	var order models.Order
	if err := s.DB.Preload("Items").First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// CreateOrder validates input, derives the total, inserts the order and its
// items and debits inventory for every item, all in one transaction.
func (s *OrderService) CreateOrder(in OrderInput, createdBy *uint) (*models.Order, error) {
	if fe := in.validate(); fe != nil {
		return nil, fe
	}

	order := models.Order{
		TableNumber:  in.TableNumber,
		CustomerName: in.CustomerName,
		PhoneNumber:  in.PhoneNumber,
		Status:       models.OrderStatusPending,
		TotalAmount:  itemTotal(in.Items),
		CreatedBy:    createdBy,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		if err := s.insertItems(tx, &order, in.Items); err != nil {
			return err
		}
		return s.debitInventory(tx, in.Items)
	})
	if err != nil {
		return nil, err
	}

	events.BroadcastOrderUpdate(order)
	return &order, nil
}

// UpdateOrder replaces the order's item set wholesale: inventory is credited
// back for every existing item, the old rows are deleted, the new set is
// inserted and debited, and the total plus header fields are rewritten.
func (s *OrderService) UpdateOrder(id uint, in OrderInput) (*models.Order, error) {
	if fe := in.validate(); fe != nil {
		return nil, fe
	}

	var order models.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").First(&order, id).Error; err != nil {
			return err
		}

		for _, item := range order.Items {
			if err := s.Inventory.AdjustStock(tx, item.Name, item.Quantity); err != nil {
				return err
			}
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		order.Items = nil

		if err := s.insertItems(tx, &order, in.Items); err != nil {
			return err
		}
		if err := s.debitInventory(tx, in.Items); err != nil {
			return err
		}

		order.TableNumber = in.TableNumber
		order.CustomerName = in.CustomerName
		order.PhoneNumber = in.PhoneNumber
		order.TotalAmount = itemTotal(in.Items)
		return tx.Save(&order).Error
	})
	if err != nil {
		return nil, err
	}

	events.BroadcastOrderUpdate(order)
	return &order, nil
}

// AddItemsToOrder appends items without touching the existing set and bumps
// the stored total by the new subtotal in-database.
func (s *OrderService) AddItemsToOrder(id uint, items []OrderItemInput) (*models.Order, error) {
	fe := FieldErrors{}
	if len(items) == 0 {
		fe["items"] = "At least one item is required"
	}
	validateItems(items, fe)
	if len(fe) > 0 {
		return nil, fe
	}

	var order models.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, id).Error; err != nil {
			return err
		}
		if err := s.insertItems(tx, &order, items); err != nil {
			return err
		}
		if err := s.debitInventory(tx, items); err != nil {
			return err
		}
		return tx.Model(&order).
			Update("total_amount", gorm.Expr("total_amount + ?", itemTotal(items))).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.DB.Preload("Items").First(&order, id).Error; err != nil {
		return nil, err
	}
	events.BroadcastOrderUpdate(order)
	return &order, nil
}

// DeleteOrder restores inventory for every item on the order, then removes
// the order and its items. Paid orders are settled history and stay.
func (s *OrderService) DeleteOrder(id uint) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Preload("Items").First(&order, id).Error; err != nil {
			return err
		}
		if order.Status == models.OrderStatusPaid {
			return ErrPaidOrderDelete
		}

		for _, item := range order.Items {
			if err := s.Inventory.AdjustStock(tx, item.Name, item.Quantity); err != nil {
				return err
			}
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
	if err != nil {
		return err
	}

	events.BroadcastOrderDelete(id)
	return nil
}

// UpdateOrderStatus is a single-field write. The value is checked, the
// transition direction is not.
func (s *OrderService) UpdateOrderStatus(id uint, status string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, FieldErrors{"status": "Status must be pending, delivered or paid"}
	}

	var order models.Order
	if err := s.DB.Preload("Items").First(&order, id).Error; err != nil {
		return nil, err
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	if err := s.DB.Model(&order).Update("status", status).Error; err != nil {
		return nil, err
	}

	events.BroadcastOrderUpdate(order)
	return &order, nil
}

func (s *OrderService) insertItems(tx *gorm.DB, order *models.Order, items []OrderItemInput) error {
	for _, in := range items {
		item := models.OrderItem{
			OrderID:  order.ID,
			Name:     strings.TrimSpace(in.Name),
			Quantity: in.Quantity,
			Price:    in.Price,
		}
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		order.Items = append(order.Items, item)
	}
	return nil
}

func (s *OrderService) debitInventory(tx *gorm.DB, items []OrderItemInput) error {
	for _, item := range items {
		if err := s.Inventory.AdjustStock(tx, strings.TrimSpace(item.Name), -item.Quantity); err != nil {
			return err
		}
	}
	return nil
}
