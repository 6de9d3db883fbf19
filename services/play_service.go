package services

import (
	"fmt"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/cuecafe/pos/events"
	"github.com/cuecafe/pos/models"
	"github.com/cuecafe/pos/utils"
)

// Hourly rates per table type, in currency units.
var TableRates = map[string]float64{
	models.TableTypePool:    120,
	models.TableTypeSnooker: 150,
}

var tableNames = map[string]string{
	models.TableTypePool:    "Pool",
	models.TableTypeSnooker: "Snooker",
}

// PlayService runs the two-state session clock: a session starts active and
// ends exactly once, converting elapsed wall-clock time into a charge.
type PlayService struct {
	DB     *gorm.DB
	Orders *OrderService
}

func NewPlayService(db *gorm.DB) *PlayService {
	return &PlayService{DB: db, Orders: NewOrderService(db)}
}

type EndSessionResult struct {
	Session  models.PlaySession `json:"session"`
	Cost     float64            `json:"cost"`
	Duration string             `json:"duration"`
}

// ActiveSessions lists sessions still on the clock.
func (s *PlayService) ActiveSessions() ([]models.PlaySession, error) {
	var sessions []models.PlaySession
	err := s.DB.Where("status = ?", models.SessionStatusActive).
		Order("start_time asc").Find(&sessions).Error
	return sessions, err
}

// StartSession opens an active session for a table type with StartTime=now.
func (s *PlayService) StartSession(tableType string) (*models.PlaySession, error) {
	if !models.ValidTableType(tableType) {
		return nil, FieldErrors{"table_type": "Table type must be pool or snooker"}
	}

	session := models.PlaySession{
		TableType: tableType,
		Status:    models.SessionStatusActive,
		StartTime: time.Now(),
	}
	if err := s.DB.Create(&session).Error; err != nil {
		return nil, err
	}

	events.BroadcastSessionUpdate(session)
	return &session, nil
}

// EndSession closes an active session, pricing the elapsed time at the
// table's hourly rate. Ending a finished session is an error and leaves
// EndTime untouched.
func (s *PlayService) EndSession(id string) (*EndSessionResult, error) {
	var session models.PlaySession
	if err := s.DB.Where("id = ?", id).First(&session).Error; err != nil {
		return nil, err
	}
	if session.Status == models.SessionStatusFinished {
		return nil, ErrSessionFinished
	}

	now := time.Now()
	elapsed := now.Sub(session.StartTime)
	cost := math.Round(elapsed.Hours()*TableRates[session.TableType]*100) / 100

	session.Status = models.SessionStatusFinished
	session.EndTime = &now
	if err := s.DB.Save(&session).Error; err != nil {
		return nil, err
	}

	events.BroadcastSessionUpdate(session)
	return &EndSessionResult{
		Session:  session,
		Cost:     cost,
		Duration: utils.FormatDuration(elapsed),
	}, nil
}

// BillTarget selects where the play charge lands: an existing open order or
// a fresh order for a named customer.
type BillTarget struct {
	OrderID      *uint  `json:"order_id"`
	CustomerName string `json:"customer_name"`
}

// EndSessionAndBill ends the session and merges its cost into an order as a
// synthetic line item, e.g. `Pool Table Play (1h 05m)`, qty 1. The line has
// no inventory row, so stock is untouched.
func (s *PlayService) EndSessionAndBill(id string, target BillTarget, createdBy *uint) (*EndSessionResult, *models.Order, error) {
	if target.OrderID == nil && strings.TrimSpace(target.CustomerName) == "" {
		return nil, nil, FieldErrors{"form": "Select an existing order or enter a customer name."}
	}

	result, err := s.EndSession(id)
	if err != nil {
		return nil, nil, err
	}

	playItem := OrderItemInput{
		Name:     fmt.Sprintf("%s Table Play (%s)", tableNames[result.Session.TableType], result.Duration),
		Quantity: 1,
		Price:    result.Cost,
	}

	var order *models.Order
	if target.OrderID != nil {
		order, err = s.Orders.AddItemsToOrder(*target.OrderID, []OrderItemInput{playItem})
	} else {
		name := strings.TrimSpace(target.CustomerName)
		order, err = s.Orders.CreateOrder(OrderInput{
			CustomerName: &name,
			Items:        []OrderItemInput{playItem},
		}, createdBy)
	}
	if err != nil {
		// The session is already finished at this point; the charge still
		// needs to reach a bill, so surface the order failure to the caller.
		return result, nil, err
	}
	return result, order, nil
}
