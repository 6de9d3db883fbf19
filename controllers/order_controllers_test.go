package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/cuecafe/pos/models"
	"github.com/cuecafe/pos/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()
	os.Exit(m.Run())
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Order{},
		&models.OrderItem{},
		&models.MenuItem{},
		&models.InventoryItem{},
		&models.PlaySession{},
		&models.Setting{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

// setContext stands in for the auth middleware in handler tests.
func setContext(userID uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
	}
}

func orderRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	ctrl := NewOrderController(db)
	r.Use(setContext(1, models.RoleAdmin))
	r.GET("/orders", ctrl.GetAllOrders)
	r.POST("/orders", ctrl.CreateOrder)
	r.GET("/orders/:order_id", ctrl.GetOrderByID)
	r.PUT("/orders/:order_id", ctrl.UpdateOrder)
	r.POST("/orders/:order_id/items", ctrl.AddOrderItems)
	r.PATCH("/orders/:order_id/status", ctrl.UpdateOrderStatus)
	r.DELETE("/orders/:order_id", ctrl.DeleteOrder)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		assert.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateOrderEndpoint(t *testing.T) {
	db := setupTestDB(t)
	r := orderRouter(db)

	w := doJSON(t, r, http.MethodPost, "/orders", gin.H{
		"customer_name": "Asha",
		"items": []gin.H{
			{"name": "Coffee", "quantity": 2, "price": 10},
		},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Status bool         `json:"status"`
		Data   models.Order `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Status)
	assert.Equal(t, 20.0, resp.Data.TotalAmount)
	assert.Equal(t, models.OrderStatusPending, resp.Data.Status)
	assert.NotNil(t, resp.Data.CreatedBy)
	assert.Equal(t, uint(1), *resp.Data.CreatedBy)
}

func TestCreateOrderEndpointValidationErrors(t *testing.T) {
	db := setupTestDB(t)
	r := orderRouter(db)

	w := doJSON(t, r, http.MethodPost, "/orders", gin.H{
		"customer_name": "Asha",
		"items":         []gin.H{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Status bool              `json:"status"`
		Error  map[string]string `json:"error"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Status)
	assert.Contains(t, resp.Error, "items")
}

func TestGetOrderByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	r := orderRouter(db)

	w := doJSON(t, r, http.MethodGet, "/orders/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateOrderStatusEndpoint(t *testing.T) {
	db := setupTestDB(t)
	r := orderRouter(db)

	w := doJSON(t, r, http.MethodPost, "/orders", gin.H{
		"table_number": 3,
		"items":        []gin.H{{"name": "Tea", "quantity": 1, "price": 3}},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Data models.Order `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, r, http.MethodPatch, "/orders/1/status", gin.H{"status": "paid"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPatch, "/orders/1/status", gin.H{"status": "cancelled"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteOrderEndpointConflictOnPaid(t *testing.T) {
	db := setupTestDB(t)
	r := orderRouter(db)

	w := doJSON(t, r, http.MethodPost, "/orders", gin.H{
		"table_number": 1,
		"items":        []gin.H{{"name": "Tea", "quantity": 1, "price": 3}},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPatch, "/orders/1/status", gin.H{"status": "paid"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/orders/1", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAddOrderItemsEndpoint(t *testing.T) {
	db := setupTestDB(t)
	r := orderRouter(db)

	w := doJSON(t, r, http.MethodPost, "/orders", gin.H{
		"customer_name": "Ravi",
		"items":         []gin.H{{"name": "Burger", "quantity": 1, "price": 12}},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/orders/1/items", gin.H{
		"items": []gin.H{{"name": "Fries", "quantity": 2, "price": 4}},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data models.Order `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 20.0, resp.Data.TotalAmount)
	assert.Len(t, resp.Data.Items, 2)
}
