package main

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/cuecafe/pos/models"
	"github.com/cuecafe/pos/router"
	"github.com/cuecafe/pos/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()
	os.Exit(m.Run())
}

// TestEndToEndIntegration walks the main counter flow:
// 0. Seed admin user and inventory, login -> token
// 1. Create an order (pending), inventory debited
// 2. Start a pool session, end it onto the same bill
// 3. Mark the order paid
// 4. Daily summary reflects the paid total
func TestEndToEndIntegration(t *testing.T) {
	db := setupIntegrationDB()
	r := router.SetupRouter(db)

	token := loginTest(t, r)

	orderID := createOrderTest(t, r, token)

	billedTotal := billPlaySessionTest(t, r, token, orderID)

	payOrderTest(t, r, token, orderID)

	checkDailySummaryTest(t, r, token, billedTotal)
}

func setupIntegrationDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open in-memory sqlite: %v", err)
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
		log.Fatalf("failed to migrate: %v", err)
	}

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	db.Create(&models.User{
		Name:     "Test Admin",
		Email:    "admin@example.com",
		Password: string(hashedPassword),
		Role:     models.RoleAdmin,
	})

	db.Create(&models.MenuItem{Name: "Masala Chai", Price: 4})
	db.Create(&models.InventoryItem{Name: "Masala Chai", Quantity: 50, Unit: "cup"})

	return db
}

func loginTest(t *testing.T, r *gin.Engine) string {
	body := map[string]string{
		"email":    "admin@example.com",
		"password": "secret123",
	}
	bodyBytes, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("login failed, status %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse login response: %v", err)
	}
	if resp.Data.Token == "" {
		t.Fatal("login returned an empty token")
	}
	return resp.Data.Token
}

func authedRequest(t *testing.T, r *gin.Engine, token, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&buf).Encode(payload); err != nil {
			t.Fatalf("failed to encode payload: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createOrderTest(t *testing.T, r *gin.Engine, token string) uint {
	w := authedRequest(t, r, token, http.MethodPost, "/api/orders", gin.H{
		"table_number": 2,
		"items": []gin.H{
			{"name": "Masala Chai", "quantity": 2, "price": 4},
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create order failed, status %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data models.Order `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse order response: %v", err)
	}
	if resp.Data.TotalAmount != 8 {
		t.Fatalf("expected total 8, got %v", resp.Data.TotalAmount)
	}
	return resp.Data.ID
}

func billPlaySessionTest(t *testing.T, r *gin.Engine, token string, orderID uint) float64 {
	w := authedRequest(t, r, token, http.MethodPost, "/api/play-sessions", gin.H{
		"table_type": "pool",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("start session failed, status %d: %s", w.Code, w.Body.String())
	}

	var started struct {
		Data models.PlaySession `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &started); err != nil {
		t.Fatalf("failed to parse session response: %v", err)
	}

	w = authedRequest(t, r, token, http.MethodPost,
		"/api/play-sessions/"+started.Data.ID+"/bill", gin.H{"order_id": orderID})
	if w.Code != http.StatusOK {
		t.Fatalf("bill session failed, status %d: %s", w.Code, w.Body.String())
	}

	var billed struct {
		Data struct {
			Order models.Order `json:"order"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &billed); err != nil {
		t.Fatalf("failed to parse bill response: %v", err)
	}
	if len(billed.Data.Order.Items) != 2 {
		t.Fatalf("expected 2 items on the order after billing, got %d", len(billed.Data.Order.Items))
	}
	return billed.Data.Order.TotalAmount
}

func payOrderTest(t *testing.T, r *gin.Engine, token string, orderID uint) {
	path := "/api/orders/" + strconv.Itoa(int(orderID)) + "/status"
	w := authedRequest(t, r, token, http.MethodPatch, path, gin.H{"status": "paid"})
	if w.Code != http.StatusOK {
		t.Fatalf("pay order failed, status %d: %s", w.Code, w.Body.String())
	}
}

func checkDailySummaryTest(t *testing.T, r *gin.Engine, token string, wantRevenue float64) {
	w := authedRequest(t, r, token, http.MethodGet, "/api/reports/daily-summary", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("daily summary failed, status %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			TotalOrders  int64   `json:"total_orders"`
			TotalRevenue float64 `json:"total_revenue"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse summary response: %v", err)
	}
	if resp.Data.TotalOrders != 1 {
		t.Fatalf("expected 1 paid order today, got %d", resp.Data.TotalOrders)
	}
	if resp.Data.TotalRevenue != wantRevenue {
		t.Fatalf("expected revenue %v, got %v", wantRevenue, resp.Data.TotalRevenue)
	}
}
