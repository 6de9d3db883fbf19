package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cuecafe/pos/models"
)

func TestAdjustStockAppliesSignedDelta(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInventoryService(db)
	seedInventory(t, db, "Milk", 5)

	assert.NoError(t, svc.AdjustStock(db, "Milk", -3))
	assert.Equal(t, 2, inventoryQty(t, db, "Milk"))

	assert.NoError(t, svc.AdjustStock(db, "Milk", 4))
	assert.Equal(t, 6, inventoryQty(t, db, "Milk"))
}

func TestAdjustStockAllowsNegativeQuantity(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInventoryService(db)
	seedInventory(t, db, "Milk", 1)

	// No floor: sales can outrun restock bookkeeping.
	assert.NoError(t, svc.AdjustStock(db, "Milk", -3))
	assert.Equal(t, -2, inventoryQty(t, db, "Milk"))
}

func TestAdjustStockUnknownNameIsSilentNoop(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInventoryService(db)

	// Documented behavior: non-stocked service items pass through untouched.
	assert.NoError(t, svc.AdjustStock(db, "Pool Table Play (1h 00m)", -1))

	var count int64
	db.Model(&models.InventoryItem{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreateInventoryItemValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInventoryService(db)

	_, err := svc.Create(InventoryInput{Name: "  "})
	var fe FieldErrors
	assert.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "name")
}

func TestCreateInventoryItemDuplicateName(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInventoryService(db)

	_, err := svc.Create(InventoryInput{Name: "Sugar", Quantity: 10})
	assert.NoError(t, err)

	_, err = svc.Create(InventoryInput{Name: "Sugar", Quantity: 3})
	var fe FieldErrors
	assert.ErrorAs(t, err, &fe)
	assert.Equal(t, "An item with this name already exists.", fe["name"])
}

func TestUpdateInventoryItem(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInventoryService(db)

	item, err := svc.Create(InventoryInput{Name: "Beans", Quantity: 10, Unit: "kg"})
	assert.NoError(t, err)

	threshold := 2
	updated, err := svc.Update(item.ID, InventoryInput{
		Name: "Coffee Beans", Quantity: 8, Unit: "kg", LowStockThreshold: &threshold,
	})
	assert.NoError(t, err)
	assert.Equal(t, "Coffee Beans", updated.Name)
	assert.Equal(t, 8, updated.Quantity)
	assert.Equal(t, 2, *updated.LowStockThreshold)
	assert.False(t, updated.LowStock())
}
