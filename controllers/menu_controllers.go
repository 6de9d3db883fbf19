package controllers

import (
	"encoding/csv"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cuecafe/pos/models"
	"github.com/cuecafe/pos/services"
	"github.com/cuecafe/pos/utils"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// GetAllMenuItems -> newest first, used by order entry autocomplete
func (mc *MenuController) GetAllMenuItems(c *gin.Context) {
	var items []models.MenuItem
	if err := mc.DB.Order("created_at desc").Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menu items", items)
}

// CreateMenuItem
func (mc *MenuController) CreateMenuItem(c *gin.Context) {
	var body struct {
		Name  string  `json:"name"`
		Price float64 `json:"price"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if fe := validateMenuRow(body.Name, body.Price); fe != nil {
		utils.RespondFieldErrors(c, fe)
		return
	}

	item := models.MenuItem{Name: strings.TrimSpace(body.Name), Price: body.Price}
	if err := mc.DB.Create(&item).Error; err != nil {
		if services.IsDuplicateKey(err) {
			utils.RespondFieldErrors(c, map[string]string{"name": "A menu item with this name already exists."})
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Menu item created", item)
}

// DeleteMenuItem
func (mc *MenuController) DeleteMenuItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("menu_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := mc.DB.Delete(&models.MenuItem{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item deleted", gin.H{"menu_id": id})
}

// UploadMenuItems -> bulk import from a CSV file with name,price columns.
// The whole file is validated before anything is inserted.
func (mc *MenuController) UploadMenuItems(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("no file uploaded"))
		return
	}
	defer file.Close()

	items, err := parseMenuCSV(file)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if len(items) == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("file contains no menu rows"))
		return
	}

	if err := mc.DB.Create(&items).Error; err != nil {
		if services.IsDuplicateKey(err) {
			utils.RespondError(c, http.StatusBadRequest, errors.New("file contains a menu item that already exists"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Imported %d menu items", len(items))
	utils.RespondJSON(c, http.StatusCreated, "Menu items imported", gin.H{"count": len(items)})
}

func validateMenuRow(name string, price float64) services.FieldErrors {
	fe := services.FieldErrors{}
	if strings.TrimSpace(name) == "" {
		fe["name"] = "Item name is required."
	}
	if price < 0 {
		fe["price"] = "Price must be a positive number."
	}
	if len(fe) == 0 {
		return nil
	}
	return fe
}

func parseMenuCSV(r io.Reader) ([]models.MenuItem, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var items []models.MenuItem
	for line := 0; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.New("failed to parse the uploaded file")
		}
		if len(record) < 2 {
			return nil, errors.New(`invalid file format: expected "name,price" rows`)
		}

		name := strings.TrimSpace(record[0])
		// Tolerate a header row.
		if line == 0 && strings.EqualFold(name, "name") {
			continue
		}

		price, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil || validateMenuRow(name, price) != nil {
			return nil, errors.New(`invalid file format: ensure columns are "name" and "price" and data is valid`)
		}
		items = append(items, models.MenuItem{Name: name, Price: price})
	}
	return items, nil
}
