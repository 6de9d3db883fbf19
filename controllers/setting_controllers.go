package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cuecafe/pos/models"
	"github.com/cuecafe/pos/utils"
)

type SettingController struct {
	DB *gorm.DB
}

func NewSettingController(db *gorm.DB) *SettingController {
	return &SettingController{DB: db}
}

// GetSetting -> value by key; a missing key is an empty value, not an error
func (sc *SettingController) GetSetting(c *gin.Context) {
	key := c.Param("key")

	var setting models.Setting
	err := sc.DB.First(&setting, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondJSON(c, http.StatusOK, "Setting", gin.H{"key": key, "value": ""})
		return
	}
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Setting", setting)
}

// UpdateSetting -> upsert by key
func (sc *SettingController) UpdateSetting(c *gin.Context) {
	key := c.Param("key")
	if strings.TrimSpace(key) == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("setting key is required"))
		return
	}

	var body struct {
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	setting := models.Setting{Key: key, Value: body.Value}
	err := sc.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Setting updated", setting)
}
