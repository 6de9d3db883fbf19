package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cuecafe/pos/services"
	"github.com/cuecafe/pos/utils"
)

type ReportController struct {
	DB      *gorm.DB
	Service *services.ReportService
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db, Service: services.NewReportService(db)}
}

// GetDailySummary -> paid orders and revenue for the current day
func (rc *ReportController) GetDailySummary(c *gin.Context) {
	summary, err := rc.Service.DailySummary()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Daily summary", summary)
}

// GetRevenueReport -> ?range=5days|7days|15days|month|year
func (rc *ReportController) GetRevenueReport(c *gin.Context) {
	points, err := rc.Service.RevenueReport(c.DefaultQuery("range", "5days"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Revenue report", points)
}

// GetItemPopularity -> top sellers for the range with chart colors assigned
func (rc *ReportController) GetItemPopularity(c *gin.Context) {
	points, err := rc.Service.ItemPopularity(c.DefaultQuery("range", "5days"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item popularity", points)
}
