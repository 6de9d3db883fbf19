package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cuecafe/pos/services"
	"github.com/cuecafe/pos/utils"
)

type PlayController struct {
	DB      *gorm.DB
	Service *services.PlayService
}

func NewPlayController(db *gorm.DB) *PlayController {
	return &PlayController{DB: db, Service: services.NewPlayService(db)}
}

// GetActiveSessions -> sessions still on the clock
func (pc *PlayController) GetActiveSessions(c *gin.Context) {
	sessions, err := pc.Service.ActiveSessions()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Active play sessions", sessions)
}

// StartSession -> open an active session for a table type
func (pc *PlayController) StartSession(c *gin.Context) {
	var body struct {
		TableType string `json:"table_type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	session, err := pc.Service.StartSession(body.TableType)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Play session %s started on %s table", session.ID, session.TableType)
	utils.RespondJSON(c, http.StatusCreated, "Play session started", session)
}

// EndSession -> close the clock and return the computed charge; the caller
// merges the charge into an order separately
func (pc *PlayController) EndSession(c *gin.Context) {
	result, err := pc.Service.EndSession(c.Param("session_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Play session ended", result)
}

// EndSessionAndBill -> close the clock and put the charge on a bill, either
// an existing open order or a new one for a named customer
func (pc *PlayController) EndSessionAndBill(c *gin.Context) {
	var target services.BillTarget
	if err := c.ShouldBindJSON(&target); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	result, order, err := pc.Service.EndSessionAndBill(c.Param("session_id"), target, currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Session %s billed %s to order #%d",
		result.Session.ID, utils.FormatCurrency(result.Cost), order.ID)
	utils.RespondJSON(c, http.StatusOK, "Session ended and billed", gin.H{
		"session":  result.Session,
		"cost":     result.Cost,
		"duration": result.Duration,
		"order":    order,
	})
}
