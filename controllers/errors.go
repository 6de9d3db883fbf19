package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cuecafe/pos/services"
	"github.com/cuecafe/pos/utils"
)

// ErrNoPermission is returned on role check failures.
var ErrNoPermission = &CustomError{"You do not have permission"}

type CustomError struct {
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}

// respondServiceError translates service-layer failures into the JSON
// envelope: validation maps become 400 with the field map, missing records
// 404, state conflicts 409, anything else a generic 500.
func respondServiceError(c *gin.Context, err error) {
	var fe services.FieldErrors
	if errors.As(err, &fe) {
		utils.RespondFieldErrors(c, fe)
		return
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, services.ErrSessionFinished),
		errors.Is(err, services.ErrPaidOrderDelete):
		utils.RespondError(c, http.StatusConflict, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}

// currentUserID reads the authenticated user id set by the auth middleware.
func currentUserID(c *gin.Context) *uint {
	v, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	id, ok := v.(uint)
	if !ok {
		return nil
	}
	return &id
}
