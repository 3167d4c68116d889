package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/franciscosanchezn/gin-cardapio-api/internal/models"
	"github.com/franciscosanchezn/gin-cardapio-api/internal/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// respondError translates a service failure into the HTTP error taxonomy:
// validation 400, not-found 404, conflict 409, schema/constraint 500 with
// a migration hint, everything else a logged 500 carrying the underlying
// error text for diagnosis.
func respondError(ctx *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrUserNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"message": err.Error()})

	case errors.Is(err, services.ErrUserAlreadyExists):
		ctx.JSON(http.StatusConflict, gin.H{"message": err.Error()})

	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrWrongPassword):
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})

	case errors.Is(err, services.ErrInvalidAdminCode):
		ctx.JSON(http.StatusForbidden, gin.H{"message": err.Error()})

	case errors.Is(err, models.ErrValidation),
		errors.Is(err, services.ErrOrderHasItems),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrNothingToUpdate),
		errors.Is(err, services.ErrCurrentPasswordRequired):
		ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})

	case errors.Is(err, services.ErrStatusNotSupported):
		// Actionable for the operator: the status column needs migrating.
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"message": "The database rejected the status value. Run the status-column migration to add it.",
			"detail":  err.Error(),
		})

	default:
		log.WithError(err).Error(message)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"message": message,
			"detail":  err.Error(),
		})
	}
}

// parseIDParam reads a numeric path parameter, responding 400 on failure.
// The bool result reports whether parsing succeeded.
func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)
	id, err := parseUint(raw)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid " + name + " parameter", "detail": raw})
		return 0, false
	}
	return id, true
}

func parseUint(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	return uint(v), err
}
