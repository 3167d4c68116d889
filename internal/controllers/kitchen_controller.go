package controllers

import (
	"net/http"

	"github.com/franciscosanchezn/gin-cardapio-api/internal/kitchen"
	"github.com/gin-gonic/gin"
)

// KitchenController serves the cook-facing board snapshot
type KitchenController struct {
	board *kitchen.Board
}

// NewKitchenController creates a new instance of KitchenController
func NewKitchenController(board *kitchen.Board) *KitchenController {
	return &KitchenController{board: board}
}

// GetBoard godoc
// @Summary Kitchen board snapshot
// @Description Latest periodically refreshed snapshot of all orders with urgency annotations
// @Tags kitchen
// @Produce json
// @Success 200 {object} kitchen.Snapshot
// @Router /api/v1/kitchen/board [get]
func (kc *KitchenController) GetBoard(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, kc.board.Snapshot())
}
