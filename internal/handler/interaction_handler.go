package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/oakmall/oakmall/internal/pkg/errcode"
	"github.com/oakmall/oakmall/internal/pkg/response"
	"github.com/oakmall/oakmall/internal/service"
)

type InteractionHandler struct {
	interactions *service.InteractionService
}

func NewInteractionHandler(interactions *service.InteractionService) *InteractionHandler {
	return &InteractionHandler{interactions: interactions}
}

type interactionRequest struct {
	ProductID string `json:"product_id"`
	Action    string `json:"action"`
}

// Create records one behaviour signal for the caller.
func (h *InteractionHandler) Create(c *gin.Context) {
	var req interactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	inter, err := h.interactions.Record(c.Request.Context(), getUserID(c), req.ProductID, req.Action)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, inter)
}
