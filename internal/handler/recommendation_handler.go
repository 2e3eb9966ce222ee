package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oakmall/oakmall/internal/pkg/errcode"
	"github.com/oakmall/oakmall/internal/pkg/response"
	"github.com/oakmall/oakmall/internal/service"
)

const maxRecommendLimit = 100

type RecommendationHandler struct {
	recs *service.RecommendationService
}

func NewRecommendationHandler(recs *service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recs: recs}
}

// Get returns the caller's ranked recommendations. Query parameters: limit
// (default from config) and exclude_owned (default from config).
func (h *RecommendationHandler) Get(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value <= 0 || value > maxRecommendLimit {
			response.Error(c, errcode.ErrInvalid, "invalid limit")
			return
		}
		limit = value
	}
	excludeOwned := h.recs.ExcludeOwnedDefault()
	if raw := c.Query("exclude_owned"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			response.Error(c, errcode.ErrInvalid, "invalid exclude_owned")
			return
		}
		excludeOwned = value
	}
	items, err := h.recs.Recommend(c.Request.Context(), getUserID(c), limit, excludeOwned)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, items)
}
