package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/oakmall/oakmall/internal/pkg/errcode"
	appErr "github.com/oakmall/oakmall/internal/pkg/errors"
	"github.com/oakmall/oakmall/internal/pkg/response"
)

func getUserID(c *gin.Context) string {
	value, _ := c.Get("user_id")
	userID, _ := value.(string)
	return userID
}

// handleError maps pipeline errors to distinct codes so callers can tell
// "no data yet" from a transient failure.
func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	logutil.GetLogger(c.Request.Context()).Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.String("user_id", getUserID(c)),
		zap.Error(err),
	)
	switch {
	case errors.Is(err, appErr.ErrNoTrainingData):
		response.Error(c, errcode.ErrNoTrainingData, "no training data yet")
	case errors.Is(err, appErr.ErrDataLoad):
		response.Error(c, errcode.ErrDataLoad, "signal store unavailable")
	case errors.Is(err, appErr.ErrTraining):
		response.Error(c, errcode.ErrTraining, "training failed")
	case errors.Is(err, appErr.ErrUnauthorized):
		response.Error(c, errcode.ErrUnauthorized, "unauthorized")
	case errors.Is(err, appErr.ErrNotFound):
		response.Error(c, errcode.ErrNotFound, "not found")
	case errors.Is(err, appErr.ErrInvalid):
		response.Error(c, errcode.ErrInvalid, "invalid request")
	case errors.Is(err, appErr.ErrConflict):
		response.Error(c, errcode.ErrConflict, "conflict")
	default:
		response.Error(c, errcode.ErrInternal, "internal error")
	}
}
