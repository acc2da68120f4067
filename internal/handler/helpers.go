package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/netly-app/netly/internal/middleware"
	"github.com/netly-app/netly/internal/pkg/errcode"
	appErr "github.com/netly-app/netly/internal/pkg/errors"
	"github.com/netly-app/netly/internal/pkg/response"
)

func getUserID(c *gin.Context) string {
	value, _ := c.Get(middleware.ContextUserIDKey)
	userID, _ := value.(string)
	return userID
}

// handleError maps service errors onto the response envelope. Input and
// conflict errors carry their message through so the caller learns what
// was wrong; everything unexpected collapses to a generic internal error.
func handleError(c *gin.Context, err error) {
	switch {
	case err == nil:
		return
	case errors.Is(err, appErr.ErrUnauthorized):
		response.Error(c, errcode.ErrUnauthorized, "unauthorized")
	case errors.Is(err, appErr.ErrForbidden):
		response.Error(c, errcode.ErrForbidden, "forbidden")
	case errors.Is(err, appErr.ErrNotFound):
		response.Error(c, errcode.ErrNotFound, "not found")
	case errors.Is(err, appErr.ErrOTPRequired):
		response.Error(c, errcode.ErrOTPRequired, err.Error())
	case errors.Is(err, appErr.ErrOTPInvalid):
		response.Error(c, errcode.ErrOTPInvalid, err.Error())
	case errors.Is(err, appErr.ErrInvalid):
		response.Error(c, errcode.ErrInvalid, err.Error())
	case errors.Is(err, appErr.ErrConflict):
		response.Error(c, errcode.ErrConflict, err.Error())
	case errors.Is(err, appErr.ErrTooMany):
		response.Error(c, errcode.ErrTooMany, "too many requests")
	default:
		logutil.GetLogger(c.Request.Context()).Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("user_id", getUserID(c)),
			zap.Error(err),
		)
		response.Error(c, errcode.ErrInternal, "internal error")
	}
}

func invalidRequest(c *gin.Context, msg string) {
	if msg == "" {
		msg = "invalid request"
	}
	response.Error(c, errcode.ErrInvalid, msg)
}
