package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/gastropro/gastropro/pkg/errors"
	"github.com/gastropro/gastropro/pkg/logger"
	"github.com/gastropro/gastropro/pkg/response"
)

// Recovery turns panics into the standard 500 envelope. The panic value is
// logged server-side only; clients never see it.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.WithModule("http").Error("panic recovered",
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.Any("panic", r),
				)
				c.Abort()
				response.Error(c, apperrors.ErrInternalServer)
			}
		}()
		c.Next()
	}
}

// NotFoundHandler answers unknown routes with the JSON 404 envelope instead of
// gin's plain-text default.
func NotFoundHandler(c *gin.Context) {
	response.Error(c, apperrors.ErrNotFound)
}
