package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	apperrors "github.com/gastropro/gastropro/pkg/errors"
	"github.com/gastropro/gastropro/pkg/response"
)

// Health returns a status payload useful for readiness checks. When a database
// handle is supplied the check includes a connection ping.
func Health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			sqlDB, err := db.DB()
			if err == nil {
				err = sqlDB.PingContext(c.Request.Context())
			}
			if err != nil {
				response.Error(c, apperrors.ErrStoreUnavailable.WithInternal(err))
				return
			}
		}

		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	}
}
