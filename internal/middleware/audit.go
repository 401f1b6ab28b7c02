package middleware

import (
	"bytes"
	"io"

	"merchant-pulse/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuditMiddleware writes one audit row per authenticated request. Request
// bodies are captured for small payloads only.
func AuditMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var merchantID uint
		if v, ok := c.Get(CurrentMerchantKey); ok {
			if m, ok := v.(*models.Merchant); ok && m != nil {
				merchantID = m.ID
			}
		}

		var bodyBytes []byte
		if c.Request.Body != nil {
			bodyBytes, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}

		c.Next()

		// only log operations of logged-in merchants
		if merchantID == 0 {
			return
		}

		path := c.Request.URL.Path
		action := c.Request.Method + " " + path
		if len(bodyBytes) > 0 && len(bodyBytes) < 2000 {
			action += " " + string(bodyBytes)
		}

		log := models.AuditLog{
			MerchantID: &merchantID,
			Method:     c.Request.Method,
			Path:       path,
			Action:     action,
			IP:         c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
		}

		_ = db.Create(&log).Error
	}
}
