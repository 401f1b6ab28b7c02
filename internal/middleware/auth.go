package middleware

import (
	"net/http"
	"strings"
	"time"

	"merchant-pulse/internal/models"
	"merchant-pulse/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CurrentMerchantKey is the gin context key holding the authenticated merchant.
const CurrentMerchantKey = "currentMerchant"

// AuthMiddleware validates the JWT and puts the current merchant into the
// request context.
func AuthMiddleware(jwtSecret string, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenStr string

		// 1) Header: Authorization: Bearer xxx
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenStr = parts[1]
			}
		}

		// 2) query param ?token=xxx, for download links that cannot set headers
		if tokenStr == "" {
			tokenStr = c.Query("token")
		}

		if tokenStr == "" {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
			c.Abort()
			return
		}

		claims, err := util.ParseToken(jwtSecret, tokenStr)
		if err != nil || claims.ExpiresAt == nil || claims.ExpiresAt.Before(time.Now()) {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "session expired, please log in again")
			c.Abort()
			return
		}

		var merchant models.Merchant
		if err := db.First(&merchant, claims.MerchantID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				util.Error(c, http.StatusUnauthorized, util.CodeAuth, "merchant not found")
			} else {
				util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load merchant")
			}
			c.Abort()
			return
		}

		c.Set(CurrentMerchantKey, &merchant)
		c.Next()
	}
}
