package handler

import (
	"fmt"
	"net/http"
	"time"

	"merchant-pulse/internal/middleware"
	"merchant-pulse/internal/models"
	"merchant-pulse/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// currentMerchant pulls the authenticated merchant out of the request
// context. When it is missing the 401 reply has already been written by the
// auth middleware path, so handlers just return.
func currentMerchant(c *gin.Context) (*models.Merchant, bool) {
	v, ok := c.Get(middleware.CurrentMerchantKey)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return nil, false
	}
	merchant, ok := v.(*models.Merchant)
	if !ok || merchant == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return nil, false
	}
	return merchant, true
}

// parseAmountToCents converts a decimal amount string ("12.34") to minor
// units. Sub-cent digits are rounded half up.
func parseAmountToCents(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}

// centsToAmount converts minor units back to a decimal currency value.
func centsToAmount(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// formatCents renders minor units as a two-decimal string for responses.
func formatCents(cents int64) string {
	return centsToAmount(cents).StringFixed(2)
}

// parseOccurredAt accepts the timestamp formats clients send. An empty
// value falls back to now; a non-empty value that matches no layout is an
// error, never silently replaced.
func parseOccurredAt(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	layouts := []string{
		time.RFC3339,          // 2025-12-03T00:00:00+02:00
		"2006-01-02T15:04:05", // 2025-12-03T00:00:00
		"2006-01-02",          // 2025-12-03
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
