package handler

import (
	"net/http"
	"testing"
	"time"

	"merchant-pulse/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedLog(t *testing.T, db *gorm.DB, merchantID uint, method, path, action string, at time.Time) {
	t.Helper()
	mid := merchantID
	require.NoError(t, db.Create(&models.AuditLog{
		MerchantID: &mid,
		Method:     method,
		Path:       path,
		Action:     action,
		IP:         "127.0.0.1",
		CreatedAt:  at,
	}).Error)
}

func TestListLogs(t *testing.T) {
	db := newTestDB(t)
	merchant := newTestMerchant(t, db)
	other := &models.Merchant{Username: "other", PasswordHash: "x", BusinessName: "Other", MerchantCode: "code-logs"}
	require.NoError(t, db.Create(other).Error)
	r := newTestRouter(db, merchant)

	now := time.Now()
	seedLog(t, db, merchant.ID, "POST", "/api/records", "create record", now.Add(-2*time.Hour))
	seedLog(t, db, merchant.ID, "GET", "/api/reports", "view report", now.Add(-1*time.Hour))
	seedLog(t, db, other.ID, "POST", "/api/records", "create record", now)

	w := doJSON(r, http.MethodGet, "/api/logs", nil)
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	require.EqualValues(t, 2, env.Data["total"])

	items := env.Data["items"].([]interface{})
	// newest first
	first := items[0].(map[string]interface{})
	require.Equal(t, "/api/reports", first["path"])

	// keyword filter
	w = doJSON(r, http.MethodGet, "/api/logs?q=reports", nil)
	env = decodeEnvelope(t, w)
	require.EqualValues(t, 1, env.Data["total"])

	// bad date filter
	w = doJSON(r, http.MethodGet, "/api/logs?start=yesterday", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
