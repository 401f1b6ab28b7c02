package handler

import (
	"net/http"
	"testing"
	"time"

	"merchant-pulse/internal/models"

	"github.com/stretchr/testify/require"
)

func TestSeedSampleData(t *testing.T) {
	db := newTestDB(t)
	merchant := newTestMerchant(t, db)
	r := newTestRouter(db, merchant)

	w := doJSON(r, http.MethodPost, "/api/admin/seed", nil)
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	require.Equal(t, 0, env.Code)

	var records []models.TransactionRecord
	require.NoError(t, db.Where("merchant_id = ?", merchant.ID).Find(&records).Error)
	require.NotEmpty(t, records)
	require.EqualValues(t, len(records), env.Data["count"])

	now := time.Now()
	months := map[string]bool{}
	for _, rec := range records {
		require.Positive(t, rec.AmountCent)
		require.Contains(t, []string{models.KindCash, models.KindNonCash, models.KindReceipt}, rec.Kind)
		require.False(t, rec.OccurredAt.After(now))
		months[rec.OccurredAt.Format("2006-01")] = true
	}
	require.GreaterOrEqual(t, len(months), 2)
}

func TestResetData(t *testing.T) {
	db := newTestDB(t)
	merchant := newTestMerchant(t, db)
	other := &models.Merchant{Username: "other", PasswordHash: "x", BusinessName: "Other", MerchantCode: "code-reset"}
	require.NoError(t, db.Create(other).Error)
	r := newTestRouter(db, merchant)

	seedRecord(t, db, merchant.ID, models.KindCash, 10000, "Food", time.Now())
	seedRecord(t, db, merchant.ID, models.KindNonCash, 20000, "Retail", time.Now())
	seedRecord(t, db, other.ID, models.KindCash, 30000, "Food", time.Now())

	w := doJSON(r, http.MethodPost, "/api/admin/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	require.EqualValues(t, 2, env.Data["deleted"])

	var mine, theirs int64
	db.Model(&models.TransactionRecord{}).Where("merchant_id = ?", merchant.ID).Count(&mine)
	db.Model(&models.TransactionRecord{}).Where("merchant_id = ?", other.ID).Count(&theirs)
	require.EqualValues(t, 0, mine)
	require.EqualValues(t, 1, theirs)
}
