package handler

import (
	"math/rand"
	"net/http"
	"time"

	"merchant-pulse/internal/models"
	"merchant-pulse/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminHandler holds demo-data maintenance endpoints: seeding sample
// records and wiping a merchant's data for a fresh start.
type AdminHandler struct {
	DB *gorm.DB
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{DB: db}
}

var sampleCategories = []string{
	"Food & Beverage",
	"Retail",
	"Services",
	"Transport",
	"Uncategorized",
}

var sampleKinds = []string{models.KindCash, models.KindNonCash, models.KindReceipt}

// SeedSampleData inserts three months of random sample transactions for the
// current merchant so reports have something to show in a demo.
func (h *AdminHandler) SeedSampleData(c *gin.Context) {
	merchant, ok := currentMerchant(c)
	if !ok {
		return
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now()

	var records []models.TransactionRecord
	for monthsBack := 2; monthsBack >= 0; monthsBack-- {
		monthStart := time.Date(now.Year(), now.Month(), 1, 9, 0, 0, 0, now.Location()).
			AddDate(0, -monthsBack, 0)
		// later months carry slightly more records so growth trends upward
		count := 8 + (2-monthsBack)*4 + rng.Intn(4)
		for i := 0; i < count; i++ {
			day := rng.Intn(28)
			occurredAt := monthStart.AddDate(0, 0, day)
			if occurredAt.After(now) {
				occurredAt = now.Add(-time.Hour)
			}
			records = append(records, models.TransactionRecord{
				MerchantID:  merchant.ID,
				Kind:        sampleKinds[rng.Intn(len(sampleKinds))],
				AmountCent:  int64(500+rng.Intn(20000)) * 10, // 50.00 .. 2050.00
				Category:    sampleCategories[rng.Intn(len(sampleCategories))],
				Description: "sample transaction",
				OccurredAt:  occurredAt,
			})
		}
	}

	if err := h.DB.Create(&records).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to seed sample data")
		return
	}

	util.Success(c, util.Response{
		"message": "sample data created",
		"count":   len(records),
	})
}

// ResetData deletes every record belonging to the current merchant.
func (h *AdminHandler) ResetData(c *gin.Context) {
	merchant, ok := currentMerchant(c)
	if !ok {
		return
	}

	res := h.DB.Where("merchant_id = ?", merchant.ID).Delete(&models.TransactionRecord{})
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to reset data")
		return
	}

	util.Success(c, util.Response{
		"message": "all records removed",
		"deleted": res.RowsAffected,
	})
}
