package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"merchant-pulse/internal/logger"
	"merchant-pulse/internal/models"
	"merchant-pulse/internal/report"
	"merchant-pulse/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ReportHandler builds business reports from a merchant's records.
type ReportHandler struct {
	DB *gorm.DB
}

func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{DB: db}
}

// fetchRecords loads one merchant's records inside an optional date window
// and converts them to engine records. The window is [start, end], both
// YYYY-MM-DD, end inclusive of the whole day.
func (h *ReportHandler) fetchRecords(c *gin.Context, merchantID uint) ([]report.Record, bool) {
	q := h.DB.Where("merchant_id = ?", merchantID)

	if startStr := c.Query("start"); startStr != "" {
		start, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "start date must be YYYY-MM-DD")
			return nil, false
		}
		q = q.Where("occurred_at >= ?", start)
	}
	if endStr := c.Query("end"); endStr != "" {
		end, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "end date must be YYYY-MM-DD")
			return nil, false
		}
		q = q.Where("occurred_at < ?", end.Add(24*time.Hour))
	}

	var rows []models.TransactionRecord
	if err := q.Order("occurred_at ASC").Find(&rows).Error; err != nil {
		log := logger.FromContext(c.Request.Context())
		log.Error().Err(err).
			Uint("merchant_id", merchantID).Msg("query records for report")
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query records")
		return nil, false
	}

	records := make([]report.Record, 0, len(rows))
	for i := range rows {
		r := &rows[i]
		records = append(records, report.Record{
			ID:          strconv.FormatUint(uint64(r.ID), 10),
			Kind:        report.Kind(r.Kind),
			Amount:      centsToAmount(r.AmountCent),
			OccurredAt:  r.OccurredAt,
			Category:    r.Category,
			Description: r.Description,
		})
	}
	return records, true
}

// GetReport assembles the full business report for the current merchant.
// With no usable records the response carries no_data instead of a zeroed
// report.
func (h *ReportHandler) GetReport(c *gin.Context) {
	merchant, ok := currentMerchant(c)
	if !ok {
		return
	}

	records, ok := h.fetchRecords(c, merchant.ID)
	if !ok {
		return
	}

	rep, err := report.Build(records, time.Now())
	if err != nil {
		if errors.Is(err, report.ErrNoData) {
			util.Success(c, util.Response{
				"no_data": true,
				"message": "no transaction data recorded yet",
			})
			return
		}
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to build report")
		return
	}

	util.Success(c, util.Response{
		"report": rep,
	})
}
