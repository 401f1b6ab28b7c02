package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"merchant-pulse/internal/models"
	"merchant-pulse/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RecordHandler serves CRUD and stats for transaction records.
type RecordHandler struct {
	DB              *gorm.DB
	DefaultPageSize int
}

func NewRecordHandler(db *gorm.DB, defaultPageSize int) *RecordHandler {
	if defaultPageSize <= 0 || defaultPageSize > 100 {
		defaultPageSize = 20
	}
	return &RecordHandler{DB: db, DefaultPageSize: defaultPageSize}
}

type createRecordReq struct {
	Kind        string `json:"kind" binding:"required,oneof=cash non_cash receipt"`
	Amount      string `json:"amount" binding:"required"`
	Category    string `json:"category" binding:"max=64"`
	Description string `json:"description" binding:"max=255"`
	OccurredAt  string `json:"occurred_at"`
}

type updateRecordReq struct {
	Kind        string `json:"kind" binding:"required,oneof=cash non_cash receipt"`
	Amount      string `json:"amount" binding:"required"`
	Category    string `json:"category" binding:"max=64"`
	Description string `json:"description" binding:"max=255"`
	OccurredAt  string `json:"occurred_at"`
}

type recordResp struct {
	ID          uint      `json:"id"`
	Kind        string    `json:"kind"`
	Category    string    `json:"category"`
	AmountCent  int64     `json:"amount_cent"`
	Amount      string    `json:"amount"`
	Description string    `json:"description"`
	OccurredAt  time.Time `json:"occurred_at"`
	CreatedAt   time.Time `json:"created_at"`
}

func toRecordResp(r *models.TransactionRecord) recordResp {
	return recordResp{
		ID:          r.ID,
		Kind:        r.Kind,
		Category:    r.Category,
		AmountCent:  r.AmountCent,
		Amount:      formatCents(r.AmountCent),
		Description: r.Description,
		OccurredAt:  r.OccurredAt,
		CreatedAt:   r.CreatedAt,
	}
}

func (h *RecordHandler) CreateRecord(c *gin.Context) {
	merchant, ok := currentMerchant(c)
	if !ok {
		return
	}

	var req createRecordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	req.Category = strings.TrimSpace(req.Category)

	amountCent, err := parseAmountToCents(req.Amount)
	if err != nil || amountCent < 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "amount must be a non-negative number")
		return
	}

	occurredAt, err := parseOccurredAt(req.OccurredAt)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "occurred_at must be RFC3339 or YYYY-MM-DD")
		return
	}
	// recorded transactions cannot be dated in the future
	occDate := occurredAt.Format("2006-01-02")
	todayDate := time.Now().Format("2006-01-02")
	if occDate > todayDate {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "transaction date cannot be in the future")
		return
	}

	record := models.TransactionRecord{
		MerchantID:  merchant.ID,
		Kind:        req.Kind,
		AmountCent:  amountCent,
		Category:    req.Category,
		Description: req.Description,
		OccurredAt:  occurredAt,
	}

	if err := h.DB.Create(&record).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save record")
		return
	}

	util.Success(c, util.Response{
		"record": toRecordResp(&record),
	})
}

func (h *RecordHandler) UpdateRecord(c *gin.Context) {
	merchant, ok := currentMerchant(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid record id")
		return
	}

	var req updateRecordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	req.Category = strings.TrimSpace(req.Category)

	amountCent, err := parseAmountToCents(req.Amount)
	if err != nil || amountCent < 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "amount must be a non-negative number")
		return
	}

	occurredAt, err := parseOccurredAt(req.OccurredAt)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "occurred_at must be RFC3339 or YYYY-MM-DD")
		return
	}
	occDate := occurredAt.Format("2006-01-02")
	todayDate := time.Now().Format("2006-01-02")
	if occDate > todayDate {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "transaction date cannot be in the future")
		return
	}

	// merchants can only touch their own records
	var record models.TransactionRecord
	if err := h.DB.Where("id = ? AND merchant_id = ?", id, merchant.ID).First(&record).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "record not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load record")
		}
		return
	}

	record.Kind = req.Kind
	record.AmountCent = amountCent
	record.Category = req.Category
	record.Description = req.Description
	record.OccurredAt = occurredAt

	if err := h.DB.Save(&record).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save record")
		return
	}

	util.Success(c, util.Response{
		"record": toRecordResp(&record),
	})
}

func (h *RecordHandler) DeleteRecord(c *gin.Context) {
	merchant, ok := currentMerchant(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid record id")
		return
	}

	if err := h.DB.
		Where("id = ? AND merchant_id = ?", id, merchant.ID).
		Delete(&models.TransactionRecord{}).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete record")
		return
	}

	util.Success(c, util.Response{
		"message": "record deleted",
	})
}

// ListRecords returns a filtered page of records plus a summary over the
// same filter. Filters: start/end (YYYY-MM-DD), kind, categories (comma
// separated), sort (date_desc, date_asc, amount_desc, amount_asc).
func (h *RecordHandler) ListRecords(c *gin.Context) {
	merchant, ok := currentMerchant(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(h.DefaultPageSize)))
	if size <= 0 || size > 100 {
		size = h.DefaultPageSize
	}
	offset := (page - 1) * size

	startStr := c.Query("start")
	endStr := c.Query("end")

	var (
		startTime time.Time
		endTime   time.Time
		hasStart  bool
		hasEnd    bool
		err       error
	)

	if startStr != "" {
		startTime, err = time.Parse("2006-01-02", startStr)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "start date must be YYYY-MM-DD")
			return
		}
		hasStart = true
	}
	if endStr != "" {
		endTime, err = time.Parse("2006-01-02", endStr)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "end date must be YYYY-MM-DD")
			return
		}
		// end is inclusive of the whole day
		endTime = endTime.Add(24 * time.Hour)
		hasEnd = true
	}

	// default window is the last 30 days
	if !hasStart && !hasEnd {
		now := time.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		startTime = today.AddDate(0, 0, -29)
		endTime = today.AddDate(0, 0, 1)
		hasStart, hasEnd = true, true
	}

	kind := c.Query("kind")
	if err := util.ValidateKind(kind); err != nil {
		kind = ""
	}

	catStr := c.Query("categories")
	var catList []string
	if catStr != "" {
		for _, p := range strings.Split(catStr, ",") {
			p = strings.TrimSpace(p)
			if p != "" {
				catList = append(catList, p)
			}
		}
	}

	sortKey := c.DefaultQuery("sort", "date_desc")
	orderBy := "occurred_at DESC, id DESC"
	switch sortKey {
	case "date_asc":
		orderBy = "occurred_at ASC, id ASC"
	case "amount_desc":
		orderBy = "amount_cent DESC, id DESC"
	case "amount_asc":
		orderBy = "amount_cent ASC, id ASC"
	}

	base := h.DB.Model(&models.TransactionRecord{}).Where("merchant_id = ?", merchant.ID)
	if hasStart {
		base = base.Where("occurred_at >= ?", startTime)
	}
	if hasEnd {
		base = base.Where("occurred_at < ?", endTime)
	}
	if kind != "" {
		base = base.Where("kind = ?", kind)
	}
	if len(catList) > 0 {
		base = base.Where("category IN ?", catList)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query records")
		return
	}

	var records []models.TransactionRecord
	if err := base.Session(&gorm.Session{}).
		Order(orderBy).
		Limit(size).
		Offset(offset).
		Find(&records).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query records")
		return
	}

	items := make([]recordResp, 0, len(records))
	for i := range records {
		items = append(items, toRecordResp(&records[i]))
	}

	// summary over the same filter, independent of pagination
	var all []models.TransactionRecord
	if err := base.Session(&gorm.Session{}).Find(&all).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to summarize records")
		return
	}

	var totalCent, cashCent, nonCashCent, receiptCent int64
	for i := range all {
		r := &all[i]
		totalCent += r.AmountCent
		switch r.Kind {
		case models.KindCash:
			cashCent += r.AmountCent
		case models.KindNonCash:
			nonCashCent += r.AmountCent
		case models.KindReceipt:
			receiptCent += r.AmountCent
		}
	}

	summary := gin.H{
		"total_revenue_cent": totalCent,
		"total_revenue":      formatCents(totalCent),
		"cash_cent":          cashCent,
		"cash":               formatCents(cashCent),
		"non_cash_cent":      nonCashCent,
		"non_cash":           formatCents(nonCashCent),
		"receipt_cent":       receiptCent,
		"receipt":            formatCents(receiptCent),
	}

	util.Success(c, util.Response{
		"items":   items,
		"total":   total,
		"page":    page,
		"size":    size,
		"summary": summary,
	})
}

// GetMonthlyStats returns per-day revenue and per-category totals for one
// month. Month param: ?month=2025-12, defaults to the current month.
func (h *RecordHandler) GetMonthlyStats(c *gin.Context) {
	merchant, ok := currentMerchant(c)
	if !ok {
		return
	}

	monthStr := c.Query("month")
	if monthStr == "" {
		monthStr = time.Now().Format("2006-01")
	}

	t, err := time.Parse("2006-01", monthStr)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "month must be YYYY-MM")
		return
	}

	startOfMonth := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	endOfMonth := startOfMonth.AddDate(0, 1, 0)

	var records []models.TransactionRecord
	if err := h.DB.Where("merchant_id = ? AND occurred_at >= ? AND occurred_at < ?",
		merchant.ID, startOfMonth, endOfMonth).
		Order("occurred_at ASC").
		Find(&records).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query records")
		return
	}

	type dailyStat struct {
		Date        string `json:"date"`
		CashCent    int64  `json:"cash_cent"`
		NonCashCent int64  `json:"non_cash_cent"`
		ReceiptCent int64  `json:"receipt_cent"`
		TotalCent   int64  `json:"total_cent"`
		Total       string `json:"total"`
	}

	dailyMap := make(map[string]*dailyStat)
	var dailyOrder []string
	for i := range records {
		r := &records[i]
		dateKey := r.OccurredAt.Format("2006-01-02")

		ds, ok := dailyMap[dateKey]
		if !ok {
			ds = &dailyStat{Date: dateKey}
			dailyMap[dateKey] = ds
			dailyOrder = append(dailyOrder, dateKey)
		}

		switch r.Kind {
		case models.KindCash:
			ds.CashCent += r.AmountCent
		case models.KindNonCash:
			ds.NonCashCent += r.AmountCent
		case models.KindReceipt:
			ds.ReceiptCent += r.AmountCent
		}
		ds.TotalCent += r.AmountCent
	}

	dailyList := make([]dailyStat, 0, len(dailyOrder))
	for _, key := range dailyOrder {
		ds := dailyMap[key]
		ds.Total = formatCents(ds.TotalCent)
		dailyList = append(dailyList, *ds)
	}

	type categoryStat struct {
		Category   string `json:"category"`
		AmountCent int64  `json:"amount_cent"`
		Amount     string `json:"amount"`
		Count      int    `json:"count"`
	}

	catMap := make(map[string]*categoryStat)
	var catOrder []string
	var totalCent int64

	for i := range records {
		r := &records[i]
		category := r.Category
		if category == "" {
			category = "Uncategorized"
		}

		cs, ok := catMap[category]
		if !ok {
			cs = &categoryStat{Category: category}
			catMap[category] = cs
			catOrder = append(catOrder, category)
		}
		cs.AmountCent += r.AmountCent
		cs.Count++
		totalCent += r.AmountCent
	}

	catList := make([]categoryStat, 0, len(catOrder))
	for _, key := range catOrder {
		cs := catMap[key]
		cs.Amount = formatCents(cs.AmountCent)
		catList = append(catList, *cs)
	}

	util.Success(c, util.Response{
		"month":         monthStr,
		"daily":         dailyList,
		"by_category":   catList,
		"total_revenue": formatCents(totalCent),
		"record_count":  len(records),
	})
}
