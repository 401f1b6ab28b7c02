package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"merchant-pulse/internal/report"
	"merchant-pulse/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler renders a merchant's business report as a downloadable file.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

// reportRows flattens a report into labeled rows shared by the CSV and XLSX
// renderers. The first column is a label, the second its value; trend and
// category sections use all three columns.
func reportRows(businessName string, rep *report.Report) [][]string {
	rows := [][]string{
		{"Business Report", businessName, ""},
		{"Generated At", rep.GeneratedAt.Format("2006-01-02 15:04:05"), ""},
		{"", "", ""},
		{"Total Revenue", rep.Summary.TotalRevenue.StringFixed(2), ""},
		{"Transaction Count", strconv.Itoa(rep.Summary.TransactionCount), ""},
		{"Cash Ratio (%)", strconv.Itoa(rep.Summary.CashRatioPercent), ""},
		{"Non-Cash Ratio (%)", strconv.Itoa(rep.Summary.NonCashRatioPercent), ""},
		{"Average Transaction", rep.Summary.AverageTransactionAmount.StringFixed(2), ""},
		{"Growth (%)", strconv.Itoa(rep.Growth.Percent), string(rep.Growth.Trend)},
	}

	if len(rep.MonthlyTrends) > 0 {
		rows = append(rows, []string{"", "", ""})
		rows = append(rows, []string{"Month", "Revenue", "Transactions"})
		for _, p := range rep.MonthlyTrends {
			rows = append(rows, []string{
				p.PeriodKey,
				p.Revenue.StringFixed(2),
				strconv.Itoa(p.TransactionCount),
			})
		}
	}

	if len(rep.Categories) > 0 {
		rows = append(rows, []string{"", "", ""})
		rows = append(rows, []string{"Category", "Amount", "Share (%)"})
		for _, e := range rep.Categories {
			rows = append(rows, []string{
				e.Category,
				e.Amount.StringFixed(2),
				e.PercentOfTotal.StringFixed(0),
			})
		}
	}

	if len(rep.Recommendations) > 0 {
		rows = append(rows, []string{"", "", ""})
		rows = append(rows, []string{"Recommendations", "", ""})
		for i, r := range rep.Recommendations {
			rows = append(rows, []string{strconv.Itoa(i + 1), r, ""})
		}
	}

	return rows
}

// buildReport loads the merchant's records (honoring start/end query params)
// and builds the report, writing the error response itself on failure.
func (h *ExportHandler) buildReport(c *gin.Context, merchantID uint) (*report.Report, bool) {
	rh := ReportHandler{DB: h.DB}
	records, ok := rh.fetchRecords(c, merchantID)
	if !ok {
		return nil, false
	}

	rep, err := report.Build(records, time.Now())
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "no transaction data to export")
		return nil, false
	}
	return rep, true
}

// ExportCSV streams the report as CSV.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	merchant, ok := currentMerchant(c)
	if !ok {
		return
	}

	rep, ok := h.buildReport(c, merchant.ID)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"report_%s.csv\"",
		time.Now().Format("20060102")))

	// UTF-8 BOM so Excel opens the file with the right encoding
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	for _, row := range reportRows(merchant.BusinessName, rep) {
		writer.Write(row)
	}
}

// ExportXLSX streams the report as an Excel workbook.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	merchant, ok := currentMerchant(c)
	if !ok {
		return
	}

	rep, ok := h.buildReport(c, merchant.ID)
	if !ok {
		return
	}

	f := excelize.NewFile()
	sheetName := "Business Report"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create worksheet")
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for rowIdx, row := range reportRows(merchant.BusinessName, rep) {
		for colIdx, val := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIdx, rowIdx+1)
			f.SetCellValue(sheetName, cell, val)
		}
	}

	f.SetColWidth(sheetName, "A", "A", 24)
	f.SetColWidth(sheetName, "B", "B", 40)
	f.SetColWidth(sheetName, "C", "C", 14)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"report_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to write workbook")
	}
}
