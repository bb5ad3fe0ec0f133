package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bananabill/internal/csvexport"
	"bananabill/internal/service"
	"bananabill/internal/xlsxexport"
)

// ReportHandler handles report and dashboard endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Monthly handles GET /api/v1/reports/monthly?year=2025&month=8
func (h *ReportHandler) Monthly(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	year, month, ok := parseYearMonth(c)
	if !ok {
		return
	}

	report, err := h.reportService.Monthly(c.Request.Context(), userID, year, month)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, report)
}

// AvailableMonths handles GET /api/v1/reports/months
func (h *ReportHandler) AvailableMonths(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	months, err := h.reportService.AvailableMonths(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, months)
}

// DateRange handles GET /api/v1/reports/range?start_date=...&end_date=...
func (h *ReportHandler) DateRange(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	start, err := time.Parse("2006-01-02", c.Query("start_date"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "start_date must be YYYY-MM-DD")
		return
	}
	end, err := time.Parse("2006-01-02", c.Query("end_date"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "end_date must be YYYY-MM-DD")
		return
	}

	bills, err := h.reportService.DateRange(c.Request.Context(), userID, start, end)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, bills)
}

// FarmerReport handles GET /api/v1/reports/farmers/:id
func (h *ReportHandler) FarmerReport(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	farmerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid farmer id")
		return
	}

	filters, err := parseBillFilters(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	report, err := h.reportService.FarmerReport(c.Request.Context(), userID, farmerID, filters)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, report)
}

// Dashboard handles GET /api/v1/dashboard
func (h *ReportHandler) Dashboard(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	stats, err := h.reportService.Dashboard(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, stats)
}

// ExportMonthly handles GET /api/v1/reports/monthly/export?year=...&month=...&format=csv|xlsx
func (h *ReportHandler) ExportMonthly(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	year, month, ok := parseYearMonth(c)
	if !ok {
		return
	}

	report, err := h.reportService.Monthly(c.Request.Context(), userID, year, month)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("bills-%d-%02d", year, int(month))

	switch c.DefaultQuery("format", "csv") {
	case "xlsx":
		var buf bytes.Buffer
		if err := xlsxexport.WriteMonthlyReport(&buf, report); err != nil {
			HandleError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+filename+`.xlsx"`)
		c.Data(http.StatusOK,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			buf.Bytes())

	case "csv":
		var buf bytes.Buffer
		buf.Write(csvexport.BOM)
		w := csvexport.NewWriter(&buf)
		if err := w.WriteHeader(); err != nil {
			HandleError(c, err)
			return
		}
		if err := w.WriteBills(report.Bills); err != nil {
			HandleError(c, err)
			return
		}
		if err := w.Flush(); err != nil {
			HandleError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+filename+`.csv"`)
		c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())

	default:
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "format must be csv or xlsx")
	}
}

func parseYearMonth(c *gin.Context) (int, time.Month, bool) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "year is required")
		return 0, 0, false
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "month must be 1-12")
		return 0, 0, false
	}
	return year, time.Month(month), true
}
