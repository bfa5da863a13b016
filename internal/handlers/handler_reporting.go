package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/kopkas/coopledger/internal/core/ports/services"
	"github.com/kopkas/coopledger/internal/dto"
	"github.com/kopkas/coopledger/internal/middleware"
)

const reportDateLayout = "2006-01-02"

// reportingHandler handles HTTP requests for the financial reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(reportingService portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: reportingService}
}

// parseDateQuery reads a YYYY-MM-DD query parameter, falling back to def when
// absent. It writes the 400 response itself and reports success via ok.
func parseDateQuery(c *gin.Context, name string, def time.Time) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	t, err := time.Parse(reportDateLayout, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " date, expected YYYY-MM-DD: " + raw})
		return time.Time{}, false
	}
	return t, true
}

// getTrialBalance godoc
// @Summary Trial balance report
// @Description Lists every account with posted activity up to the report date, with signed balances
// @Tags reports
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param asOf query string false "Report date YYYY-MM-DD (default today)"
// @Success 200 {object} dto.TrialBalanceResponse "Trial balance"
// @Router /tenants/{tenantID}/reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")

	asOf, ok := parseDateQuery(c, "asOf", time.Now().UTC())
	if !ok {
		return
	}

	report, err := h.reportingService.GetTrialBalance(c.Request.Context(), tenantID, asOf)
	if err != nil {
		respondServiceError(c, logger, err, "generate trial balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(report))
}

// getGeneralLedger godoc
// @Summary General ledger report
// @Description Chronological posted activity of one account with a running balance
// @Tags reports
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param accountCode query string true "Account code"
// @Param startDate query string true "Start date YYYY-MM-DD"
// @Param endDate query string true "End date YYYY-MM-DD"
// @Success 200 {object} domain.GeneralLedgerReport "General ledger"
// @Failure 404 {object} map[string]string "Account not found"
// @Router /tenants/{tenantID}/reports/general-ledger [get]
func (h *reportingHandler) getGeneralLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")

	accountCode := c.Query("accountCode")
	if accountCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'accountCode' is required"})
		return
	}

	startDate, ok := parseDateQuery(c, "startDate", time.Time{})
	if !ok {
		return
	}
	endDate, ok := parseDateQuery(c, "endDate", time.Now().UTC())
	if !ok {
		return
	}
	if startDate.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'startDate' is required"})
		return
	}
	if endDate.Before(startDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "endDate must not be before startDate"})
		return
	}

	report, err := h.reportingService.GetGeneralLedger(c.Request.Context(), tenantID, accountCode, startDate, endDate)
	if err != nil {
		respondServiceError(c, logger, err, "generate general ledger")
		return
	}
	c.JSON(http.StatusOK, report)
}

// getIncomeStatement godoc
// @Summary Income statement report
// @Description Aggregates income and expense activity over the period
// @Tags reports
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param startDate query string true "Start date YYYY-MM-DD"
// @Param endDate query string true "End date YYYY-MM-DD"
// @Success 200 {object} domain.IncomeStatementReport "Income statement"
// @Router /tenants/{tenantID}/reports/income-statement [get]
func (h *reportingHandler) getIncomeStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")

	startDate, ok := parseDateQuery(c, "startDate", time.Time{})
	if !ok {
		return
	}
	endDate, ok := parseDateQuery(c, "endDate", time.Now().UTC())
	if !ok {
		return
	}
	if startDate.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'startDate' is required"})
		return
	}
	if endDate.Before(startDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "endDate must not be before startDate"})
		return
	}

	report, err := h.reportingService.GenerateIncomeStatement(c.Request.Context(), tenantID, startDate, endDate)
	if err != nil {
		respondServiceError(c, logger, err, "generate income statement")
		return
	}
	c.JSON(http.StatusOK, report)
}

// getBalanceSheet godoc
// @Summary Balance sheet report
// @Description Computes asset, liability and equity balances as of a date
// @Tags reports
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param asOf query string false "Report date YYYY-MM-DD (default today)"
// @Success 200 {object} domain.BalanceSheetReport "Balance sheet"
// @Router /tenants/{tenantID}/reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")

	asOf, ok := parseDateQuery(c, "asOf", time.Now().UTC())
	if !ok {
		return
	}

	report, err := h.reportingService.GenerateBalanceSheet(c.Request.Context(), tenantID, asOf)
	if err != nil {
		respondServiceError(c, logger, err, "generate balance sheet")
		return
	}
	c.JSON(http.StatusOK, report)
}

// registerReportingRoutes registers report specific routes.
func registerReportingRoutes(group *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := group.Group("/reports")
	{
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/general-ledger", h.getGeneralLedger)
		reports.GET("/income-statement", h.getIncomeStatement)
		reports.GET("/balance-sheet", h.getBalanceSheet)
	}
}
