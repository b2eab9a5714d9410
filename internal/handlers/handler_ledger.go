package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fleetops/fleet_ledger_app/internal/apperrors"
	portssvc "github.com/fleetops/fleet_ledger_app/internal/core/ports/services"
	"github.com/fleetops/fleet_ledger_app/internal/core/services"
	"github.com/fleetops/fleet_ledger_app/internal/dto"
	"github.com/fleetops/fleet_ledger_app/internal/middleware"
)

const dateParamFormat = "2006-01-02"

// ledgerHandler handles HTTP requests against the method ledger engine.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{
		ledgerService: ls,
	}
}

// registerLedgerRoutes registers routes related to the ledger engine.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	methods := rg.Group("/methods/:methodID")
	{
		methods.POST("/ledger/:year/:month/materialize", h.materializeMonth)
		methods.GET("/ledger/:year/:month", h.getMonthLedger)
		methods.GET("/period", h.computePeriod)
		methods.GET("/balance", h.getCurrentBalance)
		methods.GET("/entries", h.listEntries)
	}

	entries := rg.Group("/entries/:entryID")
	{
		entries.PATCH("", h.updateEntry)
		entries.POST("/lock", h.toggleLock)
	}

	rg.GET("/balances", h.companyBalanceSummary)
}

// yearMonthParams parses the 1-based :year/:month path segments.
func yearMonthParams(c *gin.Context) (int, time.Month, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return 0, 0, false
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month, expected 1-12"})
		return 0, 0, false
	}
	return year, time.Month(month), true
}

func (h *ledgerHandler) writeLedgerError(c *gin.Context, err error, action string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Operation not permitted"})
	case errors.Is(err, services.ErrEntryLocked):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrMethodInactive):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Ledger operation failed", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

func (h *ledgerHandler) materializeMonth(c *gin.Context) {
	companyID, ok := middleware.GetCompanyIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Company ID missing"})
		return
	}
	year, month, ok := yearMonthParams(c)
	if !ok {
		return
	}

	result, err := h.ledgerService.MaterializeMonth(c.Request.Context(), companyID, c.Param("methodID"), year, month)
	if err != nil {
		h.writeLedgerError(c, err, "materialize month")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Month materialized",
		slog.String("method_id", c.Param("methodID")),
		slog.Int("created", len(result.Created)),
		slog.Int("failed", len(result.Failed)))
	c.JSON(http.StatusOK, dto.ToMaterializeMonthResponse(result))
}

func (h *ledgerHandler) getMonthLedger(c *gin.Context) {
	companyID, ok := middleware.GetCompanyIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Company ID missing"})
		return
	}
	year, month, ok := yearMonthParams(c)
	if !ok {
		return
	}

	view, err := h.ledgerService.GetMonthLedger(c.Request.Context(), companyID, c.Param("methodID"), year, month)
	if err != nil {
		h.writeLedgerError(c, err, "compute month ledger")
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerViewResponse(view))
}

func (h *ledgerHandler) computePeriod(c *gin.Context) {
	companyID, ok := middleware.GetCompanyIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Company ID missing"})
		return
	}

	from, err := time.Parse(dateParamFormat, c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'from' date, expected YYYY-MM-DD"})
		return
	}
	to, err := time.Parse(dateParamFormat, c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'to' date, expected YYYY-MM-DD"})
		return
	}

	view, err := h.ledgerService.ComputePeriod(c.Request.Context(), companyID, c.Param("methodID"), from, to)
	if err != nil {
		h.writeLedgerError(c, err, "compute period")
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerViewResponse(view))
}

func (h *ledgerHandler) getCurrentBalance(c *gin.Context) {
	companyID, ok := middleware.GetCompanyIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Company ID missing"})
		return
	}

	methodID := c.Param("methodID")
	balance, err := h.ledgerService.ComputeCurrentBalance(c.Request.Context(), companyID, methodID)
	if err != nil {
		h.writeLedgerError(c, err, "compute balance")
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{MethodID: methodID, Balance: balance})
}

func (h *ledgerHandler) companyBalanceSummary(c *gin.Context) {
	companyID, ok := middleware.GetCompanyIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Company ID missing"})
		return
	}

	summary, err := h.ledgerService.CompanyBalanceSummary(c.Request.Context(), companyID)
	if err != nil {
		h.writeLedgerError(c, err, "compute balance summary")
		return
	}

	c.JSON(http.StatusOK, dto.ToCompanyBalanceSummaryResponse(summary))
}

func (h *ledgerHandler) listEntries(c *gin.Context) {
	companyID, ok := middleware.GetCompanyIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Company ID missing"})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}

	entries, nextToken, err := h.ledgerService.ListEntries(c.Request.Context(), companyID, c.Param("methodID"), c.Query("pageToken"), limit)
	if err != nil {
		h.writeLedgerError(c, err, "list entries")
		return
	}

	c.JSON(http.StatusOK, dto.ToListEntriesResponse(entries, nextToken))
}

func (h *ledgerHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, ok := middleware.GetCompanyIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Company ID missing"})
		return
	}

	var req dto.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.ledgerService.UpdateEntryFields(c.Request.Context(), companyID, c.Param("entryID"), req, callerUserID(c))
	if err != nil {
		h.writeLedgerError(c, err, "update entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

func (h *ledgerHandler) toggleLock(c *gin.Context) {
	companyID, ok := middleware.GetCompanyIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Company ID missing"})
		return
	}

	entry, err := h.ledgerService.ToggleEntryLock(c.Request.Context(), companyID, c.Param("entryID"), callerUserID(c))
	if err != nil {
		h.writeLedgerError(c, err, "toggle entry lock")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}
