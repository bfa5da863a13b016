package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/kopkas/coopledger/internal/core/ports/services"
	"github.com/kopkas/coopledger/internal/dto"
	"github.com/kopkas/coopledger/internal/middleware"
)

const defaultJournalPageSize = 20

// journalHandler handles HTTP requests related to journals.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(journalService portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: journalService}
}

// createJournal godoc
// @Summary Create a journal entry
// @Description Creates a balanced journal with its lines; set post=true to create and post in one step
// @Tags journals
// @Accept json
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param journal body dto.CreateJournalRequest true "Journal and lines"
// @Success 201 {object} dto.JournalResponse "Created journal"
// @Failure 400 {object} map[string]string "Unbalanced or invalid journal"
// @Failure 409 {object} map[string]string "Unknown or inactive account"
// @Router /tenants/{tenantID}/journals [post]
func (h *journalHandler) createJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")

	var req dto.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createJournal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	journal, err := h.journalService.CreateJournal(c.Request.Context(), tenantID, req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "create journal")
		return
	}

	logger.Info("Journal created",
		slog.String("journal_id", journal.JournalID),
		slog.String("journal_number", journal.JournalNumber),
		slog.String("status", string(journal.Status)))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}

// getJournal godoc
// @Summary Get a journal entry
// @Description Retrieves a journal and its lines by journal ID
// @Tags journals
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param journalID path string true "Journal ID"
// @Success 200 {object} dto.JournalResponse "Journal with lines"
// @Failure 404 {object} map[string]string "Journal not found"
// @Router /tenants/{tenantID}/journals/{journalID} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")
	journalID := c.Param("journalID")

	journal, err := h.journalService.GetJournalByID(c.Request.Context(), tenantID, journalID)
	if err != nil {
		respondServiceError(c, logger, err, "get journal")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// listJournals godoc
// @Summary List journal entries
// @Description Retrieves a page of journals, newest first, with token-based pagination
// @Tags journals
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param limit query int false "Page size (default 20)"
// @Param nextToken query string false "Continuation token from a previous page"
// @Param includeLines query bool false "Include journal lines in each entry"
// @Success 200 {object} dto.ListJournalsResponse "Page of journals"
// @Failure 400 {object} map[string]string "Invalid pagination token"
// @Router /tenants/{tenantID}/journals [get]
func (h *journalHandler) listJournals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")

	limit := defaultJournalPageSize
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit: " + raw})
			return
		}
		limit = parsed
	}

	params := dto.ListJournalsParams{
		Limit:        limit,
		IncludeLines: c.Query("includeLines") == "true",
	}
	if token := c.Query("nextToken"); token != "" {
		params.NextToken = &token
	}

	page, err := h.journalService.ListJournals(c.Request.Context(), tenantID, params)
	if err != nil {
		respondServiceError(c, logger, err, "list journals")
		return
	}
	c.JSON(http.StatusOK, page)
}

// postJournal godoc
// @Summary Post a draft journal
// @Description Transitions a DRAFT journal to POSTED, making it visible to reports
// @Tags journals
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param journalID path string true "Journal ID"
// @Success 200 {object} dto.JournalResponse "Posted journal"
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 409 {object} map[string]string "Journal is not a draft"
// @Router /tenants/{tenantID}/journals/{journalID}/post [post]
func (h *journalHandler) postJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")
	journalID := c.Param("journalID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	journal, err := h.journalService.PostJournal(c.Request.Context(), tenantID, journalID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "post journal")
		return
	}

	logger.Info("Journal posted", slog.String("journal_id", journalID), slog.String("posted_by", userID))
	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// cancelJournal godoc
// @Summary Cancel a draft journal
// @Description Deletes a DRAFT journal and its lines; posted journals cannot be cancelled
// @Tags journals
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param journalID path string true "Journal ID"
// @Success 204 "Journal cancelled"
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 409 {object} map[string]string "Journal is not a draft"
// @Router /tenants/{tenantID}/journals/{journalID} [delete]
func (h *journalHandler) cancelJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")
	journalID := c.Param("journalID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.journalService.CancelJournal(c.Request.Context(), tenantID, journalID, userID); err != nil {
		respondServiceError(c, logger, err, "cancel journal")
		return
	}

	logger.Info("Journal cancelled", slog.String("journal_id", journalID), slog.String("cancelled_by", userID))
	c.Status(http.StatusNoContent)
}

// registerJournalRoutes registers journal specific routes.
func registerJournalRoutes(group *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	journals := group.Group("/journals")
	{
		journals.POST("", h.createJournal)
		journals.GET("", h.listJournals)
		journals.GET("/:journalID", h.getJournal)
		journals.POST("/:journalID/post", h.postJournal)
		journals.DELETE("/:journalID", h.cancelJournal)
	}
}
