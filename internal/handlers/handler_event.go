package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kopkas/coopledger/internal/core/domain"
	portssvc "github.com/kopkas/coopledger/internal/core/ports/services"
	"github.com/kopkas/coopledger/internal/dto"
	"github.com/kopkas/coopledger/internal/middleware"
)

// EventEnqueuer submits ledger events for asynchronous posting.
type EventEnqueuer interface {
	EnqueueLedgerEvent(ctx context.Context, event domain.LedgerEvent) (string, error)
}

// eventHandler handles the ledger event intake endpoint.
type eventHandler struct {
	postingService portssvc.PostingSvcFacade
	enqueuer       EventEnqueuer
}

// newEventHandler creates a new eventHandler. enqueuer may be nil.
func newEventHandler(postingService portssvc.PostingSvcFacade, enqueuer EventEnqueuer) *eventHandler {
	return &eventHandler{postingService: postingService, enqueuer: enqueuer}
}

// processEvent godoc
// @Summary Process a ledger event
// @Description Translates a loan or savings event into a posted journal. With async=true the event is queued and processed by the worker.
// @Tags events
// @Accept json
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param async query bool false "Queue the event instead of posting synchronously"
// @Param event body dto.LedgerEventRequest true "Ledger event"
// @Success 201 {object} dto.JournalResponse "Posted journal (synchronous)"
// @Success 202 {object} map[string]string "Task ID (asynchronous)"
// @Failure 400 {object} map[string]string "Invalid event"
// @Failure 404 {object} map[string]string "Missing account role mapping"
// @Router /tenants/{tenantID}/events [post]
func (h *eventHandler) processEvent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")

	var req dto.LedgerEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for processEvent", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	event := req.ToDomainEvent(tenantID, userID)
	if !domain.ValidLedgerEventType(event.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown event type: " + string(event.Type)})
		return
	}

	logger = logger.With(
		slog.String("event_type", string(event.Type)),
		slog.String("reference_id", event.ReferenceID))

	if c.Query("async") == "true" {
		if h.enqueuer == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Asynchronous event intake is not configured"})
			return
		}
		taskID, err := h.enqueuer.EnqueueLedgerEvent(c.Request.Context(), event)
		if err != nil {
			logger.Error("Failed to enqueue ledger event", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enqueue event"})
			return
		}
		logger.Info("Ledger event enqueued", slog.String("task_id", taskID))
		c.JSON(http.StatusAccepted, gin.H{"taskID": taskID})
		return
	}

	journal, err := h.postingService.ProcessEvent(c.Request.Context(), event)
	if err != nil {
		respondServiceError(c, logger, err, "process event")
		return
	}

	logger.Info("Ledger event posted",
		slog.String("journal_id", journal.JournalID),
		slog.String("journal_number", journal.JournalNumber))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}

// registerEventRoutes registers the event intake route.
func registerEventRoutes(group *gin.RouterGroup, postingService portssvc.PostingSvcFacade, enqueuer EventEnqueuer) {
	h := newEventHandler(postingService, enqueuer)
	group.POST("/events", h.processEvent)
}
