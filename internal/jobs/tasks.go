package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hibiken/asynq"

	"github.com/kopkas/coopledger/internal/apperrors"
	"github.com/kopkas/coopledger/internal/core/domain"
	portssvc "github.com/kopkas/coopledger/internal/core/ports/services"
	"github.com/kopkas/coopledger/internal/middleware"
)

const (
	// QueueLedger is the queue name for ledger event tasks.
	QueueLedger = "ledger"

	TaskTypeLoanDisbursed     = "ledger:loan_disbursed"
	TaskTypeLoanRepaid        = "ledger:loan_repaid"
	TaskTypeSavingsDeposit    = "ledger:savings_deposit"
	TaskTypeSavingsWithdrawal = "ledger:savings_withdrawal"
)

// TaskTypeForEvent maps a ledger event type to its task type name.
func TaskTypeForEvent(eventType domain.LedgerEventType) string {
	return "ledger:" + strings.ToLower(string(eventType))
}

// NewLedgerEventTask constructs an Asynq task carrying the full event.
func NewLedgerEventTask(event domain.LedgerEvent) (*asynq.Task, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeForEvent(event.Type), data), nil
}

// NewLedgerEventHandler returns the handler that turns queued events into
// posted journals. Validation and mapping failures are permanent, so they
// skip retry; concurrency failures are retried by the server.
func NewLedgerEventHandler(postingSvc portssvc.PostingSvcFacade, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var event domain.LedgerEvent
		if err := json.Unmarshal(t.Payload(), &event); err != nil {
			logger.Error("Failed to decode ledger event payload", slog.String("task_type", t.Type()), slog.String("error", err.Error()))
			return fmt.Errorf("decode %s payload: %v: %w", t.Type(), err, asynq.SkipRetry)
		}

		taskLogger := logger.With(
			slog.String("task_type", t.Type()),
			slog.String("tenant_id", event.TenantID),
			slog.String("reference_id", event.ReferenceID),
		)
		ctx = middleware.ContextWithLogger(ctx, taskLogger)

		journal, err := postingSvc.ProcessEvent(ctx, event)
		if err != nil {
			if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrNotFound) {
				taskLogger.Error("Ledger event rejected, not retrying", slog.String("error", err.Error()))
				return fmt.Errorf("process event: %v: %w", err, asynq.SkipRetry)
			}
			taskLogger.Warn("Ledger event failed, will retry", slog.String("error", err.Error()))
			return err
		}

		taskLogger.Info("Ledger event posted",
			slog.String("journal_id", journal.JournalID),
			slog.String("journal_number", journal.JournalNumber))
		return nil
	}
}

// Client submits ledger event tasks to the queue.
type Client struct {
	client *asynq.Client
}

// NewClient constructs an Asynq client on the given Redis connection.
func NewClient(redisOpts asynq.RedisClientOpt) *Client {
	return &Client{client: asynq.NewClient(redisOpts)}
}

// EnqueueLedgerEvent enqueues an event for asynchronous posting and returns
// the task ID.
func (c *Client) EnqueueLedgerEvent(ctx context.Context, event domain.LedgerEvent) (string, error) {
	task, err := NewLedgerEventTask(event)
	if err != nil {
		return "", err
	}
	info, err := c.client.EnqueueContext(ctx, task, asynq.Queue(QueueLedger))
	if err != nil {
		return "", err
	}
	return info.ID, nil
}

// Close releases client resources.
func (c *Client) Close() error {
	return c.client.Close()
}
