package jobs

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	portssvc "github.com/kopkas/coopledger/internal/core/ports/services"
)

// Worker wraps the Asynq server consuming ledger event tasks.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	logger *slog.Logger
}

// WorkerConfig collects dependencies required to bootstrap the worker.
type WorkerConfig struct {
	RedisOpts   asynq.RedisClientOpt
	Concurrency int
	Logger      *slog.Logger
	PostingSvc  portssvc.PostingSvcFacade
}

// NewWorker constructs a Worker with all ledger event handlers registered.
func NewWorker(cfg WorkerConfig) *Worker {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}
	srv := asynq.NewServer(cfg.RedisOpts, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			QueueLedger: 1,
		},
	})

	handler := NewLedgerEventHandler(cfg.PostingSvc, cfg.Logger)
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskTypeLoanDisbursed, handler)
	mux.HandleFunc(TaskTypeLoanRepaid, handler)
	mux.HandleFunc(TaskTypeSavingsDeposit, handler)
	mux.HandleFunc(TaskTypeSavingsWithdrawal, handler)

	return &Worker{server: srv, mux: mux, logger: cfg.Logger}
}

// Run starts processing tasks until context cancellation.
func (w *Worker) Run(ctx context.Context) error {
	if w == nil {
		return errors.New("worker: not configured")
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- w.server.Run(w.mux)
	}()
	select {
	case <-ctx.Done():
		w.server.Shutdown()
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}
