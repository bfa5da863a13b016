package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kopkas/coopledger/internal/apperrors"
	"github.com/kopkas/coopledger/internal/core/domain"
)

type mockPostingService struct {
	mock.Mock
}

func (m *mockPostingService) ProcessEvent(ctx context.Context, event domain.LedgerEvent) (*domain.Journal, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleEvent() domain.LedgerEvent {
	return domain.LedgerEvent{
		Type:            domain.EventLoanDisbursed,
		TenantID:        uuid.NewString(),
		ReferenceID:     uuid.NewString(),
		TransactionDate: time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC),
		ProcessedBy:     uuid.NewString(),
		Description:     "Loan disbursement",
		Principal:       decimal.NewFromInt(1000),
	}
}

func TestTaskTypeForEvent(t *testing.T) {
	assert.Equal(t, TaskTypeLoanDisbursed, TaskTypeForEvent(domain.EventLoanDisbursed))
	assert.Equal(t, TaskTypeLoanRepaid, TaskTypeForEvent(domain.EventLoanRepaid))
	assert.Equal(t, TaskTypeSavingsDeposit, TaskTypeForEvent(domain.EventSavingsDeposit))
	assert.Equal(t, TaskTypeSavingsWithdrawal, TaskTypeForEvent(domain.EventSavingsWithdrawal))
}

func TestNewLedgerEventTask(t *testing.T) {
	event := sampleEvent()

	task, err := NewLedgerEventTask(event)
	require.NoError(t, err)
	assert.Equal(t, TaskTypeLoanDisbursed, task.Type())

	var decoded domain.LedgerEvent
	require.NoError(t, json.Unmarshal(task.Payload(), &decoded))
	assert.Equal(t, event.TenantID, decoded.TenantID)
	assert.Equal(t, event.ReferenceID, decoded.ReferenceID)
	assert.True(t, event.Principal.Equal(decoded.Principal))
}

func TestLedgerEventHandler_Success(t *testing.T) {
	event := sampleEvent()
	journal := &domain.Journal{JournalID: uuid.NewString(), JournalNumber: "LN202503070001"}

	postingSvc := new(mockPostingService)
	postingSvc.On("ProcessEvent", mock.Anything, mock.MatchedBy(func(e domain.LedgerEvent) bool {
		return e.TenantID == event.TenantID && e.ReferenceID == event.ReferenceID
	})).Return(journal, nil).Once()

	task, err := NewLedgerEventTask(event)
	require.NoError(t, err)

	handler := NewLedgerEventHandler(postingSvc, discardLogger())
	require.NoError(t, handler(context.Background(), task))
	postingSvc.AssertExpectations(t)
}

func TestLedgerEventHandler_BadPayloadSkipsRetry(t *testing.T) {
	postingSvc := new(mockPostingService)
	handler := NewLedgerEventHandler(postingSvc, discardLogger())

	task := asynq.NewTask(TaskTypeLoanDisbursed, []byte("{not json"))
	err := handler(context.Background(), task)

	require.Error(t, err)
	assert.ErrorIs(t, err, asynq.SkipRetry)
	postingSvc.AssertNotCalled(t, "ProcessEvent", mock.Anything, mock.Anything)
}

func TestLedgerEventHandler_RejectionSkipsRetry(t *testing.T) {
	event := sampleEvent()

	postingSvc := new(mockPostingService)
	postingSvc.On("ProcessEvent", mock.Anything, mock.Anything).
		Return(nil, apperrors.ErrValidation).Once()

	task, err := NewLedgerEventTask(event)
	require.NoError(t, err)

	handler := NewLedgerEventHandler(postingSvc, discardLogger())
	err = handler(context.Background(), task)

	require.Error(t, err)
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestLedgerEventHandler_TransientErrorRetries(t *testing.T) {
	event := sampleEvent()
	transient := errors.New("connection reset")

	postingSvc := new(mockPostingService)
	postingSvc.On("ProcessEvent", mock.Anything, mock.Anything).
		Return(nil, transient).Once()

	task, err := NewLedgerEventTask(event)
	require.NoError(t, err)

	handler := NewLedgerEventHandler(postingSvc, discardLogger())
	err = handler(context.Background(), task)

	require.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
	assert.ErrorIs(t, err, transient)
}

func TestClientEnqueueLedgerEvent(t *testing.T) {
	mr := miniredis.RunT(t)

	client := NewClient(asynq.RedisClientOpt{Addr: mr.Addr()})
	defer client.Close()

	taskID, err := client.EnqueueLedgerEvent(context.Background(), sampleEvent())
	require.NoError(t, err)
	assert.NotEmpty(t, taskID)
}
