package escalation

import (
	"context"
	"database/sql"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/peds-protocol-api/internal/model"
	"github.com/jwalitptl/peds-protocol-api/pkg/logger"
	"github.com/jwalitptl/peds-protocol-api/pkg/metrics"
)

type stateKey struct {
	session   uuid.UUID
	condition model.Condition
}

type fakeEscalationRepo struct {
	states map[stateKey]*model.EscalationState
}

func (r *fakeEscalationRepo) Get(_ context.Context, sessionID uuid.UUID, condition model.Condition) (*model.EscalationState, error) {
	s, ok := r.states[stateKey{sessionID, condition}]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeEscalationRepo) Upsert(_ context.Context, s *model.EscalationState) error {
	cp := *s
	r.states[stateKey{s.SessionID, s.Condition}] = &cp
	return nil
}

type fakeOutboxRepo struct {
	events []*model.OutboxEvent
}

func (r *fakeOutboxRepo) Create(_ context.Context, e *model.OutboxEvent) error {
	r.events = append(r.events, e)
	return nil
}

func (r *fakeOutboxRepo) CreateTx(_ context.Context, _ *sql.Tx, e *model.OutboxEvent) error {
	return r.Create(context.Background(), e)
}

func (r *fakeOutboxRepo) GetPendingEventsWithLock(context.Context, int) ([]*model.OutboxEvent, error) {
	return nil, nil
}

func (r *fakeOutboxRepo) UpdateStatusTx(context.Context, *sql.Tx, uuid.UUID, string, *string, *time.Time) error {
	return nil
}

var (
	testMetricsOnce sync.Once
	testMetrics     *metrics.Metrics
)

func newTestService() (*Service, *fakeOutboxRepo) {
	testMetricsOnce.Do(func() {
		testMetrics = metrics.NewMetrics("test", "escalation")
	})
	outbox := &fakeOutboxRepo{}
	log := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
	svc := NewService(&fakeEscalationRepo{states: map[stateKey]*model.EscalationState{}}, outbox, log, testMetrics)
	return svc, outbox
}

func TestCurrentLineDefaultsToFirst(t *testing.T) {
	svc, _ := newTestService()

	line, steps, err := svc.CurrentLine(context.Background(), uuid.New(), model.ConditionAsthma)
	require.NoError(t, err)
	assert.Equal(t, model.LineFirst, line)
	assert.NotEmpty(t, steps)
}

func TestEscalateWalksForward(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	sessionID := uuid.New()

	line, steps, err := svc.Escalate(ctx, sessionID, model.ConditionAsthma)
	require.NoError(t, err)
	assert.Equal(t, model.LineSecond, line)
	assert.NotEmpty(t, steps)

	// Position persists between requests.
	current, _, err := svc.CurrentLine(ctx, sessionID, model.ConditionAsthma)
	require.NoError(t, err)
	assert.Equal(t, model.LineSecond, current)
}

func TestEscalateIndependentPerCondition(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	sessionID := uuid.New()

	_, _, err := svc.Escalate(ctx, sessionID, model.ConditionAsthma)
	require.NoError(t, err)

	line, _, err := svc.CurrentLine(ctx, sessionID, model.ConditionSepticShock)
	require.NoError(t, err)
	assert.Equal(t, model.LineFirst, line)
}

func TestEscalateExhaustsLadder(t *testing.T) {
	svc, outbox := newTestService()
	ctx := context.Background()
	sessionID := uuid.New()

	for {
		_, _, err := svc.Escalate(ctx, sessionID, model.ConditionEclampsia)
		if err != nil {
			assert.ErrorIs(t, err, ErrLadderExhausted)
			break
		}
	}

	var types []string
	for _, e := range outbox.events {
		types = append(types, e.EventType)
	}
	assert.Contains(t, types, model.EventLadderExhausted)

	// Exhaustion is terminal; repeating the call keeps failing.
	_, _, err := svc.Escalate(ctx, sessionID, model.ConditionEclampsia)
	assert.ErrorIs(t, err, ErrLadderExhausted)
}

func TestEscalateUnknownCondition(t *testing.T) {
	svc, _ := newTestService()

	_, _, err := svc.Escalate(context.Background(), uuid.New(), model.Condition("gout"))
	assert.Error(t, err)
}

func TestLadderPassthrough(t *testing.T) {
	svc, _ := newTestService()

	assert.Len(t, svc.Conditions(), 4)
	steps, err := svc.Ladder(model.ConditionPPH)
	require.NoError(t, err)
	assert.NotEmpty(t, steps)
}
