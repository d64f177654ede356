package escalation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalitptl/peds-protocol-api/internal/model"
	"github.com/jwalitptl/peds-protocol-api/internal/protocol/escalation"
	"github.com/jwalitptl/peds-protocol-api/internal/repository"
	"github.com/jwalitptl/peds-protocol-api/pkg/logger"
	"github.com/jwalitptl/peds-protocol-api/pkg/metrics"
)

// ErrLadderExhausted is returned when a session is already on the last
// line of a condition's ladder.
var ErrLadderExhausted = errors.New("therapy ladder exhausted")

// Service walks sessions up the per-condition therapy ladders. The walk is
// strictly one-directional; the ladder definitions live in the protocol
// package and the current line per session is persisted here.
type Service struct {
	states  repository.EscalationRepository
	outbox  repository.OutboxRepository
	logger  *logger.Logger
	metrics *metrics.Metrics
}

func NewService(
	states repository.EscalationRepository,
	outbox repository.OutboxRepository,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *Service {
	return &Service{
		states:  states,
		outbox:  outbox,
		logger:  logger,
		metrics: metrics,
	}
}

// Conditions lists the conditions with a defined ladder.
func (s *Service) Conditions() []model.Condition {
	return escalation.Conditions()
}

// Ladder returns the full ladder for a condition.
func (s *Service) Ladder(condition model.Condition) ([]model.TherapyStep, error) {
	return escalation.Ladder(condition)
}

// CurrentLine reports the session's position on a condition's ladder and
// the therapy options at that line. A session that has not started a
// ladder is on the first line.
func (s *Service) CurrentLine(ctx context.Context, sessionID uuid.UUID, condition model.Condition) (model.TherapyLine, []model.TherapyStep, error) {
	line := model.LineFirst
	state, err := s.states.Get(ctx, sessionID, condition)
	if err != nil {
		return "", nil, err
	}
	if state != nil {
		line = state.Line
	}

	steps, err := escalation.StepsAtLine(condition, line)
	if err != nil {
		return "", nil, err
	}
	return line, steps, nil
}

// Escalate advances the session one line up the condition's ladder and
// returns the new line's therapy options. Escalating past the last line
// returns ErrLadderExhausted and emits a LADDER_EXHAUSTED event so the
// referral pathway can pick the session up.
func (s *Service) Escalate(ctx context.Context, sessionID uuid.UUID, condition model.Condition) (model.TherapyLine, []model.TherapyStep, error) {
	current, _, err := s.CurrentLine(ctx, sessionID, condition)
	if err != nil {
		return "", nil, err
	}

	steps, err := escalation.NextStep(current, condition)
	if errors.Is(err, escalation.ErrTerminalLadder) {
		s.emitExhausted(ctx, sessionID, condition, current)
		return "", nil, fmt.Errorf("%s at line %s: %w", condition, current, ErrLadderExhausted)
	}
	if err != nil {
		return "", nil, err
	}

	next, ok := current.Next()
	if !ok {
		return "", nil, fmt.Errorf("%s at line %s: %w", condition, current, ErrLadderExhausted)
	}
	if err := s.states.Upsert(ctx, &model.EscalationState{
		SessionID: sessionID,
		Condition: condition,
		Line:      next,
	}); err != nil {
		return "", nil, fmt.Errorf("failed to persist escalation: %w", err)
	}

	s.metrics.LadderEscalations.WithLabelValues(string(condition)).Inc()
	s.logger.Info("therapy escalated",
		"session_id", sessionID.String(),
		"condition", string(condition),
		"line", string(next))
	return next, steps, nil
}

func (s *Service) emitExhausted(ctx context.Context, sessionID uuid.UUID, condition model.Condition, line model.TherapyLine) {
	payload, err := json.Marshal(map[string]interface{}{
		"session_id": sessionID,
		"condition":  condition,
		"line":       line,
	})
	if err != nil {
		s.logger.Error(err, "failed to marshal event payload", "session_id", sessionID.String())
		return
	}
	if err := s.outbox.Create(ctx, &model.OutboxEvent{
		EventType: model.EventLadderExhausted,
		Payload:   payload,
	}); err != nil {
		s.logger.Error(err, "failed to enqueue ladder exhausted event", "session_id", sessionID.String())
	}
}
