package assessment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jwalitptl/peds-protocol-api/internal/model"
	"github.com/jwalitptl/peds-protocol-api/internal/protocol/shock"
	"github.com/jwalitptl/peds-protocol-api/internal/repository"
	"github.com/jwalitptl/peds-protocol-api/pkg/alert"
	"github.com/jwalitptl/peds-protocol-api/pkg/logger"
	"github.com/jwalitptl/peds-protocol-api/pkg/metrics"
)

// Patient bounds accepted for a new session.
const (
	MinWeightKg = 1.0
	MaxWeightKg = 150.0
	MaxAgeYears = 18.0
)

// Service drives the shock differential assessment. The scoring engine is
// pure; the service persists the session state between requests, fires
// critical-finding alerts and emits the completion event through the outbox.
type Service struct {
	sessions repository.SessionRepository
	access   repository.AccessRepository
	outbox   repository.OutboxRepository
	alerts   alert.Sink
	logger   *logger.Logger
	metrics  *metrics.Metrics
}

func NewService(
	sessions repository.SessionRepository,
	access repository.AccessRepository,
	outbox repository.OutboxRepository,
	alerts alert.Sink,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *Service {
	return &Service{
		sessions: sessions,
		access:   access,
		outbox:   outbox,
		alerts:   alerts,
		logger:   logger,
		metrics:  metrics,
	}
}

func (s *Service) StartSession(ctx context.Context, patientRef string, ageYears, weightKg float64) (*model.AssessmentSession, error) {
	if weightKg < MinWeightKg || weightKg > MaxWeightKg {
		return nil, fmt.Errorf("weight %.1f kg out of range", weightKg)
	}
	if ageYears < 0 || ageYears > MaxAgeYears {
		return nil, fmt.Errorf("age %.1f years out of range", ageYears)
	}

	session := &model.AssessmentSession{
		PatientRef: patientRef,
		AgeYears:   ageYears,
		WeightKg:   weightKg,
		Status:     model.SessionStatusActive,
	}
	session.ID = uuid.New()

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.metrics.AssessmentsStarted.Inc()
	s.logger.Info("assessment session started", "session_id", session.ID.String())
	return session, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.AssessmentSession, error) {
	return s.sessions.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, status model.SessionStatus, p *model.Pagination) ([]*model.AssessmentSession, error) {
	return s.sessions.List(ctx, status, p)
}

// RecordSelection stores one physical-exam finding on the session and
// returns the recomputed score vector. Selecting a different finding for a
// step the caller already answered replaces the earlier selection. A
// critical finding fires an alert immediately without waiting for scoring.
func (s *Service) RecordSelection(ctx context.Context, sessionID uuid.UUID, sel model.StepSelection) ([]model.ShockScore, error) {
	session, err := s.activeSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !sel.IsNormal {
		if _, _, ok := shock.FindingFor(sel); !ok {
			return nil, fmt.Errorf("unknown finding %q for step %d", sel.Finding, sel.StepOrder)
		}
	}

	replaced := false
	for i, existing := range session.State.Selections {
		if existing.StepOrder == sel.StepOrder {
			session.State.Selections[i] = sel
			replaced = true
			break
		}
	}
	if !replaced {
		session.State.Selections = append(session.State.Selections, sel)
	}

	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	if shock.IsCriticalSelection(sel) {
		s.fireCritical(ctx, sessionID, fmt.Sprintf("critical finding: %s", sel.Finding))
	}

	return s.scoreTimed(session.State), nil
}

// AnswerHistory stores one focused-history answer and returns the
// recomputed score vector. Answering the same question again replaces the
// earlier answer.
func (s *Service) AnswerHistory(ctx context.Context, sessionID uuid.UUID, ans model.HistoryAnswer) ([]model.ShockScore, error) {
	session, err := s.activeSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if _, ok := shock.QuestionByID(ans.QuestionID); !ok {
		return nil, fmt.Errorf("unknown history question %q", ans.QuestionID)
	}

	replaced := false
	for i, existing := range session.State.Answers {
		if existing.QuestionID == ans.QuestionID {
			session.State.Answers[i] = ans
			replaced = true
			break
		}
	}
	if !replaced {
		session.State.Answers = append(session.State.Answers, ans)
	}

	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	if shock.IsCriticalAnswer(ans) {
		q, _ := shock.QuestionByID(ans.QuestionID)
		s.fireCritical(ctx, sessionID, fmt.Sprintf("affirmative high-risk history: %s", q.Question))
	}

	return s.scoreTimed(session.State), nil
}

// Findings returns the chart view of the recorded selections: each
// observed parameter with the interpretation and significance resolved
// from the protocol tables, the latest record per parameter winning.
func (s *Service) Findings(ctx context.Context, sessionID uuid.UUID) ([]model.AssessmentFinding, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	findings := make([]model.AssessmentFinding, 0, len(session.State.Selections))
	for _, sel := range session.State.Selections {
		f, ok := shock.DerivedFinding(sel)
		if !ok {
			continue
		}
		findings = model.ReplaceFinding(findings, f)
	}
	return findings, nil
}

// Scores returns the current score vector without mutating the session.
func (s *Service) Scores(ctx context.Context, sessionID uuid.UUID) ([]model.ShockScore, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.scoreTimed(session.State), nil
}

// Complete closes the session with the top-scoring shock type, starts the
// vascular access clock and emits a SHOCK_IDENTIFIED event through the
// outbox. Completing an already completed session is an error.
func (s *Service) Complete(ctx context.Context, sessionID uuid.UUID) (*model.ShockIdentification, error) {
	session, err := s.activeSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	ident := shock.Complete(session.State)
	now := time.Now()

	session.Status = model.SessionStatusCompleted
	session.IdentifiedType = &ident.Type
	session.CompletedAt = &now

	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to complete session: %w", err)
	}

	if err := s.startAccessClock(ctx, sessionID, now); err != nil {
		// The identification already persisted; the clock also starts on
		// the first recorded IV attempt.
		s.logger.Error(err, "failed to start access clock", "session_id", sessionID.String())
	}

	payload, err := json.Marshal(map[string]interface{}{
		"session_id":  sessionID,
		"patient_ref": session.PatientRef,
		"shock_type":  ident.Type,
		"scores":      ident.Scores,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event payload: %w", err)
	}
	if err := s.outbox.Create(ctx, &model.OutboxEvent{
		EventType: model.EventShockIdentified,
		Payload:   payload,
	}); err != nil {
		// The identification already persisted; delivery is best effort.
		s.logger.Error(err, "failed to enqueue shock identified event", "session_id", sessionID.String())
	}

	s.metrics.AssessmentsCompleted.WithLabelValues(string(ident.Type)).Inc()
	s.logger.Info("assessment completed",
		"session_id", sessionID.String(),
		"shock_type", string(ident.Type))
	return &ident, nil
}

// startAccessClock begins the 90 second IV access window at identification
// so time spent before the first cannulation attempt counts toward IO
// escalation. An already running clock is left alone.
func (s *Service) startAccessClock(ctx context.Context, sessionID uuid.UUID, now time.Time) error {
	access, err := s.access.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if access != nil && access.StartedAt != nil {
		return nil
	}
	if access == nil {
		access = &model.VascularAccess{SessionID: sessionID}
	}
	access.StartedAt = &now
	return s.access.Upsert(ctx, access)
}

func (s *Service) activeSession(ctx context.Context, id uuid.UUID) (*model.AssessmentSession, error) {
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Status != model.SessionStatusActive {
		return nil, fmt.Errorf("session %s is %s, not active", id, session.Status)
	}
	return session, nil
}

func (s *Service) scoreTimed(state model.AssessmentState) []model.ShockScore {
	timer := prometheus.NewTimer(s.metrics.ScoreComputeLatency)
	defer timer.ObserveDuration()
	return shock.Score(state)
}

func (s *Service) fireCritical(ctx context.Context, sessionID uuid.UUID, message string) {
	s.metrics.CriticalAlertsFired.Inc()
	s.alerts.Fire(ctx, alert.Alert{
		SessionID: sessionID,
		Severity:  alert.SeverityCritical,
		Message:   message,
	})
}
