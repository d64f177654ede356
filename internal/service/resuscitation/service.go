package resuscitation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/peds-protocol-api/internal/model"
	"github.com/jwalitptl/peds-protocol-api/internal/protocol/dosing"
	"github.com/jwalitptl/peds-protocol-api/internal/protocol/fluids"
	"github.com/jwalitptl/peds-protocol-api/internal/repository"
	"github.com/jwalitptl/peds-protocol-api/pkg/alert"
	"github.com/jwalitptl/peds-protocol-api/pkg/logger"
	"github.com/jwalitptl/peds-protocol-api/pkg/metrics"
)

// Service runs the fluid resuscitation protocol for a session: the bolus
// log, post-bolus reassessment, vascular access tracking and the referral
// packet. Volume math and escalation predicates live in the protocol
// packages; this layer persists and reports.
type Service struct {
	sessions  repository.SessionRepository
	boluses   repository.BolusRepository
	access    repository.AccessRepository
	referrals repository.ReferralRepository
	outbox    repository.OutboxRepository
	alerts    alert.Sink
	logger    *logger.Logger
	metrics   *metrics.Metrics
}

func NewService(
	sessions repository.SessionRepository,
	boluses repository.BolusRepository,
	access repository.AccessRepository,
	referrals repository.ReferralRepository,
	outbox repository.OutboxRepository,
	alerts alert.Sink,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *Service {
	return &Service{
		sessions:  sessions,
		boluses:   boluses,
		access:    access,
		referrals: referrals,
		outbox:    outbox,
		alerts:    alerts,
		logger:    logger,
		metrics:   metrics,
	}
}

// BolusResult is one administered bolus plus the protocol guidance that
// follows from the cumulative volume.
type BolusResult struct {
	Record         model.FluidBolusRecord `json:"record"`
	TotalMLKg      float64                `json:"total_ml_kg"`
	Recommendation fluids.Recommendation  `json:"recommendation"`
}

// AdministerBolus computes the weight-based bolus for the session, appends
// it to the log and returns the cumulative-volume guidance. Boluses past a
// hard stop are refused.
func (s *Service) AdministerBolus(ctx context.Context, sessionID uuid.UUID, bolusType model.BolusType) (*BolusResult, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	records, err := s.boluses.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	log := fluids.NewBolusLog(deref(records))

	if log.Overloaded() {
		return nil, fmt.Errorf("fluid overload recorded for session %s, no further boluses", sessionID)
	}
	if rec := fluids.Recommend(bolusType, log.TotalMLKg(), false); rec == fluids.RecommendStopFluids {
		return nil, fmt.Errorf("fluid protocol hard stop reached at %.0f mL/kg", log.TotalMLKg())
	}

	bolus, err := dosing.FluidBolus(session.WeightKg, bolusType)
	if err != nil {
		return nil, err
	}

	record := log.Append(bolusType, bolus.PerKgML, bolus.VolumeML, time.Now())
	record.ID = uuid.New()
	record.SessionID = sessionID
	if err := s.boluses.Append(ctx, &record); err != nil {
		return nil, fmt.Errorf("failed to record bolus: %w", err)
	}

	s.metrics.BolusesAdministered.WithLabelValues(string(bolusType)).Inc()
	s.logger.Info("bolus administered",
		"session_id", sessionID.String(),
		"bolus_number", record.BolusNumber,
		"volume_ml", record.VolumeML)

	return &BolusResult{
		Record:         record,
		TotalMLKg:      log.TotalMLKg(),
		Recommendation: fluids.Recommend(bolusType, log.TotalMLKg(), false),
	}, nil
}

// ReassessmentResult reports the overload decision after a post-bolus check.
type ReassessmentResult struct {
	Overloaded     bool                  `json:"overloaded"`
	TotalMLKg      float64               `json:"total_ml_kg"`
	Recommendation fluids.Recommendation `json:"recommendation"`
}

// RecordReassessment attaches the post-bolus checklist to the given bolus
// record. An overload sign on hepatomegaly, crackles, JVD or falling SpO2
// stops fluids, fires an alert and emits an OVERLOAD_DETECTED event.
func (s *Service) RecordReassessment(ctx context.Context, sessionID, bolusID uuid.UUID, items []model.ReassessmentItem, outcome model.BolusOutcome) (*ReassessmentResult, error) {
	records, err := s.boluses.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	var target *model.FluidBolusRecord
	for _, r := range records {
		if r.ID == bolusID {
			target = r
		}
	}
	if target == nil {
		return nil, fmt.Errorf("bolus %s not found in session %s", bolusID, sessionID)
	}
	latest, _ := fluids.NewBolusLog(deref(records)).Latest()

	overloaded := fluids.IsOverloaded(items)
	if overloaded {
		outcome = model.OutcomeOverloaded
	}
	if err := s.boluses.UpdateOutcome(ctx, bolusID, outcome, items); err != nil {
		return nil, err
	}

	if overloaded {
		s.metrics.OverloadsDetected.Inc()
		s.alerts.Fire(ctx, alert.Alert{
			SessionID: sessionID,
			Severity:  alert.SeverityCritical,
			Message:   "fluid overload signs present: stop fluids, escalate to inotropes",
		})

		payload, merr := json.Marshal(map[string]interface{}{
			"session_id":  sessionID,
			"bolus_id":    bolusID,
			"total_ml_kg": latest.TotalGivenMLKg,
		})
		if merr != nil {
			return nil, fmt.Errorf("failed to marshal event payload: %w", merr)
		}
		if err := s.outbox.Create(ctx, &model.OutboxEvent{
			EventType: model.EventOverloadDetected,
			Payload:   payload,
		}); err != nil {
			s.logger.Error(err, "failed to enqueue overload event", "session_id", sessionID.String())
		}
	}

	return &ReassessmentResult{
		Overloaded:     overloaded,
		TotalMLKg:      latest.TotalGivenMLKg,
		Recommendation: fluids.Recommend(latest.Type, latest.TotalGivenMLKg, overloaded),
	}, nil
}

// AccessStatus reports the IV attempt history and whether the protocol
// calls for moving to the intraosseous route.
type AccessStatus struct {
	FailedAttempts int     `json:"failed_attempts"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	EscalateToIO   bool    `json:"escalate_to_io"`
	IOEscalated    bool    `json:"io_escalated"`
}

// RecordIVAttempt logs one failed peripheral IV attempt. The first attempt
// starts the 90 second access clock. When either bound trips, an
// IO_ESCALATION event is emitted once.
func (s *Service) RecordIVAttempt(ctx context.Context, sessionID uuid.UUID) (*AccessStatus, error) {
	access, err := s.access.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if access == nil {
		access = &model.VascularAccess{SessionID: sessionID, StartedAt: &now}
	}
	access.FailedAttempts++

	status := s.evaluate(access, now)
	if status.EscalateToIO && !access.IOEscalated {
		access.IOEscalated = true
		status.IOEscalated = true
		s.emitIOEscalation(ctx, sessionID, access.FailedAttempts)
	}

	if err := s.access.Upsert(ctx, access); err != nil {
		return nil, fmt.Errorf("failed to update vascular access: %w", err)
	}
	return status, nil
}

// CheckAccess re-evaluates the access clock without adding an attempt, so
// the 90 second bound can trip between attempts.
func (s *Service) CheckAccess(ctx context.Context, sessionID uuid.UUID) (*AccessStatus, error) {
	access, err := s.access.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if access == nil {
		return &AccessStatus{}, nil
	}

	now := time.Now()
	status := s.evaluate(access, now)
	if status.EscalateToIO && !access.IOEscalated {
		access.IOEscalated = true
		status.IOEscalated = true
		s.emitIOEscalation(ctx, sessionID, access.FailedAttempts)
		if err := s.access.Upsert(ctx, access); err != nil {
			return nil, fmt.Errorf("failed to update vascular access: %w", err)
		}
	}
	return status, nil
}

func (s *Service) evaluate(access *model.VascularAccess, now time.Time) *AccessStatus {
	var elapsed time.Duration
	if access.StartedAt != nil {
		elapsed = now.Sub(*access.StartedAt)
	}
	return &AccessStatus{
		FailedAttempts: access.FailedAttempts,
		ElapsedSeconds: elapsed.Seconds(),
		EscalateToIO:   fluids.ShouldEscalateToIO(access.FailedAttempts, elapsed),
		IOEscalated:    access.IOEscalated,
	}
}

func (s *Service) emitIOEscalation(ctx context.Context, sessionID uuid.UUID, attempts int) {
	payload, err := json.Marshal(map[string]interface{}{
		"session_id":      sessionID,
		"failed_attempts": attempts,
	})
	if err != nil {
		s.logger.Error(err, "failed to marshal event payload", "session_id", sessionID.String())
		return
	}
	if err := s.outbox.Create(ctx, &model.OutboxEvent{
		EventType: model.EventIOEscalation,
		Payload:   payload,
	}); err != nil {
		s.logger.Error(err, "failed to enqueue IO escalation event", "session_id", sessionID.String())
	}
}

// CreateReferral assembles the SBAR handoff packet from the session and
// marks the session referred.
func (s *Service) CreateReferral(ctx context.Context, referral *model.Referral) (*model.Referral, error) {
	session, err := s.sessions.Get(ctx, referral.SessionID)
	if err != nil {
		return nil, err
	}

	referral.ID = uuid.New()
	referral.PatientRef = session.PatientRef
	referral.AgeYears = session.AgeYears
	referral.WeightKg = session.WeightKg
	if referral.WorkingDiagnosis == "" && session.IdentifiedType != nil {
		referral.WorkingDiagnosis = fmt.Sprintf("%s shock", *session.IdentifiedType)
	}

	if err := s.referrals.Create(ctx, referral); err != nil {
		return nil, fmt.Errorf("failed to create referral: %w", err)
	}

	session.Status = model.SessionStatusReferred
	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to mark session referred: %w", err)
	}

	payload, err := json.Marshal(referral)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event payload: %w", err)
	}
	if err := s.outbox.Create(ctx, &model.OutboxEvent{
		EventType: model.EventReferralRequested,
		Payload:   payload,
	}); err != nil {
		s.logger.Error(err, "failed to enqueue referral event", "referral_id", referral.ID.String())
	}

	s.metrics.ReferralsCreated.Inc()
	s.logger.Info("referral created",
		"referral_id", referral.ID.String(),
		"session_id", referral.SessionID.String())
	return referral, nil
}

// Referrals lists the referral packets raised for a session.
func (s *Service) Referrals(ctx context.Context, sessionID uuid.UUID) ([]*model.Referral, error) {
	return s.referrals.ListBySession(ctx, sessionID)
}

func deref(records []*model.FluidBolusRecord) []model.FluidBolusRecord {
	out := make([]model.FluidBolusRecord, 0, len(records))
	for _, r := range records {
		out = append(out, *r)
	}
	return out
}
