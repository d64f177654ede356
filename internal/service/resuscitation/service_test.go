package resuscitation

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
	"github.com/jwalitptl/peds-protocol-api/internal/protocol/fluids"
	"github.com/jwalitptl/peds-protocol-api/pkg/alert"
	"github.com/jwalitptl/peds-protocol-api/pkg/logger"
	"github.com/jwalitptl/peds-protocol-api/pkg/metrics"
)

type fakeSessionRepo struct {
	sessions map[uuid.UUID]*model.AssessmentSession
}

func (r *fakeSessionRepo) Create(_ context.Context, s *model.AssessmentSession) error {
	r.sessions[s.ID] = s
	return nil
}

func (r *fakeSessionRepo) Get(_ context.Context, id uuid.UUID) (*model.AssessmentSession, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSessionRepo) Update(_ context.Context, s *model.AssessmentSession) error {
	r.sessions[s.ID] = s
	return nil
}

func (r *fakeSessionRepo) List(context.Context, model.SessionStatus, *model.Pagination) ([]*model.AssessmentSession, error) {
	return nil, nil
}

type fakeBolusRepo struct {
	records []*model.FluidBolusRecord
}

func (r *fakeBolusRepo) Append(_ context.Context, rec *model.FluidBolusRecord) error {
	cp := *rec
	r.records = append(r.records, &cp)
	return nil
}

func (r *fakeBolusRepo) ListBySession(_ context.Context, sessionID uuid.UUID) ([]*model.FluidBolusRecord, error) {
	var out []*model.FluidBolusRecord
	for _, rec := range r.records {
		if rec.SessionID == sessionID {
			cp := *rec
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeBolusRepo) UpdateOutcome(_ context.Context, id uuid.UUID, outcome model.BolusOutcome, items []model.ReassessmentItem) error {
	for _, rec := range r.records {
		if rec.ID == id {
			rec.Outcome = outcome
			rec.Reassessment = items
			return nil
		}
	}
	return sql.ErrNoRows
}

type fakeAccessRepo struct {
	access map[uuid.UUID]*model.VascularAccess
}

func (r *fakeAccessRepo) Get(_ context.Context, sessionID uuid.UUID) (*model.VascularAccess, error) {
	a, ok := r.access[sessionID]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAccessRepo) Upsert(_ context.Context, a *model.VascularAccess) error {
	cp := *a
	r.access[a.SessionID] = &cp
	return nil
}

type fakeReferralRepo struct {
	referrals []*model.Referral
}

func (r *fakeReferralRepo) Create(_ context.Context, ref *model.Referral) error {
	cp := *ref
	r.referrals = append(r.referrals, &cp)
	return nil
}

func (r *fakeReferralRepo) Get(_ context.Context, id uuid.UUID) (*model.Referral, error) {
	for _, ref := range r.referrals {
		if ref.ID == id {
			cp := *ref
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *fakeReferralRepo) ListBySession(_ context.Context, sessionID uuid.UUID) ([]*model.Referral, error) {
	var out []*model.Referral
	for _, ref := range r.referrals {
		if ref.SessionID == sessionID {
			cp := *ref
			out = append(out, &cp)
		}
	}
	return out, nil
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

func (r *fakeOutboxRepo) eventTypes() []string {
	var types []string
	for _, e := range r.events {
		types = append(types, e.EventType)
	}
	return types
}

type recordingSink struct {
	alerts []alert.Alert
}

func (s *recordingSink) Fire(_ context.Context, a alert.Alert) {
	s.alerts = append(s.alerts, a)
}

var (
	testMetricsOnce sync.Once
	testMetrics     *metrics.Metrics
)

type fixture struct {
	svc     *Service
	session *model.AssessmentSession
	boluses *fakeBolusRepo
	access  *fakeAccessRepo
	outbox  *fakeOutboxRepo
	sink    *recordingSink
}

func newFixture(t *testing.T, weightKg float64) *fixture {
	t.Helper()
	testMetricsOnce.Do(func() {
		testMetrics = metrics.NewMetrics("test", "resuscitation")
	})

	sessions := &fakeSessionRepo{sessions: map[uuid.UUID]*model.AssessmentSession{}}
	boluses := &fakeBolusRepo{}
	access := &fakeAccessRepo{access: map[uuid.UUID]*model.VascularAccess{}}
	referrals := &fakeReferralRepo{}
	outbox := &fakeOutboxRepo{}
	sink := &recordingSink{}
	log := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})

	session := &model.AssessmentSession{
		PatientRef: "bed-2",
		AgeYears:   4,
		WeightKg:   weightKg,
		Status:     model.SessionStatusActive,
	}
	session.ID = uuid.New()
	require.NoError(t, sessions.Create(context.Background(), session))

	return &fixture{
		svc:     NewService(sessions, boluses, access, referrals, outbox, sink, log, testMetrics),
		session: session,
		boluses: boluses,
		access:  access,
		outbox:  outbox,
		sink:    sink,
	}
}

func TestAdministerBolusStandard(t *testing.T) {
	f := newFixture(t, 20)
	ctx := context.Background()

	result, err := f.svc.AdministerBolus(ctx, f.session.ID, model.BolusStandard)
	require.NoError(t, err)
	assert.Equal(t, 200, result.Record.VolumeML)
	assert.Equal(t, 1, result.Record.BolusNumber)
	assert.Equal(t, 10.0, result.TotalMLKg)
	assert.Equal(t, fluids.RecommendReassess, result.Recommendation)
}

func TestAdministerBolusAccumulates(t *testing.T) {
	f := newFixture(t, 20)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		result, err := f.svc.AdministerBolus(ctx, f.session.ID, model.BolusStandard)
		require.NoError(t, err)
		assert.Equal(t, i, result.Record.BolusNumber)
		assert.Equal(t, float64(i*10), result.TotalMLKg)
	}

	result, err := f.svc.AdministerBolus(ctx, f.session.ID, model.BolusStandard)
	require.NoError(t, err)
	assert.Equal(t, 40.0, result.TotalMLKg)
	assert.Equal(t, fluids.RecommendConsiderInotropes, result.Recommendation)
}

func TestAdministerBolusHardStop(t *testing.T) {
	f := newFixture(t, 20)
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		_, err := f.svc.AdministerBolus(ctx, f.session.ID, model.BolusStandard)
		require.NoError(t, err)
	}

	// 60 mL/kg given; the standard protocol refuses a seventh bolus.
	_, err := f.svc.AdministerBolus(ctx, f.session.ID, model.BolusStandard)
	assert.Error(t, err)
}

func TestAdministerBolusCardiogenicCap(t *testing.T) {
	f := newFixture(t, 20)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		result, err := f.svc.AdministerBolus(ctx, f.session.ID, model.BolusCardiogenic)
		require.NoError(t, err)
		assert.Equal(t, 100, result.Record.VolumeML)
	}

	// 20 mL/kg given; the cardiogenic protocol caps here.
	_, err := f.svc.AdministerBolus(ctx, f.session.ID, model.BolusCardiogenic)
	assert.Error(t, err)
}

func TestRecordReassessmentOverload(t *testing.T) {
	f := newFixture(t, 20)
	ctx := context.Background()

	result, err := f.svc.AdministerBolus(ctx, f.session.ID, model.BolusStandard)
	require.NoError(t, err)

	reassess, err := f.svc.RecordReassessment(ctx, f.session.ID, result.Record.ID, []model.ReassessmentItem{
		{Parameter: "Hepatomegaly", Finding: "liver edge 3 cm below costal margin", OverloadSign: true},
	}, model.OutcomeNoChange)
	require.NoError(t, err)
	assert.True(t, reassess.Overloaded)
	assert.Equal(t, fluids.RecommendStopFluids, reassess.Recommendation)
	assert.Len(t, f.sink.alerts, 1)
	assert.Contains(t, f.outbox.eventTypes(), model.EventOverloadDetected)

	records, err := f.boluses.ListBySession(ctx, f.session.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeOverloaded, records[0].Outcome)
	require.Len(t, records[0].Reassessment, 1)
	assert.Equal(t, "Hepatomegaly", records[0].Reassessment[0].Parameter)
	assert.True(t, records[0].Reassessment[0].OverloadSign)
}

func TestOverloadRefusesFurtherBoluses(t *testing.T) {
	f := newFixture(t, 20)
	ctx := context.Background()

	result, err := f.svc.AdministerBolus(ctx, f.session.ID, model.BolusStandard)
	require.NoError(t, err)

	_, err = f.svc.RecordReassessment(ctx, f.session.ID, result.Record.ID, []model.ReassessmentItem{
		{Parameter: "Crackles", Finding: "new bibasal crackles", OverloadSign: true},
	}, model.OutcomeNoChange)
	require.NoError(t, err)

	// Only 10 mL/kg given, but a recorded overload ends fluid therapy.
	_, err = f.svc.AdministerBolus(ctx, f.session.ID, model.BolusStandard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overload")
}

func TestRecordReassessmentImproved(t *testing.T) {
	f := newFixture(t, 20)
	ctx := context.Background()

	result, err := f.svc.AdministerBolus(ctx, f.session.ID, model.BolusStandard)
	require.NoError(t, err)

	reassess, err := f.svc.RecordReassessment(ctx, f.session.ID, result.Record.ID, []model.ReassessmentItem{
		{Parameter: "capillary refill", Finding: "under 2 seconds"},
	}, model.OutcomeImproved)
	require.NoError(t, err)
	assert.False(t, reassess.Overloaded)
	assert.Empty(t, f.sink.alerts)
}

func TestReassessmentUsesLatestTotals(t *testing.T) {
	f := newFixture(t, 20)
	ctx := context.Background()

	first, err := f.svc.AdministerBolus(ctx, f.session.ID, model.BolusStandard)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err = f.svc.AdministerBolus(ctx, f.session.ID, model.BolusStandard)
		require.NoError(t, err)
	}

	// Reassessing an earlier bolus still reports guidance for the full
	// volume given so far.
	reassess, err := f.svc.RecordReassessment(ctx, f.session.ID, first.Record.ID, []model.ReassessmentItem{
		{Parameter: "capillary refill", Finding: "3 seconds"},
	}, model.OutcomeNoChange)
	require.NoError(t, err)
	assert.Equal(t, 40.0, reassess.TotalMLKg)
	assert.Equal(t, fluids.RecommendConsiderInotropes, reassess.Recommendation)
}

func TestRecordIVAttemptsEscalateAtTwo(t *testing.T) {
	f := newFixture(t, 20)
	ctx := context.Background()

	status, err := f.svc.RecordIVAttempt(ctx, f.session.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, status.FailedAttempts)
	assert.False(t, status.EscalateToIO)

	status, err = f.svc.RecordIVAttempt(ctx, f.session.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, status.FailedAttempts)
	assert.True(t, status.EscalateToIO)
	assert.Contains(t, f.outbox.eventTypes(), model.EventIOEscalation)
}

func TestCheckAccessEscalatesOnElapsedTime(t *testing.T) {
	f := newFixture(t, 20)
	ctx := context.Background()

	started := time.Now().Add(-2 * time.Minute)
	require.NoError(t, f.access.Upsert(ctx, &model.VascularAccess{
		SessionID:      f.session.ID,
		FailedAttempts: 1,
		StartedAt:      &started,
	}))

	status, err := f.svc.CheckAccess(ctx, f.session.ID)
	require.NoError(t, err)
	assert.True(t, status.EscalateToIO)
	assert.True(t, status.IOEscalated)
	assert.Contains(t, f.outbox.eventTypes(), model.EventIOEscalation)
}

func TestCheckAccessNoHistory(t *testing.T) {
	f := newFixture(t, 20)

	status, err := f.svc.CheckAccess(context.Background(), f.session.ID)
	require.NoError(t, err)
	assert.False(t, status.EscalateToIO)
	assert.Zero(t, status.FailedAttempts)
}

func TestCreateReferralAssemblesSBAR(t *testing.T) {
	f := newFixture(t, 20)
	ctx := context.Background()

	shockType := model.ShockSeptic
	f.session.IdentifiedType = &shockType
	require.NoError(t, f.svc.sessions.Update(ctx, f.session))

	referral, err := f.svc.CreateReferral(ctx, &model.Referral{
		SessionID:       f.session.ID,
		Reason:          "refractory shock after 40 mL/kg",
		CallbackContact: "ED consultant, ext 4410",
	})
	require.NoError(t, err)
	assert.Equal(t, "bed-2", referral.PatientRef)
	assert.Equal(t, 20.0, referral.WeightKg)
	assert.Equal(t, "septic shock", referral.WorkingDiagnosis)
	assert.Contains(t, f.outbox.eventTypes(), model.EventReferralRequested)

	stored, err := f.svc.sessions.Get(ctx, f.session.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SessionStatusReferred, stored.Status)
}
