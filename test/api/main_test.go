package api_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	assessmentHandler "github.com/jwalitptl/peds-protocol-api/internal/handler/assessment"
	escalationHandler "github.com/jwalitptl/peds-protocol-api/internal/handler/escalation"
	protocolHandler "github.com/jwalitptl/peds-protocol-api/internal/handler/protocol"
	resusHandler "github.com/jwalitptl/peds-protocol-api/internal/handler/resuscitation"
	"github.com/jwalitptl/peds-protocol-api/internal/middleware"
	"github.com/jwalitptl/peds-protocol-api/internal/model"
	"github.com/jwalitptl/peds-protocol-api/internal/router"
	assessmentService "github.com/jwalitptl/peds-protocol-api/internal/service/assessment"
	escalationService "github.com/jwalitptl/peds-protocol-api/internal/service/escalation"
	resusService "github.com/jwalitptl/peds-protocol-api/internal/service/resuscitation"
	"github.com/jwalitptl/peds-protocol-api/pkg/alert"
	"github.com/jwalitptl/peds-protocol-api/pkg/logger"
	"github.com/jwalitptl/peds-protocol-api/pkg/metrics"
)

var baseURL string

// APIResponse represents the API response structure
type APIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// TestResponse wraps the API response for testing
type TestResponse struct {
	StatusCode int
	Success    bool
	Message    string
	Data       map[string]interface{}
	RawData    string
}

func (r TestResponse) IsSuccess() bool {
	return r.Success
}

func (r TestResponse) GetString(key string) string {
	if r.Data == nil {
		return ""
	}
	if v, ok := r.Data[key].(string); ok {
		return v
	}
	return ""
}

type healthStub struct{}

func (healthStub) RegisterRoutes(*gin.RouterGroup) {}

func TestMain(m *testing.M) {
	// The whole API runs in-process on in-memory repositories, so the
	// suite needs no database, Redis or running server.
	log := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
	m2 := metrics.NewMetrics("test", "api")

	sessions := newMemSessionRepo()
	boluses := &memBolusRepo{}
	access := newMemAccessRepo()
	escalations := newMemEscalationRepo()
	referrals := &memReferralRepo{}
	outbox := &memOutboxRepo{}

	assessmentSvc := assessmentService.NewService(sessions, access, outbox, alert.NopSink{}, log, m2)
	resusSvc := resusService.NewService(sessions, boluses, access, referrals, outbox, alert.NopSink{}, log, m2)
	escalationSvc := escalationService.NewService(escalations, outbox, log, m2)

	r := router.NewRouter(
		assessmentHandler.NewHandler(assessmentSvc),
		resusHandler.NewHandler(resusSvc),
		escalationHandler.NewHandler(escalationSvc),
		protocolHandler.NewHandler(10*time.Minute),
		healthStub{},
		router.Config{
			RateLimit:  rate.Limit(0),
			CORSConfig: middleware.DefaultCORSConfig(),
		},
	)
	r.Setup()

	srv := httptest.NewServer(r.Engine())
	baseURL = srv.URL + "/api/v1"

	code := m.Run()

	srv.Close()
	os.Exit(code)
}

func makeRequest(method, path string, body interface{}) TestResponse {
	var reqBody io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+path, reqBody)
	if err != nil {
		return TestResponse{Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 5 * time.Second}
	response, err := client.Do(req)
	if err != nil {
		return TestResponse{Message: err.Error()}
	}
	defer response.Body.Close()

	respBody, err := io.ReadAll(response.Body)
	if err != nil {
		return TestResponse{StatusCode: response.StatusCode, Message: err.Error()}
	}

	var apiResp APIResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return TestResponse{
			StatusCode: response.StatusCode,
			Message:    fmt.Sprintf("failed to parse response: %s\nraw: %s", err.Error(), string(respBody)),
		}
	}

	testResp := TestResponse{
		StatusCode: response.StatusCode,
		Success:    apiResp.Success,
		RawData:    string(apiResp.Data),
	}
	if apiResp.Error != nil {
		testResp.Message = apiResp.Error.Message
	}

	if len(apiResp.Data) > 0 {
		var data map[string]interface{}
		if err := json.Unmarshal(apiResp.Data, &data); err == nil {
			testResp.Data = data
		}
	}

	return testResp
}

// In-memory repositories backing the in-process server.

type memSessionRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*model.AssessmentSession
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: map[uuid.UUID]*model.AssessmentSession{}}
}

func (r *memSessionRepo) Create(_ context.Context, s *model.AssessmentSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.sessions[s.ID] = &cp
	return nil
}

func (r *memSessionRepo) Get(_ context.Context, id uuid.UUID) (*model.AssessmentSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *s
	return &cp, nil
}

func (r *memSessionRepo) Update(_ context.Context, s *model.AssessmentSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.sessions[s.ID] = &cp
	return nil
}

func (r *memSessionRepo) List(_ context.Context, status model.SessionStatus, _ *model.Pagination) ([]*model.AssessmentSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.AssessmentSession
	for _, s := range r.sessions {
		if s.Status == status {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memBolusRepo struct {
	mu      sync.Mutex
	records []*model.FluidBolusRecord
}

func (r *memBolusRepo) Append(_ context.Context, rec *model.FluidBolusRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *rec
	r.records = append(r.records, &cp)
	return nil
}

func (r *memBolusRepo) ListBySession(_ context.Context, sessionID uuid.UUID) ([]*model.FluidBolusRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.FluidBolusRecord
	for _, rec := range r.records {
		if rec.SessionID == sessionID {
			cp := *rec
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memBolusRepo) UpdateOutcome(_ context.Context, id uuid.UUID, outcome model.BolusOutcome, items []model.ReassessmentItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.ID == id {
			rec.Outcome = outcome
			rec.Reassessment = items
			return nil
		}
	}
	return sql.ErrNoRows
}

type memAccessRepo struct {
	mu     sync.Mutex
	access map[uuid.UUID]*model.VascularAccess
}

func newMemAccessRepo() *memAccessRepo {
	return &memAccessRepo{access: map[uuid.UUID]*model.VascularAccess{}}
}

func (r *memAccessRepo) Get(_ context.Context, sessionID uuid.UUID) (*model.VascularAccess, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.access[sessionID]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *memAccessRepo) Upsert(_ context.Context, a *model.VascularAccess) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *a
	r.access[a.SessionID] = &cp
	return nil
}

type escalationKey struct {
	session   uuid.UUID
	condition model.Condition
}

type memEscalationRepo struct {
	mu     sync.Mutex
	states map[escalationKey]*model.EscalationState
}

func newMemEscalationRepo() *memEscalationRepo {
	return &memEscalationRepo{states: map[escalationKey]*model.EscalationState{}}
}

func (r *memEscalationRepo) Get(_ context.Context, sessionID uuid.UUID, condition model.Condition) (*model.EscalationState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.states[escalationKey{sessionID, condition}]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *memEscalationRepo) Upsert(_ context.Context, s *model.EscalationState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.states[escalationKey{s.SessionID, s.Condition}] = &cp
	return nil
}

type memReferralRepo struct {
	mu        sync.Mutex
	referrals []*model.Referral
}

func (r *memReferralRepo) Create(_ context.Context, ref *model.Referral) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *ref
	r.referrals = append(r.referrals, &cp)
	return nil
}

func (r *memReferralRepo) Get(_ context.Context, id uuid.UUID) (*model.Referral, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ref := range r.referrals {
		if ref.ID == id {
			cp := *ref
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *memReferralRepo) ListBySession(_ context.Context, sessionID uuid.UUID) ([]*model.Referral, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Referral
	for _, ref := range r.referrals {
		if ref.SessionID == sessionID {
			cp := *ref
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memOutboxRepo struct {
	mu     sync.Mutex
	events []*model.OutboxEvent
}

func (r *memOutboxRepo) Create(_ context.Context, e *model.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *memOutboxRepo) CreateTx(_ context.Context, _ *sql.Tx, e *model.OutboxEvent) error {
	return r.Create(context.Background(), e)
}

func (r *memOutboxRepo) GetPendingEventsWithLock(context.Context, int) ([]*model.OutboxEvent, error) {
	return nil, nil
}

func (r *memOutboxRepo) UpdateStatusTx(context.Context, *sql.Tx, uuid.UUID, string, *string, *time.Time) error {
	return nil
}
