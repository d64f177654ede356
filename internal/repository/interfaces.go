package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/peds-protocol-api/internal/model"
)

// All repository interfaces in one file
type (
	// SessionRepository persists assessment sessions and their state snapshots.
	SessionRepository interface {
		Create(ctx context.Context, session *model.AssessmentSession) error
		Get(ctx context.Context, id uuid.UUID) (*model.AssessmentSession, error)
		Update(ctx context.Context, session *model.AssessmentSession) error
		List(ctx context.Context, status model.SessionStatus, p *model.Pagination) ([]*model.AssessmentSession, error)
	}

	// BolusRepository is the append-only fluid bolus log.
	BolusRepository interface {
		Append(ctx context.Context, record *model.FluidBolusRecord) error
		ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*model.FluidBolusRecord, error)
		UpdateOutcome(ctx context.Context, id uuid.UUID, outcome model.BolusOutcome, items []model.ReassessmentItem) error
	}

	// AccessRepository tracks vascular access attempts per session.
	AccessRepository interface {
		Get(ctx context.Context, sessionID uuid.UUID) (*model.VascularAccess, error)
		Upsert(ctx context.Context, access *model.VascularAccess) error
	}

	// EscalationRepository tracks the current therapy line per session and condition.
	EscalationRepository interface {
		Get(ctx context.Context, sessionID uuid.UUID, condition model.Condition) (*model.EscalationState, error)
		Upsert(ctx context.Context, state *model.EscalationState) error
	}

	// ReferralRepository persists SBAR referral packets.
	ReferralRepository interface {
		Create(ctx context.Context, referral *model.Referral) error
		Get(ctx context.Context, id uuid.UUID) (*model.Referral, error)
		ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*model.Referral, error)
	}

	// OutboxRepository stores domain events for asynchronous delivery.
	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		CreateTx(ctx context.Context, tx *sql.Tx, event *model.OutboxEvent) error
		GetPendingEventsWithLock(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uuid.UUID, status string, errorMessage *string, retryAt *time.Time) error
	}
)
