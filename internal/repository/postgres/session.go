package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/peds-protocol-api/internal/model"
	"github.com/jwalitptl/peds-protocol-api/internal/repository"
)

type sessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepository(db *sqlx.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *model.AssessmentSession) error {
	if err := session.MarshalState(); err != nil {
		return fmt.Errorf("failed to marshal session state: %w", err)
	}

	query := `
		INSERT INTO assessment_sessions (
			id, patient_ref, age_years, weight_kg, status, state, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	session.CreatedAt = time.Now()
	session.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		session.ID,
		session.PatientRef,
		session.AgeYears,
		session.WeightKg,
		session.Status,
		session.StateJSON,
		session.CreatedAt,
		session.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *sessionRepository) Get(ctx context.Context, id uuid.UUID) (*model.AssessmentSession, error) {
	query := `SELECT * FROM assessment_sessions WHERE id = $1 AND deleted_at IS NULL`
	var session model.AssessmentSession
	err := r.db.GetContext(ctx, &session, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session %s not found: %w", id, err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if err := session.UnmarshalState(); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session state: %w", err)
	}
	return &session, nil
}

func (r *sessionRepository) Update(ctx context.Context, session *model.AssessmentSession) error {
	if err := session.MarshalState(); err != nil {
		return fmt.Errorf("failed to marshal session state: %w", err)
	}

	query := `
		UPDATE assessment_sessions
		SET status = $1, identified_type = $2, state = $3, completed_at = $4, updated_at = $5
		WHERE id = $6 AND deleted_at IS NULL
	`
	_, err := r.db.ExecContext(ctx, query,
		session.Status,
		session.IdentifiedType,
		session.StateJSON,
		session.CompletedAt,
		time.Now(),
		session.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	return nil
}

func (r *sessionRepository) List(ctx context.Context, status model.SessionStatus, p *model.Pagination) ([]*model.AssessmentSession, error) {
	limit := 20
	offset := 0
	if p != nil && p.PageSize > 0 {
		limit = p.PageSize
		if p.Page > 1 {
			offset = (p.Page - 1) * p.PageSize
		}
	}

	query := `
		SELECT * FROM assessment_sessions
		WHERE status = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	var sessions []*model.AssessmentSession
	if err := r.db.SelectContext(ctx, &sessions, query, status, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	for _, s := range sessions {
		if err := s.UnmarshalState(); err != nil {
			return nil, fmt.Errorf("failed to unmarshal session state: %w", err)
		}
	}
	return sessions, nil
}
