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

type escalationRepository struct {
	db *sqlx.DB
}

func NewEscalationRepository(db *sqlx.DB) repository.EscalationRepository {
	return &escalationRepository{db: db}
}

func (r *escalationRepository) Get(ctx context.Context, sessionID uuid.UUID, condition model.Condition) (*model.EscalationState, error) {
	query := `
		SELECT session_id, condition, line, updated_at
		FROM escalation_states
		WHERE session_id = $1 AND condition = $2
	`
	var state model.EscalationState
	err := r.db.GetContext(ctx, &state, query, sessionID, condition)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get escalation state: %w", err)
	}
	return &state, nil
}

func (r *escalationRepository) Upsert(ctx context.Context, state *model.EscalationState) error {
	state.UpdatedAt = time.Now()
	query := `
		INSERT INTO escalation_states (session_id, condition, line, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (session_id, condition) DO UPDATE SET
			line = EXCLUDED.line,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.ExecContext(ctx, query, state.SessionID, state.Condition, state.Line, state.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert escalation state: %w", err)
	}
	return nil
}
