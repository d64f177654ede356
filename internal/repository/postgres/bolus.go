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

type bolusRepository struct {
	db *sqlx.DB
}

func NewBolusRepository(db *sqlx.DB) repository.BolusRepository {
	return &bolusRepository{db: db}
}

func (r *bolusRepository) Append(ctx context.Context, record *model.FluidBolusRecord) error {
	if err := record.MarshalReassessment(); err != nil {
		return fmt.Errorf("failed to marshal reassessment: %w", err)
	}

	query := `
		INSERT INTO fluid_boluses (
			id, session_id, bolus_number, bolus_type, volume_ml_kg, volume_ml,
			total_given_ml_kg, time_given, outcome, reassessment
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.SessionID,
		record.BolusNumber,
		record.Type,
		record.VolumeMLKg,
		record.VolumeML,
		record.TotalGivenMLKg,
		record.TimeGiven,
		record.Outcome,
		record.ReassessJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to append bolus record: %w", err)
	}
	return nil
}

func (r *bolusRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*model.FluidBolusRecord, error) {
	query := `
		SELECT * FROM fluid_boluses
		WHERE session_id = $1
		ORDER BY bolus_number ASC
	`
	var records []*model.FluidBolusRecord
	if err := r.db.SelectContext(ctx, &records, query, sessionID); err != nil {
		return nil, fmt.Errorf("failed to list bolus records: %w", err)
	}
	for _, rec := range records {
		if err := rec.UnmarshalReassessment(); err != nil {
			return nil, fmt.Errorf("failed to unmarshal reassessment: %w", err)
		}
	}
	return records, nil
}

func (r *bolusRepository) UpdateOutcome(ctx context.Context, id uuid.UUID, outcome model.BolusOutcome, items []model.ReassessmentItem) error {
	record := model.FluidBolusRecord{Reassessment: items}
	if err := record.MarshalReassessment(); err != nil {
		return fmt.Errorf("failed to marshal reassessment: %w", err)
	}

	query := `UPDATE fluid_boluses SET outcome = $1, reassessment = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, outcome, record.ReassessJSON, id)
	if err != nil {
		return fmt.Errorf("failed to update bolus outcome: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("bolus record %s not found", id)
	}
	return nil
}

type accessRepository struct {
	db *sqlx.DB
}

func NewAccessRepository(db *sqlx.DB) repository.AccessRepository {
	return &accessRepository{db: db}
}

func (r *accessRepository) Get(ctx context.Context, sessionID uuid.UUID) (*model.VascularAccess, error) {
	query := `SELECT session_id, failed_attempts, started_at, io_escalated FROM vascular_access WHERE session_id = $1`
	var access model.VascularAccess
	err := r.db.GetContext(ctx, &access, query, sessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vascular access: %w", err)
	}
	return &access, nil
}

func (r *accessRepository) Upsert(ctx context.Context, access *model.VascularAccess) error {
	query := `
		INSERT INTO vascular_access (session_id, failed_attempts, started_at, io_escalated, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (session_id) DO UPDATE SET
			failed_attempts = EXCLUDED.failed_attempts,
			started_at = EXCLUDED.started_at,
			io_escalated = EXCLUDED.io_escalated,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		access.SessionID,
		access.FailedAttempts,
		access.StartedAt,
		access.IOEscalated,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert vascular access: %w", err)
	}
	return nil
}
