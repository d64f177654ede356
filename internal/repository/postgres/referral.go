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

type referralRepository struct {
	db *sqlx.DB
}

func NewReferralRepository(db *sqlx.DB) repository.ReferralRepository {
	return &referralRepository{db: db}
}

func (r *referralRepository) Create(ctx context.Context, referral *model.Referral) error {
	if err := referral.MarshalDetails(); err != nil {
		return fmt.Errorf("failed to marshal referral details: %w", err)
	}

	query := `
		INSERT INTO referrals (
			id, session_id, patient_ref, age_years, weight_kg, working_diagnosis,
			reason, callback_contact, details, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	referral.CreatedAt = time.Now()
	referral.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		referral.ID,
		referral.SessionID,
		referral.PatientRef,
		referral.AgeYears,
		referral.WeightKg,
		referral.WorkingDiagnosis,
		referral.Reason,
		referral.CallbackContact,
		referral.DetailsJSON,
		referral.CreatedAt,
		referral.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create referral: %w", err)
	}
	return nil
}

func (r *referralRepository) Get(ctx context.Context, id uuid.UUID) (*model.Referral, error) {
	query := `SELECT * FROM referrals WHERE id = $1 AND deleted_at IS NULL`
	var referral model.Referral
	err := r.db.GetContext(ctx, &referral, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("referral %s not found: %w", id, err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get referral: %w", err)
	}
	if err := referral.UnmarshalDetails(); err != nil {
		return nil, fmt.Errorf("failed to unmarshal referral details: %w", err)
	}
	return &referral, nil
}

func (r *referralRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*model.Referral, error) {
	query := `
		SELECT * FROM referrals
		WHERE session_id = $1 AND deleted_at IS NULL
		ORDER BY created_at ASC
	`
	var referrals []*model.Referral
	if err := r.db.SelectContext(ctx, &referrals, query, sessionID); err != nil {
		return nil, fmt.Errorf("failed to list referrals: %w", err)
	}
	for _, ref := range referrals {
		if err := ref.UnmarshalDetails(); err != nil {
			return nil, fmt.Errorf("failed to unmarshal referral details: %w", err)
		}
	}
	return referrals, nil
}
