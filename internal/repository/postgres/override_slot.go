package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/scheduler-api/internal/model"
	apperrors "github.com/jwalitptl/scheduler-api/pkg/errors"
)

func (r *overrideSlotRepository) Create(ctx context.Context, slot *model.OverrideSlot) error {
	query := `
		INSERT INTO override_slots (
			id, provider_id, start_time, end_time, note,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	slot.ID = uuid.New()
	slot.CreatedAt = time.Now()
	slot.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		slot.ID,
		slot.ProviderID,
		slot.StartTime,
		slot.EndTime,
		slot.Note,
		slot.CreatedAt,
		slot.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create override slot: %w", err)
	}
	return nil
}

func (r *overrideSlotRepository) Get(ctx context.Context, id uuid.UUID) (*model.OverrideSlot, error) {
	query := `
		SELECT id, provider_id, start_time, end_time, note,
			   created_at, updated_at
		FROM override_slots
		WHERE id = $1
	`
	var slot model.OverrideSlot
	err := r.db.GetContext(ctx, &slot, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("override slot", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get override slot: %w", err)
	}
	return &slot, nil
}

func (r *overrideSlotRepository) Update(ctx context.Context, slot *model.OverrideSlot) error {
	query := `
		UPDATE override_slots
		SET start_time = $1, end_time = $2, note = $3, updated_at = $4
		WHERE id = $5
	`
	slot.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		slot.StartTime,
		slot.EndTime,
		slot.Note,
		slot.UpdatedAt,
		slot.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update override slot: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("override slot", nil)
	}

	return nil
}

func (r *overrideSlotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM override_slots
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete override slot: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("override slot", nil)
	}

	return nil
}

func (r *overrideSlotRepository) ListForRange(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]*model.OverrideSlot, error) {
	query := `
		SELECT id, provider_id, start_time, end_time, note,
			   created_at, updated_at
		FROM override_slots
		WHERE provider_id = $1
		AND start_time >= $2
		AND start_time < $3
		ORDER BY start_time ASC
	`
	var slots []*model.OverrideSlot
	err := r.db.SelectContext(ctx, &slots, query, providerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list override slots: %w", err)
	}
	return slots, nil
}

func (r *overrideSlotRepository) ExistsForRange(ctx context.Context, providerID uuid.UUID, from, to time.Time, excludeID *uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM override_slots
			WHERE provider_id = $1
			AND start_time >= $2
			AND start_time < $3
	`
	args := []interface{}{providerID, from, to}

	if excludeID != nil {
		query += " AND id != $4"
		args = append(args, *excludeID)
	}

	query += ")"

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to check override day: %w", err)
	}
	return exists, nil
}
