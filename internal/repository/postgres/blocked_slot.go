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

func (r *blockedSlotRepository) Create(ctx context.Context, slot *model.BlockedSlot) error {
	query := `
		INSERT INTO blocked_slots (
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
		return fmt.Errorf("failed to create blocked slot: %w", err)
	}
	return nil
}

func (r *blockedSlotRepository) Get(ctx context.Context, id uuid.UUID) (*model.BlockedSlot, error) {
	query := `
		SELECT id, provider_id, start_time, end_time, note,
			   created_at, updated_at
		FROM blocked_slots
		WHERE id = $1
	`
	var slot model.BlockedSlot
	err := r.db.GetContext(ctx, &slot, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("blocked slot", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get blocked slot: %w", err)
	}
	return &slot, nil
}

func (r *blockedSlotRepository) Update(ctx context.Context, slot *model.BlockedSlot) error {
	query := `
		UPDATE blocked_slots
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
		return fmt.Errorf("failed to update blocked slot: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("blocked slot", nil)
	}

	return nil
}

func (r *blockedSlotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM blocked_slots
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete blocked slot: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("blocked slot", nil)
	}

	return nil
}

func (r *blockedSlotRepository) ListForRange(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]*model.BlockedSlot, error) {
	query := `
		SELECT id, provider_id, start_time, end_time, note,
			   created_at, updated_at
		FROM blocked_slots
		WHERE provider_id = $1
		AND start_time >= $2
		AND start_time < $3
		ORDER BY start_time ASC
	`
	var slots []*model.BlockedSlot
	err := r.db.SelectContext(ctx, &slots, query, providerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list blocked slots: %w", err)
	}
	return slots, nil
}

func (r *blockedSlotRepository) ExistsOverlapping(ctx context.Context, providerID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM blocked_slots
			WHERE provider_id = $1
			AND start_time < $3
			AND end_time > $2
	`
	args := []interface{}{providerID, start, end}

	if excludeID != nil {
		query += " AND id != $4"
		args = append(args, *excludeID)
	}

	query += ")"

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to check overlapping blocks: %w", err)
	}
	return exists, nil
}
