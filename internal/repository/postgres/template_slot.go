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

func (r *templateSlotRepository) Create(ctx context.Context, slot *model.WorkingTemplateSlot) error {
	query := `
		INSERT INTO working_template_slots (
			id, provider_id, weekday, start_time, end_time, note,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	slot.ID = uuid.New()
	slot.CreatedAt = time.Now()
	slot.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		slot.ID,
		slot.ProviderID,
		slot.Weekday,
		slot.StartTime,
		slot.EndTime,
		slot.Note,
		slot.CreatedAt,
		slot.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create template slot: %w", err)
	}
	return nil
}

func (r *templateSlotRepository) Get(ctx context.Context, id uuid.UUID) (*model.WorkingTemplateSlot, error) {
	query := `
		SELECT id, provider_id, weekday, start_time, end_time, note,
			   created_at, updated_at
		FROM working_template_slots
		WHERE id = $1
	`
	var slot model.WorkingTemplateSlot
	err := r.db.GetContext(ctx, &slot, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("template slot", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get template slot: %w", err)
	}
	return &slot, nil
}

func (r *templateSlotRepository) Update(ctx context.Context, slot *model.WorkingTemplateSlot) error {
	query := `
		UPDATE working_template_slots
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
		return fmt.Errorf("failed to update template slot: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("template slot", nil)
	}

	return nil
}

func (r *templateSlotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM working_template_slots
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete template slot: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("template slot", nil)
	}

	return nil
}

func (r *templateSlotRepository) ListForProvider(ctx context.Context, providerID uuid.UUID) ([]*model.WorkingTemplateSlot, error) {
	query := `
		SELECT id, provider_id, weekday, start_time, end_time, note,
			   created_at, updated_at
		FROM working_template_slots
		WHERE provider_id = $1
		ORDER BY weekday ASC, start_time ASC
	`
	var slots []*model.WorkingTemplateSlot
	err := r.db.SelectContext(ctx, &slots, query, providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list template slots: %w", err)
	}
	return slots, nil
}

func (r *templateSlotRepository) ExistsForWeekday(ctx context.Context, providerID uuid.UUID, weekday time.Weekday, excludeID *uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM working_template_slots
			WHERE provider_id = $1
			AND weekday = $2
	`
	args := []interface{}{providerID, weekday}

	if excludeID != nil {
		query += " AND id != $3"
		args = append(args, *excludeID)
	}

	query += ")"

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to check template weekday: %w", err)
	}
	return exists, nil
}
