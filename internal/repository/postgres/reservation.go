package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/scheduler-api/internal/model"
)

// Reservations are owned by the booking subsystem; this repository is a
// read-only view over its table.

func (r *reservationRepository) ListForRange(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]*model.Reservation, error) {
	query := `
		SELECT id, provider_id, client_name, service_id, service_name,
			   price, duration_min, start_time, status, payment_status
		FROM reservations
		WHERE provider_id = $1
		AND start_time >= $2
		AND start_time < $3
		ORDER BY start_time ASC
	`
	var reservations []*model.Reservation
	err := r.db.SelectContext(ctx, &reservations, query, providerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return reservations, nil
}
