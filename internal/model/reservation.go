package model

import (
	"time"

	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCompleted ReservationStatus = "completed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusHeld          PaymentStatus = "held"
	PaymentStatusCaptured      PaymentStatus = "captured"
	PaymentStatusPendingRefund PaymentStatus = "pending_refund"
	PaymentStatusRefunded      PaymentStatus = "refunded"
)

// Reservation is the booking subsystem's record as this engine sees it:
// read-only, and only the fields needed to occupy calendar time.
type Reservation struct {
	ID            uuid.UUID         `db:"id" json:"id"`
	ProviderID    uuid.UUID         `db:"provider_id" json:"provider_id"`
	ClientName    string            `db:"client_name" json:"client_name"`
	ServiceID     uuid.UUID         `db:"service_id" json:"service_id"`
	ServiceName   string            `db:"service_name" json:"service_name"`
	Price         int64             `db:"price" json:"price"`
	DurationMin   int               `db:"duration_min" json:"duration_min"`
	StartTime     time.Time         `db:"start_time" json:"start_time"`
	Status        ReservationStatus `db:"status" json:"status"`
	PaymentStatus PaymentStatus     `db:"payment_status" json:"payment_status"`
}

// OccupiesCalendar reports whether the reservation should appear on the
// provider's calendar. A reservation being unwound through a refund must
// not hold its time window.
func (r *Reservation) OccupiesCalendar() bool {
	switch r.Status {
	case ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusCompleted:
		return r.PaymentStatus != PaymentStatusPendingRefund
	}
	return false
}
