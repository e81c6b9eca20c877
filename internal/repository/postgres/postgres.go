package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/scheduler-api/internal/repository"
)

type templateSlotRepository struct {
	db *sqlx.DB
}

type overrideSlotRepository struct {
	db *sqlx.DB
}

type blockedSlotRepository struct {
	db *sqlx.DB
}

type reservationRepository struct {
	db *sqlx.DB
}

type providerRepository struct {
	db *sqlx.DB
}

func NewTemplateSlotRepository(db *sqlx.DB) repository.TemplateSlotRepository {
	return &templateSlotRepository{db: db}
}

func NewOverrideSlotRepository(db *sqlx.DB) repository.OverrideSlotRepository {
	return &overrideSlotRepository{db: db}
}

func NewBlockedSlotRepository(db *sqlx.DB) repository.BlockedSlotRepository {
	return &blockedSlotRepository{db: db}
}

func NewReservationRepository(db *sqlx.DB) repository.ReservationRepository {
	return &reservationRepository{db: db}
}

func NewProviderRepository(db *sqlx.DB) repository.ProviderRepository {
	return &providerRepository{db: db}
}
