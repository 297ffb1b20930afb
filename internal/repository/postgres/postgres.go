package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/repository"

	"github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.EquipmentRepository
	repository.SiteRepository
	repository.RentalRequestRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                      db,
		EquipmentRepository:     NewEquipmentRepository(db),
		SiteRepository:          NewSiteRepository(db),
		RentalRequestRepository: NewRentalRequestRepository(db),
	}
}

// Ping verifies the connection within ctx.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func rollback(tx *sql.Tx) {
	_ = tx.Rollback()
}
