package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/domain"
	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/logger"
	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/repository"
)

type siteRepository struct {
	db *sql.DB
}

func NewSiteRepository(db *sql.DB) repository.SiteRepository {
	return &siteRepository{db: db}
}

func (r *siteRepository) Create(ctx context.Context, s *domain.Site) error {
	query := `INSERT INTO site_info (site_id, equipment_id, location, contact_details)
	          VALUES ($1, $2, $3, $4) RETURNING id, created_on`
	logger.DatabaseCall("INSERT", "site_info", "siteID", s.SiteID)
	err := r.db.QueryRowContext(ctx, query, s.SiteID, s.EquipmentID, s.Location, s.ContactDetails).Scan(&s.ID, &s.CreatedOn)
	logger.DatabaseResult("INSERT", 1, err, "siteID", s.SiteID)
	return err
}

func (r *siteRepository) List(ctx context.Context, siteID *int32) ([]domain.Site, error) {
	query := `SELECT id, site_id, equipment_id, location, contact_details, created_on FROM site_info`
	var args []any
	if siteID != nil {
		query += ` WHERE site_id = $1`
		args = append(args, *siteID)
	}
	query += ` ORDER BY site_id, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sites []domain.Site
	for rows.Next() {
		var s domain.Site
		if err := rows.Scan(&s.ID, &s.SiteID, &s.EquipmentID, &s.Location, &s.ContactDetails, &s.CreatedOn); err != nil {
			return nil, err
		}
		sites = append(sites, s)
	}
	return sites, rows.Err()
}

func (r *siteRepository) ContactFor(ctx context.Context, siteID int32) (string, error) {
	query := `SELECT contact_details FROM site_info WHERE site_id = $1 AND contact_details <> '' ORDER BY id LIMIT 1`
	var contact string
	err := r.db.QueryRowContext(ctx, query, siteID).Scan(&contact)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return contact, err
}
