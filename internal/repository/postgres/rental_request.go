package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/domain"
	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/logger"
	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/repository"
)

const requestColumns = `request_id, equipment_id, requester_site_id, owner_site_id, location, time_from, time_to,
	status, created_on, decided_on`

type rentalRequestRepository struct {
	db *sql.DB
}

func NewRentalRequestRepository(db *sql.DB) repository.RentalRequestRepository {
	return &rentalRequestRepository{db: db}
}

func scanRequest(row rowScanner) (*domain.RentalRequest, error) {
	var req domain.RentalRequest
	err := row.Scan(&req.RequestID, &req.EquipmentID, &req.RequesterSiteID, &req.OwnerSiteID, &req.Location,
		&req.TimeFrom, &req.TimeTo, &req.Status, &req.CreatedOn, &req.DecidedOn)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *rentalRequestRepository) Create(ctx context.Context, req *domain.RentalRequest) error {
	logger.EnterMethod("rentalRequestRepository.Create", "equipmentID", req.EquipmentID, "requesterSiteID", req.RequesterSiteID)

	query := `INSERT INTO rental_requests (equipment_id, requester_site_id, owner_site_id, location, time_from, time_to, status)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING request_id, created_on`
	logger.DatabaseCall("INSERT", "rental_requests", "equipmentID", req.EquipmentID)
	err := r.db.QueryRowContext(ctx, query, req.EquipmentID, req.RequesterSiteID, req.OwnerSiteID, req.Location,
		req.TimeFrom, req.TimeTo, req.Status).Scan(&req.RequestID, &req.CreatedOn)
	logger.DatabaseResult("INSERT", 1, err, "equipmentID", req.EquipmentID)
	if err != nil {
		logger.ExitMethodWithError("rentalRequestRepository.Create", err)
		return err
	}

	logger.ExitMethod("rentalRequestRepository.Create", "requestID", req.RequestID)
	return nil
}

func (r *rentalRequestRepository) GetByID(ctx context.Context, requestID int32) (*domain.RentalRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM rental_requests WHERE request_id = $1`
	req, err := scanRequest(r.db.QueryRowContext(ctx, query, requestID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("rental request", strconv.Itoa(int(requestID)))
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *rentalRequestRepository) list(ctx context.Context, query string, args ...any) ([]domain.RentalRequest, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []domain.RentalRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}

func (r *rentalRequestRepository) ListPendingByOwner(ctx context.Context, ownerSiteID int32) ([]domain.RentalRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM rental_requests
	          WHERE owner_site_id = $1 AND status = 'Pending' ORDER BY created_on DESC, request_id DESC`
	return r.list(ctx, query, ownerSiteID)
}

func (r *rentalRequestRepository) ListByRequester(ctx context.Context, requesterSiteID int32) ([]domain.RentalRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM rental_requests
	          WHERE requester_site_id = $1 ORDER BY created_on DESC, request_id DESC`
	return r.list(ctx, query, requesterSiteID)
}

func (r *rentalRequestRepository) Decide(ctx context.Context, requestID int32, status domain.RequestStatus) (*domain.RentalRequest, error) {
	logger.EnterMethod("rentalRequestRepository.Decide", "requestID", requestID, "status", status)
	id := strconv.Itoa(int(requestID))

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer rollback(tx)

	query := `UPDATE rental_requests SET status = $1, decided_on = NOW()
	          WHERE request_id = $2 AND status = 'Pending' RETURNING ` + requestColumns
	req, err := scanRequest(tx.QueryRowContext(ctx, query, status, requestID))
	if errors.Is(err, sql.ErrNoRows) {
		var current domain.RequestStatus
		err = tx.QueryRowContext(ctx, `SELECT status FROM rental_requests WHERE request_id = $1`, requestID).Scan(&current)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("rental request", id)
		}
		if err != nil {
			return nil, err
		}
		return nil, domain.NewConflictError("rental request", id, fmt.Sprintf("already %s", current))
	}
	if err != nil {
		logger.ExitMethodWithError("rentalRequestRepository.Decide", err, "requestID", requestID)
		return nil, err
	}

	if status == domain.RequestStatusApproved {
		res, err := tx.ExecContext(ctx, `UPDATE vendor SET shared_by_site_id = $1, ready_to_share = FALSE WHERE equipment_id = $2`,
			req.RequesterSiteID, req.EquipmentID)
		if err != nil {
			return nil, fmt.Errorf("stamp sharer on %s: %w", req.EquipmentID, err)
		}
		n, _ := res.RowsAffected()
		logger.DatabaseResult("UPDATE", n, nil, "table", "vendor", "equipmentID", req.EquipmentID)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	logger.ExitMethod("rentalRequestRepository.Decide", "requestID", requestID, "status", status)
	return req, nil
}
