package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/domain"
	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/logger"
	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/repository"
)

const equipmentColumns = `equipment_id, type, site_id, availability, COALESCE(rental_type, ''),
	to_char(check_out_date, 'YYYY-MM-DD'), to_char(check_in_date, 'YYYY-MM-DD'), operating_days, days_left,
	COALESCE(location, ''), engine_hour_day, idle_hour_day, fuel, ready_to_share, shared_by_site_id, created_on`

const rentUpdate = `UPDATE vendor SET site_id = $1, check_out_date = $2, check_in_date = $3, operating_days = $4,
	days_left = $5, location = $6, rental_type = $7, availability = 'Rented'
	WHERE equipment_id = $8 AND availability = 'Available'`

type equipmentRepository struct {
	db *sql.DB
}

func NewEquipmentRepository(db *sql.DB) repository.EquipmentRepository {
	return &equipmentRepository{db: db}
}

func scanEquipment(row rowScanner) (*domain.Equipment, error) {
	var e domain.Equipment
	err := row.Scan(&e.EquipmentID, &e.Type, &e.SiteID, &e.Availability, &e.RentalType,
		&e.CheckOutDate, &e.CheckInDate, &e.OperatingDays, &e.DaysLeft,
		&e.Location, &e.EngineHourDay, &e.IdleHourDay, &e.Fuel, &e.ReadyToShare, &e.SharedBySiteID, &e.CreatedOn)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func collectEquipment(rows *sql.Rows) ([]domain.Equipment, error) {
	defer rows.Close()
	var units []domain.Equipment
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		units = append(units, *e)
	}
	return units, rows.Err()
}

func nullableRentalType(t domain.RentalType) any {
	if t == domain.RentalTypeUnset {
		return nil
	}
	return string(t)
}

func (r *equipmentRepository) Create(ctx context.Context, e *domain.Equipment) error {
	logger.EnterMethod("equipmentRepository.Create", "equipmentID", e.EquipmentID, "type", e.Type)

	query := `INSERT INTO vendor (equipment_id, type, site_id, availability, rental_type, check_out_date, check_in_date,
	          operating_days, days_left, location, engine_hour_day, idle_hour_day, fuel, ready_to_share, shared_by_site_id)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15) RETURNING created_on`
	logger.DatabaseCall("INSERT", "vendor", "equipmentID", e.EquipmentID)

	err := r.db.QueryRowContext(ctx, query, e.EquipmentID, e.Type, e.SiteID, e.Availability, nullableRentalType(e.RentalType),
		e.CheckOutDate, e.CheckInDate, e.OperatingDays, e.DaysLeft, e.Location, e.EngineHourDay, e.IdleHourDay, e.Fuel,
		e.ReadyToShare, e.SharedBySiteID).Scan(&e.CreatedOn)
	logger.DatabaseResult("INSERT", 1, err, "equipmentID", e.EquipmentID)
	if err != nil {
		if isUniqueViolation(err) {
			err = domain.NewValidationError("equipment_id", fmt.Sprintf("equipment %s already exists", e.EquipmentID))
		}
		logger.ExitMethodWithError("equipmentRepository.Create", err, "equipmentID", e.EquipmentID)
		return err
	}
	logger.ExitMethod("equipmentRepository.Create", "equipmentID", e.EquipmentID)
	return nil
}

func (r *equipmentRepository) GetByID(ctx context.Context, equipmentID string) (*domain.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM vendor WHERE equipment_id = $1`
	e, err := scanEquipment(r.db.QueryRowContext(ctx, query, equipmentID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("equipment", equipmentID)
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *equipmentRepository) List(ctx context.Context, filter domain.EquipmentFilter) ([]domain.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM vendor WHERE 1=1`
	var args []any
	argIdx := 1

	if filter.Availability != "" {
		query += fmt.Sprintf(" AND availability = $%d", argIdx)
		args = append(args, filter.Availability)
		argIdx++
	}
	if filter.SiteID != nil {
		query += fmt.Sprintf(" AND site_id = $%d", argIdx)
		args = append(args, *filter.SiteID)
		argIdx++
	}
	if filter.Type != "" {
		query += fmt.Sprintf(" AND type = $%d", argIdx)
		args = append(args, filter.Type)
		argIdx++
	}
	if filter.ReadyToShare != nil {
		query += fmt.Sprintf(" AND ready_to_share = $%d", argIdx)
		args = append(args, *filter.ReadyToShare)
	}
	query += " ORDER BY equipment_id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectEquipment(rows)
}

func (r *equipmentRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM vendor`).Scan(&n)
	return n, err
}

func (r *equipmentRepository) ListAvailableTypes(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT type FROM vendor WHERE availability = 'Available' ORDER BY type`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

func (r *equipmentRepository) ListAvailableIDs(ctx context.Context, equipmentType string) ([]string, error) {
	query := `SELECT equipment_id FROM vendor WHERE type = $1 AND availability = 'Available' ORDER BY created_on, equipment_id`
	rows, err := r.db.QueryContext(ctx, query, equipmentType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// availabilityOf distinguishes a missing unit from one in the wrong state after
// a conditional update touched no rows.
func availabilityOf(ctx context.Context, q interface {
	QueryRowContext(context.Context, string, ...any) *sql.Row
}, equipmentID string) (domain.Availability, error) {
	var a domain.Availability
	err := q.QueryRowContext(ctx, `SELECT availability FROM vendor WHERE equipment_id = $1`, equipmentID).Scan(&a)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.NewNotFoundError("equipment", equipmentID)
	}
	return a, err
}

func (r *equipmentRepository) MarkRented(ctx context.Context, c domain.Checkout) error {
	logger.DatabaseCall("UPDATE", "vendor", "equipmentID", c.EquipmentID, "siteID", c.SiteID)
	res, err := r.db.ExecContext(ctx, rentUpdate, c.SiteID, c.StartDate, c.CheckInDate, c.OperatingDays,
		c.DaysLeft, c.Location, nullableRentalType(c.RentalType), c.EquipmentID)
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err, "equipmentID", c.EquipmentID)
		return err
	}
	n, err := res.RowsAffected()
	logger.DatabaseResult("UPDATE", n, err, "equipmentID", c.EquipmentID)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	current, err := availabilityOf(ctx, r.db, c.EquipmentID)
	if err != nil {
		return err
	}
	return domain.NewConflictError("equipment", c.EquipmentID, fmt.Sprintf("not available (currently %s)", current))
}

func (r *equipmentRepository) ClaimAvailable(ctx context.Context, equipmentType string, quantity int, c domain.Checkout) ([]string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer rollback(tx)

	query := `SELECT equipment_id FROM vendor WHERE type = $1 AND availability = 'Available'
	          ORDER BY created_on, equipment_id LIMIT $2 FOR UPDATE SKIP LOCKED`
	rows, err := tx.QueryContext(ctx, query, equipmentType, quantity)
	if err != nil {
		return nil, err
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) < quantity {
		return nil, domain.NewConflictError("equipment type", equipmentType,
			fmt.Sprintf("only %d of %d requested units available", len(ids), quantity))
	}

	for _, id := range ids {
		if _, err := tx.ExecContext(ctx, rentUpdate, c.SiteID, c.StartDate, c.CheckInDate, c.OperatingDays,
			c.DaysLeft, c.Location, nullableRentalType(c.RentalType), id); err != nil {
			return nil, fmt.Errorf("claim %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *equipmentRepository) CheckIn(ctx context.Context, equipmentID string) error {
	query := `UPDATE vendor SET availability = 'Available', check_out_date = NULL, check_in_date = NULL, days_left = NULL,
	          engine_hour_day = NULL, idle_hour_day = NULL, fuel = NULL, ready_to_share = FALSE, shared_by_site_id = NULL
	          WHERE equipment_id = $1 AND availability = 'Rented'`
	res, err := r.db.ExecContext(ctx, query, equipmentID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	if _, err := availabilityOf(ctx, r.db, equipmentID); err != nil {
		return err
	}
	return domain.NewConflictError("equipment", equipmentID, "not rented")
}

func (r *equipmentRepository) RefreshDaysLeft(ctx context.Context, today string) (int64, error) {
	query := `UPDATE vendor SET days_left = check_in_date - $1::date
	          WHERE availability = 'Rented' AND check_in_date IS NOT NULL`
	res, err := r.db.ExecContext(ctx, query, today)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *equipmentRepository) ApplyUsage(ctx context.Context, equipmentID string, engineDelta, idleDelta float64) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer rollback(tx)

	var (
		availability domain.Availability
		engine, idle float64
	)
	query := `SELECT availability, COALESCE(engine_hour_day, 0), COALESCE(idle_hour_day, 0)
	          FROM vendor WHERE equipment_id = $1 FOR UPDATE`
	err = tx.QueryRowContext(ctx, query, equipmentID).Scan(&availability, &engine, &idle)
	if errors.Is(err, sql.ErrNoRows) {
		return false, domain.NewNotFoundError("equipment", equipmentID)
	}
	if err != nil {
		return false, err
	}
	if availability != domain.AvailabilityRented {
		return false, nil
	}

	engine = domain.AdvanceHourGauge(engine, engineDelta)
	idle = domain.AdvanceHourGauge(idle, idleDelta)
	if _, err := tx.ExecContext(ctx, `UPDATE vendor SET engine_hour_day = $1, idle_hour_day = $2 WHERE equipment_id = $3`,
		engine, idle, equipmentID); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

func (r *equipmentRepository) SetFuel(ctx context.Context, equipmentID string, fuel float64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE vendor SET fuel = $1 WHERE equipment_id = $2 AND availability = 'Rented'`, fuel, equipmentID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n > 0 {
		return true, nil
	}
	if _, err := availabilityOf(ctx, r.db, equipmentID); err != nil {
		return false, err
	}
	return false, nil
}

func (r *equipmentRepository) SetShareState(ctx context.Context, equipmentID string, ready bool, sharedBySiteID *int32) error {
	res, err := r.db.ExecContext(ctx, `UPDATE vendor SET ready_to_share = $1, shared_by_site_id = $2 WHERE equipment_id = $3`,
		ready, sharedBySiteID, equipmentID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NewNotFoundError("equipment", equipmentID)
	}
	return nil
}

func (r *equipmentRepository) ListShareReady(ctx context.Context, excludeSiteID *int32) ([]domain.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM vendor WHERE ready_to_share = TRUE`
	var args []any
	if excludeSiteID != nil {
		query += ` AND site_id IS DISTINCT FROM $1`
		args = append(args, *excludeSiteID)
	}
	query += ` ORDER BY equipment_id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectEquipment(rows)
}

func (r *equipmentRepository) UtilizationBySiteType(ctx context.Context) ([]domain.UtilizationSummary, error) {
	query := `SELECT v.site_id, v.type, COALESCE(s.contact_details, ''), count(*),
	                 AVG(COALESCE(v.engine_hour_day, 0) + COALESCE(v.idle_hour_day, 0))
	          FROM vendor v
	          LEFT JOIN (
	              SELECT DISTINCT ON (site_id) site_id, contact_details
	              FROM site_info WHERE contact_details <> '' ORDER BY site_id, id
	          ) s ON s.site_id = v.site_id
	          WHERE v.site_id IS NOT NULL
	          GROUP BY v.site_id, v.type, s.contact_details
	          ORDER BY v.site_id, v.type`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.UtilizationSummary
	for rows.Next() {
		var u domain.UtilizationSummary
		if err := rows.Scan(&u.SiteID, &u.Type, &u.ContactDetails, &u.Units, &u.AverageHours); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
