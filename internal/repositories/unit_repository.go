package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/DylanGreen12/TenantTrack-sub000/internal/models"
	"github.com/DylanGreen12/TenantTrack-sub000/internal/utils"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type UnitRepository interface {
	Create(ctx context.Context, u *models.Unit) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Unit, error)
	ListByPropertyID(ctx context.Context, propID uuid.UUID) ([]*models.Unit, error)

	Update(ctx context.Context, u *models.Unit) error
	SetStatus(ctx context.Context, id uuid.UUID, status models.UnitStatusType) error
	Delete(ctx context.Context, id uuid.UUID) error

	CountTenants(ctx context.Context, id uuid.UUID) (int64, error)

	// SyncOccupancy derives the AVAILABLE/RENTED status from whether
	// any tenant binding or ACTIVE lease references the unit. Units
	// parked in MAINTENANCE or UNAVAILABLE are left untouched.
	SyncOccupancy(ctx context.Context, id uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type unitRepo struct {
	db DB
}

func NewUnitRepository(db DB) UnitRepository {
	return &unitRepo{db: db}
}

func (r *unitRepo) Create(ctx context.Context, u *models.Unit) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO units (
            id, property_id, unit_number, rent_cents, status,
            created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5, NOW(), NOW())
    `, u.ID, u.PropertyID, u.UnitNumber, u.RentCents, u.Status)
	return mapUniqueViolation(err, "units_property_id_unit_number_key", utils.ErrDuplicateUnitNumber)
}

/* ---------- reads ---------- */

func (r *unitRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Unit, error) {
	row := r.db.QueryRow(ctx, baseSelectUnit()+" WHERE id=$1", id)
	return scanUnit(row)
}

func (r *unitRepo) ListByPropertyID(ctx context.Context, propID uuid.UUID) ([]*models.Unit, error) {
	rows, err := r.db.Query(ctx, baseSelectUnit()+" WHERE property_id=$1 ORDER BY unit_number", propID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUnits(rows)
}

/* ---------- update / delete ---------- */

func (r *unitRepo) Update(ctx context.Context, u *models.Unit) error {
	_, err := r.db.Exec(ctx, `
        UPDATE units
        SET unit_number=$1, rent_cents=$2, status=$3, updated_at=NOW()
        WHERE id=$4
    `, u.UnitNumber, u.RentCents, u.Status, u.ID)
	return mapUniqueViolation(err, "units_property_id_unit_number_key", utils.ErrDuplicateUnitNumber)
}

func (r *unitRepo) SetStatus(ctx context.Context, id uuid.UUID, status models.UnitStatusType) error {
	tag, err := r.db.Exec(ctx, `UPDATE units SET status=$1, updated_at=NOW() WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *unitRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM units WHERE id=$1`, id)
	return err
}

func (r *unitRepo) CountTenants(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tenants WHERE unit_id=$1`, id).Scan(&n)
	return n, err
}

func (r *unitRepo) SyncOccupancy(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `
        UPDATE units
        SET status = CASE WHEN EXISTS (SELECT 1 FROM tenants WHERE unit_id=units.id)
                            OR EXISTS (SELECT 1 FROM leases WHERE unit_id=units.id AND status='ACTIVE')
                     THEN 'RENTED' ELSE 'AVAILABLE' END,
            updated_at = NOW()
        WHERE id=$1 AND status IN ('AVAILABLE','RENTED')
    `, id)
	return err
}

/* ---------- internals ---------- */

// mapUniqueViolation turns a 23505 on the named constraint into the
// given domain error so services can respond with a descriptive
// conflict instead of a raw pg message.
func mapUniqueViolation(err error, constraint string, domainErr error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == constraint {
		return domainErr
	}
	return err
}

func baseSelectUnit() string {
	return `
        SELECT id, property_id, unit_number, rent_cents, status,
        created_at, updated_at
        FROM units`
}

func scanUnit(row pgx.Row) (*models.Unit, error) {
	var u models.Unit
	if err := row.Scan(
		&u.ID, &u.PropertyID, &u.UnitNumber, &u.RentCents, &u.Status,
		&u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func scanUnits(rows pgx.Rows) ([]*models.Unit, error) {
	var out []*models.Unit
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
