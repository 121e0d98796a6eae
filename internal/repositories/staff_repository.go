package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/DylanGreen12/TenantTrack-sub000/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type StaffRepository interface {
	Create(ctx context.Context, s *models.Staff) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Staff, error)
	// GetByEmail is the maintenance-role scope lookup. Matching is
	// case-insensitive; no match means the caller sees nothing.
	GetByEmail(ctx context.Context, email string) (*models.Staff, error)
	ListByPropertyID(ctx context.Context, propID uuid.UUID) ([]*models.Staff, error)
	ListAll(ctx context.Context) ([]*models.Staff, error)

	Update(ctx context.Context, s *models.Staff) error
	Delete(ctx context.Context, id uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type staffRepo struct {
	db DB
}

func NewStaffRepository(db DB) StaffRepository {
	return &staffRepo{db: db}
}

func (r *staffRepo) Create(ctx context.Context, s *models.Staff) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO staff (
            id, property_id, first_name, last_name, email, phone_number,
            position, created_at, updated_at
        ) VALUES ($1,$2,$3,$4,lower($5),$6,$7, NOW(), NOW())
    `, s.ID, s.PropertyID, s.FirstName, s.LastName, s.Email, s.PhoneNumber, s.Position)
	return err
}

func (r *staffRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Staff, error) {
	row := r.db.QueryRow(ctx, baseSelectStaff()+" WHERE id=$1", id)
	return scanStaff(row)
}

func (r *staffRepo) GetByEmail(ctx context.Context, email string) (*models.Staff, error) {
	row := r.db.QueryRow(ctx, baseSelectStaff()+" WHERE lower(email)=lower($1) LIMIT 1", email)
	return scanStaff(row)
}

func (r *staffRepo) ListByPropertyID(ctx context.Context, propID uuid.UUID) ([]*models.Staff, error) {
	rows, err := r.db.Query(ctx, baseSelectStaff()+" WHERE property_id=$1 ORDER BY last_name, first_name", propID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStaffList(rows)
}

func (r *staffRepo) ListAll(ctx context.Context) ([]*models.Staff, error) {
	rows, err := r.db.Query(ctx, baseSelectStaff()+" ORDER BY last_name, first_name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStaffList(rows)
}

func (r *staffRepo) Update(ctx context.Context, s *models.Staff) error {
	_, err := r.db.Exec(ctx, `
        UPDATE staff
        SET property_id=$1, first_name=$2, last_name=$3, email=lower($4),
            phone_number=$5, position=$6, updated_at=NOW()
        WHERE id=$7
    `, s.PropertyID, s.FirstName, s.LastName, s.Email, s.PhoneNumber, s.Position, s.ID)
	return err
}

func (r *staffRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM staff WHERE id=$1`, id)
	return err
}

/* ---------- internals ---------- */

func baseSelectStaff() string {
	return `
        SELECT id, property_id, first_name, last_name, email, phone_number,
        position, created_at, updated_at
        FROM staff`
}

func scanStaff(row pgx.Row) (*models.Staff, error) {
	var s models.Staff
	if err := row.Scan(
		&s.ID, &s.PropertyID, &s.FirstName, &s.LastName, &s.Email,
		&s.PhoneNumber, &s.Position, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func scanStaffList(rows pgx.Rows) ([]*models.Staff, error) {
	var out []*models.Staff
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
