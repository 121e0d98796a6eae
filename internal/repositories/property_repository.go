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

type PropertyRepository interface {
	Create(ctx context.Context, p *models.Property) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error)
	ListByOwnerUserID(ctx context.Context, ownerUserID uuid.UUID) ([]*models.Property, error)
	ListAll(ctx context.Context) ([]*models.Property, error)

	Update(ctx context.Context, p *models.Property) error
	Delete(ctx context.Context, id uuid.UUID) error

	CountUnits(ctx context.Context, id uuid.UUID) (int64, error)
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type propertyRepo struct {
	db DB
}

func NewPropertyRepository(db DB) PropertyRepository {
	return &propertyRepo{db: db}
}

func (r *propertyRepo) Create(ctx context.Context, p *models.Property) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO properties (
            id, owner_user_id, property_name, address, city, state, zip_code,
            created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7, NOW(), NOW())
    `,
		p.ID,
		p.OwnerUserID,
		p.PropertyName,
		p.Address,
		p.City,
		p.State,
		p.ZipCode,
	)
	return err
}

func (r *propertyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	row := r.db.QueryRow(ctx, baseSelectProperty()+" WHERE id=$1", id)
	return scanProperty(row)
}

func (r *propertyRepo) ListByOwnerUserID(ctx context.Context, ownerUserID uuid.UUID) ([]*models.Property, error) {
	rows, err := r.db.Query(ctx, baseSelectProperty()+" WHERE owner_user_id=$1 ORDER BY created_at", ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProperties(rows)
}

func (r *propertyRepo) ListAll(ctx context.Context) ([]*models.Property, error) {
	rows, err := r.db.Query(ctx, baseSelectProperty()+" ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProperties(rows)
}

func (r *propertyRepo) Update(ctx context.Context, p *models.Property) error {
	_, err := r.db.Exec(ctx, `
        UPDATE properties
        SET property_name=$1, address=$2, city=$3, state=$4, zip_code=$5, updated_at=NOW()
        WHERE id=$6
    `, p.PropertyName, p.Address, p.City, p.State, p.ZipCode, p.ID)
	return err
}

func (r *propertyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM properties WHERE id=$1`, id)
	return err
}

func (r *propertyRepo) CountUnits(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM units WHERE property_id=$1`, id).Scan(&n)
	return n, err
}

/* ---------- internals ---------- */

func baseSelectProperty() string {
	return `
        SELECT id, owner_user_id, property_name, address, city, state, zip_code,
        created_at, updated_at
        FROM properties`
}

func scanProperty(row pgx.Row) (*models.Property, error) {
	var p models.Property
	if err := row.Scan(
		&p.ID, &p.OwnerUserID, &p.PropertyName,
		&p.Address, &p.City, &p.State, &p.ZipCode,
		&p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func scanProperties(rows pgx.Rows) ([]*models.Property, error) {
	var out []*models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
