package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/DylanGreen12/TenantTrack-sub000/internal/models"
	"github.com/DylanGreen12/TenantTrack-sub000/internal/utils"
)

// TenantDetail is a tenant plus the display unit number resolved via
// join at read time (the tenants table stores only the foreign key).
type TenantDetail struct {
	models.Tenant
	UnitNumber *string `json:"unit_number,omitempty"`
}

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type TenantRepository interface {
	Create(ctx context.Context, t *models.Tenant) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	GetScoped(ctx context.Context, id uuid.UUID, scope ScopeFilter) (*TenantDetail, error)
	GetByEmail(ctx context.Context, email string) (*models.Tenant, error)
	List(ctx context.Context, scope ScopeFilter) ([]*TenantDetail, error)

	Update(ctx context.Context, t *models.Tenant) error
	SetUnitID(ctx context.Context, id uuid.UUID, unitID *uuid.UUID) error
	SetGatewayCustomerID(ctx context.Context, id uuid.UUID, customerID string) error
	Delete(ctx context.Context, id uuid.UUID) error

	// HasRecords reports whether any payments, leases or maintenance
	// requests reference the tenant. Tenants with records cannot be
	// deleted.
	HasRecords(ctx context.Context, id uuid.UUID) (bool, error)
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type tenantRepo struct {
	db DB
}

func NewTenantRepository(db DB) TenantRepository {
	return &tenantRepo{db: db}
}

func (r *tenantRepo) Create(ctx context.Context, t *models.Tenant) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO tenants (
            id, unit_id, first_name, last_name, email, phone_number,
            gateway_customer_id, created_at, updated_at
        ) VALUES ($1,$2,$3,$4,lower($5),$6,$7, NOW(), NOW())
    `, t.ID, t.UnitID, t.FirstName, t.LastName, t.Email, t.PhoneNumber, t.GatewayCustomerID)
	return mapUniqueViolation(err, "tenants_email_key", utils.ErrDuplicateTenantEmail)
}

/* ---------- reads ---------- */

func (r *tenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	row := r.db.QueryRow(ctx, baseSelectTenant()+" WHERE t.id=$1", id)
	return scanTenant(row)
}

func (r *tenantRepo) GetScoped(ctx context.Context, id uuid.UUID, scope ScopeFilter) (*TenantDetail, error) {
	if scope.Kind == ScopeNone {
		return nil, nil
	}
	clause, args := tenantScopeSQL(scope, 2)
	row := r.db.QueryRow(ctx, baseSelectTenantDetail()+" WHERE t.id=$1"+clause, append([]interface{}{id}, args...)...)
	return scanTenantDetail(row)
}

func (r *tenantRepo) GetByEmail(ctx context.Context, email string) (*models.Tenant, error) {
	row := r.db.QueryRow(ctx, baseSelectTenant()+" WHERE lower(t.email)=lower($1)", email)
	return scanTenant(row)
}

func (r *tenantRepo) List(ctx context.Context, scope ScopeFilter) ([]*TenantDetail, error) {
	if scope.Kind == ScopeNone {
		return nil, nil
	}
	clause, args := tenantScopeSQL(scope, 1)
	rows, err := r.db.Query(ctx, baseSelectTenantDetail()+" WHERE TRUE"+clause+" ORDER BY t.created_at", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*TenantDetail
	for rows.Next() {
		t, err := scanTenantDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

/* ---------- update / delete ---------- */

func (r *tenantRepo) Update(ctx context.Context, t *models.Tenant) error {
	_, err := r.db.Exec(ctx, `
        UPDATE tenants
        SET unit_id=$1, first_name=$2, last_name=$3, email=lower($4),
            phone_number=$5, updated_at=NOW()
        WHERE id=$6
    `, t.UnitID, t.FirstName, t.LastName, t.Email, t.PhoneNumber, t.ID)
	return mapUniqueViolation(err, "tenants_email_key", utils.ErrDuplicateTenantEmail)
}

func (r *tenantRepo) SetUnitID(ctx context.Context, id uuid.UUID, unitID *uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `UPDATE tenants SET unit_id=$1, updated_at=NOW() WHERE id=$2`, unitID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *tenantRepo) SetGatewayCustomerID(ctx context.Context, id uuid.UUID, customerID string) error {
	_, err := r.db.Exec(ctx, `UPDATE tenants SET gateway_customer_id=$1, updated_at=NOW() WHERE id=$2`, customerID, id)
	return err
}

func (r *tenantRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM tenants WHERE id=$1`, id)
	return err
}

func (r *tenantRepo) HasRecords(ctx context.Context, id uuid.UUID) (bool, error) {
	var has bool
	err := r.db.QueryRow(ctx, `
        SELECT EXISTS (SELECT 1 FROM payments WHERE tenant_id=$1)
            OR EXISTS (SELECT 1 FROM leases WHERE tenant_id=$1)
            OR EXISTS (SELECT 1 FROM maintenance_requests WHERE tenant_id=$1)
    `, id).Scan(&has)
	return has, err
}

/* ---------- internals ---------- */

// tenantScopeSQL renders the scope filter as a clause over alias t,
// with placeholders starting at argIdx.
func tenantScopeSQL(f ScopeFilter, argIdx int) (string, []interface{}) {
	switch f.Kind {
	case ScopeAll:
		return "", nil
	case ScopeByPropertyOwner:
		return fmt.Sprintf(` AND t.unit_id IN (
            SELECT u.id FROM units u JOIN properties p ON u.property_id=p.id
            WHERE p.owner_user_id=$%d)`, argIdx), []interface{}{f.OwnerUserID}
	case ScopeByProperty:
		return fmt.Sprintf(` AND t.unit_id IN (SELECT id FROM units WHERE property_id=$%d)`, argIdx),
			[]interface{}{f.PropertyID}
	case ScopeByTenantEmail:
		return fmt.Sprintf(` AND lower(t.email) = ANY($%d)`, argIdx), []interface{}{lowered(f.Emails)}
	default:
		return " AND FALSE", nil
	}
}

func lowered(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}

func baseSelectTenant() string {
	return `
        SELECT t.id, t.unit_id, t.first_name, t.last_name, t.email,
        t.phone_number, t.gateway_customer_id, t.created_at, t.updated_at
        FROM tenants t`
}

func baseSelectTenantDetail() string {
	return `
        SELECT t.id, t.unit_id, t.first_name, t.last_name, t.email,
        t.phone_number, t.gateway_customer_id, t.created_at, t.updated_at,
        u.unit_number
        FROM tenants t LEFT JOIN units u ON t.unit_id=u.id`
}

func scanTenant(row pgx.Row) (*models.Tenant, error) {
	var t models.Tenant
	if err := row.Scan(
		&t.ID, &t.UnitID, &t.FirstName, &t.LastName, &t.Email,
		&t.PhoneNumber, &t.GatewayCustomerID, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func scanTenantDetail(row pgx.Row) (*TenantDetail, error) {
	var t TenantDetail
	if err := row.Scan(
		&t.ID, &t.UnitID, &t.FirstName, &t.LastName, &t.Email,
		&t.PhoneNumber, &t.GatewayCustomerID, &t.CreatedAt, &t.UpdatedAt,
		&t.UnitNumber,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}
