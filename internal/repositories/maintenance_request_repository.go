package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/DylanGreen12/TenantTrack-sub000/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type MaintenanceRequestRepository interface {
	Create(ctx context.Context, m *models.MaintenanceRequest) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.MaintenanceRequest, error)
	GetScoped(ctx context.Context, id uuid.UUID, scope ScopeFilter) (*models.MaintenanceRequest, error)
	List(ctx context.Context, scope ScopeFilter) ([]*models.MaintenanceRequest, error)

	Update(ctx context.Context, m *models.MaintenanceRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type maintenanceRequestRepo struct {
	db DB
}

func NewMaintenanceRequestRepository(db DB) MaintenanceRequestRepository {
	return &maintenanceRequestRepo{db: db}
}

func (r *maintenanceRequestRepo) Create(ctx context.Context, m *models.MaintenanceRequest) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO maintenance_requests (
            id, tenant_id, description, status, priority, assigned_staff_id,
            created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6, NOW(), NOW())
    `, m.ID, m.TenantID, m.Description, m.Status, m.Priority, m.AssignedStaffID)
	return err
}

/* ---------- reads ---------- */

func (r *maintenanceRequestRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.MaintenanceRequest, error) {
	row := r.db.QueryRow(ctx, baseSelectMaintenanceRequest()+" WHERE m.id=$1", id)
	return scanMaintenanceRequest(row)
}

func (r *maintenanceRequestRepo) GetScoped(ctx context.Context, id uuid.UUID, scope ScopeFilter) (*models.MaintenanceRequest, error) {
	if scope.Kind == ScopeNone {
		return nil, nil
	}
	clause, args := maintenanceScopeSQL(scope, 2)
	row := r.db.QueryRow(ctx, baseSelectMaintenanceRequest()+" WHERE m.id=$1"+clause, append([]interface{}{id}, args...)...)
	return scanMaintenanceRequest(row)
}

func (r *maintenanceRequestRepo) List(ctx context.Context, scope ScopeFilter) ([]*models.MaintenanceRequest, error) {
	if scope.Kind == ScopeNone {
		return nil, nil
	}
	clause, args := maintenanceScopeSQL(scope, 1)
	rows, err := r.db.Query(ctx, baseSelectMaintenanceRequest()+" WHERE TRUE"+clause+" ORDER BY m.created_at DESC", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.MaintenanceRequest
	for rows.Next() {
		m, err := scanMaintenanceRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

/* ---------- update / delete ---------- */

func (r *maintenanceRequestRepo) Update(ctx context.Context, m *models.MaintenanceRequest) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE maintenance_requests
        SET description=$1, status=$2, priority=$3, assigned_staff_id=$4, updated_at=NOW()
        WHERE id=$5
    `, m.Description, m.Status, m.Priority, m.AssignedStaffID, m.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *maintenanceRequestRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM maintenance_requests WHERE id=$1`, id)
	return err
}

/* ---------- internals ---------- */

func maintenanceScopeSQL(f ScopeFilter, argIdx int) (string, []interface{}) {
	switch f.Kind {
	case ScopeAll:
		return "", nil
	case ScopeByPropertyOwner:
		return fmt.Sprintf(` AND m.tenant_id IN (
            SELECT t.id FROM tenants t
            JOIN units u ON t.unit_id=u.id
            JOIN properties p ON u.property_id=p.id
            WHERE p.owner_user_id=$%d)`, argIdx), []interface{}{f.OwnerUserID}
	case ScopeByProperty:
		return fmt.Sprintf(` AND m.tenant_id IN (
            SELECT t.id FROM tenants t JOIN units u ON t.unit_id=u.id
            WHERE u.property_id=$%d)`, argIdx), []interface{}{f.PropertyID}
	case ScopeByTenantEmail:
		return fmt.Sprintf(` AND m.tenant_id IN (SELECT id FROM tenants WHERE lower(email) = ANY($%d))`, argIdx),
			[]interface{}{lowered(f.Emails)}
	default:
		return " AND FALSE", nil
	}
}

func baseSelectMaintenanceRequest() string {
	return `
        SELECT m.id, m.tenant_id, m.description, m.status, m.priority,
        m.assigned_staff_id, m.created_at, m.updated_at
        FROM maintenance_requests m`
}

func scanMaintenanceRequest(row pgx.Row) (*models.MaintenanceRequest, error) {
	var m models.MaintenanceRequest
	if err := row.Scan(
		&m.ID, &m.TenantID, &m.Description, &m.Status, &m.Priority,
		&m.AssignedStaffID, &m.CreatedAt, &m.UpdatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}
