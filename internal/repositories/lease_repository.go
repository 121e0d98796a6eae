package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/DylanGreen12/TenantTrack-sub000/internal/models"
	"github.com/DylanGreen12/TenantTrack-sub000/internal/utils"
)

// LeaseDetail is a lease plus display fields resolved via join.
type LeaseDetail struct {
	models.Lease
	UnitNumber  string `json:"unit_number"`
	TenantEmail string `json:"tenant_email"`
}

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type LeaseRepository interface {
	Create(ctx context.Context, l *models.Lease) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Lease, error)
	GetScoped(ctx context.Context, id uuid.UUID, scope ScopeFilter) (*LeaseDetail, error)
	List(ctx context.Context, scope ScopeFilter) ([]*LeaseDetail, error)

	// GetNonTerminalByTenant returns the tenant's PENDING, awaiting-
	// payment or ACTIVE lease, if any. Enforces the one-lease rule.
	GetNonTerminalByTenant(ctx context.Context, tenantID uuid.UUID) (*models.Lease, error)
	// GetPayableByTenant returns the tenant's ACTIVE or awaiting-
	// payment lease for the rent-payment path.
	GetPayableByTenant(ctx context.Context, tenantID uuid.UUID) (*models.Lease, error)
	// PairInUse reports whether another non-terminal lease already
	// binds the same tenant/unit pair.
	PairInUse(ctx context.Context, tenantID, unitID, excludeLeaseID uuid.UUID) (bool, error)

	Update(ctx context.Context, l *models.Lease) error
	Approve(ctx context.Context, id uuid.UUID, start, end time.Time, depositCents int64) error
	Deny(ctx context.Context, id uuid.UUID, reason *string) error
	Terminate(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ActivateWithPayment applies the whole reconciliation write set
	// in one transaction: payment row, lease status, unit occupancy
	// and tenant binding. Either all of it commits or none of it.
	ActivateWithPayment(ctx context.Context, leaseID uuid.UUID, pay *models.Payment) (*models.Lease, error)

	// ExpireDue flips ACTIVE leases past their end date to EXPIRED and
	// returns the affected unit ids so occupancy can be resynced.
	ExpireDue(ctx context.Context, asOf time.Time) ([]uuid.UUID, error)
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type leaseRepo struct {
	db DB
}

func NewLeaseRepository(db DB) LeaseRepository {
	return &leaseRepo{db: db}
}

func (r *leaseRepo) Create(ctx context.Context, l *models.Lease) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO leases (
            id, tenant_id, unit_id, rent_cents, deposit_cents,
            start_date, end_date, status, denial_reason,
            created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9, NOW(), NOW())
    `, l.ID, l.TenantID, l.UnitID, l.RentCents, l.DepositCents,
		l.StartDate, l.EndDate, l.Status, l.DenialReason)
	return err
}

/* ---------- reads ---------- */

func (r *leaseRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Lease, error) {
	row := r.db.QueryRow(ctx, baseSelectLease()+" WHERE l.id=$1", id)
	return scanLease(row)
}

func (r *leaseRepo) GetScoped(ctx context.Context, id uuid.UUID, scope ScopeFilter) (*LeaseDetail, error) {
	if scope.Kind == ScopeNone {
		return nil, nil
	}
	clause, args := leaseScopeSQL(scope, 2)
	row := r.db.QueryRow(ctx, baseSelectLeaseDetail()+" WHERE l.id=$1"+clause, append([]interface{}{id}, args...)...)
	return scanLeaseDetail(row)
}

func (r *leaseRepo) List(ctx context.Context, scope ScopeFilter) ([]*LeaseDetail, error) {
	if scope.Kind == ScopeNone {
		return nil, nil
	}
	clause, args := leaseScopeSQL(scope, 1)
	rows, err := r.db.Query(ctx, baseSelectLeaseDetail()+" WHERE TRUE"+clause+" ORDER BY l.created_at", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*LeaseDetail
	for rows.Next() {
		l, err := scanLeaseDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *leaseRepo) GetNonTerminalByTenant(ctx context.Context, tenantID uuid.UUID) (*models.Lease, error) {
	row := r.db.QueryRow(ctx, baseSelectLease()+`
        WHERE l.tenant_id=$1 AND l.status IN ('PENDING','APPROVED_AWAITING_PAYMENT','ACTIVE')
        LIMIT 1`, tenantID)
	return scanLease(row)
}

func (r *leaseRepo) GetPayableByTenant(ctx context.Context, tenantID uuid.UUID) (*models.Lease, error) {
	row := r.db.QueryRow(ctx, baseSelectLease()+`
        WHERE l.tenant_id=$1 AND l.status IN ('APPROVED_AWAITING_PAYMENT','ACTIVE')
        LIMIT 1`, tenantID)
	return scanLease(row)
}

func (r *leaseRepo) PairInUse(ctx context.Context, tenantID, unitID, excludeLeaseID uuid.UUID) (bool, error) {
	var inUse bool
	err := r.db.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT 1 FROM leases
            WHERE tenant_id=$1 AND unit_id=$2 AND id<>$3
              AND status IN ('PENDING','APPROVED_AWAITING_PAYMENT','ACTIVE')
        )`, tenantID, unitID, excludeLeaseID).Scan(&inUse)
	return inUse, err
}

/* ---------- transitions ---------- */

func (r *leaseRepo) Update(ctx context.Context, l *models.Lease) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE leases
        SET tenant_id=$1, unit_id=$2, rent_cents=$3, deposit_cents=$4,
            start_date=$5, end_date=$6, status=$7, updated_at=NOW()
        WHERE id=$8
    `, l.TenantID, l.UnitID, l.RentCents, l.DepositCents,
		l.StartDate, l.EndDate, l.Status, l.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Approve moves PENDING to APPROVED_AWAITING_PAYMENT with the final
// terms. The status predicate makes the guard and the write one
// statement, so a concurrent transition cannot slip between them.
func (r *leaseRepo) Approve(ctx context.Context, id uuid.UUID, start, end time.Time, depositCents int64) error {
	return r.transition(ctx, `
        UPDATE leases
        SET status='APPROVED_AWAITING_PAYMENT', start_date=$1, end_date=$2,
            deposit_cents=$3, updated_at=NOW()
        WHERE id=$4 AND status='PENDING'
    `, start, end, depositCents, id)
}

func (r *leaseRepo) Deny(ctx context.Context, id uuid.UUID, reason *string) error {
	return r.transition(ctx, `
        UPDATE leases
        SET status='DENIED', denial_reason=$1, updated_at=NOW()
        WHERE id=$2 AND status='PENDING'
    `, reason, id)
}

func (r *leaseRepo) Terminate(ctx context.Context, id uuid.UUID) error {
	return r.transition(ctx, `
        UPDATE leases
        SET status='TERMINATED', updated_at=NOW()
        WHERE id=$1 AND status='ACTIVE'
    `, id)
}

func (r *leaseRepo) transition(ctx context.Context, sql string, args ...interface{}) error {
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return utils.ErrWrongLeaseStatus
	}
	return nil
}

func (r *leaseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM leases WHERE id=$1`, id)
	return err
}

/* ---------- atomic activation ---------- */

func (r *leaseRepo) ActivateWithPayment(ctx context.Context, leaseID uuid.UUID, pay *models.Payment) (*models.Lease, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	row := tx.QueryRow(ctx, baseSelectLease()+" WHERE l.id=$1 FOR UPDATE", leaseID)
	lease, err := scanLease(row)
	if err != nil {
		return nil, err
	}
	if lease == nil {
		err = pgx.ErrNoRows
		return nil, err
	}
	if lease.Status != models.LeaseStatusAwaitingPayment {
		err = utils.ErrWrongLeaseStatus
		return nil, err
	}

	_, err = tx.Exec(ctx, `
        INSERT INTO payments (
            id, tenant_id, lease_id, amount_cents, paid_at, method, status,
            gateway_transaction_id, created_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8, NOW())
    `, pay.ID, pay.TenantID, pay.LeaseID, pay.AmountCents, pay.PaidAt,
		pay.Method, pay.Status, pay.GatewayTransactionID)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
        UPDATE leases SET status='ACTIVE', updated_at=NOW() WHERE id=$1
    `, leaseID)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
        UPDATE units SET status='RENTED', updated_at=NOW() WHERE id=$1
    `, lease.UnitID)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
        UPDATE tenants SET unit_id=$1, updated_at=NOW() WHERE id=$2
    `, lease.UnitID, lease.TenantID)
	if err != nil {
		return nil, err
	}

	// Assign into err so a failed re-read rolls back with the rest.
	var activated *models.Lease
	activated, err = scanLease(tx.QueryRow(ctx, baseSelectLease()+" WHERE l.id=$1", leaseID))
	if err != nil {
		return nil, err
	}
	return activated, nil
}

func (r *leaseRepo) ExpireDue(ctx context.Context, asOf time.Time) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `
        UPDATE leases SET status='EXPIRED', updated_at=NOW()
        WHERE status='ACTIVE' AND end_date < $1
        RETURNING unit_id
    `, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var unitIDs []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		unitIDs = append(unitIDs, id)
	}
	return unitIDs, rows.Err()
}

/* ---------- internals ---------- */

func leaseScopeSQL(f ScopeFilter, argIdx int) (string, []interface{}) {
	switch f.Kind {
	case ScopeAll:
		return "", nil
	case ScopeByPropertyOwner:
		return fmt.Sprintf(` AND l.unit_id IN (
            SELECT u.id FROM units u JOIN properties p ON u.property_id=p.id
            WHERE p.owner_user_id=$%d)`, argIdx), []interface{}{f.OwnerUserID}
	case ScopeByProperty:
		return fmt.Sprintf(` AND l.unit_id IN (SELECT id FROM units WHERE property_id=$%d)`, argIdx),
			[]interface{}{f.PropertyID}
	case ScopeByTenantEmail:
		return fmt.Sprintf(` AND l.tenant_id IN (SELECT id FROM tenants WHERE lower(email) = ANY($%d))`, argIdx),
			[]interface{}{lowered(f.Emails)}
	default:
		return " AND FALSE", nil
	}
}

func baseSelectLease() string {
	return `
        SELECT l.id, l.tenant_id, l.unit_id, l.rent_cents, l.deposit_cents,
        l.start_date, l.end_date, l.status, l.denial_reason,
        l.created_at, l.updated_at
        FROM leases l`
}

func baseSelectLeaseDetail() string {
	return `
        SELECT l.id, l.tenant_id, l.unit_id, l.rent_cents, l.deposit_cents,
        l.start_date, l.end_date, l.status, l.denial_reason,
        l.created_at, l.updated_at,
        u.unit_number, t.email
        FROM leases l
        JOIN units u ON l.unit_id=u.id
        JOIN tenants t ON l.tenant_id=t.id`
}

func scanLease(row pgx.Row) (*models.Lease, error) {
	var l models.Lease
	if err := row.Scan(
		&l.ID, &l.TenantID, &l.UnitID, &l.RentCents, &l.DepositCents,
		&l.StartDate, &l.EndDate, &l.Status, &l.DenialReason,
		&l.CreatedAt, &l.UpdatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

func scanLeaseDetail(row pgx.Row) (*LeaseDetail, error) {
	var l LeaseDetail
	if err := row.Scan(
		&l.ID, &l.TenantID, &l.UnitID, &l.RentCents, &l.DepositCents,
		&l.StartDate, &l.EndDate, &l.Status, &l.DenialReason,
		&l.CreatedAt, &l.UpdatedAt,
		&l.UnitNumber, &l.TenantEmail,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}
