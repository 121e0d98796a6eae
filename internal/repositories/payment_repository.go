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

type PaymentRepository interface {
	Create(ctx context.Context, p *models.Payment) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	GetScoped(ctx context.Context, id uuid.UUID, scope ScopeFilter) (*models.Payment, error)
	// GetByGatewayTransactionID is the duplicate-confirm guard: a
	// second confirm for an already reconciled intent finds the
	// existing row here and writes nothing.
	GetByGatewayTransactionID(ctx context.Context, txID string) (*models.Payment, error)
	List(ctx context.Context, scope ScopeFilter) ([]*models.Payment, error)

	Delete(ctx context.Context, id uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type paymentRepo struct {
	db DB
}

func NewPaymentRepository(db DB) PaymentRepository {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) Create(ctx context.Context, p *models.Payment) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO payments (
            id, tenant_id, lease_id, amount_cents, paid_at, method, status,
            gateway_transaction_id, created_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8, NOW())
    `, p.ID, p.TenantID, p.LeaseID, p.AmountCents, p.PaidAt,
		p.Method, p.Status, p.GatewayTransactionID)
	return err
}

/* ---------- reads ---------- */

func (r *paymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	row := r.db.QueryRow(ctx, baseSelectPayment()+" WHERE pay.id=$1", id)
	return scanPayment(row)
}

func (r *paymentRepo) GetScoped(ctx context.Context, id uuid.UUID, scope ScopeFilter) (*models.Payment, error) {
	if scope.Kind == ScopeNone {
		return nil, nil
	}
	clause, args := paymentScopeSQL(scope, 2)
	row := r.db.QueryRow(ctx, baseSelectPayment()+" WHERE pay.id=$1"+clause, append([]interface{}{id}, args...)...)
	return scanPayment(row)
}

func (r *paymentRepo) GetByGatewayTransactionID(ctx context.Context, txID string) (*models.Payment, error) {
	row := r.db.QueryRow(ctx, baseSelectPayment()+" WHERE pay.gateway_transaction_id=$1", txID)
	return scanPayment(row)
}

func (r *paymentRepo) List(ctx context.Context, scope ScopeFilter) ([]*models.Payment, error) {
	if scope.Kind == ScopeNone {
		return nil, nil
	}
	clause, args := paymentScopeSQL(scope, 1)
	rows, err := r.db.Query(ctx, baseSelectPayment()+" WHERE TRUE"+clause+" ORDER BY pay.paid_at DESC", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *paymentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM payments WHERE id=$1`, id)
	return err
}

/* ---------- internals ---------- */

func paymentScopeSQL(f ScopeFilter, argIdx int) (string, []interface{}) {
	switch f.Kind {
	case ScopeAll:
		return "", nil
	case ScopeByPropertyOwner:
		return fmt.Sprintf(` AND pay.tenant_id IN (
            SELECT t.id FROM tenants t
            JOIN units u ON t.unit_id=u.id
            JOIN properties p ON u.property_id=p.id
            WHERE p.owner_user_id=$%d)`, argIdx), []interface{}{f.OwnerUserID}
	case ScopeByProperty:
		return fmt.Sprintf(` AND pay.tenant_id IN (
            SELECT t.id FROM tenants t JOIN units u ON t.unit_id=u.id
            WHERE u.property_id=$%d)`, argIdx), []interface{}{f.PropertyID}
	case ScopeByTenantEmail:
		return fmt.Sprintf(` AND pay.tenant_id IN (SELECT id FROM tenants WHERE lower(email) = ANY($%d))`, argIdx),
			[]interface{}{lowered(f.Emails)}
	default:
		return " AND FALSE", nil
	}
}

func baseSelectPayment() string {
	return `
        SELECT pay.id, pay.tenant_id, pay.lease_id, pay.amount_cents,
        pay.paid_at, pay.method, pay.status, pay.gateway_transaction_id,
        pay.created_at
        FROM payments pay`
}

func scanPayment(row pgx.Row) (*models.Payment, error) {
	var p models.Payment
	if err := row.Scan(
		&p.ID, &p.TenantID, &p.LeaseID, &p.AmountCents,
		&p.PaidAt, &p.Method, &p.Status, &p.GatewayTransactionID,
		&p.CreatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
