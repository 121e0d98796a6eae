package app

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/DylanGreen12/TenantTrack-sub000/internal/utils"
)

// SeedTestData inserts a small fixture set for local development: one
// landlord-owned property with two units and a tenant on the first.
// Idempotent; reruns are no-ops.
func SeedTestData(ctx context.Context, db *pgxpool.Pool) error {
	stmts := []string{
		`INSERT INTO properties (id, owner_user_id, property_name, address, city, state, zip_code)
		 VALUES ('11111111-1111-1111-1111-111111111111', '99999999-9999-9999-9999-999999999999',
		         'Maple Court', '12 Maple St', 'Springfield', 'IL', '62701')
		 ON CONFLICT (id) DO NOTHING`,

		`INSERT INTO units (id, property_id, unit_number, rent_cents, status)
		 VALUES ('22222222-2222-2222-2222-222222222222', '11111111-1111-1111-1111-111111111111', '101', 120000, 'RENTED'),
		        ('33333333-3333-3333-3333-333333333333', '11111111-1111-1111-1111-111111111111', '102', 125000, 'AVAILABLE')
		 ON CONFLICT (id) DO NOTHING`,

		`INSERT INTO tenants (id, unit_id, first_name, last_name, email)
		 VALUES ('44444444-4444-4444-4444-444444444444', '22222222-2222-2222-2222-222222222222',
		         'Terry', 'Example', 'terry@example.com')
		 ON CONFLICT (id) DO NOTHING`,

		`INSERT INTO leases (id, tenant_id, unit_id, rent_cents, deposit_cents, start_date, end_date, status)
		 VALUES ('55555555-5555-5555-5555-555555555555', '44444444-4444-4444-4444-444444444444',
		         '22222222-2222-2222-2222-222222222222', 120000, 120000,
		         now() - interval '30 days', now() + interval '335 days', 'ACTIVE')
		 ON CONFLICT (id) DO NOTHING`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	utils.Logger.Debug("Test fixtures in place")
	return nil
}
