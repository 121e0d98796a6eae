package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/DylanGreen12/TenantTrack-sub000/internal/gateway"
	"github.com/DylanGreen12/TenantTrack-sub000/internal/models"
	"github.com/DylanGreen12/TenantTrack-sub000/internal/repositories"
	"github.com/DylanGreen12/TenantTrack-sub000/internal/utils"
)

// fakeStore is the shared in-memory backing for the fake repositories.
// All fakes operate on the same maps so cross-entity effects (lease
// activation touching units and tenants) are observable in tests.
type fakeStore struct {
	tenants    map[uuid.UUID]*models.Tenant
	units      map[uuid.UUID]*models.Unit
	properties map[uuid.UUID]*models.Property
	leases     map[uuid.UUID]*models.Lease
	payments   map[uuid.UUID]*models.Payment
	staff      map[uuid.UUID]*models.Staff
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		tenants:    make(map[uuid.UUID]*models.Tenant),
		units:      make(map[uuid.UUID]*models.Unit),
		properties: make(map[uuid.UUID]*models.Property),
		leases:     make(map[uuid.UUID]*models.Lease),
		payments:   make(map[uuid.UUID]*models.Payment),
		staff:      make(map[uuid.UUID]*models.Staff),
	}
}

func (st *fakeStore) tenantInScope(t *models.Tenant, f repositories.ScopeFilter) bool {
	switch f.Kind {
	case repositories.ScopeAll:
		return true
	case repositories.ScopeByTenantEmail:
		for _, e := range f.Emails {
			if equalFold(t.Email, e) {
				return true
			}
		}
		return false
	case repositories.ScopeByPropertyOwner:
		if t.UnitID == nil {
			return false
		}
		u := st.units[*t.UnitID]
		if u == nil {
			return false
		}
		p := st.properties[u.PropertyID]
		return p != nil && p.OwnerUserID == f.OwnerUserID
	case repositories.ScopeByProperty:
		if t.UnitID == nil {
			return false
		}
		u := st.units[*t.UnitID]
		return u != nil && u.PropertyID == f.PropertyID
	default:
		return false
	}
}

func (st *fakeStore) leaseInScope(l *models.Lease, f repositories.ScopeFilter) bool {
	switch f.Kind {
	case repositories.ScopeAll:
		return true
	case repositories.ScopeByTenantEmail:
		t := st.tenants[l.TenantID]
		return t != nil && st.tenantInScope(t, f)
	case repositories.ScopeByPropertyOwner:
		u := st.units[l.UnitID]
		if u == nil {
			return false
		}
		p := st.properties[u.PropertyID]
		return p != nil && p.OwnerUserID == f.OwnerUserID
	case repositories.ScopeByProperty:
		u := st.units[l.UnitID]
		return u != nil && u.PropertyID == f.PropertyID
	default:
		return false
	}
}

/* ---------- tenant repo ---------- */

type fakeTenantRepo struct{ st *fakeStore }

func (r *fakeTenantRepo) Create(_ context.Context, t *models.Tenant) error {
	for _, existing := range r.st.tenants {
		if equalFold(existing.Email, t.Email) {
			return utils.ErrDuplicateTenantEmail
		}
	}
	cp := *t
	r.st.tenants[t.ID] = &cp
	return nil
}

func (r *fakeTenantRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Tenant, error) {
	t := r.st.tenants[id]
	if t == nil {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTenantRepo) GetScoped(_ context.Context, id uuid.UUID, scope repositories.ScopeFilter) (*repositories.TenantDetail, error) {
	t := r.st.tenants[id]
	if t == nil || !r.st.tenantInScope(t, scope) {
		return nil, nil
	}
	d := &repositories.TenantDetail{Tenant: *t}
	if t.UnitID != nil {
		if u := r.st.units[*t.UnitID]; u != nil {
			d.UnitNumber = &u.UnitNumber
		}
	}
	return d, nil
}

func (r *fakeTenantRepo) GetByEmail(_ context.Context, email string) (*models.Tenant, error) {
	for _, t := range r.st.tenants {
		if equalFold(t.Email, email) {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeTenantRepo) List(_ context.Context, scope repositories.ScopeFilter) ([]*repositories.TenantDetail, error) {
	var out []*repositories.TenantDetail
	for _, t := range r.st.tenants {
		if r.st.tenantInScope(t, scope) {
			out = append(out, &repositories.TenantDetail{Tenant: *t})
		}
	}
	return out, nil
}

func (r *fakeTenantRepo) Update(_ context.Context, t *models.Tenant) error {
	cp := *t
	r.st.tenants[t.ID] = &cp
	return nil
}

func (r *fakeTenantRepo) SetUnitID(_ context.Context, id uuid.UUID, unitID *uuid.UUID) error {
	if t := r.st.tenants[id]; t != nil {
		t.UnitID = unitID
	}
	return nil
}

func (r *fakeTenantRepo) SetGatewayCustomerID(_ context.Context, id uuid.UUID, customerID string) error {
	if t := r.st.tenants[id]; t != nil {
		t.GatewayCustomerID = &customerID
	}
	return nil
}

func (r *fakeTenantRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.st.tenants, id)
	return nil
}

func (r *fakeTenantRepo) HasRecords(_ context.Context, id uuid.UUID) (bool, error) {
	for _, l := range r.st.leases {
		if l.TenantID == id {
			return true, nil
		}
	}
	for _, p := range r.st.payments {
		if p.TenantID == id {
			return true, nil
		}
	}
	return false, nil
}

/* ---------- unit repo ---------- */

type fakeUnitRepo struct{ st *fakeStore }

func (r *fakeUnitRepo) Create(_ context.Context, u *models.Unit) error {
	cp := *u
	r.st.units[u.ID] = &cp
	return nil
}

func (r *fakeUnitRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Unit, error) {
	u := r.st.units[id]
	if u == nil {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUnitRepo) ListByPropertyID(_ context.Context, propID uuid.UUID) ([]*models.Unit, error) {
	var out []*models.Unit
	for _, u := range r.st.units {
		if u.PropertyID == propID {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeUnitRepo) Update(_ context.Context, u *models.Unit) error {
	cp := *u
	r.st.units[u.ID] = &cp
	return nil
}

func (r *fakeUnitRepo) SetStatus(_ context.Context, id uuid.UUID, status models.UnitStatusType) error {
	if u := r.st.units[id]; u != nil {
		u.Status = status
	}
	return nil
}

func (r *fakeUnitRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.st.units, id)
	return nil
}

func (r *fakeUnitRepo) CountTenants(_ context.Context, id uuid.UUID) (int64, error) {
	var n int64
	for _, t := range r.st.tenants {
		if t.UnitID != nil && *t.UnitID == id {
			n++
		}
	}
	return n, nil
}

func (r *fakeUnitRepo) SyncOccupancy(_ context.Context, id uuid.UUID) error {
	u := r.st.units[id]
	if u == nil {
		return nil
	}
	if u.Status != models.UnitStatusAvailable && u.Status != models.UnitStatusRented {
		return nil
	}
	occupied := false
	for _, t := range r.st.tenants {
		if t.UnitID != nil && *t.UnitID == id {
			occupied = true
		}
	}
	for _, l := range r.st.leases {
		if l.UnitID == id && l.Status == models.LeaseStatusActive {
			occupied = true
		}
	}
	if occupied {
		u.Status = models.UnitStatusRented
	} else {
		u.Status = models.UnitStatusAvailable
	}
	return nil
}

/* ---------- property repo ---------- */

type fakePropertyRepo struct{ st *fakeStore }

func (r *fakePropertyRepo) Create(_ context.Context, p *models.Property) error {
	cp := *p
	r.st.properties[p.ID] = &cp
	return nil
}

func (r *fakePropertyRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Property, error) {
	p := r.st.properties[id]
	if p == nil {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePropertyRepo) ListByOwnerUserID(_ context.Context, ownerUserID uuid.UUID) ([]*models.Property, error) {
	var out []*models.Property
	for _, p := range r.st.properties {
		if p.OwnerUserID == ownerUserID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakePropertyRepo) ListAll(_ context.Context) ([]*models.Property, error) {
	var out []*models.Property
	for _, p := range r.st.properties {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakePropertyRepo) Update(_ context.Context, p *models.Property) error {
	cp := *p
	r.st.properties[p.ID] = &cp
	return nil
}

func (r *fakePropertyRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.st.properties, id)
	return nil
}

func (r *fakePropertyRepo) CountUnits(_ context.Context, id uuid.UUID) (int64, error) {
	var n int64
	for _, u := range r.st.units {
		if u.PropertyID == id {
			n++
		}
	}
	return n, nil
}

/* ---------- lease repo ---------- */

type fakeLeaseRepo struct{ st *fakeStore }

func (r *fakeLeaseRepo) Create(_ context.Context, l *models.Lease) error {
	cp := *l
	r.st.leases[l.ID] = &cp
	return nil
}

func (r *fakeLeaseRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Lease, error) {
	l := r.st.leases[id]
	if l == nil {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *fakeLeaseRepo) GetScoped(_ context.Context, id uuid.UUID, scope repositories.ScopeFilter) (*repositories.LeaseDetail, error) {
	l := r.st.leases[id]
	if l == nil || !r.st.leaseInScope(l, scope) {
		return nil, nil
	}
	d := &repositories.LeaseDetail{Lease: *l}
	if u := r.st.units[l.UnitID]; u != nil {
		d.UnitNumber = u.UnitNumber
	}
	if t := r.st.tenants[l.TenantID]; t != nil {
		d.TenantEmail = t.Email
	}
	return d, nil
}

func (r *fakeLeaseRepo) List(_ context.Context, scope repositories.ScopeFilter) ([]*repositories.LeaseDetail, error) {
	var out []*repositories.LeaseDetail
	for _, l := range r.st.leases {
		if r.st.leaseInScope(l, scope) {
			out = append(out, &repositories.LeaseDetail{Lease: *l})
		}
	}
	return out, nil
}

func (r *fakeLeaseRepo) GetNonTerminalByTenant(_ context.Context, tenantID uuid.UUID) (*models.Lease, error) {
	for _, l := range r.st.leases {
		if l.TenantID == tenantID && !l.Status.IsTerminal() {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeLeaseRepo) GetPayableByTenant(_ context.Context, tenantID uuid.UUID) (*models.Lease, error) {
	for _, l := range r.st.leases {
		if l.TenantID == tenantID &&
			(l.Status == models.LeaseStatusActive || l.Status == models.LeaseStatusAwaitingPayment) {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeLeaseRepo) PairInUse(_ context.Context, tenantID, unitID, excludeLeaseID uuid.UUID) (bool, error) {
	for _, l := range r.st.leases {
		if l.ID != excludeLeaseID && l.TenantID == tenantID && l.UnitID == unitID && !l.Status.IsTerminal() {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeLeaseRepo) Update(_ context.Context, l *models.Lease) error {
	if r.st.leases[l.ID] == nil {
		return errors.New("lease not found")
	}
	cp := *l
	r.st.leases[l.ID] = &cp
	return nil
}

func (r *fakeLeaseRepo) Approve(_ context.Context, id uuid.UUID, start, end time.Time, depositCents int64) error {
	l := r.st.leases[id]
	if l == nil || l.Status != models.LeaseStatusPending {
		return utils.ErrWrongLeaseStatus
	}
	l.Status = models.LeaseStatusAwaitingPayment
	l.StartDate = start
	l.EndDate = end
	l.DepositCents = depositCents
	return nil
}

func (r *fakeLeaseRepo) Deny(_ context.Context, id uuid.UUID, reason *string) error {
	l := r.st.leases[id]
	if l == nil || l.Status != models.LeaseStatusPending {
		return utils.ErrWrongLeaseStatus
	}
	l.Status = models.LeaseStatusDenied
	l.DenialReason = reason
	return nil
}

func (r *fakeLeaseRepo) Terminate(_ context.Context, id uuid.UUID) error {
	l := r.st.leases[id]
	if l == nil || l.Status != models.LeaseStatusActive {
		return utils.ErrWrongLeaseStatus
	}
	l.Status = models.LeaseStatusTerminated
	return nil
}

func (r *fakeLeaseRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.st.leases, id)
	return nil
}

func (r *fakeLeaseRepo) ActivateWithPayment(_ context.Context, leaseID uuid.UUID, pay *models.Payment) (*models.Lease, error) {
	l := r.st.leases[leaseID]
	if l == nil {
		return nil, errors.New("lease not found")
	}
	if l.Status != models.LeaseStatusAwaitingPayment {
		return nil, utils.ErrWrongLeaseStatus
	}
	payCp := *pay
	r.st.payments[pay.ID] = &payCp
	l.Status = models.LeaseStatusActive
	if u := r.st.units[l.UnitID]; u != nil {
		u.Status = models.UnitStatusRented
	}
	if t := r.st.tenants[l.TenantID]; t != nil {
		unitID := l.UnitID
		t.UnitID = &unitID
	}
	cp := *l
	return &cp, nil
}

func (r *fakeLeaseRepo) ExpireDue(_ context.Context, asOf time.Time) ([]uuid.UUID, error) {
	var unitIDs []uuid.UUID
	for _, l := range r.st.leases {
		if l.Status == models.LeaseStatusActive && l.EndDate.Before(asOf) {
			l.Status = models.LeaseStatusExpired
			unitIDs = append(unitIDs, l.UnitID)
		}
	}
	return unitIDs, nil
}

/* ---------- payment repo ---------- */

type fakePaymentRepo struct{ st *fakeStore }

func (r *fakePaymentRepo) Create(_ context.Context, p *models.Payment) error {
	cp := *p
	r.st.payments[p.ID] = &cp
	return nil
}

func (r *fakePaymentRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Payment, error) {
	p := r.st.payments[id]
	if p == nil {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePaymentRepo) GetScoped(_ context.Context, id uuid.UUID, scope repositories.ScopeFilter) (*models.Payment, error) {
	p := r.st.payments[id]
	if p == nil {
		return nil, nil
	}
	t := r.st.tenants[p.TenantID]
	if t == nil || !r.st.tenantInScope(t, scope) {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePaymentRepo) GetByGatewayTransactionID(_ context.Context, txID string) (*models.Payment, error) {
	for _, p := range r.st.payments {
		if p.GatewayTransactionID != nil && *p.GatewayTransactionID == txID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakePaymentRepo) List(_ context.Context, scope repositories.ScopeFilter) ([]*models.Payment, error) {
	var out []*models.Payment
	for _, p := range r.st.payments {
		t := r.st.tenants[p.TenantID]
		if t != nil && r.st.tenantInScope(t, scope) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.st.payments, id)
	return nil
}

/* ---------- staff repo ---------- */

type fakeStaffRepo struct{ st *fakeStore }

func (r *fakeStaffRepo) Create(_ context.Context, s *models.Staff) error {
	cp := *s
	r.st.staff[s.ID] = &cp
	return nil
}

func (r *fakeStaffRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Staff, error) {
	s := r.st.staff[id]
	if s == nil {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeStaffRepo) GetByEmail(_ context.Context, email string) (*models.Staff, error) {
	for _, s := range r.st.staff {
		if equalFold(s.Email, email) {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeStaffRepo) ListByPropertyID(_ context.Context, propID uuid.UUID) ([]*models.Staff, error) {
	var out []*models.Staff
	for _, s := range r.st.staff {
		if s.PropertyID == propID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeStaffRepo) ListAll(_ context.Context) ([]*models.Staff, error) {
	var out []*models.Staff
	for _, s := range r.st.staff {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeStaffRepo) Update(_ context.Context, s *models.Staff) error {
	cp := *s
	r.st.staff[s.ID] = &cp
	return nil
}

func (r *fakeStaffRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.st.staff, id)
	return nil
}

/* ---------- payment gateway ---------- */

type fakeGateway struct {
	intents       map[string]*gateway.IntentResult
	nextIntent    int
	customerCalls int
	intentErr     error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{intents: make(map[string]*gateway.IntentResult)}
}

func (g *fakeGateway) GetOrCreateCustomer(_ context.Context, existingID *string, _ string, _ string) (string, error) {
	g.customerCalls++
	if existingID != nil && *existingID != "" {
		return *existingID, nil
	}
	return "cus_test", nil
}

func (g *fakeGateway) CreatePaymentIntent(_ context.Context, _ string, amountCents int64, _ *uuid.UUID) (*gateway.IntentResult, error) {
	if g.intentErr != nil {
		return nil, g.intentErr
	}
	g.nextIntent++
	id := fmt.Sprintf("pi_%d", g.nextIntent)
	res := &gateway.IntentResult{
		ID:                  id,
		ClientSecret:        id + "_secret",
		AmountReceivedCents: amountCents,
	}
	g.intents[id] = res
	return res, nil
}

func (g *fakeGateway) GetPaymentIntent(_ context.Context, intentID string) (*gateway.IntentResult, error) {
	if g.intentErr != nil {
		return nil, g.intentErr
	}
	res, ok := g.intents[intentID]
	if !ok {
		return nil, errors.New("no such intent")
	}
	cp := *res
	return &cp, nil
}

// settle marks an intent as succeeded for the given captured amount.
func (g *fakeGateway) settle(intentID string, amountCents int64) {
	if res, ok := g.intents[intentID]; ok {
		res.Succeeded = true
		res.AmountReceivedCents = amountCents
	}
}

// seedIntent registers an intent in a given state without going
// through CreatePaymentIntent.
func (g *fakeGateway) seedIntent(id string, succeeded bool, amountCents int64) {
	g.intents[id] = &gateway.IntentResult{
		ID:                  id,
		ClientSecret:        id + "_secret",
		Succeeded:           succeeded,
		AmountReceivedCents: amountCents,
	}
}

/* ---------- notifier ---------- */

type fakeNotifier struct {
	notices []gateway.NoticeKind
}

func (n *fakeNotifier) Notify(kind gateway.NoticeKind, _, _ string, _ *string, _ string) {
	n.notices = append(n.notices, kind)
}

/* ---------- fixture ---------- */

type fixture struct {
	st       *fakeStore
	tenants  *fakeTenantRepo
	units    *fakeUnitRepo
	props    *fakePropertyRepo
	leases   *fakeLeaseRepo
	payments *fakePaymentRepo
	staff    *fakeStaffRepo
	gw       *fakeGateway
	notifier *fakeNotifier

	scopeSvc   *RoleScopeService
	occupancy  *OccupancyService
	leaseSvc   *LeaseService
	paymentSvc *PaymentService
}

func newFixture() *fixture {
	st := newFakeStore()
	f := &fixture{
		st:       st,
		tenants:  &fakeTenantRepo{st: st},
		units:    &fakeUnitRepo{st: st},
		props:    &fakePropertyRepo{st: st},
		leases:   &fakeLeaseRepo{st: st},
		payments: &fakePaymentRepo{st: st},
		staff:    &fakeStaffRepo{st: st},
		gw:       newFakeGateway(),
		notifier: &fakeNotifier{},
	}
	f.scopeSvc = NewRoleScopeService(f.staff)
	f.occupancy = NewOccupancyService(f.units)
	f.leaseSvc = NewLeaseService(f.leases, f.tenants, f.units, f.props, f.scopeSvc, f.occupancy, f.notifier)
	f.paymentSvc = NewPaymentService(f.payments, f.leases, f.tenants, f.scopeSvc, f.gw, f.notifier)
	return f
}

// seedProperty inserts a landlord-owned property with one available
// unit and a tenant, returning their ids.
func (f *fixture) seedProperty(ownerID uuid.UUID, tenantEmail string) (propID, unitID, tenantID uuid.UUID) {
	propID = uuid.New()
	unitID = uuid.New()
	tenantID = uuid.New()

	f.st.properties[propID] = &models.Property{
		ID:           propID,
		OwnerUserID:  ownerID,
		PropertyName: "Maple Court",
		Address:      "12 Maple St",
		City:         "Springfield",
		State:        "IL",
		ZipCode:      "62701",
	}
	f.st.units[unitID] = &models.Unit{
		ID:         unitID,
		PropertyID: propID,
		UnitNumber: "101",
		RentCents:  120000,
		Status:     models.UnitStatusAvailable,
	}
	f.st.tenants[tenantID] = &models.Tenant{
		ID:        tenantID,
		FirstName: "Terry",
		LastName:  "Example",
		Email:     tenantEmail,
	}
	return propID, unitID, tenantID
}

func adminActor() *models.Actor {
	return &models.Actor{ID: uuid.NewString(), Email: "admin@example.com", Kind: models.ActorAdmin}
}

func landlordActor(id uuid.UUID) *models.Actor {
	return &models.Actor{ID: id.String(), Email: "landlord@example.com", Kind: models.ActorLandlord}
}

func tenantActor(email string) *models.Actor {
	return &models.Actor{ID: uuid.NewString(), Email: email, Kind: models.ActorTenant}
}

func staffActor(email string) *models.Actor {
	return &models.Actor{ID: uuid.NewString(), Email: email, Kind: models.ActorStaff}
}
