package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/DylanGreen12/TenantTrack-sub000/internal/dtos"
	"github.com/DylanGreen12/TenantTrack-sub000/internal/gateway"
	"github.com/DylanGreen12/TenantTrack-sub000/internal/models"
	"github.com/DylanGreen12/TenantTrack-sub000/internal/utils"
)

// seedAwaitingLease stands up a lease in APPROVED_AWAITING_PAYMENT for
// the given tenant: rent $1200, deposit $300, so activation expects a
// $1500 charge.
func seedAwaitingLease(f *fixture, ownerID uuid.UUID) (leaseID, unitID, tenantID uuid.UUID) {
	_, unitID, tenantID = f.seedProperty(ownerID, "terry@example.com")
	leaseID = uuid.New()
	start := time.Now().UTC()
	f.st.leases[leaseID] = &models.Lease{
		ID:           leaseID,
		TenantID:     tenantID,
		UnitID:       unitID,
		RentCents:    120000,
		DepositCents: 30000,
		StartDate:    start,
		EndDate:      start.AddDate(1, 0, 0),
		Status:       models.LeaseStatusAwaitingPayment,
	}
	return leaseID, unitID, tenantID
}

func TestCreateLeaseIntent_ReturnsSecretAndBindsCustomer(t *testing.T) {
	f := newFixture()
	leaseID, _, tenantID := seedAwaitingLease(f, uuid.New())

	resp, err := f.paymentSvc.CreateLeaseIntent(context.Background(), tenantActor("terry@example.com"), leaseID)
	require.NoError(t, err)
	require.NotEmpty(t, resp.ClientSecret)

	// The billing customer id is persisted for reuse.
	require.NotNil(t, f.st.tenants[tenantID].GatewayCustomerID)
	require.Equal(t, "cus_test", *f.st.tenants[tenantID].GatewayCustomerID)

	// The intent carries the full activation charge.
	require.Equal(t, int64(150000), f.gw.intents["pi_1"].AmountReceivedCents)
}

func TestCreateLeaseIntent_OnlyLeaseTenant(t *testing.T) {
	f := newFixture()
	leaseID, _, _ := seedAwaitingLease(f, uuid.New())

	_, err := f.paymentSvc.CreateLeaseIntent(context.Background(), adminActor(), leaseID)
	require.ErrorIs(t, err, utils.ErrNotLeaseTenant)
}

func TestCreateLeaseIntent_RequiresAwaitingPayment(t *testing.T) {
	f := newFixture()
	leaseID, _, _ := seedAwaitingLease(f, uuid.New())
	f.st.leases[leaseID].Status = models.LeaseStatusActive

	_, err := f.paymentSvc.CreateLeaseIntent(context.Background(), tenantActor("terry@example.com"), leaseID)
	require.ErrorIs(t, err, utils.ErrWrongLeaseStatus)
}

func TestConfirmLeasePayment_ActivatesAtomically(t *testing.T) {
	f := newFixture()
	leaseID, unitID, tenantID := seedAwaitingLease(f, uuid.New())
	f.gw.seedIntent("pi_ok", true, 150000)

	pay, err := f.paymentSvc.ConfirmLeasePayment(context.Background(), tenantActor("terry@example.com"), leaseID, "pi_ok")
	require.NoError(t, err)

	require.Equal(t, int64(150000), pay.AmountCents)
	require.Equal(t, models.PaymentStatusPaid, pay.Status)
	require.Equal(t, models.PaymentMethodCard, pay.Method)

	require.Equal(t, models.LeaseStatusActive, f.st.leases[leaseID].Status)
	require.Equal(t, models.UnitStatusRented, f.st.units[unitID].Status)
	require.NotNil(t, f.st.tenants[tenantID].UnitID)
	require.Equal(t, unitID, *f.st.tenants[tenantID].UnitID)
	require.Len(t, f.st.payments, 1)
	require.Contains(t, f.notifier.notices, gateway.NoticePaymentReceipt)
}

func TestConfirmLeasePayment_FailedIntentWritesNothing(t *testing.T) {
	f := newFixture()
	leaseID, unitID, _ := seedAwaitingLease(f, uuid.New())
	f.gw.seedIntent("pi_failed", false, 0)

	_, err := f.paymentSvc.ConfirmLeasePayment(context.Background(), tenantActor("terry@example.com"), leaseID, "pi_failed")
	require.ErrorIs(t, err, utils.ErrIntentNotSucceeded)

	require.Empty(t, f.st.payments)
	require.Equal(t, models.LeaseStatusAwaitingPayment, f.st.leases[leaseID].Status)
	require.Equal(t, models.UnitStatusAvailable, f.st.units[unitID].Status)
	require.Empty(t, f.notifier.notices)
}

func TestConfirmLeasePayment_RejectsAmountMismatch(t *testing.T) {
	f := newFixture()
	leaseID, _, _ := seedAwaitingLease(f, uuid.New())
	// Succeeded, but $100 short of rent + deposit.
	f.gw.seedIntent("pi_short", true, 140000)

	_, err := f.paymentSvc.ConfirmLeasePayment(context.Background(), tenantActor("terry@example.com"), leaseID, "pi_short")
	require.ErrorIs(t, err, utils.ErrAmountMismatch)

	require.Empty(t, f.st.payments)
	require.Equal(t, models.LeaseStatusAwaitingPayment, f.st.leases[leaseID].Status)
}

// A client retry for an already reconciled intent must return the
// existing payment row and write nothing new.
func TestConfirmLeasePayment_DuplicateConfirmIsIdempotent(t *testing.T) {
	f := newFixture()
	leaseID, _, _ := seedAwaitingLease(f, uuid.New())
	f.gw.seedIntent("pi_ok", true, 150000)
	actor := tenantActor("terry@example.com")

	first, err := f.paymentSvc.ConfirmLeasePayment(context.Background(), actor, leaseID, "pi_ok")
	require.NoError(t, err)

	second, err := f.paymentSvc.ConfirmLeasePayment(context.Background(), actor, leaseID, "pi_ok")
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Len(t, f.st.payments, 1)
}

func TestCreateRentIntent_ChargesRentOnActiveLease(t *testing.T) {
	f := newFixture()
	leaseID, unitID, _ := seedAwaitingLease(f, uuid.New())
	f.st.leases[leaseID].Status = models.LeaseStatusActive
	f.st.units[unitID].Status = models.UnitStatusRented

	resp, err := f.paymentSvc.CreateRentIntent(context.Background(), tenantActor("terry@example.com"))
	require.NoError(t, err)
	require.NotEmpty(t, resp.ClientSecret)
	require.Equal(t, int64(120000), f.gw.intents["pi_1"].AmountReceivedCents)
}

// A lease still awaiting its activation payment must not get a
// rent-only intent: the gateway would settle an amount that
// confirmation rejects, stranding the charge.
func TestCreateRentIntent_RejectsAwaitingLease(t *testing.T) {
	f := newFixture()
	seedAwaitingLease(f, uuid.New())

	_, err := f.paymentSvc.CreateRentIntent(context.Background(), tenantActor("terry@example.com"))
	require.ErrorIs(t, err, utils.ErrWrongLeaseStatus)
	require.Empty(t, f.gw.intents)
}

func TestConfirmRentPayment_RejectsAwaitingLease(t *testing.T) {
	f := newFixture()
	leaseID, _, _ := seedAwaitingLease(f, uuid.New())
	f.gw.seedIntent("pi_rent", true, 120000)

	_, err := f.paymentSvc.ConfirmRentPayment(context.Background(), tenantActor("terry@example.com"), "pi_rent")
	require.ErrorIs(t, err, utils.ErrWrongLeaseStatus)
	require.Empty(t, f.st.payments)
	require.Equal(t, models.LeaseStatusAwaitingPayment, f.st.leases[leaseID].Status)
}

func TestConfirmRentPayment_RecordsWithoutActivation(t *testing.T) {
	f := newFixture()
	leaseID, unitID, _ := seedAwaitingLease(f, uuid.New())
	f.st.leases[leaseID].Status = models.LeaseStatusActive
	f.st.units[unitID].Status = models.UnitStatusRented
	f.gw.seedIntent("pi_rent", true, 120000)

	pay, err := f.paymentSvc.ConfirmRentPayment(context.Background(), tenantActor("terry@example.com"), "pi_rent")
	require.NoError(t, err)
	require.Equal(t, int64(120000), pay.AmountCents)
	require.Equal(t, models.LeaseStatusActive, f.st.leases[leaseID].Status)
	require.Len(t, f.st.payments, 1)
}

func TestConfirmPayment_GatewayOutageIsRetryable(t *testing.T) {
	f := newFixture()
	leaseID, _, _ := seedAwaitingLease(f, uuid.New())
	f.gw.intentErr = context.DeadlineExceeded

	_, err := f.paymentSvc.ConfirmLeasePayment(context.Background(), tenantActor("terry@example.com"), leaseID, "pi_ok")
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, 502, appErr.StatusCode)
	require.Empty(t, f.st.payments)
	require.Equal(t, models.LeaseStatusAwaitingPayment, f.st.leases[leaseID].Status)
}

func TestCreateManualPayment_LandlordOnly(t *testing.T) {
	f := newFixture()
	ownerID := uuid.New()
	_, unitID, tenantID := f.seedProperty(ownerID, "terry@example.com")
	f.st.tenants[tenantID].UnitID = &unitID

	req := dtos.CreateManualPaymentRequest{
		TenantID:    tenantID,
		AmountCents: 120000,
		Method:      models.PaymentMethodCheck,
	}

	pay, err := f.paymentSvc.CreateManual(context.Background(), landlordActor(ownerID), req)
	require.NoError(t, err)
	require.Equal(t, models.PaymentStatusPaid, pay.Status)
	require.Equal(t, models.PaymentMethodCheck, pay.Method)

	_, err = f.paymentSvc.CreateManual(context.Background(), tenantActor("terry@example.com"), req)
	require.ErrorIs(t, err, utils.ErrNotPropertyOwner)
}

func TestListPayments_TenantSeesOnlyOwn(t *testing.T) {
	f := newFixture()
	_, _, tenantID := f.seedProperty(uuid.New(), "terry@example.com")
	otherID := uuid.New()
	f.st.tenants[otherID] = &models.Tenant{ID: otherID, FirstName: "Other", LastName: "Tenant", Email: "other@example.com"}

	f.st.payments[uuid.New()] = &models.Payment{ID: uuid.New(), TenantID: tenantID, AmountCents: 120000, Status: models.PaymentStatusPaid}
	f.st.payments[uuid.New()] = &models.Payment{ID: uuid.New(), TenantID: otherID, AmountCents: 90000, Status: models.PaymentStatusPaid}

	mine, err := f.paymentSvc.List(context.Background(), tenantActor("terry@example.com"))
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, tenantID, mine[0].TenantID)
}
