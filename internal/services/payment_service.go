package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/DylanGreen12/TenantTrack-sub000/internal/dtos"
	"github.com/DylanGreen12/TenantTrack-sub000/internal/gateway"
	"github.com/DylanGreen12/TenantTrack-sub000/internal/models"
	"github.com/DylanGreen12/TenantTrack-sub000/internal/repositories"
	"github.com/DylanGreen12/TenantTrack-sub000/internal/utils"
)

// PaymentService reconciles tenant payments against the external
// gateway. Confirmation is the critical path: the payment row, the
// lease activation and the unit occupancy flip are applied in a
// single database transaction, so a mid-sequence failure leaves no
// partial state.
type PaymentService struct {
	payRepo    repositories.PaymentRepository
	leaseRepo  repositories.LeaseRepository
	tenantRepo repositories.TenantRepository
	scope      *RoleScopeService
	gateway    gateway.PaymentGateway
	notifier   gateway.Notifier
}

func NewPaymentService(
	payRepo repositories.PaymentRepository,
	leaseRepo repositories.LeaseRepository,
	tenantRepo repositories.TenantRepository,
	scope *RoleScopeService,
	gw gateway.PaymentGateway,
	notifier gateway.Notifier,
) *PaymentService {
	return &PaymentService{
		payRepo:    payRepo,
		leaseRepo:  leaseRepo,
		tenantRepo: tenantRepo,
		scope:      scope,
		gateway:    gw,
		notifier:   notifier,
	}
}

/* ---------- reads ---------- */

func (s *PaymentService) List(ctx context.Context, actor *models.Actor) ([]*models.Payment, error) {
	return s.payRepo.List(ctx, s.scope.ScopeFor(ctx, actor, ScopePayments))
}

func (s *PaymentService) Get(ctx context.Context, actor *models.Actor, id uuid.UUID) (*models.Payment, error) {
	pay, err := s.payRepo.GetScoped(ctx, id, s.scope.ScopeFor(ctx, actor, ScopePayments))
	if err != nil {
		return nil, err
	}
	if pay == nil {
		return nil, utils.NewNotFoundError("Payment not found", utils.ErrPaymentNotFound)
	}
	return pay, nil
}

/* ---------- intent creation ---------- */

// CreateLeaseIntent opens a gateway intent for the first charge on an
// approved lease (rent + deposit). Only the tenant on the lease may
// call it, and only while the lease awaits payment.
func (s *PaymentService) CreateLeaseIntent(ctx context.Context, actor *models.Actor, leaseID uuid.UUID) (*dtos.CreateIntentResponse, error) {
	lease, err := s.leaseRepo.GetScoped(ctx, leaseID, s.scope.ScopeFor(ctx, actor, ScopeLeases))
	if err != nil {
		return nil, err
	}
	if lease == nil {
		return nil, utils.NewNotFoundError("Lease not found", utils.ErrLeaseNotFound)
	}

	tenant, err := s.requireLeaseTenant(ctx, actor, lease.TenantID)
	if err != nil {
		return nil, err
	}
	if lease.Status != models.LeaseStatusAwaitingPayment {
		return nil, utils.NewValidationError("Lease is not awaiting payment", utils.ErrWrongLeaseStatus)
	}

	amount := lease.RentCents + lease.DepositCents
	return s.createIntent(ctx, tenant, amount, &lease.ID)
}

// CreateRentIntent opens a gateway intent for a regular rent charge on
// the caller's active lease. A lease still awaiting its activation
// payment must go through CreateLeaseIntent, which charges rent plus
// deposit; opening a rent-only intent for it would settle an amount
// confirmation can never reconcile.
func (s *PaymentService) CreateRentIntent(ctx context.Context, actor *models.Actor) (*dtos.CreateIntentResponse, error) {
	tenant, lease, err := s.callerPayableLease(ctx, actor)
	if err != nil {
		return nil, err
	}
	if lease.Status != models.LeaseStatusActive {
		return nil, utils.NewValidationError("Lease is awaiting its activation payment", utils.ErrWrongLeaseStatus)
	}
	return s.createIntent(ctx, tenant, lease.RentCents, &lease.ID)
}

func (s *PaymentService) createIntent(ctx context.Context, tenant *models.Tenant, amountCents int64, leaseID *uuid.UUID) (*dtos.CreateIntentResponse, error) {
	customerID, err := s.gateway.GetOrCreateCustomer(ctx, tenant.GatewayCustomerID, tenant.Email, tenant.FullName())
	if err != nil {
		return nil, utils.NewGatewayError("Could not reach the payment provider, please retry", err)
	}
	if tenant.GatewayCustomerID == nil || *tenant.GatewayCustomerID != customerID {
		if err := s.tenantRepo.SetGatewayCustomerID(ctx, tenant.ID, customerID); err != nil {
			return nil, err
		}
	}

	intent, err := s.gateway.CreatePaymentIntent(ctx, customerID, amountCents, leaseID)
	if err != nil {
		return nil, utils.NewGatewayError("Could not start the payment, please retry", err)
	}
	return &dtos.CreateIntentResponse{ClientSecret: intent.ClientSecret}, nil
}

/* ---------- confirmation ---------- */

// ConfirmLeasePayment settles the activation charge for a specific
// lease: on a confirmed intent matching rent + deposit it records the
// payment, activates the lease and marks the unit rented, atomically.
func (s *PaymentService) ConfirmLeasePayment(ctx context.Context, actor *models.Actor, leaseID uuid.UUID, intentID string) (*models.Payment, error) {
	lease, err := s.leaseRepo.GetByID(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	if lease == nil {
		return nil, utils.NewNotFoundError("Lease not found", utils.ErrLeaseNotFound)
	}
	tenant, err := s.requireLeaseTenant(ctx, actor, lease.TenantID)
	if err != nil {
		return nil, err
	}
	return s.confirm(ctx, tenant, lease, intentID, lease.RentCents+lease.DepositCents)
}

// ConfirmRentPayment settles a rent charge against the caller's active
// lease. Activation charges are confirmed through ConfirmLeasePayment.
func (s *PaymentService) ConfirmRentPayment(ctx context.Context, actor *models.Actor, intentID string) (*models.Payment, error) {
	tenant, lease, err := s.callerPayableLease(ctx, actor)
	if err != nil {
		return nil, err
	}
	if lease.Status != models.LeaseStatusActive {
		return nil, utils.NewValidationError("Lease is awaiting its activation payment", utils.ErrWrongLeaseStatus)
	}
	return s.confirm(ctx, tenant, lease, intentID, lease.RentCents)
}

func (s *PaymentService) confirm(ctx context.Context, tenant *models.Tenant, lease *models.Lease, intentID string, expectedCents int64) (*models.Payment, error) {
	// Duplicate client retries for an already reconciled intent return
	// the existing row and write nothing.
	existing, err := s.payRepo.GetByGatewayTransactionID(ctx, intentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	intent, err := s.gateway.GetPaymentIntent(ctx, intentID)
	if err != nil {
		return nil, utils.NewGatewayError("Could not verify the payment, please retry", err)
	}
	if !intent.Succeeded {
		return nil, utils.NewValidationError("Payment has not succeeded", utils.ErrIntentNotSucceeded)
	}
	if intent.AmountReceivedCents != expectedCents {
		return nil, utils.NewValidationError(
			fmt.Sprintf("Payment amount does not match the expected charge of $%.2f", float64(expectedCents)/100),
			utils.ErrAmountMismatch,
		)
	}

	pay := &models.Payment{
		ID:                   uuid.New(),
		TenantID:             tenant.ID,
		LeaseID:              &lease.ID,
		AmountCents:          intent.AmountReceivedCents,
		PaidAt:               time.Now().UTC(),
		Method:               models.PaymentMethodCard,
		Status:               models.PaymentStatusPaid,
		GatewayTransactionID: &intent.ID,
	}

	if lease.Status == models.LeaseStatusAwaitingPayment {
		// Payment row + lease activation + unit occupancy + tenant
		// binding, all or nothing.
		if _, err := s.leaseRepo.ActivateWithPayment(ctx, lease.ID, pay); err != nil {
			if err == utils.ErrWrongLeaseStatus {
				return nil, utils.NewValidationError("Lease is no longer awaiting payment", err)
			}
			return nil, err
		}
	} else {
		if err := s.payRepo.Create(ctx, pay); err != nil {
			return nil, err
		}
	}

	s.notifier.Notify(
		gateway.NoticePaymentReceipt,
		tenant.FullName(), tenant.Email, tenant.PhoneNumber,
		fmt.Sprintf("We received your payment of $%.2f. Thank you!", float64(pay.AmountCents)/100),
	)
	return pay, nil
}

/* ---------- manual entry ---------- */

// CreateManual records a landlord-entered payment (cash, check). The
// tenant must fall under the caller's payment scope.
func (s *PaymentService) CreateManual(ctx context.Context, actor *models.Actor, req dtos.CreateManualPaymentRequest) (*models.Payment, error) {
	if actor.Kind != models.ActorAdmin && actor.Kind != models.ActorLandlord {
		return nil, utils.NewAuthorizationError("Only a landlord or admin can record manual payments", utils.ErrNotPropertyOwner)
	}
	tenant, err := s.tenantRepo.GetScoped(ctx, req.TenantID, s.scope.ScopeFor(ctx, actor, ScopeTenants))
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, utils.NewNotFoundError("Tenant not found", utils.ErrTenantNotFound)
	}

	status := models.PaymentStatusPaid
	if req.Status != nil {
		status = *req.Status
	}
	paidAt := time.Now().UTC()
	if req.PaidAt != nil {
		paidAt = *req.PaidAt
	}

	pay := &models.Payment{
		ID:          uuid.New(),
		TenantID:    req.TenantID,
		LeaseID:     req.LeaseID,
		AmountCents: req.AmountCents,
		PaidAt:      paidAt,
		Method:      req.Method,
		Status:      status,
	}
	if err := s.payRepo.Create(ctx, pay); err != nil {
		return nil, err
	}
	return pay, nil
}

/* ---------- internals ---------- */

// requireLeaseTenant loads the tenant and verifies the actor is that
// tenant (identity match by email, with the username fallback).
func (s *PaymentService) requireLeaseTenant(ctx context.Context, actor *models.Actor, tenantID uuid.UUID) (*models.Tenant, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, utils.NewNotFoundError("Tenant not found", utils.ErrTenantNotFound)
	}
	if !tenantMatchesActor(tenant, actor) {
		return nil, utils.NewAuthorizationError("Only the tenant on the lease can pay it", utils.ErrNotLeaseTenant)
	}
	return tenant, nil
}

func (s *PaymentService) callerPayableLease(ctx context.Context, actor *models.Actor) (*models.Tenant, *models.Lease, error) {
	tenant, err := s.tenantRepo.GetByEmail(ctx, actor.Email)
	if err != nil {
		return nil, nil, err
	}
	if tenant == nil && actor.Username != "" {
		tenant, err = s.tenantRepo.GetByEmail(ctx, actor.Username)
		if err != nil {
			return nil, nil, err
		}
	}
	if tenant == nil {
		return nil, nil, utils.NewNotFoundError("No tenant record for this account", utils.ErrTenantNotFound)
	}

	lease, err := s.leaseRepo.GetPayableByTenant(ctx, tenant.ID)
	if err != nil {
		return nil, nil, err
	}
	if lease == nil {
		return nil, nil, utils.NewNotFoundError("No payable lease for this tenant", utils.ErrLeaseNotFound)
	}
	return tenant, lease, nil
}
