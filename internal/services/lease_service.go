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

// LeaseService owns the lease lifecycle:
//
//	PENDING -> APPROVED_AWAITING_PAYMENT -> ACTIVE -> {EXPIRED, TERMINATED}
//	PENDING -> DENIED
//
// Activation only ever happens through the PaymentService once a
// gateway charge is confirmed. Every guard failure comes back as a
// distinct AppError with a human-readable reason.
type LeaseService struct {
	leaseRepo  repositories.LeaseRepository
	tenantRepo repositories.TenantRepository
	unitRepo   repositories.UnitRepository
	propRepo   repositories.PropertyRepository
	scope      *RoleScopeService
	occupancy  *OccupancyService
	notifier   gateway.Notifier
}

func NewLeaseService(
	leaseRepo repositories.LeaseRepository,
	tenantRepo repositories.TenantRepository,
	unitRepo repositories.UnitRepository,
	propRepo repositories.PropertyRepository,
	scope *RoleScopeService,
	occupancy *OccupancyService,
	notifier gateway.Notifier,
) *LeaseService {
	return &LeaseService{
		leaseRepo:  leaseRepo,
		tenantRepo: tenantRepo,
		unitRepo:   unitRepo,
		propRepo:   propRepo,
		scope:      scope,
		occupancy:  occupancy,
		notifier:   notifier,
	}
}

/* ---------- reads ---------- */

func (s *LeaseService) List(ctx context.Context, actor *models.Actor) ([]*repositories.LeaseDetail, error) {
	return s.leaseRepo.List(ctx, s.scope.ScopeFor(ctx, actor, ScopeLeases))
}

func (s *LeaseService) Get(ctx context.Context, actor *models.Actor, id uuid.UUID) (*repositories.LeaseDetail, error) {
	lease, err := s.leaseRepo.GetScoped(ctx, id, s.scope.ScopeFor(ctx, actor, ScopeLeases))
	if err != nil {
		return nil, err
	}
	if lease == nil {
		return nil, utils.NewNotFoundError("Lease not found", utils.ErrLeaseNotFound)
	}
	return lease, nil
}

/* ---------- create (PENDING) ---------- */

func (s *LeaseService) Create(ctx context.Context, actor *models.Actor, req dtos.CreateLeaseRequest) (*models.Lease, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, utils.NewNotFoundError("Tenant not found", utils.ErrTenantNotFound)
	}
	// Tenant-role callers can only apply for themselves.
	if actor.Kind == models.ActorTenant && !tenantMatchesActor(tenant, actor) {
		return nil, utils.NewAuthorizationError("You can only create a lease application for yourself", utils.ErrNotLeaseTenant)
	}

	unit, err := s.unitRepo.GetByID(ctx, req.UnitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, utils.NewNotFoundError("Unit not found", utils.ErrUnitNotFound)
	}

	if err := validateLeaseTerms(req.StartDate, req.EndDate, req.RentCents, req.DepositCents); err != nil {
		return nil, err
	}

	// Re-fetched immediately before the insert so the one-lease rule
	// is checked against current state.
	existing, err := s.leaseRepo.GetNonTerminalByTenant(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.NewConflictError("Tenant already has a lease", utils.ErrTenantAlreadyLeased)
	}

	status := models.LeaseStatusPending
	if req.Status != nil {
		if actor.Kind != models.ActorAdmin && actor.Kind != models.ActorLandlord {
			return nil, utils.NewAuthorizationError("Only a landlord or admin can set an initial lease status", utils.ErrNotPropertyOwner)
		}
		status = *req.Status
	}

	lease := &models.Lease{
		ID:           uuid.New(),
		TenantID:     req.TenantID,
		UnitID:       req.UnitID,
		RentCents:    req.RentCents,
		DepositCents: req.DepositCents,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Status:       status,
	}
	if err := s.leaseRepo.Create(ctx, lease); err != nil {
		return nil, err
	}

	// A seeded ACTIVE status counts as a binding; let occupancy catch up.
	if status == models.LeaseStatusActive {
		if err := s.occupancy.Resync(ctx, lease.UnitID); err != nil {
			utils.Logger.WithError(err).Errorf("Failed to resync occupancy for unit %s after lease create", lease.UnitID)
		}
	}
	return lease, nil
}

/* ---------- approve / deny ---------- */

func (s *LeaseService) Approve(ctx context.Context, actor *models.Actor, id uuid.UUID, req dtos.ApproveLeaseRequest) (*models.Lease, error) {
	lease, err := s.requireLandlordOnLease(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := validateLeaseTerms(req.StartDate, req.EndDate, lease.RentCents, req.DepositCents); err != nil {
		return nil, err
	}

	if err := s.leaseRepo.Approve(ctx, id, req.StartDate, req.EndDate, req.DepositCents); err != nil {
		if err == utils.ErrWrongLeaseStatus {
			return nil, utils.NewValidationError("Only a pending lease can be approved", err)
		}
		return nil, err
	}

	updated, err := s.leaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if tenant, tErr := s.tenantRepo.GetByID(ctx, lease.TenantID); tErr == nil && tenant != nil {
		s.notifier.Notify(
			gateway.NoticeLeaseApproved,
			tenant.FullName(), tenant.Email, tenant.PhoneNumber,
			fmt.Sprintf("Your lease application was approved. Please pay the first month's rent plus deposit ($%.2f) to activate your lease.",
				float64(updated.RentCents+updated.DepositCents)/100),
		)
	}
	return updated, nil
}

func (s *LeaseService) Deny(ctx context.Context, actor *models.Actor, id uuid.UUID, req dtos.DenyLeaseRequest) (*models.Lease, error) {
	lease, err := s.requireLandlordOnLease(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if err := s.leaseRepo.Deny(ctx, id, req.Reason); err != nil {
		if err == utils.ErrWrongLeaseStatus {
			return nil, utils.NewValidationError("Only a pending lease can be denied", err)
		}
		return nil, err
	}

	updated, err := s.leaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if tenant, tErr := s.tenantRepo.GetByID(ctx, lease.TenantID); tErr == nil && tenant != nil {
		body := "Your lease application was not approved."
		if req.Reason != nil && *req.Reason != "" {
			body += " Reason: " + *req.Reason
		}
		s.notifier.Notify(gateway.NoticeLeaseDenied, tenant.FullName(), tenant.Email, tenant.PhoneNumber, body)
	}
	return updated, nil
}

/* ---------- update / terminate / delete ---------- */

func (s *LeaseService) Update(ctx context.Context, actor *models.Actor, id uuid.UUID, req dtos.UpdateLeaseRequest) (*models.Lease, error) {
	lease, err := s.requireLandlordOnLease(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if lease.Status.IsTerminal() {
		return nil, utils.NewValidationError("A denied, terminated or expired lease cannot be edited", utils.ErrWrongLeaseStatus)
	}
	if err := validateLeaseTerms(req.StartDate, req.EndDate, req.RentCents, req.DepositCents); err != nil {
		return nil, err
	}

	inUse, err := s.leaseRepo.PairInUse(ctx, req.TenantID, req.UnitID, id)
	if err != nil {
		return nil, err
	}
	if inUse {
		return nil, utils.NewConflictError("Another lease already binds this tenant to this unit", utils.ErrUnitAlreadyLeased)
	}

	if req.TenantID != lease.TenantID {
		other, err := s.leaseRepo.GetNonTerminalByTenant(ctx, req.TenantID)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, utils.NewConflictError("Tenant already has a lease", utils.ErrTenantAlreadyLeased)
		}
	}

	oldUnitID := lease.UnitID
	lease.TenantID = req.TenantID
	lease.UnitID = req.UnitID
	lease.RentCents = req.RentCents
	lease.DepositCents = req.DepositCents
	lease.StartDate = req.StartDate
	lease.EndDate = req.EndDate
	if req.Status != nil {
		lease.Status = *req.Status
	}
	if err := s.leaseRepo.Update(ctx, lease); err != nil {
		return nil, err
	}

	if err := s.occupancy.Resync(ctx, oldUnitID); err != nil {
		utils.Logger.WithError(err).Errorf("Failed to resync occupancy for unit %s", oldUnitID)
	}
	if lease.UnitID != oldUnitID {
		if err := s.occupancy.Resync(ctx, lease.UnitID); err != nil {
			utils.Logger.WithError(err).Errorf("Failed to resync occupancy for unit %s", lease.UnitID)
		}
	}
	return lease, nil
}

func (s *LeaseService) Terminate(ctx context.Context, actor *models.Actor, id uuid.UUID) (*models.Lease, error) {
	lease, err := s.requireLandlordOnLease(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if err := s.leaseRepo.Terminate(ctx, id); err != nil {
		if err == utils.ErrWrongLeaseStatus {
			return nil, utils.NewValidationError("Only an active lease can be terminated", err)
		}
		return nil, err
	}

	if err := s.occupancy.Resync(ctx, lease.UnitID); err != nil {
		utils.Logger.WithError(err).Errorf("Failed to resync occupancy for unit %s after termination", lease.UnitID)
	}
	return s.leaseRepo.GetByID(ctx, id)
}

func (s *LeaseService) Delete(ctx context.Context, actor *models.Actor, id uuid.UUID) error {
	lease, err := s.requireLandlordOnLease(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.leaseRepo.Delete(ctx, id); err != nil {
		return err
	}
	// Occupancy derives from the binding, so deleting a lease frees
	// the unit the same way deleting a tenant does.
	if err := s.occupancy.Resync(ctx, lease.UnitID); err != nil {
		utils.Logger.WithError(err).Errorf("Failed to resync occupancy for unit %s after lease delete", lease.UnitID)
	}
	return nil
}

/* ---------- internals ---------- */

// requireLandlordOnLease fetches the lease and verifies the actor is
// an admin or the landlord whose property owns the lease's unit.
func (s *LeaseService) requireLandlordOnLease(ctx context.Context, actor *models.Actor, id uuid.UUID) (*models.Lease, error) {
	lease, err := s.leaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lease == nil {
		return nil, utils.NewNotFoundError("Lease not found", utils.ErrLeaseNotFound)
	}

	switch actor.Kind {
	case models.ActorAdmin:
		return lease, nil
	case models.ActorLandlord:
		unit, err := s.unitRepo.GetByID(ctx, lease.UnitID)
		if err != nil {
			return nil, err
		}
		if unit == nil {
			return nil, utils.NewNotFoundError("Unit not found", utils.ErrUnitNotFound)
		}
		prop, err := s.propRepo.GetByID(ctx, unit.PropertyID)
		if err != nil {
			return nil, err
		}
		if prop == nil || prop.OwnerUserID.String() != actor.ID {
			return nil, utils.NewAuthorizationError("Only the landlord of this property can manage this lease", utils.ErrNotPropertyOwner)
		}
		return lease, nil
	default:
		return nil, utils.NewAuthorizationError("Only a landlord or admin can manage leases", utils.ErrNotPropertyOwner)
	}
}

// validateLeaseTerms applies the date and money guards shared by
// create, approve and update.
func validateLeaseTerms(start, end time.Time, rentCents, depositCents int64) error {
	if !start.Before(end) {
		return utils.NewValidationError("Lease start date must be before end date", nil)
	}
	if end.Sub(start) < models.MinLeaseDuration {
		return utils.NewValidationError("Lease duration must be at least 6 months", nil)
	}
	if rentCents < 0 {
		return utils.NewValidationError("Rent cannot be negative", nil)
	}
	if depositCents < 0 {
		return utils.NewValidationError("Deposit cannot be negative", nil)
	}
	return nil
}

func tenantMatchesActor(tenant *models.Tenant, actor *models.Actor) bool {
	if actor == nil || tenant == nil {
		return false
	}
	if equalFold(tenant.Email, actor.Email) {
		return true
	}
	return actor.Username != "" && equalFold(tenant.Email, actor.Username)
}
