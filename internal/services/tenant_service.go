package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/DylanGreen12/TenantTrack-sub000/internal/dtos"
	"github.com/DylanGreen12/TenantTrack-sub000/internal/models"
	"github.com/DylanGreen12/TenantTrack-sub000/internal/repositories"
	"github.com/DylanGreen12/TenantTrack-sub000/internal/utils"
)

type TenantService struct {
	tenantRepo repositories.TenantRepository
	unitRepo   repositories.UnitRepository
	scope      *RoleScopeService
	occupancy  *OccupancyService
}

func NewTenantService(
	tenantRepo repositories.TenantRepository,
	unitRepo repositories.UnitRepository,
	scope *RoleScopeService,
	occupancy *OccupancyService,
) *TenantService {
	return &TenantService{
		tenantRepo: tenantRepo,
		unitRepo:   unitRepo,
		scope:      scope,
		occupancy:  occupancy,
	}
}

/* ---------- reads ---------- */

func (s *TenantService) List(ctx context.Context, actor *models.Actor) ([]*repositories.TenantDetail, error) {
	return s.tenantRepo.List(ctx, s.scope.ScopeFor(ctx, actor, ScopeTenants))
}

func (s *TenantService) Get(ctx context.Context, actor *models.Actor, id uuid.UUID) (*repositories.TenantDetail, error) {
	tenant, err := s.tenantRepo.GetScoped(ctx, id, s.scope.ScopeFor(ctx, actor, ScopeTenants))
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, utils.NewNotFoundError("Tenant not found", utils.ErrTenantNotFound)
	}
	return tenant, nil
}

/* ---------- create (rental application) ---------- */

func (s *TenantService) Create(ctx context.Context, actor *models.Actor, req dtos.CreateTenantRequest) (*models.Tenant, error) {
	email := req.Email
	// Applicants always apply as themselves.
	if actor.Kind == models.ActorTenant {
		email = actor.Email
	}

	if req.UnitID != nil {
		unit, err := s.unitRepo.GetByID(ctx, *req.UnitID)
		if err != nil {
			return nil, err
		}
		if unit == nil {
			return nil, utils.NewNotFoundError("Unit not found", utils.ErrUnitNotFound)
		}
	}

	tenant := &models.Tenant{
		ID:          uuid.New(),
		UnitID:      req.UnitID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       email,
		PhoneNumber: req.PhoneNumber,
	}
	if err := s.tenantRepo.Create(ctx, tenant); err != nil {
		if err == utils.ErrDuplicateTenantEmail {
			return nil, utils.NewConflictError("A tenant with this email already exists", err)
		}
		return nil, err
	}

	if tenant.UnitID != nil {
		if err := s.occupancy.Resync(ctx, *tenant.UnitID); err != nil {
			utils.Logger.WithError(err).Errorf("Failed to resync occupancy for unit %s", *tenant.UnitID)
		}
	}
	return tenant, nil
}

/* ---------- update (incl. unit moves) ---------- */

func (s *TenantService) Update(ctx context.Context, actor *models.Actor, id uuid.UUID, req dtos.UpdateTenantRequest) (*models.Tenant, error) {
	if actor.Kind != models.ActorAdmin && actor.Kind != models.ActorLandlord {
		return nil, utils.NewAuthorizationError("Only a landlord or admin can edit tenants", utils.ErrNotPropertyOwner)
	}
	existing, err := s.tenantRepo.GetScoped(ctx, id, s.scope.ScopeFor(ctx, actor, ScopeTenants))
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, utils.NewNotFoundError("Tenant not found", utils.ErrTenantNotFound)
	}

	if req.UnitID != nil {
		unit, err := s.unitRepo.GetByID(ctx, *req.UnitID)
		if err != nil {
			return nil, err
		}
		if unit == nil {
			return nil, utils.NewNotFoundError("Unit not found", utils.ErrUnitNotFound)
		}
	}

	oldUnitID := existing.UnitID
	tenant := &existing.Tenant
	tenant.UnitID = req.UnitID
	tenant.FirstName = req.FirstName
	tenant.LastName = req.LastName
	tenant.Email = req.Email
	tenant.PhoneNumber = req.PhoneNumber
	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		if err == utils.ErrDuplicateTenantEmail {
			return nil, utils.NewConflictError("A tenant with this email already exists", err)
		}
		return nil, err
	}

	// A move frees the old unit and occupies the new one.
	if oldUnitID != nil {
		if err := s.occupancy.Resync(ctx, *oldUnitID); err != nil {
			utils.Logger.WithError(err).Errorf("Failed to resync occupancy for unit %s", *oldUnitID)
		}
	}
	if tenant.UnitID != nil && (oldUnitID == nil || *tenant.UnitID != *oldUnitID) {
		if err := s.occupancy.Resync(ctx, *tenant.UnitID); err != nil {
			utils.Logger.WithError(err).Errorf("Failed to resync occupancy for unit %s", *tenant.UnitID)
		}
	}
	return tenant, nil
}

/* ---------- delete ---------- */

func (s *TenantService) Delete(ctx context.Context, actor *models.Actor, id uuid.UUID) error {
	if actor.Kind != models.ActorAdmin && actor.Kind != models.ActorLandlord {
		return utils.NewAuthorizationError("Only a landlord or admin can delete tenants", utils.ErrNotPropertyOwner)
	}
	existing, err := s.tenantRepo.GetScoped(ctx, id, s.scope.ScopeFor(ctx, actor, ScopeTenants))
	if err != nil {
		return err
	}
	if existing == nil {
		return utils.NewNotFoundError("Tenant not found", utils.ErrTenantNotFound)
	}

	hasRecords, err := s.tenantRepo.HasRecords(ctx, id)
	if err != nil {
		return err
	}
	if hasRecords {
		return utils.NewConflictError("Tenant has payments, leases or maintenance requests and cannot be deleted", utils.ErrTenantHasRecords)
	}

	if err := s.tenantRepo.Delete(ctx, id); err != nil {
		return err
	}
	if existing.UnitID != nil {
		if err := s.occupancy.Resync(ctx, *existing.UnitID); err != nil {
			utils.Logger.WithError(err).Errorf("Failed to resync occupancy for unit %s after tenant delete", *existing.UnitID)
		}
	}
	return nil
}
