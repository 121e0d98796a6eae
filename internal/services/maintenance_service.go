package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/DylanGreen12/TenantTrack-sub000/internal/dtos"
	"github.com/DylanGreen12/TenantTrack-sub000/internal/models"
	"github.com/DylanGreen12/TenantTrack-sub000/internal/repositories"
	"github.com/DylanGreen12/TenantTrack-sub000/internal/utils"
)

type MaintenanceService struct {
	reqRepo    repositories.MaintenanceRequestRepository
	tenantRepo repositories.TenantRepository
	staffRepo  repositories.StaffRepository
	scope      *RoleScopeService
}

func NewMaintenanceService(
	reqRepo repositories.MaintenanceRequestRepository,
	tenantRepo repositories.TenantRepository,
	staffRepo repositories.StaffRepository,
	scope *RoleScopeService,
) *MaintenanceService {
	return &MaintenanceService{
		reqRepo:    reqRepo,
		tenantRepo: tenantRepo,
		staffRepo:  staffRepo,
		scope:      scope,
	}
}

/* ---------- reads ---------- */

func (s *MaintenanceService) List(ctx context.Context, actor *models.Actor) ([]*models.MaintenanceRequest, error) {
	return s.reqRepo.List(ctx, s.scope.ScopeFor(ctx, actor, ScopeMaintenanceRequests))
}

func (s *MaintenanceService) Get(ctx context.Context, actor *models.Actor, id uuid.UUID) (*models.MaintenanceRequest, error) {
	req, err := s.reqRepo.GetScoped(ctx, id, s.scope.ScopeFor(ctx, actor, ScopeMaintenanceRequests))
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, utils.NewNotFoundError("Maintenance request not found", nil)
	}
	return req, nil
}

/* ---------- create ---------- */

func (s *MaintenanceService) Create(ctx context.Context, actor *models.Actor, req dtos.CreateMaintenanceRequestRequest) (*models.MaintenanceRequest, error) {
	var tenant *models.Tenant
	var err error

	if actor.Kind == models.ActorTenant {
		tenant, err = s.tenantRepo.GetByEmail(ctx, actor.Email)
		if err != nil {
			return nil, err
		}
		if tenant == nil && actor.Username != "" {
			tenant, err = s.tenantRepo.GetByEmail(ctx, actor.Username)
			if err != nil {
				return nil, err
			}
		}
		if tenant == nil {
			return nil, utils.NewNotFoundError("No tenant record for this account", utils.ErrTenantNotFound)
		}
	} else {
		if req.TenantID == nil {
			return nil, utils.NewValidationError("tenant_id is required", nil)
		}
		tenant, err = s.tenantRepo.GetByID(ctx, *req.TenantID)
		if err != nil {
			return nil, err
		}
		if tenant == nil {
			return nil, utils.NewNotFoundError("Tenant not found", utils.ErrTenantNotFound)
		}
	}

	m := &models.MaintenanceRequest{
		ID:          uuid.New(),
		TenantID:    tenant.ID,
		Description: req.Description,
		Status:      models.MaintenanceStatusOpen,
		Priority:    req.Priority,
	}
	if err := s.reqRepo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

/* ---------- update / delete ---------- */

func (s *MaintenanceService) Update(ctx context.Context, actor *models.Actor, id uuid.UUID, req dtos.UpdateMaintenanceRequestRequest) (*models.MaintenanceRequest, error) {
	existing, err := s.reqRepo.GetScoped(ctx, id, s.scope.ScopeFor(ctx, actor, ScopeMaintenanceRequests))
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, utils.NewNotFoundError("Maintenance request not found", nil)
	}

	// Tenants may edit the description or cancel their own request,
	// but status progression and assignment are staff-side actions.
	if actor.Kind == models.ActorTenant {
		statusChanged := req.Status != existing.Status && req.Status != models.MaintenanceStatusCanceled
		if statusChanged || req.AssignedStaffID != nil {
			return nil, utils.NewAuthorizationError("Tenants can only edit or cancel their own requests", nil)
		}
	}

	if req.AssignedStaffID != nil {
		staff, err := s.staffRepo.GetByID(ctx, *req.AssignedStaffID)
		if err != nil {
			return nil, err
		}
		if staff == nil {
			return nil, utils.NewNotFoundError("Staff member not found", nil)
		}
	}

	existing.Description = req.Description
	existing.Status = req.Status
	existing.Priority = req.Priority
	existing.AssignedStaffID = req.AssignedStaffID
	if err := s.reqRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *MaintenanceService) Delete(ctx context.Context, actor *models.Actor, id uuid.UUID) error {
	if actor.Kind != models.ActorAdmin && actor.Kind != models.ActorLandlord {
		return utils.NewAuthorizationError("Only a landlord or admin can delete maintenance requests", utils.ErrNotPropertyOwner)
	}
	existing, err := s.reqRepo.GetScoped(ctx, id, s.scope.ScopeFor(ctx, actor, ScopeMaintenanceRequests))
	if err != nil {
		return err
	}
	if existing == nil {
		return utils.NewNotFoundError("Maintenance request not found", nil)
	}
	return s.reqRepo.Delete(ctx, id)
}
