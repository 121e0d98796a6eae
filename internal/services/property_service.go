package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/DylanGreen12/TenantTrack-sub000/internal/dtos"
	"github.com/DylanGreen12/TenantTrack-sub000/internal/models"
	"github.com/DylanGreen12/TenantTrack-sub000/internal/repositories"
	"github.com/DylanGreen12/TenantTrack-sub000/internal/utils"
)

// PropertyService covers the landlord-facing CRUD for properties,
// units and staff. No state machine here; the interesting rules are
// ownership checks and the reference guards on delete.
type PropertyService struct {
	propRepo  repositories.PropertyRepository
	unitRepo  repositories.UnitRepository
	staffRepo repositories.StaffRepository
	occupancy *OccupancyService
}

func NewPropertyService(
	propRepo repositories.PropertyRepository,
	unitRepo repositories.UnitRepository,
	staffRepo repositories.StaffRepository,
	occupancy *OccupancyService,
) *PropertyService {
	return &PropertyService{
		propRepo:  propRepo,
		unitRepo:  unitRepo,
		staffRepo: staffRepo,
		occupancy: occupancy,
	}
}

/* ---------- properties ---------- */

func (s *PropertyService) ListProperties(ctx context.Context, actor *models.Actor) ([]*models.Property, error) {
	switch actor.Kind {
	case models.ActorAdmin:
		return s.propRepo.ListAll(ctx)
	case models.ActorLandlord:
		ownerID, err := uuid.Parse(actor.ID)
		if err != nil {
			return nil, utils.NewAuthorizationError("Invalid account id", err)
		}
		return s.propRepo.ListByOwnerUserID(ctx, ownerID)
	default:
		return nil, utils.NewAuthorizationError("Only a landlord or admin can list properties", utils.ErrNotPropertyOwner)
	}
}

func (s *PropertyService) CreateProperty(ctx context.Context, actor *models.Actor, req dtos.CreatePropertyRequest) (*models.Property, error) {
	if actor.Kind != models.ActorAdmin && actor.Kind != models.ActorLandlord {
		return nil, utils.NewAuthorizationError("Only a landlord or admin can create properties", utils.ErrNotPropertyOwner)
	}
	ownerID, err := uuid.Parse(actor.ID)
	if err != nil {
		return nil, utils.NewAuthorizationError("Invalid account id", err)
	}

	p := &models.Property{
		ID:           uuid.New(),
		OwnerUserID:  ownerID,
		PropertyName: req.PropertyName,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
	}
	if err := s.propRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PropertyService) UpdateProperty(ctx context.Context, actor *models.Actor, id uuid.UUID, req dtos.UpdatePropertyRequest) (*models.Property, error) {
	p, err := s.requireOwnedProperty(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	p.PropertyName = req.PropertyName
	p.Address = req.Address
	p.City = req.City
	p.State = req.State
	p.ZipCode = req.ZipCode
	if err := s.propRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PropertyService) DeleteProperty(ctx context.Context, actor *models.Actor, id uuid.UUID) error {
	if _, err := s.requireOwnedProperty(ctx, actor, id); err != nil {
		return err
	}
	n, err := s.propRepo.CountUnits(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return utils.NewConflictError("Property still has units and cannot be deleted", nil)
	}
	return s.propRepo.Delete(ctx, id)
}

/* ---------- units ---------- */

func (s *PropertyService) ListUnits(ctx context.Context, actor *models.Actor, propertyID uuid.UUID) ([]*models.Unit, error) {
	if _, err := s.requireOwnedProperty(ctx, actor, propertyID); err != nil {
		return nil, err
	}
	return s.unitRepo.ListByPropertyID(ctx, propertyID)
}

func (s *PropertyService) CreateUnit(ctx context.Context, actor *models.Actor, propertyID uuid.UUID, req dtos.CreateUnitRequest) (*models.Unit, error) {
	if _, err := s.requireOwnedProperty(ctx, actor, propertyID); err != nil {
		return nil, err
	}

	u := &models.Unit{
		ID:         uuid.New(),
		PropertyID: propertyID,
		UnitNumber: req.UnitNumber,
		RentCents:  req.RentCents,
		Status:     models.UnitStatusAvailable,
	}
	if err := s.unitRepo.Create(ctx, u); err != nil {
		if err == utils.ErrDuplicateUnitNumber {
			return nil, utils.NewConflictError("A unit with this number already exists on the property", err)
		}
		return nil, err
	}
	return u, nil
}

func (s *PropertyService) UpdateUnit(ctx context.Context, actor *models.Actor, unitID uuid.UUID, req dtos.UpdateUnitRequest) (*models.Unit, error) {
	u, err := s.unitRepo.GetByID(ctx, unitID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, utils.NewNotFoundError("Unit not found", utils.ErrUnitNotFound)
	}
	if _, err := s.requireOwnedProperty(ctx, actor, u.PropertyID); err != nil {
		return nil, err
	}

	u.UnitNumber = req.UnitNumber
	u.RentCents = req.RentCents
	u.Status = req.Status
	if err := s.unitRepo.Update(ctx, u); err != nil {
		if err == utils.ErrDuplicateUnitNumber {
			return nil, utils.NewConflictError("A unit with this number already exists on the property", err)
		}
		return nil, err
	}

	// A manual flip back to AVAILABLE/RENTED must still agree with the
	// bindings, so re-derive it.
	if u.Status == models.UnitStatusAvailable || u.Status == models.UnitStatusRented {
		if err := s.occupancy.Resync(ctx, u.ID); err != nil {
			utils.Logger.WithError(err).Errorf("Failed to resync occupancy for unit %s", u.ID)
		}
	}
	return u, nil
}

func (s *PropertyService) DeleteUnit(ctx context.Context, actor *models.Actor, unitID uuid.UUID) error {
	u, err := s.unitRepo.GetByID(ctx, unitID)
	if err != nil {
		return err
	}
	if u == nil {
		return utils.NewNotFoundError("Unit not found", utils.ErrUnitNotFound)
	}
	if _, err := s.requireOwnedProperty(ctx, actor, u.PropertyID); err != nil {
		return err
	}

	n, err := s.unitRepo.CountTenants(ctx, unitID)
	if err != nil {
		return err
	}
	if n > 0 {
		return utils.NewConflictError("Unit still has tenants and cannot be deleted", nil)
	}
	return s.unitRepo.Delete(ctx, unitID)
}

/* ---------- staff ---------- */

func (s *PropertyService) ListStaff(ctx context.Context, actor *models.Actor) ([]*models.Staff, error) {
	switch actor.Kind {
	case models.ActorAdmin:
		return s.staffRepo.ListAll(ctx)
	case models.ActorLandlord:
		ownerID, err := uuid.Parse(actor.ID)
		if err != nil {
			return nil, utils.NewAuthorizationError("Invalid account id", err)
		}
		props, err := s.propRepo.ListByOwnerUserID(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		var out []*models.Staff
		for _, p := range props {
			staff, err := s.staffRepo.ListByPropertyID(ctx, p.ID)
			if err != nil {
				return nil, err
			}
			out = append(out, staff...)
		}
		return out, nil
	default:
		return nil, utils.NewAuthorizationError("Only a landlord or admin can list staff", utils.ErrNotPropertyOwner)
	}
}

func (s *PropertyService) CreateStaff(ctx context.Context, actor *models.Actor, req dtos.CreateStaffRequest) (*models.Staff, error) {
	if _, err := s.requireOwnedProperty(ctx, actor, req.PropertyID); err != nil {
		return nil, err
	}

	st := &models.Staff{
		ID:          uuid.New(),
		PropertyID:  req.PropertyID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Position:    req.Position,
	}
	if err := s.staffRepo.Create(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *PropertyService) UpdateStaff(ctx context.Context, actor *models.Actor, id uuid.UUID, req dtos.UpdateStaffRequest) (*models.Staff, error) {
	st, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, utils.NewNotFoundError("Staff member not found", nil)
	}
	if _, err := s.requireOwnedProperty(ctx, actor, st.PropertyID); err != nil {
		return nil, err
	}
	if _, err := s.requireOwnedProperty(ctx, actor, req.PropertyID); err != nil {
		return nil, err
	}

	st.PropertyID = req.PropertyID
	st.FirstName = req.FirstName
	st.LastName = req.LastName
	st.Email = req.Email
	st.PhoneNumber = req.PhoneNumber
	st.Position = req.Position
	if err := s.staffRepo.Update(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *PropertyService) DeleteStaff(ctx context.Context, actor *models.Actor, id uuid.UUID) error {
	st, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if st == nil {
		return utils.NewNotFoundError("Staff member not found", nil)
	}
	if _, err := s.requireOwnedProperty(ctx, actor, st.PropertyID); err != nil {
		return err
	}
	return s.staffRepo.Delete(ctx, id)
}

/* ---------- internals ---------- */

func (s *PropertyService) requireOwnedProperty(ctx context.Context, actor *models.Actor, id uuid.UUID) (*models.Property, error) {
	p, err := s.propRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, utils.NewNotFoundError("Property not found", nil)
	}

	switch actor.Kind {
	case models.ActorAdmin:
		return p, nil
	case models.ActorLandlord:
		if p.OwnerUserID.String() != actor.ID {
			return nil, utils.NewAuthorizationError("Only the landlord of this property can manage it", utils.ErrNotPropertyOwner)
		}
		return p, nil
	default:
		return nil, utils.NewAuthorizationError("Only a landlord or admin can manage properties", utils.ErrNotPropertyOwner)
	}
}
