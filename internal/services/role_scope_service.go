package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/DylanGreen12/TenantTrack-sub000/internal/models"
	"github.com/DylanGreen12/TenantTrack-sub000/internal/repositories"
	"github.com/DylanGreen12/TenantTrack-sub000/internal/utils"
)

// ScopeEntity names the four entity kinds subject to row-level
// scoping.
type ScopeEntity int

const (
	ScopeTenants ScopeEntity = iota
	ScopeLeases
	ScopePayments
	ScopeMaintenanceRequests
)

// RoleScopeService turns the caller's actor kind into the row-level
// filter every list/detail query runs through. It never fails: an
// actor that cannot be mapped to a slice of the data degrades to a
// match-nothing filter, so an unknown role sees an empty list rather
// than an error.
type RoleScopeService struct {
	staffRepo repositories.StaffRepository
}

func NewRoleScopeService(staffRepo repositories.StaffRepository) *RoleScopeService {
	return &RoleScopeService{staffRepo: staffRepo}
}

// ScopeFor resolves the filter for one request. Unauthenticated
// callers get the match-nothing filter; the routes are additionally
// behind the auth middleware, so in practice they are rejected with
// 401 before reaching here.
func (s *RoleScopeService) ScopeFor(ctx context.Context, actor *models.Actor, entity ScopeEntity) repositories.ScopeFilter {
	if actor == nil {
		return repositories.MatchNothing()
	}

	switch actor.Kind {
	case models.ActorAdmin:
		return repositories.Unrestricted()

	case models.ActorLandlord:
		ownerID, err := uuid.Parse(actor.ID)
		if err != nil {
			utils.Logger.Warnf("Landlord actor with non-uuid id %q; scoping to nothing", actor.ID)
			return repositories.MatchNothing()
		}
		return repositories.OwnedBy(ownerID)

	case models.ActorStaff:
		// Tenant listings are unrestricted for staff so they can look
		// up any requester; everything else is limited to the property
		// their staff record assigns them to.
		if entity == ScopeTenants {
			return repositories.Unrestricted()
		}
		staff, err := s.staffRepo.GetByEmail(ctx, actor.Email)
		if err != nil {
			utils.Logger.WithError(err).Warnf("Staff scope lookup failed for %s; scoping to nothing", actor.Email)
			return repositories.MatchNothing()
		}
		if staff == nil {
			return repositories.MatchNothing()
		}
		return repositories.OnProperty(staff.PropertyID)

	case models.ActorTenant:
		emails := make([]string, 0, 2)
		if actor.Email != "" {
			emails = append(emails, actor.Email)
		}
		// Accounts created before email capture carry the tenant email
		// in the username field.
		if actor.Username != "" && actor.Username != actor.Email {
			emails = append(emails, actor.Username)
		}
		if len(emails) == 0 {
			return repositories.MatchNothing()
		}
		return repositories.TenantEmails(emails)

	default:
		return repositories.MatchNothing()
	}
}
