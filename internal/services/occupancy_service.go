package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/DylanGreen12/TenantTrack-sub000/internal/repositories"
	"github.com/DylanGreen12/TenantTrack-sub000/internal/utils"
)

// OccupancyService keeps unit occupancy consistent with the tenant and
// lease tables. Occupancy is derived from a single authoritative query
// ("does an active binding reference this unit"), so every caller that
// touches a binding just asks for a resync instead of pushing a status
// imperatively.
type OccupancyService struct {
	unitRepo repositories.UnitRepository
}

func NewOccupancyService(unitRepo repositories.UnitRepository) *OccupancyService {
	return &OccupancyService{unitRepo: unitRepo}
}

// Resync recomputes AVAILABLE/RENTED for one unit. Units held in
// MAINTENANCE or UNAVAILABLE keep their manual status.
func (s *OccupancyService) Resync(ctx context.Context, unitID uuid.UUID) error {
	return s.unitRepo.SyncOccupancy(ctx, unitID)
}

// ResyncAll resyncs a batch of units, logging rather than aborting on
// individual failures. Used by the lease expiry sweep.
func (s *OccupancyService) ResyncAll(ctx context.Context, unitIDs []uuid.UUID) {
	for _, id := range unitIDs {
		if err := s.unitRepo.SyncOccupancy(ctx, id); err != nil {
			utils.Logger.WithError(err).Errorf("Failed to resync occupancy for unit %s", id)
		}
	}
}
