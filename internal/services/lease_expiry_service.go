package services

import (
	"context"
	"time"

	"github.com/DylanGreen12/TenantTrack-sub000/internal/repositories"
	"github.com/DylanGreen12/TenantTrack-sub000/internal/utils"
)

// LeaseExpiryService flips ACTIVE leases past their end date to
// EXPIRED and resyncs the freed units. Runs nightly from the cron
// scheduler wired in main.
type LeaseExpiryService struct {
	leaseRepo repositories.LeaseRepository
	occupancy *OccupancyService
}

func NewLeaseExpiryService(leaseRepo repositories.LeaseRepository, occupancy *OccupancyService) *LeaseExpiryService {
	return &LeaseExpiryService{leaseRepo: leaseRepo, occupancy: occupancy}
}

func (s *LeaseExpiryService) RunOnce(ctx context.Context) error {
	unitIDs, err := s.leaseRepo.ExpireDue(ctx, time.Now().UTC())
	if err != nil {
		return err
	}
	if len(unitIDs) > 0 {
		utils.Logger.Infof("Expired %d lease(s); resyncing occupancy", len(unitIDs))
		s.occupancy.ResyncAll(ctx, unitIDs)
	}
	return nil
}
