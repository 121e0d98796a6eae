package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/DylanGreen12/TenantTrack-sub000/internal/models"
)

func TestLeaseExpiry_FlipsPastDueLeasesAndFreesUnits(t *testing.T) {
	f := newFixture()
	svc := NewLeaseExpiryService(f.leases, f.occupancy)
	_, unitID, tenantID := f.seedProperty(uuid.New(), "terry@example.com")

	pastDue := uuid.New()
	f.st.leases[pastDue] = &models.Lease{
		ID:       pastDue,
		TenantID: tenantID,
		UnitID:   unitID,
		EndDate:  time.Now().UTC().Add(-24 * time.Hour),
		Status:   models.LeaseStatusActive,
	}
	f.st.units[unitID].Status = models.UnitStatusRented

	require.NoError(t, svc.RunOnce(context.Background()))
	require.Equal(t, models.LeaseStatusExpired, f.st.leases[pastDue].Status)
	require.Equal(t, models.UnitStatusAvailable, f.st.units[unitID].Status)
}

func TestLeaseExpiry_LeavesCurrentLeasesAlone(t *testing.T) {
	f := newFixture()
	svc := NewLeaseExpiryService(f.leases, f.occupancy)
	_, unitID, tenantID := f.seedProperty(uuid.New(), "terry@example.com")

	current := uuid.New()
	f.st.leases[current] = &models.Lease{
		ID:       current,
		TenantID: tenantID,
		UnitID:   unitID,
		EndDate:  time.Now().UTC().AddDate(0, 6, 0),
		Status:   models.LeaseStatusActive,
	}
	f.st.units[unitID].Status = models.UnitStatusRented

	require.NoError(t, svc.RunOnce(context.Background()))
	require.Equal(t, models.LeaseStatusActive, f.st.leases[current].Status)
	require.Equal(t, models.UnitStatusRented, f.st.units[unitID].Status)
}
