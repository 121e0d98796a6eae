package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/DylanGreen12/TenantTrack-sub000/internal/models"
	"github.com/DylanGreen12/TenantTrack-sub000/internal/repositories"
)

func TestScopeFor_AdminSeesEverything(t *testing.T) {
	f := newFixture()

	scope := f.scopeSvc.ScopeFor(context.Background(), adminActor(), ScopeLeases)
	require.Equal(t, repositories.ScopeAll, scope.Kind)
}

func TestScopeFor_LandlordScopedToOwnedProperties(t *testing.T) {
	f := newFixture()
	ownerID := uuid.New()

	scope := f.scopeSvc.ScopeFor(context.Background(), landlordActor(ownerID), ScopePayments)
	require.Equal(t, repositories.ScopeByPropertyOwner, scope.Kind)
	require.Equal(t, ownerID, scope.OwnerUserID)
}

func TestScopeFor_LandlordWithBadIDSeesNothing(t *testing.T) {
	f := newFixture()
	actor := &models.Actor{ID: "not-a-uuid", Email: "landlord@example.com", Kind: models.ActorLandlord}

	scope := f.scopeSvc.ScopeFor(context.Background(), actor, ScopeLeases)
	require.Equal(t, repositories.ScopeNone, scope.Kind)
}

func TestScopeFor_StaffScopedToAssignedProperty(t *testing.T) {
	f := newFixture()
	propID := uuid.New()
	f.st.staff[uuid.New()] = &models.Staff{
		ID:         uuid.New(),
		PropertyID: propID,
		Email:      "worker@example.com",
		Position:   "Maintenance",
	}

	scope := f.scopeSvc.ScopeFor(context.Background(), staffActor("worker@example.com"), ScopeMaintenanceRequests)
	require.Equal(t, repositories.ScopeByProperty, scope.Kind)
	require.Equal(t, propID, scope.PropertyID)
}

func TestScopeFor_StaffCanLookUpAnyTenant(t *testing.T) {
	f := newFixture()

	scope := f.scopeSvc.ScopeFor(context.Background(), staffActor("worker@example.com"), ScopeTenants)
	require.Equal(t, repositories.ScopeAll, scope.Kind)
}

// A staff caller with no staff record must see empty listings, not an
// error and not everything.
func TestScopeFor_StaffWithoutRecordSeesEmptyList(t *testing.T) {
	f := newFixture()
	ownerID := uuid.New()
	_, unitID, tenantID := f.seedProperty(ownerID, "terry@example.com")
	f.st.leases[uuid.New()] = &models.Lease{
		ID:       uuid.New(),
		TenantID: tenantID,
		UnitID:   unitID,
		Status:   models.LeaseStatusActive,
	}

	scope := f.scopeSvc.ScopeFor(context.Background(), staffActor("ghost@example.com"), ScopeLeases)
	require.Equal(t, repositories.ScopeNone, scope.Kind)

	leases, err := f.leaseSvc.List(context.Background(), staffActor("ghost@example.com"))
	require.NoError(t, err)
	require.Empty(t, leases)
}

func TestScopeFor_TenantScopedToOwnEmails(t *testing.T) {
	f := newFixture()
	actor := &models.Actor{
		ID:       uuid.NewString(),
		Email:    "terry@example.com",
		Username: "terry.legacy@example.com",
		Kind:     models.ActorTenant,
	}

	scope := f.scopeSvc.ScopeFor(context.Background(), actor, ScopeTenants)
	require.Equal(t, repositories.ScopeByTenantEmail, scope.Kind)
	require.ElementsMatch(t, []string{"terry@example.com", "terry.legacy@example.com"}, scope.Emails)
}

func TestScopeFor_NilActorSeesNothing(t *testing.T) {
	f := newFixture()

	scope := f.scopeSvc.ScopeFor(context.Background(), nil, ScopeLeases)
	require.Equal(t, repositories.ScopeNone, scope.Kind)
}
