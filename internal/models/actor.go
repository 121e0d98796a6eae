package models

import "fmt"

// ActorKind is the closed set of caller identities the API recognizes.
// The auth middleware maps token role strings to this enum once, so the
// rest of the code never compares role strings.
type ActorKind int

const (
	ActorAdmin ActorKind = iota
	ActorLandlord
	ActorStaff
	ActorTenant
)

func (k ActorKind) String() string {
	switch k {
	case ActorAdmin:
		return "admin"
	case ActorLandlord:
		return "landlord"
	case ActorStaff:
		return "staff"
	case ActorTenant:
		return "tenant"
	default:
		return "unknown"
	}
}

// ParseActorKind converts a token role string to the enum.
func ParseActorKind(s string) (ActorKind, error) {
	switch s {
	case "Admin", "admin":
		return ActorAdmin, nil
	case "Landlord", "landlord":
		return ActorLandlord, nil
	case "Maintenance", "staff":
		return ActorStaff, nil
	case "Tenant", "tenant":
		return ActorTenant, nil
	default:
		return -1, fmt.Errorf("invalid role: %q", s)
	}
}

// Actor is the authenticated caller as seen by the core. Built by the
// auth middleware from verified JWT claims and stored in the request
// context.
type Actor struct {
	ID       string
	Email    string
	Username string
	Kind     ActorKind
}
