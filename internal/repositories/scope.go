package repositories

import "github.com/google/uuid"

// ScopeKind enumerates the row-level filters the scope resolver can
// hand to a repository. A closed set: repositories switch on it when
// building their WHERE clauses, so there are no free-form predicate
// strings crossing package boundaries.
type ScopeKind int

const (
	// ScopeAll matches every row.
	ScopeAll ScopeKind = iota
	// ScopeNone matches no rows. Listings return empty, lookups 404.
	ScopeNone
	// ScopeByPropertyOwner matches rows whose unit belongs to a
	// property owned by OwnerUserID.
	ScopeByPropertyOwner
	// ScopeByProperty matches rows whose unit belongs to PropertyID.
	ScopeByProperty
	// ScopeByTenantEmail matches rows belonging to the tenant whose
	// lowercased email is in Emails.
	ScopeByTenantEmail
)

// ScopeFilter narrows list/detail queries to the rows a caller may
// see or mutate.
type ScopeFilter struct {
	Kind        ScopeKind
	OwnerUserID uuid.UUID
	PropertyID  uuid.UUID
	Emails      []string
}

func Unrestricted() ScopeFilter { return ScopeFilter{Kind: ScopeAll} }

func MatchNothing() ScopeFilter { return ScopeFilter{Kind: ScopeNone} }

func OwnedBy(ownerUserID uuid.UUID) ScopeFilter {
	return ScopeFilter{Kind: ScopeByPropertyOwner, OwnerUserID: ownerUserID}
}

func OnProperty(propertyID uuid.UUID) ScopeFilter {
	return ScopeFilter{Kind: ScopeByProperty, PropertyID: propertyID}
}

func TenantEmails(emails []string) ScopeFilter {
	return ScopeFilter{Kind: ScopeByTenantEmail, Emails: emails}
}
