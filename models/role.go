package models

// Role is the user-level role carried in credentials and tokens.
type Role string

const (
	RoleDoctor  Role = "DOCTOR"
	RolePatient Role = "PATIENT"
	RoleAdmin   Role = "ADMIN"
)

// ProfileKind ties a role to the collection and cache namespace holding its
// profile records. Role dispatch goes through this table, not ad hoc
// string comparisons.
type ProfileKind struct {
	Role       Role
	Collection string
	CacheKey   string
}

var profileKinds = map[Role]ProfileKind{
	RoleDoctor:  {Role: RoleDoctor, Collection: "doctors", CacheKey: "DOCTOR:"},
	RolePatient: {Role: RolePatient, Collection: "patients", CacheKey: "PATIENT:"},
	RoleAdmin:   {Role: RoleAdmin, Collection: "admins", CacheKey: "ADMIN:"},
}

func ProfileKindFor(role Role) (ProfileKind, bool) {
	kind, ok := profileKinds[role]
	return kind, ok
}

// CacheKey builds the cache key for a role's profile record.
func CacheKey(role Role, userId string) string {
	return profileKinds[role].CacheKey + userId
}

func ParseRole(raw string) (Role, bool) {
	role := Role(raw)
	_, ok := profileKinds[role]
	return role, ok
}
