package client

// CatalogEntry is implemented by api.Exercise and api.Workout.
type CatalogEntry interface {
	Default() bool
	OwnerID() string
}

// Affordance says which mutations the UI should offer for an entry. The
// server enforces the same rules.
type Affordance struct {
	CanEdit   bool
	CanDelete bool
}

// Affordances grants edit and delete to the owner of a user entry and to
// admins on default entries.
func Affordances(entry CatalogEntry, s *Session) Affordance {
	if !s.LoggedIn() {
		return Affordance{}
	}
	var allowed bool
	if entry.Default() {
		allowed = s.IsAdmin()
	} else {
		allowed = entry.OwnerID() != "" && entry.OwnerID() == s.UserID()
	}
	return Affordance{CanEdit: allowed, CanDelete: allowed}
}

// Marker labels an entry for list views.
func Marker(entry CatalogEntry, s *Session) string {
	switch {
	case entry.Default():
		return "DEFAULT"
	case entry.OwnerID() != "" && entry.OwnerID() == s.UserID():
		return "MINE"
	}
	return ""
}
