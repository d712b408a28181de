package entitlement

// Entitlement is the per-company snapshot that decides report visibility for
// a single dashboard render. It is resolved fresh on every render and never
// cached across renders.
type Entitlement struct {
	Subscribed       bool
	PurchasedReports map[string]bool
}

// HasPurchased reports whether the company bought the given report type
// individually.
func (e Entitlement) HasPurchased(reportID string) bool {
	return e.PurchasedReports[reportID]
}

// NoEntitlement is the most restrictive snapshot: not subscribed, nothing
// purchased. It is also the fail-safe result when the store cannot be
// queried.
func NoEntitlement() Entitlement {
	return Entitlement{Subscribed: false, PurchasedReports: map[string]bool{}}
}

// SuperAdminEntitlement grants full access unconditionally. Full access is a
// viewer-role property, not a purchase fact, so this constructor never
// consults the store.
func SuperAdminEntitlement() Entitlement {
	return Entitlement{Subscribed: true, PurchasedReports: map[string]bool{}}
}
