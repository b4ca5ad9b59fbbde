package domain

// EmptyReason explains a structurally empty slot list. Present only when the
// list is empty for a structural reason rather than full occupancy.
type EmptyReason string

const (
	// ReasonVenueNotDeployed venue does not operate on the requested date
	ReasonVenueNotDeployed EmptyReason = "venue_not_deployed"
	// ReasonNoCapacity venue has no active rooms or no active therapists
	ReasonNoCapacity EmptyReason = "no_capacity"
)
