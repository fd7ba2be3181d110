package ports

import "trackmate/internal/core/domain/model/kernel"

// ZoneDirectory resolves district names against the service-center catalog.
type ZoneDirectory interface {
	// Resolve returns the zone of a district or errs.ErrValueIsInvalid when
	// the district is not served.
	Resolve(district string) (kernel.Zone, error)

	// All returns every served zone.
	All() []kernel.Zone
}
