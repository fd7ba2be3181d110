package kernel

import (
	"errors"
	"fmt"
	"strings"

	"trackmate/internal/pkg/errs"
	"trackmate/internal/pkg/guard"
)

// ErrZoneIsNotConstructed is returned when a Zone was not created via NewZone.
var ErrZoneIsNotConstructed = errs.NewValueIsRequiredError("zone must be created via NewZone")

// Zone is a service area: the district warehouse a party ships from or to,
// together with the region it belongs to. Two zones are the same service area
// when their districts match, ignoring case and surrounding spaces.
//
// Example:
//
//	from, _ := kernel.NewZone("Dhaka", "Gazipur")
//	to, _ := kernel.NewZone("dhaka", " gazipur ")
//	from.IsSameArea(to) // true
type Zone struct { //nolint:recvcheck // setters use pointer receivers
	region   string
	district string
	guard    guard.ConstructorGuard
}

// NewZone validates and builds a Zone.
//
// Parameters:
//   - region: the division the district belongs to (required)
//   - district: the district warehouse identifier (required)
//
// Returns:
//   - Zone: the constructed zone
//   - error: ValueIsRequiredError for blank parts, joined
func NewZone(region, district string) (Zone, error) {
	z := Zone{guard: guard.NewConstructorGuard()}
	if err := errors.Join(z.setRegion(region), z.setDistrict(district)); err != nil {
		return Zone{}, err
	}
	return z, nil
}

// Validate returns ErrZoneIsNotConstructed for the zero value.
func (z Zone) Validate() error {
	return z.guard.Validate(ErrZoneIsNotConstructed)
}

// Region returns the region name as configured.
func (z Zone) Region() string {
	return z.region
}

// District returns the district name as configured.
func (z Zone) District() string {
	return z.district
}

// Key is the normalized district used for comparisons and lookups.
func (z Zone) Key() string {
	return ZoneKey(z.district)
}

// IsSameArea reports whether both zones name the same district warehouse.
func (z Zone) IsSameArea(other Zone) bool {
	return z.Key() == other.Key()
}

func (z Zone) String() string {
	return fmt.Sprintf("%s/%s", z.region, z.district)
}

// ZoneKey normalizes a district name for lookups.
func ZoneKey(district string) string {
	return strings.ToLower(strings.TrimSpace(district))
}

func (z *Zone) setRegion(region string) error {
	region = strings.TrimSpace(region)
	if region == "" {
		return errs.NewValueIsRequiredError("region")
	}
	z.region = region
	return nil
}

func (z *Zone) setDistrict(district string) error {
	district = strings.TrimSpace(district)
	if district == "" {
		return errs.NewValueIsRequiredError("district")
	}
	z.district = district
	return nil
}
