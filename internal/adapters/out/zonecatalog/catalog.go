// Package zonecatalog loads the service-center catalog from YAML and
// resolves districts against it.
//
// File format:
//
//	service_centers:
//	  - region: Dhaka
//	    district: Dhaka
//	    covered_areas: [Uttara, Mirpur, Dhanmondi]
//
// A covered area resolves to the zone of its district.
package zonecatalog

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/core/ports"
	"trackmate/internal/pkg/errs"

	"github.com/pkg/errors"
	"go.yaml.in/yaml/v4"
)

var _ ports.ZoneDirectory = (*Catalog)(nil)

type file struct {
	ServiceCenters []serviceCenter `yaml:"service_centers"`
}

type serviceCenter struct {
	Region       string   `yaml:"region"`
	District     string   `yaml:"district"`
	CoveredAreas []string `yaml:"covered_areas"`
}

// Catalog is an immutable, concurrency-safe zone directory.
type Catalog struct {
	byKey map[string]kernel.Zone
	zones []kernel.Zone
}

// Load reads and parses a catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read zone catalog")
	}

	c, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "zone catalog %s", path)
	}
	return c, nil
}

// Parse builds a catalog from YAML. Districts must be unique and a covered
// area may belong to one district only.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "unmarshal zone catalog")
	}
	if len(f.ServiceCenters) == 0 {
		return nil, errs.NewValueIsRequiredError("service_centers")
	}

	c := &Catalog{byKey: make(map[string]kernel.Zone)}
	for i, sc := range f.ServiceCenters {
		zone, err := kernel.NewZone(sc.Region, sc.District)
		if err != nil {
			return nil, errors.Wrapf(err, "service center %d", i)
		}
		if err = c.add(zone.Key(), zone); err != nil {
			return nil, err
		}
		c.zones = append(c.zones, zone)
	}

	// districts win over covered areas with the same name
	for _, sc := range f.ServiceCenters {
		zone := c.byKey[kernel.ZoneKey(sc.District)]
		for _, area := range sc.CoveredAreas {
			key := kernel.ZoneKey(area)
			if key == "" || key == zone.Key() {
				continue
			}
			if existing, ok := c.byKey[key]; ok && (existing.Key() == key || existing.IsSameArea(zone)) {
				continue
			}
			if err := c.add(key, zone); err != nil {
				return nil, err
			}
		}
	}

	sort.Slice(c.zones, func(i, j int) bool { return c.zones[i].Key() < c.zones[j].Key() })
	return c, nil
}

// Resolve returns the zone of a district or covered area.
func (c *Catalog) Resolve(district string) (kernel.Zone, error) {
	if strings.TrimSpace(district) == "" {
		return kernel.Zone{}, errs.NewValueIsRequiredError("district")
	}
	zone, ok := c.byKey[kernel.ZoneKey(district)]
	if !ok {
		return kernel.Zone{}, errs.NewValueIsInvalidErrorWithCause(
			"district",
			fmt.Errorf("%q is not served by any service center", district),
		)
	}
	return zone, nil
}

// All returns the served zones ordered by district.
func (c *Catalog) All() []kernel.Zone {
	return append([]kernel.Zone(nil), c.zones...)
}

func (c *Catalog) add(key string, zone kernel.Zone) error {
	if existing, ok := c.byKey[key]; ok {
		return errs.NewObjectAlreadyExistErrorWithCause(
			"district",
			key,
			fmt.Errorf("listed under %s and %s", existing, zone),
		)
	}
	c.byKey[key] = zone
	return nil
}
