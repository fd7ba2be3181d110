package zonecatalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"trackmate/internal/adapters/out/zonecatalog"
	"trackmate/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
service_centers:
  - region: Dhaka
    district: Dhaka
    covered_areas: [Uttara, Mirpur, Dhanmondi]
  - region: Dhaka
    district: Gazipur
    covered_areas: [Tongi]
  - region: Sylhet
    district: Sylhet
    covered_areas: []
`

func TestParse_Resolve(t *testing.T) {
	c, err := zonecatalog.Parse([]byte(sample))
	require.NoError(t, err)

	zone, err := c.Resolve("  gazipur ")
	require.NoError(t, err)
	assert.Equal(t, "Gazipur", zone.District())
	assert.Equal(t, "Dhaka", zone.Region())

	area, err := c.Resolve("Mirpur")
	require.NoError(t, err)
	assert.Equal(t, "Dhaka", area.District())

	tongi, err := c.Resolve("TONGI")
	require.NoError(t, err)
	assert.True(t, tongi.IsSameArea(zone))
}

func TestResolve_Unknown(t *testing.T) {
	c, err := zonecatalog.Parse([]byte(sample))
	require.NoError(t, err)

	_, err = c.Resolve("Atlantis")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = c.Resolve(" ")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestAll_SortedByDistrict(t *testing.T) {
	c, err := zonecatalog.Parse([]byte(sample))
	require.NoError(t, err)

	districts := make([]string, 0)
	for _, z := range c.All() {
		districts = append(districts, z.District())
	}
	assert.Equal(t, []string{"Dhaka", "Gazipur", "Sylhet"}, districts)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{name: "empty", yaml: "service_centers: []", want: errs.ErrValueIsRequired},
		{
			name: "duplicate district",
			yaml: "service_centers:\n  - {region: Dhaka, district: Dhaka}\n  - {region: Dhaka, district: dhaka}\n",
			want: errs.ErrObjectAlreadyExist,
		},
		{
			name: "area in two districts",
			yaml: "service_centers:\n  - {region: A, district: X, covered_areas: [Hub]}\n  - {region: A, district: Y, covered_areas: [hub]}\n",
			want: errs.ErrObjectAlreadyExist,
		},
		{name: "missing district", yaml: "service_centers:\n  - {region: Dhaka}\n", want: errs.ErrValueIsRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := zonecatalog.Parse([]byte(tt.yaml))
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParse_MalformedYAML(t *testing.T) {
	_, err := zonecatalog.Parse([]byte("service_centers: [unclosed"))
	require.ErrorContains(t, err, "unmarshal zone catalog")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zones.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	c, err := zonecatalog.Load(path)
	require.NoError(t, err)
	assert.Len(t, c.All(), 3)

	_, err = zonecatalog.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "read zone catalog")
}

func TestLoad_ShippedCatalog(t *testing.T) {
	c, err := zonecatalog.Load(filepath.Join("..", "..", "..", "..", "configs", "zones.yaml"))
	require.NoError(t, err)

	_, err = c.Resolve("Dhaka")
	require.NoError(t, err)
}
