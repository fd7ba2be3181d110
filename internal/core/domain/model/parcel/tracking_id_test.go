package parcel_test

import (
	"strconv"
	"strings"
	"testing"

	"trackmate/internal/core/domain/model/parcel"
	"trackmate/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTrackingID(t *testing.T) {
	t.Run("should embed the booking time in base36", func(t *testing.T) {
		id := parcel.GenerateTrackingID(bookedAt)

		stamp := strings.ToUpper(strconv.FormatInt(bookedAt.UnixMilli(), 36))
		assert.Regexp(t, `^TRK-`+stamp+`-[0-9A-Z]{5}$`, id.String())
		require.NoError(t, id.Validate())
	})

	t.Run("generated ids parse back", func(t *testing.T) {
		id := parcel.GenerateTrackingID(bookedAt)

		parsed, err := parcel.TrackingIDFromString(strings.ToLower(id.String()))

		require.NoError(t, err)
		assert.True(t, parsed.IsEqual(id))
	})
}

func TestTrackingIDFromString(t *testing.T) {
	t.Run("should require a value", func(t *testing.T) {
		_, err := parcel.TrackingIDFromString("  ")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject other formats", func(t *testing.T) {
		for _, in := range []string{"TRK-ABC", "PKG-M1X2-7QK2P", "TRK-M1X2-7QK2", "TRK-M1X2-7QK2P9"} {
			_, err := parcel.TrackingIDFromString(in)

			require.ErrorIs(t, err, errs.ErrValueIsInvalid, in)
		}
	})
}
