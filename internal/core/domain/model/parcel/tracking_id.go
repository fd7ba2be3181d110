package parcel

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"
	"time"

	"trackmate/internal/pkg/errs"
	"trackmate/internal/pkg/guard"
)

const (
	trackingIDPrefix     = "TRK"
	trackingIDSuffixSize = 5
	base36Alphabet       = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

var trackingIDPattern = regexp.MustCompile(`^TRK-[0-9A-Z]+-[0-9A-Z]{5}$`)

// ErrTrackingIDIsNotConstructed is returned for a zero TrackingID.
var ErrTrackingIDIsNotConstructed = errs.NewValueIsRequiredError(
	"tracking id must be created via GenerateTrackingID or TrackingIDFromString")

// TrackingID is the human-readable parcel code shown to senders, for
// example "TRK-M1X2Y3Z4-7QK2P". It is generated once at booking and never
// changes. Uniqueness across parcels is enforced by the tracking id registry
// and the database, not by the generator.
type TrackingID struct {
	value string
	guard guard.ConstructorGuard
}

// GenerateTrackingID builds "TRK-<unix millis in base36>-<5 random base36>",
// upper case.
func GenerateTrackingID(now time.Time) TrackingID {
	suffix := make([]byte, trackingIDSuffixSize)
	for i := range suffix {
		suffix[i] = base36Alphabet[rand.IntN(len(base36Alphabet))] //nolint:gosec // not a secret
	}
	stamp := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))

	return TrackingID{
		value: fmt.Sprintf("%s-%s-%s", trackingIDPrefix, stamp, suffix),
		guard: guard.NewConstructorGuard(),
	}
}

// TrackingIDFromString parses a code typed by a user; case is ignored.
func TrackingIDFromString(s string) (TrackingID, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return TrackingID{}, errs.NewValueIsRequiredError("trackingId")
	}
	if !trackingIDPattern.MatchString(s) {
		return TrackingID{}, errs.NewValueIsInvalidErrorWithCause(
			"trackingId",
			fmt.Errorf("%q does not match TRK-<stamp>-<code>", s),
		)
	}
	return TrackingID{value: s, guard: guard.NewConstructorGuard()}, nil
}

func (id TrackingID) Validate() error {
	return id.guard.Validate(ErrTrackingIDIsNotConstructed)
}

func (id TrackingID) IsEqual(other TrackingID) bool {
	return id.value == other.value
}

func (id TrackingID) String() string {
	return id.value
}
