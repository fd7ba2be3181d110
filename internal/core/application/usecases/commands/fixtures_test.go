package commands_test

import (
	"testing"
	"time"

	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/core/domain/model/parcel"
	"trackmate/internal/core/domain/model/rider"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var bookedAt = time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)

func zone(t *testing.T, region, district string) kernel.Zone {
	t.Helper()
	z, err := kernel.NewZone(region, district)
	require.NoError(t, err)
	return z
}

func email(t *testing.T, s string) kernel.Email {
	t.Helper()
	e, err := kernel.NewEmail(s)
	require.NoError(t, err)
	return e
}

func testZones(t *testing.T) staticZones {
	t.Helper()
	return staticZones{
		"dhaka":   zone(t, "Dhaka", "Dhaka"),
		"gazipur": zone(t, "Dhaka", "Gazipur"),
		"sylhet":  zone(t, "Sylhet", "Sylhet"),
	}
}

// bookParcel returns a Processing parcel sent from Dhaka by rahim@example.com.
func bookParcel(t *testing.T, toDistrict string, price int64) *parcel.Parcel {
	t.Helper()
	sender, err := parcel.NewParty("Rahim", email(t, "rahim@example.com"), "017", "Road 1", zone(t, "Dhaka", "Dhaka"))
	require.NoError(t, err)
	receiver, err := parcel.NewParty("Karim", kernel.Email{}, "018", "Road 2", zone(t, "Dhaka", toDistrict))
	require.NoError(t, err)
	details, err := parcel.NewDetails(parcel.NonDocument, "Books", decimal.NewFromInt(2), sender, receiver, "", "")
	require.NoError(t, err)

	p, err := parcel.NewParcel(kernel.NewUUID(), parcel.GenerateTrackingID(bookedAt), details,
		kernel.MoneyFromInt(price), email(t, "rahim@example.com"), bookedAt)
	require.NoError(t, err)
	return p
}

func newRider(t *testing.T, riderEmail string, status rider.ApplicationStatus) *rider.Rider {
	t.Helper()
	r, err := rider.RestoreRider(kernel.NewUUID(), "Jamal", email(t, riderEmail), "019",
		zone(t, "Dhaka", "Dhaka"), status, bookedAt, bookedAt)
	require.NoError(t, err)
	return r
}

// deliveredParcel returns a Delivered parcel carried by r.
func deliveredParcel(t *testing.T, r *rider.Rider, toDistrict string, price int64) *parcel.Parcel {
	t.Helper()
	p := bookParcel(t, toDistrict, price)
	require.NoError(t, p.AssignRider(r.ID(), bookedAt.Add(time.Hour)))
	require.NoError(t, p.PickUp(r.ID(), bookedAt.Add(2*time.Hour)))
	require.NoError(t, p.Deliver(r.ID(), bookedAt.Add(3*time.Hour)))
	return p
}
