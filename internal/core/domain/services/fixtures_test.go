package services_test

import (
	"testing"
	"time"

	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/core/domain/model/parcel"
	"trackmate/internal/core/domain/model/rider"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var bookedAt = time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC) // a Wednesday

func zone(t *testing.T, district string) kernel.Zone {
	t.Helper()
	z, err := kernel.NewZone("Dhaka", district)
	require.NoError(t, err)
	return z
}

func email(t *testing.T, s string) kernel.Email {
	t.Helper()
	e, err := kernel.NewEmail(s)
	require.NoError(t, err)
	return e
}

// bookParcel books a parcel picked up in fromDistrict and delivered to toDistrict.
func bookParcel(t *testing.T, fromDistrict, toDistrict string, price int64) *parcel.Parcel {
	t.Helper()
	sender, err := parcel.NewParty("Rahim", email(t, "rahim@example.com"), "017", "Road 1", zone(t, fromDistrict))
	require.NoError(t, err)
	receiver, err := parcel.NewParty("Karim", kernel.Email{}, "018", "Road 2", zone(t, toDistrict))
	require.NoError(t, err)
	details, err := parcel.NewDetails(parcel.NonDocument, "Books", decimal.NewFromInt(2), sender, receiver, "", "")
	require.NoError(t, err)

	p, err := parcel.NewParcel(kernel.NewUUID(), parcel.GenerateTrackingID(bookedAt), details,
		kernel.MoneyFromInt(price), email(t, "rahim@example.com"), bookedAt)
	require.NoError(t, err)
	return p
}

// deliverParcel walks p to Delivered with riderID at deliveredAt.
func deliverParcel(t *testing.T, p *parcel.Parcel, riderID kernel.UUID, deliveredAt time.Time) {
	t.Helper()
	require.NoError(t, p.AssignRider(riderID, deliveredAt.Add(-2*time.Hour)))
	require.NoError(t, p.PickUp(riderID, deliveredAt.Add(-time.Hour)))
	require.NoError(t, p.Deliver(riderID, deliveredAt))
}

func newRider(t *testing.T, district string, status rider.ApplicationStatus) *rider.Rider {
	t.Helper()
	r, err := rider.RestoreRider(kernel.NewUUID(), "Jamal", email(t, "jamal@example.com"), "019",
		zone(t, district), status, bookedAt, bookedAt)
	require.NoError(t, err)
	return r
}
