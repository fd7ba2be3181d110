package parcel_test

import (
	"testing"
	"time"

	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/core/domain/model/parcel"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var bookedAt = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func mustEmail(t *testing.T, s string) kernel.Email {
	t.Helper()
	e, err := kernel.NewEmail(s)
	require.NoError(t, err)
	return e
}

func mustZone(t *testing.T, region, district string) kernel.Zone {
	t.Helper()
	z, err := kernel.NewZone(region, district)
	require.NoError(t, err)
	return z
}

func newDetails(t *testing.T, sameZone bool) parcel.Details {
	t.Helper()
	senderZone := mustZone(t, "Dhaka", "Gazipur")
	receiverZone := senderZone
	if !sameZone {
		receiverZone = mustZone(t, "Chattogram", "Cox's Bazar")
	}

	sender, err := parcel.NewParty("Rahim", mustEmail(t, "rahim@example.com"), "01711000000", "House 4, Road 2", senderZone)
	require.NoError(t, err)
	receiver, err := parcel.NewParty("Karim", kernel.Email{}, "01811000000", "Market Road", receiverZone)
	require.NoError(t, err)

	d, err := parcel.NewDetails(parcel.NonDocument, "Books", decimal.RequireFromString("5"), sender, receiver, "", "")
	require.NoError(t, err)
	return d
}

func newParcel(t *testing.T) *parcel.Parcel {
	t.Helper()
	p, err := parcel.NewParcel(
		kernel.NewUUID(),
		parcel.GenerateTrackingID(bookedAt),
		newDetails(t, true),
		kernel.MoneyFromInt(190),
		mustEmail(t, "rahim@example.com"),
		bookedAt,
	)
	require.NoError(t, err)
	return p
}
