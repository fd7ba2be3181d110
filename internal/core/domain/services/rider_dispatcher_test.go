package services_test

import (
	"testing"

	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/core/domain/model/rider"
	"trackmate/internal/core/domain/services"
	"trackmate/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRiderDispatcher_Dispatch(t *testing.T) {
	dispatcher := services.NewRiderDispatcher()

	t.Run("should pick the least loaded active rider of the pick-up zone", func(t *testing.T) {
		p := bookParcel(t, "Gazipur", "Savar", 150)
		busy := newRider(t, "Gazipur", rider.Active)
		idle := newRider(t, "Gazipur", rider.Active)
		elsewhere := newRider(t, "Savar", rider.Active)
		pending := newRider(t, "Gazipur", rider.Pending)

		got, err := dispatcher.Dispatch(p, []services.RiderLoad{
			{Rider: busy, OpenParcels: 3},
			{Rider: elsewhere, OpenParcels: 0},
			{Rider: pending, OpenParcels: 0},
			{Rider: idle, OpenParcels: 1},
		})

		require.NoError(t, err)
		assert.True(t, got.IsEqual(idle))
	})

	t.Run("ties go to the first candidate", func(t *testing.T) {
		p := bookParcel(t, "Gazipur", "Gazipur", 110)
		first := newRider(t, "Gazipur", rider.Active)
		second := newRider(t, "Gazipur", rider.Active)

		got, err := dispatcher.Dispatch(p, []services.RiderLoad{{Rider: first}, {Rider: second}})

		require.NoError(t, err)
		assert.True(t, got.IsEqual(first))
	})

	t.Run("should report when nobody qualifies", func(t *testing.T) {
		p := bookParcel(t, "Gazipur", "Gazipur", 110)

		got, err := dispatcher.Dispatch(p, []services.RiderLoad{{Rider: newRider(t, "Savar", rider.Active)}})

		require.ErrorIs(t, err, services.ErrRiderNotFound)
		assert.Nil(t, got)
	})

	t.Run("should refuse parcels past Processing", func(t *testing.T) {
		p := bookParcel(t, "Gazipur", "Gazipur", 110)
		require.NoError(t, p.AssignRider(kernel.NewUUID(), bookedAt))

		_, err := dispatcher.Dispatch(p, []services.RiderLoad{{Rider: newRider(t, "Gazipur", rider.Active)}})

		require.ErrorIs(t, err, errs.ErrIllegalTransition)
	})

	t.Run("should not touch the parcel", func(t *testing.T) {
		p := bookParcel(t, "Gazipur", "Gazipur", 110)
		before := p.Snapshot()

		_, err := dispatcher.Dispatch(p, []services.RiderLoad{{Rider: newRider(t, "Gazipur", rider.Active)}})

		require.NoError(t, err)
		assert.Equal(t, before, p.Snapshot())
	})
}
