package commands_test

import (
	"errors"
	"testing"

	"trackmate/internal/core/application/usecases/commands"
	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/core/domain/model/parcel"
	"trackmate/internal/core/domain/model/rider"
	"trackmate/internal/core/domain/model/tracking"
	"trackmate/internal/core/domain/services"
	"trackmate/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAutoAssignHandler(factory commands.UoWFactory, cache *MockCache) commands.AutoAssignRidersCommandHandler {
	return commands.NewAutoAssignRidersCommandHandler(
		factory,
		services.NewRiderDispatcher(),
		services.NewDeliveryWorkflow(),
		commands.NewTrackingRecorder(""),
		cache,
	)
}

func TestAutoAssignRidersCommandHandler_Handle_PicksLeastLoadedRider(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewAutoAssignRidersCommand()
	p := bookParcel(t, "Gazipur", 190)
	busy := newRider(t, "busy@example.com", rider.Active)
	idle := newRider(t, "idle@example.com", rider.Active)
	pickupZone := p.Details().Sender().Zone()

	parcelRepo := new(MockParcelRepository)
	riderRepo := new(MockRiderRepository)
	logRepo := new(MockTrackingLogRepository)
	outboxRepo := new(MockOutboxRepository)
	cache := new(MockCache)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		uow.On("RiderRepository").Return(riderRepo).Once(),
		parcelRepo.On("GetFirstInProcessing", ctx).Return(p, nil).Once(),
		riderRepo.On("GetAllActiveInZone", ctx, pickupZone).Return([]*rider.Rider{busy, idle}, nil).Once(),
		parcelRepo.On("CountOpenByRider", ctx, []kernel.UUID{busy.ID(), idle.ID()}).
			Return(map[kernel.UUID]int{busy.ID(): 3}, nil).Once(),
		parcelRepo.On("Update", ctx, p).Return(nil).Once(),
		uow.On("TrackingLogRepository").Return(logRepo).Once(),
		uow.On("OutboxRepository").Return(outboxRepo).Once(),
		logRepo.On("Append", ctx, mock.MatchedBy(func(e tracking.LogEntry) bool {
			return e.Status() == parcel.RiderAssigned && e.Actor() == tracking.SystemActor
		})).Return(nil).Once(),
		outboxRepo.On("Add", ctx, mock.Anything).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		cache.On("Delete", ctx, mock.Anything).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	err := newAutoAssignHandler(factory, cache).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, p.IsAssignedTo(idle.ID()))
	parcelRepo.AssertExpectations(t)
	riderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAutoAssignRidersCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockUoWFactory)
	err := newAutoAssignHandler(factory, new(MockCache)).Handle(t.Context(), commands.AutoAssignRidersCommand{})

	require.ErrorIs(t, err, commands.ErrAutoAssignRidersCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestAutoAssignRidersCommandHandler_Handle_NoParcel(t *testing.T) {
	ctx := t.Context()

	parcelRepo := new(MockParcelRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	factory.On("Create").Return(uow)
	uow.On("Begin", ctx).Return(nil)
	uow.On("ParcelRepository").Return(parcelRepo)
	uow.On("RiderRepository").Return(new(MockRiderRepository))
	uow.On("Rollback", ctx).Return(nil)
	parcelRepo.On("GetFirstInProcessing", ctx).Return(nil, errs.ErrObjectNotFound)

	err := newAutoAssignHandler(factory, new(MockCache)).Handle(ctx, commands.NewAutoAssignRidersCommand())

	require.ErrorIs(t, err, commands.ErrNoParcelFound)
}

func TestAutoAssignRidersCommandHandler_Handle_NoRidersInZone(t *testing.T) {
	ctx := t.Context()
	p := bookParcel(t, "Dhaka", 110)

	parcelRepo := new(MockParcelRepository)
	riderRepo := new(MockRiderRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	factory.On("Create").Return(uow)
	uow.On("Begin", ctx).Return(nil)
	uow.On("ParcelRepository").Return(parcelRepo)
	uow.On("RiderRepository").Return(riderRepo)
	uow.On("Rollback", ctx).Return(nil)
	parcelRepo.On("GetFirstInProcessing", ctx).Return(p, nil)
	riderRepo.On("GetAllActiveInZone", ctx, mock.Anything).Return([]*rider.Rider{}, nil)

	err := newAutoAssignHandler(factory, new(MockCache)).Handle(ctx, commands.NewAutoAssignRidersCommand())

	require.ErrorIs(t, err, commands.ErrNoActiveRidersFound)
	assert.Equal(t, parcel.Processing, p.DeliveryStatus())
}

func TestAutoAssignRidersCommandHandler_Handle_GetParcelError(t *testing.T) {
	ctx := t.Context()

	parcelRepo := new(MockParcelRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	factory.On("Create").Return(uow)
	uow.On("Begin", ctx).Return(nil)
	uow.On("ParcelRepository").Return(parcelRepo)
	uow.On("RiderRepository").Return(new(MockRiderRepository))
	uow.On("Rollback", ctx).Return(nil)
	parcelRepo.On("GetFirstInProcessing", ctx).Return(nil, errors.New("database error"))

	err := newAutoAssignHandler(factory, new(MockCache)).Handle(ctx, commands.NewAutoAssignRidersCommand())

	require.EqualError(t, err, "database error")
}
