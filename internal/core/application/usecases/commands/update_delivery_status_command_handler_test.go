package commands_test

import (
	"testing"
	"time"

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

type statusFixture struct {
	parcelRepo *MockParcelRepository
	riderRepo  *MockRiderRepository
	logRepo    *MockTrackingLogRepository
	outboxRepo *MockOutboxRepository
	cache      *MockCache
	uow        *MockUoW
	factory    *MockUoWFactory
	handler    commands.UpdateDeliveryStatusCommandHandler
}

func newStatusFixture(t *testing.T) *statusFixture {
	t.Helper()
	ctx := t.Context()
	f := &statusFixture{
		parcelRepo: new(MockParcelRepository),
		riderRepo:  new(MockRiderRepository),
		logRepo:    new(MockTrackingLogRepository),
		outboxRepo: new(MockOutboxRepository),
		cache:      new(MockCache),
		uow:        new(MockUoW),
		factory:    new(MockUoWFactory),
	}
	f.factory.On("Create").Return(f.uow)
	f.uow.On("Begin", ctx).Return(nil)
	f.uow.On("ParcelRepository").Return(f.parcelRepo)
	f.uow.On("RiderRepository").Return(f.riderRepo)
	f.uow.On("TrackingLogRepository").Return(f.logRepo)
	f.uow.On("OutboxRepository").Return(f.outboxRepo)
	f.uow.On("Rollback", ctx).Return(nil)
	f.handler = commands.NewUpdateDeliveryStatusCommandHandler(
		f.factory,
		services.NewDeliveryWorkflow(),
		commands.NewTrackingRecorder(""),
		f.cache,
	)
	return f
}

func (f *statusFixture) expectSuccess(t *testing.T, p *parcel.Parcel) {
	t.Helper()
	ctx := t.Context()
	f.parcelRepo.On("Update", ctx, p).Return(nil).Once()
	f.logRepo.On("Append", ctx, mock.Anything).Return(nil).Once()
	f.outboxRepo.On("Add", ctx, mock.Anything).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.cache.On("Delete", ctx, mock.Anything).Return(nil).Once()
}

func assignedParcel(t *testing.T, r *rider.Rider) *parcel.Parcel {
	t.Helper()
	p := bookParcel(t, "Dhaka", 110)
	require.NoError(t, p.AssignRider(r.ID(), bookedAt.Add(time.Hour)))
	return p
}

func TestUpdateDeliveryStatusCommandHandler_Handle_PickUp(t *testing.T) {
	ctx := t.Context()
	r := newRider(t, "jamal@example.com", rider.Active)
	p := assignedParcel(t, r)
	cmd, err := commands.NewUpdateDeliveryStatusCommand(p.ID(), parcel.InTransit, "Collected at gate", r.Email())
	require.NoError(t, err)

	f := newStatusFixture(t)
	f.parcelRepo.On("Get", ctx, p.ID()).Return(p, nil).Once()
	f.riderRepo.On("GetByEmail", ctx, r.Email()).Return(r, nil).Once()
	f.expectSuccess(t, p)

	err = f.handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, parcel.InTransit, p.DeliveryStatus())
	require.NotNil(t, p.PickedAt())
	f.logRepo.AssertCalled(t, "Append", ctx, mock.MatchedBy(func(e tracking.LogEntry) bool {
		return e.Status() == parcel.InTransit &&
			e.Details() == "Collected at gate" &&
			e.Actor() == "jamal@example.com" &&
			e.TrackingID().IsEqual(p.TrackingID())
	}))
	f.uow.AssertExpectations(t)
	f.cache.AssertExpectations(t)
}

func TestUpdateDeliveryStatusCommandHandler_Handle_EvictsCacheAfterCommit(t *testing.T) {
	ctx := t.Context()
	r := newRider(t, "jamal@example.com", rider.Active)
	p := assignedParcel(t, r)
	cmd, err := commands.NewUpdateDeliveryStatusCommand(p.ID(), parcel.InTransit, "", r.Email())
	require.NoError(t, err)

	var calls []string
	f := newStatusFixture(t)
	f.parcelRepo.On("Get", ctx, p.ID()).Return(p, nil).Once()
	f.riderRepo.On("GetByEmail", ctx, r.Email()).Return(r, nil).Once()
	f.parcelRepo.On("Update", ctx, p).Return(nil).Once()
	f.logRepo.On("Append", ctx, mock.Anything).Return(nil).Once()
	f.outboxRepo.On("Add", ctx, mock.Anything).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once().
		Run(func(mock.Arguments) { calls = append(calls, "commit") })
	f.cache.On("Delete", ctx, mock.Anything).Return(nil).Once().
		Run(func(mock.Arguments) { calls = append(calls, "evict") })

	err = f.handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, []string{"commit", "evict"}, calls)
}

func TestUpdateDeliveryStatusCommandHandler_Handle_FailedCommitKeepsCache(t *testing.T) {
	ctx := t.Context()
	r := newRider(t, "jamal@example.com", rider.Active)
	p := assignedParcel(t, r)
	cmd, err := commands.NewUpdateDeliveryStatusCommand(p.ID(), parcel.InTransit, "", r.Email())
	require.NoError(t, err)

	f := newStatusFixture(t)
	f.parcelRepo.On("Get", ctx, p.ID()).Return(p, nil).Once()
	f.riderRepo.On("GetByEmail", ctx, r.Email()).Return(r, nil).Once()
	f.parcelRepo.On("Update", ctx, p).Return(nil).Once()
	f.logRepo.On("Append", ctx, mock.Anything).Return(nil).Once()
	f.outboxRepo.On("Add", ctx, mock.Anything).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(errs.NewStaleStateError("parcel", p.ID(), 1)).Once()

	err = f.handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrStaleState)
	assert.Equal(t, parcel.RiderAssigned, p.DeliveryStatus())
	f.cache.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestUpdateDeliveryStatusCommandHandler_Handle_Deliver(t *testing.T) {
	ctx := t.Context()
	r := newRider(t, "jamal@example.com", rider.Active)
	p := assignedParcel(t, r)
	require.NoError(t, p.PickUp(r.ID(), bookedAt.Add(2*time.Hour)))
	cmd, err := commands.NewUpdateDeliveryStatusCommand(p.ID(), parcel.Delivered, "", r.Email())
	require.NoError(t, err)

	f := newStatusFixture(t)
	f.parcelRepo.On("Get", ctx, p.ID()).Return(p, nil).Once()
	f.riderRepo.On("GetByEmail", ctx, r.Email()).Return(r, nil).Once()
	f.expectSuccess(t, p)

	require.NoError(t, f.handler.Handle(ctx, cmd))
	assert.Equal(t, parcel.Delivered, p.DeliveryStatus())
	assert.NotNil(t, p.DeliveredAt())
}

func TestUpdateDeliveryStatusCommandHandler_Handle_SkippedStepIsIllegal(t *testing.T) {
	ctx := t.Context()
	p := bookParcel(t, "Dhaka", 110)
	stranger := email(t, "stranger@example.com")
	cmd, err := commands.NewUpdateDeliveryStatusCommand(p.ID(), parcel.Delivered, "", stranger)
	require.NoError(t, err)

	f := newStatusFixture(t)
	f.parcelRepo.On("Get", ctx, p.ID()).Return(p, nil).Once()

	err = f.handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrIllegalTransition)
	assert.Equal(t, parcel.Processing, p.DeliveryStatus())
	f.riderRepo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	f.parcelRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.logRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestUpdateDeliveryStatusCommandHandler_Handle_BackwardsIsIllegal(t *testing.T) {
	ctx := t.Context()
	r := newRider(t, "jamal@example.com", rider.Active)
	p := deliveredParcel(t, r, "Dhaka", 110)
	cmd, err := commands.NewUpdateDeliveryStatusCommand(p.ID(), parcel.InTransit, "", r.Email())
	require.NoError(t, err)

	f := newStatusFixture(t)
	f.parcelRepo.On("Get", ctx, p.ID()).Return(p, nil).Once()

	err = f.handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrIllegalTransition)
	assert.Equal(t, parcel.Delivered, p.DeliveryStatus())
}

func TestUpdateDeliveryStatusCommandHandler_Handle_UnknownActorIsForbidden(t *testing.T) {
	ctx := t.Context()
	r := newRider(t, "jamal@example.com", rider.Active)
	p := assignedParcel(t, r)
	stranger := email(t, "stranger@example.com")
	cmd, err := commands.NewUpdateDeliveryStatusCommand(p.ID(), parcel.InTransit, "", stranger)
	require.NoError(t, err)

	f := newStatusFixture(t)
	f.parcelRepo.On("Get", ctx, p.ID()).Return(p, nil).Once()
	f.riderRepo.On("GetByEmail", ctx, stranger).Return(nil, errs.NewObjectNotFoundError("email", stranger)).Once()

	err = f.handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrForbidden)
	assert.Equal(t, parcel.RiderAssigned, p.DeliveryStatus())
}

func TestUpdateDeliveryStatusCommandHandler_Handle_OtherRiderIsForbidden(t *testing.T) {
	ctx := t.Context()
	assigned := newRider(t, "jamal@example.com", rider.Active)
	other := newRider(t, "other@example.com", rider.Active)
	p := assignedParcel(t, assigned)
	cmd, err := commands.NewUpdateDeliveryStatusCommand(p.ID(), parcel.InTransit, "", other.Email())
	require.NoError(t, err)

	f := newStatusFixture(t)
	f.parcelRepo.On("Get", ctx, p.ID()).Return(p, nil).Once()
	f.riderRepo.On("GetByEmail", ctx, other.Email()).Return(other, nil).Once()

	err = f.handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrForbidden)
	assert.Equal(t, parcel.RiderAssigned, p.DeliveryStatus())
	assert.Nil(t, p.PickedAt())
}

func TestUpdateDeliveryStatusCommandHandler_Handle_AssignThroughStatusIsForbidden(t *testing.T) {
	ctx := t.Context()
	r := newRider(t, "jamal@example.com", rider.Active)
	p := bookParcel(t, "Dhaka", 110)
	cmd, err := commands.NewUpdateDeliveryStatusCommand(p.ID(), parcel.RiderAssigned, "", r.Email())
	require.NoError(t, err)

	f := newStatusFixture(t)
	f.parcelRepo.On("Get", ctx, p.ID()).Return(p, nil).Once()
	f.riderRepo.On("GetByEmail", ctx, r.Email()).Return(r, nil).Once()

	err = f.handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrForbidden)
	assert.Nil(t, p.Rider())
}

func TestUpdateDeliveryStatusCommandHandler_Handle_LosingConcurrentUpdate(t *testing.T) {
	ctx := t.Context()
	r := newRider(t, "jamal@example.com", rider.Active)
	p := assignedParcel(t, r)
	cmd, err := commands.NewUpdateDeliveryStatusCommand(p.ID(), parcel.InTransit, "", r.Email())
	require.NoError(t, err)

	f := newStatusFixture(t)
	f.parcelRepo.On("Get", ctx, p.ID()).Return(p, nil).Once()
	f.riderRepo.On("GetByEmail", ctx, r.Email()).Return(r, nil).Once()
	f.parcelRepo.On("Update", ctx, p).Return(errs.NewStaleStateError("parcel", p.ID(), p.Version())).Once()

	err = f.handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrStaleState)
	assert.Equal(t, parcel.RiderAssigned, p.DeliveryStatus())
	f.logRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestNewUpdateDeliveryStatusCommand_UnknownStatus(t *testing.T) {
	_, err := commands.NewUpdateDeliveryStatusCommand(
		kernel.NewUUID(), parcel.UnknownDeliveryStatus, "", email(t, "jamal@example.com"),
	)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
