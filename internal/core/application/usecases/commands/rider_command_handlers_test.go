package commands_test

import (
	"testing"

	"trackmate/internal/core/application/usecases/commands"
	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/core/domain/model/rider"
	"trackmate/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestApplyRiderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewApplyRiderCommand(kernel.NewUUID(), "Jamal", email(t, "jamal@example.com"), "019", " sylhet ")
	require.NoError(t, err)

	riderRepo := new(MockRiderRepository)
	uow := new(MockUoW)
	factory := new(MockRiderUoWFactory)

	var stored *rider.Rider
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RiderRepository").Return(riderRepo).Once(),
		riderRepo.On("Add", ctx, mock.AnythingOfType("*rider.Rider")).
			Run(func(args mock.Arguments) { stored = args.Get(1).(*rider.Rider) }).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	err = commands.NewApplyRiderCommandHandler(factory, testZones(t)).Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, rider.Pending, stored.Status())
	assert.Equal(t, "Sylhet", stored.Zone().District())
	uow.AssertExpectations(t)
}

func TestApplyRiderCommandHandler_Handle_DuplicateEmail(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewApplyRiderCommand(kernel.NewUUID(), "Jamal", email(t, "jamal@example.com"), "019", "Dhaka")
	require.NoError(t, err)

	riderRepo := new(MockRiderRepository)
	uow := new(MockUoW)
	factory := new(MockRiderUoWFactory)

	factory.On("Create").Return(uow)
	uow.On("Begin", ctx).Return(nil)
	uow.On("RiderRepository").Return(riderRepo)
	uow.On("Rollback", ctx).Return(nil)
	riderRepo.On("Add", ctx, mock.Anything).Return(errs.NewObjectAlreadyExistError("email", "jamal@example.com"))

	err = commands.NewApplyRiderCommandHandler(factory, testZones(t)).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectAlreadyExist)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestApplyRiderCommandHandler_Handle_UnknownDistrict(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewApplyRiderCommand(kernel.NewUUID(), "Jamal", email(t, "jamal@example.com"), "019", "Atlantis")
	require.NoError(t, err)

	factory := new(MockRiderUoWFactory)
	err = commands.NewApplyRiderCommandHandler(factory, testZones(t)).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	factory.AssertNotCalled(t, "Create")
}

func TestNewApplyRiderCommand_MissingFields(t *testing.T) {
	_, err := commands.NewApplyRiderCommand(kernel.UUID{}, "Jamal", kernel.Email{}, "019", "  ")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestReviewRiderCommandHandler_Handle(t *testing.T) {
	tests := []struct {
		name     string
		from     rider.ApplicationStatus
		decision rider.ApplicationStatus
		wantErr  error
	}{
		{name: "approve", from: rider.Pending, decision: rider.Active},
		{name: "reject", from: rider.Pending, decision: rider.Rejected},
		{name: "deactivate", from: rider.Active, decision: rider.Inactive},
		{name: "approve rejected", from: rider.Rejected, decision: rider.Active, wantErr: errs.ErrIllegalTransition},
		{name: "reactivate", from: rider.Inactive, decision: rider.Active, wantErr: errs.ErrIllegalTransition},
		{name: "back to pending", from: rider.Active, decision: rider.Pending, wantErr: errs.ErrIllegalTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			r := newRider(t, "jamal@example.com", tt.from)
			cmd, err := commands.NewReviewRiderCommand(r.ID(), tt.decision)
			require.NoError(t, err)

			riderRepo := new(MockRiderRepository)
			uow := new(MockUoW)
			factory := new(MockRiderUoWFactory)

			factory.On("Create").Return(uow)
			uow.On("Begin", ctx).Return(nil)
			uow.On("RiderRepository").Return(riderRepo)
			uow.On("Rollback", ctx).Return(nil)
			uow.On("Commit", ctx).Return(nil)
			riderRepo.On("Get", ctx, r.ID()).Return(r, nil)
			riderRepo.On("Update", ctx, r).Return(nil)

			err = commands.NewReviewRiderCommandHandler(factory).Handle(ctx, cmd)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.from, r.Status())
				riderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.decision, r.Status())
			uow.AssertCalled(t, "Commit", ctx)
		})
	}
}

func TestNewReviewRiderCommand_UnknownDecision(t *testing.T) {
	_, err := commands.NewReviewRiderCommand(kernel.NewUUID(), rider.ApplicationStatus(42))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
