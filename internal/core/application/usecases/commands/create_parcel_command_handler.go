package commands

import (
	"context"
	"errors"
	"strings"
	"time"

	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/core/domain/model/parcel"
	"trackmate/internal/core/domain/services"
	"trackmate/internal/core/ports"
	"trackmate/internal/pkg/saga"
)

const (
	trackingIDReservationTTL = 24 * time.Hour
	trackingIDAttempts       = 5
)

var ErrTrackingIDUnavailable = errors.New("no free tracking id after several attempts")

// CreateParcelCommandHandler books parcels.
//
// The flow is: resolve both districts against the zone catalog, quote the
// price once, reserve a tracking id, then store the parcel together with its
// Processing log entry and status-changed event. A failure after the
// reservation releases the tracking id again.
//
// Example:
//
//	handler := NewCreateParcelCommandHandler(uowFactory, zones, registry, pricing, workflow, recorder)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("booking failed: %w", err)
//	}
type CreateParcelCommandHandler struct {
	uowFactory UoWFactory
	zones      ports.ZoneDirectory
	registry   ports.TrackingIDRegistry
	pricing    services.PricingEngine
	workflow   services.DeliveryWorkflow
	recorder   TrackingRecorder
	now        func() time.Time
}

// NewCreateParcelCommandHandler creates a handler for parcel bookings.
func NewCreateParcelCommandHandler(
	uowFactory UoWFactory,
	zones ports.ZoneDirectory,
	registry ports.TrackingIDRegistry,
	pricing services.PricingEngine,
	workflow services.DeliveryWorkflow,
	recorder TrackingRecorder,
) CreateParcelCommandHandler {
	return CreateParcelCommandHandler{
		uowFactory: uowFactory,
		zones:      zones,
		registry:   registry,
		pricing:    pricing,
		workflow:   workflow,
		recorder:   recorder,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Handle validates the booking and persists the new parcel.
func (h CreateParcelCommandHandler) Handle(ctx context.Context, cmd CreateParcelCommand) (err error) {
	if err = cmd.Validate(); err != nil {
		return err
	}

	details, err := h.details(cmd)
	if err != nil {
		return err
	}

	quote, err := h.pricing.Quote(details.Type(), details.WeightKg(), details.SameZone())
	if err != nil {
		return err
	}

	sg := saga.New("create parcel", nil)
	defer func() {
		if err != nil {
			err = errors.Join(err, sg.Compensate(context.WithoutCancel(ctx)))
		}
	}()

	now := h.now()
	trackingID, err := h.reserveTrackingID(ctx, now, sg)
	if err != nil {
		return err
	}

	p, err := parcel.NewParcel(cmd.ParcelID(), trackingID, details, quote.Total, cmd.Actor(), now)
	if err != nil {
		return err
	}

	entry, err := h.workflow.Book(p, cmd.Actor().String())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ParcelRepository().Add(ctx, p); err != nil {
		return err
	}

	if err = h.recorder.Record(ctx, uow.TrackingLogRepository(), uow.OutboxRepository(), entry); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	sg.Clear()
	return nil
}

func (h CreateParcelCommandHandler) details(cmd CreateParcelCommand) (parcel.Details, error) {
	sender, senderErr := h.party(cmd.Sender(), true)
	receiver, receiverErr := h.party(cmd.Receiver(), false)
	if err := errors.Join(senderErr, receiverErr); err != nil {
		return parcel.Details{}, err
	}

	return parcel.NewDetails(
		cmd.ParcelType(),
		cmd.Name(),
		cmd.WeightKg(),
		sender,
		receiver,
		cmd.PickupInstruction(),
		cmd.DeliveryInstruction(),
	)
}

func (h CreateParcelCommandHandler) party(form PartyForm, emailRequired bool) (parcel.Party, error) {
	zone, zoneErr := h.zones.Resolve(form.District)

	var (
		email    kernel.Email
		emailErr error
	)
	if emailRequired || strings.TrimSpace(form.Email) != "" {
		email, emailErr = kernel.NewEmail(form.Email)
	}

	if err := errors.Join(zoneErr, emailErr); err != nil {
		return parcel.Party{}, err
	}
	return parcel.NewParty(form.Name, email, form.Contact, form.Address, zone)
}

func (h CreateParcelCommandHandler) reserveTrackingID(
	ctx context.Context,
	now time.Time,
	sg *saga.Saga,
) (parcel.TrackingID, error) {
	for range trackingIDAttempts {
		candidate := parcel.GenerateTrackingID(now)
		ok, err := h.registry.Reserve(ctx, candidate.String(), trackingIDReservationTTL)
		if err != nil {
			return parcel.TrackingID{}, err
		}
		if !ok {
			continue
		}

		sg.Add("release tracking id "+candidate.String(), func(ctx context.Context) error {
			return h.registry.Release(ctx, candidate.String())
		})
		return candidate, nil
	}
	return parcel.TrackingID{}, ErrTrackingIDUnavailable
}
