// Package tracking holds the append-only audit record of a parcel's
// delivery-status changes.
package tracking

import (
	"errors"
	"strings"
	"time"

	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/core/domain/model/parcel"
	"trackmate/internal/pkg/errs"
)

// SystemActor is recorded when a transition is made by a scheduled job.
const SystemActor = "system"

// ErrLogEntryIsNotConstructed is returned for a zero LogEntry.
var ErrLogEntryIsNotConstructed = errors.New("LogEntry must be created via NewLogEntry constructor")

// LogEntry records that a parcel reached a status: who did it, when and
// why. Entries are immutable and are never updated or removed.
type LogEntry struct {
	id            kernel.UUID
	trackingID    parcel.TrackingID
	status        parcel.DeliveryStatus
	details       string
	actor         string
	timestamp     time.Time
	isConstructed bool
}

// NewLogEntry validates and builds an entry. When details is blank a
// default sentence for the status is used.
func NewLogEntry(
	id kernel.UUID,
	trackingID parcel.TrackingID,
	status parcel.DeliveryStatus,
	details string,
	actor string,
	timestamp time.Time,
) (LogEntry, error) {
	actor = strings.TrimSpace(actor)
	var actorErr error
	if actor == "" {
		actorErr = errs.NewValueIsRequiredError("actor")
	}
	var timeErr error
	if timestamp.IsZero() {
		timeErr = errs.NewValueIsRequiredError("timestamp")
	}
	if err := errors.Join(id.Validate(), trackingID.Validate(), status.Validate(), actorErr, timeErr); err != nil {
		return LogEntry{}, err
	}

	details = strings.TrimSpace(details)
	if details == "" {
		details = DefaultDetails(status)
	}

	return LogEntry{
		id:            id,
		trackingID:    trackingID,
		status:        status,
		details:       details,
		actor:         actor,
		timestamp:     timestamp.UTC(),
		isConstructed: true,
	}, nil
}

// DefaultDetails is the sentence recorded when the actor gave none.
func DefaultDetails(status parcel.DeliveryStatus) string {
	switch status {
	case parcel.Processing:
		return "Parcel booked and awaiting rider assignment"
	case parcel.RiderAssigned:
		return "Rider assigned to the parcel"
	case parcel.InTransit:
		return "Parcel picked up by the rider"
	case parcel.Delivered:
		return "Parcel delivered to the receiver"
	case parcel.UnknownDeliveryStatus:
	}
	return status.String()
}

func (e LogEntry) Validate() error {
	if !e.isConstructed {
		return ErrLogEntryIsNotConstructed
	}
	return nil
}

func (e LogEntry) ID() kernel.UUID               { return e.id }
func (e LogEntry) TrackingID() parcel.TrackingID { return e.trackingID }
func (e LogEntry) Status() parcel.DeliveryStatus { return e.status }
func (e LogEntry) Details() string               { return e.details }
func (e LogEntry) Actor() string                 { return e.actor }
func (e LogEntry) Timestamp() time.Time          { return e.timestamp }
