package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/core/domain/model/tracking"
	"trackmate/internal/core/ports"
)

// DefaultStatusChangedTopic is used when no topic is configured.
const DefaultStatusChangedTopic = "parcel.status_changed"

// StatusChangedEvent is the integration event published for every tracking
// log entry. It has the same shape as the tracking log on the REST API.
type StatusChangedEvent struct {
	TrackingID     string    `json:"trackingId"`
	DeliveryStatus string    `json:"deliveryStatus"`
	Details        string    `json:"details"`
	UpdatedBy      string    `json:"updatedBy"`
	CreatedAt      time.Time `json:"createdAt"`
}

// NewStatusChangedEvent maps a log entry to its event.
func NewStatusChangedEvent(entry tracking.LogEntry) StatusChangedEvent {
	return StatusChangedEvent{
		TrackingID:     entry.TrackingID().String(),
		DeliveryStatus: entry.Status().String(),
		Details:        entry.Details(),
		UpdatedBy:      entry.Actor(),
		CreatedAt:      entry.Timestamp(),
	}
}

// TrackingRecorder appends a tracking log entry and queues its
// status-changed event in the outbox. Both writes go through the caller's
// transaction.
type TrackingRecorder struct {
	topic string
}

// NewTrackingRecorder creates a recorder publishing to topic, or to
// DefaultStatusChangedTopic when topic is blank.
func NewTrackingRecorder(topic string) TrackingRecorder {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		topic = DefaultStatusChangedTopic
	}
	return TrackingRecorder{topic: topic}
}

// Topic returns the outbox topic of status-changed events.
func (r TrackingRecorder) Topic() string {
	return r.topic
}

// Record appends entry to the log and its event to the outbox.
func (r TrackingRecorder) Record(
	ctx context.Context,
	logRepo ports.TrackingLogRepository,
	outboxRepo ports.OutboxRepository,
	entry tracking.LogEntry,
) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	payload, err := json.Marshal(NewStatusChangedEvent(entry))
	if err != nil {
		return fmt.Errorf("marshal status changed event: %w", err)
	}

	if err = logRepo.Append(ctx, entry); err != nil {
		return err
	}

	return outboxRepo.Add(ctx, ports.OutboxMessage{
		ID:        kernel.NewUUID(),
		Topic:     r.topic,
		Key:       entry.TrackingID().String(),
		Payload:   payload,
		CreatedAt: entry.Timestamp(),
	})
}
