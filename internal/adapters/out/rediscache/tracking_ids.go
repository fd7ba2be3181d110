package rediscache

import (
	"context"
	"strings"
	"time"

	"trackmate/internal/core/ports"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

var _ ports.TrackingIDRegistry = (*TrackingIDRegistry)(nil)

const trackingIDKeyPrefix = "parcel:tracking-id:"

// TrackingIDRegistry reserves tracking ids with SET NX. The reservation
// only has to outlive the booking transaction; the unique index on the
// parcels table stays the final guard.
type TrackingIDRegistry struct {
	c *redis.Client
}

func NewTrackingIDRegistry(c *redis.Client) *TrackingIDRegistry {
	return &TrackingIDRegistry{c: c}
}

// Reserve returns false when another booking holds the id.
func (r *TrackingIDRegistry) Reserve(ctx context.Context, trackingID string, ttl time.Duration) (bool, error) {
	ok, err := r.c.SetNX(ctx, trackingIDKey(trackingID), time.Now().UTC().Format(time.RFC3339Nano), ttl).Result()
	if err != nil {
		return false, errors.Wrap(err, "redis reserve tracking id")
	}
	return ok, nil
}

func (r *TrackingIDRegistry) Release(ctx context.Context, trackingID string) error {
	if err := r.c.Del(ctx, trackingIDKey(trackingID)).Err(); err != nil {
		return errors.Wrap(err, "redis release tracking id")
	}
	return nil
}

func trackingIDKey(trackingID string) string {
	return trackingIDKeyPrefix + strings.ToUpper(trackingID)
}
