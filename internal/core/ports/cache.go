package ports

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// BytesCache is a best-effort key/value cache for read models.
type BytesCache interface {
	// Get reports ok == false on a miss.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// ParcelCacheKey is the cache key of the parcel read model by tracking id.
func ParcelCacheKey(trackingID string) string {
	return fmt.Sprintf("parcel:tracking:%s", strings.ToUpper(trackingID))
}

// TrackingIDRegistry reserves tracking ids before a parcel is stored, so two
// concurrent bookings never try to store the same one.
type TrackingIDRegistry interface {
	// Reserve returns false when the id is already taken.
	Reserve(ctx context.Context, trackingID string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, trackingID string) error
}
