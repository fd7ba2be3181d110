// Package rediscache holds the Redis adapters: the parcel read cache and the
// tracking id registry. Both share one client.
package rediscache

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// NewClient connects to addr and checks the server answers.
func NewClient(ctx context.Context, addr string) (*redis.Client, error) {
	c := redis.NewClient(&redis.Options{Addr: addr})
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, errors.Wrap(err, "redis ping")
	}
	return c, nil
}
