package ports

import (
	"context"

	"trackmate/internal/core/domain/model/tracking"
)

// TrackingLogRepository appends tracking log entries. The log is
// append-only: there is no update or delete. Reads go through queries.
type TrackingLogRepository interface {
	Append(ctx context.Context, entry tracking.LogEntry) error
}
