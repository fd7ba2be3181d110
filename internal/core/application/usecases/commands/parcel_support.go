package commands

import (
	"context"
	"log/slog"

	"trackmate/internal/core/domain/model/parcel"
	"trackmate/internal/core/ports"
	"trackmate/internal/pkg/saga"
)

// evictParcels drops the cached read models of the given parcels. It must
// run after the commit: a reader that fills the cache from the old row while
// the transaction is still open would otherwise leave a stale entry behind.
// The command has already succeeded at that point, so a failed delete is only
// logged and the entry expires with its TTL.
func evictParcels(ctx context.Context, cache ports.BytesCache, trackingIDs ...parcel.TrackingID) {
	if len(trackingIDs) == 0 {
		return
	}

	keys := make([]string, 0, len(trackingIDs))
	for _, id := range trackingIDs {
		keys = append(keys, ports.ParcelCacheKey(id.String()))
	}
	if err := cache.Delete(ctx, keys...); err != nil {
		slog.Default().WarnContext(ctx, "parcel cache eviction failed",
			"component", "commands", "keys", keys, "error", err)
	}
}

// keepSnapshot registers the undo of an in-memory change to p that is about
// to be made.
func keepSnapshot(sg *saga.Saga, p *parcel.Parcel) {
	snapshot := p.Snapshot()
	sg.Add("revert parcel "+snapshot.TrackingID.String(), func(context.Context) error {
		return p.Revert(snapshot)
	})
}
