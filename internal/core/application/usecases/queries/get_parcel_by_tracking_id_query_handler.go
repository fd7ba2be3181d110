package queries

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"trackmate/internal/core/ports"
	"trackmate/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetParcelByTrackingIDQueryHandler reads a parcel by tracking id through a
// read-through cache. Commands that change a parcel evict its entry.
//
// The cache is best effort: a failing cache is logged and the database
// answers instead.
type GetParcelByTrackingIDQueryHandler struct {
	db     *gorm.DB
	cache  ports.BytesCache
	ttl    time.Duration
	logger *slog.Logger
}

// NewGetParcelByTrackingIDQueryHandler creates the cached tracking lookup.
func NewGetParcelByTrackingIDQueryHandler(
	db *gorm.DB,
	cache ports.BytesCache,
	ttl time.Duration,
	logger *slog.Logger,
) GetParcelByTrackingIDQueryHandler {
	return GetParcelByTrackingIDQueryHandler{
		db:     db,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// Handle returns the parcel or an ObjectNotFoundError. Misses are not cached.
func (h GetParcelByTrackingIDQueryHandler) Handle(
	ctx context.Context,
	query GetParcelByTrackingIDQuery,
) (ParcelView, error) {
	if err := query.Validate(); err != nil {
		return ParcelView{}, err
	}

	key := ports.ParcelCacheKey(query.TrackingID().String())
	if view, ok := h.cached(ctx, key); ok {
		return view, nil
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+parcelColumns+`
		FROM parcels p
		WHERE p.tracking_id = ?
	`, query.TrackingID().String()).Rows()
	if err != nil {
		return ParcelView{}, err
	}
	defer rows.Close()

	parcels, err := scanParcels(rows)
	if err != nil {
		return ParcelView{}, err
	}
	if len(parcels) == 0 {
		return ParcelView{}, errs.NewObjectNotFoundError("trackingId", query.TrackingID())
	}

	h.store(ctx, key, parcels[0])
	return parcels[0], nil
}

func (h GetParcelByTrackingIDQueryHandler) cached(ctx context.Context, key string) (ParcelView, bool) {
	raw, ok, err := h.cache.Get(ctx, key)
	if err != nil {
		h.logger.WarnContext(ctx, "parcel cache read failed", "key", key, "error", err)
		return ParcelView{}, false
	}
	if !ok {
		return ParcelView{}, false
	}

	var view ParcelView
	if err = json.Unmarshal(raw, &view); err != nil {
		h.logger.WarnContext(ctx, "dropping undecodable parcel cache entry", "key", key, "error", err)
		return ParcelView{}, false
	}
	return view, true
}

func (h GetParcelByTrackingIDQueryHandler) store(ctx context.Context, key string, view ParcelView) {
	raw, err := json.Marshal(view)
	if err != nil {
		h.logger.WarnContext(ctx, "parcel cache encode failed", "key", key, "error", err)
		return
	}
	if err = h.cache.Set(ctx, key, raw, h.ttl); err != nil {
		h.logger.WarnContext(ctx, "parcel cache write failed", "key", key, "error", err)
	}
}
