package queries

import (
	"context"

	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/core/domain/model/parcel"
	"trackmate/internal/core/domain/services"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GetRiderParcelsQueryHandler reads a rider's parcels and projects the
// earning of the delivered ones.
type GetRiderParcelsQueryHandler struct {
	db     *gorm.DB
	policy services.EarningsPolicy
}

// NewGetRiderParcelsQueryHandler creates a handler for rider parcel lists.
func NewGetRiderParcelsQueryHandler(db *gorm.DB, policy services.EarningsPolicy) GetRiderParcelsQueryHandler {
	return GetRiderParcelsQueryHandler{db: db, policy: policy}
}

// Handle returns the rider's parcels, most recently assigned first.
func (h GetRiderParcelsQueryHandler) Handle(ctx context.Context, query GetRiderParcelsQuery) ([]RiderParcelView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	statuses := make([]int64, 0, len(query.Statuses()))
	for _, s := range query.Statuses() {
		statuses = append(statuses, int64(s))
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+parcelColumns+`
		FROM parcels p
		WHERE p.rider_id = ?
		  AND (cardinality(?::smallint[]) = 0 OR p.delivery_status = ANY(?::smallint[]))
		ORDER BY p.assigned_at DESC, p.id
	`, query.RiderID().Google(), pq.Array(statuses), pq.Array(statuses)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	parcels, err := scanParcels(rows)
	if err != nil {
		return nil, err
	}

	views := make([]RiderParcelView, 0, len(parcels))
	for _, p := range parcels {
		view := RiderParcelView{ParcelView: p}
		if p.DeliveryStatus == parcel.Delivered.String() {
			earning, shareErr := h.share(p)
			if shareErr != nil {
				return nil, shareErr
			}
			amount := earning.Amount()
			view.Earning = &amount
		}
		views = append(views, view)
	}

	return views, nil
}

func (h GetRiderParcelsQueryHandler) share(p ParcelView) (kernel.Money, error) {
	price, err := kernel.NewMoney(p.Price)
	if err != nil {
		return kernel.Money{}, err
	}
	return h.policy.Share(services.Delivery{Price: price, SameZone: p.SameZone})
}
