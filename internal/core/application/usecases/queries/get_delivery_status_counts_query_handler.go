package queries

import (
	"context"

	"trackmate/internal/core/domain/model/parcel"

	"gorm.io/gorm"
)

// GetDeliveryStatusCountsQueryHandler counts parcels per delivery status.
type GetDeliveryStatusCountsQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryStatusCountsQueryHandler creates the dashboard handler.
func NewGetDeliveryStatusCountsQueryHandler(db *gorm.DB) GetDeliveryStatusCountsQueryHandler {
	return GetDeliveryStatusCountsQueryHandler{db: db}
}

// Handle returns one count per status in workflow order, zero included.
func (h GetDeliveryStatusCountsQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryStatusCountsQuery,
) ([]DeliveryStatusCount, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT delivery_status, COUNT(*)
		FROM parcels
		GROUP BY delivery_status
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byStatus := make(map[parcel.DeliveryStatus]int)
	for rows.Next() {
		var status, count int
		if err = rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		byStatus[parcel.DeliveryStatus(status)] = count
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	counts := make([]DeliveryStatusCount, 0, len(parcel.AllDeliveryStatuses()))
	for _, s := range parcel.AllDeliveryStatuses() {
		counts = append(counts, DeliveryStatusCount{DeliveryStatus: s.String(), Count: byStatus[s]})
	}

	return counts, nil
}
