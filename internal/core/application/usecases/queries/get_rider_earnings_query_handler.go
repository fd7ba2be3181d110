package queries

import (
	"context"
	"time"

	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/core/domain/model/parcel"
	"trackmate/internal/core/domain/services"
	"trackmate/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetRiderEarningsQueryHandler projects rider earnings from delivered
// parcels. Nothing is stored: the summary is recomputed on every call with
// the configured earnings policy.
type GetRiderEarningsQueryHandler struct {
	db     *gorm.DB
	policy services.EarningsPolicy
}

// NewGetRiderEarningsQueryHandler creates the earnings handler.
func NewGetRiderEarningsQueryHandler(db *gorm.DB, policy services.EarningsPolicy) GetRiderEarningsQueryHandler {
	return GetRiderEarningsQueryHandler{db: db, policy: policy}
}

// Handle returns the summary or an ObjectNotFoundError for an unknown rider.
func (h GetRiderEarningsQueryHandler) Handle(ctx context.Context, query GetRiderEarningsQuery) (EarningsView, error) {
	if err := query.Validate(); err != nil {
		return EarningsView{}, err
	}

	var riders int64
	err := h.db.WithContext(ctx).Raw(`SELECT COUNT(*) FROM riders WHERE id = ?`, query.RiderID().Google()).
		Scan(&riders).Error
	if err != nil {
		return EarningsView{}, err
	}
	if riders == 0 {
		return EarningsView{}, errs.NewObjectNotFoundError("riderId", query.RiderID())
	}

	deliveries, err := h.deliveries(ctx, query.RiderID())
	if err != nil {
		return EarningsView{}, err
	}

	summary, err := h.policy.Summarize(deliveries, query.Period(), query.At())
	if err != nil {
		return EarningsView{}, err
	}

	return EarningsView{
		RiderID:          query.RiderID().String(),
		Period:           summary.Period.String(),
		Deliveries:       summary.Deliveries,
		Total:            summary.Total.Amount(),
		CashedOut:        summary.CashedOut.Amount(),
		Pending:          summary.Pending.Amount(),
		PeriodDeliveries: summary.PeriodDeliveries,
		PeriodTotal:      summary.PeriodTotal.Amount(),
	}, nil
}

func (h GetRiderEarningsQueryHandler) deliveries(ctx context.Context, riderID kernel.UUID) ([]services.Delivery, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT price, sender_district, receiver_district, cashout_status, delivered_at
		FROM parcels
		WHERE rider_id = ? AND delivery_status = ?
		ORDER BY delivered_at, id
	`, riderID.Google(), int(parcel.Delivered)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deliveries := make([]services.Delivery, 0)
	for rows.Next() {
		var (
			price                      decimal.Decimal
			senderDistrict, toDistrict string
			cashout                    int
			deliveredAt                time.Time
		)
		if err = rows.Scan(&price, &senderDistrict, &toDistrict, &cashout, &deliveredAt); err != nil {
			return nil, err
		}

		money, moneyErr := kernel.NewMoney(price)
		if moneyErr != nil {
			return nil, moneyErr
		}

		deliveries = append(deliveries, services.Delivery{
			Price:       money,
			SameZone:    kernel.ZoneKey(senderDistrict) == kernel.ZoneKey(toDistrict),
			CashedOut:   parcel.CashoutStatus(cashout) == parcel.CashedOut,
			DeliveredAt: deliveredAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
