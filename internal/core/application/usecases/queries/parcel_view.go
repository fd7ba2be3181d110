// Package queries implements the read side of the parcel service. Handlers
// run raw SQL through GORM and return flat views that are serialized as is.
package queries

import (
	"database/sql"
	"time"

	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/core/domain/model/parcel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PartyView is a sender or receiver as stored on the parcel.
type PartyView struct {
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Contact  string `json:"contact"`
	Address  string `json:"address"`
	Region   string `json:"region"`
	District string `json:"district"`
}

// ParcelView is the read model of a parcel.
type ParcelView struct {
	ID                  string          `json:"id"`
	TrackingID          string          `json:"trackingId"`
	ParcelType          string          `json:"parcelType"`
	Name                string          `json:"name"`
	WeightKg            decimal.Decimal `json:"weightKg"`
	Sender              PartyView       `json:"sender"`
	Receiver            PartyView       `json:"receiver"`
	SameZone            bool            `json:"sameZone"`
	PickupInstruction   string          `json:"pickupInstruction,omitempty"`
	DeliveryInstruction string          `json:"deliveryInstruction,omitempty"`
	Price               decimal.Decimal `json:"price"`
	PaymentStatus       string          `json:"paymentStatus"`
	DeliveryStatus      string          `json:"deliveryStatus"`
	CashoutStatus       string          `json:"cashoutStatus"`
	RiderID             *string         `json:"riderId,omitempty"`
	CreatedBy           string          `json:"createdBy"`
	CreatedAt           time.Time       `json:"createdAt"`
	AssignedAt          *time.Time      `json:"assignedAt,omitempty"`
	PickedAt            *time.Time      `json:"pickedAt,omitempty"`
	DeliveredAt         *time.Time      `json:"deliveredAt,omitempty"`
	PaidAt              *time.Time      `json:"paidAt,omitempty"`
	CashedOutAt         *time.Time      `json:"cashedOutAt,omitempty"`
	Version             int             `json:"version"`
}

// parcelColumns must stay in the order scanParcel reads them.
const parcelColumns = `
	p.id, p.tracking_id, p.type, p.name, p.weight_kg,
	p.sender_name, p.sender_email, p.sender_contact, p.sender_address, p.sender_region, p.sender_district,
	p.receiver_name, p.receiver_email, p.receiver_contact, p.receiver_address, p.receiver_region, p.receiver_district,
	p.pickup_instruction, p.delivery_instruction, p.price,
	p.payment_status, p.delivery_status, p.cashout_status, p.rider_id, p.created_by,
	p.created_at, p.assigned_at, p.picked_at, p.delivered_at, p.paid_at, p.cashed_out_at, p.version`

// scanParcel reads one row selected with parcelColumns, followed by extra
// destinations for any columns the caller appended.
func scanParcel(rows *sql.Rows, extra ...any) (ParcelView, error) {
	var (
		v                                      ParcelView
		id                                     uuid.UUID
		riderID                                uuid.NullUUID
		parcelType, payment, delivery, cashout int
	)

	dest := []any{
		&id, &v.TrackingID, &parcelType, &v.Name, &v.WeightKg,
		&v.Sender.Name, &v.Sender.Email, &v.Sender.Contact, &v.Sender.Address, &v.Sender.Region, &v.Sender.District,
		&v.Receiver.Name, &v.Receiver.Email, &v.Receiver.Contact, &v.Receiver.Address, &v.Receiver.Region, &v.Receiver.District,
		&v.PickupInstruction, &v.DeliveryInstruction, &v.Price,
		&payment, &delivery, &cashout, &riderID, &v.CreatedBy,
		&v.CreatedAt, &v.AssignedAt, &v.PickedAt, &v.DeliveredAt, &v.PaidAt, &v.CashedOutAt, &v.Version,
	}
	if err := rows.Scan(append(dest, extra...)...); err != nil {
		return ParcelView{}, err
	}

	v.ID = id.String()
	if riderID.Valid {
		s := riderID.UUID.String()
		v.RiderID = &s
	}
	v.ParcelType = parcel.Type(parcelType).String()
	v.PaymentStatus = parcel.PaymentStatus(payment).String()
	v.DeliveryStatus = parcel.DeliveryStatus(delivery).String()
	v.CashoutStatus = parcel.CashoutStatus(cashout).String()
	v.SameZone = kernel.ZoneKey(v.Sender.District) == kernel.ZoneKey(v.Receiver.District)

	v.CreatedAt = v.CreatedAt.UTC()
	for _, t := range []**time.Time{&v.AssignedAt, &v.PickedAt, &v.DeliveredAt, &v.PaidAt, &v.CashedOutAt} {
		if *t != nil {
			u := (*t).UTC()
			*t = &u
		}
	}

	return v, nil
}

func scanParcels(rows *sql.Rows) ([]ParcelView, error) {
	parcels := make([]ParcelView, 0)
	for rows.Next() {
		v, err := scanParcel(rows)
		if err != nil {
			return nil, err
		}
		parcels = append(parcels, v)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return parcels, nil
}
