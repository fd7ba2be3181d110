// Package parcelrepo provides data transfer objects and mapping functions for parcel persistence.
// Sender and receiver are embedded in the parcels table; statuses are stored as
// their enum ordinals and mapped back through the domain types.
package parcelrepo

import (
	"errors"
	"time"

	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/core/domain/model/parcel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ParcelDTO represents the database structure for persisting parcel aggregates.
type ParcelDTO struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TrackingID          string          `gorm:"type:varchar(32);not null;uniqueIndex:idx_parcels_tracking_id"`
	Type                int             `gorm:"type:smallint;not null"`
	Name                string          `gorm:"type:varchar(255);not null"`
	WeightKg            decimal.Decimal `gorm:"type:numeric(10,3);not null"`
	Sender              PartyDTO        `gorm:"embedded;embeddedPrefix:sender_"`
	Receiver            PartyDTO        `gorm:"embedded;embeddedPrefix:receiver_"`
	PickupInstruction   string          `gorm:"type:text"`
	DeliveryInstruction string          `gorm:"type:text"`
	Price               decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PaymentStatus       int             `gorm:"type:smallint;not null"`
	DeliveryStatus      int             `gorm:"type:smallint;not null;index"`
	CashoutStatus       int             `gorm:"type:smallint;not null"`
	RiderID             *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedBy           string          `gorm:"type:varchar(255);not null;index"`
	CreatedAt           time.Time       `gorm:"not null"`
	AssignedAt          *time.Time
	PickedAt            *time.Time
	DeliveredAt         *time.Time
	PaidAt              *time.Time
	CashedOutAt         *time.Time
	Version             int `gorm:"not null;default:0"`
}

// TableName specifies the database table name for parcel entities.
func (ParcelDTO) TableName() string {
	return "parcels"
}

// PartyDTO is a sender or receiver embedded in the parcel row. An empty
// Email means the party has none on file.
type PartyDTO struct {
	Name     string `gorm:"type:varchar(255);not null"`
	Email    string `gorm:"type:varchar(255)"`
	Contact  string `gorm:"type:varchar(64);not null"`
	Address  string `gorm:"type:text;not null"`
	Region   string `gorm:"type:varchar(128);not null"`
	District string `gorm:"type:varchar(128);not null"`
}

func fromDomain(p *parcel.Parcel) ParcelDTO {
	var riderID *uuid.UUID
	if id := p.Rider(); id != nil {
		raw := id.Google()
		riderID = &raw
	}

	d := p.Details()
	return ParcelDTO{
		ID:                  p.ID().Google(),
		TrackingID:          p.TrackingID().String(),
		Type:                int(d.Type()),
		Name:                d.Name(),
		WeightKg:            d.WeightKg(),
		Sender:              partyFromDomain(d.Sender()),
		Receiver:            partyFromDomain(d.Receiver()),
		PickupInstruction:   d.PickupInstruction(),
		DeliveryInstruction: d.DeliveryInstruction(),
		Price:               p.Price().Amount(),
		PaymentStatus:       int(p.PaymentStatus()),
		DeliveryStatus:      int(p.DeliveryStatus()),
		CashoutStatus:       int(p.CashoutStatus()),
		RiderID:             riderID,
		CreatedBy:           p.CreatedBy().String(),
		CreatedAt:           p.CreatedAt(),
		AssignedAt:          p.AssignedAt(),
		PickedAt:            p.PickedAt(),
		DeliveredAt:         p.DeliveredAt(),
		PaidAt:              p.PaidAt(),
		CashedOutAt:         p.CashedOutAt(),
		Version:             p.Version(),
	}
}

func partyFromDomain(p parcel.Party) PartyDTO {
	var email string
	if !p.Email().IsZero() {
		email = p.Email().String()
	}
	return PartyDTO{
		Name:     p.Name(),
		Email:    email,
		Contact:  p.Contact(),
		Address:  p.Address(),
		Region:   p.Zone().Region(),
		District: p.Zone().District(),
	}
}

// toDomain rebuilds the aggregate through RestoreParcel, so a corrupt row
// surfaces as a validation error instead of an inconsistent parcel.
func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}

	trackingID, err := parcel.TrackingIDFromString(dto.TrackingID)
	if err != nil {
		return nil, err
	}

	sender, senderErr := partyToDomain(dto.Sender)
	receiver, receiverErr := partyToDomain(dto.Receiver)
	if err = errors.Join(senderErr, receiverErr); err != nil {
		return nil, err
	}

	details, err := parcel.NewDetails(
		parcel.Type(dto.Type),
		dto.Name,
		dto.WeightKg,
		sender,
		receiver,
		dto.PickupInstruction,
		dto.DeliveryInstruction,
	)
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}

	createdBy, err := kernel.NewEmail(dto.CreatedBy)
	if err != nil {
		return nil, err
	}

	var riderID *kernel.UUID
	if dto.RiderID != nil {
		rID, riderErr := kernel.UUIDFromGoogle(*dto.RiderID)
		if riderErr != nil {
			return nil, riderErr
		}
		riderID = &rID
	}

	return parcel.RestoreParcel(parcel.State{
		ID:             id,
		TrackingID:     trackingID,
		Details:        details,
		Price:          price,
		PaymentStatus:  parcel.PaymentStatus(dto.PaymentStatus),
		DeliveryStatus: parcel.DeliveryStatus(dto.DeliveryStatus),
		CashoutStatus:  parcel.CashoutStatus(dto.CashoutStatus),
		RiderID:        riderID,
		CreatedBy:      createdBy,
		CreatedAt:      dto.CreatedAt.UTC(),
		AssignedAt:     utc(dto.AssignedAt),
		PickedAt:       utc(dto.PickedAt),
		DeliveredAt:    utc(dto.DeliveredAt),
		PaidAt:         utc(dto.PaidAt),
		CashedOutAt:    utc(dto.CashedOutAt),
		Version:        dto.Version,
	})
}

func partyToDomain(dto PartyDTO) (parcel.Party, error) {
	zone, err := kernel.NewZone(dto.Region, dto.District)
	if err != nil {
		return parcel.Party{}, err
	}

	var email kernel.Email
	if dto.Email != "" {
		if email, err = kernel.NewEmail(dto.Email); err != nil {
			return parcel.Party{}, err
		}
	}

	return parcel.NewParty(dto.Name, email, dto.Contact, dto.Address, zone)
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
