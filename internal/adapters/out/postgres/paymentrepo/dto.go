// Package paymentrepo stores parcel payment receipts in the payments table.
package paymentrepo

import (
	"time"

	"trackmate/internal/core/domain/model/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentDTO is one receipt. ParcelID is unique: a parcel is paid once.
// Method holds payment.Method.
type PaymentDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ParcelID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_payments_parcel_id"`
	TrackingID      string          `gorm:"not null"`
	PayerEmail      string          `gorm:"not null;index"`
	Amount          decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Method          int             `gorm:"not null"`
	PaymentIntentID string          `gorm:"not null;default:''"`
	Status          string          `gorm:"not null"`
	PaidAt          time.Time       `gorm:"not null"`
}

// TableName specifies the database table name for payments.
func (PaymentDTO) TableName() string {
	return "payments"
}

func fromDomain(p *payment.Payment) PaymentDTO {
	return PaymentDTO{
		ID:              p.ID().Google(),
		ParcelID:        p.ParcelID().Google(),
		TrackingID:      p.TrackingID().String(),
		PayerEmail:      p.Payer().String(),
		Amount:          p.Amount().Amount(),
		Method:          int(p.Method()),
		PaymentIntentID: p.PaymentIntentID(),
		Status:          p.Status(),
		PaidAt:          p.PaidAt(),
	}
}
