// Package cashoutrepo stores rider payout requests in the cashouts table.
package cashoutrepo

import (
	"time"

	"trackmate/internal/core/domain/model/cashout"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// CashoutDTO is a payout request. ParcelIDs lists the parcels it settled.
type CashoutDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RiderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	ParcelIDs   pq.StringArray  `gorm:"type:text[];not null"`
	RequestedAt time.Time       `gorm:"not null"`
}

// TableName specifies the database table name for cashouts.
func (CashoutDTO) TableName() string {
	return "cashouts"
}

func fromDomain(c *cashout.Cashout) CashoutDTO {
	ids := c.ParcelIDs()
	parcelIDs := make(pq.StringArray, 0, len(ids))
	for _, id := range ids {
		parcelIDs = append(parcelIDs, id.String())
	}

	return CashoutDTO{
		ID:          c.ID().Google(),
		RiderID:     c.RiderID().Google(),
		Amount:      c.Amount().Amount(),
		ParcelIDs:   parcelIDs,
		RequestedAt: c.RequestedAt(),
	}
}
