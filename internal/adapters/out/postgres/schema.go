package postgres

import (
	"trackmate/internal/adapters/out/postgres/cashoutrepo"
	"trackmate/internal/adapters/out/postgres/outboxrepo"
	"trackmate/internal/adapters/out/postgres/parcelrepo"
	"trackmate/internal/adapters/out/postgres/paymentrepo"
	"trackmate/internal/adapters/out/postgres/riderrepo"
	"trackmate/internal/adapters/out/postgres/trackinglogrepo"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Tables lists every table of the service, in truncation-safe order.
var Tables = []string{"outbox_messages", "cashouts", "payments", "tracking_logs", "parcels", "riders"}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&riderrepo.RiderDTO{},
		&parcelrepo.ParcelDTO{},
		&trackinglogrepo.TrackingLogDTO{},
		&cashoutrepo.CashoutDTO{},
		&paymentrepo.PaymentDTO{},
		&outboxrepo.OutboxDTO{},
	)
	return errors.Wrap(err, "migrate schema")
}
