package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"trackmate/cmd"
	httpin "trackmate/internal/adapters/in/http"
	"trackmate/internal/adapters/in/stripewebhook"
	postgres_adapter "trackmate/internal/adapters/out/postgres"
	"trackmate/internal/adapters/out/zonecatalog"
	"trackmate/internal/core/application/usecases/queries"
	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/core/ports"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/stripe/stripe-go/v79/webhook"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	senderEmail = "sender@example.com"
	riderEmail  = "jamal@rider.test"
	adminEmail  = "admin@example.com"
)

// ServerIntegrationTestSuite drives the REST API wired by the composition
// root against PostgreSQL and an in-memory Redis.
type ServerIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	redis     *miniredis.Miniredis
	router    *echo.Echo
}

func (suite *ServerIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db
	suite.Require().NoError(postgres_adapter.Migrate(db))

	suite.redis, err = miniredis.Run()
	suite.Require().NoError(err)

	zones, err := zonecatalog.Load("../../../../configs/zones.yaml")
	suite.Require().NoError(err)

	configs := cmd.Config{
		ParcelCacheTTL:       time.Minute,
		StripeWebhookSecret:  webhookSecret,
		EarningSameZoneRate:  decimal.RequireFromString("0.8"),
		EarningCrossZoneRate: decimal.RequireFromString("0.3"),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	root, err := cmd.NewCompositionRoot(
		configs, db, redis.NewClient(&redis.Options{Addr: suite.redis.Addr()}), nil, zones, logger,
	)
	suite.Require().NoError(err)

	suite.router, err = root.CreateRouter()
	suite.Require().NoError(err)
}

func (suite *ServerIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE " + strings.Join(postgres_adapter.Tables, ", ")).Error
	suite.Require().NoError(err)
	suite.redis.FlushAll()
}

func (suite *ServerIntegrationTestSuite) TearDownSuite() {
	if suite.redis != nil {
		suite.redis.Close()
	}
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *ServerIntegrationTestSuite) request(method, target, body, actor string) *httptest.ResponseRecorder {
	headers := map[string]string{}
	if actor != "" {
		headers[httpin.ActorHeader] = actor
	}
	return do(suite.router, method, target, body, headers)
}

func (suite *ServerIntegrationTestSuite) decode(rec *httptest.ResponseRecorder, v any) {
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func (suite *ServerIntegrationTestSuite) activeRider() string {
	rec := suite.request(http.MethodPost, "/api/v1/riders",
		fmt.Sprintf(`{"name": "Jamal", "email": %q, "contact": "01900000000", "district": "Dhaka"}`, riderEmail), "")
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ID string `json:"id"`
	}
	suite.decode(rec, &created)

	rec = suite.request(http.MethodPatch, "/api/v1/riders/"+created.ID, `{"status": "Active"}`, "")
	suite.Require().Equal(http.StatusNoContent, rec.Code, rec.Body.String())

	return created.ID
}

func (suite *ServerIntegrationTestSuite) bookParcel(receiverDistrict string) queries.ParcelView {
	body := fmt.Sprintf(`{
		"parcelType": "Non-Document", "name": "Books", "weightKg": 3,
		"sender": {"name": "Rahim", "email": %q, "contact": "01711000000", "address": "House 7", "district": "Dhaka"},
		"receiver": {"name": "Karim", "contact": "01811000000", "address": "Road 2", "district": %q},
		"deliveryInstruction": "Call before arrival"
	}`, senderEmail, receiverDistrict)

	rec := suite.request(http.MethodPost, "/api/v1/parcels", body, senderEmail)
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var view queries.ParcelView
	suite.decode(rec, &view)
	return view
}

func (suite *ServerIntegrationTestSuite) TestParcelLifecycle() {
	riderID := suite.activeRider()

	booked := suite.bookParcel("Sylhet")
	suite.Equal("Processing", booked.DeliveryStatus)
	suite.Equal("Unpaid", booked.PaymentStatus)
	suite.False(booked.SameZone)
	suite.True(booked.Price.Equal(decimal.NewFromInt(150)), booked.Price.String())
	suite.NotEmpty(booked.TrackingID)

	// Read through the cache.
	rec := suite.request(http.MethodGet, "/api/v1/parcels/tracking/"+strings.ToLower(booked.TrackingID), "", "")
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	suite.True(suite.redis.Exists(ports.ParcelCacheKey(booked.TrackingID)))

	rec = suite.request(http.MethodPost, "/api/v1/parcels/"+booked.ID+"/assign",
		fmt.Sprintf(`{"riderId": %q, "details": "Assigned at the hub"}`, riderID), adminEmail)
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var assigned queries.ParcelView
	suite.decode(rec, &assigned)
	suite.Equal("Rider Assigned", assigned.DeliveryStatus)
	suite.Require().NotNil(assigned.RiderID)
	suite.Equal(riderID, *assigned.RiderID)
	suite.False(suite.redis.Exists(ports.ParcelCacheKey(booked.TrackingID)))

	rec = suite.request(http.MethodPatch, "/api/v1/parcels/"+booked.ID+"/status",
		`{"deliveryStatus": "In Transit"}`, "stranger@example.com")
	suite.Equal(http.StatusForbidden, rec.Code, rec.Body.String())

	for _, status := range []string{"In Transit", "Delivered"} {
		rec = suite.request(http.MethodPatch, "/api/v1/parcels/"+booked.ID+"/status",
			fmt.Sprintf(`{"deliveryStatus": %q, "details": "ok"}`, status), riderEmail)
		suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	}

	rec = suite.request(http.MethodPatch, "/api/v1/parcels/"+booked.ID+"/status",
		`{"deliveryStatus": "Delivered"}`, riderEmail)
	suite.Equal(http.StatusConflict, rec.Code, rec.Body.String())

	rec = suite.request(http.MethodGet, "/api/v1/riders/"+riderID+"/earnings?period=today", "", "")
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var earnings queries.EarningsView
	suite.decode(rec, &earnings)
	suite.Equal(1, earnings.Deliveries)
	suite.True(earnings.Total.Equal(decimal.NewFromInt(45)), earnings.Total.String())
	suite.True(earnings.Pending.Equal(decimal.NewFromInt(45)), earnings.Pending.String())
	suite.Equal(1, earnings.PeriodDeliveries)

	rec = suite.request(http.MethodGet, "/api/v1/riders/"+riderID+"/parcels?status=Delivered", "", "")
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var riderParcels []queries.RiderParcelView
	suite.decode(rec, &riderParcels)
	suite.Require().Len(riderParcels, 1)
	suite.Require().NotNil(riderParcels[0].Earning)
	suite.True(riderParcels[0].Earning.Equal(decimal.NewFromInt(45)))

	rec = suite.request(http.MethodPost, "/api/v1/riders/"+riderID+"/cashouts", "", senderEmail)
	suite.Equal(http.StatusForbidden, rec.Code, rec.Body.String())

	rec = suite.request(http.MethodPost, "/api/v1/riders/"+riderID+"/cashouts", "", riderEmail)
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	rec = suite.request(http.MethodPost, "/api/v1/riders/"+riderID+"/cashouts", "", riderEmail)
	suite.Equal(http.StatusConflict, rec.Code, rec.Body.String())

	rec = suite.request(http.MethodGet, "/api/v1/riders/"+riderID+"/cashouts", "", "")
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var cashouts []queries.CashoutView
	suite.decode(rec, &cashouts)
	suite.Require().Len(cashouts, 1)
	suite.True(cashouts[0].Amount.Equal(decimal.NewFromInt(45)))
	suite.Equal([]string{booked.ID}, cashouts[0].ParcelIDs)

	rec = suite.request(http.MethodGet, "/api/v1/trackings/"+booked.TrackingID, "", "")
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var log []queries.TrackingLogView
	suite.decode(rec, &log)
	suite.Require().Len(log, 4)
	suite.Equal("Processing", log[0].DeliveryStatus)
	suite.Equal("Delivered", log[3].DeliveryStatus)
	suite.Equal(riderEmail, log[3].UpdatedBy)

	rec = suite.request(http.MethodGet, "/api/v1/trackings/user/"+senderEmail, "", "")
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var userLog []queries.TrackingLogView
	suite.decode(rec, &userLog)
	suite.Len(userLog, 4)

	rec = suite.request(http.MethodGet, "/api/v1/parcels/delivery/status-count", "", "")
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var counts []queries.DeliveryStatusCount
	suite.decode(rec, &counts)
	suite.Require().Len(counts, 4)
	suite.Equal("Delivered", counts[3].DeliveryStatus)
	suite.Equal(1, counts[3].Count)

	rec = suite.request(http.MethodGet, "/api/v1/parcels?email="+senderEmail, "", "")
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var mine []queries.ParcelView
	suite.decode(rec, &mine)
	suite.Require().Len(mine, 1)
	suite.Equal("Cashed Out", mine[0].CashoutStatus)

	rec = suite.request(http.MethodPost, "/api/v1/parcels/"+booked.ID+"/pay", "", "")
	suite.Require().Equal(http.StatusNoContent, rec.Code, rec.Body.String())

	rec = suite.request(http.MethodGet, "/api/v1/parcels/"+booked.ID, "", "")
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var paid queries.ParcelView
	suite.decode(rec, &paid)
	suite.Equal("Paid", paid.PaymentStatus)
}

func (suite *ServerIntegrationTestSuite) TestDeleteParcel_OnlyOwner() {
	booked := suite.bookParcel("Dhaka")
	suite.True(booked.SameZone)

	rec := suite.request(http.MethodDelete, "/api/v1/parcels/"+booked.ID, "", "someone@example.com")
	suite.Equal(http.StatusForbidden, rec.Code, rec.Body.String())

	rec = suite.request(http.MethodDelete, "/api/v1/parcels/"+booked.ID, "", senderEmail)
	suite.Require().Equal(http.StatusNoContent, rec.Code, rec.Body.String())

	rec = suite.request(http.MethodGet, "/api/v1/parcels/"+booked.ID, "", "")
	suite.Equal(http.StatusNotFound, rec.Code, rec.Body.String())
}

func (suite *ServerIntegrationTestSuite) TestRiderApplications() {
	riderID := suite.activeRider()

	rec := suite.request(http.MethodPost, "/api/v1/riders",
		fmt.Sprintf(`{"name": "Jamal again", "email": %q, "contact": "01900000001", "district": "Dhaka"}`, riderEmail), "")
	suite.Equal(http.StatusConflict, rec.Code, rec.Body.String())

	rec = suite.request(http.MethodGet, "/api/v1/riders?status=Active", "", "")
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var riders []queries.RiderView
	suite.decode(rec, &riders)
	suite.Require().Len(riders, 1)
	suite.Equal(riderID, riders[0].ID)

	rec = suite.request(http.MethodGet, "/api/v1/riders?status=Active&search=dhak", "", "")
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	suite.decode(rec, &riders)
	suite.Require().Len(riders, 1)

	rec = suite.request(http.MethodGet, "/api/v1/riders?search=nobody", "", "")
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	suite.decode(rec, &riders)
	suite.Empty(riders)

	rec = suite.request(http.MethodPatch, "/api/v1/riders/"+riderID, `{"status": "Rejected"}`, "")
	suite.Equal(http.StatusConflict, rec.Code, rec.Body.String())

	rec = suite.request(http.MethodPatch, "/api/v1/riders/"+kernel.NewUUID().String(), `{"status": "Active"}`, "")
	suite.Equal(http.StatusNotFound, rec.Code, rec.Body.String())
}

func (suite *ServerIntegrationTestSuite) TestStripeWebhookMarksParcelPaid() {
	booked := suite.bookParcel("Dhaka")

	send := func(parcelID string) *httptest.ResponseRecorder {
		signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
			Payload: []byte(fmt.Sprintf(`{
				"id": "evt_1", "object": "event", "type": "payment_intent.succeeded",
				"data": {"object": {"id": "pi_1", "object": "payment_intent", "metadata": {"parcel_id": %q}}}
			}`, parcelID)),
			Secret:    webhookSecret,
			Timestamp: time.Now(),
		})
		return do(suite.router, http.MethodPost, "/api/v1/webhooks/stripe", string(signed.Payload),
			map[string]string{stripewebhook.SignatureHeader: signed.Header})
	}

	rec := send(booked.ID)
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	// Stripe retries deliveries; a second one is a no-op.
	rec = send(booked.ID)
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	rec = suite.request(http.MethodGet, "/api/v1/parcels/"+booked.ID, "", "")
	var paid queries.ParcelView
	suite.decode(rec, &paid)
	suite.Equal("Paid", paid.PaymentStatus)

	rec = suite.request(http.MethodGet, "/api/v1/payments?email="+senderEmail, "", "")
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var payments []queries.PaymentView
	suite.decode(rec, &payments)
	suite.Require().Len(payments, 1)
	suite.Equal(booked.ID, payments[0].ParcelID)
	suite.Equal("pi_1", payments[0].PaymentIntentID)
	suite.Equal("card", payments[0].Method)
	suite.Equal("succeeded", payments[0].Status)

	rec = suite.request(http.MethodGet, "/api/v1/payments", "", "")
	suite.Equal(http.StatusBadRequest, rec.Code, rec.Body.String())

	rec = send(kernel.NewUUID().String())
	suite.Equal(http.StatusNotFound, rec.Code, rec.Body.String())
}

func TestServerIntegrationSuite(t *testing.T) {
	suite.Run(t, new(ServerIntegrationTestSuite))
}
