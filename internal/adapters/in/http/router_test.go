package http_test

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpin "trackmate/internal/adapters/in/http"
	"trackmate/internal/adapters/in/stripewebhook"
	"trackmate/internal/core/application/usecases/queries"
	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/core/domain/services"
	"trackmate/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79/webhook"
)

const webhookSecret = "whsec_router_test"

type staticZones map[string]kernel.Zone

func (z staticZones) Resolve(district string) (kernel.Zone, error) {
	if zone, ok := z[kernel.ZoneKey(district)]; ok {
		return zone, nil
	}
	return kernel.Zone{}, errs.NewValueIsInvalidError("district")
}

func (z staticZones) All() []kernel.Zone {
	all := make([]kernel.Zone, 0, len(z))
	for _, zone := range z {
		all = append(all, zone)
	}
	return all
}

func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()

	zones := staticZones{}
	for _, d := range []string{"Dhaka", "Sylhet"} {
		z, err := kernel.NewZone(d, d)
		require.NoError(t, err)
		zones[kernel.ZoneKey(d)] = z
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := httpin.NewServer(
		httpin.CommandHandlers{},
		httpin.QueryHandlers{Quote: queries.NewGetQuoteQueryHandler(zones, services.NewPricingEngine())},
		stripewebhook.New(webhookSecret),
		logger,
	)

	e, err := httpin.NewRouter(server, logger)
	require.NoError(t, err)
	return e
}

func do(e *echo.Echo, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) httpin.Error {
	t.Helper()
	var body httpin.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestLoadOpenAPI(t *testing.T) {
	doc, err := httpin.LoadOpenAPI()
	require.NoError(t, err)
	assert.NotNil(t, doc.Paths.Find("/api/v1/parcels/{parcelId}/status"))
}

func TestHealth(t *testing.T) {
	rec := do(newTestRouter(t), http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestSwaggerServesDocument(t *testing.T) {
	rec := do(newTestRouter(t), http.MethodGet, "/swagger/doc.json", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "TrackMate parcel service")
}

func TestQuoteParcel(t *testing.T) {
	rec := do(newTestRouter(t), http.MethodPost, "/api/v1/quotes",
		`{"parcelType": "Non-Document", "weightKg": 5.5, "senderDistrict": "Dhaka", "receiverDistrict": "dhaka"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var quote struct {
		SameZone bool            `json:"sameZone"`
		Total    decimal.Decimal `json:"total"`
		Lines    []struct {
			Text string `json:"text"`
		} `json:"lines"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &quote))
	assert.True(t, quote.SameZone)
	assert.True(t, quote.Total.Equal(decimal.NewFromInt(210)), quote.Total.String())
	assert.NotEmpty(t, quote.Lines)
}

func TestQuoteParcel_Rejected(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing receiver district", body: `{"parcelType": "Document", "weightKg": 1, "senderDistrict": "Dhaka"}`},
		{name: "weight is not a number", body: `{"parcelType": "Document", "weightKg": "heavy", "senderDistrict": "Dhaka", "receiverDistrict": "Dhaka"}`},
		{name: "unknown parcel type", body: `{"parcelType": "Fragile", "weightKg": 1, "senderDistrict": "Dhaka", "receiverDistrict": "Dhaka"}`},
		{name: "unknown district", body: `{"parcelType": "Document", "weightKg": 1, "senderDistrict": "Atlantis", "receiverDistrict": "Dhaka"}`},
		{name: "negative weight", body: `{"parcelType": "Non-Document", "weightKg": -2, "senderDistrict": "Dhaka", "receiverDistrict": "Dhaka"}`},
	}

	e := newTestRouter(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(e, http.MethodPost, "/api/v1/quotes", tt.body, nil)

			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Equal(t, http.StatusBadRequest, decodeError(t, rec).Code)
		})
	}
}

func TestCreateParcel_RequiresActor(t *testing.T) {
	body := `{
		"parcelType": "Document", "name": "Deed", "weightKg": 0,
		"sender": {"name": "Rahim", "email": "rahim@example.com", "contact": "017", "address": "House 7", "district": "Dhaka"},
		"receiver": {"name": "Karim", "contact": "018", "address": "Road 2", "district": "Sylhet"}
	}`

	rec := do(newTestRouter(t), http.MethodPost, "/api/v1/parcels", body, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPathParametersAreChecked(t *testing.T) {
	e := newTestRouter(t)

	rec := do(e, http.MethodGet, "/api/v1/parcels/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodPatch, fmt.Sprintf("/api/v1/parcels/%s/status", kernel.NewUUID()),
		`{"deliveryStatus": "Lost"}`, map[string]string{httpin.ActorHeader: "rider@example.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Message, "Lost")
}

func TestStripeWebhook(t *testing.T) {
	e := newTestRouter(t)

	t.Run("bad signature", func(t *testing.T) {
		rec := do(e, http.MethodPost, "/api/v1/webhooks/stripe", `{"type": "payment_intent.succeeded"}`,
			map[string]string{stripewebhook.SignatureHeader: "t=1,v1=deadbeef"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("ignored event", func(t *testing.T) {
		signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
			Payload:   []byte(`{"id": "evt_2", "object": "event", "type": "payment_intent.created", "data": {"object": {"id": "pi_1", "object": "payment_intent"}}}`),
			Secret:    webhookSecret,
			Timestamp: time.Now(),
		})

		rec := do(e, http.MethodPost, "/api/v1/webhooks/stripe", string(signed.Payload),
			map[string]string{stripewebhook.SignatureHeader: signed.Header})

		assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})
}
