package http

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"trackmate/internal/adapters/in/stripewebhook"
	"trackmate/internal/core/application/usecases/commands"
	"trackmate/internal/core/application/usecases/queries"
	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/core/domain/model/parcel"
	"trackmate/internal/core/domain/model/rider"
	"trackmate/internal/core/domain/services"
	"trackmate/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ActorHeader carries the email of the user performing the request.
const ActorHeader = "X-Actor-Email"

const maxWebhookBytes = 64 << 10

// CommandHandlers groups the write-side use cases the server dispatches to.
type CommandHandlers struct {
	CreateParcel         commands.CreateParcelCommandHandler
	AssignRider          commands.AssignRiderCommandHandler
	UpdateDeliveryStatus commands.UpdateDeliveryStatusCommandHandler
	MarkParcelPaid       commands.MarkParcelPaidCommandHandler
	DeleteParcel         commands.DeleteParcelCommandHandler
	RequestCashout       commands.RequestCashoutCommandHandler
	ApplyRider           commands.ApplyRiderCommandHandler
	ReviewRider          commands.ReviewRiderCommandHandler
}

// QueryHandlers groups the read-side use cases the server dispatches to.
type QueryHandlers struct {
	Quote              queries.GetQuoteQueryHandler
	Parcel             queries.GetParcelQueryHandler
	ParcelsBySender    queries.GetParcelsBySenderQueryHandler
	ParcelByTrackingID queries.GetParcelByTrackingIDQueryHandler
	StatusCounts       queries.GetDeliveryStatusCountsQueryHandler
	TrackingLog        queries.GetTrackingLogQueryHandler
	UserTrackingLog    queries.GetUserTrackingLogQueryHandler
	Riders             queries.GetRidersQueryHandler
	RiderParcels       queries.GetRiderParcelsQueryHandler
	RiderEarnings      queries.GetRiderEarningsQueryHandler
	RiderCashouts      queries.GetRiderCashoutsQueryHandler
	Payments           queries.GetPaymentsByPayerQueryHandler
}

// Server handles the REST API. It translates requests into commands and
// queries and their results into JSON.
type Server struct {
	commands CommandHandlers
	queries  QueryHandlers
	webhook  *stripewebhook.Processor
	logger   *slog.Logger
	now      func() time.Time
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	commandHandlers CommandHandlers,
	queryHandlers QueryHandlers,
	webhook *stripewebhook.Processor,
	logger *slog.Logger,
) *Server {
	return &Server{
		commands: commandHandlers,
		queries:  queryHandlers,
		webhook:  webhook,
		logger:   logger.With("component", "http"),
		now:      time.Now,
	}
}

type quoteRequest struct {
	ParcelType       string          `json:"parcelType"`
	WeightKg         decimal.Decimal `json:"weightKg"`
	SenderDistrict   string          `json:"senderDistrict"`
	ReceiverDistrict string          `json:"receiverDistrict"`
}

type partyForm struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Contact  string `json:"contact"`
	Address  string `json:"address"`
	District string `json:"district"`
}

func (f partyForm) toCommand() commands.PartyForm {
	return commands.PartyForm{
		Name:     f.Name,
		Email:    f.Email,
		Contact:  f.Contact,
		Address:  f.Address,
		District: f.District,
	}
}

type newParcelRequest struct {
	ParcelType          string          `json:"parcelType"`
	Name                string          `json:"name"`
	WeightKg            decimal.Decimal `json:"weightKg"`
	Sender              partyForm       `json:"sender"`
	Receiver            partyForm       `json:"receiver"`
	PickupInstruction   string          `json:"pickupInstruction"`
	DeliveryInstruction string          `json:"deliveryInstruction"`
}

type statusUpdateRequest struct {
	DeliveryStatus string `json:"deliveryStatus"`
	Details        string `json:"details"`
}

type assignmentRequest struct {
	RiderID openapi_types.UUID `json:"riderId"`
	Details string             `json:"details"`
}

type riderApplicationRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Contact  string `json:"contact"`
	District string `json:"district"`
}

type riderReviewRequest struct {
	Status string `json:"status"`
}

type createdResponse struct {
	ID string `json:"id"`
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// QuoteParcel handles POST /api/v1/quotes - prices a parcel without booking it.
func (s *Server) QuoteParcel(ctx echo.Context) error {
	var req quoteRequest
	if err := ctx.Bind(&req); err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	parcelType, err := parcel.ParseType(req.ParcelType)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetQuoteQuery(parcelType, req.WeightKg, req.SenderDistrict, req.ReceiverDistrict)
	if err != nil {
		return s.fail(ctx, err)
	}

	quote, err := s.queries.Quote.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, quote)
}

// CreateParcel handles POST /api/v1/parcels - books a parcel for the actor.
func (s *Server) CreateParcel(ctx echo.Context) error {
	actor, err := actorOf(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var req newParcelRequest
	if err = ctx.Bind(&req); err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	parcelType, err := parcel.ParseType(req.ParcelType)
	if err != nil {
		return s.fail(ctx, err)
	}

	parcelID := kernel.NewUUID()
	cmd, err := commands.NewCreateParcelCommand(
		parcelID,
		parcelType,
		req.Name,
		req.WeightKg,
		req.Sender.toCommand(),
		req.Receiver.toCommand(),
		req.PickupInstruction,
		req.DeliveryInstruction,
		actor,
	)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.commands.CreateParcel.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return s.respondWithParcel(ctx, http.StatusCreated, parcelID)
}

// ListParcels handles GET /api/v1/parcels?email= - parcels booked by a sender.
func (s *Server) ListParcels(ctx echo.Context) error {
	var raw string
	if err := runtime.BindQueryParameter("form", true, true, "email", ctx.QueryParams(), &raw); err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("email", err))
	}

	email, err := kernel.NewEmail(raw)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetParcelsBySenderQuery(email)
	if err != nil {
		return s.fail(ctx, err)
	}

	parcels, err := s.queries.ParcelsBySender.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, parcels)
}

// GetParcel handles GET /api/v1/parcels/{parcelId}.
func (s *Server) GetParcel(ctx echo.Context) error {
	parcelID, err := uuidParam(ctx, "parcelId")
	if err != nil {
		return s.fail(ctx, err)
	}

	return s.respondWithParcel(ctx, http.StatusOK, parcelID)
}

// GetParcelByTrackingID handles GET /api/v1/parcels/tracking/{trackingId}.
func (s *Server) GetParcelByTrackingID(ctx echo.Context) error {
	trackingID, err := trackingIDParam(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetParcelByTrackingIDQuery(trackingID)
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.queries.ParcelByTrackingID.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, view)
}

// DeleteParcel handles DELETE /api/v1/parcels/{parcelId} - the sender
// withdraws a booking that was neither paid nor dispatched.
func (s *Server) DeleteParcel(ctx echo.Context) error {
	parcelID, err := uuidParam(ctx, "parcelId")
	if err != nil {
		return s.fail(ctx, err)
	}

	actor, err := actorOf(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewDeleteParcelCommand(parcelID, actor)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.commands.DeleteParcel.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateDeliveryStatus handles PATCH /api/v1/parcels/{parcelId}/status - the
// assigned rider picks the parcel up or delivers it.
func (s *Server) UpdateDeliveryStatus(ctx echo.Context) error {
	parcelID, err := uuidParam(ctx, "parcelId")
	if err != nil {
		return s.fail(ctx, err)
	}

	actor, err := actorOf(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var req statusUpdateRequest
	if err = ctx.Bind(&req); err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	status, err := parcel.ParseDeliveryStatus(req.DeliveryStatus)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewUpdateDeliveryStatusCommand(parcelID, status, req.Details, actor)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.commands.UpdateDeliveryStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return s.respondWithParcel(ctx, http.StatusOK, parcelID)
}

// AssignRider handles POST /api/v1/parcels/{parcelId}/assign.
func (s *Server) AssignRider(ctx echo.Context) error {
	parcelID, err := uuidParam(ctx, "parcelId")
	if err != nil {
		return s.fail(ctx, err)
	}

	actor, err := actorOf(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var req assignmentRequest
	if err = ctx.Bind(&req); err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	riderID, err := kernel.UUIDFromGoogle(req.RiderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewAssignRiderCommand(parcelID, riderID, req.Details, actor)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.commands.AssignRider.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return s.respondWithParcel(ctx, http.StatusOK, parcelID)
}

// MarkParcelPaid handles POST /api/v1/parcels/{parcelId}/pay.
func (s *Server) MarkParcelPaid(ctx echo.Context) error {
	parcelID, err := uuidParam(ctx, "parcelId")
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.markPaid(ctx, parcelID, ""); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CountParcelsByStatus handles GET /api/v1/parcels/delivery/status-count.
func (s *Server) CountParcelsByStatus(ctx echo.Context) error {
	counts, err := s.queries.StatusCounts.Handle(ctx.Request().Context(), queries.NewGetDeliveryStatusCountsQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, counts)
}

// GetTrackingLog handles GET /api/v1/trackings/{trackingId}.
func (s *Server) GetTrackingLog(ctx echo.Context) error {
	trackingID, err := trackingIDParam(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetTrackingLogQuery(trackingID)
	if err != nil {
		return s.fail(ctx, err)
	}

	entries, err := s.queries.TrackingLog.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, entries)
}

// GetUserTrackingLog handles GET /api/v1/trackings/user/{email}.
func (s *Server) GetUserTrackingLog(ctx echo.Context) error {
	var raw openapi_types.Email
	if err := bindPathParam(ctx, "email", &raw); err != nil {
		return s.fail(ctx, err)
	}

	email, err := kernel.NewEmail(string(raw))
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetUserTrackingLogQuery(email)
	if err != nil {
		return s.fail(ctx, err)
	}

	entries, err := s.queries.UserTrackingLog.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, entries)
}

// ApplyRider handles POST /api/v1/riders - a user applies to become a rider.
func (s *Server) ApplyRider(ctx echo.Context) error {
	var req riderApplicationRequest
	if err := ctx.Bind(&req); err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	email, err := kernel.NewEmail(req.Email)
	if err != nil {
		return s.fail(ctx, err)
	}

	riderID := kernel.NewUUID()
	cmd, err := commands.NewApplyRiderCommand(riderID, req.Name, email, req.Contact, req.District)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.commands.ApplyRider.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createdResponse{ID: riderID.String()})
}

// ListRiders handles GET /api/v1/riders?status=&search=.
func (s *Server) ListRiders(ctx echo.Context) error {
	var raw string
	if err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &raw); err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("status", err))
	}

	var status *rider.ApplicationStatus
	if raw != "" {
		parsed, err := rider.ParseApplicationStatus(raw)
		if err != nil {
			return s.fail(ctx, err)
		}
		status = &parsed
	}

	var search string
	if err := runtime.BindQueryParameter("form", true, false, "search", ctx.QueryParams(), &search); err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("search", err))
	}

	query, err := queries.NewGetRidersQuery(status, search)
	if err != nil {
		return s.fail(ctx, err)
	}

	riders, err := s.queries.Riders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, riders)
}

// ReviewRider handles PATCH /api/v1/riders/{riderId} - approve, reject or
// deactivate a rider.
func (s *Server) ReviewRider(ctx echo.Context) error {
	riderID, err := uuidParam(ctx, "riderId")
	if err != nil {
		return s.fail(ctx, err)
	}

	var req riderReviewRequest
	if err = ctx.Bind(&req); err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	decision, err := rider.ParseApplicationStatus(req.Status)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewReviewRiderCommand(riderID, decision)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.commands.ReviewRider.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ListRiderParcels handles GET /api/v1/riders/{riderId}/parcels?status=.
func (s *Server) ListRiderParcels(ctx echo.Context) error {
	riderID, err := uuidParam(ctx, "riderId")
	if err != nil {
		return s.fail(ctx, err)
	}

	var raw []string
	if err = runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &raw); err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("status", err))
	}

	statuses := make([]parcel.DeliveryStatus, 0, len(raw))
	for _, r := range raw {
		status, parseErr := parcel.ParseDeliveryStatus(r)
		if parseErr != nil {
			return s.fail(ctx, parseErr)
		}
		statuses = append(statuses, status)
	}

	query, err := queries.NewGetRiderParcelsQuery(riderID, statuses...)
	if err != nil {
		return s.fail(ctx, err)
	}

	parcels, err := s.queries.RiderParcels.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, parcels)
}

// GetRiderEarnings handles GET /api/v1/riders/{riderId}/earnings?period=.
func (s *Server) GetRiderEarnings(ctx echo.Context) error {
	riderID, err := uuidParam(ctx, "riderId")
	if err != nil {
		return s.fail(ctx, err)
	}

	var raw string
	if err = runtime.BindQueryParameter("form", true, false, "period", ctx.QueryParams(), &raw); err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("period", err))
	}

	period, err := services.ParsePeriod(raw)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetRiderEarningsQuery(riderID, period, s.now().UTC())
	if err != nil {
		return s.fail(ctx, err)
	}

	earnings, err := s.queries.RiderEarnings.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, earnings)
}

// RequestCashout handles POST /api/v1/riders/{riderId}/cashouts.
func (s *Server) RequestCashout(ctx echo.Context) error {
	riderID, err := uuidParam(ctx, "riderId")
	if err != nil {
		return s.fail(ctx, err)
	}

	actor, err := actorOf(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	cashoutID := kernel.NewUUID()
	cmd, err := commands.NewRequestCashoutCommand(cashoutID, riderID, actor)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.commands.RequestCashout.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createdResponse{ID: cashoutID.String()})
}

// ListRiderCashouts handles GET /api/v1/riders/{riderId}/cashouts.
func (s *Server) ListRiderCashouts(ctx echo.Context) error {
	riderID, err := uuidParam(ctx, "riderId")
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetRiderCashoutsQuery(riderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cashouts, err := s.queries.RiderCashouts.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, cashouts)
}

// ListPayments handles GET /api/v1/payments?email= - the sender's payment history.
func (s *Server) ListPayments(ctx echo.Context) error {
	var raw string
	if err := runtime.BindQueryParameter("form", true, true, "email", ctx.QueryParams(), &raw); err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("email", err))
	}

	email, err := kernel.NewEmail(raw)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetPaymentsByPayerQuery(email)
	if err != nil {
		return s.fail(ctx, err)
	}

	payments, err := s.queries.Payments.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, payments)
}

// HandleStripeWebhook handles POST /api/v1/webhooks/stripe. A verified
// payment_intent.succeeded event marks its parcel as paid; other events are
// acknowledged and ignored.
func (s *Server) HandleStripeWebhook(ctx echo.Context) error {
	payload, err := io.ReadAll(io.LimitReader(ctx.Request().Body, maxWebhookBytes))
	if err != nil {
		return s.fail(ctx, errors.Wrap(err, "read webhook body"))
	}

	event, err := s.webhook.VerifyAndParse(payload, ctx.Request().Header.Get(stripewebhook.SignatureHeader))
	if err != nil {
		return s.fail(ctx, err)
	}
	if event == nil {
		return ctx.NoContent(http.StatusOK)
	}

	if err = s.markPaid(ctx, event.ParcelID, event.PaymentIntentID); err != nil {
		return s.fail(ctx, err)
	}

	s.logger.InfoContext(ctx.Request().Context(), "parcel paid",
		slog.String("parcel_id", event.ParcelID.String()),
		slog.String("payment_intent", event.PaymentIntentID),
	)
	return ctx.NoContent(http.StatusOK)
}

func (s *Server) markPaid(ctx echo.Context, parcelID kernel.UUID, paymentIntentID string) error {
	cmd, err := commands.NewMarkParcelPaidCommand(kernel.NewUUID(), parcelID, paymentIntentID)
	if err != nil {
		return err
	}
	return s.commands.MarkParcelPaid.Handle(ctx.Request().Context(), cmd)
}

func (s *Server) respondWithParcel(ctx echo.Context, status int, parcelID kernel.UUID) error {
	query, err := queries.NewGetParcelQuery(parcelID)
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.queries.Parcel.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(status, view)
}

func actorOf(ctx echo.Context) (kernel.Email, error) {
	actor, err := kernel.NewEmail(ctx.Request().Header.Get(ActorHeader))
	if err != nil {
		return kernel.Email{}, errs.NewValueIsInvalidErrorWithCause(ActorHeader, err)
	}
	return actor, nil
}

func bindPathParam(ctx echo.Context, name string, dest any) error {
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), dest, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Required:      true,
	})
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return nil
}

func uuidParam(ctx echo.Context, name string) (kernel.UUID, error) {
	var id openapi_types.UUID
	if err := bindPathParam(ctx, name, &id); err != nil {
		return kernel.UUID{}, err
	}
	return kernel.UUIDFromGoogle(id)
}

func trackingIDParam(ctx echo.Context) (parcel.TrackingID, error) {
	var raw string
	if err := bindPathParam(ctx, "trackingId", &raw); err != nil {
		return parcel.TrackingID{}, err
	}
	return parcel.TrackingIDFromString(raw)
}
