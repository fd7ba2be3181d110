package cmd

import (
	"log/slog"

	httpin "trackmate/internal/adapters/in/http"
	"trackmate/internal/adapters/in/stripewebhook"
	"trackmate/internal/adapters/out/postgres"
	"trackmate/internal/adapters/out/rediscache"
	"trackmate/internal/core/application/usecases/commands"
	"trackmate/internal/core/application/usecases/queries"
	"trackmate/internal/core/domain/services"
	"trackmate/internal/core/ports"
	"trackmate/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	cache      ports.BytesCache
	registry   ports.TrackingIDRegistry
	zones      ports.ZoneDirectory
	publisher  ports.EventPublisher
	logger     *slog.Logger

	pricing    services.PricingEngine
	workflow   services.DeliveryWorkflow
	dispatcher services.RiderDispatcher
	policy     services.EarningsPolicy
	recorder   commands.TrackingRecorder
}

func NewCompositionRoot(
	configs Config,
	gormDB *gorm.DB,
	redisClient *redis.Client,
	publisher ports.EventPublisher,
	zones ports.ZoneDirectory,
	logger *slog.Logger,
) (CompositionRoot, error) {
	policy, err := services.NewEarningsPolicy(configs.EarningSameZoneRate, configs.EarningCrossZoneRate)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		cache:      rediscache.New(redisClient),
		registry:   rediscache.NewTrackingIDRegistry(redisClient),
		zones:      zones,
		publisher:  publisher,
		logger:     logger,
		pricing:    services.NewPricingEngine(),
		workflow:   services.NewDeliveryWorkflow(),
		dispatcher: services.NewRiderDispatcher(),
		policy:     policy,
		recorder:   commands.NewTrackingRecorder(configs.KafkaStatusChangedTopic),
	}, nil
}

func (c *CompositionRoot) CreateCreateParcelCommandHandler() commands.CreateParcelCommandHandler {
	return commands.NewCreateParcelCommandHandler(c.uowFactoryAll(), c.zones, c.registry, c.pricing, c.workflow, c.recorder)
}

func (c *CompositionRoot) CreateAssignRiderCommandHandler() commands.AssignRiderCommandHandler {
	return commands.NewAssignRiderCommandHandler(c.uowFactoryAll(), c.workflow, c.recorder, c.cache)
}

func (c *CompositionRoot) CreateUpdateDeliveryStatusCommandHandler() commands.UpdateDeliveryStatusCommandHandler {
	return commands.NewUpdateDeliveryStatusCommandHandler(c.uowFactoryAll(), c.workflow, c.recorder, c.cache)
}

func (c *CompositionRoot) CreateMarkParcelPaidCommandHandler() commands.MarkParcelPaidCommandHandler {
	var f commands.PaymentUoWFactory = FuncPaymentUoWFactory(func() commands.PaymentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkParcelPaidCommandHandler(f, c.cache)
}

func (c *CompositionRoot) CreateDeleteParcelCommandHandler() commands.DeleteParcelCommandHandler {
	var f commands.ParcelUoWFactory = FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeleteParcelCommandHandler(f, c.cache)
}

func (c *CompositionRoot) CreateRequestCashoutCommandHandler() commands.RequestCashoutCommandHandler {
	return commands.NewRequestCashoutCommandHandler(c.uowFactoryAll(), c.policy, c.cache)
}

func (c *CompositionRoot) CreateApplyRiderCommandHandler() commands.ApplyRiderCommandHandler {
	var f commands.RiderUoWFactory = FuncRiderUoWFactory(func() commands.RiderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewApplyRiderCommandHandler(f, c.zones)
}

func (c *CompositionRoot) CreateReviewRiderCommandHandler() commands.ReviewRiderCommandHandler {
	var f commands.RiderUoWFactory = FuncRiderUoWFactory(func() commands.RiderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReviewRiderCommandHandler(f)
}

func (c *CompositionRoot) CreateAutoAssignRidersCommandHandler() commands.AutoAssignRidersCommandHandler {
	return commands.NewAutoAssignRidersCommandHandler(c.uowFactoryAll(), c.dispatcher, c.workflow, c.recorder, c.cache)
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler() commands.RelayOutboxCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRelayOutboxCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateQueryHandlers() httpin.QueryHandlers {
	return httpin.QueryHandlers{
		Quote:              queries.NewGetQuoteQueryHandler(c.zones, c.pricing),
		Parcel:             queries.NewGetParcelQueryHandler(c.gormDB),
		ParcelsBySender:    queries.NewGetParcelsBySenderQueryHandler(c.gormDB),
		ParcelByTrackingID: queries.NewGetParcelByTrackingIDQueryHandler(c.gormDB, c.cache, c.configs.ParcelCacheTTL, c.logger),
		StatusCounts:       queries.NewGetDeliveryStatusCountsQueryHandler(c.gormDB),
		TrackingLog:        queries.NewGetTrackingLogQueryHandler(c.gormDB),
		UserTrackingLog:    queries.NewGetUserTrackingLogQueryHandler(c.gormDB),
		Riders:             queries.NewGetRidersQueryHandler(c.gormDB),
		RiderParcels:       queries.NewGetRiderParcelsQueryHandler(c.gormDB, c.policy),
		RiderEarnings:      queries.NewGetRiderEarningsQueryHandler(c.gormDB, c.policy),
		RiderCashouts:      queries.NewGetRiderCashoutsQueryHandler(c.gormDB),
		Payments:           queries.NewGetPaymentsByPayerQueryHandler(c.gormDB),
	}
}

func (c *CompositionRoot) CreateCommandHandlers() httpin.CommandHandlers {
	return httpin.CommandHandlers{
		CreateParcel:         c.CreateCreateParcelCommandHandler(),
		AssignRider:          c.CreateAssignRiderCommandHandler(),
		UpdateDeliveryStatus: c.CreateUpdateDeliveryStatusCommandHandler(),
		MarkParcelPaid:       c.CreateMarkParcelPaidCommandHandler(),
		DeleteParcel:         c.CreateDeleteParcelCommandHandler(),
		RequestCashout:       c.CreateRequestCashoutCommandHandler(),
		ApplyRider:           c.CreateApplyRiderCommandHandler(),
		ReviewRider:          c.CreateReviewRiderCommandHandler(),
	}
}

// CreateRouter wires the REST API.
func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	server := httpin.NewServer(
		c.CreateCommandHandlers(),
		c.CreateQueryHandlers(),
		stripewebhook.New(c.configs.StripeWebhookSecret),
		c.logger,
	)
	return httpin.NewRouter(server, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateRelayOutboxCommandHandler(),
		c.CreateAutoAssignRidersCommandHandler(),
		c.configs.AutoAssignEnabled,
		c.logger,
	)
}

func (c *CompositionRoot) uowFactoryAll() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncParcelUoWFactory func() commands.ParcelUoW

func (f FuncParcelUoWFactory) Create() commands.ParcelUoW {
	return f()
}

type FuncPaymentUoWFactory func() commands.PaymentUoW

func (f FuncPaymentUoWFactory) Create() commands.PaymentUoW {
	return f()
}

type FuncRiderUoWFactory func() commands.RiderUoW

func (f FuncRiderUoWFactory) Create() commands.RiderUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
