package http

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewRouter builds the echo instance serving s. Every /api/v1 request is
// validated against the embedded OpenAPI document before it reaches s.
func NewRouter(s *Server, logger *slog.Logger) (*echo.Echo, error) {
	doc, err := LoadOpenAPI()
	if err != nil {
		return nil, err
	}

	validator, err := requestValidator(doc)
	if err != nil {
		return nil, err
	}

	if err = registerSwaggerDoc(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(requestLogger(logger.With("component", "http")))

	e.GET("/health", s.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1", validator)

	api.POST("/quotes", s.QuoteParcel)

	api.POST("/parcels", s.CreateParcel)
	api.GET("/parcels", s.ListParcels)
	api.GET("/parcels/delivery/status-count", s.CountParcelsByStatus)
	api.GET("/parcels/tracking/:trackingId", s.GetParcelByTrackingID)
	api.GET("/parcels/:parcelId", s.GetParcel)
	api.DELETE("/parcels/:parcelId", s.DeleteParcel)
	api.PATCH("/parcels/:parcelId/status", s.UpdateDeliveryStatus)
	api.POST("/parcels/:parcelId/assign", s.AssignRider)
	api.POST("/parcels/:parcelId/pay", s.MarkParcelPaid)

	api.GET("/trackings/user/:email", s.GetUserTrackingLog)
	api.GET("/trackings/:trackingId", s.GetTrackingLog)

	api.POST("/riders", s.ApplyRider)
	api.GET("/riders", s.ListRiders)
	api.PATCH("/riders/:riderId", s.ReviewRider)
	api.GET("/riders/:riderId/parcels", s.ListRiderParcels)
	api.GET("/riders/:riderId/earnings", s.GetRiderEarnings)
	api.POST("/riders/:riderId/cashouts", s.RequestCashout)
	api.GET("/riders/:riderId/cashouts", s.ListRiderCashouts)

	api.GET("/payments", s.ListPayments)

	api.POST("/webhooks/stripe", s.HandleStripeWebhook)

	return e, nil
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}

			level := slog.LevelInfo
			if v.Error != nil {
				level = slog.LevelError
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}

			logger.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	})
}
