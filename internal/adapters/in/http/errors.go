package http

import (
	"log/slog"
	"net/http"

	"trackmate/internal/core/application/usecases/commands"
	"trackmate/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Error is the body of every failed response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// StatusOf maps an application error to its HTTP status.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrIllegalTransition),
		errors.Is(err, errs.ErrStaleState),
		errors.Is(err, errs.ErrObjectAlreadyExist),
		errors.Is(err, commands.ErrNothingToCashOut):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as an Error body. Internal errors are logged and their
// message is not sent to the client.
func (s *Server) fail(ctx echo.Context, err error) error {
	status := StatusOf(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			slog.String("method", ctx.Request().Method),
			slog.String("path", ctx.Path()),
			slog.Any("error", err),
		)
		message = http.StatusText(status)
	}

	return ctx.JSON(status, Error{
		Code:    status,
		Message: message,
	})
}
