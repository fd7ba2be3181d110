package http_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	httpin "trackmate/internal/adapters/in/http"
	"trackmate/internal/core/application/usecases/commands"
	"trackmate/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "required", err: errs.NewValueIsRequiredError("name"), want: http.StatusBadRequest},
		{name: "invalid", err: errs.NewValueIsInvalidError("district"), want: http.StatusBadRequest},
		{name: "out of range", err: errs.NewValueIsOutOfRangeError("weightKg", -1, 0, 100), want: http.StatusBadRequest},
		{name: "forbidden", err: errs.NewForbiddenError("a@example.com", "delete parcel"), want: http.StatusForbidden},
		{name: "not found", err: errs.NewObjectNotFoundError("parcelId", "x"), want: http.StatusNotFound},
		{name: "illegal transition", err: errs.NewIllegalTransitionError("deliveryStatus", "Processing", "Delivered"), want: http.StatusConflict},
		{name: "stale state", err: errs.NewStaleStateError("parcel", "x", 3), want: http.StatusConflict},
		{name: "already exists", err: errs.NewObjectAlreadyExistError("email", "a@example.com"), want: http.StatusConflict},
		{name: "nothing to cash out", err: commands.ErrNothingToCashOut, want: http.StatusConflict},
		{name: "wrapped", err: fmt.Errorf("assign: %w", errs.NewObjectNotFoundError("riderId", "x")), want: http.StatusNotFound},
		{name: "infrastructure", err: errors.New("connection refused"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, httpin.StatusOf(tt.err))
		})
	}
}
