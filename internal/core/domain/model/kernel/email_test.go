package kernel_test

import (
	"testing"

	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail(t *testing.T) {
	t.Run("should normalize case and spaces", func(t *testing.T) {
		e, err := kernel.NewEmail("  Rider@Example.COM ")

		require.NoError(t, err)
		assert.Equal(t, "rider@example.com", e.String())
		assert.False(t, e.IsZero())
	})

	t.Run("should require a value", func(t *testing.T) {
		_, err := kernel.NewEmail(" ")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject malformed addresses", func(t *testing.T) {
		for _, in := range []string{"rider", "rider@example", "a b@example.com"} {
			_, err := kernel.NewEmail(in)

			require.ErrorIs(t, err, errs.ErrValueIsInvalid, in)
		}
	})

	t.Run("zero value is invalid", func(t *testing.T) {
		var e kernel.Email

		assert.True(t, e.IsZero())
		assert.Equal(t, kernel.ErrEmailIsNotConstructed, e.Validate())
	})
}
