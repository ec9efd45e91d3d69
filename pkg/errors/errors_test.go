package errors

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, "context"))
	})

	t.Run("plain error becomes an internal app error", func(t *testing.T) {
		cause := New("connection refused")

		err := Wrap(cause, "failed to connect to database")

		var appErr *AppError
		if assert.ErrorAs(t, err, &appErr) {
			assert.Equal(t, ErrInternal, appErr.Code())
		}
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "failed to connect to database: connection refused", err.Error())
	})

	t.Run("app error keeps its code through wrapping", func(t *testing.T) {
		inner := NewAppError(ErrNotFound, "row missing", nil)

		err := Wrap(inner, "loading organization")

		var appErr *AppError
		if assert.ErrorAs(t, err, &appErr) {
			assert.Equal(t, ErrNotFound, appErr.Code())
		}
	})
}

func TestToHTTPError(t *testing.T) {
	t.Run("app error maps to its status", func(t *testing.T) {
		err := NewAppError(ErrConflict, "slug taken", nil)

		httpErr := ToHTTPError(err)

		assert.Equal(t, http.StatusConflict, httpErr.Code)
	})

	t.Run("echo error passes through", func(t *testing.T) {
		in := echo.NewHTTPError(http.StatusBadRequest, "Invalid resource ID")

		httpErr := ToHTTPError(in)

		assert.Equal(t, in, httpErr)
	})

	t.Run("plain error falls back to 500", func(t *testing.T) {
		httpErr := ToHTTPError(New("boom"))
		assert.Equal(t, http.StatusInternalServerError, httpErr.Code)
	})
}

func TestFromHTTPError(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		expected string
	}{
		{"bad request", http.StatusBadRequest, ErrInvalidArgument},
		{"not found", http.StatusNotFound, ErrNotFound},
		{"unauthorized", http.StatusUnauthorized, ErrUnauthenticated},
		{"conflict", http.StatusConflict, ErrConflict},
		{"teapot falls back to internal", http.StatusTeapot, ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromHTTPError(echo.NewHTTPError(tt.status, "message"))

			var appErr *AppError
			if assert.ErrorAs(t, err, &appErr) {
				assert.Equal(t, tt.expected, appErr.Code())
			}
		})
	}
}
