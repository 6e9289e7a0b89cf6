package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{New(ErrValidation, "bad input"), http.StatusBadRequest},
		{New(ErrConflict, "dup"), http.StatusConflict},
		{New(ErrNotFound, "missing"), http.StatusNotFound},
		{New(ErrInvalidCredentials, "nope"), http.StatusUnauthorized},
		{New(ErrForbidden, "not yours"), http.StatusForbidden},
		{New(ErrTransient, "down"), http.StatusServiceUnavailable},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Status(tt.err))
	}
}

func TestClassificationSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("outer context: %w", New(ErrNotFound, "post not found"))
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, http.StatusNotFound, Status(err))
	assert.Equal(t, "post not found", Message(err))
}

func TestMessageFallbacks(t *testing.T) {
	assert.Equal(t, "not found", Message(ErrNotFound))
	assert.Equal(t, "internal server error", Message(errors.New("db exploded: password=hunter2")))
}
