package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"blogapi/internal/apperr"
)

type sampleRequest struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=3"`
}

func TestValidatePasses(t *testing.T) {
	v := New()
	assert.NoError(t, v.Validate(&sampleRequest{Email: "jane@example.com", Password: "s3cret"}))
}

func TestValidateReportsFields(t *testing.T) {
	v := New()

	err := v.Validate(&sampleRequest{Email: "not-an-email"})
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Contains(t, apperr.Message(err), "email")
	assert.Contains(t, apperr.Message(err), "password")
}
