// Package validate bridges go-playground/validator into echo so request
// structs are checked through their validate tags before handlers run.
package validate

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"blogapi/internal/apperr"
)

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	return &Validator{v: validator.New()}
}

func (cv *Validator) Validate(i any) error {
	err := cv.v.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, strings.ToLower(fe.Field()))
		}
		return apperr.Newf(apperr.ErrValidation, "invalid or missing fields: %s", strings.Join(fields, ", "))
	}
	return apperr.New(apperr.ErrValidation, "invalid request")
}
