// Package validator adapts go-playground/validator to echo's Validator
// interface so handlers can validate bound request structs.
package validator

import (
	"net/http"

	playground "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type echoValidator struct {
	validate *playground.Validate
}

// New returns an echo.Validator backed by a single shared validate instance.
func New() echo.Validator {
	return &echoValidator{validate: playground.New(playground.WithRequiredStructEnabled())}
}

// Validate implements echo.Validator. Violations surface as a 400 HTTPError
// so the central error handler renders them uniformly.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return nil
}
