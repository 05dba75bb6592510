// Package handler implements the HTTP layer.  Handlers bind and
// validate request bodies, own the database transaction around each
// state-changing operation, call into the domain packages for the
// business rules, and translate sentinel errors into JSON responses.
package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validator adapts go-playground/validator to Echo's Validator
// interface so handlers can call c.Validate on bound requests.
type Validator struct {
	validate *validator.Validate
}

// NewValidator returns a request validator for Echo.
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate implements echo.Validator.
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(400, err.Error())
	}
	return nil
}

// staffID extracts the acting staff user's ID from the context, where
// the JWT middleware stored the token's subject claim.
func staffID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// pathID parses the :id path parameter as a positive integer.
func pathID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// parseDate parses a YYYY-MM-DD body field into a midnight UTC time.
func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
