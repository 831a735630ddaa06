// Package respond shapes every API response into the
// {success, message, data} envelope and owns the single translation from
// domain errors to HTTP status codes.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mealtrack/mealtrack/internal/core/apperr"
	"github.com/mealtrack/mealtrack/pkg/pagination"
)

// Envelope is the response body shape shared by every endpoint.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  []FieldErr  `json:"errors,omitempty"`
}

// FieldErr reports one failing field on a rejected payload.
type FieldErr struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Page wraps list data with its pagination block.
type Page struct {
	Items      interface{}     `json:"items"`
	Pagination pagination.Info `json:"pagination"`
}

// OK writes a success envelope.
func OK(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

// List writes a success envelope around a paginated list.
func List(c echo.Context, message string, items interface{}, pg pagination.Params, total int) error {
	return OK(c, http.StatusOK, message, Page{Items: items, Pagination: pagination.NewInfo(pg, total)})
}

// Error writes a failure envelope with the status code for the error's
// kind. Internal causes are never rendered; StoreFailure always maps to the
// same stable message.
func Error(c echo.Context, err error) error {
	status := apperr.HTTPStatus(err)

	var vs *apperr.Violations
	if errors.As(err, &vs) {
		fields := make([]FieldErr, 0, len(vs.All()))
		for _, v := range vs.All() {
			fields = append(fields, FieldErr{Field: v.Field, Message: v.Message})
		}
		return c.JSON(status, Envelope{Success: false, Message: "validation failed", Errors: fields})
	}

	var ae *apperr.Error
	if errors.As(err, &ae) {
		env := Envelope{Success: false, Message: ae.Message}
		if ae.Field != "" {
			env.Errors = []FieldErr{{Field: ae.Field, Message: ae.Message}}
		}
		return c.JSON(status, env)
	}

	return c.JSON(status, Envelope{Success: false, Message: "storage operation failed"})
}

// Decode binds a JSON body into v, rejecting unknown fields so a typo in a
// payload fails loudly instead of being silently ignored.
func Decode(c echo.Context, v interface{}) error {
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return apperr.Validation("body", "malformed or unrecognized request body")
	}
	return nil
}
