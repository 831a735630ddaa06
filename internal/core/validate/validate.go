// Package validate holds the pure field checks applied to inbound payloads.
// Each check appends to a Violations collector so a payload reports every
// failing field at once.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/mealtrack/mealtrack/internal/core/apperr"
)

var phonePattern = regexp.MustCompile(`^\d{10}$`)

const (
	nameMin = 2
	nameMax = 50
)

// Phone checks that value is exactly 10 decimal digits.
func Phone(vs *apperr.Violations, field, value string) {
	if !phonePattern.MatchString(value) {
		vs.Add(field, "must be a 10-digit number")
	}
}

// Required checks that a string field is present after trimming.
func Required(vs *apperr.Violations, field, value string) {
	if strings.TrimSpace(value) == "" {
		vs.Add(field, "is required")
	}
}

// Name checks the [2,50] length bound used for person names.
func Name(vs *apperr.Violations, field, value string) {
	if n := len(strings.TrimSpace(value)); n < nameMin || n > nameMax {
		vs.Add(field, fmt.Sprintf("must be between %d and %d characters", nameMin, nameMax))
	}
}

// Enum checks case-sensitive membership in a closed set.
func Enum(vs *apperr.Violations, field, value string, allowed ...string) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	vs.Add(field, "must be one of: "+strings.Join(allowed, ", "))
}

// Positive checks that an integer is strictly greater than zero.
func Positive(vs *apperr.Violations, field string, value int) {
	if value <= 0 {
		vs.Add(field, "must be a positive number")
	}
}

// NonEmpty checks that a list field has at least one element.
func NonEmpty[T any](vs *apperr.Violations, field string, values []T) {
	if len(values) == 0 {
		vs.Add(field, "must have at least one entry")
	}
}

// DateOrder checks that earlier does not fall after later. Zero values on
// either side are treated as absent and pass.
func DateOrder(vs *apperr.Violations, field string, earlier, later time.Time) {
	if earlier.IsZero() || later.IsZero() {
		return
	}
	if earlier.After(later) {
		vs.Add(field, "must not precede the start date")
	}
}

// NotFuture checks that t is not after now. Zero values pass.
func NotFuture(vs *apperr.Violations, field string, t, now time.Time) {
	if t.IsZero() {
		return
	}
	if t.After(now) {
		vs.Add(field, "must not be in the future")
	}
}
