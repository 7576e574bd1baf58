package postgrest

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingFilter is returned for Update and Delete calls without a row filter.
var ErrMissingFilter = errors.New("postgrest: update and delete require at least one filter")

// Filter is a horizontal filter rendered as column=operator.value.
type Filter struct {
	Column   string
	Operator string
	Value    string
}

// Eq builds an equality filter.
func Eq(column string, value any) Filter {
	return Filter{Column: column, Operator: "eq", Value: fmt.Sprint(value)}
}

// Order is one ordering term.
type Order struct {
	Column    string
	Ascending bool
}

func (o Order) String() string {
	if o.Ascending {
		return o.Column + ".asc"
	}
	return o.Column + ".desc"
}

// Query describes a read request. Empty Columns selects every column.
type Query struct {
	Columns string
	Filters []Filter
	Order   []Order
	Limit   int
}

// APIError is the error body returned by the REST endpoint.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (e *APIError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "postgrest API error %d", e.Status)
	if e.Code != "" {
		fmt.Fprintf(&sb, " (%s)", e.Code)
	}
	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}
	if e.Details != "" {
		sb.WriteString(" - ")
		sb.WriteString(e.Details)
	}
	return sb.String()
}
