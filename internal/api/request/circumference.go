package request

import (
	"net/http"

	"github.com/ndewijer/Sun-Circumference-Backend/internal/model"
	"github.com/ndewijer/Sun-Circumference-Backend/internal/validation"
)

// Operation is the state operation a circumference request dispatches to.
type Operation int

const (
	// OperationIncrement advances the mode by one iteration. It is the default.
	OperationIncrement Operation = iota
	// OperationRead returns the current state without mutating it.
	OperationRead
	// OperationReset returns the mode to its initial state.
	OperationReset
)

func (o Operation) String() string {
	switch o {
	case OperationRead:
		return "read"
	case OperationReset:
		return "reset"
	default:
		return "increment"
	}
}

// CircumferenceQuery is the parsed form of GET /api/circumference.
type CircumferenceQuery struct {
	RawMode   string
	Debug     bool
	Operation Operation
}

// ParseCircumferenceQuery reads mode, reset, increment and debug from the query string.
// Only the literal values "true" (reset, debug) and "false" (increment) have an
// effect; any other value leaves the default behaviour in place.
func ParseCircumferenceQuery(r *http.Request) CircumferenceQuery {
	q := r.URL.Query()

	query := CircumferenceQuery{
		RawMode:   q.Get("mode"),
		Debug:     q.Get("debug") == "true",
		Operation: OperationIncrement,
	}

	switch {
	case q.Get("reset") == "true":
		query.Operation = OperationReset
	case q.Get("increment") == "false":
		query.Operation = OperationRead
	}

	return query
}

// Mode validates the raw mode parameter.
func (q CircumferenceQuery) Mode() (model.Mode, error) {
	return validation.ValidateMode(q.RawMode)
}
