package model

import (
	"time"

	"github.com/ndewijer/Sun-Circumference-Backend/internal/bigdec"
)

// Mode names one of the two π convergence strategies.
type Mode string

const (
	// ModeEfficient sums the Leibniz series one term per iteration.
	ModeEfficient Mode = "efficient"

	// ModeOptimized evaluates Machin's formula to a target digit count.
	ModeOptimized Mode = "optimized"
)

// Modes lists every supported mode in a stable order.
var Modes = []Mode{ModeEfficient, ModeOptimized}

// DefaultMode is used when a request does not name a mode.
const DefaultMode = ModeEfficient

// StoreKey returns the durable store key for the mode.
func (m Mode) StoreKey() string {
	return "piStore:" + string(m)
}

// ConvergenceState is the current π approximation of a mode together with
// the iteration count it was computed from.
type ConvergenceState struct {
	Approximation  bigdec.Value
	IterationCount int
}

// InitialApproximation is the value every mode starts from and resets to.
const InitialApproximation = 3

// InitialState returns the (3, 0) state.
func InitialState() ConvergenceState {
	return ConvergenceState{
		Approximation:  bigdec.NewFromInt(bigdec.NewContext(0), InitialApproximation),
		IterationCount: 0,
	}
}

// PiFixed renders the approximation with IterationCount fractional digits.
func (s ConvergenceState) PiFixed() string {
	return s.Approximation.ToFixed(s.IterationCount)
}

// PersistedState is the record kept in the durable store for one mode.
type PersistedState struct {
	Pi             string    `json:"pi"`
	IterationCount int       `json:"iterationCount"`
	UpdatedAt      time.Time `json:"updatedAt,omitzero"`
	InstanceID     string    `json:"instanceId,omitempty"`
}

// PersistOutcome records whether a best-effort durable write succeeded.
// It is only ever logged; responses never depend on it.
type PersistOutcome struct {
	Degraded bool
	Reason   string
}

// PersistedOK is the outcome of a successful durable write.
var PersistedOK = PersistOutcome{}

// PersistedDegraded returns the outcome of a failed durable write.
func PersistedDegraded(err error) PersistOutcome {
	return PersistOutcome{Degraded: true, Reason: err.Error()}
}
