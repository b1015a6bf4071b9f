// Package bigdec provides an immutable arbitrary-precision decimal value whose
// precision and rounding rule travel with the value instead of living in
// package-level state.
//
// Every Value carries the Context it was created with. Arithmetic results are
// rounded to the receiver's Context, so two computations running at different
// precisions can never influence one another.
package bigdec

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrDivisionByZero is returned by Div when the divisor is zero.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrInvalidPrecision indicates a Context with a negative working precision.
	ErrInvalidPrecision = errors.New("precision cannot be negative")

	// ErrInvalidNumber indicates a string that cannot be parsed as a decimal.
	ErrInvalidNumber = errors.New("invalid decimal number")
)

// RoundingMode selects how results are rounded to the working precision.
type RoundingMode int

const (
	// RoundHalfUp rounds to the nearest neighbour, ties away from zero.
	RoundHalfUp RoundingMode = iota

	// RoundHalfEven rounds to the nearest neighbour, ties to the even digit.
	RoundHalfEven

	// RoundDown truncates toward zero.
	RoundDown
)

func (m RoundingMode) String() string {
	switch m {
	case RoundHalfUp:
		return "half-up"
	case RoundHalfEven:
		return "half-even"
	case RoundDown:
		return "down"
	default:
		return fmt.Sprintf("RoundingMode(%d)", int(m))
	}
}

// Context is the working precision (digits after the radix point) and the
// rounding rule used by a single computation.
type Context struct {
	Precision int32
	Rounding  RoundingMode
}

// NewContext returns a round-half-up Context with the given precision.
func NewContext(precision int32) Context {
	return Context{Precision: precision, Rounding: RoundHalfUp}
}

// Validate reports whether the context can be used for division.
func (c Context) Validate() error {
	if c.Precision < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPrecision, c.Precision)
	}
	return nil
}

// round rounds d to places fractional digits using the context's rule.
func (c Context) round(d decimal.Decimal, places int32) decimal.Decimal {
	switch c.Rounding {
	case RoundHalfEven:
		return d.RoundBank(places)
	case RoundDown:
		if places < 0 {
			return d.Shift(places).Truncate(0).Shift(-places)
		}
		return d.Truncate(places)
	default:
		return d.Round(places)
	}
}

// Value is an immutable decimal number bound to a Context.
type Value struct {
	d   decimal.Decimal
	ctx Context
}

// NewFromInt creates a Value holding the integer i.
func NewFromInt(ctx Context, i int64) Value {
	return Value{d: decimal.NewFromInt(i), ctx: ctx}
}

// NewFromString parses a decimal string such as "3.14159" or "-2".
// The parsed digits are kept exactly; no rounding is applied.
func NewFromString(ctx Context, s string) (Value, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	return Value{d: d, ctx: ctx}, nil
}

// Pow10 returns 10^exp. Negative exponents yield exact fractional values.
func Pow10(ctx Context, exp int32) Value {
	return Value{d: decimal.New(1, exp), ctx: ctx}
}

// Context returns the value's working context.
func (v Value) Context() Context {
	return v.ctx
}

// WithContext rebinds the value to another context without changing its digits.
func (v Value) WithContext(ctx Context) Value {
	return Value{d: v.d, ctx: ctx}
}

func (v Value) wrap(d decimal.Decimal) Value {
	return Value{d: v.ctx.round(d, v.ctx.Precision), ctx: v.ctx}
}

// Add returns v + o rounded to v's context.
func (v Value) Add(o Value) Value {
	return v.wrap(v.d.Add(o.d))
}

// Sub returns v - o rounded to v's context.
func (v Value) Sub(o Value) Value {
	return v.wrap(v.d.Sub(o.d))
}

// Mul returns v × o rounded to v's context.
func (v Value) Mul(o Value) Value {
	return v.wrap(v.d.Mul(o.d))
}

// Div returns v ÷ o rounded to v's context.
//
// The quotient is derived from an exact quotient/remainder split so the
// context's rounding rule is honoured for every mode, including exact ties.
func (v Value) Div(o Value) (Value, error) {
	if err := v.ctx.Validate(); err != nil {
		return Value{}, err
	}
	if o.d.IsZero() {
		return Value{}, ErrDivisionByZero
	}

	p := v.ctx.Precision
	q, r := v.d.QuoRem(o.d, p)
	if r.IsZero() || v.ctx.Rounding == RoundDown {
		return Value{d: q, ctx: v.ctx}, nil
	}

	// |r| < |o|·10^-p; compare 2|r| against that bound to find the tie.
	twice := r.Abs().Add(r.Abs())
	bound := o.d.Abs().Shift(-p)
	away := false
	switch cmp := twice.Cmp(bound); {
	case cmp > 0:
		away = true
	case cmp == 0:
		if v.ctx.Rounding == RoundHalfUp {
			away = true
		} else {
			away = q.Shift(p).Mod(decimal.NewFromInt(2)).Abs().Equal(decimal.NewFromInt(1))
		}
	}

	if away {
		ulp := decimal.New(1, -p)
		if v.d.Sign()*o.d.Sign() < 0 {
			q = q.Sub(ulp)
		} else {
			q = q.Add(ulp)
		}
	}
	return Value{d: q, ctx: v.ctx}, nil
}

// Abs returns |v|.
func (v Value) Abs() Value {
	return Value{d: v.d.Abs(), ctx: v.ctx}
}

// Neg returns -v.
func (v Value) Neg() Value {
	return Value{d: v.d.Neg(), ctx: v.ctx}
}

// Shift multiplies v by 10^exp exactly.
func (v Value) Shift(exp int32) Value {
	return Value{d: v.d.Shift(exp), ctx: v.ctx}
}

// Cmp returns -1, 0 or +1 depending on whether v is less than, equal to or
// greater than o.
func (v Value) Cmp(o Value) int {
	return v.d.Cmp(o.d)
}

// GreaterThan reports whether v > o.
func (v Value) GreaterThan(o Value) bool {
	return v.d.GreaterThan(o.d)
}

// Equal reports whether v and o represent the same number.
func (v Value) Equal(o Value) bool {
	return v.d.Equal(o.d)
}

// IsZero reports whether v == 0.
func (v Value) IsZero() bool {
	return v.d.IsZero()
}

// Sign returns -1, 0 or +1.
func (v Value) Sign() int {
	return v.d.Sign()
}

// ToFixed renders v with exactly n digits after the radix point, rounded with
// the value's rounding rule. Negative n is treated as zero.
func (v Value) ToFixed(n int) string {
	if n < 0 {
		n = 0
	}
	return v.ctx.round(v.d, int32(n)).StringFixed(int32(n))
}

// String returns the full decimal representation without trailing rounding.
func (v Value) String() string {
	return v.d.String()
}
