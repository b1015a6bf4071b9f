// Package pi implements the two π convergence strategies and the circumference
// derivation built on top of them.
//
// Both algorithms are pure: they allocate their own bigdec.Context per call and
// recompute from scratch, so calling either twice with the same input yields an
// identical value regardless of what other goroutines are computing.
package pi

import (
	"fmt"

	"github.com/ndewijer/Sun-Circumference-Backend/internal/apperrors"
	"github.com/ndewijer/Sun-Circumference-Backend/internal/bigdec"
	"github.com/ndewijer/Sun-Circumference-Backend/internal/model"
)

const (
	// GuardDigits is the extra working precision carried beyond the requested
	// output digits to absorb rounding error during summation.
	GuardDigits = 5

	// MaxSeriesTerms caps each arctan series so Optimized always terminates.
	MaxSeriesTerms = 10000

	// efficientMinPrecision keeps short Leibniz partial sums at a useful precision.
	efficientMinPrecision = 20
)

// Algorithm computes a π approximation from an iteration or digit count.
type Algorithm func(n int) (bigdec.Value, error)

// ForMode returns the algorithm backing the given mode.
func ForMode(mode model.Mode) (Algorithm, error) {
	switch mode {
	case model.ModeEfficient:
		return Efficient, nil
	case model.ModeOptimized:
		return Optimized, nil
	default:
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidMode, mode)
	}
}

// WorkingContext returns the context the mode's algorithm uses for n.
// Values reloaded from the durable store are rebound to it so that later
// arithmetic behaves exactly as on a freshly computed value.
func WorkingContext(mode model.Mode, n int) bigdec.Context {
	if mode == model.ModeOptimized {
		return bigdec.NewContext(int32(n + GuardDigits))
	}
	return bigdec.NewContext(int32(max(efficientMinPrecision, n+GuardDigits)))
}

func checkCount(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d", apperrors.ErrNegativeIterations, n)
	}
	return nil
}

// Efficient returns the Leibniz partial sum Σ_{i=0}^{n-1} (-1)^i · 4/(2i+1).
//
// n is the number of series terms summed: Efficient(0) is 0 and Efficient(1)
// is 4. Convergence is deliberately slow (error ∝ 1/n).
func Efficient(n int) (bigdec.Value, error) {
	if err := checkCount(n); err != nil {
		return bigdec.Value{}, err
	}

	ctx := WorkingContext(model.ModeEfficient, n)
	four := bigdec.NewFromInt(ctx, 4)
	two := bigdec.NewFromInt(ctx, 2)
	sum := bigdec.NewFromInt(ctx, 0)
	divisor := bigdec.NewFromInt(ctx, 1)

	for i := 0; i < n; i++ {
		term, err := four.Div(divisor)
		if err != nil {
			return bigdec.Value{}, fmt.Errorf("leibniz term %d: %w", i, err)
		}
		if i%2 == 0 {
			sum = sum.Add(term)
		} else {
			sum = sum.Sub(term)
		}
		divisor = divisor.Add(two)
	}

	return sum, nil
}

// Optimized returns π to n digits using Machin's identity
//
//	π = 16·arctan(1/5) − 4·arctan(1/239)
//
// Each arctan series is summed until its current term drops to 10^-(n+1) or
// MaxSeriesTerms is reached. Optimized(0) sums zero terms and returns 0.
func Optimized(n int) (bigdec.Value, error) {
	if err := checkCount(n); err != nil {
		return bigdec.Value{}, err
	}

	ctx := WorkingContext(model.ModeOptimized, n)
	if n == 0 {
		return bigdec.NewFromInt(ctx, 0), nil
	}

	threshold := bigdec.Pow10(ctx, -int32(n+1))

	a5, err := arctanInverse(ctx, 5, threshold)
	if err != nil {
		return bigdec.Value{}, fmt.Errorf("arctan(1/5): %w", err)
	}
	a239, err := arctanInverse(ctx, 239, threshold)
	if err != nil {
		return bigdec.Value{}, fmt.Errorf("arctan(1/239): %w", err)
	}

	four := bigdec.NewFromInt(ctx, 4)
	return four.Mul(four.Mul(a5).Sub(a239)), nil
}

// arctanInverse evaluates arctan(1/x) = Σ (-1)^k / ((2k+1)·x^(2k+1)).
func arctanInverse(ctx bigdec.Context, x int64, threshold bigdec.Value) (bigdec.Value, error) {
	xv := bigdec.NewFromInt(ctx, x)
	x2 := xv.Mul(xv)

	term, err := bigdec.NewFromInt(ctx, 1).Div(xv)
	if err != nil {
		return bigdec.Value{}, err
	}
	sum := term

	for k := int64(1); k <= MaxSeriesTerms && term.Abs().GreaterThan(threshold); k++ {
		// term *= -(2k-1)/(2k+1) / x²
		ratio, err := bigdec.NewFromInt(ctx, -(2*k - 1)).Div(bigdec.NewFromInt(ctx, 2*k+1))
		if err != nil {
			return bigdec.Value{}, err
		}
		term, err = term.Mul(ratio).Div(x2)
		if err != nil {
			return bigdec.Value{}, err
		}
		sum = sum.Add(term)
	}

	return sum, nil
}
