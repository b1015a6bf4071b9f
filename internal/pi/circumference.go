package pi

import "github.com/ndewijer/Sun-Circumference-Backend/internal/bigdec"

// SunRadiusKm is the radius the service derives its circumference from.
const SunRadiusKm = 695700

// CircumferenceDigits is the number of fractional digits in the rendered circumference.
const CircumferenceDigits = 2

// Circumference returns 2·π·radius and its rendering with exactly two
// fractional digits. The product is exact at the approximation's precision
// because both other factors are integers.
func Circumference(approximation bigdec.Value, radius int64) (bigdec.Value, string) {
	ctx := approximation.Context()
	c := approximation.
		Mul(bigdec.NewFromInt(ctx, 2)).
		Mul(bigdec.NewFromInt(ctx, radius))
	return c, c.ToFixed(CircumferenceDigits)
}
