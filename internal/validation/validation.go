package validation

import (
	"fmt"

	"github.com/ndewijer/Sun-Circumference-Backend/internal/apperrors"
	"github.com/ndewijer/Sun-Circumference-Backend/internal/model"
)

// ValidateMode resolves a raw mode string against the closed set of modes.
// An empty string selects model.DefaultMode; anything unrecognised is an
// error wrapping apperrors.ErrInvalidMode and is never mapped to a default.
func ValidateMode(raw string) (model.Mode, error) {
	if raw == "" {
		return model.DefaultMode, nil
	}
	for _, m := range model.Modes {
		if raw == string(m) {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %s", apperrors.ErrInvalidMode, raw)
}
