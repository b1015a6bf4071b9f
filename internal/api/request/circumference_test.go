package request

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/Sun-Circumference-Backend/internal/apperrors"
	"github.com/ndewijer/Sun-Circumference-Backend/internal/model"
)

func TestParseCircumferenceQuery(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		operation Operation
		debug     bool
		rawMode   string
	}{
		{"no parameters increments", "/api/circumference", OperationIncrement, false, ""},
		{"reset wins over increment=false", "/api/circumference?reset=true&increment=false", OperationReset, false, ""},
		{"increment=false reads", "/api/circumference?mode=optimized&increment=false", OperationRead, false, "optimized"},
		{"increment=true increments", "/api/circumference?increment=true", OperationIncrement, false, ""},
		{"reset other than true is ignored", "/api/circumference?reset=1", OperationIncrement, false, ""},
		{"debug flag", "/api/circumference?debug=true", OperationIncrement, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			q := ParseCircumferenceQuery(req)

			if q.Operation != tt.operation {
				t.Errorf("Expected operation %s, got %s", tt.operation, q.Operation)
			}
			if q.Debug != tt.debug {
				t.Errorf("Expected debug %v, got %v", tt.debug, q.Debug)
			}
			if q.RawMode != tt.rawMode {
				t.Errorf("Expected raw mode %q, got %q", tt.rawMode, q.RawMode)
			}
		})
	}

	t.Run("mode validation", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/circumference?mode=bogus", nil)
		_, err := ParseCircumferenceQuery(req).Mode()
		if !errors.Is(err, apperrors.ErrInvalidMode) {
			t.Errorf("Expected ErrInvalidMode, got %v", err)
		}

		req = httptest.NewRequest(http.MethodGet, "/api/circumference", nil)
		mode, err := ParseCircumferenceQuery(req).Mode()
		if err != nil || mode != model.ModeEfficient {
			t.Errorf("Expected efficient without error, got %s, %v", mode, err)
		}
	})
}
