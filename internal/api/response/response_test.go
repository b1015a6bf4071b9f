package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRespondJSON(t *testing.T) {
	t.Run("sets content-type and status code correctly", func(t *testing.T) {
		w := httptest.NewRecorder()

		RespondJSON(w, http.StatusOK, map[string]string{"pi": "3"})

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
		if w.Header().Get("Content-Type") != "application/json" {
			t.Errorf("Expected Content-Type 'application/json', got '%s'", w.Header().Get("Content-Type"))
		}
		if w.Body.Len() == 0 {
			t.Error("Expected response body to contain JSON data")
		}
	})

	t.Run("handles nil data without error", func(t *testing.T) {
		w := httptest.NewRecorder()

		RespondJSON(w, http.StatusNoContent, nil)

		if w.Code != http.StatusNoContent {
			t.Errorf("Expected status 204, got %d", w.Code)
		}
		if w.Body.Len() != 0 {
			t.Errorf("Expected empty body, got %q", w.Body.String())
		}
	})

	t.Run("handles un-encodable data gracefully", func(t *testing.T) {
		w := httptest.NewRecorder()

		// Channels cannot be JSON encoded; this must log, not panic
		RespondJSON(w, http.StatusOK, map[string]any{"channel": make(chan int)})

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
	})
}

func TestRespondCached(t *testing.T) {
	w := httptest.NewRecorder()

	RespondCached(w, http.StatusOK, "s-maxage=60", map[string]int{"currentIterations": 1})

	if got := w.Header().Get("Cache-Control"); got != "s-maxage=60" {
		t.Errorf("Expected Cache-Control 's-maxage=60', got '%s'", got)
	}
	if w.Header().Get("Content-Type") != "application/json" {
		t.Error("Expected Content-Type to be set")
	}
}

func TestRespondError(t *testing.T) {
	t.Run("omits nil details", func(t *testing.T) {
		w := httptest.NewRecorder()

		RespondError(w, http.StatusBadRequest, "Invalid mode: fast", nil)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}

		var body map[string]any
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&body)

		if body["error"] != "Invalid mode: fast" {
			t.Errorf("Expected error message, got %v", body["error"])
		}
		if _, ok := body["details"]; ok {
			t.Errorf("Expected details to be omitted, got %v", body["details"])
		}
	})

	t.Run("includes details when given", func(t *testing.T) {
		w := httptest.NewRecorder()

		RespondError(w, http.StatusUnauthorized, "Unauthorized", "missing bearer credential")

		var body ErrorResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&body)

		if body.Details != "missing bearer credential" {
			t.Errorf("Expected details, got %v", body.Details)
		}
	})
}
