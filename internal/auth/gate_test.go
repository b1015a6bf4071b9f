package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAPIKeyGate_Evaluate(t *testing.T) {
	const (
		secret = "server-secret"
		public = "public-key"
		host   = "localhost:3000"
		ref    = "http://localhost:3000/"
	)

	tests := []struct {
		name    string
		gate    *APIKeyGate
		req     Request
		allowed bool
		reason  string
	}{
		{
			name:    "direct access bypasses enforcement",
			gate:    NewAPIKeyGate(secret, public, true, false),
			req:     Request{Host: host},
			allowed: true,
			reason:  "direct access",
		},
		{
			name:    "referer from another host counts as direct",
			gate:    NewAPIKeyGate(secret, public, true, false),
			req:     Request{Host: host, Referer: "https://elsewhere.example/"},
			allowed: true,
			reason:  "direct access",
		},
		{
			name:    "not enforced outside production",
			gate:    NewAPIKeyGate(secret, public, false, false),
			req:     Request{Host: host, Referer: ref},
			allowed: true,
			reason:  "authentication not enforced",
		},
		{
			name:    "not enforced without configured keys",
			gate:    NewAPIKeyGate("", "", true, false),
			req:     Request{Host: host, Referer: ref},
			allowed: true,
			reason:  "authentication not enforced",
		},
		{
			name:    "rejects missing credential in production",
			gate:    NewAPIKeyGate(secret, public, true, false),
			req:     Request{Host: host, Referer: ref},
			allowed: false,
			reason:  "missing bearer credential",
		},
		{
			name:    "rejects wrong credential when forced",
			gate:    NewAPIKeyGate(secret, public, false, true),
			req:     Request{Host: host, Referer: ref, Authorization: "Bearer nope"},
			allowed: false,
			reason:  "invalid bearer credential",
		},
		{
			name:    "accepts secret key",
			gate:    NewAPIKeyGate(secret, public, true, false),
			req:     Request{Host: host, Referer: ref, Authorization: "Bearer " + secret},
			allowed: true,
			reason:  "valid bearer credential",
		},
		{
			name:    "accepts public key",
			gate:    NewAPIKeyGate(secret, public, true, false),
			req:     Request{Host: host, Referer: ref, Authorization: "Bearer " + public},
			allowed: true,
			reason:  "valid bearer credential",
		},
		{
			name:    "empty key never matches a bare bearer prefix",
			gate:    NewAPIKeyGate(secret, "", true, false),
			req:     Request{Host: host, Referer: ref, Authorization: "Bearer "},
			allowed: false,
			reason:  "invalid bearer credential",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.gate.Evaluate(tt.req)
			if got.Allowed != tt.allowed {
				t.Errorf("Expected allowed=%v, got %v (%s)", tt.allowed, got.Allowed, got.Reason)
			}
			if got.Reason != tt.reason {
				t.Errorf("Expected reason %q, got %q", tt.reason, got.Reason)
			}
		})
	}
}

func TestRequestFrom(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://localhost:3000/api/circumference", nil)
	req.Header.Set("Referer", "http://localhost:3000/")
	req.Header.Set("Authorization", "Bearer abc")

	got := RequestFrom(req)
	if got.Host != "localhost:3000" {
		t.Errorf("Expected host localhost:3000, got %s", got.Host)
	}
	if got.Direct() {
		t.Error("Expected referred request not to be direct")
	}
	if got.Authorization != "Bearer abc" {
		t.Errorf("Expected authorization header, got %q", got.Authorization)
	}
}
