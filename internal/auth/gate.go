// Package auth implements the access gate that decides whether a caller must
// present a bearer credential.
package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// Decision is the outcome of evaluating a request against the gate.
type Decision struct {
	Allowed bool
	Reason  string
}

// Request is the metadata the gate looks at.
type Request struct {
	Authorization string
	Referer       string
	Host          string
}

// RequestFrom extracts gate metadata from an HTTP request.
func RequestFrom(r *http.Request) Request {
	return Request{
		Authorization: r.Header.Get("Authorization"),
		Referer:       r.Header.Get("Referer"),
		Host:          r.Host,
	}
}

// Direct reports whether the request was issued directly rather than referred
// from a page served by this host.
func (r Request) Direct() bool {
	return r.Referer == "" || r.Host == "" || !strings.Contains(r.Referer, r.Host)
}

// Gate decides whether a request may reach the state store.
type Gate interface {
	Evaluate(req Request) Decision
}

// APIKeyGate accepts either of two bearer keys. Enforcement is only active in
// the production posture (or when forced for testing) and only once at least
// one key is configured; direct requests are always accepted.
type APIKeyGate struct {
	secretKey  string
	publicKey  string
	production bool
	force      bool
}

// NewAPIKeyGate creates the gate from its configuration.
func NewAPIKeyGate(secretKey, publicKey string, production, force bool) *APIKeyGate {
	return &APIKeyGate{
		secretKey:  secretKey,
		publicKey:  publicKey,
		production: production,
		force:      force,
	}
}

// Enforced reports whether the gate checks credentials at all.
func (g *APIKeyGate) Enforced() bool {
	return (g.production || g.force) && (g.secretKey != "" || g.publicKey != "")
}

// Evaluate applies the gate policy to req.
func (g *APIKeyGate) Evaluate(req Request) Decision {
	if req.Direct() {
		return Decision{Allowed: true, Reason: "direct access"}
	}
	if !g.Enforced() {
		return Decision{Allowed: true, Reason: "authentication not enforced"}
	}

	if req.Authorization == "" {
		return Decision{Allowed: false, Reason: "missing bearer credential"}
	}
	if matches(req.Authorization, g.secretKey) || matches(req.Authorization, g.publicKey) {
		return Decision{Allowed: true, Reason: "valid bearer credential"}
	}
	return Decision{Allowed: false, Reason: "invalid bearer credential"}
}

func matches(header, key string) bool {
	if key == "" {
		return false
	}
	expected := "Bearer " + key
	return subtle.ConstantTimeCompare([]byte(header), []byte(expected)) == 1
}
