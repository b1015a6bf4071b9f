package testutil

import (
	"net/http"
	"net/http/httptest"
)

// TestHost is the host used for requests built by these helpers.
const TestHost = "localhost:3000"

// NewRequestWithQueryParams creates an HTTP request with query parameters.
// This helper simplifies testing handlers that use r.URL.Query() to extract query string parameters.
//
// Example:
//
//	req := testutil.NewRequestWithQueryParams(
//	    http.MethodGet,
//	    "/api/circumference",
//	    map[string]string{
//	        "mode": "optimized",
//	        "increment": "false",
//	    },
//	)
func NewRequestWithQueryParams(method, path string, queryParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	req.Host = TestHost

	if len(queryParams) > 0 {
		q := req.URL.Query()
		for key, value := range queryParams {
			q.Add(key, value)
		}
		req.URL.RawQuery = q.Encode()
	}

	return req
}

// NewReferredRequest creates a request that looks like it was issued by a page
// served from TestHost, which subjects it to the access gate. An empty bearer
// omits the Authorization header.
func NewReferredRequest(method, path string, queryParams map[string]string, bearer string) *http.Request {
	req := NewRequestWithQueryParams(method, path, queryParams)
	req.Header.Set("Referer", "http://"+TestHost+"/")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	return req
}
