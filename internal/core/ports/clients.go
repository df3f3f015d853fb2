package ports

import (
	"context"
	"net/url"
)

// APIClient issues authenticated requests against the FinMate backend.
// Implementations inject the bearer token and map non-2xx responses to
// typed errors from the apperrors package.
type APIClient interface {
	// GetJSON performs a GET against path with the given query string and
	// decodes the JSON response body into out.
	GetJSON(ctx context.Context, path string, query url.Values, out any) error

	// PostJSON performs a POST with a JSON-encoded body and decodes the
	// JSON response body into out. out may be nil when the caller does not
	// need the response.
	PostJSON(ctx context.Context, path string, body any, out any) error
}
