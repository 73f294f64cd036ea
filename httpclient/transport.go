package httpclient

import (
	"fmt"
	"net/http"

	"github.com/adobe/aio-lib-core-auth/imsclient"
)

// BearerTransport is an http.RoundTripper that automatically adds IMS Bearer
// tokens to outgoing HTTP requests.
//
// It wraps an existing transport (typically http.DefaultTransport) and
// injects the Authorization header before each request.
type BearerTransport struct {
	// Base is the underlying HTTP transport. If nil, http.DefaultTransport is used.
	Base http.RoundTripper

	// Provider supplies IMS access tokens.
	Provider *imsclient.TokenProvider
}

// RoundTrip implements the http.RoundTripper interface.
// It obtains a valid IMS token and adds it as "Authorization: Bearer <token>"
// to the request headers before delegating to the base transport.
// The token fetch respects the request context's cancellation and deadline.
func (t *BearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Provider == nil {
		return nil, fmt.Errorf("httpclient: Provider is nil")
	}

	token, err := t.Provider.AccessToken(req.Context())
	if err != nil {
		return nil, fmt.Errorf("httpclient: failed to get token: %w", err)
	}

	// Clone the request to avoid modifying the original
	reqClone := req.Clone(req.Context())
	reqClone.Header.Set("Authorization", "Bearer "+token)

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	return base.RoundTrip(reqClone)
}

// NewBearerTransport creates a new BearerTransport with the given token provider.
// The base transport defaults to http.DefaultTransport if not specified.
func NewBearerTransport(provider *imsclient.TokenProvider, base http.RoundTripper) *BearerTransport {
	if base == nil {
		base = http.DefaultTransport
	}

	return &BearerTransport{
		Base:     base,
		Provider: provider,
	}
}
