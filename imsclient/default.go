package imsclient

import (
	"context"
	"sync"

	"github.com/adobe/aio-lib-core-auth/ims"
)

var (
	defaultClient *Client
	defaultOnce   sync.Once
)

// Default returns the process-wide shared client. All callers of the
// package-level functions observe the same token cache for the lifetime of
// the process.
func Default() *Client {
	defaultOnce.Do(func() {
		defaultClient = New()
	})
	return defaultClient
}

// GenerateAccessToken acquires a token through the shared default client.
// See Client.GenerateAccessToken.
func GenerateAccessToken(ctx context.Context, params map[string]any, environment ims.Environment) (ims.TokenResponse, error) {
	return Default().GenerateAccessToken(ctx, params, environment)
}

// FetchAccessToken performs an uncached token request through the shared
// default client. See Client.FetchAccessToken.
func FetchAccessToken(ctx context.Context, params map[string]any, environment ims.Environment) (ims.TokenResponse, error) {
	return Default().FetchAccessToken(ctx, params, environment)
}

// InvalidateCache clears the shared default client's token cache.
func InvalidateCache() {
	Default().InvalidateCache()
}
