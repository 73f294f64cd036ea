// Package imsclient provides cached Adobe IMS access-token acquisition using
// the client-credentials flow.
//
// A Client validates loose credential parameters, consults a shared
// fixed-TTL cache keyed by client, org, environment, and scopes, and fetches
// from IMS only on a miss. A TokenProvider bound to one credential set plugs
// the cached tokens into HTTP transports, gRPC interceptors, and anything
// accepting an oauth2.TokenSource.
//
// # Features
//
//   - Client-credentials flow with a five-minute token cache (no sliding
//     expiration; failed fetches are never cached)
//   - Credentials accepted as top-level fields or injected under the
//     CredentialsParam/EnvironmentParam well-known properties
//   - Environment resolution: explicit argument, params hint, deployment
//     namespace default, production
//   - InvalidateCache to force the next lookup to miss
//   - FetchAccessToken for callers that want to bypass the cache
//   - TokenProvider implementing oauth2.TokenSource plus gRPC unary and
//     stream client interceptors
//   - Optional logging (WithLogger, WithLoggingEnabled)
//
// # Quick Start
//
//	client := imsclient.New()
//
//	token, err := client.GenerateAccessToken(ctx, map[string]any{
//	    "client_id":     "my-client",
//	    "client_secret": "my-secret",
//	    "org_id":        "my-org@AdobeOrg",
//	    "scopes":        []string{"openid"},
//	}, "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(token.AccessToken())
//
// A process-wide default client backs the package-level
// GenerateAccessToken/FetchAccessToken/InvalidateCache functions for callers
// that want the original drop-in surface.
//
// # Notes
//
//   - Concurrent misses for the same key fetch independently; the last result
//     written wins. There is no in-flight de-duplication.
//   - The cache is per process. Nothing is shared across processes.
package imsclient
