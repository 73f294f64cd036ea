// Package ims implements the building blocks for Adobe IMS client-credentials
// token acquisition: credential normalization and validation, environment
// selection, the single-round-trip token fetcher, and the typed error
// taxonomy shared by the rest of the library.
//
// Most callers want the cached orchestration in package imsclient instead;
// this package is the uncached lower layer.
//
// # Features
//
//   - ValidateParams normalizes snake_case and camelCase credential fields
//     into a canonical Credentials record (camelCase wins)
//   - Fetcher performs exactly one form-encoded POST to /ims/token/v2 per
//     call, against the prod or stage IMS host
//   - Typed *Error values with stable Code discriminants
//     (BAD_CREDENTIALS_FORMAT, BAD_SCOPES_FORMAT, MISSING_PARAMETERS,
//     IMS_TOKEN_ERROR, GENERIC_ERROR) and structured detail bags
//   - DeploymentContext resolves a default environment from a deployment
//     namespace without ambient reads on the hot path
//   - TokenData/TokenExpiry decode IMS JWT payloads for diagnostics
//
// # Quick Start
//
//	creds, err := ims.ValidateParams(map[string]any{
//	    "client_id":     "my-client",
//	    "client_secret": "my-secret",
//	    "org_id":        "my-org@AdobeOrg",
//	    "scopes":        []string{"openid"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fetcher := ims.NewFetcher()
//	token, err := fetcher.FetchToken(ctx, creds, ims.EnvironmentProd)
//	if err != nil {
//	    if ims.CodeOf(err) == ims.CodeIMSToken {
//	        // provider rejected the credentials
//	    }
//	    log.Fatal(err)
//	}
//	fmt.Println(token.AccessToken())
//
// # Notes
//
//   - Error details never contain the client secret.
//   - Fetch failures are never retried; callers own retry policy.
package ims
