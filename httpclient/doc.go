// Package httpclient offers HTTP client construction helpers with IMS
// authentication and TLS/mTLS options.
//
// It provides a fluent Builder that can create an http.Client with automatic
// Bearer token injection using an imsclient.TokenProvider, configurable TLS
// (custom CA, mTLS, insecure for tests), timeouts, base transports, and
// redirect handling. BearerTransport can wrap any RoundTripper.
//
// # Features
//
//   - Fluent builder for http.Client with optional IMS token injection
//   - TLS 1.2+ by default, with custom CA/mTLS and optional InsecureSkipVerify
//   - Custom timeouts, base transport override, and redirect disabling
//   - Reusable BearerTransport for manual composition
//
// # Quick Start
//
//	client, err := httpclient.NewBuilder().
//	    WithIMS(map[string]any{
//	        "client_id":     "my-client",
//	        "client_secret": "my-secret",
//	        "org_id":        "my-org@AdobeOrg",
//	    }, ims.EnvironmentProd).
//	    WithTimeout(60 * time.Second).
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resp, err := client.Get("https://api.example.com/data")
//
// # Manual Transport Wrapping
//
//	transport := httpclient.NewBearerTransport(provider, nil)
//	client := &http.Client{Transport: transport}
//
// All components are safe for concurrent use if the provided TokenProvider is.
package httpclient
