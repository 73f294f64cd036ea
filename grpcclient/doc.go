// Package grpcclient offers gRPC client connection helpers with IMS
// authentication and TLS/mTLS options.
//
// It provides a fluent Builder that creates a *grpc.ClientConn with automatic
// Bearer token injection via imsclient interceptors, configurable TLS (custom
// CA, mTLS, server name override), and custom dial options.
//
// # Features
//
//   - Fluent builder for grpc.ClientConn with optional IMS token injection
//   - Unary and stream interceptors wired from a shared TokenProvider
//   - TLS 1.2+ by default; never dials plaintext unless explicitly configured
//     through custom dial options
//
// # Quick Start
//
//	conn, err := grpcclient.NewBuilder().
//	    WithAddress("api.example.com:9090").
//	    WithIMS(map[string]any{
//	        "client_id":     "my-client",
//	        "client_secret": "my-secret",
//	        "org_id":        "my-org@AdobeOrg",
//	    }, ims.EnvironmentProd).
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conn.Close()
//
// Connections built from the same process share the default client's token
// cache, so many connections cost one token fetch per TTL window.
package grpcclient
