// Package testutil provides test helpers for aio-lib-core-auth packages.
//
// It includes utilities to spin up IPv4-only local HTTP servers (avoiding IPv6
// in sandboxes), mock the IMS token endpoint without real sockets, and
// generate self-signed certificates for TLS/mTLS tests.
//
// The mock IMS server records every request and its decoded form body, which
// is what the cache tests use to count network round trips.
package testutil
