// Package testutil provides public test helpers for consumers of
// aio-lib-core-auth.
//
// It mirrors the internal helpers the library tests itself with: an in-memory
// mock of the IMS token endpoint (request and form capture, canned success
// and error responses), an IPv4-only httptest server constructor, and
// self-signed certificate writers for TLS/mTLS tests.
package testutil
