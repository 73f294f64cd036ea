package imsclient

import (
	"context"
	"strings"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/adobe/aio-lib-core-auth/internal/testutil"
)

func TestTokenProvider_AccessToken(t *testing.T) {
	server := testutil.NewMockIMSServer(t, nil)
	defer server.Close()

	provider := newTestClient(t, server).Provider(testParams(), "")

	token, err := provider.AccessToken(context.Background())
	if err != nil {
		t.Fatalf("AccessToken failed: %v", err)
	}
	if token != "mock-access-token" {
		t.Errorf("unexpected token: %s", token)
	}

	// Second call is served from the cache.
	if _, err := provider.AccessToken(context.Background()); err != nil {
		t.Fatalf("AccessToken failed: %v", err)
	}
	if len(server.Requests) != 1 {
		t.Fatalf("expected one request, got %d", len(server.Requests))
	}
}

func TestTokenProvider_Token(t *testing.T) {
	server := testutil.NewMockIMSServer(t, testutil.StaticJSONResponse(
		`{"access_token":"T","token_type":"bearer","expires_in":3600}`,
	))
	defer server.Close()

	provider := newTestClient(t, server).Provider(testParams(), "")

	token, err := provider.Token()
	if err != nil {
		t.Fatalf("Token failed: %v", err)
	}

	if token.AccessToken != "T" {
		t.Errorf("unexpected access token: %s", token.AccessToken)
	}
	if token.TokenType != "bearer" {
		t.Errorf("unexpected token type: %s", token.TokenType)
	}

	remaining := time.Until(token.Expiry)
	if remaining <= 0 || remaining > time.Hour {
		t.Errorf("expiry not derived from expires_in: %v", token.Expiry)
	}
}

func TestTokenProvider_ParamsCopied(t *testing.T) {
	server := testutil.NewMockIMSServer(t, nil)
	defer server.Close()

	params := testParams()
	provider := newTestClient(t, server).Provider(params, "")

	// Mutations after binding must not leak into the provider.
	params["clientId"] = "other-client"

	if _, err := provider.AccessToken(context.Background()); err != nil {
		t.Fatalf("AccessToken failed: %v", err)
	}

	if got := server.Forms[0].Get("client_id"); got != "c1" {
		t.Errorf("provider should hold a copy of the params, sent client_id %q", got)
	}
}

func TestTokenProvider_UnaryClientInterceptor(t *testing.T) {
	server := testutil.NewMockIMSServer(t, nil)
	defer server.Close()

	provider := newTestClient(t, server).Provider(testParams(), "")

	interceptor := provider.UnaryClientInterceptor()
	if interceptor == nil {
		t.Fatal("interceptor should not be nil")
	}

	called := false
	mockInvoker := func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		called = true

		md, ok := metadata.FromOutgoingContext(ctx)
		if !ok {
			t.Error("metadata not found in context")
			return nil
		}

		authHeaders := md.Get("authorization")
		if len(authHeaders) == 0 {
			t.Error("authorization header not found")
			return nil
		}

		if authHeaders[0] != "Bearer mock-access-token" {
			t.Errorf("unexpected authorization value: %s", authHeaders[0])
		}

		return nil
	}

	if err := interceptor(context.Background(), "/test.Service/Method", nil, nil, nil, mockInvoker); err != nil {
		t.Errorf("interceptor failed: %v", err)
	}

	if !called {
		t.Error("invoker was not called")
	}
}

func TestTokenProvider_UnaryClientInterceptor_FetchFailure(t *testing.T) {
	server := testutil.NewMockIMSServer(t, testutil.StatusJSONResponse(400, `{"error":"invalid_client"}`, nil))
	defer server.Close()

	provider := newTestClient(t, server).Provider(testParams(), "")

	invoked := false
	err := provider.UnaryClientInterceptor()(context.Background(), "/test.Service/Method", nil, nil, nil,
		func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
			invoked = true
			return nil
		})

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "failed to get token") {
		t.Errorf("unexpected error: %v", err)
	}
	if invoked {
		t.Error("invoker must not run when the token fetch fails")
	}
}

func TestTokenProvider_StreamClientInterceptor(t *testing.T) {
	server := testutil.NewMockIMSServer(t, nil)
	defer server.Close()

	provider := newTestClient(t, server).Provider(testParams(), "")

	interceptor := provider.StreamClientInterceptor()
	if interceptor == nil {
		t.Fatal("interceptor should not be nil")
	}

	called := false
	mockStreamer := func(ctx context.Context, desc *grpc.StreamDesc, cc *grpc.ClientConn, method string, opts ...grpc.CallOption) (grpc.ClientStream, error) {
		called = true

		md, ok := metadata.FromOutgoingContext(ctx)
		if !ok {
			t.Error("metadata not found in context")
			return nil, nil
		}

		authHeaders := md.Get("authorization")
		if len(authHeaders) == 0 {
			t.Error("authorization header not found")
			return nil, nil
		}

		if !strings.HasPrefix(authHeaders[0], "Bearer ") {
			t.Errorf("expected Bearer token, got: %s", authHeaders[0])
		}

		return nil, nil
	}

	if _, err := interceptor(context.Background(), &grpc.StreamDesc{}, nil, "/test.Service/Stream", mockStreamer); err != nil {
		t.Errorf("interceptor failed: %v", err)
	}

	if !called {
		t.Error("streamer was not called")
	}
}
