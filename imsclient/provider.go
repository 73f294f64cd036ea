package imsclient

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/adobe/aio-lib-core-auth/ims"
)

// TokenProvider binds a Client to one credential set so tokens can be
// injected into outbound HTTP and gRPC calls. Every token it hands out goes
// through the client's cache, so sharing one provider across several
// connections costs at most one fetch per TTL window.
//
// TokenProvider implements oauth2.TokenSource.
type TokenProvider struct {
	client *Client
	params map[string]any
	env    ims.Environment
}

var _ oauth2.TokenSource = (*TokenProvider)(nil)

// Provider returns a TokenProvider bound to params and environment.
// The params map is copied shallowly so later caller mutations do not leak in.
func (c *Client) Provider(params map[string]any, environment ims.Environment) *TokenProvider {
	copied := make(map[string]any, len(params))
	for k, v := range params {
		copied[k] = v
	}

	return &TokenProvider{client: c, params: copied, env: environment}
}

// AccessToken returns a valid bearer token string, from cache or freshly
// fetched. The context governs cancellation of the fetch on a cache miss.
func (p *TokenProvider) AccessToken(ctx context.Context) (string, error) {
	token, err := p.client.GenerateAccessToken(ctx, p.params, p.env)
	if err != nil {
		return "", err
	}
	return token.AccessToken(), nil
}

// Token implements oauth2.TokenSource, mapping the IMS response onto an
// oauth2.Token. The oauth2.TokenSource interface offers no context, so the
// fetch on a cache miss uses the background context.
func (p *TokenProvider) Token() (*oauth2.Token, error) {
	response, err := p.client.GenerateAccessToken(context.Background(), p.params, p.env)
	if err != nil {
		return nil, err
	}

	token := &oauth2.Token{
		AccessToken: response.AccessToken(),
		TokenType:   response.TokenType(),
	}
	if ttl := response.ExpiresIn(); ttl > 0 {
		token.Expiry = time.Now().Add(time.Duration(ttl) * time.Second)
	}

	return token, nil
}

// UnaryClientInterceptor returns a gRPC unary client interceptor that
// automatically adds IMS Bearer tokens to request metadata.
//
// The interceptor adds the token as "authorization: Bearer <token>" to the
// outgoing request context metadata. If the token fetch fails, the RPC call
// is aborted with an error. The interceptor respects the RPC context's
// cancellation and deadline.
//
// Usage:
//
//	conn, err := grpc.NewClient(
//	    "server:9090",
//	    grpc.WithUnaryInterceptor(provider.UnaryClientInterceptor()),
//	)
func (p *TokenProvider) UnaryClientInterceptor() grpc.UnaryClientInterceptor {
	return func(
		ctx context.Context,
		method string,
		req, reply interface{},
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		opts ...grpc.CallOption,
	) error {
		token, err := p.AccessToken(ctx)
		if err != nil {
			return fmt.Errorf("imsclient: failed to get token: %w", err)
		}

		ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)

		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

// StreamClientInterceptor returns a gRPC stream client interceptor that
// automatically adds IMS Bearer tokens to request metadata.
//
// The interceptor adds the token as "authorization: Bearer <token>" to the
// outgoing request context metadata. If the token fetch fails, stream
// creation is aborted with an error.
//
// Usage:
//
//	conn, err := grpc.NewClient(
//	    "server:9090",
//	    grpc.WithStreamInterceptor(provider.StreamClientInterceptor()),
//	)
func (p *TokenProvider) StreamClientInterceptor() grpc.StreamClientInterceptor {
	return func(
		ctx context.Context,
		desc *grpc.StreamDesc,
		cc *grpc.ClientConn,
		method string,
		streamer grpc.Streamer,
		opts ...grpc.CallOption,
	) (grpc.ClientStream, error) {
		token, err := p.AccessToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("imsclient: failed to get token: %w", err)
		}

		ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)

		return streamer(ctx, desc, cc, method, opts...)
	}
}
