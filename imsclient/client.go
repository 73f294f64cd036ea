package imsclient

import (
	"context"
	"log"

	"github.com/adobe/aio-lib-core-auth/ims"
	"github.com/adobe/aio-lib-core-auth/tokencache"
)

// Well-known parameter names used when a hosting execution framework injects
// credentials and an environment hint into the params object instead of
// passing them as top-level fields.
const (
	// CredentialsParam carries a nested credentials object.
	CredentialsParam = "imsCredentials"
	// EnvironmentParam carries an environment hint ("prod" or "stage").
	EnvironmentParam = "imsEnv"
)

// Logger is an interface for optional logging in Client.
// Implementations can log token fetch events if desired.
type Logger interface {
	Printf(format string, args ...any)
}

// Client acquires IMS access tokens through a shared fixed-TTL cache.
// It is safe for concurrent use; concurrent cache misses for the same key
// each fetch independently and the last write wins.
type Client struct {
	cache      *tokencache.Cache
	fetcher    *ims.Fetcher
	deployment ims.DeploymentContext
	logger     Logger // optional logger
}

// Option is a functional option for configuring Client.
type Option func(*Client)

// WithCache sets the token cache. Passing a shared cache lets several clients
// observe the same entries; by default each client owns a fresh cache.
func WithCache(cache *tokencache.Cache) Option {
	return func(c *Client) {
		if cache != nil {
			c.cache = cache
		}
	}
}

// WithFetcher sets the token fetcher, which controls the HTTP client and
// endpoint overrides used for token requests.
func WithFetcher(fetcher *ims.Fetcher) Option {
	return func(c *Client) {
		if fetcher != nil {
			c.fetcher = fetcher
		}
	}
}

// WithDeploymentContext injects the deployment configuration consulted when
// neither the caller nor the params name an environment. By default the
// context is read from the process environment once at construction.
func WithDeploymentContext(deployment ims.DeploymentContext) Option {
	return func(c *Client) {
		c.deployment = deployment
	}
}

// WithLogger sets a custom logger for token fetch events.
// If not set, no logging will occur.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithLoggingEnabled enables logging using the default Go log package.
// This is a convenience option that sets the logger to log.Default().
func WithLoggingEnabled() Option {
	return func(c *Client) {
		c.logger = log.Default()
	}
}

// New creates a Client with its own cache, the standard IMS endpoints, and a
// deployment context read from the process environment.
func New(opts ...Option) *Client {
	c := &Client{
		cache:      tokencache.New(),
		fetcher:    ims.NewFetcher(),
		deployment: ims.DeploymentContextFromEnv(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// GenerateAccessToken returns a token response for the given parameters, from
// cache when a live entry exists, otherwise from a fresh token request whose
// result is cached on success.
//
// params may carry the credentials as top-level fields or nested under
// CredentialsParam, and an environment hint under EnvironmentParam.
// environment, when non-empty, overrides any hint; when empty, resolution
// falls through the params hint, then the deployment context, then prod.
//
// Validation failures short-circuit before any network activity, and failed
// fetches never populate the cache.
func (c *Client) GenerateAccessToken(ctx context.Context, params map[string]any, environment ims.Environment) (ims.TokenResponse, error) {
	creds, env, err := c.resolve(params, environment)
	if err != nil {
		return nil, err
	}

	key := tokencache.DeriveKey(creds, env)
	if token, ok := c.cache.Get(key); ok {
		return token, nil
	}

	token, err := c.fetcher.FetchToken(ctx, creds, env)
	if err != nil {
		return nil, err
	}

	c.cache.Set(key, token)

	if c.logger != nil {
		c.logger.Printf("imsclient: obtained new access token (client: %s, environment: %s)", creds.ClientID, env)
	}

	return token, nil
}

// FetchAccessToken validates params and performs a token request without
// consulting or populating the cache. Environment resolution matches
// GenerateAccessToken.
func (c *Client) FetchAccessToken(ctx context.Context, params map[string]any, environment ims.Environment) (ims.TokenResponse, error) {
	creds, env, err := c.resolve(params, environment)
	if err != nil {
		return nil, err
	}

	return c.fetcher.FetchToken(ctx, creds, env)
}

// InvalidateCache removes every cached token immediately, forcing the next
// lookup for any credential set to fetch.
func (c *Client) InvalidateCache() {
	c.cache.Clear()
}

// resolve picks the credential source and environment for a call.
func (c *Client) resolve(params map[string]any, environment ims.Environment) (ims.Credentials, ims.Environment, error) {
	env := environment
	if env != "" {
		env = ims.ParseEnvironment(string(env))
	} else if hint, ok := params[EnvironmentParam].(string); ok && hint != "" {
		env = ims.ParseEnvironment(hint)
	} else {
		env = c.deployment.DefaultEnvironment()
	}

	var source any = params
	if nested, ok := params[CredentialsParam]; ok && nested != nil {
		source = nested
	}

	creds, err := ims.ValidateParams(source)
	if err != nil {
		return ims.Credentials{}, "", err
	}

	return creds, env, nil
}
