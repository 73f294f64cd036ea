package ims

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// debugIDHeader is the IMS debug-correlation header surfaced in error details.
const debugIDHeader = "X-Debug-Id"

// TokenResponse is the provider's token payload, passed through unmodified.
// The library treats it as opaque beyond caching it on success; the accessor
// methods exist for the bearer-injection surfaces.
type TokenResponse map[string]any

// AccessToken returns the access_token field, or "" when absent.
func (t TokenResponse) AccessToken() string {
	s, _ := t["access_token"].(string)
	return s
}

// TokenType returns the token_type field, or "" when absent.
func (t TokenResponse) TokenType() string {
	s, _ := t["token_type"].(string)
	return s
}

// ExpiresIn returns the expires_in field in seconds, tolerating the numeric
// encodings JSON decoding can produce. It returns 0 when absent or unreadable.
func (t TokenResponse) ExpiresIn() int64 {
	switch v := t["expires_in"].(type) {
	case float64:
		return int64(v)
	case int:
		return int64(v)
	case int64:
		return v
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0
		}
		return n
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// Fetcher issues client-credentials token requests against IMS.
// Each FetchToken call performs exactly one HTTP round trip; there are no
// retries and no timeout beyond what the HTTP client provides.
type Fetcher struct {
	httpClient *http.Client
	endpoints  map[Environment]string
}

// FetcherOption is a functional option for configuring a Fetcher.
type FetcherOption func(*Fetcher)

// WithHTTPClient sets the HTTP client used for token requests.
// If not set, http.DefaultClient is used.
func WithHTTPClient(client *http.Client) FetcherOption {
	return func(f *Fetcher) {
		if client != nil {
			f.httpClient = client
		}
	}
}

// WithEndpoint overrides the base URL for an environment.
// Primarily useful for pointing tests at a local server.
func WithEndpoint(env Environment, baseURL string) FetcherOption {
	return func(f *Fetcher) {
		f.endpoints[env] = strings.TrimSuffix(baseURL, "/")
	}
}

// NewFetcher creates a Fetcher with the fixed IMS base URLs.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		httpClient: http.DefaultClient,
		endpoints:  make(map[Environment]string),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

func (f *Fetcher) baseURL(env Environment) string {
	if base, ok := f.endpoints[env]; ok {
		return base
	}
	return env.BaseURL()
}

// FetchToken performs a single client-credentials token request and returns
// the provider's JSON body unmodified.
//
// The request is a form-encoded POST carrying grant_type, client_id,
// client_secret, org_id, and - only when scopes are present - scope as the
// comma-joined list in the caller's order.
//
// Failure modes:
//   - IMS_TOKEN_ERROR: IMS answered with a non-success status; the message
//     prefers the provider's error_description, then error, then "HTTP <status>"
//   - GENERIC_ERROR: transport failure or malformed response body
func (f *Fetcher) FetchToken(ctx context.Context, creds Credentials, env Environment) (TokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", creds.ClientID)
	form.Set("client_secret", creds.ClientSecret)
	form.Set("org_id", creds.OrgID)
	if len(creds.Scopes) > 0 {
		form.Set("scope", strings.Join(creds.Scopes, ","))
	}

	endpoint := f.baseURL(env) + TokenPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, wrapFetchError(err, creds, env)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, wrapFetchError(err, creds, env)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, wrapFetchError(err, creds, env)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, tokenError(resp, body, creds, env)
	}

	var token TokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, wrapFetchError(err, creds, env)
	}

	return token, nil
}

// requestContext captures the non-secret request parameters echoed into error
// details.
func requestContext(creds Credentials, env Environment) map[string]any {
	return map[string]any{
		"clientId":    creds.ClientID,
		"orgId":       creds.OrgID,
		"scopes":      append([]string(nil), creds.Scopes...),
		"environment": string(env),
	}
}

// tokenError maps a non-success IMS response to an IMS_TOKEN_ERROR.
func tokenError(resp *http.Response, body []byte, creds Credentials, env Environment) error {
	var payload struct {
		ErrorCode        string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	// Best effort; empty or non-JSON bodies fall back to the status message.
	_ = json.Unmarshal(body, &payload)

	message := payload.ErrorDescription
	if message == "" {
		message = payload.ErrorCode
	}
	if message == "" {
		message = fmt.Sprintf("HTTP %d", resp.StatusCode)
	}

	details := requestContext(creds, env)
	details["statusCode"] = resp.StatusCode
	details["status"] = resp.Status
	if payload.ErrorCode != "" {
		details["error"] = payload.ErrorCode
	}
	if payload.ErrorDescription != "" {
		details["errorDescription"] = payload.ErrorDescription
	}
	if id := resp.Header.Get(debugIDHeader); id != "" {
		details["debugId"] = id
	}

	return newError(CodeIMSToken, message, details)
}

// wrapFetchError converts transport and decode failures into GENERIC_ERROR.
// Errors already typed by this library pass through untouched.
func wrapFetchError(err error, creds Credentials, env Environment) error {
	var imsErr *Error
	if errors.As(err, &imsErr) {
		return err
	}

	details := requestContext(creds, env)
	details["cause"] = err.Error()

	wrapped := newError(CodeGeneric, "token request failed: "+err.Error(), details)
	wrapped.cause = err
	return wrapped
}
