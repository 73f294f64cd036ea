package ims

import (
	"fmt"
	"strings"
)

// Credentials is the canonical client-credentials record used for token
// requests. It is built per call from loose parameters and never persisted.
type Credentials struct {
	ClientID     string
	ClientSecret string
	OrgID        string

	// Scopes is always a non-nil slice; it defaults to empty when absent.
	Scopes []string
}

// ValidateParams normalizes loose credential parameters into a Credentials
// record, or fails with a typed *Error.
//
// Both snake_case (client_id, client_secret, org_id) and camelCase (clientId,
// clientSecret, orgId) field names are recognized; camelCase wins when both
// carry a value. The caller's map is never mutated and scope slices are
// copied.
//
// Failure modes:
//   - BAD_CREDENTIALS_FORMAT: raw is nil or not a map
//   - BAD_SCOPES_FORMAT: scopes present but not an array of strings
//   - MISSING_PARAMETERS: any of clientId/clientSecret/orgId empty after
//     normalization; the message enumerates every missing field
func ValidateParams(raw any) (Credentials, error) {
	params, err := asParamMap(raw)
	if err != nil {
		return Credentials{}, err
	}

	creds := Credentials{
		ClientID:     stringField(params, "clientId", "client_id"),
		ClientSecret: stringField(params, "clientSecret", "client_secret"),
		OrgID:        stringField(params, "orgId", "org_id"),
	}

	scopes, err := scopesField(params)
	if err != nil {
		return Credentials{}, err
	}
	creds.Scopes = scopes

	var missing []string
	if creds.ClientID == "" {
		missing = append(missing, "clientId")
	}
	if creds.ClientSecret == "" {
		missing = append(missing, "clientSecret")
	}
	if creds.OrgID == "" {
		missing = append(missing, "orgId")
	}

	if len(missing) > 0 {
		details := map[string]any{
			"missing":             missing,
			"clientSecretPresent": creds.ClientSecret != "",
			"scopes":              creds.Scopes,
		}
		if creds.ClientID != "" {
			details["clientId"] = creds.ClientID
		}
		if creds.OrgID != "" {
			details["orgId"] = creds.OrgID
		}
		message := "missing required parameters: " + strings.Join(missing, ", ")
		return Credentials{}, newError(CodeMissingParameters, message, details)
	}

	return creds, nil
}

// asParamMap accepts the map shapes callers realistically hold and rejects
// everything else with the observed type in the error details.
func asParamMap(raw any) (map[string]any, error) {
	switch v := raw.(type) {
	case map[string]any:
		if v == nil {
			return nil, badCredentialsFormat("nil")
		}
		return v, nil
	case map[string]string:
		if v == nil {
			return nil, badCredentialsFormat("nil")
		}
		m := make(map[string]any, len(v))
		for k, s := range v {
			m[k] = s
		}
		return m, nil
	case nil:
		return nil, badCredentialsFormat("nil")
	default:
		return nil, badCredentialsFormat(fmt.Sprintf("%T", raw))
	}
}

func badCredentialsFormat(observed string) *Error {
	return newError(
		CodeBadCredentialsFormat,
		"credential parameters must be an object, got "+observed,
		map[string]any{"type": observed},
	)
}

// stringField resolves a logical field from its camelCase and snake_case
// aliases. A non-empty camelCase value wins; otherwise the snake_case value
// applies. Non-string values are ignored.
func stringField(params map[string]any, camel, snake string) string {
	if s, ok := params[camel].(string); ok && s != "" {
		return s
	}
	if s, ok := params[snake].(string); ok {
		return s
	}
	return ""
}

// scopesField extracts the scopes list, defaulting to empty when absent.
// Order is preserved; sorting is reserved for cache-key derivation.
func scopesField(params map[string]any) ([]string, error) {
	v, ok := params["scopes"]
	if !ok || v == nil {
		return []string{}, nil
	}

	switch s := v.(type) {
	case []string:
		out := make([]string, len(s))
		copy(out, s)
		return out, nil
	case []any:
		out := make([]string, 0, len(s))
		for _, elem := range s {
			str, ok := elem.(string)
			if !ok {
				return nil, badScopesFormat(fmt.Sprintf("element %T", elem))
			}
			out = append(out, str)
		}
		return out, nil
	default:
		return nil, badScopesFormat(fmt.Sprintf("%T", v))
	}
}

func badScopesFormat(observed string) *Error {
	return newError(
		CodeBadScopesFormat,
		"scopes must be an array of strings, got "+observed,
		map[string]any{"type": observed},
	)
}
