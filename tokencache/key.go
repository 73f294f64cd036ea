package tokencache

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/adobe/aio-lib-core-auth/ims"
)

// emptyScopeSentinel keeps a scopeless key distinct from any scope list.
const emptyScopeSentinel = "none"

// secretDigestLen is how many hex characters of the secret digest enter the key.
const secretDigestLen = 16

// DeriveKey computes the cache key for a credential set and environment.
//
// Scopes are copied and sorted lexicographically before joining, so
// permutations of the same scope set share a key; an empty scope list is
// represented by the sentinel "none". The client secret participates as a
// truncated SHA-256 digest: rotating the secret changes the key immediately
// instead of serving a stale token for the remainder of the TTL, and the raw
// secret never appears in key strings.
func DeriveKey(creds ims.Credentials, env ims.Environment) string {
	scopeKey := emptyScopeSentinel
	if len(creds.Scopes) > 0 {
		sorted := append([]string(nil), creds.Scopes...)
		sort.Strings(sorted)
		scopeKey = strings.Join(sorted, ",")
	}

	digest := sha256.Sum256([]byte(creds.ClientSecret))
	secretKey := hex.EncodeToString(digest[:])[:secretDigestLen]

	return strings.Join([]string{
		creds.ClientID,
		creds.OrgID,
		string(env),
		scopeKey,
		secretKey,
	}, "|")
}
