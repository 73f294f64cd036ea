// Package tokencache implements the fixed-TTL token store and the cache-key
// derivation used by the cached IMS client.
//
// Keys are order-independent over scopes: DeriveKey sorts a copy of the scope
// list, so {"a","b"} and {"b","a"} address the same entry, while an empty
// scope list stays distinct through a sentinel. Entries live for a fixed five
// minutes from insertion with no sliding expiration.
//
// The cache is a plain mutex-guarded map; no third-party cache is involved
// and there is no size bound beyond expiry.
package tokencache
