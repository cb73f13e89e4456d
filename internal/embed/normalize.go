package embed

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// NormalizeText produces the canonical form of a text for embedding and
// caching: lowercased, leading/trailing whitespace trimmed, and internal
// whitespace runs collapsed to single spaces. Two texts with the same
// normalized form always share one embedding.
func NormalizeText(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// CacheKey returns the cache key for a text: the SHA-256 hex digest of its
// normalized form. Hashing keeps keys a fixed length regardless of input size.
func CacheKey(text string) string {
	sum := sha256.Sum256([]byte(NormalizeText(text)))
	return hex.EncodeToString(sum[:])
}
