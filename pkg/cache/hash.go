package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the SHA-256 of data as a 64-character hex string. The file
// backend uses it to derive filesystem-safe paths from arbitrary keys.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey derives a "prefix:<sha256 hex>" key from the JSON encoding of
// parts. The full 256-bit digest is kept so distinct inputs cannot share
// an entry.
func hashKey(prefix string, parts ...interface{}) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}

// ExploreKey builds the cache key for an exploration run. Two runs share
// an entry exactly when they start from the same signature under the same
// size cap.
func ExploreKey(startSig string, maxSize int) string {
	return hashKey("explore", startSig, maxSize)
}

// SimplifyKey builds the cache key for a simplification request.
func SimplifyKey(sig string, maxSize int) string {
	return hashKey("simplify", sig, maxSize)
}

// RenderKey builds the cache key for a rendered diagram artifact.
func RenderKey(sig, format string) string {
	return hashKey("render", sig, format)
}
