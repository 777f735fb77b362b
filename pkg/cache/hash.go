package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// hashKey returns prefix:sha256(parts). Parts are joined with a unit
// separator so ("a b", "c") and ("a", "b c") hash differently.
func hashKey(prefix string, parts ...string) string {
	return prefix + ":" + Hash([]byte(strings.Join(parts, "\x1f")))
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
