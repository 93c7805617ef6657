package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey returns prefix + ":" + the SHA-256 of opts' JSON encoding. Struct
// field order is fixed, so equal options always produce equal keys.
func hashKey(prefix string, opts any) string {
	data, _ := json.Marshal(opts) // option structs hold only plain fields
	return prefix + ":" + Hash(data)
}

// Hash returns the hex SHA-256 of data. Datasets use it as their content
// identity in cache keys.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
