package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Key derives a cache key for operation op called with args.
//
// The arguments are JSON-encoded as a list and hashed, so keys are stable
// across runs, independent of how arguments would print, and safe to use
// as file names. Struct arguments should use exported fields.
//
// The key format is: op:sha256(json(args)).
func Key(op string, args ...any) string {
	data, err := json.Marshal(args)
	if err != nil {
		// unencodable args still need a deterministic key
		data = []byte(fmt.Sprintf("%#v", args))
	}
	return fmt.Sprintf("%s:%s", op, Hash(data))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
