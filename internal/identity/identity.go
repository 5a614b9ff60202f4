// Package identity computes the content fingerprint used for deduplication.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
)

// ContentID returns a deterministic 12-hex-char fingerprint of text. Stable
// across runs; collision probability is negligible for corpora up to the
// low millions of records.
func ContentID(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])[:12]
}
