// Package hasher computes short content hashes for image bytes.
package hasher

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// ContentHash returns the xxHash64 of data as 16 lowercase hex digits.
func ContentHash(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}
