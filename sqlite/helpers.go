package sqlite

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// hashContent computes the xxHash of content as a fixed-width hex string.
func hashContent(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}
