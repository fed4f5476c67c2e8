package naming

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Hash returns the stable base-36 digest of s used in generated names and cache keys.
func Hash(s string) string {
	return strconv.FormatUint(xxhash.Sum64String(s), 36)
}

// Key returns the compressed-mode cache key for a class in a file.
func Key(file, local string) string {
	return Hash(file) + "_" + Hash(local)
}
