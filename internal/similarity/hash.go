package similarity

import (
	"fmt"
	"hash/fnv"
)

// ContentHash derives a stable hexadecimal identifier from the normalized
// parts. The same inputs always produce the same hash, which makes it usable
// for ingest deduplication and deterministic cluster ids.
func ContentHash(parts ...string) string {
	h := fnv.New64a()
	for _, part := range parts {
		_, _ = h.Write([]byte(Normalize(part)))
		_, _ = h.Write([]byte{0})
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
