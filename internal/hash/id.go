package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Digest is a streaming xxHash64 used to fingerprint whole device trees.
type Digest = xxhash.Digest

// NewDigest returns a Digest reset to the zero seed.
func NewDigest() *Digest {
	return xxhash.New()
}
