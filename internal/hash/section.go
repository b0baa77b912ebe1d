// Package hash provides the fast, non-cryptographic hash used to index
// VSF section names for O(1) lookup. It has nothing to do with the
// cryptographic hashes (BLAKE3, SHA-256, SHA-512) that VSF labels may
// carry — those live in the verify package.
package hash

import "github.com/cespare/xxhash/v2"

// SectionName computes the xxHash64 of a section name.
//
// This is used by container.Index to build a hash -> Label map so that
// Reader.Section(name) does not need to scan the label table.
func SectionName(name string) uint64 {
	return xxhash.Sum64String(name)
}
