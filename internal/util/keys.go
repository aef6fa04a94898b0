package util

import (
	"encoding/binary"
	"fmt"
	"slices"

	"github.com/cespare/xxhash/v2"
)

// UniqSorted returns a sorted copy of keys with duplicates removed.
func UniqSorted(keys []string) []string {
	s := slices.Clone(keys)
	slices.Sort(s)
	return slices.Compact(s)
}

// BulkKeySorted returns prefix + ":" + 16 hex chars of an xxhash64 over
// the length-prefixed members. sortedKeys must be sorted and unique.
func BulkKeySorted(prefix string, sortedKeys []string) string {
	d := xxhash.New()
	var n [4]byte
	for _, k := range sortedKeys {
		binary.BigEndian.PutUint32(n[:], uint32(len(k)))
		_, _ = d.Write(n[:])
		_, _ = d.WriteString(k)
	}
	return fmt.Sprintf("%s:%016x", prefix, d.Sum64())
}
