package utils

import (
	"fmt"
	"hash/fnv"
)

// HashFields returns a stable FNV-1a hash of the fields joined by '|'.
func HashFields(fields ...any) uint64 {
	h := fnv.New64a()
	for i, f := range fields {
		if i > 0 {
			_, _ = h.Write([]byte{'|'})
		}
		_, _ = fmt.Fprint(h, f)
	}
	return h.Sum64()
}
