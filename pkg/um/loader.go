package um

import (
	"encoding/binary"
	"io"
)

// loadImage reads r in full and packs it into big-endian platters per
// spec.md §6.1. A length that is not a multiple of 4 is a load-time
// *Fault, not a panic or a silently truncated read.
func loadImage(r io.Reader) ([]platter, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, newFault(FaultImage, 0, 0, "reading image: %s", err)
	}
	if len(raw)%4 != 0 {
		return nil, newFault(FaultImage, 0, 0, "image length %d is not a multiple of 4", len(raw))
	}

	n := len(raw) / 4
	prog := make([]platter, n)
	for i := 0; i < n; i++ {
		prog[i] = platter(binary.BigEndian.Uint32(raw[i*4 : i*4+4]))
	}
	return prog, nil
}
