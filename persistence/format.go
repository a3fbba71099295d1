package persistence

import "errors"

// Magic is the 8-byte tag at the start of every BK-tree artifact.
// The trailing digit is the format version; any incompatible layout
// change must bump it so older readers reject the file outright
// instead of attempting best-effort decoding.
var Magic = [8]byte{'B', 'K', 'T', 'R', 'E', 'E', '1', 0}

const (
	// MaxNodeCount bounds the node count field so a corrupt header
	// cannot drive a multi-gigabyte allocation.
	MaxNodeCount = 100_000_000

	// MaxTermLen bounds a single term record, for the same reason.
	MaxTermLen = 1 << 20
)

var (
	// ErrInvalidMagic is returned when the magic tag is absent or
	// belongs to an unknown format revision.
	ErrInvalidMagic = errors.New("invalid magic tag")

	// ErrCorrupt is returned when the stream decodes to an
	// inconsistent structure (bad counts, out-of-range references).
	ErrCorrupt = errors.New("corrupt artifact")
)
