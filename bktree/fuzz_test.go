package bktree

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// FuzzReadFrom feeds arbitrary bytes into the binary decoder. The
// decoder must either reject the input with an error or yield a tree
// that re-serializes cleanly; it must never panic.
func FuzzReadFrom(f *testing.F) {
	var seed bytes.Buffer
	_, err := buildTree("Carditis", "Cardiitis", "Arthritis").WriteTo(&seed)
	require.NoError(f, err)

	f.Add(seed.Bytes())
	f.Add([]byte{})
	f.Add(seed.Bytes()[:10])

	mutated := append([]byte{}, seed.Bytes()...)
	mutated[0] ^= 0x01
	f.Add(mutated)

	f.Fuzz(func(t *testing.T, data []byte) {
		tree := New()
		if _, err := tree.ReadFrom(bytes.NewReader(data)); err != nil {
			return
		}
		if _, err := tree.WriteTo(&bytes.Buffer{}); err != nil {
			t.Fatalf("decoded tree failed to re-serialize: %v", err)
		}
	})
}
