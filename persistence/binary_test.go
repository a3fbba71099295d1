package persistence

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMagicRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewBinaryWriter(&buf).WriteMagic())
	assert.Equal(t, Magic[:], buf.Bytes())
	require.NoError(t, NewBinaryReader(&buf).ReadMagic())
}

func TestReadMagicRejectsUnknownTag(t *testing.T) {
	data := append([]byte{}, Magic[:]...)
	data[6] = '2' // future version

	err := NewBinaryReader(bytes.NewReader(data)).ReadMagic()
	assert.ErrorIs(t, err, ErrInvalidMagic)
}

func TestReadMagicRejectsTruncatedStream(t *testing.T) {
	err := NewBinaryReader(bytes.NewReader(Magic[:4])).ReadMagic()
	assert.ErrorIs(t, err, ErrInvalidMagic)
}

func TestBytesRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"Empty", nil},
		{"ASCII", []byte("Carditis")},
		{"RawBytes", []byte{0x00, 0xff, 0x7f}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewBinaryWriter(&buf).WriteBytes(tt.data))

			got, err := NewBinaryReader(&buf).ReadBytes()
			require.NoError(t, err)
			assert.Equal(t, tt.data, got)
		})
	}
}

func TestReadBytesRejectsOversizedLength(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewBinaryWriter(&buf).WriteUint32(MaxTermLen+1))

	_, err := NewBinaryReader(&buf).ReadBytes()
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestSaveToFileAtomicReplace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.bkt")

	require.NoError(t, SaveToFile(path, func(w io.Writer) error {
		_, err := w.Write([]byte("first"))
		return err
	}))
	require.NoError(t, SaveToFile(path, func(w io.Writer) error {
		_, err := w.Write([]byte("second"))
		return err
	}))

	var got []byte
	require.NoError(t, LoadFromFile(path, func(r io.Reader) error {
		var err error
		got, err = io.ReadAll(r)
		return err
	}))
	assert.Equal(t, []byte("second"), got)

	// No temp files left behind.
	matches, err := filepath.Glob(path + ".tmp-*")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestLoadFromFileMissing(t *testing.T) {
	err := LoadFromFile(filepath.Join(t.TempDir(), "nope.bkt"), func(io.Reader) error { return nil })
	assert.Error(t, err)
}
