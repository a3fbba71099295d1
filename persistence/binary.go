// Package persistence provides the binary on-disk format for BK-tree
// artifacts: a fixed magic/version tag followed by length-prefixed
// little-endian records.
package persistence

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// BinaryWriter writes artifact sections in little-endian binary format.
type BinaryWriter struct {
	w io.Writer
}

// NewBinaryWriter creates a writer for the given stream.
func NewBinaryWriter(w io.Writer) *BinaryWriter {
	return &BinaryWriter{w: w}
}

// WriteMagic writes the 8-byte magic/version tag.
func (bw *BinaryWriter) WriteMagic() error {
	_, err := bw.w.Write(Magic[:])
	return err
}

// WriteUint32 writes a single little-endian uint32.
func (bw *BinaryWriter) WriteUint32(v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := bw.w.Write(buf[:])
	return err
}

// WriteBytes writes a uint32 length prefix followed by the raw bytes.
// The bytes are treated as opaque; no encoding transform is applied.
func (bw *BinaryWriter) WriteBytes(b []byte) error {
	if len(b) > MaxTermLen {
		return fmt.Errorf("%w: record of %d bytes exceeds limit", ErrCorrupt, len(b))
	}
	if err := bw.WriteUint32(uint32(len(b))); err != nil {
		return err
	}
	if len(b) == 0 {
		return nil
	}
	_, err := bw.w.Write(b)
	return err
}

// BinaryReader reads artifact sections in little-endian binary format.
type BinaryReader struct {
	r io.Reader
}

// NewBinaryReader creates a reader for the given stream.
func NewBinaryReader(r io.Reader) *BinaryReader {
	return &BinaryReader{r: r}
}

// ReadMagic reads and validates the 8-byte magic/version tag.
// The remainder of the stream must not be trusted until this succeeds.
func (br *BinaryReader) ReadMagic() error {
	var got [8]byte
	if _, err := io.ReadFull(br.r, got[:]); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMagic, err)
	}
	if !bytes.Equal(got[:], Magic[:]) {
		return fmt.Errorf("%w: got %q", ErrInvalidMagic, got[:])
	}
	return nil
}

// ReadUint32 reads a single little-endian uint32.
func (br *BinaryReader) ReadUint32() (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(br.r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// ReadBytes reads a uint32 length prefix followed by that many bytes.
func (br *BinaryReader) ReadBytes() ([]byte, error) {
	n, err := br.ReadUint32()
	if err != nil {
		return nil, err
	}
	if n > MaxTermLen {
		return nil, fmt.Errorf("%w: record length %d exceeds limit", ErrCorrupt, n)
	}
	if n == 0 {
		return nil, nil
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(br.r, b); err != nil {
		return nil, err
	}
	return b, nil
}

// SaveToFile writes an artifact atomically: the data goes to a temp
// file in the target directory, which is fsynced and renamed over the
// destination.
func SaveToFile(filename string, writeFunc func(io.Writer) error) error {
	dir := filepath.Dir(filename)
	base := filepath.Base(filename)

	tmp, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	_ = tmp.Chmod(0644)

	buf := bufio.NewWriterSize(tmp, 256*1024)
	if err := writeFunc(buf); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmpName, filename); err != nil {
		return err
	}

	// Best-effort: fsync the directory so the rename is durable on POSIX.
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}

	tmpName = ""
	return nil
}

// LoadFromFile opens an artifact and hands a buffered reader to readFunc.
func LoadFromFile(filename string, readFunc func(io.Reader) error) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := bufio.NewReaderSize(f, 256*1024)
	return readFunc(buf)
}
