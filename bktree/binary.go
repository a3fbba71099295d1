package bktree

import (
	"fmt"
	"io"

	"github.com/hupe1980/bkgo/persistence"
)

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

type countingReader struct {
	r io.Reader
	n int64
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	cr.n += int64(n)
	return n, err
}

// SaveToFile saves the tree to a binary artifact, atomically.
func (t *Tree) SaveToFile(filename string) error {
	return persistence.SaveToFile(filename, func(w io.Writer) error {
		_, err := t.WriteTo(w)
		return err
	})
}

// LoadFromFile loads a tree from a binary artifact.
func LoadFromFile(filename string) (*Tree, error) {
	t := New()
	err := persistence.LoadFromFile(filename, func(r io.Reader) error {
		_, err := t.ReadFrom(r)
		return err
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// WriteTo writes the tree to w in binary format.
//
// It matches the io.WriterTo interface for toolchain friendliness.
func (t *Tree) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	writer := persistence.NewBinaryWriter(cw)

	if err := writer.WriteMagic(); err != nil {
		return cw.n, err
	}

	records := t.Records()
	if err := writer.WriteUint32(uint32(len(records))); err != nil {
		return cw.n, err
	}

	for _, rec := range records {
		if err := writer.WriteBytes([]byte(rec.Term)); err != nil {
			return cw.n, err
		}
		if err := writer.WriteUint32(uint32(len(rec.Children))); err != nil {
			return cw.n, err
		}
		for _, ref := range rec.Children {
			if err := writer.WriteUint32(ref.Distance); err != nil {
				return cw.n, err
			}
			if err := writer.WriteUint32(ref.Index); err != nil {
				return cw.n, err
			}
		}
	}

	return cw.n, nil
}

// ReadFrom reads a tree from r in binary format, replacing the
// receiver's contents. The magic tag is validated before anything else
// in the stream is trusted, and every child index is validated against
// the node count; a violation rejects the whole stream.
//
// It matches the io.ReaderFrom interface for toolchain friendliness.
func (t *Tree) ReadFrom(r io.Reader) (int64, error) {
	cr := &countingReader{r: r}
	reader := persistence.NewBinaryReader(cr)

	if err := reader.ReadMagic(); err != nil {
		return cr.n, err
	}

	count, err := reader.ReadUint32()
	if err != nil {
		return cr.n, fmt.Errorf("failed to read node count: %w", err)
	}
	if count > persistence.MaxNodeCount {
		return cr.n, fmt.Errorf("%w: node count %d exceeds limit", persistence.ErrCorrupt, count)
	}

	records := make([]Record, count)
	for i := uint32(0); i < count; i++ {
		term, err := reader.ReadBytes()
		if err != nil {
			return cr.n, fmt.Errorf("failed to read term %d: %w", i, err)
		}
		records[i].Term = string(term)

		childCount, err := reader.ReadUint32()
		if err != nil {
			return cr.n, fmt.Errorf("failed to read child count of record %d: %w", i, err)
		}
		if childCount >= count {
			// A node cannot have more children than the tree has nodes.
			return cr.n, fmt.Errorf("%w: record %d has %d children of %d nodes", persistence.ErrCorrupt, i, childCount, count)
		}

		if childCount == 0 {
			continue
		}
		records[i].Children = make([]ChildRef, childCount)
		for c := uint32(0); c < childCount; c++ {
			distance, err := reader.ReadUint32()
			if err != nil {
				return cr.n, fmt.Errorf("failed to read child entry: %w", err)
			}
			childIndex, err := reader.ReadUint32()
			if err != nil {
				return cr.n, fmt.Errorf("failed to read child entry: %w", err)
			}
			records[i].Children[c] = ChildRef{Distance: distance, Index: childIndex}
		}
	}

	loaded, err := FromRecords(records)
	if err != nil {
		return cr.n, fmt.Errorf("%w: %w", persistence.ErrCorrupt, err)
	}

	*t = *loaded
	return cr.n, nil
}
