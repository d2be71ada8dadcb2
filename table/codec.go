package table

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hupe1980/molfeat/blobstore"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the codec applied around the CSV stream.
type Compression uint8

const (
	// CompressionNone stores plain CSV.
	CompressionNone Compression = iota
	// CompressionZSTD wraps the CSV in a zstd stream (better ratio).
	CompressionZSTD
	// CompressionLZ4 wraps the CSV in an lz4 stream (faster).
	CompressionLZ4
)

// String returns the codec name.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZSTD:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// Ext returns the extension suffix appended after ".csv".
func (c Compression) Ext() string {
	switch c {
	case CompressionZSTD:
		return ".zst"
	case CompressionLZ4:
		return ".lz4"
	default:
		return ""
	}
}

// ErrUnknownCompression indicates a codec this package does not implement.
type ErrUnknownCompression struct {
	Compression Compression
}

func (e *ErrUnknownCompression) Error() string {
	return fmt.Sprintf("unknown compression codec %d", uint8(e.Compression))
}

// FileName returns the object name for a table saved under base with the
// given codec, e.g. "qm9/bob" -> "qm9/bob.csv.zst".
func FileName(base string, c Compression) string {
	return base + ".csv" + c.Ext()
}

// CompressionForName derives the codec from an object name's extension.
func CompressionForName(name string) Compression {
	switch {
	case strings.HasSuffix(name, ".zst"):
		return CompressionZSTD
	case strings.HasSuffix(name, ".lz4"):
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// WriteCSV writes the table as CSV: one header row of column labels, then
// one record per row with values formatted in shortest round-trip form.
func (t *FeatureTable) WriteCSV(w io.Writer, c Compression) error {
	cw, err := newCompressingWriter(w, c)
	if err != nil {
		return err
	}

	enc := csv.NewWriter(cw)
	if err := enc.Write(t.columns); err != nil {
		return err
	}

	record := make([]string, len(t.columns))
	for _, row := range t.rows {
		for j, v := range row {
			record[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := enc.Write(record); err != nil {
			return err
		}
	}

	enc.Flush()
	if err := enc.Error(); err != nil {
		return err
	}

	return cw.Close()
}

// ReadCSV reads a table written by WriteCSV.
func ReadCSV(r io.Reader, c Compression) (*FeatureTable, error) {
	cr, err := newDecompressingReader(r, c)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cr.Close() }()

	dec := csv.NewReader(cr)

	header, err := dec.Read()
	if err != nil {
		return nil, err
	}

	t, err := New(header)
	if err != nil {
		return nil, err
	}

	for {
		record, err := dec.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		row := make([]float64, len(record))
		for j, field := range record {
			row[j], err = strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, err
			}
		}
		if err := t.AppendRow(row); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// Save streams the table into a blob named FileName(base, c).
func Save(ctx context.Context, store blobstore.BlobStore, base string, t *FeatureTable, c Compression) error {
	w, err := store.Create(ctx, FileName(base, c))
	if err != nil {
		return err
	}

	if err := t.WriteCSV(w, c); err != nil {
		_ = w.Close()
		return err
	}

	return w.Close()
}

// Load reads a table blob, deriving the codec from the object name.
func Load(ctx context.Context, store blobstore.BlobStore, name string) (*FeatureTable, error) {
	data, err := blobstore.ReadAll(ctx, store, name)
	if err != nil {
		return nil, err
	}
	return ReadCSV(bytes.NewReader(data), CompressionForName(name))
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

func newCompressingWriter(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case CompressionNone:
		return nopWriteCloser{w}, nil
	case CompressionZSTD:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	case CompressionLZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, &ErrUnknownCompression{Compression: c}
	}
}

func newDecompressingReader(r io.Reader, c Compression) (io.ReadCloser, error) {
	switch c {
	case CompressionNone:
		return io.NopCloser(r), nil
	case CompressionZSTD:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	case CompressionLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return nil, &ErrUnknownCompression{Compression: c}
	}
}
