package engine

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Decode parses a JSON dataset.
func Decode(r io.Reader) (Table, error) {
	var t Table
	dec := json.NewDecoder(bufio.NewReaderSize(r, 1<<20))
	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("decoding date mappings: %w", err)
	}
	if len(t) == 0 {
		return nil, fmt.Errorf("decoding date mappings: dataset is empty")
	}
	return t, nil
}

// Encode writes the dataset as compact JSON.
func Encode(w io.Writer, t Table) error {
	if err := json.NewEncoder(w).Encode(t); err != nil {
		return fmt.Errorf("encoding date mappings: %w", err)
	}
	return nil
}

// LoadFile reads a dataset from disk. Files ending in .gz or .zst are
// decompressed on the fly.
func LoadFile(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening date mappings: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	switch {
	case strings.HasSuffix(path, ".gz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	case strings.HasSuffix(path, ".zst"):
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		defer zr.Close()
		r = zr
	}

	t, err := Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// WriteFile is the inverse of LoadFile; compression follows the extension.
func WriteFile(path string, t Table) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	bw := bufio.NewWriterSize(f, 1<<20)
	var w io.Writer = bw
	var closer io.Closer
	switch {
	case strings.HasSuffix(path, ".gz"):
		gz, err := gzip.NewWriterLevel(bw, gzip.BestCompression)
		if err != nil {
			return err
		}
		w, closer = gz, gz
	case strings.HasSuffix(path, ".zst"):
		zw, err := zstd.NewWriter(bw, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			return err
		}
		w, closer = zw, zw
	}

	if err := Encode(w, t); err != nil {
		return err
	}
	if closer != nil {
		if err := closer.Close(); err != nil {
			return err
		}
	}
	return bw.Flush()
}
