// CineMatch - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package store

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/klauspost/compress/zstd"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/vectorize"
)

// Bundle file layout:
//
//	magic   [8]byte  "CMBUNDLE"
//	version uint16   little endian
//	zstd stream:
//	  header length uint32, header JSON (metadata, items, signals)
//	  row count     uint32
//	  matrix        row count² float32, little endian, row-major
const (
	bundleMagic   = "CMBUNDLE"
	bundleVersion = uint16(1)

	// maxHeaderBytes bounds the JSON header read from disk.
	maxHeaderBytes = 1 << 30
)

var (
	// ErrBundleMissing is returned by Open when the bundle file does not exist.
	ErrBundleMissing = errors.New("similarity bundle not found")

	// ErrCorruptBundle is returned when a bundle cannot be decoded.
	ErrCorruptBundle = errors.New("corrupt similarity bundle")
)

type bundleHeader struct {
	Metadata Metadata       `json:"metadata"`
	Items    []catalog.Item `json:"items"`
	Signals  []Signals      `json:"signals"`
}

// Save writes the bundle to w.
func (s *Store) Save(w io.Writer) error {
	if _, err := io.WriteString(w, bundleMagic); err != nil {
		return fmt.Errorf("write magic: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, bundleVersion); err != nil {
		return fmt.Errorf("write version: %w", err)
	}

	enc, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("create zstd writer: %w", err)
	}
	bw := bufio.NewWriterSize(enc, 1<<20)

	header, err := json.Marshal(bundleHeader{Metadata: s.meta, Items: s.items, Signals: s.signals})
	if err != nil {
		_ = enc.Close()
		return fmt.Errorf("encode header: %w", err)
	}
	if err := writeBody(bw, header, s.sim); err != nil {
		_ = enc.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = enc.Close()
		return fmt.Errorf("flush bundle: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("close zstd writer: %w", err)
	}
	return nil
}

func writeBody(w io.Writer, header []byte, sim *vectorize.SimilarityMatrix) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(header))); err != nil {
		return fmt.Errorf("write header length: %w", err)
	}
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(sim.N)); err != nil {
		return fmt.Errorf("write row count: %w", err)
	}

	buf := make([]byte, 4*sim.N)
	for i := 0; i < sim.N; i++ {
		for j, v := range sim.Row(i) {
			binary.LittleEndian.PutUint32(buf[4*j:], math.Float32bits(v))
		}
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("write matrix row %d: %w", i, err)
		}
	}
	return nil
}

// Load reads a bundle written by Save.
func Load(r io.Reader) (*Store, error) {
	prefix := make([]byte, len(bundleMagic)+2)
	if _, err := io.ReadFull(r, prefix); err != nil {
		return nil, fmt.Errorf("%w: read magic: %w", ErrCorruptBundle, err)
	}
	if !bytes.Equal(prefix[:len(bundleMagic)], []byte(bundleMagic)) {
		return nil, fmt.Errorf("%w: bad magic", ErrCorruptBundle)
	}
	if v := binary.LittleEndian.Uint16(prefix[len(bundleMagic):]); v != bundleVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorruptBundle, v)
	}

	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("create zstd reader: %w", err)
	}
	defer dec.Close()
	br := bufio.NewReaderSize(dec, 1<<20)

	var headerLen uint32
	if err := binary.Read(br, binary.LittleEndian, &headerLen); err != nil {
		return nil, fmt.Errorf("%w: read header length: %w", ErrCorruptBundle, err)
	}
	if headerLen > maxHeaderBytes {
		return nil, fmt.Errorf("%w: header of %d bytes", ErrCorruptBundle, headerLen)
	}
	raw := make([]byte, headerLen)
	if _, err := io.ReadFull(br, raw); err != nil {
		return nil, fmt.Errorf("%w: read header: %w", ErrCorruptBundle, err)
	}
	var header bundleHeader
	if err := json.Unmarshal(raw, &header); err != nil {
		return nil, fmt.Errorf("%w: decode header: %w", ErrCorruptBundle, err)
	}

	var n uint32
	if err := binary.Read(br, binary.LittleEndian, &n); err != nil {
		return nil, fmt.Errorf("%w: read row count: %w", ErrCorruptBundle, err)
	}
	if int(n) != len(header.Items) {
		return nil, fmt.Errorf("%w: %d matrix rows for %d items", ErrCorruptBundle, n, len(header.Items))
	}

	rows := int(n)
	data := make([]float32, rows*rows)
	buf := make([]byte, 4*rows)
	for i := 0; i < rows; i++ {
		if _, err := io.ReadFull(br, buf); err != nil {
			return nil, fmt.Errorf("%w: read matrix row %d: %w", ErrCorruptBundle, i, err)
		}
		row := data[i*rows : (i+1)*rows]
		for j := range row {
			row[j] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4*j:]))
		}
	}

	sim, err := vectorize.NewSimilarityMatrix(rows, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptBundle, err)
	}
	s, err := New(header.Items, header.Signals, sim, header.Metadata)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptBundle, err)
	}
	return s, nil
}

// WriteFile saves the bundle to path, replacing any existing file
// atomically.
func (s *Store) WriteFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create bundle directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".bundle-*")
	if err != nil {
		return fmt.Errorf("failed to create temp bundle: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // no-op after a successful rename

	if err := s.Save(tmp); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp bundle: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to move bundle into place: %w", err)
	}
	return nil
}

// Open loads the bundle at path. A missing file yields an error matching
// both ErrBundleMissing and fs.ErrNotExist.
func Open(path string) (*Store, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w at %s: %w", ErrBundleMissing, path, err)
		}
		return nil, fmt.Errorf("failed to open bundle: %w", err)
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load bundle %s: %w", path, err)
	}
	return s, nil
}
