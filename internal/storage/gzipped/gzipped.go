package gzipped

import (
	"compress/gzip"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"

	"github.com/CaioWing/swaggerui/internal/domain"
	"github.com/CaioWing/swaggerui/internal/storage"
)

const suffix = ".gz"

// Store serves "name" from "name.gz" in an inner store, decompressing while
// the body is read. The inner store still does containment.
type Store struct {
	inner storage.FileStore
}

func New(inner storage.FileStore) *Store {
	return &Store{inner: inner}
}

// compressedName rejects names that are not plain relative paths before the
// suffix is glued on, so "x/.." can't turn into a file called "...gz".
func compressedName(name string) (string, error) {
	clean := path.Clean(name)
	if name == "" || clean == "." || !fs.ValidPath(clean) {
		return "", domain.ErrNotFound
	}
	return clean + suffix, nil
}

func (s *Store) Stat(name string) (fs.FileInfo, error) {
	gz, err := compressedName(name)
	if err != nil {
		return nil, err
	}

	info, err := s.inner.Stat(gz)
	if err != nil {
		return nil, err
	}

	size, err := s.uncompressedSize(gz)
	if err != nil {
		return nil, err
	}
	return fileInfo{FileInfo: info, name: path.Base(name), size: size}, nil
}

func (s *Store) Open(name string) (io.ReadCloser, error) {
	gz, err := compressedName(name)
	if err != nil {
		return nil, err
	}

	f, err := s.inner.Open(gz)
	if err != nil {
		return nil, err
	}

	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open gzip %s: %w", gz, err)
	}
	return &reader{Reader: zr, file: f}, nil
}

// uncompressedSize reads the ISIZE trailer of a single-member gzip file. It
// returns -1 when the inner file can't seek.
func (s *Store) uncompressedSize(gz string) (int64, error) {
	f, err := s.inner.Open(gz)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	rs, ok := f.(io.ReadSeeker)
	if !ok {
		return -1, nil
	}
	if _, err := rs.Seek(-4, io.SeekEnd); err != nil {
		return 0, fmt.Errorf("seek gzip trailer %s: %w", gz, err)
	}

	var trailer [4]byte
	if _, err := io.ReadFull(rs, trailer[:]); err != nil {
		return 0, fmt.Errorf("read gzip trailer %s: %w", gz, err)
	}
	return int64(binary.LittleEndian.Uint32(trailer[:])), nil
}

type fileInfo struct {
	fs.FileInfo
	name string
	size int64
}

func (fi fileInfo) Name() string { return fi.name }
func (fi fileInfo) Size() int64  { return fi.size }

type reader struct {
	*gzip.Reader
	file io.Closer
}

func (r *reader) Close() error {
	return errors.Join(r.Reader.Close(), r.file.Close())
}
