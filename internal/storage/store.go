package storage

import (
	"errors"
	"io"
	"io/fs"

	"github.com/CaioWing/swaggerui/internal/domain"
)

// FileStore resolves names relative to a fixed root. Implementations must
// return domain.ErrNotFound both for names that escape the root and for names
// that do not exist, so callers cannot tell the two apart.
type FileStore interface {
	Stat(name string) (fs.FileInfo, error)
	Open(name string) (io.ReadCloser, error)
}

// Overlay looks a name up in each store in order. The first store that has
// the file serves it.
type Overlay []FileStore

func (o Overlay) Stat(name string) (fs.FileInfo, error) {
	for _, s := range o {
		info, err := s.Stat(name)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		return info, err
	}
	return nil, domain.ErrNotFound
}

func (o Overlay) Open(name string) (io.ReadCloser, error) {
	for _, s := range o {
		rc, err := s.Open(name)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		return rc, err
	}
	return nil, domain.ErrNotFound
}
