package embedded

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/CaioWing/swaggerui/internal/domain"
)

// Store serves files from an fs.FS, confined to root inside it. Use "." to
// expose the whole filesystem.
type Store struct {
	fsys fs.FS
	root string
}

func New(fsys fs.FS, root string) (*Store, error) {
	if fsys == nil {
		return nil, fmt.Errorf("%w: nil filesystem", domain.ErrInvalidInput)
	}

	root = path.Clean(root)
	if !fs.ValidPath(root) {
		return nil, fmt.Errorf("%w: invalid root %q", domain.ErrInvalidInput, root)
	}

	info, err := fs.Stat(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, root)
	}

	return &Store{fsys: fsys, root: root}, nil
}

func (s *Store) resolve(name string) (string, error) {
	p := path.Clean(path.Join(s.root, name))

	if s.root == "." {
		if p == "." || !fs.ValidPath(p) {
			return "", domain.ErrNotFound
		}
		return p, nil
	}

	if !strings.HasPrefix(p, s.root+"/") {
		return "", domain.ErrNotFound
	}
	return p, nil
}

func (s *Store) Stat(name string) (fs.FileInfo, error) {
	p, err := s.resolve(name)
	if err != nil {
		return nil, err
	}

	info, err := fs.Stat(s.fsys, p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("stat file: %w", err)
	}
	if info.IsDir() {
		return nil, domain.ErrNotFound
	}
	return info, nil
}

func (s *Store) Open(name string) (io.ReadCloser, error) {
	p, err := s.resolve(name)
	if err != nil {
		return nil, err
	}

	f, err := s.fsys.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("open file: %w", err)
	}
	return f, nil
}
