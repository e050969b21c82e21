package local

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/CaioWing/swaggerui/internal/domain"
)

// LocalStore serves files from a directory on disk. Every lookup is confined
// to basePath.
type LocalStore struct {
	basePath string
}

func New(basePath string) (*LocalStore, error) {
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("resolve storage dir: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat storage dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, abs)
	}

	return &LocalStore{basePath: abs}, nil
}

// Root returns the absolute directory the store is confined to.
func (s *LocalStore) Root() string {
	return s.basePath
}

// resolve joins name onto the base path and rejects anything that does not
// land strictly below it. The separator after the root is required, so a
// sibling such as "dist-old" never passes for "dist".
func (s *LocalStore) resolve(name string) (string, error) {
	path := filepath.Clean(filepath.Join(s.basePath, filepath.FromSlash(name)))

	root := s.basePath
	if !strings.HasSuffix(root, string(filepath.Separator)) {
		root += string(filepath.Separator)
	}
	if !strings.HasPrefix(path, root) {
		return "", domain.ErrNotFound
	}

	rel, err := filepath.Rel(s.basePath, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", domain.ErrNotFound
	}
	return path, nil
}

func (s *LocalStore) Stat(name string) (fs.FileInfo, error) {
	path, err := s.resolve(name)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
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

func (s *LocalStore) Open(name string) (io.ReadCloser, error) {
	path, err := s.resolve(name)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("open file: %w", err)
	}
	return f, nil
}
