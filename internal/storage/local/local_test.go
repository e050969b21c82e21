package local

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CaioWing/swaggerui/internal/domain"
)

func newTestStore(t *testing.T) (*LocalStore, string) {
	t.Helper()
	parent := t.TempDir()
	root := filepath.Join(parent, "dist")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "css"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "swagger-ui.css"), []byte("body{}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "css", "extra.css"), []byte(".a{}"), 0644))

	// Siblings that must never be reachable from the store.
	require.NoError(t, os.WriteFile(filepath.Join(parent, "secret.txt"), []byte("secret"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(parent, "dist-evil"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(parent, "dist-evil", "x.js"), []byte("evil"), 0644))

	s, err := New(root)
	require.NoError(t, err)
	return s, parent
}

func TestNew_MissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestNew_NotADirectory(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(f, nil, 0644))

	_, err := New(f)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOpen_ReadsFileBytes(t *testing.T) {
	s, _ := newTestStore(t)

	info, err := s.Stat("css/extra.css")
	require.NoError(t, err)
	assert.EqualValues(t, 4, info.Size())

	rc, err := s.Open("css/extra.css")
	require.NoError(t, err)
	defer rc.Close()

	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, ".a{}", string(b))
}

func TestStat_RejectsOutsideRoot(t *testing.T) {
	s, _ := newTestStore(t)

	for _, name := range []string{
		"../secret.txt",
		"../../etc/passwd",
		"css/../../secret.txt",
		"../dist-evil/x.js",
		"..",
		"",
		".",
	} {
		_, err := s.Stat(name)
		assert.ErrorIs(t, err, domain.ErrNotFound, name)

		_, err = s.Open(name)
		assert.ErrorIs(t, err, domain.ErrNotFound, name)
	}
}

func TestStat_AbsoluteNameStaysInside(t *testing.T) {
	s, parent := newTestStore(t)

	// Joining keeps an absolute name below the root instead of replacing it.
	_, err := s.Stat(filepath.Join(parent, "secret.txt"))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.Stat("/swagger-ui.css")
	assert.NoError(t, err)
}

func TestStat_MissingAndDirectory(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Stat("missing.js")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.Stat("css")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStat_DotSegmentsInsideRoot(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Stat("css/../swagger-ui.css")
	assert.NoError(t, err)
}
