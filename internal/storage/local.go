package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rs/xid"
)

// URLPrefix is the public path the server mounts the upload directory on.
const URLPrefix = "/uploads/"

// Local stores files on disk under a single directory.
//
// Saved files get an xid-prefixed name, so concurrent uploads of files
// with the same client-side name never collide and a stored name is
// sortable by upload time.
type Local struct {
	dir string
}

var _ FileStore = (*Local)(nil)

// NewLocal creates the upload directory if needed and returns a store
// writing into it.
func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: creating upload dir %s: %w", dir, err)
	}
	return &Local{dir: dir}, nil
}

func (l *Local) Save(_ context.Context, filename, _ string, content io.Reader) (string, error) {
	// filepath.Base strips any directory components a hostile client put
	// in the multipart filename.
	name := xid.New().String() + "-" + filepath.Base(filename)
	dst := filepath.Join(l.dir, name)

	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("storage: creating %s: %w", dst, err)
	}

	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		os.Remove(dst)
		return "", fmt.Errorf("storage: writing %s: %w", dst, err)
	}

	if err := f.Close(); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("storage: closing %s: %w", dst, err)
	}

	return URLPrefix + name, nil
}

// Delete removes a file previously saved by this store. References outside
// /uploads/ (absolute URLs, empty strings) are not ours and are ignored,
// as is a file that's already gone.
func (l *Local) Delete(_ context.Context, ref string) error {
	if !strings.HasPrefix(ref, URLPrefix) {
		return nil
	}

	name := path.Base(strings.TrimPrefix(ref, URLPrefix))
	if name == "" || name == "." || name == "/" {
		return nil
	}

	if err := os.Remove(filepath.Join(l.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: deleting %s: %w", name, err)
	}
	return nil
}

// Dir returns the directory files are stored in, for the server to mount
// as a static file route.
func (l *Local) Dir() string {
	return l.dir
}
