package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestLocal(t *testing.T) *Local {
	t.Helper()
	l, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	return l
}

func TestLocalSave_ReturnsUploadsRef(t *testing.T) {
	l := newTestLocal(t)

	ref, err := l.Save(context.Background(), "photo.png", "image/png", strings.NewReader("fake png bytes"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if !strings.HasPrefix(ref, URLPrefix) {
		t.Errorf("Save() ref = %q, want %q prefix", ref, URLPrefix)
	}
	if !strings.HasSuffix(ref, "-photo.png") {
		t.Errorf("Save() ref = %q, want original filename preserved", ref)
	}

	// The file must exist on disk with the saved content.
	name := strings.TrimPrefix(ref, URLPrefix)
	data, err := os.ReadFile(filepath.Join(l.Dir(), name))
	if err != nil {
		t.Fatalf("reading stored file: %v", err)
	}
	if string(data) != "fake png bytes" {
		t.Errorf("stored content = %q, want %q", data, "fake png bytes")
	}
}

func TestLocalSave_StripsClientDirectories(t *testing.T) {
	l := newTestLocal(t)

	ref, err := l.Save(context.Background(), "../../../etc/passwd", "image/png", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if strings.Contains(ref, "..") {
		t.Errorf("Save() ref = %q, contains path traversal", ref)
	}
	if !strings.HasSuffix(ref, "-passwd") {
		t.Errorf("Save() ref = %q, want base name only", ref)
	}
}

func TestLocalSave_UniqueNamesForSameFilename(t *testing.T) {
	l := newTestLocal(t)

	ref1, _ := l.Save(context.Background(), "a.png", "image/png", strings.NewReader("1"))
	ref2, _ := l.Save(context.Background(), "a.png", "image/png", strings.NewReader("2"))
	if ref1 == ref2 {
		t.Errorf("Save() produced colliding refs %q", ref1)
	}
}

func TestLocalDelete_RemovesStoredFile(t *testing.T) {
	l := newTestLocal(t)

	ref, err := l.Save(context.Background(), "gone.png", "image/png", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := l.Delete(context.Background(), ref); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	name := strings.TrimPrefix(ref, URLPrefix)
	if _, err := os.Stat(filepath.Join(l.Dir(), name)); !os.IsNotExist(err) {
		t.Errorf("file still exists after Delete(): %v", err)
	}
}

func TestLocalDelete_IgnoresForeignRefs(t *testing.T) {
	l := newTestLocal(t)

	for _, ref := range []string{
		"",
		"https://example.com/remote-image.png",
		"/images/static-asset.png",
	} {
		if err := l.Delete(context.Background(), ref); err != nil {
			t.Errorf("Delete(%q) error = %v, want nil", ref, err)
		}
	}
}

func TestLocalDelete_MissingFileIsNotAnError(t *testing.T) {
	l := newTestLocal(t)

	if err := l.Delete(context.Background(), URLPrefix+"never-existed.png"); err != nil {
		t.Errorf("Delete() of a missing file = %v, want nil", err)
	}
}
