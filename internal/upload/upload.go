// Package upload validates admin-supplied image files and persists them
// through a storage backend.
//
// The processor sits between the admin handlers and the FileStore: the
// handler pulls the optional file out of the multipart form, the processor
// decides whether it's acceptable and where it lives, and the project
// service receives only the resulting imageUrl string. When validation or
// storage fails the caller must abort the whole create/update — a Project
// record is never written with an image that failed to store.
package upload

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/sakif/portfolio-server/internal/apperror"
	"github.com/sakif/portfolio-server/internal/storage"
)

// MaxFileSize is the largest accepted image, in bytes.
const MaxFileSize = 5 << 20 // 5 MiB

// allowedExts are the image extensions the portfolio accepts. Matching is
// case-insensitive on the client-supplied filename.
var allowedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".svg":  true,
}

// Processor validates and stores uploaded images.
type Processor struct {
	store  storage.FileStore
	logger *slog.Logger
}

func NewProcessor(store storage.FileStore, logger *slog.Logger) *Processor {
	return &Processor{
		store:  store,
		logger: logger,
	}
}

// Process validates and persists one uploaded image, returning a reference
// usable as a Project imageUrl.
//
// A nil header means the request carried no file: Process is a no-op and
// returns ("", nil), leaving the caller's existing imageUrl semantics in
// force. Any failure comes back as an apperror.UploadFailed so handlers
// map it to a 400 and abort the write.
func (p *Processor) Process(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", nil
	}

	if fh.Size > MaxFileSize {
		return "", apperror.UploadFailed(
			fmt.Sprintf("file exceeds the %d MB limit", MaxFileSize>>20))
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExts[ext] {
		return "", apperror.UploadFailed("only image files are allowed (jpg, jpeg, png, gif, webp, svg)")
	}

	f, err := fh.Open()
	if err != nil {
		p.logger.Error("opening uploaded file",
			slog.String("filename", fh.Filename),
			slog.String("error", err.Error()),
		)
		return "", apperror.UploadFailed("could not read uploaded file")
	}
	defer f.Close()

	ref, err := p.store.Save(ctx, fh.Filename, fh.Header.Get("Content-Type"), f)
	if err != nil {
		p.logger.Error("storing uploaded file",
			slog.String("filename", fh.Filename),
			slog.String("error", err.Error()),
		)
		return "", apperror.UploadFailed("could not store uploaded file")
	}

	p.logger.Info("image stored",
		slog.String("filename", fh.Filename),
		slog.String("ref", ref),
		slog.Int64("size", fh.Size),
	)

	return ref, nil
}

// Discard best-effort removes a file stored earlier in the same request.
// Used to compensate when the record write fails after a successful
// upload; a failure here only leaves an orphaned file, so it is logged and
// swallowed.
func (p *Processor) Discard(ctx context.Context, ref string) {
	if ref == "" {
		return
	}
	if err := p.store.Delete(ctx, ref); err != nil {
		p.logger.Warn("discarding stored file after failed write",
			slog.String("ref", ref),
			slog.String("error", err.Error()),
		)
	}
}
