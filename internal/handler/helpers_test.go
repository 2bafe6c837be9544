package handler_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"testing"

	"github.com/sakif/portfolio-server/internal/auth"
	"github.com/sakif/portfolio-server/internal/config"
	"github.com/sakif/portfolio-server/internal/handler"
	"github.com/sakif/portfolio-server/internal/model"
	"github.com/sakif/portfolio-server/internal/repository/sqlite"
	"github.com/sakif/portfolio-server/internal/service"
	"github.com/sakif/portfolio-server/internal/storage"
	"github.com/sakif/portfolio-server/internal/upload"
)

const (
	testUsername = "admin"
	testPassword = "correct horse battery staple"
	testSecret   = "test-secret-at-least-16-chars!!"
)

// testEnv wires real services over an in-memory database and a temp-dir
// file store, so handler tests exercise the full stack below the router.
type testEnv struct {
	db       *sqlite.DB
	store    *storage.Local
	auth     *handler.AuthHandler
	projects *handler.ProjectHandler
	contact  *handler.ContactHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	db, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store, err := storage.NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("creating file store: %v", err)
	}

	passwords := auth.NewPasswordServiceForTest(4)
	hash, err := passwords.Hash(testPassword)
	if err != nil {
		t.Fatalf("hashing test password: %v", err)
	}

	tokens, err := auth.NewTokenService(testSecret)
	if err != nil {
		t.Fatalf("creating token service: %v", err)
	}

	admin := config.AdminConfig{
		Username:     testUsername,
		PasswordHash: hash,
		JWTSecret:    testSecret,
	}

	uploads := upload.NewProcessor(store, logger)
	authSvc := service.NewAuthService(admin, tokens, passwords, logger)
	projectSvc := service.NewProjectService(db, uploads, logger)
	messageSvc := service.NewMessageService(db, logger)

	return &testEnv{
		db:       db,
		store:    store,
		auth:     handler.NewAuthHandler(authSvc, logger),
		projects: handler.NewProjectHandler(projectSvc, logger),
		contact:  handler.NewContactHandler(messageSvc, logger),
	}
}

// multipartBody builds a multipart request body from field values and an
// optional file. Returns the body and the content type with boundary.
func multipartBody(t *testing.T, fields map[string]string, fileField, filename string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := w.WriteField(key, value); err != nil {
			t.Fatalf("writing form field %q: %v", key, err)
		}
	}
	if fileField != "" {
		fw, err := w.CreateFormFile(fileField, filename)
		if err != nil {
			t.Fatalf("creating form file: %v", err)
		}
		io.Copy(fw, bytes.NewReader([]byte("fake image bytes")))
	}
	w.Close()
	return &buf, w.FormDataContentType()
}

func seedProject(t *testing.T, env *testEnv, title string) string {
	t.Helper()

	project := &model.Project{
		Title:       title,
		Description: "seeded for testing",
		TechStack:   []string{"Go"},
		LiveLink:    "https://example.com/live",
	}
	if err := env.db.Create(context.Background(), project); err != nil {
		t.Fatalf("seeding project: %v", err)
	}
	return project.ID
}
