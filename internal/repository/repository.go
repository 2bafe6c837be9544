// Package repository defines the storage interfaces implemented by the
// sqlite package and mocked in service tests.
package repository

import (
	"context"

	"github.com/sakif/portfolio-server/internal/model"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	GetByID(ctx context.Context, id string) (*model.Project, error)
	// List returns every project, newest first. The corpus is a personal
	// portfolio — small by nature — so there is no pagination.
	List(ctx context.Context) ([]model.Project, error)
	GetByTitle(ctx context.Context, title string) (*model.Project, error)
	Update(ctx context.Context, project *model.Project) error
	Delete(ctx context.Context, id string) error
}

// MessageRepository is append-only: there is deliberately no update or
// delete. ListMessages exists for tooling and tests; messages have no HTTP
// read surface. Method names carry the "Message" suffix because the sqlite
// DB type implements both repositories.
type MessageRepository interface {
	CreateMessage(ctx context.Context, message *model.Message) error
	ListMessages(ctx context.Context) ([]model.Message, error)
}
