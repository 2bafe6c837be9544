package service

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"strings"

	"github.com/sakif/portfolio-server/internal/apperror"
	"github.com/sakif/portfolio-server/internal/model"
	"github.com/sakif/portfolio-server/internal/repository"
	"github.com/sakif/portfolio-server/internal/upload"
)

// ParseTechStack splits a comma-separated tech list into an ordered
// sequence, trimming whitespace around each element and dropping empty
// ones. "Go, chi , SQLite" → ["Go", "chi", "SQLite"]. Duplicates are kept;
// insertion order is display order.
func ParseTechStack(raw string) []string {
	parts := strings.Split(raw, ",")
	stack := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			stack = append(stack, p)
		}
	}
	return stack
}

// CreateProjectInput carries everything a create request may supply.
// Image, when present, is uploaded first and its reference wins over
// ImageURL.
type CreateProjectInput struct {
	Title       string
	Description string
	TechStack   []string
	LiveLink    string
	GithubLink  string
	ImageURL    string
	Image       *multipart.FileHeader
}

// ProjectPatch is a partial update. A nil field means "leave the stored
// value unchanged" — presence-based overwrite only. There is no way to
// clear a field to empty; that limitation is inherited deliberately from
// the admin form's behaviour.
//
// TechStackRaw and TechStackList are alternatives: the admin form submits
// a comma string (re-parsed here), an API client may submit an already
// split sequence (used as-is). Raw wins if both are set.
type ProjectPatch struct {
	Title         *string
	Description   *string
	TechStackRaw  *string
	TechStackList []string
	LiveLink      *string
	GithubLink    *string
	ImageURL      *string
	Image         *multipart.FileHeader
}

// ProjectService orchestrates the project write path: upload first, then
// persist, and compensate (best-effort delete of the just-stored file)
// when the persist step fails. Upload and persist are not atomic — a crash
// between the two orphans a stored file, which is accepted for a
// single-admin system.
type ProjectService struct {
	repo    repository.ProjectRepository
	uploads *upload.Processor
	logger  *slog.Logger
}

func NewProjectService(repo repository.ProjectRepository, uploads *upload.Processor, logger *slog.Logger) *ProjectService {
	return &ProjectService{
		repo:    repo,
		uploads: uploads,
		logger:  logger,
	}
}

// List returns every project, newest first.
func (s *ProjectService) List(ctx context.Context) ([]model.Project, error) {
	projects, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list projects", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return projects, nil
}

// Create validates the input, stores the optional image, and inserts the
// record. If the upload fails the whole create is aborted; if the insert
// fails after a successful upload, the stored file is best-effort removed.
func (s *ProjectService) Create(ctx context.Context, in CreateProjectInput) (*model.Project, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)

	if in.Title == "" {
		return nil, apperror.ValidationFailed("title", "title is required")
	}
	if in.Description == "" {
		return nil, apperror.ValidationFailed("description", "description is required")
	}

	imageURL := in.ImageURL
	uploadedRef := ""
	if in.Image != nil {
		ref, err := s.uploads.Process(ctx, in.Image)
		if err != nil {
			return nil, err
		}
		imageURL = ref
		uploadedRef = ref
	}

	stack := in.TechStack
	if stack == nil {
		stack = []string{}
	}

	project := &model.Project{
		Title:       in.Title,
		Description: in.Description,
		TechStack:   stack,
		LiveLink:    in.LiveLink,
		GithubLink:  in.GithubLink,
		ImageURL:    imageURL,
	}

	if err := s.repo.Create(ctx, project); err != nil {
		if uploadedRef != "" {
			s.uploads.Discard(ctx, uploadedRef)
		}
		s.logger.Error("failed to create project",
			slog.String("title", in.Title),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating project: %w", err)
	}

	s.logger.Info("project created",
		slog.String("id", project.ID),
		slog.String("title", project.Title),
	)

	return project, nil
}

// Update applies a partial update to an existing project.
//
// Order matters: the record is fetched first (NotFound before any side
// effect), then present fields are merged and validated, and only then
// is the optional new image uploaded — so neither a missing record nor a
// bad patch ever leaves a stored file behind. A new file always wins
// over an explicit imageUrl;
// an explicit imageUrl with no file overwrites the stored one — that is
// how the admin form round-trips "keep the current image".
func (s *ProjectService) Update(ctx context.Context, id string, patch ProjectPatch) (*model.Project, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "project ID is required")
	}

	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Merge and validate the scalar fields before touching the file
	// store, so a validation failure can't leave an orphaned upload.
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, apperror.ValidationFailed("title", "title must not be empty")
		}
		project.Title = title
	}
	if patch.Description != nil {
		description := strings.TrimSpace(*patch.Description)
		if description == "" {
			return nil, apperror.ValidationFailed("description", "description must not be empty")
		}
		project.Description = description
	}
	if patch.TechStackRaw != nil {
		project.TechStack = ParseTechStack(*patch.TechStackRaw)
	} else if patch.TechStackList != nil {
		project.TechStack = patch.TechStackList
	}
	if patch.LiveLink != nil {
		project.LiveLink = *patch.LiveLink
	}
	if patch.GithubLink != nil {
		project.GithubLink = *patch.GithubLink
	}

	uploadedRef := ""
	if patch.Image != nil {
		ref, err := s.uploads.Process(ctx, patch.Image)
		if err != nil {
			return nil, err
		}
		uploadedRef = ref
	}

	switch {
	case uploadedRef != "":
		project.ImageURL = uploadedRef
	case patch.ImageURL != nil:
		project.ImageURL = *patch.ImageURL
	}

	if err := s.repo.Update(ctx, project); err != nil {
		if uploadedRef != "" {
			s.uploads.Discard(ctx, uploadedRef)
		}
		s.logger.Error("failed to update project",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating project: %w", err)
	}

	s.logger.Info("project updated",
		slog.String("id", project.ID),
		slog.String("title", project.Title),
	)

	return project, nil
}

// Delete removes a project and best-effort deletes its locally stored
// image. A failed image delete is logged and never blocks the record
// delete; remote image URLs are left alone entirely.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "project ID is required")
	}

	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if project.ImageURL != "" {
		s.uploads.Discard(ctx, project.ImageURL)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("project deleted", slog.String("id", id))
	return nil
}
