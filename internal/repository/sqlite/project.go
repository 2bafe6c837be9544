package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/portfolio-server/internal/apperror"
	"github.com/sakif/portfolio-server/internal/model"
	"github.com/sakif/portfolio-server/internal/repository"
)

// Compile-time check that *DB satisfies the repository interface.
var _ repository.ProjectRepository = (*DB)(nil)

// encodeTechStack marshals the slice for the tech_stack column. A nil
// slice is stored as an empty array, so reads never see NULL and the
// JSON response is always a sequence.
func encodeTechStack(stack []string) (string, error) {
	if stack == nil {
		stack = []string{}
	}
	b, err := json.Marshal(stack)
	if err != nil {
		return "", fmt.Errorf("encoding tech stack: %w", err)
	}
	return string(b), nil
}

func decodeTechStack(raw string, into *[]string) error {
	if raw == "" {
		*into = []string{}
		return nil
	}
	if err := json.Unmarshal([]byte(raw), into); err != nil {
		return fmt.Errorf("decoding tech stack: %w", err)
	}
	if *into == nil {
		*into = []string{}
	}
	return nil
}

// Create inserts a new project, assigning its ID and timestamps.
// The pointer receiver matters: the caller gets the ID back on its struct.
func (db *DB) Create(ctx context.Context, project *model.Project) error {
	project.ID = xid.New().String()

	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now

	stack, err := encodeTechStack(project.TechStack)
	if err != nil {
		return fmt.Errorf("sqlite: creating project: %w", err)
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO projects (id, title, description, tech_stack, live_link, github_link, image_url, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		project.ID,
		project.Title,
		project.Description,
		stack,
		project.LiveLink,
		project.GithubLink,
		project.ImageURL,
		project.CreatedAt,
		project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating project: %w", err)
	}

	return nil
}

func (db *DB) GetByID(ctx context.Context, id string) (*model.Project, error) {
	var (
		p        model.Project
		rawStack string
	)

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, title, description, tech_stack, live_link, github_link, image_url, created_at, updated_at
		 FROM projects
		 WHERE id = ?`,
		id,
	).Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&rawStack,
		&p.LiveLink,
		&p.GithubLink,
		&p.ImageURL,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("project", id)
		}
		return nil, fmt.Errorf("sqlite: getting project %s: %w", id, err)
	}

	if err := decodeTechStack(rawStack, &p.TechStack); err != nil {
		return nil, fmt.Errorf("sqlite: getting project %s: %w", id, err)
	}

	return &p, nil
}

// GetByTitle returns the first project with an exact title match. Used by
// the seed tool to keep seeding idempotent.
func (db *DB) GetByTitle(ctx context.Context, title string) (*model.Project, error) {
	var (
		p        model.Project
		rawStack string
	)

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, title, description, tech_stack, live_link, github_link, image_url, created_at, updated_at
		 FROM projects
		 WHERE title = ?
		 LIMIT 1`,
		title,
	).Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&rawStack,
		&p.LiveLink,
		&p.GithubLink,
		&p.ImageURL,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("project", title)
		}
		return nil, fmt.Errorf("sqlite: getting project by title %q: %w", title, err)
	}

	if err := decodeTechStack(rawStack, &p.TechStack); err != nil {
		return nil, fmt.Errorf("sqlite: getting project by title %q: %w", title, err)
	}

	return &p, nil
}

func (db *DB) List(ctx context.Context) ([]model.Project, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, title, description, tech_stack, live_link, github_link, image_url, created_at, updated_at
		 FROM projects
		 ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing projects: %w", err)
	}
	defer rows.Close()

	projects := []model.Project{}

	for rows.Next() {
		var (
			p        model.Project
			rawStack string
		)
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Description, &rawStack,
			&p.LiveLink, &p.GithubLink, &p.ImageURL,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning project row: %w", err)
		}
		if err := decodeTechStack(rawStack, &p.TechStack); err != nil {
			return nil, fmt.Errorf("sqlite: scanning project row: %w", err)
		}
		projects = append(projects, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating projects: %w", err)
	}

	return projects, nil
}

// Update overwrites every mutable column. Partial-update semantics live in
// the service layer (fetch, merge, then call Update with the full record);
// the repository always writes a complete row.
func (db *DB) Update(ctx context.Context, project *model.Project) error {
	project.UpdatedAt = time.Now()

	stack, err := encodeTechStack(project.TechStack)
	if err != nil {
		return fmt.Errorf("sqlite: updating project %s: %w", project.ID, err)
	}

	result, err := db.conn.ExecContext(ctx,
		`UPDATE projects
		 SET title = ?, description = ?, tech_stack = ?, live_link = ?, github_link = ?, image_url = ?, updated_at = ?
		 WHERE id = ?`,
		project.Title,
		project.Description,
		stack,
		project.LiveLink,
		project.GithubLink,
		project.ImageURL,
		project.UpdatedAt,
		project.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating project %s: %w", project.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("project", project.ID)
	}

	return nil
}

func (db *DB) Delete(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM projects WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting project %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("project", id)
	}

	return nil
}
