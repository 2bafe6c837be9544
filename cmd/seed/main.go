// Command seed inserts a few sample projects so a fresh database has
// something to show. Safe to run repeatedly: projects already present
// (matched by title) are skipped.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sakif/portfolio-server/internal/apperror"
	"github.com/sakif/portfolio-server/internal/config"
	"github.com/sakif/portfolio-server/internal/model"
	"github.com/sakif/portfolio-server/internal/repository/sqlite"
)

var sampleProjects = []model.Project{
	{
		Title:       "Portfolio Website",
		Description: "Personal portfolio with a project showcase and contact form.",
		TechStack:   []string{"Go", "chi", "SQLite"},
		GithubLink:  "https://github.com/sakif/portfolio-server",
	},
	{
		Title:       "Coding Playground",
		Description: "Browser-based code runner with sandboxed execution.",
		TechStack:   []string{"Go", "Docker", "JavaScript"},
		GithubLink:  "https://github.com/sakif/coding-playground",
	},
	{
		Title:       "URL Shortener",
		Description: "Tiny link shortener with click tracking.",
		TechStack:   []string{"Go", "Redis"},
	},
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DB.Path), 0755); err != nil {
		logger.Error("failed to create database directory", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()
	seeded := 0

	for _, sample := range sampleProjects {
		_, err := db.GetByTitle(ctx, sample.Title)
		if err == nil {
			logger.Info("already present, skipping", slog.String("title", sample.Title))
			continue
		}
		if !errors.Is(err, apperror.ErrNotFound) {
			logger.Error("lookup failed", slog.String("title", sample.Title), slog.String("error", err.Error()))
			os.Exit(1)
		}

		project := sample
		if err := db.Create(ctx, &project); err != nil {
			logger.Error("insert failed", slog.String("title", sample.Title), slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("seeded", slog.String("id", project.ID), slog.String("title", project.Title))
		seeded++
	}

	logger.Info("done", slog.Int("inserted", seeded), slog.Int("skipped", len(sampleProjects)-seeded))
}
