// Package model defines the data structures used throughout the application.
package model

import "time"

// Project represents one portfolio entry.
//
// TechStack is an ordered list of short technology names ("React", "Go").
// Insertion order is display order and duplicates are allowed. It is always
// a slice here and in the store — admin forms submit it as a comma-separated
// string, but the service splits it before it ever reaches a repository.
//
// ImageURL is either a site-relative reference under /uploads/ (local
// storage backend), an absolute URL (remote storage backend, or a link the
// admin pasted in directly), or empty when the project has no image.
type Project struct {
	ID          string    `json:"id"          db:"id"`
	Title       string    `json:"title"       db:"title"`
	Description string    `json:"description" db:"description"`
	TechStack   []string  `json:"techStack"   db:"tech_stack"`
	LiveLink    string    `json:"liveLink"    db:"live_link"`
	GithubLink  string    `json:"githubLink"  db:"github_link"`
	ImageURL    string    `json:"imageUrl"    db:"image_url"`
	CreatedAt   time.Time `json:"createdAt"   db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt"   db:"updated_at"`
}
