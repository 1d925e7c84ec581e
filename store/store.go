// store/store.go
package store

import (
	"context"
	"errors"

	"flavorquest-system/models"
)

// ErrNotFound is returned when a looked-up record does not exist. The
// progression engine turns a missing progress record into the first-stone
// default; storage has no catalog knowledge and never fabricates one.
var ErrNotFound = errors.New("store: not found")

// ProgressStore is the engine's only persistence boundary: one progress
// record per (user, path) and an append-only completion log per user.
type ProgressStore interface {
	GetProgress(ctx context.Context, userID, pathID string) (models.UserProgress, error)
	SaveProgress(ctx context.Context, p models.UserProgress) error
	AddCompletion(ctx context.Context, c models.Completion) error
	ListCompletionsByUser(ctx context.Context, userID string) ([]models.Completion, error)
}

// FeedStore persists the social surface built from completions.
type FeedStore interface {
	AddPost(ctx context.Context, p models.Post) error
	ListPosts(ctx context.Context) ([]models.Post, error)
	ToggleLike(ctx context.Context, postID, userID string) error
	Likes(ctx context.Context, postID, viewerID string) (count int, byViewer bool, err error)
	AddComment(ctx context.Context, c models.Comment) error
	ListComments(ctx context.Context, postID string) ([]models.Comment, error)
	CommentCount(ctx context.Context, postID string) (int, error)
}

// UserStore holds the local user snapshots (demo seed or profile mirror).
type UserStore interface {
	GetUser(ctx context.Context, userID string) (models.AppUser, error)
	UpsertUser(ctx context.Context, u models.AppUser) error
	ListUsers(ctx context.Context) ([]models.AppUser, error)
}

// Store aggregates the three ports. Both backends implement all of it.
type Store interface {
	ProgressStore
	FeedStore
	UserStore
}
