package ports

import (
	"context"

	"github.com/sachcu/marketplace-client/internal/core/domain"
)

// ModerationTask asks for one post to be moved to a new status.
type ModerationTask struct {
	PostID int
	Status domain.PostStatus
}

// ModerationResult reports the outcome of one ModerationTask.
type ModerationResult struct {
	PostID int
	Status domain.PostStatus
	Post   *domain.Post
	Err    error
}

// PostModerator applies a single status change upstream.
type PostModerator interface {
	UpdatePostStatus(ctx context.Context, postID int, status domain.PostStatus) (*domain.Post, error)
}
