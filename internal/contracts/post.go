package contracts

import (
	"context"
	"time"
)

// RawPost is a social-media post as delivered by the post source.
// Immutable once fetched.
type RawPost struct {
	ID           string    `json:"id"`
	AuthorHandle string    `json:"author_handle"`
	Text         string    `json:"text"`
	CreatedAt    time.Time `json:"created_at"`
	URL          string    `json:"url"`
}

// PostSource yields raw posts for an author, regardless of how they
// were fetched (single request or paginated).
type PostSource interface {
	FetchPosts(ctx context.Context, handle string, limit int) ([]RawPost, error)
}
