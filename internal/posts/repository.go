package posts

import "context"

// UpdateFields is a partial update; nil fields keep their stored value.
type UpdateFields struct {
	Title       *string
	Description *string
	Tags        []string
	Body        *string
	State       *string
	ReadTime    *int
}

// PublishedFilter selects a page of published posts. SortBy is one of the
// normalized sort keys (readCount, readTime, timestamp) or empty for insertion
// order; the repository maps it to a concrete ordering.
type PublishedFilter struct {
	Search string
	SortBy string
	Limit  int
	Offset int
}

// OwnerFilter selects a page of one author's posts, optionally limited to a
// single state.
type OwnerFilter struct {
	AuthorID string
	State    string
	Limit    int
	Offset   int
}

type Repository interface {
	// Create persists the post and appends its id to the owner's post list as
	// one unit.
	Create(ctx context.Context, post *Post) (*Post, error)

	GetByID(ctx context.Context, id string) (*Post, error)

	Update(ctx context.Context, id string, fields UpdateFields) (*Post, error)

	// DeleteOwned removes the post only when both id and author match, and
	// drops the id from the owner's post list as one unit. A missing post and
	// a foreign post are indistinguishable to the caller.
	DeleteOwned(ctx context.Context, id, authorID string) error

	IncrementReadCount(ctx context.Context, id string) error

	// ListPublished returns the page plus the pre-pagination match count.
	ListPublished(ctx context.Context, f PublishedFilter) ([]Post, int, error)

	// ListByOwner returns the page plus the pre-pagination match count.
	ListByOwner(ctx context.Context, f OwnerFilter) ([]Post, int, error)
}
