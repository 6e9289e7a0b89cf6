// Package posts holds the authorization, visibility, and query-composition
// rules layered over post storage.
package posts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"blogapi/internal/apperr"
	"blogapi/internal/auth"
	"blogapi/internal/cache"
	"blogapi/internal/logging"
)

const (
	defaultLimit = 20
	maxLimit     = 100

	publishedCachePrefix = "posts:published:"
)

// Notifier delivers publish notifications. Best effort; a failure never fails
// the update.
type Notifier interface {
	PostPublished(ctx context.Context, postID, title, authorEmail, authorName string) error
}

type Service struct {
	repo     Repository
	cache    *cache.Cache
	cacheTTL time.Duration
	notifier Notifier
	log      logging.Logger
}

func NewService(repo Repository, c *cache.Cache, cacheTTL time.Duration, notifier Notifier, log logging.Logger) *Service {
	return &Service{repo: repo, cache: c, cacheTTL: cacheTTL, notifier: notifier, log: log}
}

// CreateFields is the caller-supplied part of a new post.
type CreateFields struct {
	Title       string
	Description string
	Tags        []string
	Body        string
}

// ListResult is one page plus the pre-pagination match count.
type ListResult struct {
	Total int    `json:"total"`
	Posts []Post `json:"posts"`
}

// Create persists a new draft owned by the caller. The author display name is
// snapshotted from the owner and the read time derived from the body.
func (s *Service) Create(ctx context.Context, owner *auth.Claims, f CreateFields) (*Post, error) {
	if err := validateRequired(f.Title, f.Description, f.Body); err != nil {
		return nil, err
	}

	tags := f.Tags
	if tags == nil {
		tags = []string{}
	}

	post := &Post{
		ID:          uuid.New().String(),
		Title:       f.Title,
		Description: f.Description,
		Tags:        tags,
		Body:        f.Body,
		Author:      owner.FullName(),
		AuthorID:    owner.UserID,
		State:       StateDraft,
		ReadTime:    ReadTime(f.Body),
	}
	return s.repo.Create(ctx, post)
}

// Update applies a partial update to the caller's own post. Ownership is
// checked before any mutation is committed.
func (s *Service) Update(ctx context.Context, requester *auth.Claims, postID string, f UpdateFields) (*Post, error) {
	current, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if current.AuthorID != requester.UserID {
		return nil, apperr.New(apperr.ErrForbidden, "you can only update a post you created")
	}

	if f.State != nil && *f.State != StateDraft && *f.State != StatePublished {
		return nil, apperr.Newf(apperr.ErrValidation, "state must be %q or %q", StateDraft, StatePublished)
	}
	if f.Body != nil {
		if strings.TrimSpace(*f.Body) == "" {
			return nil, apperr.New(apperr.ErrValidation, "body must not be empty")
		}
		rt := ReadTime(*f.Body)
		f.ReadTime = &rt
	}

	updated, err := s.repo.Update(ctx, postID, f)
	if err != nil {
		return nil, err
	}

	if current.State == StatePublished || updated.State == StatePublished {
		s.cache.Invalidate(ctx, publishedCachePrefix)
	}
	if current.State != StatePublished && updated.State == StatePublished && s.notifier != nil {
		if err := s.notifier.PostPublished(ctx, updated.ID, updated.Title, requester.Email, updated.Author); err != nil {
			s.log.Warn(ctx, "publish notification enqueue failed", "post_id", updated.ID, "error", err.Error())
		}
	}
	return updated, nil
}

// Delete removes the caller's own post. A post owned by someone else reports
// not-found, so post ids of other users cannot be probed.
func (s *Service) Delete(ctx context.Context, requesterID, postID string) error {
	if err := s.repo.DeleteOwned(ctx, postID, requesterID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, publishedCachePrefix)
	return nil
}

// GetByID applies the visibility rule: drafts are author-only, published posts
// are world-readable. A published read bumps the read count; a failed bump is
// reported but never fails the read.
func (s *Service) GetByID(ctx context.Context, viewer *auth.Claims, postID string) (*Post, error) {
	post, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.State == StateDraft {
		if viewer == nil || viewer.UserID != post.AuthorID {
			return nil, apperr.New(apperr.ErrForbidden, "draft posts are only visible to their author")
		}
		return post, nil
	}

	if err := s.repo.IncrementReadCount(ctx, post.ID); err != nil {
		s.log.Warn(ctx, "read count increment failed, stored count is behind",
			"post_id", post.ID, "error", err.Error())
	} else {
		post.ReadCount++
	}
	return post, nil
}

// ListPublished returns a page of published posts. Search is an OR across
// title, author name, and tags; sorting is restricted to the allow-list and
// always descending.
func (s *Service) ListPublished(ctx context.Context, page, limit int, search, sortBy string) (*ListResult, error) {
	page, limit = clampPage(page, limit)
	sortBy = normalizeSort(sortBy)

	key := fmt.Sprintf("%sp=%d:l=%d:q=%s:s=%s", publishedCachePrefix, page, limit, search, sortBy)
	result := &ListResult{}
	if s.cache.Get(ctx, key, result) {
		return result, nil
	}

	list, total, err := s.repo.ListPublished(ctx, PublishedFilter{
		Search: search,
		SortBy: sortBy,
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []Post{}
	}

	result = &ListResult{Total: total, Posts: list}
	s.cache.Set(ctx, key, result, s.cacheTTL)
	return result, nil
}

// ListByOwner returns a page of the owner's posts in any state, optionally
// restricted to one state.
func (s *Service) ListByOwner(ctx context.Context, ownerID string, page, limit int, state string) (*ListResult, error) {
	if state != "" && state != StateDraft && state != StatePublished {
		return nil, apperr.Newf(apperr.ErrValidation, "state must be %q or %q", StateDraft, StatePublished)
	}
	page, limit = clampPage(page, limit)

	list, total, err := s.repo.ListByOwner(ctx, OwnerFilter{
		AuthorID: ownerID,
		State:    state,
		Limit:    limit,
		Offset:   (page - 1) * limit,
	})
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []Post{}
	}
	return &ListResult{Total: total, Posts: list}, nil
}

func validateRequired(title, description, body string) error {
	var missing []string
	if strings.TrimSpace(title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(description) == "" {
		missing = append(missing, "description")
	}
	if strings.TrimSpace(body) == "" {
		missing = append(missing, "body")
	}
	if len(missing) > 0 {
		return apperr.Newf(apperr.ErrValidation, "missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// clampPage applies the 1/20 defaults for absent, zero, or negative values so
// the skip arithmetic stays valid.
func clampPage(page, limit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

// normalizeSort keeps only allow-listed sort keys; everything else means
// insertion order.
func normalizeSort(sortBy string) string {
	switch sortBy {
	case "readCount", "readTime", "timestamp":
		return sortBy
	default:
		return ""
	}
}
