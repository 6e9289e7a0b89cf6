package posts

import (
	"strings"
	"time"
)

// Post visibility states. Drafts are only visible to their author; published
// posts are world-readable.
const (
	StateDraft     = "draft"
	StatePublished = "published"
)

const wordsPerMinute = 225

// Post is a blog entry. Author is a display-name snapshot taken from the owner
// at creation time; AuthorID is immutable after creation.
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	Body        string    `json:"body"`
	Author      string    `json:"author"`
	AuthorID    string    `json:"authorId"`
	State       string    `json:"state"`
	ReadCount   int       `json:"readCount"`
	ReadTime    int       `json:"readTime"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ReadTime estimates minutes-to-read as ceil(words / 225), counting words as
// whitespace-separated runs of the trimmed body.
func ReadTime(body string) int {
	words := len(strings.Fields(body))
	if words == 0 {
		return 0
	}
	return (words + wordsPerMinute - 1) / wordsPerMinute
}
