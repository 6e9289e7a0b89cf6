// Package alerts delivers account and publishing emails through an asynq
// (Redis) task queue, so slow SMTP calls never sit on the request path.
package alerts

import "time"

// Task type constants
const (
	TaskWelcomeEmail  = "email:welcome"
	TaskPostPublished = "email:post_published"
)

const emailQueue = "emails"

// EmailEnvelope is the rendered message common to all email-like tasks.
type EmailEnvelope struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// WelcomeEmailPayload greets a freshly registered user.
type WelcomeEmailPayload struct {
	UserID   string        `json:"user_id"`
	Name     string        `json:"name"`
	Email    string        `json:"email"`
	Envelope EmailEnvelope `json:"envelope"`
	SentAt   time.Time     `json:"sent_at"`
}

// PostPublishedPayload confirms to the author that a post went live.
type PostPublishedPayload struct {
	PostID   string        `json:"post_id"`
	Title    string        `json:"title"`
	Author   string        `json:"author"`
	Email    string        `json:"email"`
	Envelope EmailEnvelope `json:"envelope"`
	SentAt   time.Time     `json:"sent_at"`
}
