package alerts

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// Client enqueues email tasks. It satisfies the Notifier interfaces of the
// auth and posts services.
type Client struct {
	c *asynq.Client
}

// NewClient returns nil when addr is empty, which disables notifications; the
// services treat a nil Notifier as "don't notify".
func NewClient(addr, password string) *Client {
	if addr == "" {
		return nil
	}
	return &Client{c: asynq.NewClient(asynq.RedisClientOpt{Addr: addr, Password: password})}
}

// WelcomeEmail schedules the post-registration greeting.
func (cl *Client) WelcomeEmail(ctx context.Context, userID, email, name string) error {
	payload := WelcomeEmailPayload{
		UserID: userID,
		Name:   name,
		Email:  email,
		Envelope: EmailEnvelope{
			To:      email,
			Subject: fmt.Sprintf("Welcome, %s!", name),
			Body:    fmt.Sprintf("Hi %s, your account is ready. Log in to start writing.", name),
		},
		SentAt: time.Now(),
	}
	return cl.enqueue(ctx, TaskWelcomeEmail, payload)
}

// PostPublished schedules the author notification for a first publish.
func (cl *Client) PostPublished(ctx context.Context, postID, title, authorEmail, authorName string) error {
	payload := PostPublishedPayload{
		PostID: postID,
		Title:  title,
		Author: authorName,
		Email:  authorEmail,
		Envelope: EmailEnvelope{
			To:      authorEmail,
			Subject: fmt.Sprintf("Your post %q is live", title),
			Body:    fmt.Sprintf("Hi %s, %q is now published and visible to everyone.", authorName, title),
		},
		SentAt: time.Now(),
	}
	return cl.enqueue(ctx, TaskPostPublished, payload)
}

func (cl *Client) enqueue(ctx context.Context, taskType string, payload any) error {
	// A nil Client can still reach here through an interface value.
	if cl == nil {
		return nil
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = cl.c.EnqueueContext(ctx, asynq.NewTask(taskType, b), asynq.Queue(emailQueue))
	return err
}

// Close releases the underlying asynq client.
func (cl *Client) Close() {
	if cl != nil {
		_ = cl.c.Close()
	}
}
