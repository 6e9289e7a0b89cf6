package alerts

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"

	"blogapi/internal/logging"
)

// Processor runs the asynq worker that drains the email queue.
type Processor struct {
	server *asynq.Server
	mailer *Mailer
	log    logging.Logger
}

func NewProcessor(addr, password string, mailer *Mailer, log logging.Logger) *Processor {
	if addr == "" {
		return nil
	}
	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: addr, Password: password},
		asynq.Config{
			Concurrency: 5,
			Queues:      map[string]int{emailQueue: 10},
		},
	)
	return &Processor{server: server, mailer: mailer, log: log}
}

// Start runs the worker in the background. Errors from a returning task are
// handled by asynq's retry machinery.
func (p *Processor) Start() {
	if p == nil {
		return
	}
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskWelcomeEmail, p.handleWelcomeEmail)
	mux.HandleFunc(TaskPostPublished, p.handlePostPublished)

	go func() {
		if err := p.server.Run(mux); err != nil {
			p.log.Error(context.Background(), "alerts worker stopped", "error", err.Error())
		}
	}()
}

// Shutdown stops the worker, waiting for in-flight tasks.
func (p *Processor) Shutdown() {
	if p != nil {
		p.server.Shutdown()
	}
}

func (p *Processor) handleWelcomeEmail(ctx context.Context, t *asynq.Task) error {
	var payload WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return err
	}
	if err := p.mailer.Send(payload.Envelope.To, payload.Envelope.Subject, payload.Envelope.Body); err != nil {
		p.log.Error(ctx, "welcome email send failed", "user_id", payload.UserID, "error", err.Error())
		return err
	}
	p.log.Info(ctx, "welcome email sent", "to", payload.Email, "user_id", payload.UserID)
	return nil
}

func (p *Processor) handlePostPublished(ctx context.Context, t *asynq.Task) error {
	var payload PostPublishedPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return err
	}
	if err := p.mailer.Send(payload.Envelope.To, payload.Envelope.Subject, payload.Envelope.Body); err != nil {
		p.log.Error(ctx, "publish email send failed", "post_id", payload.PostID, "error", err.Error())
		return err
	}
	p.log.Info(ctx, "publish email sent", "to", payload.Email, "post_id", payload.PostID)
	return nil
}
