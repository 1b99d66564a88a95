package queue

import (
	"context"

	"github.com/hibiken/asynq"

	"github.com/airsense/platform/internal/queue/tasks"
	appErr "github.com/airsense/platform/pkg/errors"
)

// MailDispatcher enqueues outbound mail for the worker to deliver.
type MailDispatcher interface {
	DispatchVerification(ctx context.Context, email, code string) error
	DispatchNewPassword(ctx context.Context, email, password string) error
}

// Client is the asynq-backed MailDispatcher used in production.
type Client struct {
	inner *asynq.Client
}

func NewClient(redisAddr, redisPassword string) *Client {
	return &Client{inner: asynq.NewClient(asynq.RedisClientOpt{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       0,
	})}
}

func (c *Client) DispatchVerification(ctx context.Context, email, code string) error {
	task, err := tasks.NewVerificationEmailTask(email, code)
	if err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "build verification task failed")
	}
	if _, err := c.inner.EnqueueContext(ctx, task); err != nil {
		return appErr.Wrap(err, appErr.CodeUnavailable, "enqueue verification email failed")
	}
	return nil
}

func (c *Client) DispatchNewPassword(ctx context.Context, email, password string) error {
	task, err := tasks.NewPasswordEmailTask(email, password)
	if err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "build password task failed")
	}
	if _, err := c.inner.EnqueueContext(ctx, task); err != nil {
		return appErr.Wrap(err, appErr.CodeUnavailable, "enqueue password email failed")
	}
	return nil
}

func (c *Client) Close() error { return c.inner.Close() }
