package remote

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/appetiteclub/apt"
)

const (
	DefaultTimeout     = 10 * time.Second
	DefaultReadRetries = 2
	DefaultRetryDelay  = 500 * time.Millisecond
)

// Client talks to the bistro store, which answers with bare JSON documents.
// Reads retry on transient failures. Writes are sent exactly once: cart adds and
// order placement are not idempotent on the store side.
type Client struct {
	reads  *apt.HTTPClient
	writes *apt.HTTPClient
}

type Options struct {
	Timeout     time.Duration
	ReadRetries int
	RetryDelay  time.Duration
}

func NewClient(baseURL string, opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.ReadRetries < 0 {
		opts.ReadRetries = 0
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = DefaultRetryDelay
	}

	// apt.NewHTTPClient turns zero retries into three, so both clients are built
	// from literals.
	return &Client{
		reads: &apt.HTTPClient{
			BaseURL:    baseURL,
			HTTPClient: &http.Client{Timeout: opts.Timeout},
			MaxRetries: opts.ReadRetries,
			RetryDelay: opts.RetryDelay,
		},
		writes: &apt.HTTPClient{
			BaseURL:    baseURL,
			HTTPClient: &http.Client{Timeout: opts.Timeout},
			MaxRetries: 0,
		},
	}
}

// Get decodes the document at path into dest.
func (c *Client) Get(ctx context.Context, path string, dest interface{}) error {
	if err := c.ready(); err != nil {
		return err
	}
	return c.reads.Get(ctx, path, dest)
}

// Post sends body once. dest may be nil when the reply is not needed.
func (c *Client) Post(ctx context.Context, path string, body, dest interface{}) error {
	if err := c.ready(); err != nil {
		return err
	}
	return c.writes.Post(ctx, path, body, dest)
}

func (c *Client) Put(ctx context.Context, path string, body, dest interface{}) error {
	if err := c.ready(); err != nil {
		return err
	}
	return c.writes.Put(ctx, path, body, dest)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	if err := c.ready(); err != nil {
		return err
	}
	return c.writes.Delete(ctx, path)
}

func (c *Client) ready() error {
	if c == nil || c.reads == nil || c.writes == nil {
		return fmt.Errorf("bistro client not configured")
	}
	return nil
}
