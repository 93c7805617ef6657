package concierge

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bensonglobal/meridian/pkg/httputil"
	"github.com/bensonglobal/meridian/pkg/observability"
)

// Concierge replies to chat messages, degrading to fallback text.
type Concierge struct {
	gen         Generator
	instruction string
	timeout     time.Duration
	attempts    int
	backoff     time.Duration
	logger      *log.Logger
}

// Option configures a Concierge.
type Option func(*Concierge)

// WithTimeout bounds a single Reply, retries included.
func WithTimeout(d time.Duration) Option {
	return func(c *Concierge) { c.timeout = d }
}

// WithRetry sets the attempt count and initial backoff for retryable failures.
func WithRetry(attempts int, backoff time.Duration) Option {
	return func(c *Concierge) { c.attempts, c.backoff = attempts, backoff }
}

// WithInstruction replaces the framing instruction.
func WithInstruction(s string) Option {
	return func(c *Concierge) { c.instruction = s }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Concierge) { c.logger = l }
}

// New creates a concierge. A nil generator means no model is configured and
// every reply is [Offline].
func New(gen Generator, opts ...Option) *Concierge {
	c := &Concierge{
		gen:         gen,
		instruction: Instruction,
		timeout:     30 * time.Second,
		attempts:    3,
		backoff:     500 * time.Millisecond,
		logger:      log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether a model is available.
func (c *Concierge) Configured() bool { return c.gen != nil }

// Model returns the configured model name, or "" when offline.
func (c *Concierge) Model() string {
	if c.gen == nil {
		return ""
	}
	return c.gen.Model()
}

// Reply returns the model's answer to message given the prior history.
// It always returns displayable text.
func (c *Concierge) Reply(ctx context.Context, history []Message, message string) string {
	if c.gen == nil {
		return Offline
	}
	model := c.gen.Model()
	turns := Contents(c.instruction, history, message)

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	observability.Chat().OnChatRequest(ctx, model, len(turns))

	var text string
	err := httputil.Retry(ctx, c.attempts, c.backoff, func() error {
		var err error
		text, err = c.gen.Generate(ctx, turns)
		return err
	})
	if err != nil {
		c.logger.Warn("concierge reply failed", "model", model, "err", err)
		observability.Chat().OnChatComplete(ctx, model, true, time.Since(start), err)
		return Unavailable
	}
	if strings.TrimSpace(text) == "" {
		observability.Chat().OnChatComplete(ctx, model, true, time.Since(start), nil)
		return NoResponse
	}
	observability.Chat().OnChatComplete(ctx, model, false, time.Since(start), nil)
	return text
}
