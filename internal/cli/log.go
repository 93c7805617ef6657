// Package cli implements the meridian command-line interface.
//
// Commands render the orbital, network, node-link and market diagrams to
// files, serve them over HTTP, animate the orbital diagram in the terminal,
// and talk to the concierge and social feed. The CLI is built using cobra and
// logs through charmbracelet/log.
//
// # Commands
//
//   - serve: HTTP server with snapshot, stream, chat and social endpoints
//   - render: Write one diagram frame as SVG, JSON, DOT, PNG or HTML
//   - hubs: Print the hub table
//   - chat: Talk to the concierge interactively or with --once
//   - social: Fetch the latest post per platform
//   - watch: Animate the orbital diagram in the terminal
//   - cache, config: Manage the snapshot cache and config file
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// installs log-backed observability hooks. The logger is passed through
// context.Context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a leveled logger writing "15:04:05.00" timestamps to w.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Prefix:          appName,
		Level:           level,
	})
}

// progress times one operation. Not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg at info level with the elapsed time appended to keyvals.
func (p *progress) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "took", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(msg, keyvals...)
}

type ctxKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// loggerFromContext returns the logger stored by withLogger, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
