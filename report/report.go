// Package report forwards script runtime errors and invariant-failure
// panics to Sentry, when configured. Grounded on newbpydev-bubblyui's
// observability.SentryReporter (functional-option client construction
// wrapping a *sentry.Hub); nil-safe no-op when no DSN is set, matching
// spec §7 items 4 ("script runtime error... logged, not fatal") and 6
// ("invariant failure... reported, not crashed").
package report

import (
	"fmt"

	"github.com/getsentry/sentry-go"
)

// Option configures the underlying sentry client, mirroring
// observability.SentryReporter's SentryOption pattern.
type Option func(*sentry.ClientOptions)

// WithDebug enables Sentry's own debug logging.
func WithDebug() Option {
	return func(o *sentry.ClientOptions) { o.Debug = true }
}

// WithEnvironment tags events with an environment name.
func WithEnvironment(env string) Option {
	return func(o *sentry.ClientOptions) { o.Environment = env }
}

// Reporter captures errors to Sentry, or does nothing if it was never
// configured with a DSN.
type Reporter struct {
	hub     *sentry.Hub
	enabled bool
}

// New returns a Reporter. If dsn is empty, the returned Reporter is a
// no-op: every Capture call simply returns, matching bubblyui's pattern of
// a reporter that is safe to construct and use even when observability is
// turned off for a given environment.
func New(dsn string, opts ...Option) (*Reporter, error) {
	if dsn == "" {
		return &Reporter{}, nil
	}

	options := sentry.ClientOptions{Dsn: dsn}
	for _, opt := range opts {
		opt(&options)
	}
	client, err := sentry.NewClient(options)
	if err != nil {
		return nil, fmt.Errorf("report: creating sentry client: %w", err)
	}
	scope := sentry.NewScope()
	return &Reporter{hub: sentry.NewHub(client, scope), enabled: true}, nil
}

// CaptureScriptError reports an uncaught error from the embedded script
// engine, tagged so it's distinguishable from browser-internal errors.
func (r *Reporter) CaptureScriptError(err error, url string) {
	if !r.enabled || err == nil {
		return
	}
	r.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("source", "script")
		scope.SetExtra("url", url)
		r.hub.CaptureException(err)
	})
}

// CaptureInvariantFailure reports a recovered panic from an internal
// invariant check (spec §7 item 6: failures are reported, not crashed).
func (r *Reporter) CaptureInvariantFailure(recovered interface{}, component string) {
	if !r.enabled || recovered == nil {
		return
	}
	r.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("source", "invariant")
		scope.SetTag("component", component)
		r.hub.CaptureException(fmt.Errorf("invariant failure in %s: %v", component, recovered))
	})
}
