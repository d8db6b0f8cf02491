package instagram

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Provider constructs the shared session lazily. The first caller triggers
// the login; concurrent callers wait on the same in-flight construction. A
// successful session is reused for the process lifetime, while a failed
// login is retried by the next caller.
type Provider struct {
	opts   Options
	logger *slog.Logger

	group   singleflight.Group
	mu      sync.Mutex
	session *Session
}

// NewProvider builds a Provider; no network I/O happens until Client is called.
func NewProvider(opts Options, log *slog.Logger) *Provider {
	if log == nil {
		log = slog.Default()
	}
	return &Provider{opts: opts, logger: log}
}

// Client returns the shared session, constructing it on first use.
func (p *Provider) Client(ctx context.Context) (Client, error) {
	p.mu.Lock()
	if p.session != nil {
		s := p.session
		p.mu.Unlock()
		return s, nil
	}
	p.mu.Unlock()

	v, err, _ := p.group.Do("session", func() (any, error) {
		s, err := newSession(ctx, p.opts, p.logger)
		if err != nil {
			return nil, err
		}
		p.mu.Lock()
		p.session = s
		p.mu.Unlock()
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Session), nil
}
