package instagram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Resolver resolves a handle to a canonical account. It tries an exact
// lookup first and falls back to fuzzy search only when the exact lookup
// reports not-found; the first-ranked candidate wins.
type Resolver struct {
	clients ClientSource
	logger  *slog.Logger
}

// NewResolver builds a Resolver on top of the shared client source.
func NewResolver(clients ClientSource, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{
		clients: clients,
		logger:  log.With(slog.String("component", "resolver")),
	}
}

// Resolve returns the account for handle, or ErrAccountNotFound when
// neither arm produces a candidate. ErrAccountPrivate from either arm
// propagates unchanged with no fallback.
func (r *Resolver) Resolve(ctx context.Context, handle string) (Account, error) {
	client, err := r.clients.Client(ctx)
	if err != nil {
		return Account{}, fmt.Errorf("instagram session: %w", err)
	}

	candidates, err := r.candidates(ctx, client, handle)
	if err != nil {
		return Account{}, err
	}
	if len(candidates) == 0 {
		return Account{}, ErrAccountNotFound
	}
	return candidates[0], nil
}

func (r *Resolver) candidates(ctx context.Context, client Client, handle string) ([]Account, error) {
	account, err := client.LookupUser(ctx, handle)
	if err == nil {
		return []Account{account}, nil
	}
	if !errors.Is(err, ErrAccountNotFound) {
		return nil, err
	}

	r.logger.Debug("exact lookup missed, searching", slog.String("handle", handle))
	return client.SearchUsers(ctx, handle)
}
