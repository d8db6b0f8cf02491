package instagram

import "errors"

var (
	// ErrAccountNotFound indicates no account matches the requested handle.
	ErrAccountNotFound = errors.New("instagram account not found")
	// ErrAccountPrivate indicates the account exists but its media is not visible.
	ErrAccountPrivate = errors.New("instagram account is private")
	// ErrEmptyFeed indicates the resolved feed page has no items.
	ErrEmptyFeed = errors.New("feed has no items")
	// ErrLoginFailed indicates the session could not authenticate.
	ErrLoginFailed = errors.New("instagram login failed")
)
