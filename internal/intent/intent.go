// Package intent parses free-text media requests into a typed intent.
package intent

import (
	"errors"
	"regexp"
	"strings"
)

// Selection controls which feed item a command picks.
type Selection string

const (
	SelectionLatest Selection = "latest"
	SelectionRandom Selection = "random"
)

var (
	// ErrNoIntent indicates the input contains neither a username nor a hashtag.
	ErrNoIntent = errors.New("no user or hashtag in input")
	// ErrAmbiguousIntent indicates the input contains both a username and a hashtag.
	ErrAmbiguousIntent = errors.New("both user and hashtag in input")
)

// Intent is a parsed media request. Exactly one of Handle and Tag is set.
type Intent struct {
	Handle    string
	Tag       string
	Selection Selection
}

// IsUser reports whether the intent targets a user's feed.
func (i Intent) IsUser() bool {
	return i.Handle != ""
}

const maxHandleLen = 30

// Instagram usernames: letters, digits and underscores, with single
// non-consecutive interior dots. RE2 has no lookahead, so the "no trailing
// or doubled dot" rule is expressed by requiring a word character after
// every dot; length is checked after the match.
var (
	handlePattern  = regexp.MustCompile(`@([A-Za-z0-9_](?:\.?[A-Za-z0-9_])*)`)
	hashtagPattern = regexp.MustCompile(`#(\w+)`)
)

// Parse extracts an Intent from raw text. The input must contain exactly one
// of an @username or a #hashtag token; anything else fails before any
// network call happens.
func Parse(raw string) (Intent, error) {
	trimmed := strings.TrimSpace(raw)

	sel := SelectionRandom
	if strings.HasPrefix(trimmed, string(SelectionLatest)) {
		sel = SelectionLatest
	}

	handle := parseHandle(trimmed)
	tag := parseHashtag(trimmed)

	switch {
	case handle == "" && tag == "":
		return Intent{}, ErrNoIntent
	case handle != "" && tag != "":
		return Intent{}, ErrAmbiguousIntent
	}

	return Intent{Handle: handle, Tag: tag, Selection: sel}, nil
}

func parseHandle(s string) string {
	m := handlePattern.FindStringSubmatch(s)
	if m == nil || len(m[1]) > maxHandleLen {
		return ""
	}
	return m[1]
}

func parseHashtag(s string) string {
	m := hashtagPattern.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return m[1]
}
