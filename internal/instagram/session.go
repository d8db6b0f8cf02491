package instagram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/igpeek/igpeek/internal/media"
)

const (
	apiBase   = "https://i.instagram.com/api/v1"
	userAgent = "Instagram 121.0.0.29.119 Android (26/8.0.0; 480dpi; 1080x1920; igpeek; igpeek; armeabi-v7a; en_US)"

	sessionCookieName = "sessionid"
	requestTimeout    = 30 * time.Second
)

// The private API tolerates very little traffic per session. One request
// every two seconds with a small burst keeps well under its limits.
var apiRate = rate.Every(2 * time.Second)

// Options configures session construction.
type Options struct {
	Username    string
	Password    string
	CookiesFile string
}

// Session is an authenticated handle to the private API. It is safe for
// concurrent use: the cookie jar is read-only after login and the limiter
// serializes request pacing.
type Session struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
	username   string
}

type storedCookie struct {
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Domain  string    `json:"domain"`
	Path    string    `json:"path"`
	Expires time.Time `json:"expires,omitempty"`
}

// newSession restores a persisted session from the cookies file or performs
// a fresh username/password login, persisting the resulting cookies.
func newSession(ctx context.Context, opts Options, log *slog.Logger) (*Session, error) {
	if log == nil {
		log = slog.Default()
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	s := &Session{
		httpClient: &http.Client{Jar: jar, Timeout: requestTimeout},
		limiter:    rate.NewLimiter(apiRate, 3),
		logger:     log.With(slog.String("component", "instagram")),
		username:   opts.Username,
	}

	restored := s.restoreCookies(opts.CookiesFile)
	if restored {
		s.logger.Debug("session restored from cookies", slog.String("file", opts.CookiesFile))
		return s, nil
	}

	if err := s.login(ctx, opts.Username, opts.Password); err != nil {
		return nil, err
	}
	if err := s.persistCookies(opts.CookiesFile); err != nil {
		s.logger.Warn("persist cookies failed", slog.String("file", opts.CookiesFile), slog.Any("error", err))
	}
	return s, nil
}

func (s *Session) restoreCookies(path string) bool {
	if path == "" {
		return false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	var stored []storedCookie
	if err := json.Unmarshal(data, &stored); err != nil {
		s.logger.Warn("cookies file unreadable", slog.String("file", path), slog.Any("error", err))
		return false
	}
	cookies := make([]*http.Cookie, 0, len(stored))
	hasSession := false
	for _, c := range stored {
		if c.Name == sessionCookieName && c.Value != "" {
			if !c.Expires.IsZero() && c.Expires.Before(time.Now()) {
				continue
			}
			hasSession = true
		}
		cookies = append(cookies, &http.Cookie{
			Name:    c.Name,
			Value:   c.Value,
			Domain:  c.Domain,
			Path:    c.Path,
			Expires: c.Expires,
		})
	}
	if !hasSession {
		return false
	}
	base, _ := url.Parse(apiBase)
	s.httpClient.Jar.SetCookies(base, cookies)
	return true
}

func (s *Session) persistCookies(path string) error {
	if path == "" {
		return nil
	}
	base, _ := url.Parse(apiBase)
	cookies := s.httpClient.Jar.Cookies(base)
	stored := make([]storedCookie, 0, len(cookies))
	for _, c := range cookies {
		stored = append(stored, storedCookie{
			Name:    c.Name,
			Value:   c.Value,
			Domain:  c.Domain,
			Path:    c.Path,
			Expires: c.Expires,
		})
	}
	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func (s *Session) login(ctx context.Context, username, password string) error {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)
	form.Set("device_id", "android-"+strings.ReplaceAll(uuid.NewString(), "-", "")[:16])
	form.Set("login_attempt_count", "0")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		apiBase+"/accounts/login/", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoginFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var e wireError
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if e.Message != "" {
			return fmt.Errorf("%w: %s", ErrLoginFailed, e.Message)
		}
		return fmt.Errorf("%w: status %d", ErrLoginFailed, resp.StatusCode)
	}

	s.logger.Info("logged in", slog.String("username", username))
	return nil
}

func (s *Session) get(ctx context.Context, apiPath string, query url.Values, out any) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	u := apiBase + apiPath
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var e wireError
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return mapAPIError(resp.StatusCode, e)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", apiPath, err)
	}
	return nil
}

// LookupUser performs an exact-match usernameinfo lookup.
func (s *Session) LookupUser(ctx context.Context, handle string) (Account, error) {
	var info wireUserInfo
	if err := s.get(ctx, "/users/"+url.PathEscape(handle)+"/usernameinfo/", nil, &info); err != nil {
		return Account{}, err
	}
	if info.User.Username == "" {
		return Account{}, ErrAccountNotFound
	}
	return info.User.toAccount(), nil
}

// SearchUsers performs a fuzzy user search, preserving the API's rank order.
func (s *Session) SearchUsers(ctx context.Context, query string) ([]Account, error) {
	q := url.Values{}
	q.Set("q", query)
	var result wireUserSearch
	if err := s.get(ctx, "/users/search/", q, &result); err != nil {
		return nil, err
	}
	accounts := make([]Account, 0, len(result.Users))
	for _, u := range result.Users {
		accounts = append(accounts, u.toAccount())
	}
	return accounts, nil
}

// UserFeed returns one page of the account's media, newest first. A private
// account that the session does not follow surfaces as ErrAccountPrivate.
func (s *Session) UserFeed(ctx context.Context, userID string) ([]media.Item, error) {
	var feed wireFeed
	if err := s.get(ctx, "/feed/user/"+url.PathEscape(userID)+"/", nil, &feed); err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			// The feed endpoint 404s for unknown ids; keep the taxonomy.
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return toItems(feed.Items), nil
}

// TagFeed returns one page of a hashtag's media.
func (s *Session) TagFeed(ctx context.Context, tag string) ([]media.Item, error) {
	var feed wireTagFeed
	if err := s.get(ctx, "/feed/tag/"+url.PathEscape(tag)+"/", nil, &feed); err != nil {
		return nil, err
	}
	items := feed.Items
	if len(items) == 0 {
		items = feed.RankedItems
	}
	return toItems(items), nil
}
