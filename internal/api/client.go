package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/net/publicsuffix"
)

const (
	DefaultTimeout = 10 * time.Second

	SessionCookie = "sessionid"
	CSRFCookie    = "csrftoken"
	CSRFHeader    = "X-CSRFToken"

	headerRequestID = "X-Request-Id"
)

// SessionStore persists the cookies that make up a session and forgets them
// on a forced logout.
type SessionStore interface {
	SaveCookies(ctx context.Context, sessionID, csrfToken string) error
	Clear(ctx context.Context) error
}

// LoginRedirector receives the hard redirect to the login boundary.
type LoginRedirector interface {
	RedirectToLogin(loginURL string)
}

// TokenStore yields the current anti-forgery token.
type TokenStore interface {
	CSRFToken() string
}

type Options struct {
	BaseURL  string
	LoginURL string
	// Timeout defaults to DefaultTimeout.
	Timeout    time.Duration
	Session    SessionStore
	Redirector LoginRedirector
	Logger     *zap.Logger
	// Transport overrides the default round tripper.
	Transport http.RoundTripper
}

// Client is the typed gateway to the interview backend.
type Client struct {
	base     *url.URL
	root     *url.URL
	http     *http.Client
	jar      http.CookieJar
	tokens   TokenStore
	session  SessionStore
	redirect LoginRedirector
	loginURL string
	logger   *zap.Logger

	mu         sync.Mutex
	lastSessID string
	lastCSRF   string
}

func New(opts Options) (*Client, error) {
	raw := strings.TrimSpace(opts.BaseURL)
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url: %q", opts.BaseURL)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	root := &url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/"}

	return &Client{
		base:     u,
		root:     root,
		http:     &http.Client{Timeout: timeout, Jar: jar, Transport: opts.Transport},
		jar:      jar,
		tokens:   &CookieTokenStore{jar: jar, url: root},
		session:  opts.Session,
		redirect: opts.Redirector,
		loginURL: opts.LoginURL,
		logger:   logger,
	}, nil
}

// CookieTokenStore reads the anti-forgery token from the cookie jar.
type CookieTokenStore struct {
	jar http.CookieJar
	url *url.URL
}

func (s *CookieTokenStore) CSRFToken() string {
	return cookieValue(s.jar, s.url, CSRFCookie)
}

func cookieValue(jar http.CookieJar, u *url.URL, name string) string {
	for _, c := range jar.Cookies(u) {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

// Restore seeds the cookie jar from a persisted session.
func (c *Client) Restore(sessionID, csrfToken string) {
	var cookies []*http.Cookie
	if sessionID != "" {
		cookies = append(cookies, &http.Cookie{Name: SessionCookie, Value: sessionID, Path: "/"})
	}
	if csrfToken != "" {
		cookies = append(cookies, &http.Cookie{Name: CSRFCookie, Value: csrfToken, Path: "/"})
	}
	if len(cookies) > 0 {
		c.jar.SetCookies(c.root, cookies)
	}
	c.mu.Lock()
	c.lastSessID, c.lastCSRF = sessionID, csrfToken
	c.mu.Unlock()
}

// CSRFToken exposes the token currently attached to requests.
func (c *Client) CSRFToken() string {
	return c.tokens.CSRFToken()
}

// SessionID returns the session cookie currently held, if any.
func (c *Client) SessionID() string {
	return cookieValue(c.jar, c.root, SessionCookie)
}

type request struct {
	method      string
	ref         string
	fromRoot    bool
	query       url.Values
	body        io.Reader
	contentType string
}

func (c *Client) resolve(r request) string {
	base := c.base
	if r.fromRoot {
		base = c.root
	}
	u := base.ResolveReference(&url.URL{Path: r.ref})
	if len(r.query) > 0 {
		u.RawQuery = r.query.Encode()
	}
	return u.String()
}

func jsonBody(v any) (io.Reader, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("json marshal request: %w", err)
	}
	return bytes.NewReader(b), nil
}

// do runs one request through the shared pipeline: headers, central 401
// handling, error classification and cookie persistence.
func (c *Client) do(ctx context.Context, r request, out any) error {
	target := c.resolve(r)
	req, err := http.NewRequestWithContext(ctx, r.method, target, r.body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	rid := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set(headerRequestID, rid)
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if tok := c.tokens.CSRFToken(); tok != "" {
		req.Header.Set(CSRFHeader, tok)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Sugar().Warnw("api request failed", "method", r.method, "url", target, "request_id", rid, "err", err)
		return &GenericError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &GenericError{Status: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	c.logger.Sugar().Debugw("api", "method", r.method, "url", target, "status", resp.StatusCode,
		"duration", time.Since(start), "request_id", rid)

	c.persistCookies(ctx)

	if isUnauthorized(resp.StatusCode) {
		c.forceLogout(ctx)
		return &AuthError{LoginURL: c.loginURL}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := decodeError(resp.StatusCode, body)
		c.logger.Sugar().Warnw("api error", "method", r.method, "url", target, "status", resp.StatusCode,
			"request_id", rid, "err", apiErr)
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", r.method, r.ref, err)
	}
	return nil
}

// persistCookies writes the session cookies back to storage when the server
// rotated them.
func (c *Client) persistCookies(ctx context.Context) {
	if c.session == nil {
		return
	}
	sess := cookieValue(c.jar, c.root, SessionCookie)
	csrf := cookieValue(c.jar, c.root, CSRFCookie)

	c.mu.Lock()
	changed := sess != c.lastSessID || csrf != c.lastCSRF
	c.lastSessID, c.lastCSRF = sess, csrf
	c.mu.Unlock()

	if !changed {
		return
	}
	if err := c.session.SaveCookies(ctx, sess, csrf); err != nil {
		c.logger.Sugar().Warnw("failed to persist session cookies", "err", err)
	}
}

// forceLogout drops every trace of the session and signals the redirect.
func (c *Client) forceLogout(ctx context.Context) {
	c.jar.SetCookies(c.root, []*http.Cookie{{Name: SessionCookie, Path: "/", MaxAge: -1}})
	c.mu.Lock()
	c.lastSessID = ""
	c.mu.Unlock()

	if c.session != nil {
		if err := c.session.Clear(ctx); err != nil {
			c.logger.Sugar().Errorw("failed to clear session", "err", err)
		}
	}
	c.logger.Sugar().Infow("session rejected, redirecting to login", "login_url", c.loginURL)
	if c.redirect != nil {
		c.redirect.RedirectToLogin(c.loginURL)
	}
}
