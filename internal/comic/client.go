package comic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Source fetches comics. It is implemented by *Client and faked in tests.
type Source interface {
	FetchLatest(ctx context.Context) (Comic, error)
	FetchByID(ctx context.Context, id int) (Comic, error)
}

// Ensure Client implements Source at compile time.
var _ Source = (*Client)(nil)

// URLStyle selects how comic URLs are laid out under the base URL.
type URLStyle string

const (
	// StyleXKCD requests <base>/info.0.json and <base>/<id>/info.0.json.
	StyleXKCD URLStyle = "xkcd"
	// StylePath requests <base> and <base>/<id>.
	StylePath URLStyle = "path"
)

const (
	DefaultBaseURL   = "https://xkcd.com"
	defaultUserAgent = "strip/0.1"
	infoFile         = "info.0.json"
	maxBodyBytes     = 1 << 20
)

// Options configure a Client.
type Options struct {
	BaseURL   string
	Style     URLStyle
	Timeout   time.Duration // zero disables the client timeout
	UserAgent string
	HTTP      *http.Client // overrides Timeout when set
}

// Client talks to the comic JSON API.
type Client struct {
	baseURL   *url.URL
	style     URLStyle
	http      *http.Client
	userAgent string
}

// NewClient builds a Client for the given options.
func NewClient(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}
	style, err := ParseURLStyle(string(opts.Style))
	if err != nil {
		return nil, err
	}
	httpClient := opts.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	ua := strings.TrimSpace(opts.UserAgent)
	if ua == "" {
		ua = defaultUserAgent
	}
	return &Client{
		baseURL:   base,
		style:     style,
		http:      httpClient,
		userAgent: ua,
	}, nil
}

// ParseURLStyle normalizes a style name; empty selects StyleXKCD.
func ParseURLStyle(value string) (URLStyle, error) {
	switch URLStyle(strings.ToLower(strings.TrimSpace(value))) {
	case "", StyleXKCD:
		return StyleXKCD, nil
	case StylePath:
		return StylePath, nil
	default:
		return "", fmt.Errorf("unknown url style %q", value)
	}
}

// FetchLatest retrieves the most recently published comic.
func (c *Client) FetchLatest(ctx context.Context) (Comic, error) {
	if c == nil {
		return Comic{}, fmt.Errorf("client is nil")
	}
	return c.get(ctx, c.LatestURL())
}

// FetchByID retrieves the comic numbered id.
func (c *Client) FetchByID(ctx context.Context, id int) (Comic, error) {
	if c == nil {
		return Comic{}, fmt.Errorf("client is nil")
	}
	if id < 1 {
		return Comic{}, fmt.Errorf("fetch comic %d: %w", id, ErrInvalidID)
	}
	return c.get(ctx, c.ComicURL(id))
}

// LatestURL returns the endpoint for the latest comic.
func (c *Client) LatestURL() string {
	if c.style == StylePath {
		return c.baseURL.String()
	}
	return c.baseURL.JoinPath(infoFile).String()
}

// ComicURL returns the endpoint for comic id.
func (c *Client) ComicURL(id int) string {
	seg := strconv.Itoa(id)
	if c.style == StylePath {
		return c.baseURL.JoinPath(seg).String()
	}
	return c.baseURL.JoinPath(seg, infoFile).String()
}

func (c *Client) get(ctx context.Context, reqURL string) (Comic, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Comic{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return Comic{}, &NetworkError{URL: reqURL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return Comic{}, &NetworkError{
			URL:        reqURL,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	var payload Comic
	decoder := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes))
	if err := decoder.Decode(&payload); err != nil {
		return Comic{}, &ParseError{URL: reqURL, Err: err}
	}
	if err := payload.Validate(); err != nil {
		return Comic{}, &ParseError{URL: reqURL, Err: err}
	}
	return payload, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse base url %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
