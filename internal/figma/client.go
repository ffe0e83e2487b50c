package figma

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the root of the Figma REST API.
const DefaultBaseURL = "https://api.figma.com"

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "AcademyFrames/1.0"

// Error represents an error talking to the Figma API.
type Error struct {
	URL        string
	Message    string
	StatusCode int
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("figma error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("figma error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the client.
type Options struct {
	Token      string
	BaseURL    string
	Timeout    time.Duration
	UserAgent  string
	HTTPClient *http.Client
}

// DefaultOptions returns sensible defaults for the given access token.
func DefaultOptions(token string) *Options {
	return &Options{
		Token:     token,
		BaseURL:   DefaultBaseURL,
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// FileOptions narrows what GET /v1/files/:key returns.
type FileOptions struct {
	// Depth limits how deep into the tree to traverse; 0 means the full tree.
	Depth int
	// IDs restricts the response to the given nodes and their ancestors.
	IDs []string
}

// Source returns the raw JSON of a Figma file.
type Source interface {
	FileJSON(ctx context.Context, key string, opts FileOptions) ([]byte, error)
}

// Client fetches files from the Figma REST API.
type Client struct {
	opts *Options
	http *http.Client
}

// NewClient creates a client. A nil opts uses defaults with no token.
func NewClient(opts *Options) *Client {
	if opts == nil {
		opts = DefaultOptions("")
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{opts: opts, http: httpClient}
}

// FileURL builds the endpoint for a file key.
func (c *Client) FileURL(key string, opts FileOptions) string {
	u := strings.TrimRight(c.opts.BaseURL, "/") + "/v1/files/" + url.PathEscape(key)
	q := url.Values{}
	if opts.Depth > 0 {
		q.Set("depth", strconv.Itoa(opts.Depth))
	}
	if len(opts.IDs) > 0 {
		q.Set("ids", strings.Join(opts.IDs, ","))
	}
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

// FileJSON retrieves the raw JSON of a file.
func (c *Client) FileJSON(ctx context.Context, key string, opts FileOptions) ([]byte, error) {
	endpoint := c.FileURL(key, opts)

	if strings.TrimSpace(key) == "" {
		return nil, &Error{URL: endpoint, Message: "file key is empty"}
	}
	if c.opts.Token == "" {
		return nil, &Error{URL: endpoint, Message: "access token is not set (FIGMA_API_KEY)"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &Error{
			URL:     endpoint,
			Message: "failed to create request",
			Cause:   err,
		}
	}
	req.Header.Set("X-Figma-Token", c.opts.Token)
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{
			URL:     endpoint,
			Message: "HTTP request failed",
			Cause:   err,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{
			URL:        endpoint,
			Message:    "failed to read response body",
			StatusCode: resp.StatusCode,
			Cause:      err,
		}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{
			URL:        endpoint,
			Message:    fmt.Sprintf("HTTP status %d: %s", resp.StatusCode, snippet(body)),
			StatusCode: resp.StatusCode,
		}
	}

	return body, nil
}

// File retrieves and parses a file.
func (c *Client) File(ctx context.Context, key string, opts FileOptions) (*Document, error) {
	return FetchDocument(ctx, c, key, opts)
}

// FetchDocument retrieves a file from any Source and parses it.
func FetchDocument(ctx context.Context, src Source, key string, opts FileOptions) (*Document, error) {
	body, err := src.FileJSON(ctx, key, opts)
	if err != nil {
		return nil, err
	}
	return ParseDocument(bytes.NewReader(body))
}

func snippet(body []byte) string {
	const maxLen = 200
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	return s
}
