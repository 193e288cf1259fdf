package answer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

//go:generate mockgen -source=client.go -destination=../mocks/answer/mock_asker.go -package=mock_answer Asker

// Asker submits one question and classifies the reply.
// This interface is implemented by *Client and can be used for testing.
type Asker interface {
	Ask(ctx context.Context, question string) Result
}

// Ensure Client implements Asker at compile time.
var _ Asker = (*Client)(nil)

// Client talks to the answering service HTTP API.
type Client struct {
	baseURL *url.URL
	http    *resty.Client
	timeout time.Duration
}

// Options configure a Client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration // zero leaves requests unbounded
	HTTPClient *http.Client
	UserAgent  string
}

const (
	defaultBaseURL   = "127.0.0.1:5000"
	defaultUserAgent = "karm/0.1"

	questionPath = "/api/question"
	healthPath   = "/"
)

// NewClient builds a Client for the given base URL.
func NewClient(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}
	if opts.Timeout < 0 {
		return nil, fmt.Errorf("timeout must not be negative: %s", opts.Timeout)
	}

	var rc *resty.Client
	if opts.HTTPClient != nil {
		rc = resty.NewWithClient(opts.HTTPClient)
	} else {
		rc = resty.New()
	}
	userAgent := strings.TrimSpace(opts.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	rc.SetBaseURL(base.String()).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", userAgent).
		SetRetryCount(0)

	return &Client{
		baseURL: base,
		http:    rc,
		timeout: opts.Timeout,
	}, nil
}

// BaseURL returns the normalized service URL.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// Ask posts the question to /api/question. It issues exactly one request and
// never retries.
func (c *Client) Ask(ctx context.Context, question string) Result {
	if c == nil {
		return TransportFailure(errors.New("client is nil"))
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(QuestionRequest{Question: question}).
		Post(questionPath)
	if err != nil {
		return TransportFailure(fmt.Errorf("execute request: %w", err))
	}
	if !resp.IsSuccess() {
		return TransportFailure(&StatusError{Path: questionPath, Code: resp.StatusCode()})
	}
	return classifyBody(resp.Body())
}

// Ping calls GET / and returns the service's status message.
func (c *Client) Ping(ctx context.Context) (string, error) {
	if c == nil {
		return "", errors.New("client is nil")
	}
	var payload HealthResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&payload).
		Get(healthPath)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	if !resp.IsSuccess() {
		return "", &StatusError{Path: healthPath, Code: resp.StatusCode()}
	}
	return payload.Message, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse base url %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
