package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/battlecard/internal/card"
)

// Endpoint paths relative to the base URL.
const (
	EndpointCard    = "/card"
	EndpointStats   = "/stats"
	EndpointRoadmap = "/roadmap"
	EndpointReview  = "/review"
)

// maxBody bounds how much of a response we read.
const maxBody = 4 << 20

// Client is the backend the player consumes.
type Client interface {
	// NextCard returns the next due card, ErrNotReady when none is ready,
	// or an *UnavailableError. A non-empty topic asks for that topic's card;
	// the backend falls back to its own pick when the topic is unknown.
	NextCard(ctx context.Context, topic string) (*card.Card, error)
	Stats(ctx context.Context) (*card.Stats, error)
	Roadmap(ctx context.Context) ([]card.RoadmapItem, error)
	// SubmitReview posts a rating; failures are *SubmitError.
	SubmitReview(ctx context.Context, review card.Review) error
}

// HTTPClient talks JSON over HTTP to the card backend.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

var _ Client = (*HTTPClient)(nil)

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.http.Timeout = d }
}

// NewHTTPClient creates a client for the backend at baseURL.
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *HTTPClient) NextCard(ctx context.Context, topic string) (*card.Card, error) {
	path := EndpointCard
	if topic != "" {
		path += "?" + url.Values{"topic": {topic}}.Encode()
	}
	body, status, err := c.get(ctx, path)
	if err != nil {
		return nil, &UnavailableError{Endpoint: EndpointCard, Err: err}
	}
	if status == http.StatusNotFound {
		return nil, ErrNotReady
	}
	if status != http.StatusOK {
		return nil, &UnavailableError{Endpoint: EndpointCard, Status: status, Err: errors.New(snippet(body))}
	}

	c2, err := card.Decode(body)
	if err != nil {
		return nil, &UnavailableError{Endpoint: EndpointCard, Status: status, Err: err}
	}
	return c2, nil
}

func (c *HTTPClient) Stats(ctx context.Context) (*card.Stats, error) {
	var stats card.Stats
	if err := c.getJSON(ctx, EndpointStats, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *HTTPClient) Roadmap(ctx context.Context) ([]card.RoadmapItem, error) {
	var items []card.RoadmapItem
	if err := c.getJSON(ctx, EndpointRoadmap, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *HTTPClient) SubmitReview(ctx context.Context, review card.Review) error {
	payload, err := json.Marshal(review)
	if err != nil {
		return &SubmitError{Err: fmt.Errorf("encode review: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+EndpointReview, bytes.NewReader(payload))
	if err != nil {
		return &SubmitError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &SubmitError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	// The acknowledgement body carries nothing we use.
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &SubmitError{Status: resp.StatusCode, Err: errors.New(snippet(body))}
	}
	return nil
}

func (c *HTTPClient) getJSON(ctx context.Context, endpoint string, v any) error {
	body, status, err := c.get(ctx, endpoint)
	if err != nil {
		return &UnavailableError{Endpoint: endpoint, Err: err}
	}
	if status != http.StatusOK {
		return &UnavailableError{Endpoint: endpoint, Status: status, Err: errors.New(snippet(body))}
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &UnavailableError{Endpoint: endpoint, Status: status, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}

func (c *HTTPClient) get(ctx context.Context, endpoint string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read body: %w", err)
	}
	return body, resp.StatusCode, nil
}

// snippet shortens a response body for error messages.
func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if s == "" {
		return "empty response"
	}
	return ansi.Truncate(s, 200, "...")
}
