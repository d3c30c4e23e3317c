package diagram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// IDPrefix starts every render target identifier.
const IDPrefix = "mermaid-svg-"

// Renderer turns diagram source into SVG markup.
type Renderer interface {
	Render(ctx context.Context, id, source string) (string, error)
}

// RenderError carries the renderer's diagnostic.
type RenderError struct {
	Message string
	Err     error
}

func (e *RenderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *RenderError) Unwrap() error { return e.Err }

// NewID returns a fresh render target identifier.
func NewID() string {
	return IDPrefix + uuid.NewString()
}

// KrokiRenderer renders mermaid through a Kroki-compatible HTTP service.
type KrokiRenderer struct {
	baseURL string
	http    *http.Client
}

var _ Renderer = (*KrokiRenderer)(nil)

// NewKrokiRenderer creates a renderer for the service at baseURL.
func NewKrokiRenderer(baseURL string, timeout time.Duration) *KrokiRenderer {
	return &KrokiRenderer{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (k *KrokiRenderer) Render(ctx context.Context, id, source string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, k.baseURL+"/mermaid/svg", strings.NewReader(source))
	if err != nil {
		return "", &RenderError{Message: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("Accept", "image/svg+xml")
	req.Header.Set("X-Render-Id", id)

	resp, err := k.http.Do(req)
	if err != nil {
		return "", &RenderError{Message: "renderer unreachable", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return "", &RenderError{Message: "read response", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return "", &RenderError{Message: msg}
	}
	svg := string(body)
	if !strings.Contains(svg, "<svg") {
		return "", &RenderError{Message: "renderer returned no SVG markup"}
	}
	return svg, nil
}

// Sink stores rendered markup somewhere the user can open it.
type Sink interface {
	Write(id, svg string) (string, error)
}

// FileSink writes <dir>/<id>.svg.
type FileSink struct {
	Dir string
}

func (f FileSink) Write(id, svg string) (string, error) {
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(f.Dir, id+".svg")
	if err := os.WriteFile(path, []byte(svg), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// Result is the outcome of one render.
type Result struct {
	ID   string
	SVG  string
	Path string
	Err  error
}

// Render runs r for the given target and stores the markup in sink (which
// may be nil). A sink failure leaves Path empty but keeps the render.
func Render(ctx context.Context, r Renderer, sink Sink, id, source string) Result {
	if r == nil {
		return Result{ID: id, Err: &RenderError{Message: "no diagram renderer configured"}}
	}
	svg, err := r.Render(ctx, id, source)
	if err != nil {
		var re *RenderError
		if !errors.As(err, &re) {
			err = &RenderError{Message: "render failed", Err: err}
		}
		return Result{ID: id, Err: err}
	}
	res := Result{ID: id, SVG: svg}
	if sink != nil {
		if path, err := sink.Write(id, svg); err == nil {
			res.Path = path
		}
	}
	return res
}
