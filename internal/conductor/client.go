package conductor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// Response is the status and raw body of one round trip
type Response struct {
	Status int
	Body   string
}

// OK reports whether the status is in [200, 300)
func (r Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Result returns the raw body for a 2xx status and nothing otherwise
func (r Response) Result() (string, bool) {
	if !r.OK() {
		return "", false
	}
	return r.Body, true
}

// Client dispatches requests to a Conductor server and traces every round
// trip to its output.
type Client struct {
	config      Config
	httpClient  *http.Client
	out         io.Writer
	logger      *slog.Logger
	spinnerFile *os.File
}

// Option configures a Client
type Option func(*Client)

// WithOutput sets where the request/response trace is written (default stdout)
func WithOutput(w io.Writer) Option {
	return func(c *Client) { c.out = w }
}

// WithLogger sets the diagnostics logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithSpinner shows a waiting indicator on f while a request is in flight.
// The spinner stays silent when f is not a terminal.
func WithSpinner(f *os.File) Option {
	return func(c *Client) { c.spinnerFile = f }
}

// NewClient creates a client for the configured server
func NewClient(cfg Config, opts ...Option) *Client {
	c := &Client{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		out:    os.Stdout,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Config returns the configuration the client was created with
func (c *Client) Config() Config {
	return c.config
}

// Run looks up an operation by name, builds its request and sends it
func (c *Client) Run(ctx context.Context, name string, p Params) (Response, error) {
	op, err := Lookup(name)
	if err != nil {
		return Response{}, err
	}
	req, err := op.Request(p)
	if err != nil {
		return Response{}, err
	}
	return c.Send(ctx, req)
}

// Send performs one round trip. The request and the response are traced
// whatever the status; only transport failures are returned as errors.
func (c *Client) Send(ctx context.Context, r Request) (Response, error) {
	req, err := BuildRequest(ctx, c.config, r)
	if err != nil {
		return Response{}, err
	}

	target := r.URL(c.config)
	traceRequest(c.out, r.Method, target, r.payload())
	c.logger.Debug("sending request", "method", r.Method, "url", target)

	stop := c.startSpinner()
	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(startTime)
	stop()
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = target
		}
		return Response{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("failed to read response body: %w", err)
	}

	result := Response{Status: resp.StatusCode, Body: string(data)}
	traceResponse(c.out, c.config.Host, result)
	c.logger.Debug("received response",
		"status", result.Status,
		"bytes", len(data),
		"elapsed", elapsed.Round(time.Millisecond))

	return result, nil
}

func (c *Client) startSpinner() func() {
	if c.spinnerFile == nil {
		return func() {}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriterFile(c.spinnerFile))
	s.Suffix = " Waiting for Conductor Server..."
	s.Start()
	return s.Stop
}
