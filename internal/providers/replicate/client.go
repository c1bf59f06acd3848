package replicate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ErrMissingAPIToken indicates that the client was configured without credentials.
var ErrMissingAPIToken = errors.New("replicate: api token is required")

// RequestError carries the provider's verbatim response for a call it refused.
type RequestError struct {
	Op         string
	StatusCode int
	Details    string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("replicate: %s: status %d: %s", e.Op, e.StatusCode, e.Details)
}

// Options configures the Replicate predictions client.
type Options struct {
	APIToken       string
	BaseURL        string
	HTTPClient     *http.Client
	Logger         *zerolog.Logger
	RequestTimeout time.Duration
}

// Client performs HTTP calls against the Replicate predictions API. It holds
// no job state: the provider is the system of record, and the client never
// retries on its behalf.
type Client struct {
	apiToken   string
	baseURL    string
	httpClient *http.Client
	logger     *zerolog.Logger
}

// PredictionSpec is a provider job specification: a model version hash plus
// its model-specific input payload.
type PredictionSpec struct {
	Version string         `json:"version"`
	Input   map[string]any `json:"input"`
}

// Prediction is the provider's view of a job. Output stays raw JSON because
// its shape depends on the model: video models return a scalar URL, image
// models a sequence of frame URLs, language models a sequence of text chunks.
type Prediction struct {
	ID          string          `json:"id"`
	Status      string          `json:"status"`
	Output      json.RawMessage `json:"output"`
	Error       string          `json:"error"`
	CompletedAt string          `json:"completed_at"`
}

// NewClient constructs a client with sane defaults and injected dependencies.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.replicate.com/v1"
	}
	logger := opts.Logger
	if logger == nil {
		discard := zerolog.New(io.Discard)
		logger = &discard
	}
	return &Client{
		apiToken:   strings.TrimSpace(opts.APIToken),
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// HasCredentials reports whether the client can perform remote calls.
func (c *Client) HasCredentials() bool {
	return c.apiToken != ""
}

// Create submits one prediction and returns the provider's acknowledgment.
// Anything other than a 201 acknowledgment is a rejection; the response body
// is passed through verbatim for diagnosability. There is no retry.
func (c *Client) Create(ctx context.Context, spec PredictionSpec) (*Prediction, error) {
	if !c.HasCredentials() {
		return nil, ErrMissingAPIToken
	}
	body, err := json.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("replicate: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predictions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("replicate: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Token "+c.apiToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("replicate: create prediction: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("replicate: read response: %w", err)
	}
	if resp.StatusCode != http.StatusCreated {
		return nil, &RequestError{Op: "create", StatusCode: resp.StatusCode, Details: strings.TrimSpace(string(raw))}
	}

	var prediction Prediction
	if err := json.Unmarshal(raw, &prediction); err != nil {
		return nil, fmt.Errorf("replicate: decode response: %w", err)
	}
	c.logger.Debug().
		Str("prediction_id", prediction.ID).
		Str("version", spec.Version).
		Msg("replicate: prediction created")
	return &prediction, nil
}

// Get fetches the current state of one prediction. The caller owns polling
// cadence; every call is a fresh round trip with nothing cached in between.
func (c *Client) Get(ctx context.Context, id string) (*Prediction, error) {
	if !c.HasCredentials() {
		return nil, ErrMissingAPIToken
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/predictions/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("replicate: build request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.apiToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("replicate: fetch prediction: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("replicate: read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return nil, &RequestError{Op: "get", StatusCode: resp.StatusCode, Details: strings.TrimSpace(string(raw))}
	}

	var prediction Prediction
	if err := json.Unmarshal(raw, &prediction); err != nil {
		return nil, fmt.Errorf("replicate: decode response: %w", err)
	}
	return &prediction, nil
}
