// Package grammar checks prose against a remote grammar correction
// service.
package grammar

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"time"

	"github.com/sethvargo/go-retry"
)

// DefaultEndpoint is the Sapling edits API.
const DefaultEndpoint = "https://api.sapling.ai/api/v1/edits"

// CredentialEnv names the environment variable holding the API key.
const CredentialEnv = "SAPLING_API_KEY"

const (
	defaultTimeout = 30 * time.Second
	defaultBackoff = 500 * time.Millisecond
	maxRetries     = 2
	sessionID      = "checkmark"
)

var (
	// ErrMissingCredential is returned when no API key is configured.
	ErrMissingCredential = errors.New("grammar service credential is missing")

	// ErrService marks a failed request to the grammar service.
	ErrService = errors.New("grammar service error")
)

// Client returns a corrected version of text, or false when text needs no
// change.
type Client interface {
	Suggest(ctx context.Context, text string) (string, bool, error)
}

// ClientOptions configure a SaplingClient.
type ClientOptions struct {
	Endpoint   string
	Key        string
	Timeout    time.Duration
	Backoff    time.Duration
	HTTPClient *http.Client
}

// SaplingClient talks to a Sapling-compatible edits endpoint.
type SaplingClient struct {
	endpoint string
	key      string
	backoff  time.Duration
	http     *http.Client
}

// NewSaplingClient creates a client. An empty key yields
// ErrMissingCredential.
func NewSaplingClient(opts ClientOptions) (*SaplingClient, error) {
	if opts.Key == "" {
		return nil, ErrMissingCredential
	}

	c := &SaplingClient{
		endpoint: opts.Endpoint,
		key:      opts.Key,
		backoff:  opts.Backoff,
		http:     opts.HTTPClient,
	}
	if c.endpoint == "" {
		c.endpoint = DefaultEndpoint
	}
	if c.backoff <= 0 {
		c.backoff = defaultBackoff
	}
	if c.http == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		c.http = &http.Client{Timeout: timeout}
	}
	return c, nil
}

type editsRequest struct {
	Key       string `json:"key"`
	Text      string `json:"text"`
	SessionID string `json:"session_id"`
}

// Edit is one correction. Offsets are byte offsets into the sentence,
// which starts at SentenceStart in the submitted text.
type Edit struct {
	Start         int    `json:"start"`
	End           int    `json:"end"`
	Replacement   string `json:"replacement"`
	Sentence      string `json:"sentence"`
	SentenceStart int    `json:"sentence_start"`
}

type editsResponse struct {
	Edits []Edit `json:"edits"`
}

// Suggest posts text and applies the returned edits.
func (c *SaplingClient) Suggest(ctx context.Context, text string) (string, bool, error) {
	edits, err := c.Edits(ctx, text)
	if err != nil {
		return "", false, err
	}
	if len(edits) == 0 {
		return "", false, nil
	}
	return ApplyEdits(text, edits), true, nil
}

// Edits posts text and returns the raw edits. 429 and 5xx responses are
// retried.
func (c *SaplingClient) Edits(ctx context.Context, text string) ([]Edit, error) {
	body, err := json.Marshal(editsRequest{Key: c.key, Text: text, SessionID: sessionID})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	var parsed editsResponse
	backoff := retry.WithMaxRetries(maxRetries, retry.NewExponential(c.backoff))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		status, payload, err := c.post(ctx, body)
		if err != nil {
			return retry.RetryableError(err)
		}

		switch {
		case status == http.StatusTooManyRequests || status >= http.StatusInternalServerError:
			return retry.RetryableError(fmt.Errorf("%w: status %d", ErrService, status))
		case status >= http.StatusBadRequest:
			return fmt.Errorf("%w: status %d: %s", ErrService, status, bytes.TrimSpace(payload))
		}

		if err := json.Unmarshal(payload, &parsed); err != nil {
			return fmt.Errorf("%w: decode response: %w", ErrService, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return parsed.Edits, nil
}

func (c *SaplingClient) post(ctx context.Context, body []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %w", ErrService, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: read response: %w", ErrService, err)
	}
	return resp.StatusCode, payload, nil
}

// ApplyEdits returns text with edits applied. Edits that fall outside text
// or overlap an earlier edit are ignored.
func ApplyEdits(text string, edits []Edit) string {
	type absolute struct {
		start, end  int
		replacement string
	}

	abs := make([]absolute, 0, len(edits))
	for _, e := range edits {
		start, end := e.SentenceStart+e.Start, e.SentenceStart+e.End
		if start < 0 || end < start || end > len(text) {
			continue
		}
		abs = append(abs, absolute{start: start, end: end, replacement: e.Replacement})
	}
	slices.SortStableFunc(abs, func(a, b absolute) int { return a.start - b.start })

	var out bytes.Buffer
	cursor := 0
	for _, e := range abs {
		if e.start < cursor {
			continue
		}
		out.WriteString(text[cursor:e.start])
		out.WriteString(e.replacement)
		cursor = e.end
	}
	out.WriteString(text[cursor:])
	return out.String()
}
