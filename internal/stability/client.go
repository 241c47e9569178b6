package stability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// ErrContentFiltered is returned when the service generated the artifact but
// its moderation layer rejected it. Distinct from transport failure: the HTTP
// status is a success and the signal travels in the finish-reason header.
var ErrContentFiltered = errors.New("generation rejected by content moderation")

// ErrPollTimeout is returned when a job stays in the processing state past
// the configured poll timeout.
var ErrPollTimeout = errors.New("timed out waiting for generation result")

// Client issues generation requests against the Stability REST API.
type Client struct {
	APIKey       string
	HTTPClient   *http.Client
	ResultsBase  string
	PollInterval time.Duration
	PollTimeout  time.Duration
}

// NewClient creates a client with the given bearer token. The zero poll
// settings match the service defaults (10s interval, 500s budget).
func NewClient(apiKey, resultsBase string) *Client {
	return &Client{
		APIKey:       apiKey,
		HTTPClient:   &http.Client{},
		ResultsBase:  resultsBase,
		PollInterval: 10 * time.Second,
		PollTimeout:  500 * time.Second,
	}
}

// Result is the raw outcome of a generation call. Callers decide whether the
// body is artifact bytes or JSON.
type Result struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// FinishReason reports the moderation verdict header, empty when absent.
func (r *Result) FinishReason() string {
	return r.Header.Get("finish-reason")
}

// CheckModeration returns ErrContentFiltered when the moderation header marks
// the artifact as filtered. Every image-producing mode must call this even on
// HTTP success.
func (r *Result) CheckModeration() error {
	if r.FinishReason() == "CONTENT_FILTERED" {
		return ErrContentFiltered
	}
	return nil
}

// Do sends a synchronous multipart POST to endpoint and returns the raw
// response. Any non-success status is an error carrying the code and body.
func (c *Client) Do(ctx context.Context, endpoint string, genReq *Request, accept string) (*Result, error) {
	slog.Info("Sending generation request", "endpoint", endpoint)

	res, err := c.post(ctx, endpoint, genReq, accept)
	if err != nil {
		return nil, err
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("generation request failed: HTTP %d: %s", res.StatusCode, string(res.Body))
	}

	return res, nil
}

// jobEnvelope is the JSON body returned by asynchronous endpoints.
type jobEnvelope struct {
	ID string `json:"id"`
}

// DoAsync submits a job to an asynchronous endpoint and polls the shared
// results endpoint until the service reports something other than
// "still processing", or the poll budget runs out.
func (c *Client) DoAsync(ctx context.Context, endpoint string, genReq *Request) (*Result, error) {
	slog.Info("Sending asynchronous generation request", "endpoint", endpoint)

	id, err := c.SubmitJob(ctx, endpoint, genReq)
	if err != nil {
		return nil, err
	}

	return c.poll(ctx, c.ResultsBase+"/"+id, "*/*")
}

// PollVideo polls a per-job video result URL until the video is ready. The
// video endpoint uses its own result URL shape and Accept header, so it gets
// its own entry point; the wait loop is shared with DoAsync.
func (c *Client) PollVideo(ctx context.Context, resultURL string) (*Result, error) {
	return c.poll(ctx, resultURL, "video/*")
}

// SubmitJob sends the multipart POST for an asynchronous mode and returns the
// issued job id without polling. Video generation uses this to build its
// per-job result URL.
func (c *Client) SubmitJob(ctx context.Context, endpoint string, genReq *Request) (string, error) {
	res, err := c.post(ctx, endpoint, genReq, "application/json")
	if err != nil {
		return "", err
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", fmt.Errorf("generation request failed: HTTP %d: %s", res.StatusCode, string(res.Body))
	}

	var job jobEnvelope
	if err := json.Unmarshal(res.Body, &job); err != nil {
		return "", fmt.Errorf("failed to decode job submission response: %w", err)
	}
	if job.ID == "" {
		return "", fmt.Errorf("expected a job id in the submission response")
	}

	return job.ID, nil
}

// poll issues status GETs at the fixed interval until the service returns
// something other than 202, or the timeout budget elapses. No backoff,
// no jitter.
func (c *Client) poll(ctx context.Context, url, accept string) (*Result, error) {
	start := time.Now()
	for {
		slog.Info("Polling generation result", "url", url)

		res, err := c.get(ctx, url, accept)
		if err != nil {
			return nil, err
		}
		if res.StatusCode != http.StatusAccepted {
			if res.StatusCode < 200 || res.StatusCode > 299 {
				return nil, fmt.Errorf("polling failed: HTTP %d: %s", res.StatusCode, string(res.Body))
			}
			return res, nil
		}

		if time.Since(start) > c.PollTimeout {
			return nil, fmt.Errorf("%w after %s", ErrPollTimeout, c.PollTimeout)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.PollInterval):
		}
	}
}

func (c *Client) post(ctx context.Context, endpoint string, genReq *Request, accept string) (*Result, error) {
	body, contentType, err := genReq.encode()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", accept)

	return c.roundTrip(req)
}

func (c *Client) get(ctx context.Context, url, accept string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Accept", accept)

	return c.roundTrip(req)
}

func (c *Client) roundTrip(req *http.Request) (*Result, error) {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Result{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}
