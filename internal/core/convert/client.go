package convert

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// genericFailureDetail is shown when the service returns a failure body
// that does not match the expected {"detail": "..."} shape.
const genericFailureDetail = "conversion failed"

// ServiceError is a conversion failure reported by the service. Detail
// is the human-readable message to surface verbatim.
type ServiceError struct {
	StatusCode int
	Detail     string
}

func (e *ServiceError) Error() string { return e.Detail }

// Client submits conversion requests to the remote service. Each Submit
// issues exactly one request; there is no retry and no client-side
// cancellation beyond the passed context.
type Client struct {
	http *resty.Client
	log  zerolog.Logger
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetRetryCount(0)

	return &Client{http: http, log: log}
}

// Submit sends the request as a multipart form and maps the response to
// a Result. Any non-success response or transport failure is returned as
// an error; the caller's pending inputs are never touched here.
func (c *Client) Submit(ctx context.Context, req Request) (*Result, error) {
	r := c.http.R().
		SetContext(ctx).
		SetFile("epub", req.BookPath)

	if req.ClippingsPath != "" {
		r.SetFile("clippings", req.ClippingsPath)
	}
	if req.MergeFilePath != "" {
		r.SetFile("existing_markdown", req.MergeFilePath)
	}

	fields := map[string]string{}
	if req.NotesText != "" {
		fields["notes"] = req.NotesText
	}
	if req.MergeText != "" {
		fields["existing_markdown_text"] = req.MergeText
	}
	if len(fields) > 0 {
		r.SetMultipartFormData(fields)
	}

	start := time.Now()
	resp, err := r.Post("/api/convert")
	if err != nil {
		return nil, fmt.Errorf("submit conversion: %w", err)
	}

	c.log.Debug().
		Int("status", resp.StatusCode()).
		Dur("elapsed", time.Since(start)).
		Msg("conversion request completed")

	if resp.IsError() {
		return nil, parseServiceError(resp.StatusCode(), resp.Body())
	}

	var result Result
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("decode conversion response: %w", err)
	}
	if result.Markdown == "" && len(result.Chapters) == 0 {
		// A response with neither document text nor chapters is treated
		// as a full failure; partial results are never surfaced.
		return nil, &ServiceError{StatusCode: resp.StatusCode(), Detail: genericFailureDetail}
	}

	return &result, nil
}

func parseServiceError(status int, body []byte) *ServiceError {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return &ServiceError{StatusCode: status, Detail: payload.Detail}
	}
	return &ServiceError{StatusCode: status, Detail: genericFailureDetail}
}
