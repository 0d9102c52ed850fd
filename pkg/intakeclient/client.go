package intakeclient

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
)

// DefaultTimeout bounds every submission request.
const DefaultTimeout = 15 * time.Second

// Poster sends a JSON payload to an intake endpoint.
type Poster interface {
	PostJSON(ctx context.Context, path string, payload any) (*Response, error)
}

// Response is the decoded intake envelope. Only one of the id fields is set, depending on the
// endpoint.
type Response struct {
	StatusCode     int    `json:"-"`
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	SubmissionID   string `json:"submissionId,omitempty"`
	InquiryID      string `json:"inquiryId,omitempty"`
	SubscriptionID string `json:"subscriptionId,omitempty"`
}

// ID returns whichever record identifier the endpoint returned.
func (r *Response) ID() string {
	switch {
	case r == nil:
		return ""
	case r.SubmissionID != "":
		return r.SubmissionID
	case r.InquiryID != "":
		return r.InquiryID
	default:
		return r.SubscriptionID
	}
}

// StatusError reports a non-2xx answer from the API.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("intake api returned %d", e.StatusCode)
	}
	return fmt.Sprintf("intake api returned %d: %s", e.StatusCode, e.Message)
}

// Client posts JSON payloads to the intake API.
type Client struct {
	client  *http.Client
	baseURL string
}

// NewClient builds a client for baseURL. A nil http client gets DefaultTimeout.
func NewClient(client *http.Client, baseURL string) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("intake api base url must not be empty")
	}
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{client: client, baseURL: baseURL}, nil
}

// PostJSON posts the payload and decodes the envelope. Non-2xx answers return the decoded
// response together with a *StatusError.
func (c *Client) PostJSON(ctx context.Context, path string, payload any) (*Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create intake request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("intake request failed: %w", err)
	}
	defer resp.Body.Close()

	out := &Response{StatusCode: resp.StatusCode}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(out); err != nil && err != io.EOF {
		if resp.StatusCode >= 300 {
			return out, &StatusError{StatusCode: resp.StatusCode}
		}
		return nil, fmt.Errorf("could not decode intake response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return out, &StatusError{StatusCode: resp.StatusCode, Message: out.Message}
	}
	return out, nil
}

var _ Poster = (*Client)(nil)
