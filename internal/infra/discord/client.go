package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds one webhook POST.
const DefaultTimeout = 30 * time.Second

// maxErrorBody caps how much of an error response is kept for the log detail.
const maxErrorBody = 512

// Response is what came back from the webhook.
type Response struct {
	StatusCode int
	// Message is Discord's error message for non-success statuses, if any.
	Message string
}

// Success reports whether Discord accepted the message. Only 200 and 204 count.
func (r Response) Success() bool {
	return r.StatusCode == http.StatusOK || r.StatusCode == http.StatusNoContent
}

// Client posts webhook payloads.
type Client struct {
	httpClient *http.Client
}

// NewClient returns a Client using httpClient, or a default one with
// DefaultTimeout and the standard TLS-verifying transport when nil.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{httpClient: httpClient}
}

// Timeout is the per-request limit, DefaultTimeout when the client has none.
func (c *Client) Timeout() time.Duration {
	if c.httpClient.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.httpClient.Timeout
}

// Marshal encodes a payload. Split out so encoding failures can be told
// apart from transport failures.
func Marshal(payload WebhookPayload) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal webhook payload: %w", err)
	}
	return body, nil
}

// Post sends one request. A non-nil error means no HTTP response was
// received; any status, including 4xx and 5xx, is returned in Response.
func (c *Client) Post(ctx context.Context, webhookURL string, body []byte) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return Response{}, fmt.Errorf("create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	out := Response{StatusCode: resp.StatusCode}
	if out.Success() {
		_, _ = io.Copy(io.Discard, resp.Body)
		return out, nil
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var discordErr ErrorResponse
	if err := json.Unmarshal(raw, &discordErr); err == nil && discordErr.Message != "" {
		out.Message = discordErr.Message
	}
	return out, nil
}
