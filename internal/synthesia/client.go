package synthesia

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// DefaultBaseURL is the production Synthesia API endpoint.
const DefaultBaseURL = "https://api.synthesia.io/v2"

// Error represents a non-success response from the video service.
type Error struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("synthesia: %s returned %d: %s", e.URL, e.StatusCode, e.Body)
}

// Client is a stateless adapter for the Synthesia API. Every call attaches
// the configured credential; failed calls propagate to the caller without
// retries.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient builds a client for the Synthesia API. The credential may come
// from the argument or the SYNTHESIA_API_KEY environment variable;
// construction fails when neither is set.
func NewClient(apiKey, baseURL string) (*Client, error) {
	if apiKey == "" {
		apiKey = os.Getenv("SYNTHESIA_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("SYNTHESIA_API_KEY must be set in env or passed explicitly")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{},
	}, nil
}

// CreateVideo submits a direct-script video request.
func (c *Client) CreateVideo(ctx context.Context, req *CreateVideoRequest) (*VideoResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return c.post(ctx, "/videos", req)
}

// CreateVideoFromTemplate submits a template-mode video request.
func (c *Client) CreateVideoFromTemplate(ctx context.Context, req *CreateVideoFromTemplateRequest) (*VideoResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return c.post(ctx, "/videos/fromTemplate", req)
}

// GetVideoStatus queries the current status of a single video job.
func (c *Client) GetVideoStatus(ctx context.Context, videoID string) (*VideoStatus, error) {
	url := c.baseURL + "/videos/" + videoID
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create status request: %w", err)
	}
	c.setHeaders(req)

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var status VideoStatus
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, fmt.Errorf("failed to decode video status: %w", err)
	}
	return &status, nil
}

func (c *Client) post(ctx context.Context, path string, payload any) (*VideoResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	respBody, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var video VideoResponse
	if err := json.Unmarshal(respBody, &video); err != nil {
		return nil, fmt.Errorf("failed to decode video response: %w", err)
	}
	return &video, nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("video service request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &Error{
			StatusCode: resp.StatusCode,
			URL:        req.URL.String(),
			Body:       strings.TrimSpace(string(body)),
		}
	}

	return body, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("accept", "application/json")
	req.Header.Set("content-type", "application/json")
}
