package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"time"

	"holdco-backend/internal/model"
)

// Client wraps the content upstream (the CMS-side REST API that owns
// listing, service and founder records). One base URL, optional bearer
// token, JSON in and out.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// StatusError is returned for any non-2xx upstream response.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.Status, e.Body)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// NewClient builds a client from UPSTREAM_URL / UPSTREAM_TOKEN.
func NewClient() *Client {
	return &Client{
		baseURL: getEnv("UPSTREAM_URL", "http://localhost:9000"),
		token:   os.Getenv("UPSTREAM_TOKEN"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewClientWith builds a client against an explicit base URL (tests).
func NewClientWith(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// getJSON issues a GET and decodes the JSON response into out. 5xx
// responses are retried twice with a short backoff; GETs are idempotent so
// this is safe. 4xx responses fail immediately.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		c.setHeaders(req)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode >= 500 {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			lastErr = &StatusError{Status: resp.StatusCode, Body: string(body)}
			continue
		}
		return decodeResponse(resp, out)
	}
	return fmt.Errorf("upstream GET %s failed after retries: %w", path, lastErr)
}

// postJSON issues a single POST with a JSON body. POSTs are never retried:
// one submit action performs exactly one outbound call.
func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upstream POST %s: %w", path, err)
	}
	return decodeResponse(resp, out)
}

// PostMultipart sends a multipart form (fields plus one optional file
// part) to the upstream. Used by the authenticated property submission.
func (c *Client) PostMultipart(ctx context.Context, path string, fields map[string]string, fileField, fileName string, file io.Reader) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return fmt.Errorf("failed to write field %s: %w", k, err)
		}
	}
	if file != nil {
		part, err := mw.CreateFormFile(fileField, fileName)
		if err != nil {
			return fmt.Errorf("failed to create file part: %w", err)
		}
		if _, err := io.Copy(part, file); err != nil {
			return fmt.Errorf("failed to copy file: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upstream POST %s: %w", path, err)
	}
	return decodeResponse(resp, nil)
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

func decodeResponse(resp *http.Response, out any) error {
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return &StatusError{Status: resp.StatusCode, Body: string(body)}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Listings fetches all listings of one kind.
func (c *Client) Listings(ctx context.Context, kind model.Kind) ([]model.Listing, error) {
	var items []model.Listing
	if err := c.getJSON(ctx, fmt.Sprintf("/api/%s/listings", kind), &items); err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Kind = kind
	}
	return items, nil
}

// Services fetches the enterprise services used for the consultation
// form dropdown.
func (c *Client) Services(ctx context.Context) ([]model.Service, error) {
	var svcs []model.Service
	if err := c.getJSON(ctx, "/api/services", &svcs); err != nil {
		return nil, err
	}
	return svcs, nil
}

// Founder fetches the founder profile.
func (c *Client) Founder(ctx context.Context) (*model.FounderProfile, error) {
	var p model.FounderProfile
	if err := c.getJSON(ctx, "/api/founder", &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// SubmitProperty forwards an approved property submission upstream.
func (c *Client) SubmitProperty(ctx context.Context, sub model.PropertySubmission, imageName string, image io.Reader) error {
	fields := map[string]string{
		"title":       sub.Title,
		"description": sub.Description,
		"category":    sub.Category,
		"price":       fmt.Sprintf("%.2f", sub.Price),
		"location":    sub.Location,
	}
	return c.PostMultipart(ctx, "/api/estates/listings", fields, "image", imageName, image)
}

// HealthCheck verifies the upstream is reachable.
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to upstream at %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("upstream health check failed: status %d", resp.StatusCode)
	}
	return nil
}
