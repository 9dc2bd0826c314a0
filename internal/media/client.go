package media

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// ErrUploadFailed wraps every failure reported by the media host.
var ErrUploadFailed = errors.New("image upload failed")

// Uploader stores an image and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, filename string, body io.Reader, requestID string) (string, error)
}

// Client posts unsigned multipart uploads to an image host.
type Client struct {
	client  *http.Client
	baseURL string
	preset  string
}

// NewClient builds a media client. A nil http client gets a default with a timeout.
func NewClient(client *http.Client, baseURL, preset string) *Client {
	if baseURL == "" {
		panic("media baseURL must not be empty")
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{client: client, baseURL: strings.TrimRight(baseURL, "/"), preset: preset}
}

// Upload streams the file to {baseURL}/image/upload and returns the secure_url.
func (c *Client) Upload(ctx context.Context, filename string, body io.Reader, requestID string) (string, error) {
	pr, pw := io.Pipe()
	defer pr.Close()
	form := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(writeForm(form, filename, body, c.preset))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/image/upload", pr)
	if err != nil {
		return "", fmt.Errorf("create upload request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	if requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("%w: %s", ErrUploadFailed, extractError(resp.Body))
	}

	var uploaded struct {
		SecureURL string `json:"secure_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrUploadFailed, err)
	}
	if uploaded.SecureURL == "" {
		return "", fmt.Errorf("%w: response carried no secure_url", ErrUploadFailed)
	}
	return uploaded.SecureURL, nil
}

func writeForm(form *multipart.Writer, filename string, body io.Reader, preset string) error {
	if preset != "" {
		if err := form.WriteField("upload_preset", preset); err != nil {
			return err
		}
	}
	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, body); err != nil {
		return err
	}
	return form.Close()
}

// extractError reads the host's {"error":{"message":...}} body, falling back to the raw text.
func extractError(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(data) == 0 {
		return "media host returned an error"
	}

	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Error.Message != "" {
		return payload.Error.Message
	}
	return strings.TrimSpace(string(data))
}

var _ Uploader = (*Client)(nil)
