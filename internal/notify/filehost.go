package notify

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/go-resty/resty/v2"
)

// FileHost uploads a generated document and returns its retrievable URL.
type FileHost interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}

// HTTPFileHost talks to the hosted file-upload service. With no base URL
// configured it runs disabled and only logs, so development setups work
// without a hosting account.
type HTTPFileHost struct {
	client *resty.Client
	apiKey string
}

func NewHTTPFileHost(baseURL, apiKey string) *HTTPFileHost {
	if baseURL == "" {
		log.Println("File host: no base URL configured, uploads disabled")
		return &HTTPFileHost{}
	}
	return &HTTPFileHost{
		client: resty.New().SetBaseURL(baseURL),
		apiKey: apiKey,
	}
}

func (h *HTTPFileHost) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	if h.client == nil {
		log.Printf("File host: uploads disabled, would upload %s (%d bytes)", filename, len(data))
		return "", nil
	}

	var result struct {
		URL   string `json:"url"`
		Error string `json:"error"`
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+h.apiKey).
		SetFileReader("file", filename, bytes.NewReader(data)).
		SetResult(&result).
		Post("/upload")
	if err != nil {
		return "", fmt.Errorf("file upload failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("file upload failed with status %d: %s", resp.StatusCode(), string(resp.Body()))
	}
	if result.URL == "" {
		return "", fmt.Errorf("file host returned no url: %s", result.Error)
	}
	return result.URL, nil
}
