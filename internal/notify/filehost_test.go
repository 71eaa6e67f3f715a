package notify

import (
	"context"
	"testing"
)

// Without a configured base URL uploads are disabled and return no URL, so
// checkout keeps working in default development config.
func TestHTTPFileHostDisabledWithoutBaseURL(t *testing.T) {
	host := NewHTTPFileHost("", "")

	url, err := host.Upload(context.Background(), "faktura-20240115001.pdf", []byte("%PDF-1.4"))
	if err != nil {
		t.Fatalf("Expected disabled upload to succeed, got %v", err)
	}
	if url != "" {
		t.Errorf("Expected empty URL from disabled upload, got %q", url)
	}
}
