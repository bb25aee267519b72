// Package textextract extracts plain text from uploaded PDFs via
// Apache Tika, feeding the document summarizer.
package textextract

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// MaxUploadBytes is the largest PDF accepted for extraction.
const MaxUploadBytes = 50 << 20

// ErrUnsupportedType is returned for uploads that are not PDFs.
var ErrUnsupportedType = errors.New("unsupported content type, only PDF uploads are accepted")

// ErrEmptyDocument is returned when extraction yields no text, which
// usually means a scanned PDF without a text layer.
var ErrEmptyDocument = errors.New("no extractable text found in document")

// Config holds the Tika connection settings.
type Config struct {
	// ServerURL is the URL of a running Tika server.
	ServerURL string
	// Timeout bounds each extraction request.
	Timeout time.Duration
}

// DefaultConfig returns the default extraction configuration.
func DefaultConfig() *Config {
	return &Config{
		ServerURL: "http://localhost:9998",
		Timeout:   60 * time.Second,
	}
}

// ConfigFromEnv loads the Tika settings from HRASSIST_TIKA_* variables.
func ConfigFromEnv() *Config {
	config := DefaultConfig()
	if url := os.Getenv("HRASSIST_TIKA_URL"); url != "" {
		config.ServerURL = url
	}
	if raw := os.Getenv("HRASSIST_TIKA_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			config.Timeout = d
		}
	}
	return config
}

// Client talks to a Tika server.
type Client struct {
	config     *Config
	httpClient *http.Client
}

// NewClient creates a text extraction client.
func NewClient(config *Config) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

// Result is an extraction outcome.
type Result struct {
	Text      string `json:"text"`
	Title     string `json:"title,omitempty"`
	PageCount int    `json:"page_count,omitempty"`
	CharCount int    `json:"char_count"`
}

// IsSupported reports whether the content type can be extracted.
func IsSupported(contentType string) bool {
	mediaType := strings.TrimSpace(strings.ToLower(contentType))
	if i := strings.Index(mediaType, ";"); i >= 0 {
		mediaType = strings.TrimSpace(mediaType[:i])
	}
	return mediaType == "application/pdf"
}

// DetectPDF sniffs the payload for the PDF magic bytes. Browsers
// sometimes send PDFs as application/octet-stream.
func DetectPDF(data []byte) bool {
	return bytes.HasPrefix(data, []byte("%PDF-"))
}

// Extract pulls plain text from a PDF payload.
func (c *Client) Extract(ctx context.Context, data []byte) (*Result, error) {
	if len(data) > MaxUploadBytes {
		return nil, errors.Errorf("document exceeds the %d MB upload limit", MaxUploadBytes>>20)
	}
	if !DetectPDF(data) {
		return nil, ErrUnsupportedType
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.config.ServerURL+"/tika", bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create tika request")
	}
	req.Header.Set("Content-Type", "application/pdf")
	req.Header.Set("Accept", "text/plain")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "tika server unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, errors.Errorf("tika server returned status %d: %s", resp.StatusCode, string(body))
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read tika response")
	}

	text := strings.TrimSpace(string(raw))
	if text == "" {
		return nil, ErrEmptyDocument
	}

	result := &Result{
		Text:      text,
		CharCount: len(text),
	}
	if metadata, err := c.metadata(ctx, data); err != nil {
		slog.Debug("failed to fetch tika metadata", slog.String("error", err.Error()))
	} else {
		result.Title = metadata["dc:title"]
		if result.Title == "" {
			result.Title = metadata["title"]
		}
		if pages := metadata["xmpTPg:NPages"]; pages != "" {
			if n, err := strconv.Atoi(pages); err == nil {
				result.PageCount = n
			}
		}
	}
	return result, nil
}

// Ping reports whether the Tika server is reachable.
func (c *Client) Ping(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.ServerURL+"/tika", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (c *Client) metadata(ctx context.Context, data []byte) (map[string]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.config.ServerURL+"/meta", bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/pdf")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("metadata request returned status %d", resp.StatusCode)
	}

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, err
	}
	metadata := make(map[string]string, len(decoded))
	for key, value := range decoded {
		switch v := value.(type) {
		case string:
			metadata[key] = v
		case []any:
			if len(v) > 0 {
				if s, ok := v[0].(string); ok {
					metadata[key] = s
				}
			}
		}
	}
	return metadata, nil
}
