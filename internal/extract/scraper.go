package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"resume-profile/internal/shared/metrics"
	"resume-profile/internal/shared/storage/object"
	"resume-profile/internal/shared/telemetry"
)

// DefaultMaxBytes caps how much of a document is read.
const DefaultMaxBytes = 10 << 20

var ErrTooLarge = errors.New("document too large")

// Scraper reads the document behind a file URL and returns its plain text.
// store:/// URLs resolve against Store; http(s) URLs are fetched.
type Scraper struct {
	Store      object.ObjectStore
	HTTPClient *http.Client
	MaxBytes   int64
}

// NewScraper builds a Scraper with a bounded HTTP client.
func NewScraper(store object.ObjectStore) *Scraper {
	return &Scraper{
		Store:      store,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		MaxBytes:   DefaultMaxBytes,
	}
}

// ExtractText fetches fileURL and extracts its text.
func (s *Scraper) ExtractText(ctx context.Context, fileURL string) (string, error) {
	start := time.Now()
	data, mimeType, name, err := s.fetch(ctx, fileURL)
	if err == nil {
		var text string
		text, err = ExtractTextFromBytes(ctx, data, mimeType, name)
		if err == nil {
			metrics.IncTextExtraction()
			telemetry.Info("extract.text", map[string]any{
				"bytes":       len(data),
				"mime_type":   mimeType,
				"chars":       len(text),
				"duration_ms": time.Since(start).Milliseconds(),
			})
			return text, nil
		}
	}
	metrics.IncExtractionFailure()
	return "", fmt.Errorf("extract text url=%s: %w", redactURL(fileURL), err)
}

func (s *Scraper) fetch(ctx context.Context, fileURL string) ([]byte, string, string, error) {
	u, err := url.Parse(strings.TrimSpace(fileURL))
	if err != nil {
		return nil, "", "", err
	}
	switch u.Scheme {
	case object.URLScheme:
		return s.fetchStored(ctx, fileURL)
	case "http", "https":
		return s.fetchHTTP(ctx, u)
	default:
		return nil, "", "", fmt.Errorf("%w: scheme %q", ErrUnsupported, u.Scheme)
	}
}

func (s *Scraper) fetchStored(ctx context.Context, fileURL string) ([]byte, string, string, error) {
	if s.Store == nil {
		return nil, "", "", errors.New("object store not configured")
	}
	key, err := object.KeyFromURL(fileURL)
	if err != nil {
		return nil, "", "", err
	}
	body, err := s.Store.Open(ctx, key)
	if err != nil {
		return nil, "", "", fmt.Errorf("open object: %w", err)
	}
	defer body.Close()
	data, err := s.readAll(body)
	if err != nil {
		return nil, "", "", err
	}
	return data, http.DetectContentType(data), path.Base(key), nil
}

func (s *Scraper) fetchHTTP(ctx context.Context, u *url.URL) ([]byte, string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, "", "", err
	}
	client := s.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, "", "", fmt.Errorf("fetch document: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", "", fmt.Errorf("fetch document: status %d", resp.StatusCode)
	}
	data, err := s.readAll(resp.Body)
	if err != nil {
		return nil, "", "", err
	}
	mimeType := resp.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	return data, mimeType, path.Base(u.Path), nil
}

func (s *Scraper) readAll(r io.Reader) ([]byte, error) {
	limit := s.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, ErrTooLarge
	}
	return data, nil
}

// redactURL drops query strings, which often carry signed credentials.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "invalid-url"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}
