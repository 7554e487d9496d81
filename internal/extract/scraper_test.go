package extract

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"resume-profile/internal/shared/storage/object"
	localstore "resume-profile/internal/shared/storage/object/local"
)

func TestScraperExtractsFromObjectStore(t *testing.T) {
	store := localstore.New(t.TempDir())
	key, _, _, err := store.Save(context.Background(), "user-1", "cv.docx", bytes.NewReader(buildDocx(t)))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	text, err := NewScraper(store).ExtractText(context.Background(), object.KeyURL(key))
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	if !strings.HasPrefix(text, "Ada Lovelace") {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestScraperExtractsOverHTTP(t *testing.T) {
	docx := buildDocx(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write(docx)
	}))
	t.Cleanup(srv.Close)

	text, err := NewScraper(nil).ExtractText(context.Background(), srv.URL+"/files/cv.docx?sig=secret")
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	if !strings.Contains(text, "Analytical Engine") {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestScraperHTTPErrorsRedactQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)

	_, err := NewScraper(nil).ExtractText(context.Background(), srv.URL+"/cv.pdf?sig=secret")
	if err == nil {
		t.Fatal("expected error")
	}
	if strings.Contains(err.Error(), "secret") || !strings.Contains(err.Error(), "status 403") {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestScraperRejectsOversizedAndUnknownSchemes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(bytes.Repeat([]byte("a"), 64))
	}))
	t.Cleanup(srv.Close)

	s := NewScraper(nil)
	s.MaxBytes = 16
	if _, err := s.ExtractText(context.Background(), srv.URL); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	if _, err := s.ExtractText(context.Background(), "ftp://example.com/cv.pdf"); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}
