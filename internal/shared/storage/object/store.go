package object

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strings"
)

// URLScheme marks file URLs that point into the configured object store.
const URLScheme = "store"

// ErrNotStoreURL is returned by KeyFromURL for URLs outside the object store.
var ErrNotStoreURL = errors.New("not an object store url")

// ObjectStore defines the contract for saving and retrieving uploaded résumé files.
type ObjectStore interface {
	Save(ctx context.Context, userID string, fileName string, r io.Reader) (storageKey string, sizeBytes int64, mimeType string, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	Delete(ctx context.Context, storageKey string) error
}

// KeyURL returns the retrievable URL recorded for a stored object.
func KeyURL(storageKey string) string {
	u := url.URL{Scheme: URLScheme, Path: "/" + strings.TrimLeft(storageKey, "/")}
	return u.String()
}

// KeyFromURL is the inverse of KeyURL.
func KeyFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme != URLScheme {
		return "", ErrNotStoreURL
	}
	key := strings.TrimLeft(u.Path, "/")
	if key == "" {
		return "", ErrNotStoreURL
	}
	return key, nil
}
