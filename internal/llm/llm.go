package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// DefaultPromptVersion is used when no version is configured.
const DefaultPromptVersion = "v1"

// Client abstracts LLM providers for structured résumé extraction.
type Client interface {
	ExtractResume(ctx context.Context, input ExtractInput) (json.RawMessage, error)
}

// ExtractInput captures the inputs needed to structure a résumé.
type ExtractInput struct {
	ResumeText    string
	PromptVersion string
}

type fixJSONKey struct{}

// WithFixJSON returns a context signaling a fix-JSON retry with the given raw output.
func WithFixJSON(ctx context.Context, raw string) context.Context {
	return context.WithValue(ctx, fixJSONKey{}, raw)
}

// FixJSONFromContext returns the raw JSON to repair, if any.
func FixJSONFromContext(ctx context.Context) (string, bool) {
	raw, ok := ctx.Value(fixJSONKey{}).(string)
	return raw, ok
}

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("LLM not implemented")

// PlaceholderClient is used when no provider is configured.
type PlaceholderClient struct{}

// ExtractResume returns ErrNotImplemented.
func (PlaceholderClient) ExtractResume(context.Context, ExtractInput) (json.RawMessage, error) {
	return nil, ErrNotImplemented
}
