package store

import (
	"context"
	"errors"
	"strings"
)

// ErrUnavailable is returned for transport failures, non-success HTTP
// statuses and malformed response bodies alike. Callers only need to know
// the store could not answer; reads degrade to defaults, writes surface
// the failure.
var ErrUnavailable = errors.New("store unavailable")

// Client is a keyed JSON document store addressed by slash-separated
// paths ("users/<uid>/days/<date>").
type Client interface {
	// Get reads the document at path into out. found=false means the
	// document is legitimately absent; an error means the store could not
	// be consulted. The two are never conflated.
	Get(ctx context.Context, path string, out any) (found bool, err error)
	// Put overwrites the document at path.
	Put(ctx context.Context, path string, value any) error
	// Patch merges fields into the document at path, leaving unnamed
	// fields untouched.
	Patch(ctx context.Context, path string, fields map[string]any) error
	// Push appends value under path with a store-generated child key and
	// returns that key.
	Push(ctx context.Context, path string, value any) (string, error)
	// Delete removes the document at path and everything below it.
	Delete(ctx context.Context, path string) error
}

// Join builds a store path from segments, tolerating stray slashes.
func Join(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if s = strings.Trim(s, "/"); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "/")
}
