package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"waterbuddy/internal/store"
)

// fakeStore is an in-memory store.Client backed by a nested map, with a
// single injectable failure for error-path tests.
type fakeStore struct {
	root    map[string]any
	pushSeq int
	err     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{root: make(map[string]any)}
}

func segmentsOf(path string) []string {
	return strings.Split(strings.Trim(path, "/"), "/")
}

// node walks to the map holding the last segment of path, creating
// intermediate maps when create is true.
func (f *fakeStore) node(path string, create bool) (map[string]any, string, bool) {
	segments := segmentsOf(path)
	current := f.root
	for _, seg := range segments[:len(segments)-1] {
		next, ok := current[seg].(map[string]any)
		if !ok {
			if !create {
				return nil, "", false
			}
			next = make(map[string]any)
			current[seg] = next
		}
		current = next
	}
	return current, segments[len(segments)-1], true
}

func (f *fakeStore) Get(ctx context.Context, path string, out any) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	parent, last, ok := f.node(path, false)
	if !ok {
		return false, nil
	}
	value, ok := parent[last]
	if !ok {
		return false, nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(b, out)
}

func (f *fakeStore) Put(ctx context.Context, path string, value any) error {
	if f.err != nil {
		return f.err
	}
	parent, last, _ := f.node(path, true)
	parent[last] = value
	return nil
}

func (f *fakeStore) Patch(ctx context.Context, path string, fields map[string]any) error {
	if f.err != nil {
		return f.err
	}
	parent, last, _ := f.node(path, true)
	doc, ok := parent[last].(map[string]any)
	if !ok {
		doc = make(map[string]any)
		parent[last] = doc
	}
	for k, v := range fields {
		doc[k] = v
	}
	return nil
}

func (f *fakeStore) Push(ctx context.Context, path string, value any) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.pushSeq++
	key := fmt.Sprintf("key-%03d", f.pushSeq)
	parent, last, _ := f.node(path, true)
	doc, ok := parent[last].(map[string]any)
	if !ok {
		doc = make(map[string]any)
		parent[last] = doc
	}
	doc[key] = value
	return key, nil
}

func (f *fakeStore) Delete(ctx context.Context, path string) error {
	if f.err != nil {
		return f.err
	}
	parent, last, ok := f.node(path, false)
	if !ok {
		return nil
	}
	delete(parent, last)
	return nil
}

var _ store.Client = (*fakeStore)(nil)
