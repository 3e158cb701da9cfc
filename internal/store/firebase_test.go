package store

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	method string
	path   string
	body   []byte
}

// newFakeBackend spins up an HTTP server that records requests and replies
// with the queued responses in order.
func newFakeBackend(t *testing.T, responses ...func(w http.ResponseWriter)) (*Firebase, *[]recordedRequest) {
	t.Helper()
	var recorded []recordedRequest
	i := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		recorded = append(recorded, recordedRequest{method: r.Method, path: r.URL.Path, body: body})
		if i < len(responses) {
			responses[i](w)
			i++
			return
		}
		w.Write([]byte("null"))
	}))
	t.Cleanup(srv.Close)
	return NewFirebase(srv.URL, 5*time.Second, nil), &recorded
}

func respondJSON(body string) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}
}

func respondStatus(code int) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) { w.WriteHeader(code) }
}

func TestFirebaseGet_Found(t *testing.T) {
	fb, recorded := newFakeBackend(t, respondJSON(`{"intake": 1200}`))

	var out map[string]int
	found, err := fb.Get(context.Background(), "users/u1/days/2026-08-23", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 1200, out["intake"])

	require.Len(t, *recorded, 1)
	req := (*recorded)[0]
	assert.Equal(t, http.MethodGet, req.method)
	assert.Equal(t, "/users/u1/days/2026-08-23.json", req.path)
}

func TestFirebaseGet_NullBodyMeansAbsent(t *testing.T) {
	for _, body := range []string{"null", "", "  null  "} {
		fb, _ := newFakeBackend(t, respondJSON(body))

		var out map[string]any
		found, err := fb.Get(context.Background(), "users/nobody", &out)
		require.NoError(t, err, "body %q", body)
		assert.False(t, found, "body %q", body)
	}
}

func TestFirebaseGet_ServerErrorIsUnavailable(t *testing.T) {
	fb, _ := newFakeBackend(t, respondStatus(http.StatusInternalServerError))

	var out map[string]any
	found, err := fb.Get(context.Background(), "users/u1", &out)
	assert.False(t, found)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestFirebaseGet_MalformedBodyIsUnavailable(t *testing.T) {
	fb, _ := newFakeBackend(t, respondJSON(`{"broken`))

	var out map[string]any
	_, err := fb.Get(context.Background(), "users/u1", &out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestFirebaseGet_UnreachableHostIsUnavailable(t *testing.T) {
	fb := NewFirebase("http://127.0.0.1:1", 200*time.Millisecond, nil)

	var out map[string]any
	_, err := fb.Get(context.Background(), "users/u1", &out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestFirebasePut_SendsJSONBody(t *testing.T) {
	fb, recorded := newFakeBackend(t, respondJSON(`{"intake": 500}`))

	err := fb.Put(context.Background(), "users/u1/days/2026-08-23", map[string]int{"intake": 500})
	require.NoError(t, err)

	require.Len(t, *recorded, 1)
	req := (*recorded)[0]
	assert.Equal(t, http.MethodPut, req.method)
	assert.Equal(t, "/users/u1/days/2026-08-23.json", req.path)
	assert.JSONEq(t, `{"intake": 500}`, string(req.body))
}

func TestFirebasePatch_UsesPatchMethod(t *testing.T) {
	fb, recorded := newFakeBackend(t, respondJSON(`{}`))

	err := fb.Patch(context.Background(), "users/u1/profile", map[string]any{"theme": "Dark"})
	require.NoError(t, err)

	req := (*recorded)[0]
	assert.Equal(t, http.MethodPatch, req.method)
	assert.JSONEq(t, `{"theme": "Dark"}`, string(req.body))
}

func TestFirebasePush_ReturnsGeneratedKey(t *testing.T) {
	fb, recorded := newFakeBackend(t, respondJSON(`{"name": "-Nabc123"}`))

	key, err := fb.Push(context.Background(), "users/u1/days/2026-08-23/entries", map[string]int{"amount_ml": 250})
	require.NoError(t, err)
	assert.Equal(t, "-Nabc123", key)

	req := (*recorded)[0]
	assert.Equal(t, http.MethodPost, req.method)

	var sent map[string]json.Number
	require.NoError(t, json.Unmarshal(req.body, &sent))
	assert.Equal(t, json.Number("250"), sent["amount_ml"])
}

func TestFirebasePush_MissingKeyIsError(t *testing.T) {
	fb, _ := newFakeBackend(t, respondJSON(`{}`))

	_, err := fb.Push(context.Background(), "users/u1/days/2026-08-23/entries", map[string]int{"amount_ml": 250})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestFirebaseDelete(t *testing.T) {
	fb, recorded := newFakeBackend(t, respondJSON(`null`))

	err := fb.Delete(context.Background(), "users/u1/days/2026-08-23/entries")
	require.NoError(t, err)

	req := (*recorded)[0]
	assert.Equal(t, http.MethodDelete, req.method)
	assert.Equal(t, "/users/u1/days/2026-08-23/entries.json", req.path)
}

func TestFirebaseWrite_FailureIsUnavailable(t *testing.T) {
	fb, _ := newFakeBackend(t, respondStatus(http.StatusBadGateway))

	err := fb.Put(context.Background(), "users/u1", map[string]int{"x": 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}
