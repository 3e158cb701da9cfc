package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"waterbuddy/internal/logger"

	"github.com/go-resty/resty/v2"
)

// Firebase talks to a hosted realtime-database REST facade: documents live
// at <base-url>/<path>.json, bodies and responses are JSON, POST answers
// with the generated child key under a "name" field.
type Firebase struct {
	http *resty.Client
	log  *logger.Logger
}

var _ Client = (*Firebase)(nil)

// NewFirebase builds a client for the given database base URL. Every call
// carries the same fixed timeout; there are no retries, a failed call is
// terminal for that one operation.
func NewFirebase(baseURL string, timeout time.Duration, log *logger.Logger) *Firebase {
	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("User-Agent", "waterbuddy/1.0")

	if log != nil {
		c.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			log.Debugw("store_request", "method", req.Method, "url", req.URL)
			return nil
		})
		c.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
			log.Debugw("store_response", "status", resp.StatusCode())
			return nil
		})
	}

	return &Firebase{http: c, log: log}
}

// documentURL maps a store path to its REST resource.
func documentURL(path string) string {
	return "/" + strings.Trim(path, "/") + ".json"
}

// isNullBody reports whether the response body encodes "no document here".
func isNullBody(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) == 0 || string(trimmed) == "null"
}

func (f *Firebase) Get(ctx context.Context, path string, out any) (bool, error) {
	resp, err := f.http.R().SetContext(ctx).Get(documentURL(path))
	if err != nil {
		return false, fmt.Errorf("%w: GET %s: %v", ErrUnavailable, path, err)
	}
	if !resp.IsSuccess() {
		return false, fmt.Errorf("%w: GET %s: status %d", ErrUnavailable, path, resp.StatusCode())
	}
	if isNullBody(resp.Body()) {
		return false, nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return false, fmt.Errorf("%w: GET %s: decode body: %v", ErrUnavailable, path, err)
	}
	return true, nil
}

func (f *Firebase) Put(ctx context.Context, path string, value any) error {
	resp, err := f.http.R().SetContext(ctx).SetBody(value).Put(documentURL(path))
	return f.writeOutcome("PUT", path, resp, err)
}

func (f *Firebase) Patch(ctx context.Context, path string, fields map[string]any) error {
	resp, err := f.http.R().SetContext(ctx).SetBody(fields).Patch(documentURL(path))
	return f.writeOutcome("PATCH", path, resp, err)
}

func (f *Firebase) Push(ctx context.Context, path string, value any) (string, error) {
	resp, err := f.http.R().SetContext(ctx).SetBody(value).Post(documentURL(path))
	if err := f.writeOutcome("POST", path, resp, err); err != nil {
		return "", err
	}
	var generated struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(resp.Body(), &generated); err != nil || generated.Name == "" {
		return "", fmt.Errorf("%w: POST %s: no generated key in response", ErrUnavailable, path)
	}
	return generated.Name, nil
}

func (f *Firebase) Delete(ctx context.Context, path string) error {
	resp, err := f.http.R().SetContext(ctx).Delete(documentURL(path))
	return f.writeOutcome("DELETE", path, resp, err)
}

// writeOutcome collapses transport errors and non-success statuses into
// the single unavailable outcome.
func (f *Firebase) writeOutcome(method, path string, resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("%w: %s %s: status %d", ErrUnavailable, method, path, resp.StatusCode())
	}
	return nil
}
