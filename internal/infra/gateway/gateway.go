package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"stayhub/internal/pkg/config"
	"stayhub/internal/pkg/errs"
)

var ErrUpstreamStatus = errs.New("upstream returned non-success status")

// client is the shared transport for all collaborator calls. One attempt per
// call with a hard timeout; retrying is the caller's decision, and the booking
// workflow never retries.
type client struct {
	hc *http.Client
}

func newClient(cfg config.UpstreamConfig) *client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &client{hc: &http.Client{Timeout: timeout}}
}

func (c *client) getJSON(ctx context.Context, url string, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, errs.Wrap(err, "failed to build upstream request")
	}
	return c.do(req, out)
}

func (c *client) sendJSON(ctx context.Context, method, url string, in, out any) (int, error) {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return 0, errs.Wrap(err, "failed to encode upstream request")
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return 0, errs.Wrap(err, "failed to build upstream request")
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *client) do(req *http.Request, out any) (int, error) {
	resp, err := c.hc.Do(req)
	if err != nil {
		return 0, errs.Wrap(err, "upstream call failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return resp.StatusCode, errs.Wrapf(ErrUpstreamStatus, "%s %s: status %d", req.Method, req.URL.Path, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, errs.Wrap(err, "failed to decode upstream response")
		}
	}
	return resp.StatusCode, nil
}

func joinURL(base, path string, args ...any) string {
	return base + fmt.Sprintf(path, args...)
}
