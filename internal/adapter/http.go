// SPDX-License-Identifier: Apache-2.0

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/sessionlab/go-sogs/internal/logger"
)

type httpTransport struct {
	client  *resty.Client
	timeout time.Duration
	logger  *logger.Logger
}

// NewHTTPTransport constructs the direct-HTTP implementation of
// [Transport]. Requests are delivered with resty using the per-request
// base URL (SOGS servers are federated, so there is no single host to pin
// at construction time).
func NewHTTPTransport(timeout time.Duration, log *logger.Logger) Transport {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", "go-sogs")

	return &httpTransport{client: client, timeout: timeout, logger: log}
}

// Send implements [Transport]. It issues the request against baseURL and
// returns the raw status and body; non-2xx statuses are not an error at
// this layer.
func (h *httpTransport) Send(ctx context.Context, req Request, baseURL, serverPubKey string) (*Response, error) {
	base, err := normalizeBaseURL(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server address: %w", err)
	}

	traceID := uuid.NewString()
	started := time.Now()

	r := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json")
	for k, v := range req.Headers {
		r.SetHeader(k, v)
	}
	if len(req.Body) > 0 {
		r.SetBody(req.Body)
	}

	resp, err := r.Execute(strings.ToUpper(req.Method), base+req.Path)
	if err != nil {
		h.logger.Warn().
			Str("trace_id", traceID).
			Str("method", req.Method).
			Str("path", req.Path).
			Err(err).
			Msg("request delivery failed")
		return nil, fmt.Errorf("send %s %s: %w", req.Method, req.Path, err)
	}

	h.logger.Debug().
		Str("trace_id", traceID).
		Str("method", req.Method).
		Str("path", req.Path).
		Int("status", resp.StatusCode()).
		Dur("elapsed", time.Since(started)).
		Msg("request delivered")

	return &Response{StatusCode: resp.StatusCode(), Body: resp.Body()}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}
