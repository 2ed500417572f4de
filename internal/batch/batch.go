// SPDX-License-Identifier: Apache-2.0

// Package batch bundles logical sub-requests into single signed /batch and
// /sequence calls and demultiplexes the positional responses back to their
// originating requests. It is the only component that pairs the request
// signer with the transport.
package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sessionlab/go-sogs/internal/adapter"
	"github.com/sessionlab/go-sogs/internal/logger"
	"github.com/sessionlab/go-sogs/internal/signer"
	"github.com/sessionlab/go-sogs/models"
)

// Sub is one logical sub-request plus its expected response target.
// Target, when non-nil, must be a pointer; the entry body is decoded into
// it only for 2xx sub-responses with a non-empty body. The pairing of
// sub-request to response entry is positional.
type Sub struct {
	Method string
	Path   string
	Body   any
	Target any
}

// Coordinator signs and dispatches requests to a SOGS server.
type Coordinator struct {
	transport adapter.Transport
	signer    *signer.Signer
	logger    *logger.Logger

	// OnUnauthorized, when set, is invoked before an ErrUnauthorized is
	// returned, so cached credentials for the server can be invalidated.
	OnUnauthorized func(server models.Server)
}

// NewCoordinator wires a Coordinator from its collaborators.
func NewCoordinator(transport adapter.Transport, sgn *signer.Signer, log *logger.Logger) *Coordinator {
	return &Coordinator{transport: transport, signer: sgn, logger: log}
}

// Do signs and sends a single request. body (when non-nil) is JSON-encoded;
// result (when non-nil) receives the decoded 2xx response body. The
// request is never sent if signing fails.
func (c *Coordinator) Do(ctx context.Context, server models.Server, method, path string, body, result any) error {
	raw, err := encodeBody(body)
	if err != nil {
		return err
	}

	headers, err := c.signer.SignRequest(method, path, raw, server)
	if err != nil {
		return err
	}

	resp, err := c.transport.Send(ctx, adapter.Request{
		Method:  method,
		Path:    path,
		Headers: headers,
		Body:    raw,
	}, server.Name, server.PublicKey)
	if err != nil {
		return err
	}

	if mapped := adapter.MapStatus(resp.StatusCode, resp.Body); mapped != nil {
		if resp.StatusCode == http.StatusUnauthorized && c.OnUnauthorized != nil {
			c.OnUnauthorized(server)
		}
		return mapped
	}

	if result != nil && resp.StatusCode != http.StatusNotModified && len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, result); err != nil {
			return fmt.Errorf("%w: %s %s: %v", adapter.ErrDecoding, method, path, err)
		}
	}

	return nil
}

// Batch submits subs through POST /batch. Sub-requests are independent:
// the server may run them in any order, and one failing does not stop the
// rest. The response array must contain exactly one entry per sub-request;
// any length mismatch is a decode error, never a silent truncation.
func (c *Coordinator) Batch(ctx context.Context, server models.Server, subs []Sub) ([]models.BatchResponseEntry, error) {
	entries, err := c.dispatch(ctx, server, "/batch", subs)
	if err != nil {
		return nil, err
	}

	if len(entries) != len(subs) {
		return nil, fmt.Errorf("%w: batch returned %d entries for %d requests", adapter.ErrDecoding, len(entries), len(subs))
	}

	return entries, c.decodeEntries(subs, entries)
}

// Sequence submits subs through POST /sequence. Sub-requests are causally
// ordered: the server stops at the first non-2xx result, and sub-requests
// it never attempted are reported as 412 Precondition Failed. The server
// may omit the trailing skipped entries entirely; the tail is padded here
// so the positional contract holds for callers.
func (c *Coordinator) Sequence(ctx context.Context, server models.Server, subs []Sub) ([]models.BatchResponseEntry, error) {
	entries, err := c.dispatch(ctx, server, "/sequence", subs)
	if err != nil {
		return nil, err
	}

	if len(entries) > len(subs) {
		return nil, fmt.Errorf("%w: sequence returned %d entries for %d requests", adapter.ErrDecoding, len(entries), len(subs))
	}
	for len(entries) < len(subs) {
		entries = append(entries, models.BatchResponseEntry{Code: http.StatusPreconditionFailed})
	}

	return entries, c.decodeEntries(subs, entries)
}

// EntryError maps a sub-response entry's status to the protocol error
// taxonomy, exactly as a whole-request status would be: nil for 2xx and
// 304 (empty result), sentinel errors for the mapped statuses.
func EntryError(entry models.BatchResponseEntry) error {
	return adapter.MapStatus(entry.Code, entry.Body)
}

func (c *Coordinator) dispatch(ctx context.Context, server models.Server, endpoint string, subs []Sub) ([]models.BatchResponseEntry, error) {
	wire := make([]models.BatchSubRequest, 0, len(subs))
	for _, sub := range subs {
		raw, err := encodeBody(sub.Body)
		if err != nil {
			return nil, err
		}
		wire = append(wire, models.BatchSubRequest{
			Method: sub.Method,
			Path:   sub.Path,
			JSON:   raw,
		})
	}

	var entries []models.BatchResponseEntry
	if err := c.Do(ctx, server, http.MethodPost, endpoint, wire, &entries); err != nil {
		return nil, err
	}

	// A 401 buried in a bundle invalidates credentials the same way a
	// whole-request 401 does.
	if c.OnUnauthorized != nil {
		for _, entry := range entries {
			if entry.Code == http.StatusUnauthorized {
				c.OnUnauthorized(server)
				break
			}
		}
	}

	return entries, nil
}

// decodeEntries decodes entry i into subs[i].Target. 304 and empty bodies
// leave the target untouched; a body that does not match its declared type
// is a decode error.
func (c *Coordinator) decodeEntries(subs []Sub, entries []models.BatchResponseEntry) error {
	for i, entry := range entries {
		if subs[i].Target == nil || !entry.OK() || len(entry.Body) == 0 {
			continue
		}
		if err := json.Unmarshal(entry.Body, subs[i].Target); err != nil {
			return fmt.Errorf("%w: entry %d (%s %s): %v", adapter.ErrDecoding, i, subs[i].Method, subs[i].Path, err)
		}
	}
	return nil
}

func encodeBody(body any) (json.RawMessage, error) {
	if body == nil {
		return nil, nil
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", adapter.ErrEncoding, err)
	}
	return raw, nil
}
