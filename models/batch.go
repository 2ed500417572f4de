package models

import "encoding/json"

// BatchSubRequest is one logical request inside a /batch or /sequence
// bundle. Exactly one of JSON or B64 may be set for requests that carry a
// body.
type BatchSubRequest struct {
	Method string          `json:"method"`
	Path   string          `json:"path"`
	JSON   json.RawMessage `json:"json,omitempty"`
	B64    string          `json:"b64,omitempty"`
}

// BatchResponseEntry is one positional entry of a /batch or /sequence
// response array. The N-th entry corresponds to the N-th submitted
// sub-request; that positional pairing is load-bearing.
type BatchResponseEntry struct {
	Code int             `json:"code"`
	Body json.RawMessage `json:"body"`
}

// OK reports whether the entry carries a 2xx status.
func (e BatchResponseEntry) OK() bool {
	return e.Code >= 200 && e.Code < 300
}
