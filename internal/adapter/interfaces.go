// Package adapter carries requests to SOGS servers. The protocol core
// builds fully-formed HTTP requests (method, path, headers, body) and
// delegates delivery to a Transport; it never opens a socket itself. The
// HTTP implementation here talks to servers directly; an onion-routed
// implementation can replace it without touching the core.
package adapter

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/transport_mock.go -package=mock

// Request is a fully-formed outbound HTTP request.
type Request struct {
	Method  string
	Path    string
	Headers map[string]string
	Body    []byte
}

// Response is the delivery result: status metadata plus the optional body.
type Response struct {
	StatusCode int
	Body       []byte
}

// Transport delivers req to the server at baseURL. serverPubKey is the
// server's hex-encoded public key; the direct HTTP transport ignores it,
// an onion transport needs it to build the encrypted path. The returned
// error covers delivery failures only — HTTP error statuses come back as a
// Response and are mapped by the caller.
type Transport interface {
	Send(ctx context.Context, req Request, baseURL, serverPubKey string) (*Response, error)
}
