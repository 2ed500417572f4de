package adapter

import (
	"fmt"
	"net/http"
	"strings"
)

// MapStatus converts an HTTP status into the protocol error taxonomy.
// 2xx and 304 map to nil; 304 is how since-polls say "nothing new".
func MapStatus(statusCode int, body []byte) error {
	if statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices {
		return nil
	}
	if statusCode == http.StatusNotModified {
		return nil
	}

	text := strings.TrimSpace(string(body))
	if text == "" {
		text = http.StatusText(statusCode)
	}

	switch statusCode {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, text)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, text)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, text)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, text)
	case http.StatusPreconditionFailed:
		return fmt.Errorf("%w: %s", ErrPreconditionFailed, text)
	default:
		return fmt.Errorf("http %d: %s", statusCode, text)
	}
}
