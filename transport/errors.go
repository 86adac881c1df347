package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// UnexpectedStatusError reports a status code the operation does not
// document.
type UnexpectedStatusError struct {
	StatusCode int
	Body       []byte
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d: %s", e.StatusCode, truncate(e.Body, 256))
}

// UnexpectedStatus returns an *UnexpectedStatusError for resp when the
// client was built with WithRaiseOnUnexpectedStatus(true), and nil
// otherwise.
func (c *Client) UnexpectedStatus(resp *RawResponse) error {
	if !c.raise {
		return nil
	}
	return &UnexpectedStatusError{StatusCode: resp.StatusCode, Body: resp.Body}
}

// IsTimeout reports whether err is a deadline or network timeout.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
