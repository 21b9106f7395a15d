// Package mailer defines the contract for dispatching assembled reports and
// provides a SendGrid-backed implementation.
package mailer

import "context"

// Sender dispatches an assembled report to its recipients. Implementations
// report provider rejections as errors; the caller decides whether delivery
// failures are fatal.
type Sender interface {
	Send(ctx context.Context, recipients []string, subject, body string, html bool) error
}
