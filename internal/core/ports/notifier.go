package ports

import "context"

// Notifier delivers an in-app notification to a user. Delivery is
// best-effort: implementations may fail, but callers invoke them after the
// triggering transaction commits and log-and-discard any error, so a broken
// notifier never changes the outcome of a lifecycle operation.
type Notifier interface {
	Notify(ctx context.Context, userID string, message string) error
}

// EmailSender sends an email for the same events as Notify. Asynchronous and
// best-effort; failure must not fail the triggering transition.
type EmailSender interface {
	Send(ctx context.Context, address, subject, text, html string) error
}
