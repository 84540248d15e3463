// Package notify provides Notifier implementations. Notifications are
// best-effort by contract: the command handlers log and discard failures, so
// implementations are free to fail without affecting lifecycle outcomes.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"carrycampus/internal/core/domain/model/kernel"
	"carrycampus/internal/core/ports"
	"carrycampus/internal/pkg/errs"
)

// SlogNotifier writes notifications to the structured log. It is the default
// sink in environments without an email transport and keeps the notification
// path observable in development.
type SlogNotifier struct {
	logger *slog.Logger
}

// NewSlogNotifier creates a notifier that logs each notification.
func NewSlogNotifier(logger *slog.Logger) *SlogNotifier {
	return &SlogNotifier{
		logger: logger.With("component", "notifier"),
	}
}

// Notify logs the notification at info level.
func (n *SlogNotifier) Notify(ctx context.Context, userID string, message string) error {
	n.logger.InfoContext(ctx, "notification", "user_id", userID, "message", message)
	return nil
}

// EmailNotifier resolves the recipient's address through the user directory
// and delivers the notification by email.
type EmailNotifier struct {
	directory ports.UserDirectory
	sender    ports.EmailSender
	subject   string
}

// NewEmailNotifier creates a notifier that emails each notification.
func NewEmailNotifier(directory ports.UserDirectory, sender ports.EmailSender) *EmailNotifier {
	return &EmailNotifier{
		directory: directory,
		sender:    sender,
		subject:   "Delivery update",
	}
}

// Notify looks up the user's email address and sends the message. A user
// without a known address is not an error; there is simply nowhere to
// deliver to.
func (n *EmailNotifier) Notify(ctx context.Context, userID string, message string) error {
	id, err := kernel.UUIDFromString(userID)
	if err != nil {
		return err
	}

	info, err := n.directory.Lookup(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil
		}
		return err
	}

	if info.Email == "" {
		return nil
	}

	html := fmt.Sprintf("<p>%s</p>", message)
	return n.sender.Send(ctx, info.Email, n.subject, message, html)
}

// MultiNotifier fans a notification out to several sinks. Delivery is
// attempted on every sink even when an earlier one fails; the errors are
// joined.
type MultiNotifier struct {
	sinks []ports.Notifier
}

// NewMultiNotifier creates a notifier that delivers through all given sinks.
func NewMultiNotifier(sinks ...ports.Notifier) *MultiNotifier {
	return &MultiNotifier{sinks: sinks}
}

// Notify delivers the message through every sink.
func (n *MultiNotifier) Notify(ctx context.Context, userID string, message string) error {
	var errsJoined error
	for _, sink := range n.sinks {
		if err := sink.Notify(ctx, userID, message); err != nil {
			errsJoined = errors.Join(errsJoined, err)
		}
	}
	return errsJoined
}
