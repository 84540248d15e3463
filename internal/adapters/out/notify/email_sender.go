package notify

import (
	"context"
	"log/slog"

	"carrycampus/internal/core/ports"
)

// SlogEmailSender records outgoing emails in the structured log instead of
// talking to a mail provider. It stands in wherever no SMTP or provider
// credentials are configured.
type SlogEmailSender struct {
	logger *slog.Logger
}

var _ ports.EmailSender = (*SlogEmailSender)(nil)

// NewSlogEmailSender creates an email sender that logs each message.
func NewSlogEmailSender(logger *slog.Logger) *SlogEmailSender {
	return &SlogEmailSender{
		logger: logger.With("component", "email_sender"),
	}
}

// Send logs the email at info level. The HTML body is omitted from the log
// record; it duplicates the text body.
func (s *SlogEmailSender) Send(ctx context.Context, address, subject, text, _ string) error {
	s.logger.InfoContext(ctx, "email", "to", address, "subject", subject, "body", text)
	return nil
}
