package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"carrycampus/internal/core/domain/model/kernel"
	"carrycampus/internal/core/ports"

	"github.com/stretchr/testify/assert"
)

type stubReader struct {
	summaries []ports.PendingSettlement
	err       error
}

func (r stubReader) ListPendingSettlements(_ context.Context) ([]ports.PendingSettlement, error) {
	return r.summaries, r.err
}

type recordingNotifier struct {
	notified []string
	messages []string
	err      error
}

func (n *recordingNotifier) Notify(_ context.Context, userID string, message string) error {
	n.notified = append(n.notified, userID)
	n.messages = append(n.messages, message)
	return n.err
}

func TestPendingSettlementJob_NotifiesEveryPayee(t *testing.T) {
	payeeA := kernel.NewUUID()
	payeeB := kernel.NewUUID()
	reader := stubReader{summaries: []ports.PendingSettlement{
		{PayeeID: payeeA, Count: 2, TotalAmount: 90, OldestAt: time.Now().Add(-time.Hour)},
		{PayeeID: payeeB, Count: 1, TotalAmount: 40, OldestAt: time.Now()},
	}}
	notifier := &recordingNotifier{}

	job := NewPendingSettlementJob(reader, notifier, discardLogger())
	job.run()

	assert.Equal(t, []string{payeeA.String(), payeeB.String()}, notifier.notified)
	assert.Contains(t, notifier.messages[0], "2 payment(s)")
	assert.Contains(t, notifier.messages[0], "90")
}

func TestPendingSettlementJob_ReaderErrorSkipsNotifications(t *testing.T) {
	reader := stubReader{err: errors.New("connection refused")}
	notifier := &recordingNotifier{}

	job := NewPendingSettlementJob(reader, notifier, discardLogger())
	job.run()

	assert.Empty(t, notifier.notified)
}

func TestPendingSettlementJob_NotifierErrorDoesNotStopSweep(t *testing.T) {
	reader := stubReader{summaries: []ports.PendingSettlement{
		{PayeeID: kernel.NewUUID(), Count: 1, TotalAmount: 10},
		{PayeeID: kernel.NewUUID(), Count: 1, TotalAmount: 20},
	}}
	notifier := &recordingNotifier{err: errors.New("smtp down")}

	job := NewPendingSettlementJob(reader, notifier, discardLogger())
	job.run()

	assert.Len(t, notifier.notified, 2)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
