package service

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactValidation(t *testing.T) {
	inbox := NewInbox(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	ctx := context.Background()

	errs := inbox.Contact(ctx, ContactMessage{Name: "Budi", Email: "bukan-email", Topic: ContactTopics[0]})
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "message")

	errs = inbox.Contact(ctx, ContactMessage{Name: "Budi", Email: "budi@example.com", Topic: "Lainnya", Message: "Halo"})
	assert.Contains(t, errs, "topic")

	errs = inbox.Contact(ctx, ContactMessage{Name: "Budi", Email: "budi@example.com", Topic: ContactTopics[2], Message: "Jadwal Kejurda?"})
	assert.Nil(t, errs)
}

func TestAnonymousReportDropsIdentity(t *testing.T) {
	var buf bytes.Buffer
	inbox := NewInbox(slog.New(slog.NewTextHandler(&buf, nil)))
	inbox.ticket = func() int { return 42 }

	ticket, errs := inbox.Report(context.Background(), Report{
		Anonymous:  true,
		Email:      "not-checked-when-anonymous",
		Title:      "Indikasi suap wasit",
		Chronology: "Terjadi di final Kejurda.",
	})
	require.Nil(t, errs)
	assert.Equal(t, "WBS-0042", ticket)
	assert.Contains(t, buf.String(), "ticket=WBS-0042")
	assert.NotContains(t, buf.String(), "not-checked-when-anonymous")
}

func TestReportRequiresTitleAndChronology(t *testing.T) {
	inbox := NewInbox(nil)
	_, errs := inbox.Report(context.Background(), Report{Email: "x@example.com"})
	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "chronology")
}
