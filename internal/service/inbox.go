package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"

	"github.com/AdamBeresnev/pbvsi-sulut/internal/httputil"
)

var ContactTopics = []string{
	"Pertanyaan Umum",
	"Pendaftaran Klub / Atlet",
	"Informasi Kompetisi",
	"Media & Sponsorship",
	"Laporan / Pengaduan",
}

type ContactMessage struct {
	Name    string `form:"name" validate:"required,max=100"`
	Email   string `form:"email" validate:"required,email"`
	Topic   string `form:"topic" validate:"required"`
	Message string `form:"message" validate:"required,max=5000"`
}

// Report is a whistleblowing submission. Identity fields are dropped when
// Anonymous is set.
type Report struct {
	Anonymous  bool   `form:"anonymous"`
	Name       string `form:"name" validate:"max=100"`
	Phone      string `form:"phone" validate:"max=30"`
	Email      string `form:"email" validate:"omitempty,email"`
	Title      string `form:"title" validate:"required,max=200"`
	Date       string `form:"date"`
	Location   string `form:"location" validate:"max=200"`
	Chronology string `form:"chronology" validate:"required,max=10000"`
	// Evidence names the attached file, if any.
	Evidence string `form:"-"`
}

// Inbox accepts contact messages and reports. Submissions are handed to the
// secretariat through the log.
type Inbox struct {
	log    *slog.Logger
	ticket func() int
}

func NewInbox(logger *slog.Logger) *Inbox {
	if logger == nil {
		logger = slog.Default()
	}
	return &Inbox{log: logger, ticket: func() int { return rand.IntN(10000) }}
}

func (i *Inbox) Contact(ctx context.Context, m ContactMessage) map[string]string {
	if errs := httputil.FieldErrors(httputil.Validate(m)); errs != nil {
		return errs
	}
	if !slices.Contains(ContactTopics, m.Topic) {
		return map[string]string{"topic": "Topik tidak dikenal."}
	}
	i.log.InfoContext(ctx, "contact message received", "topic", m.Topic, "email", m.Email, "length", len(m.Message))
	return nil
}

// Report files rep and returns its ticket number.
func (i *Inbox) Report(ctx context.Context, rep Report) (string, map[string]string) {
	if rep.Anonymous {
		rep.Name, rep.Phone, rep.Email = "", "", ""
	}
	if errs := httputil.FieldErrors(httputil.Validate(rep)); errs != nil {
		return "", errs
	}
	ticket := fmt.Sprintf("WBS-%04d", i.ticket())
	i.log.InfoContext(ctx, "whistleblowing report filed",
		"ticket", ticket,
		"anonymous", rep.Anonymous,
		"title", rep.Title,
		"evidence", rep.Evidence != "",
	)
	return ticket, nil
}
