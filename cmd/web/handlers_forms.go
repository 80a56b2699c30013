package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/AdamBeresnev/pbvsi-sulut/internal/federation"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/httputil"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/service"
	"github.com/AdamBeresnev/pbvsi-sulut/views"
)

func (a *app) contactPage(w http.ResponseWriter, r *http.Request) {
	a.renderContact(w, r, service.ContactMessage{Topic: service.ContactTopics[0]}, nil)
}

func (a *app) renderContact(w http.ResponseWriter, r *http.Request, form service.ContactMessage, errs map[string]string) {
	status := http.StatusOK
	if errs != nil {
		status = http.StatusUnprocessableEntity
	}
	a.renderStatus(w, r, status, views.Contact(a.page(r, "Kontak", "contact"), views.ContactData{
		Form:   form,
		Errors: errs,
		Topics: service.ContactTopics,
		FAQs:   views.FAQs,
	}))
}

func (a *app) contactSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httputil.BadRequest(w, "Invalid form data", err)
		return
	}
	form := service.ContactMessage{
		Name:    strings.TrimSpace(r.PostFormValue("name")),
		Email:   strings.TrimSpace(r.PostFormValue("email")),
		Topic:   r.PostFormValue("topic"),
		Message: strings.TrimSpace(r.PostFormValue("message")),
	}
	if errs := a.inbox.Contact(r.Context(), form); errs != nil {
		a.renderContact(w, r, form, errs)
		return
	}
	a.flash(r, "Pesan Anda telah terkirim. Tim kami akan membalas melalui email.")
	http.Redirect(w, r, "/contact", http.StatusSeeOther)
}

func (a *app) reportPage(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, views.Report(a.page(r, "Whistleblowing", ""), views.ReportData{}))
}

// maxReportBytes leaves room for the text fields next to the evidence file.
const maxReportBytes = federation.MaxDocumentBytes + 1<<20

func (a *app) reportSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxReportBytes)
	errs := map[string]string{}
	if err := r.ParseMultipartForm(1 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooBig *http.MaxBytesError
		if !errors.As(err, &tooBig) {
			httputil.BadRequest(w, "Invalid form data", err)
			return
		}
		errs["evidence"] = fmt.Sprintf("Ukuran file terlalu besar! Maksimal %dMB.", federation.MaxDocumentBytes>>20)
	}

	form := service.Report{
		Anonymous:  r.PostFormValue("anonymous") == "true",
		Name:       strings.TrimSpace(r.PostFormValue("name")),
		Phone:      strings.TrimSpace(r.PostFormValue("phone")),
		Email:      strings.TrimSpace(r.PostFormValue("email")),
		Title:      strings.TrimSpace(r.PostFormValue("title")),
		Date:       r.PostFormValue("date"),
		Location:   strings.TrimSpace(r.PostFormValue("location")),
		Chronology: strings.TrimSpace(r.PostFormValue("chronology")),
	}
	if r.MultipartForm != nil {
		if files := r.MultipartForm.File["evidence"]; len(files) > 0 {
			if files[0].Size > federation.MaxDocumentBytes {
				errs["evidence"] = fmt.Sprintf("Ukuran file terlalu besar! Maksimal %dMB.", federation.MaxDocumentBytes>>20)
			}
			form.Evidence = files[0].Filename
		}
	}

	if len(errs) == 0 {
		ticket, fieldErrs := a.inbox.Report(r.Context(), form)
		if fieldErrs == nil {
			a.render(w, r, views.Report(a.page(r, "Laporan Diterima", ""), views.ReportData{Ticket: ticket}))
			return
		}
		errs = fieldErrs
	}

	status := http.StatusUnprocessableEntity
	if _, ok := errs["evidence"]; ok {
		status = http.StatusBadRequest
	}
	a.renderStatus(w, r, status, views.Report(a.page(r, "Whistleblowing", ""), views.ReportData{Form: form, Errors: errs}))
}
