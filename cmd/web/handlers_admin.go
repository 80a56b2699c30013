package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/AdamBeresnev/pbvsi-sulut/internal/admin"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/export"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/federation"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/httputil"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/service"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/video"
	"github.com/AdamBeresnev/pbvsi-sulut/views"
)

func (a *app) dashboard(w http.ResponseWriter, r *http.Request) {
	members, err := a.staff.Members(r.Context())
	if err != nil {
		a.log.Error("failed to list staff", "error", err)
	}
	p := a.page(r, "Dashboard Admin", "admin")
	a.render(w, r, views.AdminDashboard(p, service.BuildDashboard(a.state), members))
}

func (a *app) exportDirectory(w http.ResponseWriter, r *http.Request) {
	name := fmt.Sprintf("pbvsi-sulut-%s.xlsx", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	err := export.Directory(w, a.state.PlayersMen.All(), a.state.PlayersWomen.All(), a.state.Clubs.All())
	if err != nil {
		a.log.Error("failed to export directory", "error", err)
	}
}

// kindParam resolves the {kind} segment, answering 404 for unknown kinds.
func (a *app) kindParam(w http.ResponseWriter, r *http.Request) (federation.Kind, bool) {
	kind, err := federation.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		a.notFound(w, r, "Jenis data tidak dikenal.")
		return "", false
	}
	return kind, true
}

func (a *app) adminList(w http.ResponseWriter, r *http.Request) {
	kind, ok := a.kindParam(w, r)
	if !ok {
		return
	}
	data := views.AdminListData{Kind: kind, Rows: a.adminRows(kind)}
	a.render(w, r, views.AdminList(a.page(r, "Kelola Data", "admin"), data))
}

func (a *app) adminRows(kind federation.Kind) []views.AdminRow {
	var rows []views.AdminRow
	switch kind {
	case federation.KindNews:
		for _, n := range a.state.News.All() {
			rows = append(rows, views.AdminRow{Key: strconv.Itoa(n.ID), Title: n.Title, Subtitle: n.Category + " · " + n.Date, Image: n.ImageURL})
		}
	case federation.KindMatches:
		for _, m := range a.state.Matches.All() {
			title := m.TeamA.Name + " vs " + m.TeamB.Name
			rows = append(rows, views.AdminRow{Key: m.ID, Title: title, Subtitle: string(m.Status) + " · " + m.Date + " " + m.Time, Image: ""})
		}
	case federation.KindGallery:
		for _, g := range a.state.Gallery.All() {
			image := g.URL
			if video.Classify(g.URL).Kind != video.KindImage {
				image = ""
			}
			rows = append(rows, views.AdminRow{Key: strconv.Itoa(g.ID), Title: g.Title, Subtitle: g.Category, Image: image})
		}
	case federation.KindDocuments:
		for _, d := range a.state.Documents.All() {
			rows = append(rows, views.AdminRow{Key: strconv.Itoa(d.ID), Title: d.Title, Subtitle: strings.Join([]string{d.Category, d.Type, d.Size}, " · "), Image: ""})
		}
	case federation.KindPlayersMen, federation.KindPlayersWomen:
		gender := federation.Men
		if kind == federation.KindPlayersWomen {
			gender = federation.Women
		}
		for _, p := range a.state.Players(gender).All() {
			rows = append(rows, views.AdminRow{Key: strconv.Itoa(p.ID), Title: p.Name, Subtitle: p.Position + " · " + p.Club, Image: p.ImageURL})
		}
	case federation.KindClubs:
		for _, c := range a.state.Clubs.All() {
			rows = append(rows, views.AdminRow{Key: strconv.Itoa(c.ID), Title: c.Name, Subtitle: c.City + " · " + c.Status, Image: c.LogoURL})
		}
	}
	return rows
}

func formAction(kind federation.Kind, key string) string {
	if key == "" {
		return "/admin/" + string(kind)
	}
	return "/admin/" + string(kind) + "/" + key
}

func (a *app) renderForm(w http.ResponseWriter, r *http.Request, status int, data views.AdminFormData) {
	title := "Tambah Data"
	if !data.Form.IsNew() {
		title = "Ubah Data"
	}
	p := a.page(r, title, "admin")
	if status == http.StatusBadRequest {
		for _, msg := range data.Errors {
			p.Error = msg
		}
	}
	a.renderStatus(w, r, status, views.AdminForm(p, data))
}

func (a *app) adminNew(w http.ResponseWriter, r *http.Request) {
	kind, ok := a.kindParam(w, r)
	if !ok {
		return
	}
	f, err := admin.NewForm(kind)
	if err != nil {
		a.notFound(w, r, "Jenis data tidak dikenal.")
		return
	}
	a.renderForm(w, r, http.StatusOK, views.AdminFormData{Kind: kind, Form: f, Action: formAction(kind, "")})
}

func (a *app) adminEdit(w http.ResponseWriter, r *http.Request) {
	kind, ok := a.kindParam(w, r)
	if !ok {
		return
	}
	key := chi.URLParam(r, "id")
	f, err := a.console.EditForm(kind, key)
	if err != nil {
		a.notFound(w, r, "Data tidak ditemukan.")
		return
	}
	a.renderForm(w, r, http.StatusOK, views.AdminFormData{Kind: kind, Form: f, Action: formAction(kind, key)})
}

func (a *app) adminCreate(w http.ResponseWriter, r *http.Request) {
	a.adminSubmit(w, r, "")
}

func (a *app) adminUpdate(w http.ResponseWriter, r *http.Request) {
	a.adminSubmit(w, r, chi.URLParam(r, "id"))
}

func (a *app) adminSubmit(w http.ResponseWriter, r *http.Request, key string) {
	kind, ok := a.kindParam(w, r)
	if !ok {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, admin.MaxSubmissionBytes)
	data := views.AdminFormData{Kind: kind, Action: formAction(kind, key)}

	f, err := admin.Decode(kind, key, r)
	var upErr *admin.UploadError
	switch {
	case errors.As(err, &upErr):
		data.Form = f
		data.Errors = map[string]string{upErr.Field: upErr.Message}
		a.renderForm(w, r, http.StatusBadRequest, data)
		return
	case errors.Is(err, federation.ErrInvalidKey):
		a.notFound(w, r, "Data tidak ditemukan.")
		return
	case err != nil:
		httputil.BadRequest(w, "Invalid form data", err)
		return
	}
	data.Form = f

	res, errs, err := a.console.Submit(r.Context(), f)
	if errors.Is(err, admin.ErrNotFound) {
		a.notFound(w, r, "Data tidak ditemukan.")
		return
	}
	if err != nil {
		httputil.InternalServerError(w, "Failed to save record", err)
		return
	}
	if errs != nil {
		data.Errors = errs
		a.renderForm(w, r, http.StatusUnprocessableEntity, data)
		return
	}

	msg := "Data berhasil diperbarui."
	if res.Created {
		msg = "Data berhasil ditambahkan."
	}
	if len(res.Warnings) > 0 {
		msg += " " + strings.Join(res.Warnings, " ")
	}
	a.log.Info("admin saved record", "kind", res.Kind, "key", res.Key, "created", res.Created)
	a.flash(r, msg)
	http.Redirect(w, r, "/admin/"+string(kind), http.StatusSeeOther)
}

// adminDelete answers an htmx request with an empty body so the row is
// swapped out.
func (a *app) adminDelete(w http.ResponseWriter, r *http.Request) {
	kind, ok := a.kindParam(w, r)
	if !ok {
		return
	}
	key := chi.URLParam(r, "id")
	removed, err := a.console.Delete(r.Context(), kind, key)
	if errors.Is(err, admin.ErrNotFound) || errors.Is(err, federation.ErrInvalidKey) {
		httputil.NotFound(w, "Record not found", err)
		return
	}
	if err != nil {
		httputil.InternalServerError(w, "Failed to delete record", err)
		return
	}
	if !removed {
		a.log.Warn("delete was refused", "kind", kind, "key", key)
		httputil.InternalServerError(w, "Failed to delete record", errors.New("delete refused"))
		return
	}
	a.log.Info("admin deleted record", "kind", kind, "key", key)
	w.WriteHeader(http.StatusOK)
}
