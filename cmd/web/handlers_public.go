package main

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"

	"github.com/AdamBeresnev/pbvsi-sulut/internal/admin"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/federation"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/httputil"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/service"
	"github.com/AdamBeresnev/pbvsi-sulut/views"
)

const homeListSize = 3

func (a *app) home(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, views.Home(a.page(r, "", "home"), views.HomeData{
		News:     a.news.Latest(homeListSize),
		Live:     a.matches.LiveMatches(),
		Upcoming: a.matches.UpcomingMatches(homeListSize),
	}))
}

func (a *app) newsList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	a.render(w, r, views.NewsList(a.page(r, "Berita", "news"), a.news.List(q.Get("q"), q.Get("category"))))
}

func (a *app) newsDetail(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		a.notFound(w, r, "Berita tidak ditemukan.")
		return
	}
	detail, err := a.news.Get(id)
	if err != nil {
		a.notFound(w, r, "Berita tidak ditemukan.")
		return
	}
	a.render(w, r, views.NewsDetail(a.page(r, detail.Item.Title, "news"), *detail))
}

func (a *app) matchBoard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	board := a.matches.Board(q.Get("league"), service.ParseMatchTab(q.Get("tab")))
	a.render(w, r, views.Matches(a.page(r, "Pertandingan", "matches"), board))
}

func (a *app) matchDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := a.matches.Get(chi.URLParam(r, "id"))
	if err != nil {
		a.notFound(w, r, "Pertandingan tidak ditemukan.")
		return
	}
	title := detail.Match.TeamA.Name + " vs " + detail.Match.TeamB.Name
	a.render(w, r, views.MatchDetail(a.page(r, title, "matches"), *detail))
}

// matchScore renders the score block alone for live updates.
func (a *app) matchScore(w http.ResponseWriter, r *http.Request) {
	m, ok := a.state.Matches.Find(chi.URLParam(r, "id"))
	if !ok {
		httputil.NotFound(w, "Match not found", nil)
		return
	}
	a.render(w, r, views.MatchScore(m))
}

func (a *app) galleryList(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, views.Gallery(a.page(r, "Galeri", "gallery"), a.gallery.List(r.URL.Query().Get("category"))))
}

func (a *app) galleryItem(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		a.notFound(w, r, "Media tidak ditemukan.")
		return
	}
	viewer, err := a.gallery.View(id, r.URL.Query().Get("category"))
	if err != nil {
		a.notFound(w, r, "Media tidak ditemukan.")
		return
	}
	a.render(w, r, views.GalleryItem(a.page(r, viewer.Item.Title, "gallery"), *viewer))
}

func (a *app) documentList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	a.render(w, r, views.Documents(a.page(r, "Informasi Publik", "documents"), a.directory.Documents(q.Get("q"), q.Get("category"))))
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// documentDownload serves an embedded upload as an attachment and redirects
// to linked documents.
func (a *app) documentDownload(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		a.notFound(w, r, "Dokumen tidak ditemukan.")
		return
	}
	doc, err := a.directory.Document(id)
	if err != nil || doc.URL == "" {
		a.notFound(w, r, "Dokumen tidak ditemukan.")
		return
	}

	mime, data, err := admin.DecodeDataURI(doc.URL)
	if errors.Is(err, admin.ErrNotDataURI) {
		if strings.HasPrefix(doc.URL, "http://") || strings.HasPrefix(doc.URL, "https://") {
			http.Redirect(w, r, doc.URL, http.StatusFound)
			return
		}
		a.notFound(w, r, "Dokumen tidak ditemukan.")
		return
	}
	if err != nil {
		httputil.InternalServerError(w, "Corrupt document payload", err)
		return
	}

	name := strings.Trim(unsafeFilename.ReplaceAllString(doc.Title, "-"), "-")
	if name == "" {
		name = fmt.Sprintf("dokumen-%d", doc.ID)
	}
	if t := mimetype.Lookup(mime); t != nil && !strings.HasSuffix(strings.ToLower(name), t.Extension()) {
		name += t.Extension()
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", fmt.Sprint(len(data)))
	if _, err := w.Write(data); err != nil {
		a.log.Warn("document download interrupted", "document", doc.ID, "error", err)
	}
}

func parseGender(s string) federation.Gender {
	if strings.EqualFold(s, string(federation.Women)) {
		return federation.Women
	}
	return federation.Men
}

func (a *app) playerList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	listing := a.directory.Players(parseGender(q.Get("gender")), q.Get("q"), q.Get("position"))
	a.render(w, r, views.Players(a.page(r, "Database Pemain", "players"), listing))
}

func (a *app) playerDetail(w http.ResponseWriter, r *http.Request) {
	g := parseGender(chi.URLParam(r, "gender"))
	id, err := intParam(r, "id")
	if err != nil {
		a.notFound(w, r, "Pemain tidak ditemukan.")
		return
	}
	p, err := a.directory.Player(g, id)
	if err != nil {
		a.notFound(w, r, "Pemain tidak ditemukan.")
		return
	}
	a.render(w, r, views.PlayerDetail(a.page(r, p.Name, "players"), views.PlayerPage{Gender: g, Player: p}))
}

func (a *app) coachList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	a.render(w, r, views.Coaches(a.page(r, "Database Pelatih", "coaches"), a.directory.Coaches(q.Get("q"), q.Get("license"))))
}

func (a *app) coachDetail(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		a.notFound(w, r, "Pelatih tidak ditemukan.")
		return
	}
	c, err := a.directory.Coach(id)
	if err != nil {
		a.notFound(w, r, "Pelatih tidak ditemukan.")
		return
	}
	a.render(w, r, views.CoachDetail(a.page(r, c.Name, "coaches"), c))
}

func (a *app) clubList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	a.render(w, r, views.Clubs(a.page(r, "Database Klub", "clubs"), a.directory.Clubs(q.Get("q"), q.Get("city"))))
}

func (a *app) clubDetail(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		a.notFound(w, r, "Klub tidak ditemukan.")
		return
	}
	c, err := a.directory.Club(id)
	if err != nil {
		a.notFound(w, r, "Klub tidak ditemukan.")
		return
	}
	a.render(w, r, views.ClubDetail(a.page(r, c.Name, "clubs"), c))
}

func (a *app) about(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, views.About(a.page(r, "Tentang Kami", "about"), views.AboutData{
		Missions: views.Missions,
		Board:    views.Board,
		Clubs:    a.state.Clubs.Len(),
		Players:  a.state.PlayersMen.Len() + a.state.PlayersWomen.Len(),
	}))
}

func (a *app) history(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, views.History(a.page(r, "Sejarah", "about"), views.Milestones))
}

func (a *app) organization(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, views.Organization(a.page(r, "Struktur Organisasi", "about"), views.Board, views.Divisions))
}
