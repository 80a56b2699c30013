package views

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/AdamBeresnev/pbvsi-sulut/internal/admin"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/federation"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/service"
	users "github.com/AdamBeresnev/pbvsi-sulut/internal/user"
)

const siteName = "PBVSI Sulawesi Utara"

var months = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// FormatDate renders an ISO date as "5 Januari 2025". Anything else is shown
// as stored.
func FormatDate(s string) string {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return s
	}
	return fmt.Sprintf("%d %s %d", t.Day(), months[t.Month()-1], t.Year())
}

func StatusLabel(s federation.MatchStatus) string {
	switch s {
	case federation.MatchLive:
		return "Live"
	case federation.MatchFinished:
		return "Selesai"
	}
	return "Akan Datang"
}

func KindLabel(k federation.Kind) string {
	switch k {
	case federation.KindNews:
		return "Berita"
	case federation.KindMatches:
		return "Pertandingan"
	case federation.KindGallery:
		return "Galeri"
	case federation.KindDocuments:
		return "Dokumen"
	case federation.KindPlayersMen:
		return "Pemain Putra"
	case federation.KindPlayersWomen:
		return "Pemain Putri"
	case federation.KindClubs:
		return "Klub"
	}
	return string(k)
}

// MediaURL passes uploaded data payloads and web links through for src
// attributes. Other schemes are replaced with "#".
func MediaURL(s string) string {
	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"), strings.HasPrefix(lower, "/"):
		return s
	case strings.HasPrefix(lower, "data:image/"), strings.HasPrefix(lower, "data:video/"), strings.HasPrefix(lower, "data:application/"):
		return s
	}
	return "#"
}

// Stat renders an optional measurement with its unit, or "-".
func Stat(v *int, unit string) string {
	if v == nil {
		return "-"
	}
	if unit == "" {
		return strconv.Itoa(*v)
	}
	return fmt.Sprintf("%d %s", *v, unit)
}

func pageTitle(title string) string {
	if title == "" {
		return siteName
	}
	return title + " | " + siteName
}

type navItem struct {
	Href  string
	Nav   string
	Label string
}

var navLinks = []navItem{
	{"/", "home", "Beranda"},
	{"/news", "news", "Berita"},
	{"/matches", "matches", "Pertandingan"},
	{"/players", "players", "Pemain"},
	{"/coaches", "coaches", "Pelatih"},
	{"/clubs", "clubs", "Klub"},
	{"/gallery", "gallery", "Galeri"},
	{"/documents", "documents", "Informasi Publik"},
	{"/about", "about", "Tentang"},
	{"/contact", "contact", "Kontak"},
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func currentSetSuffix(m federation.Match) string {
	if m.CurrentSet == nil || !m.IsLive() {
		return ""
	}
	return " · Set " + strconv.Itoa(*m.CurrentSet)
}

func careerLine(c federation.CareerEntry) string {
	parts := []string{c.Team}
	for _, s := range []string{c.Role, c.Achievement} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " · ")
}

func licenseSuffix(license string) string {
	if license == "" {
		return ""
	}
	return " · Lisensi " + license
}

// filterURL links to base with one filter applied, keeping the search query.
func filterURL(base, param, value, query string) templ.SafeURL {
	v := url.Values{}
	v.Set(param, value)
	if query != "" {
		v.Set("q", query)
	}
	return templ.URL(base + "?" + v.Encode())
}

func matchesURL(league string, tab service.MatchTab) templ.SafeURL {
	v := url.Values{"league": {league}}
	if tab != "" {
		v.Set("tab", string(tab))
	}
	return templ.URL("/matches?" + v.Encode())
}

func newsURL(id int) templ.SafeURL {
	return templ.URL("/news/" + strconv.Itoa(id))
}

func matchURL(id string) templ.SafeURL {
	return templ.URL("/matches/" + url.PathEscape(id))
}

func galleryURL(id int, category string) templ.SafeURL {
	return templ.URL("/gallery/" + strconv.Itoa(id) + "?" + url.Values{"category": {category}}.Encode())
}

func downloadURL(id int) templ.SafeURL {
	return templ.URL(fmt.Sprintf("/documents/%d/download", id))
}

func playerURL(g federation.Gender, id int) templ.SafeURL {
	return templ.URL(fmt.Sprintf("/players/%s/%d", g, id))
}

func coachURL(id int) templ.SafeURL {
	return templ.URL("/coaches/" + strconv.Itoa(id))
}

func clubURL(id int) templ.SafeURL {
	return templ.URL("/clubs/" + strconv.Itoa(id))
}

func editURL(kind federation.Kind, key string) templ.SafeURL {
	return templ.URL("/admin/" + string(kind) + "/" + url.PathEscape(key) + "/edit")
}

func formVerb(f admin.Form) string {
	if f.IsNew() {
		return "Tambah"
	}
	return "Ubah"
}

// field describes one labelled console input.
type field struct {
	Label    string
	Name     string
	Value    string
	Type     string
	Required bool
	Rows     int
}

func (f field) inputType() string {
	if f.Type == "" {
		return "text"
	}
	return f.Type
}

func (f field) rows() int {
	if f.Rows == 0 {
		return 4
	}
	return f.Rows
}

func setField(i int, side string) string {
	return fmt.Sprintf("set%d%s", i+1, side)
}

// setError returns the first error reported for either side of set i.
func setError(errs map[string]string, i int) string {
	if msg := errs[setField(i, "A")]; msg != "" {
		return msg
	}
	return errs[setField(i, "B")]
}

func staffSource(s users.Staff) string {
	if s.IsLocal() {
		return "Akun lokal"
	}
	return *s.Provider
}

func lastLogin(s users.Staff) string {
	if s.LastLoginAt == nil {
		return "-"
	}
	return FormatDate(s.LastLoginAt.Format("2006-01-02")) + " " + s.LastLoginAt.Format("15:04")
}
