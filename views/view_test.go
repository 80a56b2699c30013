package views

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdamBeresnev/pbvsi-sulut/internal/admin"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/federation"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/service"
	users "github.com/AdamBeresnev/pbvsi-sulut/internal/user"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/utils"
)

func renderDoc(t *testing.T, c templ.Component) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func TestLayoutMarksActiveNav(t *testing.T) {
	doc := renderDoc(t, ErrorPage(Page{Title: "Uji", Nav: "news", Chat: &ChatPanel{Greeting: "Halo"}}, "Terjadi kesalahan."))

	assert.Equal(t, "Uji | "+siteName, doc.Find("title").Text())
	active := doc.Find("header.navbar nav a.active")
	require.Equal(t, 1, active.Length())
	assert.Equal(t, "/news", active.AttrOr("href", ""))
	assert.Equal(t, "Halo", doc.Find("#chat-messages .chat-message.model").Text())
	assert.Equal(t, 0, doc.Find(`form[action="/admin/logout"]`).Length())
	assert.Contains(t, doc.Find("main").Text(), "Terjadi kesalahan.")
}

func TestLayoutWithoutTitle(t *testing.T) {
	doc := renderDoc(t, ErrorPage(Page{Staff: &users.Staff{Username: "admin"}}, ""))

	assert.Equal(t, siteName, doc.Find("title").Text())
	assert.Equal(t, 0, doc.Find("#chat").Length())
	assert.Equal(t, 1, doc.Find(`form[action="/admin/logout"]`).Length())
}

func TestAdminFormRendersEveryKind(t *testing.T) {
	for _, kind := range federation.Kinds {
		t.Run(string(kind), func(t *testing.T) {
			f, err := admin.NewForm(kind)
			require.NoError(t, err)
			doc := renderDoc(t, AdminForm(Page{}, AdminFormData{
				Kind:   kind,
				Form:   f,
				Errors: map[string]string{"name": "wajib diisi", "title": "wajib diisi"},
				Action: "/admin/" + string(kind),
			}))
			form := doc.Find("form.form")
			require.Equal(t, 1, form.Length())
			assert.Equal(t, "/admin/"+string(kind), form.AttrOr("action", ""))
			assert.Equal(t, "multipart/form-data", form.AttrOr("enctype", ""))
			assert.Positive(t, form.Find("input").Length())
			assert.Equal(t, "/admin/"+string(kind), doc.Find("nav.tabs a.active").AttrOr("href", ""))
		})
	}
}

func TestMatchFormShowsSetScores(t *testing.T) {
	f := admin.MatchFormFrom(federation.Match{
		ID:     "m9",
		Status: federation.MatchFinished,
		Sets:   []string{"25-20", "18-25"},
	})
	doc := renderDoc(t, AdminForm(Page{}, AdminFormData{
		Kind:   federation.KindMatches,
		Form:   f,
		Errors: map[string]string{"set2A": "Skor set tidak valid"},
		Action: "/admin/matches/m9",
	}))

	assert.Equal(t, "25", doc.Find(`input[name="set1A"]`).AttrOr("value", ""))
	assert.Equal(t, "25", doc.Find(`input[name="set2B"]`).AttrOr("value", ""))
	assert.Equal(t, "", doc.Find(`input[name="set3A"]`).AttrOr("value", "x"))
	assert.Equal(t, "Skor set tidak valid", doc.Find("small.error").Text())
	assert.Equal(t, string(federation.MatchFinished), doc.Find(`select[name="status"] option[selected]`).AttrOr("value", ""))
	assert.Equal(t, len(federation.MatchStatuses), doc.Find(`select[name="status"] option`).Length())
}

func TestMatchScoreRendersWithoutLayout(t *testing.T) {
	var buf bytes.Buffer
	m := federation.Match{ID: "m-live-1", Status: federation.MatchLive, ScoreA: 2, ScoreB: 1, Sets: []string{"25-20"}, CurrentSet: utils.Ptr(4)}
	require.NoError(t, MatchScore(m).Render(context.Background(), &buf))

	out := buf.String()
	assert.Contains(t, out, `id="score-m-live-1"`)
	assert.Contains(t, out, "Set 4")
	assert.Contains(t, out, `class="status status-live"`)
	assert.NotContains(t, out, "<footer")

	buf.Reset()
	m.Status = federation.MatchFinished
	require.NoError(t, MatchScore(m).Render(context.Background(), &buf))
	assert.NotContains(t, buf.String(), "Set 4")
}

func TestDashboardListsStaff(t *testing.T) {
	github := "github"
	seen := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	staff := []users.Staff{
		{Username: "admin"},
		{Username: "rina", Email: "rina@pbvsi-sulut.id", Provider: &github, LastLoginAt: &seen},
	}
	doc := renderDoc(t, AdminDashboard(Page{}, service.Dashboard{Stats: service.DashboardStats{News: 3}}, staff))

	assert.Equal(t, "3", doc.Find(`a[href="/admin/news"] strong`).Text())
	rows := doc.Find("section.staff tbody tr")
	require.Equal(t, 2, rows.Length())

	local := rows.First().Find("td")
	assert.Equal(t, "-", local.Eq(1).Text())
	assert.Equal(t, "Akun lokal", local.Eq(2).Text())
	assert.Equal(t, "-", local.Eq(3).Text())

	oauth := rows.Last().Find("td")
	assert.Equal(t, "github", oauth.Eq(2).Text())
	assert.Equal(t, "1 Maret 2025 09:30", oauth.Eq(3).Text())
}

func TestFilterURL(t *testing.T) {
	assert.Equal(t, templ.SafeURL("/news?category=Edukasi"), filterURL("/news", "category", "Edukasi", ""))
	assert.Equal(t, templ.SafeURL("/news?category=Semua&q=liga+pro"), filterURL("/news", "category", "Semua", "liga pro"))
	assert.Equal(t, templ.SafeURL("/matches?league=liga-1&tab=standings"), matchesURL("liga-1", service.MatchTab("standings")))
	assert.Equal(t, templ.SafeURL("/matches?league=liga-1"), matchesURL("liga-1", ""))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "5 Januari 2025", FormatDate("2025-01-05"))
	assert.Equal(t, "31 Desember 2024", FormatDate("2024-12-31"))
	assert.Equal(t, "minggu depan", FormatDate("minggu depan"))
}

func TestMediaURL(t *testing.T) {
	cases := map[string]string{
		"https://picsum.photos/800/600":  "https://picsum.photos/800/600",
		"/static/logo.png":               "/static/logo.png",
		"data:image/png;base64,AAAA":     "data:image/png;base64,AAAA",
		"data:application/pdf;base64,AA": "data:application/pdf;base64,AA",
		"javascript:alert(1)":            "#",
		"data:text/html;base64,AAAA":     "#",
	}
	for in, want := range cases {
		assert.Equal(t, want, MediaURL(in), in)
	}
}

func TestStatAndLabels(t *testing.T) {
	assert.Equal(t, "-", Stat(nil, "cm"))
	assert.Equal(t, "198 cm", Stat(utils.Ptr(198), "cm"))
	assert.Equal(t, "21", Stat(utils.Ptr(21), ""))

	assert.Equal(t, "Live", StatusLabel(federation.MatchLive))
	assert.Equal(t, "Selesai", StatusLabel(federation.MatchFinished))
	assert.Equal(t, "Akan Datang", StatusLabel(federation.MatchUpcoming))
	assert.Equal(t, "Pemain Putri", KindLabel(federation.KindPlayersWomen))
}
