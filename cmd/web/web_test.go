package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/alexedwards/scs/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdamBeresnev/pbvsi-sulut/internal/admin"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/assistant"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/config"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/db"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/federation"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/gateway"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/live"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/middleware"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/service"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/state"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/store"
)

const (
	testAdminUser     = "admin"
	testAdminPassword = "rahasia-sulut"
)

// newTestApp serves the site over fixture data: the remote API is unreachable
// so every collection falls back to its bundled records.
func newTestApp(t *testing.T, assistantURL string) (*httptest.Server, *app) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	remote := httptest.NewServer(http.NotFoundHandler())
	remote.Close()

	registry := prometheus.NewRegistry()
	set := gateway.NewSet(
		gateway.NewClient(gateway.Config{BaseURL: remote.URL, Timeout: 500 * time.Millisecond}),
		gateway.Options{Metrics: gateway.NewMetrics(registry), Logger: logger},
	)
	st := state.New(state.GatewaysFromSet(set), logger)
	st.Init(context.Background())

	database, err := db.OpenMemory()
	require.NoError(t, err, "Failed to open in-memory DB")
	t.Cleanup(func() { database.Close() })

	credentials, err := middleware.NewCredentials(config.AdminConfig{Username: testAdminUser, Password: testAdminPassword})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	hub := live.NewHub(logger)
	go hub.Run(ctx)
	st.Matches.Observe(hub.Observe)

	staffStore := store.NewStaffStore(database)
	a := &app{
		log:         logger,
		sessions:    scs.New(),
		state:       st,
		news:        service.NewNewsService(st),
		matches:     service.NewMatchService(st),
		gallery:     service.NewGalleryService(st),
		directory:   service.NewDirectoryService(st),
		inbox:       service.NewInbox(logger),
		console:     admin.NewConsole(st, logger),
		staff:       service.NewStaffService(staffStore, nil),
		staffStore:  staffStore,
		credentials: credentials,
		assistant:   assistant.NewClient(assistant.Config{APIKey: "test-key", BaseURL: assistantURL}, logger),
		chatLimiter: middleware.NewIPRateLimiter(600, 100),
		hub:         hub,
		registry:    registry,
	}

	srv := httptest.NewServer(newRouter(a))
	t.Cleanup(srv.Close)
	return srv, a
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func get(t *testing.T, client *http.Client, u string) (*http.Response, *goquery.Document) {
	t.Helper()
	resp, err := client.Get(u)
	require.NoError(t, err)
	defer resp.Body.Close()
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)
	return resp, doc
}

func postForm(t *testing.T, client *http.Client, u string, form url.Values) (*http.Response, *goquery.Document) {
	t.Helper()
	resp, err := client.PostForm(u, form)
	require.NoError(t, err)
	defer resp.Body.Close()
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)
	return resp, doc
}

func login(t *testing.T, client *http.Client, base string) {
	t.Helper()
	resp, _ := postForm(t, client, base+"/admin/login", url.Values{
		"username": {testAdminUser},
		"password": {testAdminPassword},
	})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/admin", resp.Header.Get("Location"))
}

func TestHomeShowsFixtureContent(t *testing.T) {
	srv, _ := newTestApp(t, "")
	client := newClient(t)

	resp, doc := get(t, client, srv.URL+"/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, 3, doc.Find("article.card h3 a").Length())
	assert.Contains(t, doc.Find("article.card h3").Text(), "Tim Putri Sulut Lolos ke PON XXI 2024")
	assert.Equal(t, 1, doc.Find(`[data-live-match="m-live-1"]`).Length())
	assert.Equal(t, 1, doc.Find("#chat-messages").Length())
}

func TestNewsListFiltersByCategory(t *testing.T) {
	srv, _ := newTestApp(t, "")
	client := newClient(t)

	_, doc := get(t, client, srv.URL+"/news?category=Edukasi")
	titles := doc.Find("article.card h3 a")
	require.Equal(t, 1, titles.Length())
	assert.Equal(t, "Pelatihan Wasit Nasional Digelar di Manado", strings.TrimSpace(titles.Text()))

	_, doc = get(t, client, srv.URL+"/news?q=tidak-ada-yang-cocok")
	assert.Equal(t, 0, doc.Find("article.card").Length())
	assert.Contains(t, doc.Text(), "Tidak ada berita yang cocok")
}

func TestMatchStandingsTab(t *testing.T) {
	srv, _ := newTestApp(t, "")
	client := newClient(t)

	resp, doc := get(t, client, srv.URL+"/matches?tab=standings")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	rows := doc.Find("table.standings tbody tr")
	require.Equal(t, 2, rows.Length())
	first := rows.First().Find("td")
	assert.Equal(t, "Bhayangkara Sulut", first.Eq(1).Text())
	assert.Equal(t, "3-1", first.Eq(5).Text())
	assert.Equal(t, "3", strings.TrimSpace(first.Eq(6).Text()))
}

func TestMatchScoreFragment(t *testing.T) {
	srv, _ := newTestApp(t, "")
	client := newClient(t)

	resp, doc := get(t, client, srv.URL+"/matches/m-live-1/score")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, doc.Find("#score-m-live-1").Length())
	assert.Equal(t, 0, doc.Find("footer").Length())
}

func TestPlayerDetailAndMissingPages(t *testing.T) {
	srv, _ := newTestApp(t, "")
	client := newClient(t)

	resp, doc := get(t, client, srv.URL+"/players/Men/1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Rivan Nurmulki (Kw)", doc.Find("article.profile h1").Text())

	resp, _ = get(t, client, srv.URL+"/players/Women/1")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, doc = get(t, client, srv.URL+"/halaman-yang-tidak-ada")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, doc.Text(), "Halaman yang Anda cari tidak ditemukan.")
}

func TestCoachDirectory(t *testing.T) {
	srv, _ := newTestApp(t, "")
	client := newClient(t)

	resp, doc := get(t, client, srv.URL+"/coaches?license=Nasional+A")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, doc.Find("a.card.coach").Length())
	assert.Equal(t, "Nasional A", doc.Find(`select[name="license"] option[selected]`).Text())

	_, doc = get(t, client, srv.URL+"/coaches?q=tidak-ada")
	assert.Contains(t, doc.Text(), "Tidak ada data pelatih yang cocok")

	resp, doc = get(t, client, srv.URL+"/coaches/5")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Denny Moningka", doc.Find("article.profile h1").Text())
	assert.Contains(t, doc.Text(), "Data riwayat karir belum ditambahkan secara rinci.")

	resp, _ = get(t, client, srv.URL+"/coaches/abc")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDocumentDownloadDecodesUpload(t *testing.T) {
	srv, a := newTestApp(t, "")
	client := newClient(t)

	payload := []byte("%PDF-1.4 jadwal liga")
	doc := a.state.Documents.Create(context.Background(), federation.DocumentItem{
		Title:    "Jadwal Liga 2025",
		Category: "Regulasi",
		Type:     "PDF",
		URL:      "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(payload),
	})

	resp, err := client.Get(fmt.Sprintf("%s/documents/%d/download", srv.URL, doc.ID))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `filename="Jadwal-Liga-2025.pdf"`)
	assert.Equal(t, payload, body)

	// Fixture documents carry no file.
	missing, _ := get(t, client, srv.URL+"/documents/1/download")
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestChatKeepsSessionHistory(t *testing.T) {
	var calls int
	model := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"candidates":[{"content":{"parts":[{"text":"Jawaban %d"}]}}]}`, calls)
	}))
	defer model.Close()

	srv, _ := newTestApp(t, model.URL)
	client := newClient(t)

	resp, _ := postForm(t, client, srv.URL+"/chat", url.Values{"message": {"   "}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	postForm(t, client, srv.URL+"/chat", url.Values{"message": {"Kapan liga dimulai?"}})
	resp, doc := postForm(t, client, srv.URL+"/chat", url.Values{"message": {"Di mana lokasinya?"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, 2, doc.Find(".chat-message.user").Length())
	replies := doc.Find(".chat-message.model")
	require.Equal(t, 3, replies.Length())
	assert.Equal(t, assistant.Greeting, replies.First().Text())
	assert.Equal(t, "Jawaban 2", replies.Last().Text())

	// The panel on a full page replays the same history.
	_, page := get(t, client, srv.URL+"/")
	assert.Equal(t, 2, page.Find("#chat-messages .chat-message.user").Length())
}

func TestAdminRequiresLogin(t *testing.T) {
	srv, _ := newTestApp(t, "")
	client := newClient(t)

	resp, _ := get(t, client, srv.URL+"/admin/news")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, middleware.LoginPath, resp.Header.Get("Location"))

	resp, doc := postForm(t, client, srv.URL+"/admin/login", url.Values{
		"username": {testAdminUser},
		"password": {"salah"},
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, doc.Text(), "Username atau password salah.")

	login(t, client, srv.URL)
	resp, doc = get(t, client, srv.URL+"/admin")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "3", doc.Find(`a[href="/admin/news"] strong`).Text())

	resp, _ = postForm(t, client, srv.URL+"/admin/logout", nil)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	resp, _ = get(t, client, srv.URL+"/admin")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
}

func TestAdminCreatesNews(t *testing.T) {
	srv, a := newTestApp(t, "")
	client := newClient(t)
	login(t, client, srv.URL)

	resp, doc := postForm(t, client, srv.URL+"/admin/news", url.Values{
		"title":    {""},
		"category": {"Kompetisi"},
		"excerpt":  {"Ringkasan"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Positive(t, doc.Find("small.error").Length())
	assert.Equal(t, 3, a.state.News.Len())

	resp, _ = postForm(t, client, srv.URL+"/admin/news", url.Values{
		"title":    {"Final Livoli Sulut 2025"},
		"category": {"Kompetisi"},
		"date":     {"2025-03-01"},
		"excerpt":  {"Final digelar di Manado."},
		"content":  {"Paragraf pertama.\n\nParagraf kedua."},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin/news", resp.Header.Get("Location"))

	news := a.state.News.All()
	require.Len(t, news, 4)
	assert.Equal(t, "Final Livoli Sulut 2025", news[0].Title)
	assert.Equal(t, []string{"Paragraf pertama.", "Paragraf kedua."}, news[0].Content)

	_, doc = get(t, client, srv.URL+"/admin/news")
	assert.Contains(t, doc.Find(".notice").Text(), "Data berhasil ditambahkan.")
	assert.Equal(t, 4, doc.Find("table tbody tr").Length())
}

func TestAdminRejectsOversizeImage(t *testing.T) {
	srv, a := newTestApp(t, "")
	client := newClient(t)
	login(t, client, srv.URL)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("title", "Foto Besar"))
	require.NoError(t, mw.WriteField("category", "Kompetisi"))
	require.NoError(t, mw.WriteField("excerpt", "Ringkasan"))
	fw, err := mw.CreateFormFile("imageFile", "besar.jpg")
	require.NoError(t, err)
	_, err = fw.Write(bytes.Repeat([]byte{0xff}, federation.MaxMediaBytes+1))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := client.Post(srv.URL+"/admin/news", mw.FormDataContentType(), &body)
	require.NoError(t, err)
	defer resp.Body.Close()
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, doc.Text(), "Ukuran file terlalu besar! Maksimal 5MB.")
	assert.Equal(t, "Foto Besar", doc.Find(`input[name="title"]`).AttrOr("value", ""))
	assert.Equal(t, 3, a.state.News.Len())
}

func TestAdminEditsAndDeletesMatch(t *testing.T) {
	srv, a := newTestApp(t, "")
	client := newClient(t)
	login(t, client, srv.URL)

	resp, doc := get(t, client, srv.URL+"/admin/matches/m2/edit")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "25", doc.Find(`input[name="set1A"]`).AttrOr("value", ""))

	resp, _ = get(t, client, srv.URL+"/admin/matches/tidak-ada/edit")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	del := func(path string) int {
		req, err := http.NewRequest(http.MethodDelete, srv.URL+path, nil)
		require.NoError(t, err)
		req.Header.Set("HX-Request", "true")
		resp, err := client.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusOK, del("/admin/matches/m2"))
	_, ok := a.state.Matches.Find("m2")
	assert.False(t, ok)
	assert.Equal(t, http.StatusNotFound, del("/admin/matches/m2"))
	assert.Equal(t, http.StatusNotFound, del("/admin/news/bukan-angka"))
}

func TestExportDirectoryAndMetrics(t *testing.T) {
	srv, _ := newTestApp(t, "")
	client := newClient(t)
	login(t, client, srv.URL)

	resp, err := client.Get(srv.URL + "/admin/export.xlsx")
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".xlsx")
	assert.True(t, bytes.HasPrefix(raw, []byte("PK")), "xlsx is a zip archive")

	resp, err = client.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	raw, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(raw), `pbvsi_gateway_calls_total{op="get_all",resource="news",source="fallback"}`)
}
