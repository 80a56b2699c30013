package admin

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdamBeresnev/pbvsi-sulut/internal/federation"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/gateway"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/state"
)

var testNow = time.Date(2024, time.August, 14, 10, 0, 0, 0, time.UTC)

func formRequest(values url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/admin/x", strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

type filePart struct {
	field, name string
	data        []byte
}

func multipartRequest(t *testing.T, values url.Values, files ...filePart) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, vs := range values {
		for _, v := range vs {
			require.NoError(t, mw.WriteField(k, v))
		}
	}
	for _, f := range files {
		w, err := mw.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = w.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/admin/x", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return r
}

func newConsole(t *testing.T) (*Console, *state.State) {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	set := gateway.NewSet(
		gateway.NewClient(gateway.Config{BaseURL: base, Timeout: 500 * time.Millisecond}),
		gateway.Options{Logger: logger},
	)
	s := state.New(state.GatewaysFromSet(set), logger)
	s.Init(context.Background())

	c := NewConsole(s, logger)
	c.now = func() time.Time { return testNow }
	return c, s
}

func TestParseDate(t *testing.T) {
	cases := map[string]string{
		"":           "2024-08-14",
		"2024-09-01": "2024-09-01",
		"tomorrow":   "2024-08-15",
		"in 3 days":  "2024-08-17",
	}
	for in, want := range cases {
		got, err := ParseDate(in, testNow)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseDate("kapan-kapan", testNow)
	assert.ErrorIs(t, err, ErrUnrecognisedDate)
}

func TestNewsFormDefaults(t *testing.T) {
	f, err := Decode(federation.KindNews, "", formRequest(url.Values{
		"title":    {"  Turnamen Antar Klub  "},
		"category": {"Kompetisi"},
		"excerpt":  {"Ringkasan"},
		"content":  {"Paragraf satu.\r\n\r\nParagraf dua."},
	}))
	require.NoError(t, err)
	require.Nil(t, Check(f, testNow))

	news := f.(*NewsForm).Record()
	assert.Equal(t, "Turnamen Antar Klub", news.Title)
	assert.Equal(t, "2024-08-14", news.Date)
	assert.Equal(t, PlaceholderImage, news.ImageURL)
	assert.Equal(t, []string{"Paragraf satu.", "Paragraf dua."}, news.Content)
	assert.True(t, f.IsNew())
}

func TestRequiredFieldsAreReported(t *testing.T) {
	f, err := Decode(federation.KindNews, "", formRequest(url.Values{"date": {"suatu hari"}}))
	require.NoError(t, err)

	errs := Check(f, testNow)
	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "category")
	assert.Contains(t, errs, "excerpt")
	assert.Contains(t, errs, "date")
	assert.Equal(t, "suatu hari", f.(*NewsForm).Date, "invalid input is kept for re-display")
}

func TestMatchFormDerivesScores(t *testing.T) {
	f, err := Decode(federation.KindMatches, "", formRequest(url.Values{
		"status":    {"finished"},
		"time":      {"16:00"},
		"venue":     {"GOR KONI Sario"},
		"teamAName": {"Bank SulutGo"},
		"teamBName": {"PLN Suluttenggo"},
		"set1A":     {"25"}, "set1B": {"20"},
		"set2A":     {"22"}, "set2B": {"25"},
		"set3A":     {"25"}, "set3B": {""},
		"set4A":     {"25"}, "set4B": {"18"},
		"set5A":     {"25"}, "set5B": {"23"},
		"currentSet": {"4"},
	}))
	require.NoError(t, err)
	require.Nil(t, Check(f, testNow))

	m := f.(*MatchForm).Record()
	assert.Equal(t, []string{"25-20", "22-25", "25-18", "25-23"}, m.Sets)
	assert.Equal(t, 3, m.ScoreA)
	assert.Equal(t, 1, m.ScoreB)
	assert.Nil(t, m.CurrentSet, "current set only applies to live matches")
	assert.Equal(t, federation.DefaultLeagueID, m.LeagueID)
	assert.Equal(t, DefaultMatchCategory, m.Category)
	assert.Equal(t, AvatarURL("Bank SulutGo"), m.TeamA.Logo)
	assert.True(t, strings.HasPrefix(m.TeamA.ID, "a-"))
	assert.NoError(t, m.Validate())
}

func TestMatchFormUpcomingIgnoresSets(t *testing.T) {
	f, err := Decode(federation.KindMatches, "", formRequest(url.Values{
		"time":      {"14:00"},
		"venue":     {"GOR Tondano"},
		"teamAName": {"A"},
		"teamBName": {"B"},
		"set1A":     {"25"}, "set1B": {"10"},
	}))
	require.NoError(t, err)
	require.Nil(t, Check(f, testNow))

	m := f.(*MatchForm).Record()
	assert.Equal(t, federation.MatchUpcoming, m.Status)
	assert.Zero(t, m.ScoreA)
	assert.Zero(t, m.ScoreB)
	assert.Empty(t, m.Sets)
}

func TestMatchFormRejectsBadSetScores(t *testing.T) {
	f, err := Decode(federation.KindMatches, "", formRequest(url.Values{
		"status":     {"live"},
		"time":       {"14:00"},
		"venue":      {"GOR Tondano"},
		"teamAName":  {"A"},
		"teamBName":  {"B"},
		"set1A":      {"dua lima"}, "set1B": {"10"},
		"currentSet": {"6"},
		"leagueId":   {"liga-antah"},
	}))
	require.NoError(t, err)

	errs := Check(f, testNow)
	assert.Contains(t, errs, "set1A")
	assert.Contains(t, errs, "currentSet")
	assert.Contains(t, errs, "leagueId")
}

func TestDocumentUploadOversize(t *testing.T) {
	big := bytes.Repeat([]byte("a"), 11<<20)
	r := multipartRequest(t, url.Values{"title": {"Laporan Tahunan"}, "category": {"Transparansi"}},
		filePart{field: "file", name: "laporan.pdf", data: big})

	f, err := Decode(federation.KindDocuments, "", r)
	var upErr *UploadError
	require.ErrorAs(t, err, &upErr)
	assert.ErrorIs(t, err, ErrTooLarge)
	assert.Equal(t, "file", upErr.Field)
	assert.Contains(t, upErr.Message, "10MB")

	doc := f.(*DocumentForm)
	assert.Equal(t, "Laporan Tahunan", doc.Title)
	assert.Empty(t, doc.URL)
}

func TestDocumentUploadFillsMetadata(t *testing.T) {
	pdf := append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte("x"), 2048)...)
	r := multipartRequest(t, url.Values{"category": {"Regulasi"}},
		filePart{field: "file", name: "peraturan-teknis.pdf", data: pdf})

	f, err := Decode(federation.KindDocuments, "", r)
	require.NoError(t, err)
	require.Nil(t, Check(f, testNow))

	doc := f.(*DocumentForm).Record()
	assert.Equal(t, "peraturan-teknis.pdf", doc.Title)
	assert.Equal(t, "PDF", doc.Type)
	assert.Equal(t, "2 KB", doc.Size)
	assert.True(t, strings.HasPrefix(doc.URL, "data:application/pdf;base64,"))

	mime, data, err := DecodeDataURI(doc.URL)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", mime)
	assert.Equal(t, pdf, data)
}

func TestDecodeDataURIRejectsLinks(t *testing.T) {
	_, _, err := DecodeDataURI("https://pbvsi-sulut.id/sk.pdf")
	assert.ErrorIs(t, err, ErrNotDataURI)

	_, _, err = DecodeDataURI("data:text/plain,halo")
	assert.ErrorIs(t, err, ErrNotDataURI)

	_, _, err = DecodeDataURI("data:application/pdf;base64,@@@")
	assert.Error(t, err)
}

func TestDocumentDefaultsWithoutFile(t *testing.T) {
	f, err := Decode(federation.KindDocuments, "", formRequest(url.Values{"title": {"SK Pengurus"}, "category": {"Regulasi"}}))
	require.NoError(t, err)
	require.Nil(t, Check(f, testNow))

	doc := f.(*DocumentForm).Record()
	assert.Equal(t, DefaultDocumentType, doc.Type)
	assert.Equal(t, DefaultDocumentSize, doc.Size)
}

func TestGalleryUploadAcceptsOnlyMedia(t *testing.T) {
	png := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)
	f, err := Decode(federation.KindGallery, "", multipartRequest(t,
		url.Values{"title": {"Latihan"}, "category": {"Latihan"}},
		filePart{field: "file", name: "latihan.png", data: png}))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(f.(*GalleryForm).URL, "data:image/png;base64,"))

	_, err = Decode(federation.KindGallery, "", multipartRequest(t,
		url.Values{"title": {"Catatan"}, "category": {"Lain"}},
		filePart{field: "file", name: "catatan.txt", data: []byte("hanya teks")}))
	var upErr *UploadError
	require.ErrorAs(t, err, &upErr)
	assert.NotErrorIs(t, err, ErrTooLarge)

	big := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 6<<20)...)
	_, err = Decode(federation.KindGallery, "", multipartRequest(t,
		url.Values{"title": {"Besar"}, "category": {"Lain"}},
		filePart{field: "file", name: "besar.png", data: big}))
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestClubFormLists(t *testing.T) {
	f, err := Decode(federation.KindClubs, "", formRequest(url.Values{
		"name":         {"Tomohon Volley"},
		"city":         {"Tomohon"},
		"squad":        {"Andi\n\n  Budi  \nCitra"},
		"achievements": {"Juara 1 Kejurda 2023\n"},
	}))
	require.NoError(t, err)
	require.Nil(t, Check(f, testNow))

	club := f.(*ClubForm).Record()
	assert.Equal(t, []federation.SquadMember{
		{Number: 1, Name: "Andi", Position: SquadPosition},
		{Number: 2, Name: "Budi", Position: SquadPosition},
		{Number: 3, Name: "Citra", Position: SquadPosition},
	}, club.Squad)
	assert.Equal(t, []string{"Juara 1 Kejurda 2023"}, club.Achievements)
	assert.Equal(t, DefaultClubStatus, club.Status)
	assert.Equal(t, AvatarURL("Tomohon Volley"), club.LogoURL)
	assert.Nil(t, club.Socials)
}

func TestPlayerFormStats(t *testing.T) {
	f, err := Decode(federation.KindPlayersWomen, "", formRequest(url.Values{
		"name":     {"Wilda"},
		"club":     {"PLN Suluttenggo"},
		"position": {"Middle Blocker"},
		"age":      {"29"},
		"height":   {"178"},
		"weight":   {"berat"},
	}))
	require.NoError(t, err)
	assert.Equal(t, federation.KindPlayersWomen, f.Kind())

	errs := Check(f, testNow)
	assert.Contains(t, errs, "weight")

	f.(*PlayerForm).Weight = ""
	require.Nil(t, Check(f, testNow))
	p := f.(*PlayerForm).Record()
	assert.Equal(t, 178, *p.Height)
	assert.Nil(t, p.Weight)
	assert.Equal(t, DefaultHand, p.Hand)
	assert.Empty(t, p.Gender)
}

func TestConsoleCreateAndUpdate(t *testing.T) {
	c, s := newConsole(t)
	ctx := context.Background()

	edit, err := Decode(federation.KindNews, "2", formRequest(url.Values{
		"title": {"Judul Diperbarui"}, "category": {"Edukasi"}, "excerpt": {"-"}, "date": {"2024-06-10"},
	}))
	require.NoError(t, err)
	res, errs, err := c.Submit(ctx, edit)
	require.NoError(t, err)
	require.Nil(t, errs)
	assert.False(t, res.Created)
	assert.Equal(t, "2", res.Key)
	n, ok := s.News.Find(2)
	require.True(t, ok)
	assert.Equal(t, "Judul Diperbarui", n.Title)
	assert.Equal(t, 2, s.News.All()[1].ID, "updates keep their position")

	f, err := Decode(federation.KindNews, "", formRequest(url.Values{
		"title": {"Berita Baru"}, "category": {"Kompetisi"}, "excerpt": {"-"},
	}))
	require.NoError(t, err)
	res, errs, err = c.Submit(ctx, f)
	require.NoError(t, err)
	require.Nil(t, errs)
	assert.True(t, res.Created)
	assert.Equal(t, "Berita Baru", s.News.All()[0].Title)
	assert.Equal(t, 4, s.News.Len())

	missing, err := Decode(federation.KindNews, "99999", formRequest(url.Values{
		"title": {"x"}, "category": {"y"}, "excerpt": {"z"},
	}))
	require.NoError(t, err)
	_, _, err = c.Submit(ctx, missing)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConsoleTiedSetWarning(t *testing.T) {
	c, s := newConsole(t)

	f, err := Decode(federation.KindMatches, "m-live-1", formRequest(url.Values{
		"status":     {"live"},
		"time":       {"Sedang Berlangsung"},
		"venue":      {"GOR KONI Sario"},
		"teamAName":  {"Bank SulutGo"},
		"teamBName":  {"Bhayangkara Sulut"},
		"set1A":      {"25"}, "set1B": {"20"},
		"set2A":      {"24"}, "set2B": {"24"},
		"currentSet": {"2"},
	}))
	require.NoError(t, err)
	res, errs, err := c.Submit(context.Background(), f)
	require.NoError(t, err)
	require.Nil(t, errs)
	require.Len(t, res.Warnings, 1)

	m, ok := s.Matches.Find("m-live-1")
	require.True(t, ok)
	assert.Equal(t, []string{"25-20", "24-24"}, m.Sets)
	assert.Equal(t, 1, m.ScoreA)
	assert.Equal(t, 0, m.ScoreB)
	require.NotNil(t, m.CurrentSet)
	assert.Equal(t, 2, *m.CurrentSet)
}

func TestConsoleEditKeepsCareerAndCoaches(t *testing.T) {
	c, s := newConsole(t)
	ctx := context.Background()

	before, ok := s.PlayersMen.Find(1)
	require.True(t, ok)
	require.NotEmpty(t, before.Career)

	f, err := c.EditForm(federation.KindPlayersMen, "1")
	require.NoError(t, err)
	pf := f.(*PlayerForm)
	pf.Career = nil
	pf.Club = "Klub Baru"
	_, errs, err := c.Submit(ctx, pf)
	require.NoError(t, err)
	require.Nil(t, errs)

	after, _ := s.PlayersMen.Find(1)
	assert.Equal(t, "Klub Baru", after.Club)
	assert.Equal(t, before.Career, after.Career)
	assert.Equal(t, before.Height, after.Height)
}

func TestConsoleEditFormAndDelete(t *testing.T) {
	c, s := newConsole(t)
	ctx := context.Background()

	f, err := c.EditForm(federation.KindMatches, "m2")
	require.NoError(t, err)
	mf := f.(*MatchForm)
	assert.Equal(t, "25", mf.SetA[0])
	assert.Equal(t, "20", mf.SetB[0])
	assert.Equal(t, "", mf.SetA[4])

	_, err = c.EditForm(federation.KindClubs, "99")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = c.EditForm(federation.KindNews, "abc")
	assert.Error(t, err)

	ok, err := c.Delete(ctx, federation.KindGallery, "2")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, s.Gallery.Len())

	_, err = c.Delete(ctx, federation.KindGallery, "2")
	assert.ErrorIs(t, err, ErrNotFound)
}
