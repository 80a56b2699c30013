package state

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdamBeresnev/pbvsi-sulut/internal/federation"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/fixtures"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/gateway"
)

// fakeGateway serves a fixed list and counts calls.
type fakeGateway[T federation.Record[T, K], K comparable] struct {
	mu       sync.Mutex
	items    []T
	nextID   int
	getAlls  int
	deleteOK bool
}

func (f *fakeGateway[T, K]) GetAllWithSource(ctx context.Context) ([]T, gateway.Source) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getAlls++
	return append([]T{}, f.items...), gateway.SourceRemote
}

func (f *fakeGateway[T, K]) Create(ctx context.Context, item T) T {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	return item.WithNumericID(f.nextID)
}

func (f *fakeGateway[T, K]) Update(ctx context.Context, item T) T { return item }

func (f *fakeGateway[T, K]) Delete(ctx context.Context, key K) bool { return f.deleteOK }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func unreachableState(t *testing.T) *State {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	set := gateway.NewSet(
		gateway.NewClient(gateway.Config{BaseURL: url, Timeout: 500 * time.Millisecond}),
		gateway.Options{Logger: discardLogger()},
	)
	return New(GatewaysFromSet(set), discardLogger())
}

func TestEndToEndWithUnreachableBackend(t *testing.T) {
	s := unreachableState(t)
	assert.False(t, s.Loaded())

	s.Init(context.Background())
	require.True(t, s.Loaded())

	assert.Empty(t, cmp.Diff(fixtures.News(), s.News.All()))
	assert.Empty(t, cmp.Diff(fixtures.Matches(), s.Matches.All()))
	assert.Empty(t, cmp.Diff(fixtures.Gallery(), s.Gallery.All()))
	assert.Empty(t, cmp.Diff(fixtures.Documents(), s.Documents.All()))
	assert.Empty(t, cmp.Diff(fixtures.PlayersMen(), s.PlayersMen.All()))
	assert.Empty(t, cmp.Diff(fixtures.PlayersWomen(), s.PlayersWomen.All()))
	assert.Empty(t, cmp.Diff(fixtures.Clubs(), s.Clubs.All()))

	created := s.News.Create(context.Background(), federation.NewsItem{Title: "Seleksi Tim Porprov"})
	first := s.News.All()[0]
	assert.Equal(t, "Seleksi Tim Porprov", first.Title)
	assert.Equal(t, created.ID, first.ID)
	assert.GreaterOrEqual(t, first.ID, 1)
	assert.LessOrEqual(t, first.ID, gateway.MaxSyntheticID)
	assert.Len(t, s.News.All(), len(fixtures.News())+1)
}

func TestCreatePrependsNewestFirst(t *testing.T) {
	faker := gofakeit.New(uint64(42))
	gw := &fakeGateway[federation.GalleryItem, int]{}
	c := NewCollection[federation.GalleryItem, int](federation.KindGallery, gw)
	c.Load(context.Background())

	var titles []string
	for i := 0; i < 5; i++ {
		title := faker.Sentence(3)
		titles = append([]string{title}, titles...)
		c.Create(context.Background(), federation.GalleryItem{Title: title, Category: "Pertandingan"})
	}

	var got []string
	for _, it := range c.All() {
		got = append(got, it.Title)
	}
	assert.Equal(t, titles, got)
}

func TestMutationsNeverRefetch(t *testing.T) {
	gw := &fakeGateway[federation.Club, int]{items: fixtures.Clubs(), nextID: 100, deleteOK: true}
	c := NewCollection[federation.Club, int](federation.KindClubs, gw)
	ctx := context.Background()

	assert.Equal(t, ReconcileFromReturnValue, c.Reconciliation())

	c.Load(ctx)
	c.Load(ctx)
	created := c.Create(ctx, federation.Club{Name: "Minahasa VC"})
	upd := created
	upd.City = "Tondano"
	c.Update(ctx, upd)
	c.Delete(ctx, 2)

	assert.Equal(t, 1, gw.getAlls)
	all := c.All()
	require.Len(t, all, 2)
	assert.Equal(t, "Tondano", all[0].City)
	assert.Equal(t, 1, all[1].ID)
}

func TestUpdateKeepsPosition(t *testing.T) {
	gw := &fakeGateway[federation.DocumentItem, int]{items: fixtures.Documents()}
	c := NewCollection[federation.DocumentItem, int](federation.KindDocuments, gw)
	c.Load(context.Background())

	doc, ok := c.Find(3)
	require.True(t, ok)
	doc.Title = "Formulir Baru"
	c.Update(context.Background(), doc)

	all := c.All()
	assert.Equal(t, 3, all[2].ID)
	assert.Equal(t, "Formulir Baru", all[2].Title)
}

func TestDeleteOnlyWhenReported(t *testing.T) {
	gw := &fakeGateway[federation.NewsItem, int]{items: fixtures.News()}
	c := NewCollection[federation.NewsItem, int](federation.KindNews, gw)
	ctx := context.Background()
	c.Load(ctx)

	assert.False(t, c.Delete(ctx, 1))
	assert.Equal(t, 3, c.Len())

	gw.deleteOK = true
	assert.True(t, c.Delete(ctx, 1))
	_, found := c.Find(1)
	assert.False(t, found)
	assert.Equal(t, 2, c.Len())
}

func TestObserversSeeMerges(t *testing.T) {
	gw := &fakeGateway[federation.Match, string]{items: fixtures.Matches(), deleteOK: true}
	c := NewCollection[federation.Match, string](federation.KindMatches, gw)
	ctx := context.Background()
	c.Load(ctx)

	var changes []Change
	c.Observe(func(ch Change) { changes = append(changes, ch) })

	live, _ := c.Find("m-live-1")
	live.ScoreA = 3
	c.Update(ctx, live)
	c.Delete(ctx, "m1")

	require.Len(t, changes, 2)
	assert.Equal(t, OpUpdate, changes[0].Op)
	assert.Equal(t, federation.KindMatches, changes[0].Resource)
	assert.Equal(t, 3, changes[0].Record.(federation.Match).ScoreA)
	assert.Equal(t, OpDelete, changes[1].Op)
	assert.Equal(t, "m1", changes[1].Key)
	assert.Nil(t, changes[1].Record)
}

func TestAllReturnsCopy(t *testing.T) {
	gw := &fakeGateway[federation.NewsItem, int]{items: fixtures.News()}
	c := NewCollection[federation.NewsItem, int](federation.KindNews, gw)
	c.Load(context.Background())

	got := c.All()
	got[0].Title = "mutated"
	assert.NotEqual(t, "mutated", c.All()[0].Title)
}

func TestConcurrentCreates(t *testing.T) {
	gw := &fakeGateway[federation.Player, int]{}
	c := NewCollection[federation.Player, int](federation.KindPlayersMen, gw)
	c.Load(context.Background())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Create(context.Background(), federation.Player{Name: "P"})
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, c.Len())
}

func TestPlayersByGender(t *testing.T) {
	s := unreachableState(t)
	assert.Same(t, s.PlayersWomen, s.Players(federation.Women))
	assert.Same(t, s.PlayersMen, s.Players(federation.Men))
}
