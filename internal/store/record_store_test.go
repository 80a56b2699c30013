package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdamBeresnev/pbvsi-sulut/internal/db"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/federation"
)

// setupTestDB creates an in-memory SQLite database and applies migrations
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := db.OpenMemory()
	require.NoError(t, err, "Failed to open in-memory DB")
	t.Cleanup(func() { database.Close() })
	return database
}

func encodeNews(item federation.NewsItem) func(string) ([]byte, error) {
	return func(id string) ([]byte, error) {
		n, err := federation.ParseIntKey(id)
		if err != nil {
			return nil, err
		}
		return json.Marshal(item.WithNumericID(n))
	}
}

func TestCreateAssignsSequentialIDsPerKind(t *testing.T) {
	s := NewRecordStore(setupTestDB(t))
	ctx := context.Background()

	first, err := s.Create(ctx, "news", "", encodeNews(federation.NewsItem{Title: "A"}))
	require.NoError(t, err)
	second, err := s.Create(ctx, "news", "", encodeNews(federation.NewsItem{Title: "B"}))
	require.NoError(t, err)
	club, err := s.Create(ctx, "clubs", "", func(id string) ([]byte, error) { return []byte(`{"id":` + id + `}`), nil })
	require.NoError(t, err)

	assert.Equal(t, "1", first.RecordID)
	assert.Equal(t, "2", second.RecordID)
	assert.Equal(t, "1", club.RecordID, "ids are counted per kind")

	var decoded federation.NewsItem
	require.NoError(t, json.Unmarshal([]byte(second.Body), &decoded))
	assert.Equal(t, 2, decoded.ID)
	assert.Equal(t, "B", decoded.Title)
	assert.False(t, second.CreatedAt.IsZero())
}

func TestCreateSkipsPastSeededIDs(t *testing.T) {
	s := NewRecordStore(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "players", "101", "Women", []byte(`{"id":101}`)))
	require.NoError(t, s.Put(ctx, "matches", "m-live-1", "", []byte(`{"id":"m-live-1"}`)))

	rec, err := s.Create(ctx, "players", "Women", func(id string) ([]byte, error) { return []byte(`{}`), nil })
	require.NoError(t, err)
	assert.Equal(t, "102", rec.RecordID)

	rec, err = s.Create(ctx, "matches", "", func(id string) ([]byte, error) { return []byte(`{}`), nil })
	require.NoError(t, err)
	assert.Equal(t, "1", rec.RecordID)

	err = s.Put(ctx, "players", "101", "Men", []byte(`{}`))
	assert.Error(t, err, "duplicate id within a kind")
}

func TestListNewestFirstWithGenderFilter(t *testing.T) {
	s := NewRecordStore(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "players", "1", "Men", []byte(`{"id":1}`)))
	require.NoError(t, s.Put(ctx, "players", "101", "Women", []byte(`{"id":101}`)))
	require.NoError(t, s.Put(ctx, "players", "2", "Men", []byte(`{"id":2}`)))

	men, err := s.List(ctx, "players", "Men")
	require.NoError(t, err)
	require.Len(t, men, 2)
	assert.Equal(t, "2", men[0].RecordID)
	assert.Equal(t, "1", men[1].RecordID)

	all, err := s.List(ctx, "players", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := s.List(ctx, "gallery", "")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	n, err := s.Count(ctx, "players")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestUpdateAndDelete(t *testing.T) {
	s := NewRecordStore(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "documents", "4", "", []byte(`{"id":4,"title":"old"}`)))

	rec, err := s.Update(ctx, "documents", "4", []byte(`{"id":4,"title":"new"}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":4,"title":"new"}`, rec.Body)

	_, err = s.Update(ctx, "documents", "99", []byte(`{}`))
	assert.ErrorIs(t, err, sql.ErrNoRows)

	require.NoError(t, s.Delete(ctx, "documents", "4"))
	assert.ErrorIs(t, s.Delete(ctx, "documents", "4"), sql.ErrNoRows)

	_, err = s.Get(ctx, "documents", "4")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
