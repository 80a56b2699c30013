package service

import (
	"context"
	"testing"

	"github.com/markbates/goth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdamBeresnev/pbvsi-sulut/internal/db"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/store"
	users "github.com/AdamBeresnev/pbvsi-sulut/internal/user"
)

func newStaffService(t *testing.T, allowed ...string) (*StaffService, *store.StaffStore) {
	t.Helper()
	database, err := db.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	st := store.NewStaffStore(database)
	return NewStaffService(st, allowed), st
}

func TestStaffAllowList(t *testing.T) {
	svc, _ := newStaffService(t, " Sekretariat@PBVSI-Sulut.id ")

	assert.True(t, svc.Allowed("sekretariat@pbvsi-sulut.id"))
	assert.False(t, svc.Allowed("someone@example.com"))
	assert.False(t, svc.Allowed(""))

	_, err := svc.FindOrCreateStaffByProvider(context.Background(), goth.User{
		Provider: "google", UserID: "g-1", Email: "someone@example.com",
	})
	assert.ErrorIs(t, err, ErrNotAllowed)
}

func TestFindOrCreateStaffByProvider(t *testing.T) {
	svc, st := newStaffService(t, "humas@pbvsi-sulut.id")
	ctx := context.Background()

	gu := goth.User{
		Provider:  "google",
		UserID:    "g-42",
		Email:     "humas@pbvsi-sulut.id",
		Name:      "Humas PBVSI",
		AvatarURL: "https://example.com/a.png",
	}
	first, err := svc.FindOrCreateStaffByProvider(ctx, gu)
	require.NoError(t, err)
	assert.False(t, first.IsLocal())

	gu.Name = "Humas Sulut"
	gu.AvatarURL = ""
	second, err := svc.FindOrCreateStaffByProvider(ctx, gu)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	stored, err := st.GetStaff(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Humas Sulut", stored.Username)
	assert.Nil(t, stored.AvatarURL)
	assert.NotNil(t, stored.LastLoginAt)
}

func TestEnsureLocalAdmin(t *testing.T) {
	svc, _ := newStaffService(t)
	ctx := context.Background()

	admin, err := svc.EnsureLocalAdmin(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, users.LocalAdminID, admin.ID)
	assert.True(t, admin.IsLocal())

	again, err := svc.EnsureLocalAdmin(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, again.ID)

	all, err := svc.Members(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "admin", all[0].Username)
}
