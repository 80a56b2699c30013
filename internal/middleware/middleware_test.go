package middleware

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/AdamBeresnev/pbvsi-sulut/internal/config"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/db"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/store"
	users "github.com/AdamBeresnev/pbvsi-sulut/internal/user"
)

func TestCredentialsFromPlaintext(t *testing.T) {
	creds, err := NewCredentials(config.AdminConfig{Username: "admin", Password: "admin"})
	require.NoError(t, err)

	assert.NoError(t, creds.Verify("admin", "admin"))
	assert.ErrorIs(t, creds.Verify("admin", "wrong"), ErrInvalidCredentials)
	assert.ErrorIs(t, creds.Verify("root", "admin"), ErrInvalidCredentials)
	assert.Equal(t, "admin", creds.Username())
}

func TestCredentialsFromHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	creds, err := NewCredentials(config.AdminConfig{Username: "sekretaris", PasswordHash: string(hash), Password: "ignored"})
	require.NoError(t, err)
	assert.NoError(t, creds.Verify("sekretaris", "s3cret"))
	assert.Error(t, creds.Verify("sekretaris", "ignored"))

	_, err = NewCredentials(config.AdminConfig{Username: "x", PasswordHash: "not-a-hash"})
	assert.Error(t, err)
	_, err = NewCredentials(config.AdminConfig{Username: "x"})
	assert.Error(t, err)
	_, err = NewCredentials(config.AdminConfig{Password: "x"})
	assert.Error(t, err)
}

func TestRateLimitPerIP(t *testing.T) {
	limiter := NewIPRateLimiter(1, 2)
	h := RateLimit(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	call := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/chat", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, call("10.0.0.1:5000"))
	assert.Equal(t, http.StatusNoContent, call("10.0.0.1:5001"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:5002"))
	assert.Equal(t, http.StatusNoContent, call("10.0.0.2:5000"))
	assert.Equal(t, 2, limiter.Len())
}

func TestRequireAdmin(t *testing.T) {
	database, err := db.OpenMemory()
	require.NoError(t, err)
	defer database.Close()

	staffStore := store.NewStaffStore(database)
	require.NoError(t, staffStore.CreateStaff(context.Background(), &users.Staff{ID: users.LocalAdminID, Username: "admin"}))

	sm := scs.New()
	r := chi.NewRouter()
	r.Use(sm.LoadAndSave)
	r.Use(LoadAuthenticatedStaff(sm, staffStore))
	r.Post("/login", func(w http.ResponseWriter, r *http.Request) {
		sm.Put(r.Context(), SessionStaffKey, users.LocalAdminID.String())
		w.WriteHeader(http.StatusNoContent)
	})
	r.With(RequireAdmin).Get("/admin", func(w http.ResponseWriter, r *http.Request) {
		staff := GetAuthenticatedStaff(r.Context())
		id, ok := GetStaffIDFromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, users.LocalAdminID, id)
		w.Write([]byte(staff.Username))
	})

	srv := httptest.NewServer(r)
	defer srv.Close()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	resp, err := client.Get(srv.URL + "/admin")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, LoginPath, resp.Header.Get("Location"))

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/admin", nil)
	req.Header.Set("HX-Request", "true")
	resp, err = client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, LoginPath, resp.Header.Get("HX-Redirect"))

	resp, err = client.Post(srv.URL+"/login", "text/plain", nil)
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = client.Get(srv.URL + "/admin")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestInitAuthRegistersConfiguredProviders(t *testing.T) {
	assert.Empty(t, InitAuth("http://localhost:8080", config.OAuthConfig{}))

	names := InitAuth("http://localhost:8080/", config.OAuthConfig{GoogleKey: "k", GoogleSecret: "s", SessionSecret: "x"})
	assert.Equal(t, []string{"google"}, names)
}
