package main

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/markbates/goth/gothic"

	"github.com/AdamBeresnev/pbvsi-sulut/internal/httputil"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/middleware"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/service"
	users "github.com/AdamBeresnev/pbvsi-sulut/internal/user"
	"github.com/AdamBeresnev/pbvsi-sulut/views"
)

func (a *app) loginPage(w http.ResponseWriter, r *http.Request) {
	if middleware.GetAuthenticatedStaff(r.Context()) != nil {
		http.Redirect(w, r, "/admin", http.StatusFound)
		return
	}
	a.render(w, r, views.AdminLogin(a.page(r, "Masuk Admin", "admin"), views.LoginData{Providers: a.providers}))
}

func (a *app) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httputil.BadRequest(w, "Invalid form data", err)
		return
	}
	username := strings.TrimSpace(r.PostFormValue("username"))
	if err := a.credentials.Verify(username, r.PostFormValue("password")); err != nil {
		a.log.Warn("admin login rejected", "username", username)
		p := a.page(r, "Masuk Admin", "admin")
		p.Error = "Username atau password salah."
		a.renderStatus(w, r, http.StatusUnauthorized, views.AdminLogin(p, views.LoginData{Username: username, Providers: a.providers}))
		return
	}

	staff, err := a.staff.EnsureLocalAdmin(r.Context(), username)
	if err != nil {
		httputil.InternalServerError(w, "Failed to load admin account", err)
		return
	}
	a.startSession(w, r, staff)
}

// startSession rotates the session token before storing the staff id.
func (a *app) startSession(w http.ResponseWriter, r *http.Request, staff *users.Staff) {
	if err := a.sessions.RenewToken(r.Context()); err != nil {
		httputil.InternalServerError(w, "Failed to renew session", err)
		return
	}
	a.sessions.Put(r.Context(), middleware.SessionStaffKey, staff.ID.String())
	a.log.Info("staff signed in", "staff", staff.ID, "username", staff.Username)
	http.Redirect(w, r, "/admin", http.StatusFound)
}

func (a *app) logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context()); err != nil {
		httputil.InternalServerError(w, "Failed to end session", err)
		return
	}
	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", middleware.LoginPath)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, middleware.LoginPath, http.StatusFound)
}

func (a *app) withProvider(r *http.Request) (*http.Request, bool) {
	provider := chi.URLParam(r, "provider")
	if !slices.Contains(a.providers, provider) {
		return r, false
	}
	return r.WithContext(context.WithValue(r.Context(), gothic.ProviderParamKey, provider)), true
}

func (a *app) oauthBegin(w http.ResponseWriter, r *http.Request) {
	r, ok := a.withProvider(r)
	if !ok {
		a.notFound(w, r, "Metode masuk tidak tersedia.")
		return
	}
	gothic.BeginAuthHandler(w, r)
}

func (a *app) oauthCallback(w http.ResponseWriter, r *http.Request) {
	r, ok := a.withProvider(r)
	if !ok {
		a.notFound(w, r, "Metode masuk tidak tersedia.")
		return
	}

	gothUser, err := gothic.CompleteUserAuth(w, r)
	if err != nil {
		httputil.BadRequest(w, "Authentication failure", err)
		return
	}

	staff, err := a.staff.FindOrCreateStaffByProvider(r.Context(), gothUser)
	if errors.Is(err, service.ErrNotAllowed) {
		a.log.Warn("oauth login not on allow-list", "provider", gothUser.Provider, "email", gothUser.Email)
		p := a.page(r, "Masuk Admin", "admin")
		p.Error = "Akun ini tidak terdaftar sebagai pengurus."
		a.renderStatus(w, r, http.StatusForbidden, views.AdminLogin(p, views.LoginData{Providers: a.providers}))
		return
	}
	if err != nil {
		httputil.InternalServerError(w, "Failed to find or create staff", err)
		return
	}
	a.startSession(w, r, staff)
}
