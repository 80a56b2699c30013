package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/AdamBeresnev/pbvsi-sulut/internal/config"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/store"
	users "github.com/AdamBeresnev/pbvsi-sulut/internal/user"
	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/discord"
	"github.com/markbates/goth/providers/google"
)

type ContextKey string

const StaffIDKey ContextKey = "staffID"

// SessionStaffKey is the session entry holding the signed-in staff id.
const SessionStaffKey = "staffID"

const LoginPath = "/admin/login"

// InitAuth registers the OAuth providers that have credentials configured and
// returns their names. Callbacks are built from baseURL.
func InitAuth(baseURL string, cfg config.OAuthConfig) []string {
	baseURL = strings.TrimRight(baseURL, "/")
	callback := func(provider string) string {
		return baseURL + "/auth/" + provider + "/callback"
	}

	var providers []goth.Provider
	var names []string
	if cfg.GoogleKey != "" {
		providers = append(providers, google.New(cfg.GoogleKey, cfg.GoogleSecret, callback("google"), "email", "profile"))
		names = append(names, "google")
	}
	if cfg.DiscordKey != "" {
		providers = append(providers, discord.New(cfg.DiscordKey, cfg.DiscordSecret, callback("discord"), discord.ScopeIdentify, discord.ScopeEmail))
		names = append(names, "discord")
	}
	goth.UseProviders(providers...)

	if cfg.SessionSecret != "" {
		store := sessions.NewCookieStore([]byte(cfg.SessionSecret))
		store.Options.HttpOnly = true
		gothic.Store = store
	}
	return names
}

// LoadAuthenticatedStaff puts the signed-in staff member, if any, into the
// request context. It never blocks a request.
func LoadAuthenticatedStaff(sessionManager *scs.SessionManager, staffStore *store.StaffStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			idStr := sessionManager.GetString(r.Context(), SessionStaffKey)
			if idStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			staffID, err := uuid.Parse(idStr)
			if err != nil {
				sessionManager.Remove(r.Context(), SessionStaffKey)
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), StaffIDKey, staffID)
			if staff, err := staffStore.GetStaff(ctx, staffID); err == nil {
				ctx = context.WithValue(ctx, users.StaffKey, staff)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin redirects to the login page unless LoadAuthenticatedStaff found
// a staff member.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetAuthenticatedStaff(r.Context()) == nil {
			if r.Header.Get("HX-Request") != "" {
				w.Header().Set("HX-Redirect", LoginPath)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			http.Redirect(w, r, LoginPath, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func GetStaffIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	val := ctx.Value(StaffIDKey)
	if val == nil {
		return uuid.Nil, false
	}

	id, ok := val.(uuid.UUID)
	return id, ok
}

func GetAuthenticatedStaff(ctx context.Context) *users.Staff {
	val := ctx.Value(users.StaffKey)
	if val == nil {
		return nil
	}
	staff, ok := val.(*users.Staff)
	if !ok {
		return nil
	}
	return staff
}
