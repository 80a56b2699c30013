// Package views renders the site's pages as templ components.
package views

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/a-h/templ"

	users "github.com/AdamBeresnev/pbvsi-sulut/internal/user"
)

//go:embed static
var staticFS embed.FS

// Static serves the embedded stylesheet and scripts.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}

// Page is the state the shared layout needs on every page.
type Page struct {
	Title   string
	Nav     string
	Staff   *users.Staff
	Notice  string
	Error   string
	Chat    *ChatPanel
	Loading bool
}

func Render(w http.ResponseWriter, r *http.Request, component templ.Component) error {
	return component.Render(r.Context(), w)
}
