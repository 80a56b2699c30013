// Package fixtures holds the bundled dataset the gateway falls back to when
// the remote API cannot be reached.
package fixtures

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/AdamBeresnev/pbvsi-sulut/internal/federation"
)

//go:embed data/*.json
var dataFS embed.FS

// load decodes on every call so callers always receive a private copy.
func load[T any](name string) []T {
	raw, err := dataFS.ReadFile("data/" + name)
	if err != nil {
		panic(fmt.Sprintf("fixtures: missing %s: %v", name, err))
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		panic(fmt.Sprintf("fixtures: decode %s: %v", name, err))
	}
	return out
}

func News() []federation.NewsItem { return load[federation.NewsItem]("news.json") }
func Matches() []federation.Match { return load[federation.Match]("matches.json") }
func Gallery() []federation.GalleryItem { return load[federation.GalleryItem]("gallery.json") }
func Documents() []federation.DocumentItem { return load[federation.DocumentItem]("documents.json") }
func PlayersMen() []federation.Player { return load[federation.Player]("players_men.json") }
func PlayersWomen() []federation.Player { return load[federation.Player]("players_women.json") }
func Clubs() []federation.Club { return load[federation.Club]("clubs.json") }

// Coaches is the published coaching directory. It has no remote resource.
func Coaches() []federation.Coach { return load[federation.Coach]("coaches.json") }

// Players returns the fixture list for one gender.
func Players(g federation.Gender) []federation.Player {
	if g == federation.Women {
		return PlayersWomen()
	}
	return PlayersMen()
}
