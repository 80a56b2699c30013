package gateway

import (
	"net/url"

	"github.com/AdamBeresnev/pbvsi-sulut/internal/federation"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/fixtures"
)

// Set holds one gateway per managed collection.
type Set struct {
	News         *Resource[federation.NewsItem, int]
	Matches      *Resource[federation.Match, string]
	Gallery      *Resource[federation.GalleryItem, int]
	Documents    *Resource[federation.DocumentItem, int]
	PlayersMen   *Resource[federation.Player, int]
	PlayersWomen *Resource[federation.Player, int]
	Clubs        *Resource[federation.Club, int]
}

func NewSet(c *Client, opts Options) *Set {
	return &Set{
		News:         newResource[federation.NewsItem, int](c, string(federation.KindNews), "/news", fixtures.News, opts),
		Matches:      newResource[federation.Match, string](c, string(federation.KindMatches), "/matches", fixtures.Matches, opts),
		Gallery:      newResource[federation.GalleryItem, int](c, string(federation.KindGallery), "/gallery", fixtures.Gallery, opts),
		Documents:    newResource[federation.DocumentItem, int](c, string(federation.KindDocuments), "/documents", fixtures.Documents, opts),
		PlayersMen:   newPlayers(c, federation.Men, opts),
		PlayersWomen: newPlayers(c, federation.Women, opts),
		Clubs:        newResource[federation.Club, int](c, string(federation.KindClubs), "/clubs", fixtures.Clubs, opts),
	}
}

// newPlayers reads /players filtered by gender and tags create bodies with it.
func newPlayers(c *Client, g federation.Gender, opts Options) *Resource[federation.Player, int] {
	r := newResource[federation.Player, int](c, string(g.Kind()), "/players", func() []federation.Player {
		return fixtures.Players(g)
	}, opts)
	r.query = url.Values{"gender": {string(g)}}
	r.prepare = func(p federation.Player) federation.Player {
		p.Gender = g
		return p
	}
	return r
}
