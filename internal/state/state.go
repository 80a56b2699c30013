// Package state holds the in-memory collections the site renders from. Each
// collection is loaded once at startup and afterwards only changed by merging
// the return values of gateway mutations.
package state

import (
	"context"
	"log/slog"
	"sync"

	"github.com/AdamBeresnev/pbvsi-sulut/internal/federation"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/gateway"
)

type Gateways struct {
	News         Gateway[federation.NewsItem, int]
	Matches      Gateway[federation.Match, string]
	Gallery      Gateway[federation.GalleryItem, int]
	Documents    Gateway[federation.DocumentItem, int]
	PlayersMen   Gateway[federation.Player, int]
	PlayersWomen Gateway[federation.Player, int]
	Clubs        Gateway[federation.Club, int]
}

func GatewaysFromSet(s *gateway.Set) Gateways {
	return Gateways{
		News:         s.News,
		Matches:      s.Matches,
		Gallery:      s.Gallery,
		Documents:    s.Documents,
		PlayersMen:   s.PlayersMen,
		PlayersWomen: s.PlayersWomen,
		Clubs:        s.Clubs,
	}
}

type State struct {
	News         *Collection[federation.NewsItem, int]
	Matches      *Collection[federation.Match, string]
	Gallery      *Collection[federation.GalleryItem, int]
	Documents    *Collection[federation.DocumentItem, int]
	PlayersMen   *Collection[federation.Player, int]
	PlayersWomen *Collection[federation.Player, int]
	Clubs        *Collection[federation.Club, int]

	log *slog.Logger
}

func New(gw Gateways, logger *slog.Logger) *State {
	if logger == nil {
		logger = slog.Default()
	}
	return &State{
		News:         NewCollection(federation.KindNews, gw.News),
		Matches:      NewCollection(federation.KindMatches, gw.Matches),
		Gallery:      NewCollection(federation.KindGallery, gw.Gallery),
		Documents:    NewCollection(federation.KindDocuments, gw.Documents),
		PlayersMen:   NewCollection(federation.KindPlayersMen, gw.PlayersMen),
		PlayersWomen: NewCollection(federation.KindPlayersWomen, gw.PlayersWomen),
		Clubs:        NewCollection(federation.KindClubs, gw.Clubs),
		log:          logger,
	}
}

type loader interface {
	Kind() federation.Kind
	Load(ctx context.Context) gateway.Source
	Loaded() bool
	Observe(o Observer)
}

func (s *State) collections() []loader {
	return []loader{s.News, s.Matches, s.Gallery, s.Documents, s.PlayersMen, s.PlayersWomen, s.Clubs}
}

// Init loads every collection concurrently and blocks until all have settled.
// A collection that settles early is usable before the others.
func (s *State) Init(ctx context.Context) {
	cols := s.collections()
	sources := make([]gateway.Source, len(cols))

	var wg sync.WaitGroup
	for i, c := range cols {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sources[i] = c.Load(ctx)
		}()
	}
	wg.Wait()

	fallbacks := 0
	for i, src := range sources {
		if src == gateway.SourceFallback {
			fallbacks++
			s.log.Warn("collection loaded from fixtures", "resource", cols[i].Kind())
		}
	}
	if fallbacks == len(cols) {
		s.log.Error("remote API unreachable for every collection, serving fixture data")
		return
	}
	s.log.Info("state initialised", "collections", len(cols), "fallbacks", fallbacks)
}

func (s *State) Loaded() bool {
	for _, c := range s.collections() {
		if !c.Loaded() {
			return false
		}
	}
	return true
}

// Observe registers o on every collection.
func (s *State) Observe(o Observer) {
	for _, c := range s.collections() {
		c.Observe(o)
	}
}

func (s *State) Players(g federation.Gender) *Collection[federation.Player, int] {
	if g == federation.Women {
		return s.PlayersWomen
	}
	return s.PlayersMen
}
