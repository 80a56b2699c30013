package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/AdamBeresnev/pbvsi-sulut/internal/federation"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/fixtures"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/store"
)

// seedKind stores items under their own ids. Items are written oldest first so
// that listings, which are newest first, come back in fixture order.
func seedKind[T federation.Record[T, K], K comparable](ctx context.Context, s *store.RecordStore, kind, gender string, items []T) error {
	n, err := s.Count(ctx, kind)
	if err != nil {
		return err
	}
	if n > 0 && gender == "" {
		slog.Info("skipping seed, collection not empty", "kind", kind, "records", n)
		return nil
	}

	for i := len(items) - 1; i >= 0; i-- {
		body, err := json.Marshal(items[i])
		if err != nil {
			return err
		}
		id := fmt.Sprint(items[i].Key())
		if err := s.Put(ctx, kind, id, gender, body); err != nil {
			return err
		}
	}
	slog.Info("seeded collection", "kind", kind, "gender", gender, "records", len(items))
	return nil
}

func withGender(players []federation.Player, g federation.Gender) []federation.Player {
	for i := range players {
		players[i].Gender = g
	}
	return players
}

// seed loads the fixture dataset into empty collections.
func seed(ctx context.Context, s *store.RecordStore) error {
	if err := seedKind(ctx, s, "news", "", fixtures.News()); err != nil {
		return err
	}
	if err := seedKind(ctx, s, "matches", "", fixtures.Matches()); err != nil {
		return err
	}
	if err := seedKind(ctx, s, "gallery", "", fixtures.Gallery()); err != nil {
		return err
	}
	if err := seedKind(ctx, s, "documents", "", fixtures.Documents()); err != nil {
		return err
	}
	if err := seedKind(ctx, s, "clubs", "", fixtures.Clubs()); err != nil {
		return err
	}

	players, err := s.Count(ctx, "players")
	if err != nil {
		return err
	}
	if players > 0 {
		slog.Info("skipping seed, collection not empty", "kind", "players", "records", players)
		return nil
	}
	if err := seedKind(ctx, s, "players", string(federation.Men), withGender(fixtures.PlayersMen(), federation.Men)); err != nil {
		return err
	}
	return seedKind(ctx, s, "players", string(federation.Women), withGender(fixtures.PlayersWomen(), federation.Women))
}
