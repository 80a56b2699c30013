package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/AdamBeresnev/pbvsi-sulut/internal/federation"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/state"
)

var ErrNotFound = errors.New("record not found")

// Console applies admin submissions to the state container.
type Console struct {
	state *state.State
	log   *slog.Logger
	now   func() time.Time
}

func NewConsole(s *state.State, logger *slog.Logger) *Console {
	if logger == nil {
		logger = slog.Default()
	}
	return &Console{state: s, log: logger, now: time.Now}
}

type Result struct {
	Kind    federation.Kind
	Key     string
	Created bool
	// Warnings are shown to the editor but did not block saving.
	Warnings []string
}

// Submit checks f and then creates or updates its record. Field errors are
// returned instead of saving; the error is only set for an edit of a record
// that no longer exists.
func (c *Console) Submit(ctx context.Context, f Form) (*Result, map[string]string, error) {
	if errs := Check(f, c.now()); errs != nil {
		return nil, errs, nil
	}

	switch f := f.(type) {
	case *NewsForm:
		res, err := save(ctx, c.state.News, f.IsNew(), f.Record())
		return res, nil, err

	case *MatchForm:
		m := f.Record()
		if err := m.Validate(); err != nil {
			return nil, map[string]string{"status": err.Error()}, nil
		}
		res, err := save(ctx, c.state.Matches, f.IsNew(), m)
		if err != nil {
			return nil, nil, err
		}
		if tied := f.TiedSets(); len(tied) > 0 {
			c.log.Warn("match saved with tied sets", "match", res.Key, "sets", tied)
			res.Warnings = append(res.Warnings, fmt.Sprintf("Set %v berakhir seri dan tidak dihitung untuk kedua tim.", tied))
		}
		return res, nil, nil

	case *GalleryForm:
		res, err := save(ctx, c.state.Gallery, f.IsNew(), f.Record())
		return res, nil, err

	case *DocumentForm:
		res, err := save(ctx, c.state.Documents, f.IsNew(), f.Record())
		return res, nil, err

	case *PlayerForm:
		col := c.state.Players(f.Gender)
		p := f.Record()
		if !f.IsNew() {
			existing, ok := col.Find(f.ID)
			if !ok {
				return nil, nil, ErrNotFound
			}
			if len(f.Career) == 0 {
				p.Career = existing.Career
			}
		}
		res, err := save(ctx, col, f.IsNew(), p)
		return res, nil, err

	case *ClubForm:
		club := f.Record()
		if !f.IsNew() {
			existing, ok := c.state.Clubs.Find(f.ID)
			if !ok {
				return nil, nil, ErrNotFound
			}
			if len(f.Coaches) == 0 {
				club.Coaches = existing.Coaches
			}
		}
		res, err := save(ctx, c.state.Clubs, f.IsNew(), club)
		return res, nil, err
	}
	return nil, nil, fmt.Errorf("unsupported form %T", f)
}

func save[T federation.Record[T, K], K comparable](ctx context.Context, col *state.Collection[T, K], isNew bool, rec T) (*Result, error) {
	if isNew {
		created := col.Create(ctx, rec)
		return &Result{Kind: col.Kind(), Key: fmt.Sprint(created.Key()), Created: true}, nil
	}
	if _, ok := col.Find(rec.Key()); !ok {
		return nil, ErrNotFound
	}
	updated := col.Update(ctx, rec)
	return &Result{Kind: col.Kind(), Key: fmt.Sprint(updated.Key())}, nil
}

// Delete removes the record of kind with the given key. It reports false when
// the backend refused or the record was not present.
func (c *Console) Delete(ctx context.Context, kind federation.Kind, key string) (bool, error) {
	switch kind {
	case federation.KindNews:
		return remove(ctx, c.state.News, key, federation.ParseIntKey)
	case federation.KindMatches:
		return remove(ctx, c.state.Matches, key, federation.ParseStringKey)
	case federation.KindGallery:
		return remove(ctx, c.state.Gallery, key, federation.ParseIntKey)
	case federation.KindDocuments:
		return remove(ctx, c.state.Documents, key, federation.ParseIntKey)
	case federation.KindPlayersMen:
		return remove(ctx, c.state.PlayersMen, key, federation.ParseIntKey)
	case federation.KindPlayersWomen:
		return remove(ctx, c.state.PlayersWomen, key, federation.ParseIntKey)
	case federation.KindClubs:
		return remove(ctx, c.state.Clubs, key, federation.ParseIntKey)
	}
	return false, fmt.Errorf("unknown resource kind %q", kind)
}

func remove[T federation.Record[T, K], K comparable](ctx context.Context, col *state.Collection[T, K], raw string, parse func(string) (K, error)) (bool, error) {
	key, err := parse(raw)
	if err != nil {
		return false, err
	}
	if _, ok := col.Find(key); !ok {
		return false, ErrNotFound
	}
	return col.Delete(ctx, key), nil
}

// EditForm returns a form pre-filled from the record of kind with key.
func (c *Console) EditForm(kind federation.Kind, key string) (Form, error) {
	switch kind {
	case federation.KindNews:
		return edit(c.state.News, key, federation.ParseIntKey, func(n federation.NewsItem) Form { return NewsFormFrom(n) })
	case federation.KindMatches:
		return edit(c.state.Matches, key, federation.ParseStringKey, func(m federation.Match) Form { return MatchFormFrom(m) })
	case federation.KindGallery:
		return edit(c.state.Gallery, key, federation.ParseIntKey, func(g federation.GalleryItem) Form { return GalleryFormFrom(g) })
	case federation.KindDocuments:
		return edit(c.state.Documents, key, federation.ParseIntKey, func(d federation.DocumentItem) Form { return DocumentFormFrom(d) })
	case federation.KindPlayersMen:
		return edit(c.state.PlayersMen, key, federation.ParseIntKey, func(p federation.Player) Form { return PlayerFormFrom(federation.Men, p) })
	case federation.KindPlayersWomen:
		return edit(c.state.PlayersWomen, key, federation.ParseIntKey, func(p federation.Player) Form { return PlayerFormFrom(federation.Women, p) })
	case federation.KindClubs:
		return edit(c.state.Clubs, key, federation.ParseIntKey, func(cl federation.Club) Form { return ClubFormFrom(cl) })
	}
	return nil, fmt.Errorf("unknown resource kind %q", kind)
}

func edit[T federation.Record[T, K], K comparable](col *state.Collection[T, K], raw string, parse func(string) (K, error), toForm func(T) Form) (Form, error) {
	key, err := parse(raw)
	if err != nil {
		return nil, err
	}
	rec, ok := col.Find(key)
	if !ok {
		return nil, ErrNotFound
	}
	return toForm(rec), nil
}
