package federation

import (
	"errors"
	"fmt"
	"strconv"
)

var ErrInvalidKey = errors.New("invalid record key")

// Record is implemented by every managed resource type. K is the identifier
// type (int for most resources, string for matches).
type Record[T any, K comparable] interface {
	Key() K
	// WithNumericID returns a copy of the record carrying the given id.
	WithNumericID(n int) T
}

type Kind string

const (
	KindNews         Kind = "news"
	KindMatches      Kind = "matches"
	KindGallery      Kind = "gallery"
	KindDocuments    Kind = "documents"
	KindPlayersMen   Kind = "players-men"
	KindPlayersWomen Kind = "players-women"
	KindClubs        Kind = "clubs"
)

var Kinds = []Kind{KindNews, KindMatches, KindGallery, KindDocuments, KindPlayersMen, KindPlayersWomen, KindClubs}

func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown resource kind %q", s)
}

func ParseIntKey(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %w", ErrInvalidKey, s, err)
	}
	return id, nil
}

func ParseStringKey(s string) (string, error) {
	if s == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidKey)
	}
	return s, nil
}

type Gender string

const (
	Men   Gender = "Men"
	Women Gender = "Women"
)

func (g Gender) Kind() Kind {
	if g == Women {
		return KindPlayersWomen
	}
	return KindPlayersMen
}
