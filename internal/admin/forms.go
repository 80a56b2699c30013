// Package admin turns admin console submissions into records. Each managed
// resource has its own form type; Form is the union over them.
package admin

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/AdamBeresnev/pbvsi-sulut/internal/federation"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/httputil"
)

const (
	PlaceholderImage     = "https://picsum.photos/800/600"
	DefaultMatchCategory = "Babak Penyisihan"
	DefaultClubStatus    = "Aktif"
	DefaultDocumentType  = "PDF"
	DefaultDocumentSize  = "1 MB"
	DefaultHand          = "Kanan"
	SquadPosition        = "Player"
)

// Form is one of *NewsForm, *MatchForm, *GalleryForm, *DocumentForm,
// *PlayerForm or *ClubForm.
type Form interface {
	Kind() federation.Kind
	// IsNew reports whether submitting the form creates a record.
	IsNew() bool
	decode(r *http.Request, key string) error
	// finish applies defaults and parses typed fields, returning field errors.
	finish(now time.Time) map[string]string
}

// AvatarURL is the generated picture used when no image or logo is given.
func AvatarURL(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=random"
}

// NewForm returns an empty form for kind.
func NewForm(kind federation.Kind) (Form, error) {
	switch kind {
	case federation.KindNews:
		return &NewsForm{}, nil
	case federation.KindMatches:
		return &MatchForm{}, nil
	case federation.KindGallery:
		return &GalleryForm{}, nil
	case federation.KindDocuments:
		return &DocumentForm{}, nil
	case federation.KindPlayersMen:
		return &PlayerForm{Gender: federation.Men}, nil
	case federation.KindPlayersWomen:
		return &PlayerForm{Gender: federation.Women}, nil
	case federation.KindClubs:
		return &ClubForm{}, nil
	}
	return nil, fmt.Errorf("no admin form for %q", kind)
}

// Decode reads a submission into the form for kind. An empty key creates a
// record, otherwise the form edits the record with that key. On an
// *UploadError the returned form still carries every text field so it can be
// shown again.
func Decode(kind federation.Kind, key string, r *http.Request) (Form, error) {
	f, err := NewForm(kind)
	if err != nil {
		return nil, err
	}
	if err := parseSubmission(r); err != nil {
		return f, err
	}
	return f, f.decode(r, key)
}

// Check validates f and fills in defaults. It returns nil when f can be saved.
func Check(f Form, now time.Time) map[string]string {
	errs := httputil.FieldErrors(httputil.Validate(f))
	if errs == nil {
		errs = map[string]string{}
	}
	for field, msg := range f.finish(now) {
		if _, ok := errs[field]; !ok {
			errs[field] = msg
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func field(r *http.Request, name string) string {
	return strings.TrimSpace(r.PostFormValue(name))
}

func rawField(r *http.Request, name string) string {
	return r.PostFormValue(name)
}

func intKey(key string) (int, error) {
	if key == "" {
		return 0, nil
	}
	return federation.ParseIntKey(key)
}
