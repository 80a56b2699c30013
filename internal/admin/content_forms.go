package admin

import (
	"net/http"
	"strings"
	"time"

	"github.com/AdamBeresnev/pbvsi-sulut/internal/federation"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/utils"
)

type NewsForm struct {
	ID       int    `form:"id"`
	Title    string `form:"title" validate:"required"`
	Category string `form:"category" validate:"required"`
	Date     string `form:"date"`
	Excerpt  string `form:"excerpt" validate:"required"`
	ImageURL string `form:"imageUrl"`
	// Content holds the article body with paragraphs separated by blank lines.
	Content string `form:"content"`
}

func NewsFormFrom(n federation.NewsItem) *NewsForm {
	return &NewsForm{
		ID:       n.ID,
		Title:    n.Title,
		Category: n.Category,
		Date:     n.Date,
		Excerpt:  n.Excerpt,
		ImageURL: n.ImageURL,
		Content:  strings.Join(n.Content, "\n\n"),
	}
}

func (f *NewsForm) Kind() federation.Kind { return federation.KindNews }
func (f *NewsForm) IsNew() bool           { return f.ID == 0 }

func (f *NewsForm) decode(r *http.Request, key string) error {
	id, err := intKey(key)
	if err != nil {
		return err
	}
	f.ID = id
	f.Title = field(r, "title")
	f.Category = field(r, "category")
	f.Date = field(r, "date")
	f.Excerpt = field(r, "excerpt")
	f.ImageURL = field(r, "imageUrl")
	f.Content = rawField(r, "content")

	up, err := readMedia(r, "imageFile", false)
	if err != nil {
		return err
	}
	if up != nil {
		f.ImageURL = up.DataURI
	}
	return nil
}

func (f *NewsForm) finish(now time.Time) map[string]string {
	errs := map[string]string{}
	if date, err := ParseDate(f.Date, now); err != nil {
		errs["date"] = err.Error()
	} else {
		f.Date = date
	}
	f.ImageURL = utils.FirstNonEmpty(f.ImageURL, PlaceholderImage)
	return errs
}

func (f *NewsForm) Record() federation.NewsItem {
	return federation.NewsItem{
		ID:       f.ID,
		Title:    f.Title,
		Category: f.Category,
		Date:     f.Date,
		Excerpt:  f.Excerpt,
		ImageURL: f.ImageURL,
		Content:  utils.Paragraphs(f.Content),
	}
}

type GalleryForm struct {
	ID       int    `form:"id"`
	Title    string `form:"title" validate:"required"`
	Category string `form:"category" validate:"required"`
	URL      string `form:"url"`
}

func GalleryFormFrom(g federation.GalleryItem) *GalleryForm {
	return &GalleryForm{ID: g.ID, Title: g.Title, Category: g.Category, URL: g.URL}
}

func (f *GalleryForm) Kind() federation.Kind { return federation.KindGallery }
func (f *GalleryForm) IsNew() bool           { return f.ID == 0 }

func (f *GalleryForm) decode(r *http.Request, key string) error {
	id, err := intKey(key)
	if err != nil {
		return err
	}
	f.ID = id
	f.Title = field(r, "title")
	f.Category = field(r, "category")
	f.URL = field(r, "url")

	up, err := readMedia(r, "file", true)
	if err != nil {
		return err
	}
	if up != nil {
		f.URL = up.DataURI
	}
	return nil
}

func (f *GalleryForm) finish(time.Time) map[string]string {
	f.URL = utils.FirstNonEmpty(f.URL, PlaceholderImage)
	return nil
}

func (f *GalleryForm) Record() federation.GalleryItem {
	return federation.GalleryItem{ID: f.ID, Title: f.Title, Category: f.Category, URL: f.URL}
}

type DocumentForm struct {
	ID       int    `form:"id"`
	Title    string `form:"title" validate:"required"`
	Category string `form:"category" validate:"required"`
	Type     string `form:"type"`
	Size     string `form:"size"`
	Date     string `form:"date"`
	URL      string `form:"url"`
}

func DocumentFormFrom(d federation.DocumentItem) *DocumentForm {
	return &DocumentForm{
		ID:       d.ID,
		Title:    d.Title,
		Category: d.Category,
		Type:     d.Type,
		Size:     d.Size,
		Date:     d.Date,
		URL:      d.URL,
	}
}

func (f *DocumentForm) Kind() federation.Kind { return federation.KindDocuments }
func (f *DocumentForm) IsNew() bool           { return f.ID == 0 }

func (f *DocumentForm) decode(r *http.Request, key string) error {
	id, err := intKey(key)
	if err != nil {
		return err
	}
	f.ID = id
	f.Title = field(r, "title")
	f.Category = field(r, "category")
	f.Type = field(r, "type")
	f.Size = field(r, "size")
	f.Date = field(r, "date")
	f.URL = field(r, "url")

	up, err := readUpload(r, "file", federation.MaxDocumentBytes)
	if err != nil {
		return err
	}
	if up != nil {
		f.AttachFile(up)
	}
	return nil
}

// AttachFile embeds an uploaded document and derives its size and type
// labels. The title is taken from the filename only when it is still empty.
func (f *DocumentForm) AttachFile(up *Upload) {
	f.URL = up.DataURI
	f.Size = federation.DocumentSizeLabel(up.Size)
	f.Type = federation.DocumentTypeLabel(up.Filename)
	if f.Title == "" {
		f.Title = up.Filename
	}
}

func (f *DocumentForm) finish(now time.Time) map[string]string {
	errs := map[string]string{}
	if date, err := ParseDate(f.Date, now); err != nil {
		errs["date"] = err.Error()
	} else {
		f.Date = date
	}
	f.Type = utils.FirstNonEmpty(f.Type, DefaultDocumentType)
	f.Size = utils.FirstNonEmpty(f.Size, DefaultDocumentSize)
	return errs
}

func (f *DocumentForm) Record() federation.DocumentItem {
	return federation.DocumentItem{
		ID:       f.ID,
		Title:    f.Title,
		Category: f.Category,
		Type:     f.Type,
		Size:     f.Size,
		Date:     f.Date,
		URL:      f.URL,
	}
}
