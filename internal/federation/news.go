package federation

type NewsItem struct {
	ID       int      `json:"id"`
	Title    string   `json:"title" validate:"required"`
	Excerpt  string   `json:"excerpt"`
	Date     string   `json:"date"`
	ImageURL string   `json:"imageUrl"`
	Category string   `json:"category"`
	Content  []string `json:"content,omitempty"`
}

func (n NewsItem) Key() int { return n.ID }

func (n NewsItem) WithNumericID(id int) NewsItem {
	n.ID = id
	return n
}

type GalleryItem struct {
	ID       int    `json:"id"`
	Title    string `json:"title" validate:"required"`
	Category string `json:"category"`
	URL      string `json:"url"`
}

func (g GalleryItem) Key() int { return g.ID }

func (g GalleryItem) WithNumericID(id int) GalleryItem {
	g.ID = id
	return g
}
