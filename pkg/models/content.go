package models

// NewsItem is the canonical newsroom record.
type NewsItem struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Slug        string      `json:"slug"`
	PublishDate string      `json:"publishDate"`
	Category    string      `json:"category"`
	Summary     string      `json:"summary"`
	Body        RichContent `json:"body"`
	CtaURL      *string     `json:"ctaUrl"`
	ImageURL    *string     `json:"imageUrl"`
}

// Solution is the canonical solution record.
type Solution struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Excerpt     string  `json:"excerpt"`
	Description string  `json:"description"`
	Order       int     `json:"order"`
	ImageURL    *string `json:"imageUrl"`
}

// Project is the canonical project record.
type Project struct {
	ID            int64         `json:"id"`
	Title         string        `json:"title"`
	Slug          string        `json:"slug"`
	Summary       string        `json:"summary"`
	Description   string        `json:"description"`
	ProjectStatus string        `json:"projectStatus"`
	Link          *string       `json:"link"`
	ProjectType   *string       `json:"projectType"`
	Timeline      *string       `json:"timeline"`
	Tools         []string      `json:"tools"`
	HeroImageURL  *string       `json:"heroImageUrl"`
	BodySections  []BodySection `json:"bodySections"`
}

// BodySection is one titled section of a project page. ImageURL is used as
// authored.
type BodySection struct {
	Heading  string      `json:"heading"`
	Body     RichContent `json:"body"`
	ImageURL *string     `json:"imageUrl"`
}

func (n NewsItem) GetSlug() string { return n.Slug }
func (s Solution) GetSlug() string { return s.Slug }
func (p Project) GetSlug() string  { return p.Slug }
