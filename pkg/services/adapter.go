package services

import (
	"strings"

	"github.com/tidwall/gjson"

	"doll-web/pkg/models"
)

// Adapter maps raw CMS entries onto canonical records. It holds only the
// content-service base URL used to absolutize media paths, so every method
// is a pure function of its inputs.
type Adapter struct {
	baseURL string
}

func NewAdapter(baseURL string) *Adapter {
	return &Adapter{baseURL: baseURL}
}

func (a *Adapter) BaseURL() string { return a.baseURL }

// NormalizeURL leaves absent values absent, passes anything starting with
// "http" through, and prefixes everything else with the base URL.
func (a *Adapter) NormalizeURL(u *string) *string {
	if u == nil || *u == "" {
		return nil
	}
	if strings.HasPrefix(*u, "http") {
		return u
	}
	abs := a.baseURL + *u
	return &abs
}

func (a *Adapter) NewsItem(e models.RawEntry) models.NewsItem {
	f := e.Fields
	return models.NewsItem{
		ID:          e.ID,
		Title:       stringField(f, "title"),
		Slug:        stringField(f, "slug"),
		PublishDate: stringField(f, "publishDate"),
		Category:    stringField(f, "category"),
		Summary:     stringField(f, "summary"),
		Body:        models.RichContentFrom(f.Get("body")),
		CtaURL:      optionalString(f, "ctaUrl"),
		ImageURL:    a.NormalizeURL(optionalString(f, "heroImageUrl")),
	}
}

func (a *Adapter) Solution(e models.RawEntry) models.Solution {
	f := e.Fields
	order := 0
	if v := f.Get("order"); v.Type == gjson.Number {
		order = int(v.Int())
	}
	return models.Solution{
		ID:          e.ID,
		Title:       stringField(f, "title"),
		Slug:        stringField(f, "slug"),
		Excerpt:     stringField(f, "excerpt"),
		Description: stringField(f, "description"),
		Order:       order,
		ImageURL:    a.NormalizeURL(optionalString(f, "imageUrl")),
	}
}

func (a *Adapter) Project(e models.RawEntry) models.Project {
	f := e.Fields
	return models.Project{
		ID:            e.ID,
		Title:         stringField(f, "title"),
		Slug:          stringField(f, "slug"),
		Summary:       stringField(f, "summary"),
		Description:   stringField(f, "description"),
		ProjectStatus: stringField(f, "projectStatus"),
		Link:          optionalString(f, "link"),
		ProjectType:   optionalString(f, "projectType"),
		Timeline:      optionalString(f, "timeline"),
		Tools:         stringList(f.Get("tools")),
		HeroImageURL:  a.NormalizeURL(optionalString(f, "heroImageUrl")),
		BodySections:  bodySections(f.Get("bodySections")),
	}
}

func (a *Adapter) NewsItems(entries []models.RawEntry) []models.NewsItem {
	out := make([]models.NewsItem, 0, len(entries))
	for _, e := range entries {
		out = append(out, a.NewsItem(e))
	}
	return out
}

func (a *Adapter) Solutions(entries []models.RawEntry) []models.Solution {
	out := make([]models.Solution, 0, len(entries))
	for _, e := range entries {
		out = append(out, a.Solution(e))
	}
	return out
}

func (a *Adapter) Projects(entries []models.RawEntry) []models.Project {
	out := make([]models.Project, 0, len(entries))
	for _, e := range entries {
		out = append(out, a.Project(e))
	}
	return out
}

// FindEntry returns the entry whose slug equals slug exactly.
func FindEntry(entries []models.RawEntry, slug string) (models.RawEntry, bool) {
	for _, e := range entries {
		if e.Fields.Get("slug").Type == gjson.String && e.Slug() == slug {
			return e, true
		}
	}
	return models.RawEntry{}, false
}

// Sluggable is implemented by every canonical record.
type Sluggable interface {
	GetSlug() string
}

// FindBySlug returns the record whose slug equals slug exactly.
func FindBySlug[T Sluggable](records []T, slug string) (T, bool) {
	for _, r := range records {
		if r.GetSlug() == slug {
			return r, true
		}
	}
	var zero T
	return zero, false
}

// bodySections reads project sections. Section image URLs are used as
// authored and never pass through NormalizeURL.
func bodySections(v gjson.Result) []models.BodySection {
	if !v.IsArray() {
		return nil
	}
	sections := []models.BodySection{}
	v.ForEach(func(_, s gjson.Result) bool {
		if !s.IsObject() {
			return true
		}
		sections = append(sections, models.BodySection{
			Heading:  stringField(s, "heading"),
			Body:     models.RichContentFrom(s.Get("body")),
			ImageURL: optionalString(s, "imageUrl"),
		})
		return true
	})
	return sections
}

func stringField(f gjson.Result, key string) string {
	if v := f.Get(key); v.Type == gjson.String {
		return v.String()
	}
	return ""
}

func optionalString(f gjson.Result, key string) *string {
	v := f.Get(key)
	if v.Type != gjson.String {
		return nil
	}
	s := v.String()
	return &s
}

func stringList(v gjson.Result) []string {
	if !v.IsArray() {
		return nil
	}
	list := []string{}
	for _, item := range v.Array() {
		if item.Type == gjson.String {
			list = append(list, item.String())
		}
	}
	return list
}
