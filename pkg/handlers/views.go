package handlers

import (
	"unicode"
	"unicode/utf8"

	"doll-web/pkg/models"
	"doll-web/pkg/services"
)

const excerptLength = 200

type newsItemView struct {
	models.NewsItem
	BodyHTML string `json:"bodyHtml"`
	Excerpt  string `json:"excerpt"`
}

type solutionView struct {
	models.Solution
	DescriptionHTML string `json:"descriptionHtml"`
}

type sectionView struct {
	Heading  string  `json:"heading"`
	BodyHTML string  `json:"bodyHtml"`
	ImageURL *string `json:"imageUrl"`
}

type projectView struct {
	models.Project
	DescriptionHTML string        `json:"descriptionHtml"`
	StatusLabel     string        `json:"statusLabel"`
	HeroImage       *string       `json:"heroImage"`
	Sections        []sectionView `json:"sections"`
}

func newNewsItemView(item models.NewsItem) newsItemView {
	body := services.RenderContent(item.Body)
	excerpt := item.Summary
	if excerpt == "" {
		excerpt = services.Excerpt(body, excerptLength)
	}
	return newsItemView{NewsItem: item, BodyHTML: body, Excerpt: excerpt}
}

func newSolutionView(s models.Solution) solutionView {
	return solutionView{Solution: s, DescriptionHTML: services.RenderRichTextString(s.Description)}
}

func newProjectView(p models.Project) projectView {
	sections := make([]sectionView, 0, len(p.BodySections))
	for _, s := range p.BodySections {
		sections = append(sections, sectionView{
			Heading:  s.Heading,
			BodyHTML: services.RenderContent(s.Body),
			ImageURL: s.ImageURL,
		})
	}
	return projectView{
		Project:         p,
		DescriptionHTML: services.RenderRichTextString(p.Description),
		StatusLabel:     capitalize(p.ProjectStatus),
		HeroImage:       heroImage(p),
		Sections:        sections,
	}
}

// heroImage falls back to the first section that has an image.
func heroImage(p models.Project) *string {
	if p.HeroImageURL != nil {
		return p.HeroImageURL
	}
	for _, s := range p.BodySections {
		if s.ImageURL != nil && *s.ImageURL != "" {
			return s.ImageURL
		}
	}
	return nil
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func mapViews[T, V any](items []T, fn func(T) V) []V {
	out := make([]V, 0, len(items))
	for _, it := range items {
		out = append(out, fn(it))
	}
	return out
}
