package services

import (
	"context"
	"net/url"
	"strings"
	"time"
)

// Collection names as exposed by the content service REST API.
const (
	CollectionNews     = "news-items"
	CollectionSolution = "solutions"
	CollectionProject  = "projects"
)

// ContentSource returns raw collection payloads: a JSON object with a
// top-level "data" array of flat or nested entries.
type ContentSource interface {
	FetchCollection(ctx context.Context, q CollectionQuery) ([]byte, error)
}

// CollectionQuery describes one collection request.
type CollectionQuery struct {
	Collection string
	Sort       string // "field:asc" or "field:desc"
	Slug       string // exact slug filter
	Preview    bool   // include drafts
	Populate   bool   // populate relations and components
	Revalidate time.Duration
}

// Path renders the query as a content-service REST path.
func (q CollectionQuery) Path() string {
	var params []string
	if q.Slug != "" {
		params = append(params, "filters[slug][$eq]="+encodeURIComponent(q.Slug))
	}
	if q.Sort != "" {
		params = append(params, "sort="+q.Sort)
	}
	if q.Preview {
		params = append(params, "publicationState=preview")
	}
	if q.Populate {
		params = append(params, "populate=*")
	}

	path := "/api/" + q.Collection
	if len(params) > 0 {
		path += "?" + strings.Join(params, "&")
	}
	return path
}

func encodeURIComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// SortSpec splits a "field:dir" sort expression. Direction defaults to asc.
func (q CollectionQuery) SortSpec() (field string, desc bool) {
	if q.Sort == "" {
		return "", false
	}
	field, dir, _ := strings.Cut(q.Sort, ":")
	return field, strings.EqualFold(dir, "desc")
}
