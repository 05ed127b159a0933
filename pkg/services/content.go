package services

import (
	"context"
	"time"

	"doll-web/pkg/models"
)

// ContentService fetches collections from a ContentSource, caches the raw
// payloads and adapts them into canonical records.
type ContentService struct {
	source     ContentSource
	adapter    *Adapter
	cache      *ResponseCache
	revalidate time.Duration
	lookupTTL  time.Duration
}

func NewContentService(source ContentSource, adapter *Adapter, cache *ResponseCache, revalidate, lookupTTL time.Duration) *ContentService {
	if cache == nil {
		cache = NewResponseCache()
	}
	return &ContentService{
		source:     source,
		adapter:    adapter,
		cache:      cache,
		revalidate: revalidate,
		lookupTTL:  lookupTTL,
	}
}

func (s *ContentService) Adapter() *Adapter     { return s.adapter }
func (s *ContentService) Cache() *ResponseCache { return s.cache }
func (s *ContentService) Source() ContentSource { return s.source }

// Queries used by the site, newest news first and solutions in display order.
func (s *ContentService) newsQuery() CollectionQuery {
	return CollectionQuery{Collection: CollectionNews, Sort: "publishDate:desc", Revalidate: s.revalidate}
}

func (s *ContentService) solutionsQuery() CollectionQuery {
	return CollectionQuery{Collection: CollectionSolution, Sort: "order:asc", Revalidate: s.revalidate}
}

func (s *ContentService) projectsQuery() CollectionQuery {
	return CollectionQuery{Collection: CollectionProject, Sort: "title:asc", Populate: true, Revalidate: s.revalidate}
}

// Entries fetches a collection and unwraps its entries. Source errors are
// returned as-is.
func (s *ContentService) Entries(ctx context.Context, q CollectionQuery) ([]models.RawEntry, error) {
	payload, err := s.cache.Get(ctx, q.Path(), q.Revalidate, func(ctx context.Context) ([]byte, error) {
		return s.source.FetchCollection(ctx, q)
	})
	if err != nil {
		return nil, err
	}
	return models.ParseCollection(payload), nil
}

func (s *ContentService) NewsItems(ctx context.Context) ([]models.NewsItem, error) {
	entries, err := s.Entries(ctx, s.newsQuery())
	if err != nil {
		return nil, err
	}
	return s.adapter.NewsItems(entries), nil
}

// NewsItem looks a news item up by slug, drafts included. It returns
// (nil, nil) when nothing matches.
func (s *ContentService) NewsItem(ctx context.Context, slug string) (*models.NewsItem, error) {
	entries, err := s.Entries(ctx, CollectionQuery{
		Collection: CollectionNews,
		Slug:       slug,
		Preview:    true,
		Revalidate: s.lookupTTL,
	})
	if err != nil {
		return nil, err
	}
	entry, ok := FindEntry(entries, slug)
	if !ok {
		return nil, nil
	}
	item := s.adapter.NewsItem(entry)
	return &item, nil
}

func (s *ContentService) Solutions(ctx context.Context) ([]models.Solution, error) {
	entries, err := s.Entries(ctx, s.solutionsQuery())
	if err != nil {
		return nil, err
	}
	return s.adapter.Solutions(entries), nil
}

// Solution returns (nil, nil) when no solution has the slug.
func (s *ContentService) Solution(ctx context.Context, slug string) (*models.Solution, error) {
	entries, err := s.Entries(ctx, s.solutionsQuery())
	if err != nil {
		return nil, err
	}
	entry, ok := FindEntry(entries, slug)
	if !ok {
		return nil, nil
	}
	sol := s.adapter.Solution(entry)
	return &sol, nil
}

func (s *ContentService) Projects(ctx context.Context) ([]models.Project, error) {
	entries, err := s.Entries(ctx, s.projectsQuery())
	if err != nil {
		return nil, err
	}
	return s.adapter.Projects(entries), nil
}

// Project returns (nil, nil) when no project has the slug.
func (s *ContentService) Project(ctx context.Context, slug string) (*models.Project, error) {
	entries, err := s.Entries(ctx, s.projectsQuery())
	if err != nil {
		return nil, err
	}
	entry, ok := FindEntry(entries, slug)
	if !ok {
		return nil, nil
	}
	p := s.adapter.Project(entry)
	return &p, nil
}
