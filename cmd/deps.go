package cmd

import (
	"context"
	"fmt"
	"strings"

	"doll-web/pkg/config"
	"doll-web/pkg/services"
)

// collectionNames maps CLI names to collections.
var collectionNames = map[string]string{
	"news":       services.CollectionNews,
	"news-items": services.CollectionNews,
	"solutions":  services.CollectionSolution,
	"projects":   services.CollectionProject,
}

func resolveCollection(name string) (string, error) {
	if c, ok := collectionNames[strings.ToLower(name)]; ok {
		return c, nil
	}
	return "", fmt.Errorf("unknown collection %q (want news, solutions or projects)", name)
}

func newContentSource(ctx context.Context, c *config.Config) (services.ContentSource, error) {
	switch c.ContentSource {
	case config.SourceCMS, "":
		return services.NewStrapiSource(ctx, c.CMSURL, c.CMSToken), nil
	case config.SourceFiles:
		return services.NewFileSource(c.ContentDir), nil
	default:
		return nil, fmt.Errorf("unknown CONTENT_SOURCE %q", c.ContentSource)
	}
}

func newContentService(src services.ContentSource, c *config.Config) *services.ContentService {
	return services.NewContentService(src, services.NewAdapter(c.CMSURL), services.NewResponseCache(), c.Revalidate, c.LookupTTL)
}
