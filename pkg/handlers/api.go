package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"doll-web/pkg/logger"
	"doll-web/pkg/models"
	"doll-web/pkg/services"
)

const recentNewsLimit = 5

// API serves the site's content as JSON with rendered HTML alongside.
type API struct {
	content *services.ContentService
}

func NewAPI(content *services.ContentService) *API {
	return &API{content: content}
}

func (a *API) ListNews(c *gin.Context) {
	items, err := a.content.NewsItems(c.Request.Context())
	if err != nil {
		respondFetchError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapViews(items, newNewsItemView))
}

// GetNews returns one item plus up to five other recent items.
func (a *API) GetNews(c *gin.Context) {
	slug := c.Param("slug")
	ctx := c.Request.Context()

	var (
		item *models.NewsItem
		all  []models.NewsItem
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		item, err = a.content.NewsItem(gctx, slug)
		return err
	})
	g.Go(func() error {
		var err error
		all, err = a.content.NewsItems(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		respondFetchError(c, err)
		return
	}

	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "News item not found"})
		return
	}

	recent := make([]newsItemView, 0, recentNewsLimit)
	for _, other := range all {
		if other.Slug == item.Slug {
			continue
		}
		if len(recent) == recentNewsLimit {
			break
		}
		recent = append(recent, newNewsItemView(other))
	}

	c.JSON(http.StatusOK, gin.H{"item": newNewsItemView(*item), "recent": recent})
}

func (a *API) ListSolutions(c *gin.Context) {
	items, err := a.content.Solutions(c.Request.Context())
	if err != nil {
		respondFetchError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapViews(items, newSolutionView))
}

func (a *API) GetSolution(c *gin.Context) {
	s, err := a.content.Solution(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondFetchError(c, err)
		return
	}
	if s == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Solution not found"})
		return
	}
	c.JSON(http.StatusOK, newSolutionView(*s))
}

func (a *API) ListProjects(c *gin.Context) {
	items, err := a.content.Projects(c.Request.Context())
	if err != nil {
		respondFetchError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapViews(items, newProjectView))
}

func (a *API) GetProject(c *gin.Context) {
	p, err := a.content.Project(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondFetchError(c, err)
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}
	c.JSON(http.StatusOK, newProjectView(*p))
}

func respondFetchError(c *gin.Context, err error) {
	logger.Error("content fetch failed: %v", err)

	var fe *models.FetchError
	if errors.As(err, &fe) {
		c.JSON(http.StatusBadGateway, gin.H{"error": fe.Error(), "upstreamStatus": fe.StatusCode})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch content"})
}
