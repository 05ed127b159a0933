package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// RouterConfig carries the handlers and settings the router is built from.
type RouterConfig struct {
	API           *API
	Contact       *Contact
	Preview       *Preview
	RateLimiter   *IPRateLimiter
	SessionSecret string
}

func NewRouter(rc RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	store := cookie.NewStore([]byte(rc.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))
	r.Use(DraftMode())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/news", rc.API.ListNews)
		api.GET("/news/:slug", rc.API.GetNews)
		api.GET("/solutions", rc.API.ListSolutions)
		api.GET("/solutions/:slug", rc.API.GetSolution)
		api.GET("/projects", rc.API.ListProjects)
		api.GET("/projects/:slug", rc.API.GetProject)

		contact := []gin.HandlerFunc{rc.Contact.Submit}
		if rc.RateLimiter != nil {
			contact = append([]gin.HandlerFunc{rc.RateLimiter.Middleware()}, contact...)
		}
		api.POST("/contact", contact...)

		api.GET("/preview/enable", rc.Preview.Enable)
		api.GET("/preview/disable", rc.Preview.Disable)
	}

	return r
}
