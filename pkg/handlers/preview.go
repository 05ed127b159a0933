package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"doll-web/pkg/logger"
	"doll-web/pkg/services"
)

const (
	sessionName    = "doll_session"
	previewSession = "preview"
)

// Preview toggles draft mode for the current browser session.
type Preview struct {
	secret string
}

func NewPreview(secret string) *Preview {
	return &Preview{secret: secret}
}

func (p *Preview) Enable(c *gin.Context) {
	if p.secret == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Preview mode is disabled"})
		return
	}
	given := c.Query("secret")
	if subtle.ConstantTimeCompare([]byte(given), []byte(p.secret)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid preview secret"})
		return
	}

	session := sessions.Default(c)
	session.Set(previewSession, true)
	if err := session.Save(); err != nil {
		logger.Error("saving session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enable preview"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"preview": true})
}

func (p *Preview) Disable(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete(previewSession)
	if err := session.Save(); err != nil {
		logger.Error("saving session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to disable preview"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"preview": false})
}

// DraftMode marks requests from a previewing session so the content
// service skips its cache.
func DraftMode() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if on, _ := session.Get(previewSession).(bool); on {
			c.Request = c.Request.WithContext(services.WithDraftMode(c.Request.Context()))
		}
		c.Next()
	}
}
