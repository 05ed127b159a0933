package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestIPRateLimiter_Allow(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewIPRateLimiter(2)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("1.1.1.1"))
	assert.True(t, l.Allow("1.1.1.1"))
	assert.False(t, l.Allow("1.1.1.1"))
	assert.True(t, l.Allow("2.2.2.2"))

	now = now.Add(30 * time.Second)
	assert.True(t, l.Allow("1.1.1.1"))
	assert.False(t, l.Allow("1.1.1.1"))
}

func TestIPRateLimiter_ForgetsIdleClients(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewIPRateLimiter(1)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("1.1.1.1"))
	now = now.Add(visitorTTL + time.Second)
	assert.True(t, l.Allow("2.2.2.2"))
	assert.Len(t, l.visitors, 1)
}

func TestIPRateLimiter_Middleware(t *testing.T) {
	l := NewIPRateLimiter(1)
	r := gin.New()
	r.POST("/contact", l.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/contact", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, http.MethodPost, "/contact", nil).Code)
}
