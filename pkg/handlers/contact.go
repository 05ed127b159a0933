package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"doll-web/pkg/logger"
	"doll-web/pkg/models"
	"doll-web/pkg/services"
)

// Contact accepts contact-form submissions.
type Contact struct {
	svc *services.ContactService
}

func NewContact(svc *services.ContactService) *Contact {
	return &Contact{svc: svc}
}

func (h *Contact) Submit(c *gin.Context) {
	var p models.ContactPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		logger.Error("contact submission: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": "Failed to submit form"})
		return
	}

	out, err := h.svc.Submit(c.Request.Context(), p)
	if err != nil {
		var rej *services.ContactRejection
		if errors.As(err, &rej) {
			if len(rej.Errors) > 0 {
				c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": rej.Errors})
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": rej.Message})
			}
			return
		}
		logger.Error("contact submission: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": "Failed to submit form"})
		return
	}

	if out.Warning != "" {
		c.JSON(http.StatusMultiStatus, gin.H{"ok": true, "warning": out.Warning})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
