package handlers

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"doll-web/pkg/models"
)

func TestCapitalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"ongoing", "Ongoing"},
		{"état", "État"},
		{"überarbeitet", "Überarbeitet"},
		{"123 done", "123 done"},
	}
	for _, tt := range tests {
		got := capitalize(tt.in)
		assert.Equal(t, tt.want, got)
		assert.True(t, utf8.ValidString(got), tt.in)
	}
}

func TestProjectView_StatusLabelKeepsUTF8(t *testing.T) {
	v := newProjectView(models.Project{ProjectStatus: "état"})
	assert.Equal(t, "État", v.StatusLabel)
}
