package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderFormatsMarkdown(t *testing.T) {
	out := string(Render("**Kompresor** rusak\n\n- cek freon\n- ganti kapasitor"))
	assert.Contains(t, out, "<strong>Kompresor</strong>")
	assert.Contains(t, out, "<li>cek freon</li>")
}

func TestRenderStripsScripts(t *testing.T) {
	out := string(Render(`halo <script>alert(1)</script> [x](javascript:alert(1))`))
	assert.False(t, strings.Contains(out, "<script>"))
	assert.False(t, strings.Contains(out, "javascript:"))
}
