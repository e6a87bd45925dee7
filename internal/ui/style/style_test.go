package style_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/knit/internal/ui/style"
)

func TestNewStyles_PlainForNonTerminals(t *testing.T) {
	var buf bytes.Buffer
	s := style.NewStyles(&buf)

	assert.Equal(t, "leftpad", s.Name.Render("leftpad"))
	assert.Equal(t, "/pkgs/leftpad/index.js", s.Path.Render("/pkgs/leftpad/index.js"))
	assert.Equal(t, "3 modules", s.Muted.Render("3 modules"))
	assert.Equal(t, style.Check, s.Success.Render(style.Check))
}
