package sandbox

import (
	"fmt"
	"io"
	"strings"

	"github.com/vovakirdan/tui-craft/internal/core"
	"github.com/vovakirdan/tui-craft/internal/world"
)

// WriteText prints region r of g as plain glyph rows, one line per row.
// The region is clipped to the grid; drops print as the drop glyph.
func WriteText(w io.Writer, g *world.Grid, r core.Rect) error {
	r = r.Clip(g.Width(), g.Height())
	reg := g.Registry()

	var line strings.Builder
	for y := r.Y; y < r.Bottom(); y++ {
		line.Reset()
		for x := r.X; x < r.Right(); x++ {
			c, err := g.Get(x, y)
			if err != nil {
				return fmt.Errorf("sandbox: preview: %w", err)
			}
			if c.Pickable {
				line.WriteRune(dropGlyph)
				continue
			}
			line.WriteRune(reg.Glyph(c.Kind, 0))
		}
		line.WriteByte('\n')
		if _, err := io.WriteString(w, line.String()); err != nil {
			return err
		}
	}
	return nil
}
