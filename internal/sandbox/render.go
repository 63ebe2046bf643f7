package sandbox

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-craft/internal/core"
)

const (
	// framesPerGlyph slows animated kinds down to a few glyphs per second.
	framesPerGlyph = 8

	minViewW = 20
	minViewH = 6
)

// Render draws the HUD, the visible world, the player and the cursor.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.grid == nil {
		g.renderOverlay(dst, "World generation failed", fmt.Sprint(g.genErr))
		return
	}
	if g.view.w < minViewW || g.view.h < minViewH {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	g.view.blit(dst, g.reg, hudHeight, g.frame/framesPerGlyph)
	g.renderPlayer(dst)
	g.renderCursor(dst)
	g.renderHUD(dst)

	if g.paused {
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderPlayer draws the head on the top row of the box and the body below.
func (g *Game) renderPlayer(dst *core.Screen) {
	occ := g.player.Occupied()
	if !occ.Intersects(g.view.bounds()) {
		return
	}
	for y := occ.Y; y < occ.Bottom(); y++ {
		for x := occ.X; x < occ.Right(); x++ {
			sx, sy, ok := g.view.toScreen(x, y)
			if !ok {
				continue
			}
			r := 'H'
			if y == occ.Y {
				r = '@'
			}
			dst.SetColored(sx, sy+hudHeight, r, core.ColorBrightWhite)
		}
	}
}

func (g *Game) renderCursor(dst *core.Screen) {
	x, y := g.Target()
	sx, sy, ok := g.view.toScreen(x, y)
	if !ok {
		return
	}
	color := core.ColorBrightYellow
	if !g.player.InReach(x, y) {
		color = core.ColorRed
	}
	dst.SetColored(sx, sy+hudHeight, '+', color)
}

// renderHUD draws the status line and the inventory line.
func (g *Game) renderHUD(dst *core.Screen) {
	occ := g.player.Occupied()
	status := fmt.Sprintf(" %s  seed %d  pos %d,%d  dug %d  built %d  picked %d",
		g.mode.Title, g.seed, occ.X, occ.Y, g.stats.Dug, g.stats.Built, g.stats.Picked)
	dst.DrawText(0, 0, status)

	var sb strings.Builder
	sb.WriteString(" ")
	inv := g.player.Inventory()
	selected, _ := inv.Selected()
	stacks := inv.Stacks()
	if len(stacks) == 0 {
		sb.WriteString("(empty)")
	}
	for i, s := range stacks {
		if i > 0 {
			sb.WriteString(" ")
		}
		if s.Kind == selected {
			fmt.Fprintf(&sb, "[%s %d]", s.Kind, s.Count)
		} else {
			fmt.Fprintf(&sb, "%s %d", s.Kind, s.Count)
		}
	}

	tx, ty := g.Target()
	target := "-"
	if c, err := g.grid.Get(tx, ty); err == nil {
		target = g.reg.Name(c.Kind)
		if c.Pickable {
			target = g.reg.Name(c.Drop) + " (drop)"
		}
	}
	fmt.Fprintf(&sb, "  | target %d,%d %s", tx, ty, target)
	if g.status != "" {
		fmt.Fprintf(&sb, "  | %s", g.status)
	}
	dst.DrawTextColored(0, 1, sb.String(), core.ColorCyan)
}

// renderOverlay draws a centered message box with a rule between the lines.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	maxLen := max(len([]rune(line1)), len([]rune(line2)))
	boxW := maxLen + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawHLine(box.X+2, box.Y+2, boxW-4, '─')
	dst.DrawTextCentered(box.Y+3, line2)
}
