package runner

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/reef-runner/internal/core"
)

// Visual characters for rendering
const (
	PlayerChar     = '█'
	GroundChar     = '═'
	BlockChar      = '▓'
	TallChar       = '█'
	SpikeChar      = '▲'
	FlyingChar     = '≈'
	WalkerChar     = '◘'
	ShooterChar    = '╬'
	FallingChar    = '▼'
	BouncerChar    = '●'
	DashChar       = '«'
	ZigzagChar     = '∿'
	TeleSolidChar  = '▒'
	TeleFaintChar  = '░'
	PattyChar      = '◉'
	OrbChar        = '?'
	PlayerShotChar = '-'
	EnemyShotChar  = '•'
	HeartChar      = '♥'
)

var decorationChars = [...]rune{'~', '>', '∝', '¤'}

// viewport maps field pixels to screen cells. Row 0 is the HUD.
type viewport struct {
	sx, sy float64
	top    int
}

func newViewport(dst *core.Screen, fieldW, fieldH float64) viewport {
	return viewport{
		sx:  float64(dst.Width()) / fieldW,
		sy:  float64(dst.Height()-1) / fieldH,
		top: 1,
	}
}

// cells converts a field rect to a cell rect at least one cell in size.
func (v viewport) cells(x, y, w, h float64) (int, int, int, int) {
	cx0 := int(x * v.sx)
	cy0 := int(y*v.sy) + v.top
	cx1 := int((x + w) * v.sx)
	cy1 := int((y+h)*v.sy) + v.top
	if cx1 <= cx0 {
		cx1 = cx0 + 1
	}
	if cy1 <= cy0 {
		cy1 = cy0 + 1
	}
	return cx0, cy0, cx1 - cx0, cy1 - cy0
}

func (v viewport) fill(dst *core.Screen, x, y, w, h float64, r rune, c core.Color) {
	cx, cy, cw, ch := v.cells(x, y, w, h)
	dst.FillRect(cx, cy, cw, ch, r, c)
}

// Render draws the current session to dst, scaling the field to fit.
func (s *Session) Render(dst *core.Screen) {
	dst.Clear()
	snap := s.Snapshot()
	field := s.cfg.Field
	vp := newViewport(dst, field.Width, field.Height)

	for _, d := range snap.Decorations {
		vp.fill(dst, d.X, d.Y, 1, 1, decorationChars[d.Variant%len(decorationChars)], core.ColorGray)
	}

	// Ground line with gaps over pits
	_, groundRow, _, _ := vp.cells(0, field.GroundY, field.Width, 1)
	dst.DrawHLine(0, groundRow, dst.Width(), GroundChar, core.ColorGreen)
	for _, o := range snap.Obstacles {
		if o.Kind == KindPit.String() {
			vp.fill(dst, o.X, o.Y, o.W, o.H, ' ', core.ColorDefault)
		}
	}

	for _, o := range snap.Obstacles {
		drawObstacle(dst, vp, o)
	}
	for _, c := range snap.Collectibles {
		if c.Kind == CollectRiddleOrb.String() {
			vp.fill(dst, c.X, c.Y, c.W, c.H, OrbChar, core.ColorBrightCyan)
		} else {
			vp.fill(dst, c.X, c.Y, c.W, c.H, PattyChar, core.ColorOrange)
		}
	}
	for _, p := range snap.Projectiles {
		if p.Owner == OwnerPlayer.String() {
			vp.fill(dst, p.X, p.Y, p.W, p.H, PlayerShotChar, core.ColorBrightGreen)
		} else {
			vp.fill(dst, p.X, p.Y, p.W, p.H, EnemyShotChar, core.ColorRed)
		}
	}

	// Blink while the post-hit window runs
	pl := snap.Player
	if pl.Invulnerable == 0 || (pl.Invulnerable/4)%2 == 0 {
		color := core.ColorBrightYellow
		if snap.PowerUp != "" {
			color = core.ColorBrightWhite
		}
		vp.fill(dst, pl.X, pl.Y, pl.W, pl.H, PlayerChar, color)
	}

	drawHUD(dst, snap)

	switch {
	case snap.Phase == PhaseGameOver.String():
		drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", snap.Score))
	case snap.Paused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case snap.Quiz != nil:
		drawCenteredMessage(dst, "QUIZ!", "Answer with 1-4")
	}
}

// drawObstacle renders one obstacle with its kind's glyph.
func drawObstacle(dst *core.Screen, vp viewport, o ObstacleView) {
	var r rune
	c := core.ColorYellow

	switch o.Kind {
	case KindPit.String():
		return
	case KindBlock.String():
		r = BlockChar
	case KindTallBlock.String():
		r = TallChar
	case KindSpike.String():
		r, c = SpikeChar, core.ColorRed
	case KindFlying.String():
		r, c = FlyingChar, core.ColorMagenta
	case KindGroundWalker.String():
		r, c = WalkerChar, core.ColorOrange
	case KindShooter.String():
		r, c = ShooterChar, core.ColorBrightRed
	case KindFalling.String():
		r, c = FallingChar, core.ColorGray
		if o.Active {
			c = core.ColorRed
		}
	case KindBouncer.String():
		r, c = BouncerChar, core.ColorBrightMagenta
	case KindDasher.String():
		r, c = DashChar, core.ColorBrightYellow
		if o.Dashing {
			c = core.ColorBrightRed
		}
	case KindZigzagger.String():
		r, c = ZigzagChar, core.ColorCyan
	case KindTeleporter.String():
		r, c = TeleSolidChar, core.ColorBrightBlue
		if o.Alpha < 0.3 {
			r, c = TeleFaintChar, core.ColorBlue
		}
		if o.Alpha <= 0 {
			return
		}
	default:
		r = BlockChar
	}
	vp.fill(dst, o.X, o.Y, o.W, o.H, r, c)
}

// drawHUD renders score, lives, scene and difficulty on the top row.
func drawHUD(dst *core.Screen, snap Snapshot) {
	left := fmt.Sprintf(" Score: %d  %s ", snap.Score, strings.Repeat(string(HeartChar), snap.Lives))
	dst.DrawTextColored(0, 0, left, core.ColorBrightWhite)

	right := fmt.Sprintf(" %s  x%.1f T%d ", snap.Scene, snap.Multiplier, snap.Tier)
	if snap.PowerUp != "" {
		right = fmt.Sprintf(" %s %d%% |%s", snap.PowerUp, int(snap.PowerUpFraction*100), right)
	}
	dst.DrawTextColored(dst.Width()-len([]rune(right)), 0, right, core.ColorCyan)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.FillRect(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH)

	titleX := boxX + (boxW-len([]rune(title)))/2
	dst.DrawText(titleX, boxY+1, title)

	subtitleX := boxX + (boxW-len([]rune(subtitle)))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}
