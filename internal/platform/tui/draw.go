package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-galaxia/internal/config"
	"github.com/vovakirdan/tui-galaxia/internal/core"
	"github.com/vovakirdan/tui-galaxia/internal/encounter"
	"github.com/vovakirdan/tui-galaxia/internal/progression"
	"github.com/vovakirdan/tui-galaxia/internal/sim"
)

// palette maps core.Color to ANSI 256-color codes.
var palette = [...]string{
	core.ColorDefault:       "",
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

var colorStyles = func() []lipgloss.Style {
	out := make([]lipgloss.Style, len(palette))
	for i, code := range palette {
		out[i] = lipgloss.NewStyle()
		if code != "" {
			out[i] = out[i].Foreground(lipgloss.Color(code))
		}
	}
	return out
}()

// RenderScreen converts a Screen buffer to a styled string. Runs of cells
// with the same color share one escape sequence.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}
		x := 0
		for x < s.Width() {
			c := s.GetCell(x, y).Color
			run.Reset()
			for x < s.Width() && s.GetCell(x, y).Color == c {
				run.WriteRune(s.GetCell(x, y).Rune)
				x++
			}
			style := colorStyles[core.ColorDefault]
			if int(c) < len(colorStyles) {
				style = colorStyles[c]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

const (
	hudRows     = 2
	footerRows  = 1
	minFieldW   = 20
	minFieldH   = 12
	cellAspect  = 2.0 // terminal cells are about twice as tall as wide
	overlayPadX = 2
)

// field maps world coordinates onto a rectangle of the screen.
type field struct {
	x0, y0 int
	w, h   int
	sx, sy float64
}

func newField(dst *core.Screen, arena config.ArenaConfig) (field, bool) {
	h := dst.Height() - hudRows - footerRows - 2
	w := int(float64(h) * arena.Width / arena.Height * cellAspect)
	w = min(w, dst.Width()-2)
	if w < minFieldW || h < minFieldH {
		return field{}, false
	}
	return field{
		x0: (dst.Width()-w)/2 + 1,
		y0: hudRows + 1,
		w:  w,
		h:  h,
		sx: float64(w) / arena.Width,
		sy: float64(h) / arena.Height,
	}, true
}

func (f field) col(x float64) int {
	return f.x0 + int(math.Floor(x*f.sx))
}

func (f field) row(y float64) int {
	return f.y0 + int(math.Floor(y*f.sy))
}

func (f field) inside(c, r int) bool {
	return c >= f.x0 && c < f.x0+f.w && r >= f.y0 && r < f.y0+f.h
}

func (f field) set(dst *core.Screen, x, y float64, ch rune, c core.Color) {
	cc, rr := f.col(x), f.row(y)
	if f.inside(cc, rr) {
		dst.SetColored(cc, rr, ch, c)
	}
}

func (f field) text(dst *core.Screen, x, y float64, s string, c core.Color) {
	cc, rr := f.col(x)-len([]rune(s))/2, f.row(y)
	for i, ch := range []rune(s) {
		if f.inside(cc+i, rr) {
			dst.SetColored(cc+i, rr, ch, c)
		}
	}
}

// Frame describes what the host knows beyond the snapshot.
type Frame struct {
	Snapshot sim.Snapshot
	Config   config.ShooterConfig
	Record   progression.Record
	MenuHero progression.Hero
	MenuHard bool
	Status   string // last host message, e.g. a refused purchase
}

// Draw renders one frame of the game into dst.
func Draw(dst *core.Screen, fr Frame) {
	dst.Clear()
	s := fr.Snapshot
	f, ok := newField(dst, fr.Config.Arena)
	if !ok {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small", core.ColorBrightRed)
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need at least %dx%d", minFieldW+2, minFieldH+hudRows+footerRows+2), core.ColorGray)
		return
	}

	if s.Mode == sim.ModeIdle {
		drawTitle(dst, fr)
		return
	}

	drawHUD(dst, s)
	dst.DrawBox(core.NewRect(f.x0-1, f.y0-1, f.w+2, f.h+2), core.ColorGray)

	drawHazards(dst, f, s, fr.Config)
	drawAsteroids(dst, f, s)
	drawEnemies(dst, f, s)
	drawBoss(dst, f, s)
	drawTargets(dst, f, s)
	for _, p := range s.PowerUps {
		f.set(dst, p.X, p.Y, powerUpGlyph(p.Kind), core.ColorBrightGreen)
	}
	for _, p := range s.Projectiles {
		f.set(dst, p.X, p.Y, '|', core.ColorBrightYellow)
	}
	for _, p := range s.EnemyProjectiles {
		f.set(dst, p.X, p.Y, '•', core.ColorBrightRed)
	}
	drawPlayer(dst, f, s, fr.Config)
	drawEffects(dst, f, s)
	drawOverlay(dst, f, fr)

	if fr.Status != "" {
		dst.DrawTextCentered(dst.Height()-1, fr.Status, core.ColorYellow)
	}
}

func drawHUD(dst *core.Screen, s sim.Snapshot) {
	left := fmt.Sprintf(" Score %d  Lv %d  Streak %d", s.Score, s.Level, s.Streak)
	dst.DrawTextColored(0, 0, left, core.ColorBrightWhite)
	right := fmt.Sprintf("$%d  ⚙%d  Bank $%d ", s.Currency, s.Parts, s.Bank)
	dst.DrawTextColored(dst.Width()-len([]rune(right)), 0, right, core.ColorYellow)

	p := s.Player
	ammo := fmt.Sprintf(" Ammo %d/%d", p.Ammo, p.MaxAmmo)
	if p.Reloading(s.Now) {
		ammo = fmt.Sprintf(" Reloading %.1fs", (p.ReloadAt-s.Now)/1000)
	}
	dst.DrawTextColored(0, 1, ammo, core.ColorCyan)

	var tags []string
	if p.Shield > 0 {
		tags = append(tags, fmt.Sprintf("Shield %d", p.Shield))
	}
	if p.HasRevive {
		tags = append(tags, "Revive")
	}
	for i, until := range s.Buffs {
		if left := until - s.Now; left > 0 {
			tags = append(tags, fmt.Sprintf("%s %.0fs", sim.PowerUpKind(i), math.Ceil(left/1000)))
		}
	}
	if s.Insight {
		tags = append(tags, "Insight")
	}
	if s.HardMode {
		tags = append(tags, "HARD")
	}
	dst.DrawTextColored(18, 1, strings.Join(tags, "  "), core.ColorBrightGreen)

	if b := s.Boss; b != nil {
		bar := healthBar(b.Ratio(), 20)
		text := fmt.Sprintf("%s %s ", strings.ToUpper(b.Kind.String()), bar)
		dst.DrawTextColored(dst.Width()-len([]rune(text)), 1, text, core.ColorBrightMagenta)
	}
	if s.Mode == sim.ModeAsteroidField {
		text := fmt.Sprintf("Field %.0fs ", math.Max(0, s.FieldEndsAt-s.Now)/1000)
		dst.DrawTextColored(dst.Width()-len(text), 1, text, core.ColorOrange)
	}
}

func healthBar(ratio float64, width int) string {
	n := int(math.Round(core.ClampF(ratio, 0, 1) * float64(width)))
	return "[" + strings.Repeat("█", n) + strings.Repeat("░", width-n) + "]"
}

func drawHazards(dst *core.Screen, f field, s sim.Snapshot, cfg config.ShooterConfig) {
	lanes := cfg.Arena.LaneCount
	for _, l := range s.Lasers {
		ch, c := '┆', core.ColorGray
		if l.Firing(s.Now) {
			ch, c = '┃', core.ColorBrightRed
		}
		laneW := cfg.Arena.Width / float64(lanes)
		lo, hi := f.col(float64(l.Lane)*laneW), f.col(float64(l.Lane+1)*laneW)
		for r := f.y0; r < f.y0+f.h; r++ {
			for cc := lo; cc < max(hi, lo+1); cc++ {
				if f.inside(cc, r) {
					dst.SetColored(cc, r, ch, c)
				}
			}
		}
	}
	for _, b := range s.Beams {
		r := f.row(b.Y)
		for c := f.x0; c < f.x0+f.w; c++ {
			dst.SetColored(c, r, '═', core.ColorOrange)
		}
	}
	b := s.Boss
	if b == nil || b.Kind != sim.Overmind {
		return
	}
	if b.Phase != sim.PhaseChargingBeam && b.Phase != sim.PhaseFiringBeam {
		return
	}
	half := cfg.Bosses.Overmind.SafeZoneWidth / 2
	lo, hi := f.col(b.SafeX-half), f.col(b.SafeX+half)
	for r := f.row(b.CenterY()); r < f.y0+f.h; r++ {
		for c := f.x0; c < f.x0+f.w; c++ {
			switch {
			case c >= lo && c <= hi:
				continue
			case b.BeamFiring():
				dst.SetColored(c, r, '▒', core.ColorBrightMagenta)
			case (c+r)%4 == 0:
				dst.SetColored(c, r, '·', core.ColorMagenta)
			}
		}
	}
}

func drawAsteroids(dst *core.Screen, f field, s sim.Snapshot) {
	for _, a := range s.Asteroids {
		c := core.ColorGray
		if a.Montezuma {
			c = core.ColorOrange
		}
		if a.Buffed {
			c = core.ColorBrightCyan
		}
		rx := max(0, int(a.Radius*f.sx))
		ry := max(0, int(a.Radius*f.sy))
		cc, rr := f.col(a.X), f.row(a.Y)
		for dy := -ry; dy <= ry; dy++ {
			for dx := -rx; dx <= rx; dx++ {
				nx, ny := float64(dx)/float64(rx+1), float64(dy)/float64(ry+1)
				if nx*nx+ny*ny > 1 || !f.inside(cc+dx, rr+dy) {
					continue
				}
				dst.SetColored(cc+dx, rr+dy, '@', c)
			}
		}
		if a.Montezuma {
			f.text(dst, a.X, a.Y, fmt.Sprintf(" %.0f ", a.Health), core.ColorBrightWhite)
		}
	}
}

var enemyGlyphs = map[sim.Archetype]struct {
	ch rune
	c  core.Color
}{
	sim.Standard:      {'W', core.ColorRed},
	sim.Evasive:       {'V', core.ColorMagenta},
	sim.Diver:         {'Y', core.ColorOrange},
	sim.SupportBuffer: {'+', core.ColorGreen},
	sim.Elite:         {'M', core.ColorBrightRed},
}

func drawEnemies(dst *core.Screen, f field, s sim.Snapshot) {
	for _, en := range s.Enemies {
		g := enemyGlyphs[en.Archetype]
		if en.Fragment {
			g.ch = '*'
		}
		if en.Shield > 0 {
			g.c = core.ColorBrightCyan
		}
		f.set(dst, en.X, en.Y, g.ch, g.c)
	}
}

func drawBoss(dst *core.Screen, f field, s sim.Snapshot) {
	b := s.Boss
	if b == nil {
		return
	}
	c := core.ColorBrightMagenta
	switch {
	case b.Phase == sim.PhaseDefeated:
		c = core.ColorOrange
	case b.Invulnerable:
		c = core.ColorGray
	case b.Phase == sim.PhaseFury:
		c = core.ColorBrightRed
	}
	x0, y0 := f.col(b.X-b.Width/2), f.row(b.Y)
	w := max(3, int(b.Width*f.sx))
	h := max(2, int(b.Height*f.sy))
	for r := y0; r < y0+h; r++ {
		for cc := x0; cc < x0+w; cc++ {
			if !f.inside(cc, r) {
				continue
			}
			ch := '▓'
			if r == y0 || r == y0+h-1 || cc == x0 || cc == x0+w-1 {
				ch = '█'
			}
			dst.SetColored(cc, r, ch, c)
		}
	}
	f.text(dst, b.X, b.CenterY(), strings.ToUpper(b.Kind.String()), core.ColorBrightWhite)
}

func drawTargets(dst *core.Screen, f field, s sim.Snapshot) {
	for _, t := range s.Targets {
		c := core.ColorBrightYellow
		label := fmt.Sprintf("(%d)", max(t.Remaining, 0))
		switch {
		case t.Failed:
			c, label = core.ColorRed, "(x)"
		case t.Complete:
			c, label = core.ColorBrightGreen, "(✓)"
		}
		f.text(dst, t.X, t.Y, label, c)
	}
}

func drawPlayer(dst *core.Screen, f field, s sim.Snapshot, cfg config.ShooterConfig) {
	if s.Mode == sim.ModePlayerDying {
		f.text(dst, s.Player.X, cfg.Player.Y, "\\*/", core.ColorOrange)
		return
	}
	p := s.Player
	c := core.ColorBrightWhite
	if p.InvulnerableUntil > s.Now && int(s.Now/150)%2 == 0 {
		c = core.ColorGray
	}
	f.text(dst, p.X, cfg.Player.Y, "/^\\", c)
	if p.Shield > 0 || p.ShieldBreakingUntil > s.Now {
		f.text(dst, p.X, cfg.Player.Y-cfg.Player.BodyRadius, "___", core.ColorCyan)
	}
}

func drawEffects(dst *core.Screen, f field, s sim.Snapshot) {
	for _, fx := range s.Effects {
		switch fx.Kind {
		case sim.EffectExplosion, sim.EffectRockImpact:
			f.set(dst, fx.X, fx.Y, '*', core.ColorOrange)
		case sim.EffectDamageNumber:
			c := core.ColorWhite
			if fx.Crit {
				c = core.ColorBrightYellow
			}
			f.text(dst, fx.X, fx.Y, fmt.Sprint(fx.Value), c)
		case sim.EffectCriticalHit:
			f.text(dst, fx.X, fx.Y, "CRIT", core.ColorBrightYellow)
		case sim.EffectEmpArc:
			f.set(dst, (fx.X+fx.X2)/2, (fx.Y+fx.Y2)/2, '~', core.ColorBrightCyan)
		}
	}
}

func powerUpGlyph(k sim.PowerUpKind) rune {
	switch k {
	case sim.PowerRapidFire:
		return 'R'
	case sim.PowerSpreadShot:
		return 'S'
	case sim.PowerShield:
		return 'O'
	case sim.PowerExtendedMag:
		return 'E'
	case sim.PowerAutoReload:
		return 'A'
	case sim.PowerCritBoost:
		return 'C'
	case sim.PowerReloadBoost:
		return 'F'
	}
	return '?'
}

func drawOverlay(dst *core.Screen, f field, fr Frame) {
	s := fr.Snapshot
	var lines []string
	c := core.ColorBrightWhite
	switch s.Mode {
	case sim.ModePaused:
		lines = []string{"PAUSED", "", "p to resume  b for menu"}
	case sim.ModeAwaitingEncounterChoice:
		if e := s.Encounter; e != nil {
			lines = append(lines, e.Title, "")
			lines = append(lines, wrap(e.Text, f.w-2*overlayPadX)...)
		}
		lines = append(lines, "")
		for i, ch := range s.Choices {
			lines = append(lines, fmt.Sprintf("%d) %s", i+1, ch.Text))
		}
	case sim.ModeEncounterProcessing:
		lines = []string{"Investigating..."}
		c = core.ColorGray
	case sim.ModeEncounterOutcome:
		lines = outcomeLines(s.Outcome, f.w-2*overlayPadX)
	case sim.ModeIntermission:
		lines = intermissionLines(fr)
	case sim.ModeGameOver:
		lines = []string{"GAME OVER", "", fmt.Sprintf("Score %d  Level %d", s.Score, s.Level), "", "space restart  b menu"}
		c = core.ColorBrightRed
	case sim.ModeVictory:
		lines = []string{"VICTORY", "", "The overmind is destroyed.", fmt.Sprintf("Score %d", s.Score), "", "b menu"}
		c = core.ColorBrightGreen
	case sim.ModeStory:
		lines = storyLines(s.Story, f.w-2*overlayPadX)
		c = core.ColorBrightCyan
	case sim.ModeTrainingSim:
		if tr := s.Training; tr != nil && s.Now < tr.StartAt {
			lines = []string{"TRAINING SIM", fmt.Sprintf("%.0f", math.Ceil((tr.StartAt-s.Now)/1000))}
		}
	}
	if s.FightAt > 0 && s.Now < s.FightAt {
		lines = []string{"HOSTILES INBOUND"}
		c = core.ColorBrightRed
	}
	if len(lines) == 0 {
		return
	}
	top := f.y0 + (f.h-len(lines))/2
	for i, l := range lines {
		dst.DrawTextCentered(top+i, l, c)
	}
}

func storyLines(st *config.StoryMilestone, width int) []string {
	if st == nil {
		return nil
	}
	lines := []string{strings.ToUpper(st.Title), ""}
	for _, para := range strings.Split(st.Text, "\n") {
		if para == "" {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, wrap(para, width)...)
	}
	return append(lines, "", "enter to continue")
}

func outcomeLines(o *encounter.Result, width int) []string {
	if o == nil {
		return nil
	}
	lines := []string{o.Title, ""}
	lines = append(lines, wrap(o.Text, width)...)
	lines = append(lines, "")
	if o.Currency != 0 {
		lines = append(lines, fmt.Sprintf("Currency %+d", o.Currency))
	}
	if o.Parts != 0 {
		lines = append(lines, fmt.Sprintf("Parts %+d", o.Parts))
	}
	if o.Consumable != "" && o.Quantity > 0 {
		lines = append(lines, fmt.Sprintf("%s +%d", encounter.ConsumableName(o.Consumable), o.Quantity))
	}
	return append(lines, "", "enter to continue")
}

func intermissionLines(fr Frame) []string {
	s := fr.Snapshot
	lines := []string{fmt.Sprintf("LEVEL %d CLEARED", s.Level), ""}
	if s.Reward != "" {
		lines = append(lines, "Boss salvage: "+encounter.ConsumableName(s.Reward), "")
	}
	lines = append(lines, fmt.Sprintf("Run $%d  Bank $%d", s.Currency, fr.Record.TotalCurrency), "")
	for i, c := range progression.Consumables {
		price, _ := progression.Price(fr.Config.Shop, c)
		lines = append(lines, fmt.Sprintf("F%d %-18s $%-5d owned %d", i+1, encounter.ConsumableName(c), price, fr.Record.Owned[c]))
	}
	return append(lines, "", "enter to continue")
}

func drawTitle(dst *core.Screen, fr Frame) {
	rec := fr.Record
	top := max(1, dst.Height()/2-8)
	dst.DrawTextCentered(top, "G  A  L  A  X  I  A", core.ColorBrightCyan)
	dst.DrawTextCentered(top+2, "defend the lanes", core.ColorGray)

	row := top + 5
	for _, h := range progression.Heroes {
		label := string(h)
		c := core.ColorWhite
		if !rec.Unlocked(h) {
			label += " (locked)"
			c = core.ColorGray
		}
		if h == fr.MenuHero {
			label = "> " + label + " <"
			c = core.ColorBrightYellow
		}
		dst.DrawTextCentered(row, label, c)
		row++
	}
	row++
	if rec.HardModeUnlocked {
		mode := "normal"
		if fr.MenuHard {
			mode = "HARD"
		}
		dst.DrawTextCentered(row, "mode: "+mode, core.ColorOrange)
		row++
	}
	dst.DrawTextCentered(row+1, fmt.Sprintf("High score %d   Bank $%d   Parts %d", rec.HighScore, rec.TotalCurrency, rec.UpgradeParts), core.ColorYellow)
	dst.DrawTextCentered(row+3, "enter start   h hero   x hard   tab scores   q quit", core.ColorGray)
	if fr.Status != "" {
		dst.DrawTextCentered(row+5, fr.Status, core.ColorYellow)
	}
}

// wrap breaks text into lines of at most width runes.
func wrap(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}
	var lines []string
	var cur strings.Builder
	for _, w := range strings.Fields(text) {
		if cur.Len() > 0 && len([]rune(cur.String()))+1+len([]rune(w)) > width {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(w)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
