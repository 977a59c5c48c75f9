package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dariubs/percent"
	"github.com/fatih/color"

	mb "github.com/saeidalz13/battle-of-warships/models/battleship"
)

const (
	glyphWater = "~"
	glyphShip  = "■"
	glyphHit   = "X"
	glyphMiss  = "¤"

	separatorWidth = 29
)

// Renderer draws a match on a line based terminal. It is registered as a
// game observer and prints boards before every turn.
type Renderer struct {
	out io.Writer

	water  *color.Color
	ship   *color.Color
	hit    *color.Color
	miss   *color.Color
	banner *color.Color
	good   *color.Color
	bad    *color.Color
	warn   *color.Color
}

var _ mb.Observer = (*Renderer)(nil)

type Option func(*Renderer)

// WithoutColor strips escape sequences, no matter what the terminal
// supports.
func WithoutColor() Option {
	return func(r *Renderer) {
		for _, c := range r.palette() {
			c.DisableColor()
		}
	}
}

func NewRenderer(out io.Writer, opts ...Option) *Renderer {
	r := &Renderer{
		out:    out,
		water:  color.New(color.FgBlue),
		ship:   color.New(color.FgGreen),
		hit:    color.New(color.FgRed),
		miss:   color.New(color.FgYellow),
		banner: color.New(color.FgCyan),
		good:   color.New(color.FgGreen),
		bad:    color.New(color.FgRed),
		warn:   color.New(color.FgYellow),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Renderer) palette() []*color.Color {
	return []*color.Color{r.water, r.ship, r.hit, r.miss, r.banner, r.good, r.bad, r.warn}
}

func (r *Renderer) separator() string {
	return r.water.Sprint(strings.Repeat("≈", separatorWidth))
}

func (r *Renderer) glyph(state uint8) string {
	switch state {
	case mb.PositionStateShip:
		return r.ship.Sprint(glyphShip)
	case mb.PositionStateHit:
		return r.hit.Sprint(glyphHit)
	case mb.PositionStateMiss, mb.PositionStateContour:
		return r.miss.Sprint(glyphMiss)
	default:
		return r.water.Sprint(glyphWater)
	}
}

// Board draws a grid with 1-indexed row and column headers. A hidden view
// already reports its ships as water.
func (r *Renderer) Board(view mb.BoardView) string {
	headers := make([]string, view.Size)
	for i := range view.Size {
		headers[i] = strconv.Itoa(i + 1)
	}

	var sb strings.Builder
	sb.WriteString(r.water.Sprint("     " + strings.Join(headers, " | ") + "    "))
	sb.WriteString("\n")
	sb.WriteString(r.water.Sprint("  " + strings.Repeat("=", 4*view.Size+3)))

	for i, row := range view.Cells {
		cells := make([]string, len(row))
		for j, state := range row {
			cells[j] = r.glyph(state)
		}
		fmt.Fprintf(&sb, "\n%d || %s ||", i+1, strings.Join(cells, " | "))
	}
	return sb.String()
}

func (r *Renderer) boards(human, ai mb.BoardView) {
	fmt.Fprintln(r.out, r.separator())
	fmt.Fprintln(r.out, r.good.Sprint("Your field "))
	fmt.Fprintln(r.out, r.Board(human))
	fmt.Fprintln(r.out, r.bad.Sprint("Enemy field"))
	fmt.Fprintln(r.out, r.Board(ai))
}

// Greet prints the welcome banner.
func (r *Renderer) Greet() {
	line := func(pad int, text string) {
		edge := strings.Repeat("≈", pad)
		fmt.Fprintln(r.out, r.water.Sprint(edge+" ")+r.banner.Sprint(text)+r.water.Sprint(" "+edge))
	}

	fmt.Fprintln(r.out, r.separator())
	line(8, "Welcome  to")
	line(4, "Battle  of Warships")
	line(11, "Game!")
	fmt.Fprintln(r.out, r.separator())
	line(6, "To make a shot:")
	line(3, "Enter X and Y values!")
}

func (r *Renderer) OnTurn(ev mb.TurnEvent) {
	r.boards(ev.HumanBoard, ev.AIBoard)
	if !ev.ShooterIsHuman {
		fmt.Fprintln(r.out, r.bad.Sprint("Enemy shot"))
	}
}

// OnShot prints the outcome of a shot. Rejected enemy shots are redrawn
// silently, only the player is told to choose again.
func (r *Renderer) OnShot(ev mb.ShotEvent) {
	if !ev.ShooterIsHuman {
		if !ev.Outcome.Resolved() {
			return
		}
		fmt.Fprintln(r.out, r.bad.Sprintf("Enemy shot: %d %d", ev.Target.X+1, ev.Target.Y+1))
	}

	if msg := r.Outcome(ev.Outcome); msg != "" {
		fmt.Fprintln(r.out, msg)
	}
}

// Outcome returns the colored message for a shot outcome.
func (r *Renderer) Outcome(outcome mb.ShotOutcome) string {
	switch outcome {
	case mb.ShotOutOfBounds:
		return r.bad.Sprint("Shot out of bounds!")
	case mb.ShotRepeat:
		return r.bad.Sprint("We already shot there!")
	case mb.ShotHit:
		return r.good.Sprint("Excellent shot!")
	case mb.ShotSink:
		return r.good.Sprint("Ship destroyed!")
	case mb.ShotMiss:
		return r.warn.Sprint("Miss!")
	default:
		return ""
	}
}

func (r *Renderer) OnGameEnd(ev mb.EndEvent) {
	r.boards(ev.HumanBoard, ev.AIBoard)
	fmt.Fprintln(r.out, r.separator())

	switch ev.Status {
	case mb.StatusVictory:
		fmt.Fprintln(r.out, r.good.Sprint("≈ ¤ ≈ VICTORY! ≈ ¤ ≈"))
	case mb.StatusDefeat:
		fmt.Fprintln(r.out, r.bad.Sprint("≈ ☠ ≈ DEFEAT! ≈ ☠ ≈"))
	}

	s := ev.Summary
	fmt.Fprintf(r.out, "Turns: %d\n", s.Turns)
	fmt.Fprintf(r.out, "%s: %d/%d hits, accuracy %s\n", s.PlayerName, s.PlayerHits, s.PlayerShots, ratio(s.PlayerHits, s.PlayerShots))
	fmt.Fprintf(r.out, "%s: %d/%d hits, accuracy %s\n", mb.AIPlayerName, s.AIHits, s.AIShots, ratio(s.AIHits, s.AIShots))
}

// Stats prints recorded totals. An empty player means all players.
func (r *Renderer) Stats(player string, totals mb.Totals) {
	title := "All players"
	if player != "" {
		title = player
	}

	fmt.Fprintln(r.out, r.separator())
	fmt.Fprintln(r.out, r.banner.Sprint(title))
	fmt.Fprintf(r.out, "Games:     %d\n", totals.Games)
	fmt.Fprintf(r.out, "Victories: %d\n", totals.Victories)
	fmt.Fprintf(r.out, "Defeats:   %d\n", totals.Defeats)
	fmt.Fprintf(r.out, "Win rate:  %s\n", ratio(int(totals.Victories), int(totals.Games)))
}

func ratio(part, total int) string {
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", percent.PercentOf(part, total))
}
