package battleship

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"
	cerr "github.com/saeidalz13/battle-of-warships/internal/error"
)

// Ship lengths of the standard fleet, in placement order.
var StandardFleet = []int{3, 2, 2, 1, 1, 1, 1}

// Shared by every ship of one board attempt.
const MaxPlacementAttempts int = 2000

type Placer struct {
	size        int
	fleet       []int
	maxAttempts int
	strict      bool
	rng         *rand.Rand
	logger      zerolog.Logger
	restarts    int
}

type PlacerOption func(*Placer)

func NewPlacer(size int, optFuncs ...PlacerOption) *Placer {
	placer := Placer{
		size:        size,
		fleet:       StandardFleet,
		maxAttempts: MaxPlacementAttempts,
		logger:      zerolog.Nop(),
	}
	for _, opt := range optFuncs {
		opt(&placer)
	}
	if placer.rng == nil {
		placer.rng = NewRand(uint64(time.Now().UnixNano()))
	}
	return &placer
}

// NewRand returns a deterministic generator for the given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed>>32|seed<<32))
}

func WithRand(rng *rand.Rand) PlacerOption {
	return func(p *Placer) {
		p.rng = rng
	}
}

func WithFleet(lengths []int) PlacerOption {
	return func(p *Placer) {
		p.fleet = append([]int(nil), lengths...)
	}
}

func WithMaxAttempts(attempts int) PlacerOption {
	return func(p *Placer) {
		p.maxAttempts = attempts
	}
}

// WithStrictBounds draws origins from [0, size) instead of the default
// [0, size], which wastes attempts on origins that can never fit.
func WithStrictBounds() PlacerOption {
	return func(p *Placer) {
		p.strict = true
	}
}

func WithPlacerLogger(logger zerolog.Logger) PlacerOption {
	return func(p *Placer) {
		p.logger = logger
	}
}

// Restarts returns how many board attempts RandomBoard has abandoned so far.
func (p *Placer) Restarts() int {
	return p.restarts
}

func (p *Placer) drawOrigin() Coordinates {
	upper := p.size + 1
	if p.strict {
		upper = p.size
	}
	return NewCoordinates(p.rng.IntN(upper), p.rng.IntN(upper))
}

func (p *Placer) drawOrientation() Orientation {
	return Orientation(p.rng.IntN(2))
}

// TryBoard makes a single attempt at placing the whole fleet. It returns
// ErrPlacementExhausted when the attempt budget runs out first.
func (p *Placer) TryBoard() (*Board, error) {
	board := NewBoard(p.size)
	attempts := 0

	for _, length := range p.fleet {
		for {
			attempts++
			if attempts > p.maxAttempts {
				return nil, cerr.ErrPlacementAttempts(p.maxAttempts)
			}

			err := board.PlaceShip(NewShip(p.drawOrigin(), length, p.drawOrientation()))
			if err == nil {
				break
			}
			if !errors.Is(err, cerr.ErrShipOutOfBounds) {
				return nil, err
			}
		}
	}

	board.Begin()
	return board, nil
}

// RandomBoard retries TryBoard until a board is filled. The number of
// restarts is not bounded.
func (p *Placer) RandomBoard() *Board {
	for {
		board, err := p.TryBoard()
		if err == nil {
			return board
		}
		p.restarts++
		p.logger.Debug().Err(err).Int("restarts", p.restarts).Msg("abandoned board attempt")
	}
}
