package pde

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Default wave solver parameters, tuned for a 500×500 grid.
const (
	defaultPropSpeed       = 0.35
	defaultDampingFactor   = 0.995
	defaultDisturbanceProb = 0.02
	defaultDisturbanceSize = 80.0
)

// disturbanceMargin is the minimum distance in cells between an injected
// disturbance epicenter and the grid boundary. Cells outside this margin
// receive no disturbance contribution at all.
const disturbanceMargin = 5

// Rand is the source of randomness for disturbance injection. *rand.Rand
// implements it; tests inject a fixed-seed generator for reproducible runs.
type Rand interface {
	Float32() float32
	Intn(n int) int
}

// WaveSolver integrates the 2D wave equation with a second-order explicit
// 5-point stencil, with damping and randomized point disturbances. Three
// full-grid time history buffers are kept: current, previous and
// two-steps-back.
//
// The parameter fields may be adjusted freely between Update calls.
// Stability requires PropSpeed to stay well under 0.5 for this stencil;
// values up to roughly 0.35 are safe with DampingFactor near 1. Beyond that
// the integration diverges — see the package comment.
type WaveSolver struct {
	u0, u1, u2   *Field
	xSize, ySize int

	// PropSpeed is the wave speed coefficient multiplying the discrete
	// Laplacian each step.
	PropSpeed float32
	// DampingFactor in (0, 1] is applied multiplicatively each step to
	// simulate energy loss.
	DampingFactor float32
	// DisturbanceProb is the probability per step that a new disturbance
	// is injected, in [0, 1].
	DisturbanceProb float32
	// DisturbanceSize is the amplitude of an injected disturbance.
	DisturbanceSize float32

	rng Rand
}

// NewWaveSolver allocates a solver with three zero-filled xSize by ySize
// grids and the default parameters.
func NewWaveSolver(xSize, ySize int) (*WaveSolver, error) {
	if xSize < 3 || ySize < 3 {
		return nil, fmt.Errorf("wave solver grid %dx%d too small, need at least 3x3", xSize, ySize)
	}
	return &WaveSolver{
		u0: NewField(xSize, ySize),
		u1: NewField(xSize, ySize),
		u2: NewField(xSize, ySize),
		xSize: xSize, ySize: ySize,
		PropSpeed:       defaultPropSpeed,
		DampingFactor:   defaultDampingFactor,
		DisturbanceProb: defaultDisturbanceProb,
		DisturbanceSize: defaultDisturbanceSize,
		rng:             rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// SetRand replaces the solver's random number generator. Pass a fixed-seed
// source for deterministic runs.
func (s *WaveSolver) SetRand(rng Rand) { s.rng = rng }

// Current returns the live current-timestep field. It stays stable from one
// Update return to the next Update call, so a consumer may read (or seed)
// it between steps. Update must not be called concurrently with a reader of
// the same field.
func (s *WaveSolver) Current() *Field { return s.u0 }

// Update advances the simulation one timestep: possibly injects a random
// disturbance, shifts the time history back, then runs the stencil over
// every interior cell. Boundary cells are never written and so stay at
// their initial zero forever.
func (s *WaveSolver) Update() {
	s.addRandomDisturbance()

	// Shift history by full copy rather than buffer rotation so the
	// current buffer identity survives the call for external readers.
	s.u2.copyFrom(s.u1)
	s.u1.copyFrom(s.u0)

	c := s.PropSpeed
	damp := s.DampingFactor
	w := s.xSize
	u0, u1, u2 := s.u0.data, s.u1.data, s.u2.data
	for y := 1; y < s.ySize-1; y++ {
		row := y * w
		for x := 1; x < w-1; x++ {
			i := row + x
			lap := u1[i-1] + u1[i+1] + u1[i-w] + u1[i+w] - 4*u1[i]
			u0[i] = (c*lap + 2*u1[i] - u2[i]) * damp
		}
	}
}

// addRandomDisturbance rolls against DisturbanceProb and, on success, picks
// a uniformly random epicenter at least disturbanceMargin cells from every
// edge and adds a bump decaying like 1/r³ to the whole interior: each cell
// gains DisturbanceSize / max(2, r²^1.5) where r² is the squared euclidean
// cell distance to the epicenter. The clamp keeps cells at the epicenter
// finite.
func (s *WaveSolver) addRandomDisturbance() {
	const b = disturbanceMargin
	if s.rng == nil || s.DisturbanceProb <= 0 {
		return
	}
	if s.xSize <= 2*b || s.ySize <= 2*b {
		// No interior cell is far enough from the boundary.
		return
	}
	if s.rng.Float32() >= s.DisturbanceProb {
		return
	}
	px := b + s.rng.Intn(s.xSize-2*b)
	py := b + s.rng.Intn(s.ySize-2*b)

	u0 := s.u0.data
	for y := b; y < s.ySize-b; y++ {
		row := y * s.xSize
		dy := float64(y - py)
		for x := b; x < s.xSize-b; x++ {
			dx := float64(x - px)
			r2 := dx*dx + dy*dy
			dist := math.Max(2, math.Pow(r2, 1.5))
			u0[row+x] += s.DisturbanceSize / float32(dist)
		}
	}
}
