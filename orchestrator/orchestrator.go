// Package orchestrator owns the live state a single pixelmorph session
// animates: the current preset, the running particle Simulation, the
// active mode (transform playback or interactive drawing), and the single
// in-flight optimizer session. It is the component the server package
// drives; nothing in here knows about HTTP or websockets.
package orchestrator

import (
	"context"
	"image"
	"sync"

	"github.com/obamify/pixelmorph/assignment"
	"github.com/obamify/pixelmorph/drawing"
	"github.com/obamify/pixelmorph/mathx"
	"github.com/obamify/pixelmorph/particle"
	"github.com/obamify/pixelmorph/simulation"
	"github.com/obamify/pixelmorph/voronoi"
)

// Mode selects what Step does on each tick.
type Mode int

const (
	ModeTransform Mode = iota
	ModeDraw
)

// Preset bundles a loaded (source, assignments) pair with the dimensions
// they were solved at, matching §6's on-disk preset contract.
type Preset struct {
	Name        string
	S           int
	Source      []mathx.RGB
	Assignments []int
}

// Orchestrator serializes all mutation behind mu: Step, StartOptimize, and
// SetMode are each called from a different goroutine in practice (the
// animation loop, the optimizer worker, and the websocket read pump), so
// nothing here may assume single-threaded access.
type Orchestrator struct {
	mu sync.Mutex

	presets []Preset
	active  *Preset

	sim       *simulation.Simulation
	positions []mathx.Point

	mode   Mode
	state  *drawing.State
	solver *drawing.Solver

	currentID int32
	cancel    context.CancelFunc

	recording bool
	capture   func(buf []byte, w, h int)
}

// New builds an orchestrator with no active preset. LoadPreset must be
// called before Step does anything useful.
func New(presets []Preset) *Orchestrator {
	return &Orchestrator{presets: presets}
}

// Presets returns the known preset list, in the order they were loaded.
func (o *Orchestrator) Presets() []Preset {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]Preset(nil), o.presets...)
}

// LoadPreset installs p as the active preset: builds a fresh Simulation
// from its (source, assignments) pair and resets drawing state. Cancels
// any in-flight optimizer session, since it would otherwise race to
// install a permutation sized for the previous preset.
func (o *Orchestrator) LoadPreset(p Preset) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.cancelLocked()

	cells := make([]particle.Cell, p.S*p.S)
	for t, srcIdx := range p.Assignments {
		cells[srcIdx] = particle.New(
			particle.CellCenter(srcIdx, p.S),
			particle.CellCenter(t, p.S),
		)
	}

	positions := make([]mathx.Point, len(cells))
	for i, c := range cells {
		positions[i] = c.Src
	}

	o.active = &p
	o.sim = simulation.New(cells, p.S)
	o.positions = positions
	o.state = drawing.NewState(p.S * p.S)
	o.solver = nil
	o.mode = ModeTransform
}

// Step advances the simulation by one frame. Safe to call from a dedicated
// animation goroutine at whatever cadence the caller chooses (the server
// drives this at ~60Hz), immediately followed by Rasterize.
func (o *Orchestrator) Step() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.sim == nil {
		return
	}
	o.sim.Step(o.positions)
}

// Rasterize renders the current particle positions/colors to an image via
// the grid Voronoi rasterizer, at the active preset's side length. Cells
// are stored source-keyed (array index i is a source palette index, per
// simulation.SetAssignments's convention), so cell i's color is always
// active.Source[i] regardless of where its particle has traveled to.
func (o *Orchestrator) Rasterize() *image.RGBA {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.sim == nil || o.active == nil {
		return nil
	}

	seeds := make([]voronoi.Seed, len(o.sim.Cells))
	for i := range o.sim.Cells {
		src := o.active.Source[i]
		seeds[i] = voronoi.Seed{
			Pos:   o.positions[i],
			Color: [3]float64{float64(src[0]) / 255, float64(src[1]) / 255, float64(src[2]) / 255},
		}
	}

	img := voronoi.RenderGrid(seeds, o.active.S)
	if o.recording && o.capture != nil {
		o.capture(img.Pix, img.Rect.Dx(), img.Rect.Dy())
	}
	return img
}

// SetPlayDirection restarts or reverses playback per simulation.PreparePlay.
func (o *Orchestrator) SetPlayDirection(reverse bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.sim == nil {
		return
	}
	o.sim.PreparePlay(o.positions, reverse)
}

// SetMode switches between transform playback and interactive drawing. A
// switch to ModeDraw seeds a new drawing.Solver from the simulation's
// current permutation, converted to the position-keyed form drawing.Solver
// expects, and starts it in a background goroutine. A switch away from
// ModeDraw cancels the running solver by superseding its currentID.
func (o *Orchestrator) SetMode(m Mode, weights []float64, wSpatial int, seed string, updates chan<- assignment.Message) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.mode == m {
		return
	}
	o.mode = m

	if m != ModeDraw {
		o.currentID++
		return
	}

	if o.sim == nil || o.active == nil {
		return
	}

	// drawing.NewSolver wants a position-keyed permutation (assignments[p]
	// is the source index occupying position p), the opposite convention
	// from simulation's source-keyed Cells array, so invert via each
	// cell's Dst.
	assignments := make([]int, len(o.sim.Cells))
	for srcIdx, c := range o.sim.Cells {
		t := positionIndexOf(c.Dst, o.active.S)
		assignments[t] = srcIdx
	}

	o.currentID++
	myID := o.currentID
	dst := o.active.Source // self-transform within drawing mode: dst == active palette
	s := o.solverFor(dst, weights, wSpatial, seed, assignments)
	o.solver = s

	go s.Run(&o.currentID, myID, updates)
}

func (o *Orchestrator) solverFor(dst []mathx.RGB, weights []float64, wSpatial int, seed string, assignments []int) *drawing.Solver {
	return drawing.NewSolver(o.active.Source, dst, weights, wSpatial, seed, assignments, o.state)
}

// positionIndexOf converts a cell-center point back to its linear grid
// index, the inverse of particle.CellCenter.
func positionIndexOf(p mathx.Point, s int) int {
	x := int(p.X)
	y := int(p.Y)
	return y*s + x
}

// ApplyEdits feeds brush events into the active drawing state. A no-op
// outside ModeDraw, and a no-op if no preset is loaded.
func (o *Orchestrator) ApplyEdits(edits []drawing.Edit) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state == nil {
		return
	}
	o.state.Apply(edits)
}

// StartOptimize launches a fresh assignment.Run session against the given
// target, cancelling any session already in flight. Progress messages flow
// to updates; the final permutation, once ready, is installed onto the
// live Simulation via SetAssignments.
func (o *Orchestrator) StartOptimize(
	settings assignment.GenerationSettings,
	target []mathx.RGB, targetW, targetH int,
	weights []float64,
	updates chan<- assignment.Message,
) {
	o.mu.Lock()
	o.cancelLocked()
	ctx, cancel := context.WithCancel(context.Background())
	o.cancel = cancel
	active := o.active
	o.mu.Unlock()

	if active == nil {
		return
	}

	go func() {
		result, err := assignment.Run(
			ctx, settings,
			active.Source, active.S, active.S,
			target, targetW, targetH,
			weights, updates,
		)
		if err != nil {
			return
		}
		o.installAssignments(result, settings.Sidelen)
	}()
}

func (o *Orchestrator) installAssignments(perm []int, s int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.sim == nil {
		return
	}
	o.sim.SetAssignments(perm, s)
}

// CancelOptimize stops any in-flight optimizer session without starting a
// new one.
func (o *Orchestrator) CancelOptimize() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.cancelLocked()
}

func (o *Orchestrator) cancelLocked() {
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
}

// StartRecording begins calling capture with each rasterized frame's raw
// RGBA buffer, until StopRecording is called. capture is the caller's
// encoder (e.g. a GIF or video muxer); orchestrator never encodes frames
// itself, matching spec.md's explicit scope note that frame encoding is an
// external collaborator's responsibility.
func (o *Orchestrator) StartRecording(capture func(buf []byte, w, h int)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.capture = capture
	o.recording = true
}

// StopRecording halts frame capture.
func (o *Orchestrator) StopRecording() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.recording = false
	o.capture = nil
}
