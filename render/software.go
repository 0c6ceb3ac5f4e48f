// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"image"
	"math"
	"slices"

	"github.com/gogpu/ggview"
	"github.com/gogpu/ggview/geom"
	"github.com/gogpu/gputypes"
)

const numTargets = int(ggview.TargetOverlay) + 1

// DefaultMaxGroups is the default size of the software group cache.
const DefaultMaxGroups = 1 << 20

type scratchMode uint8

const (
	scratchNone scratchMode = iota
	scratchDiff
	scratchNegatives
)

// Stats counts the work done by a SoftwareRenderer.
type Stats struct {
	Frames           int
	GroupsRecorded   int
	GroupsDrawn      int
	CommandsExecuted int
}

// SoftwareRenderer is a CPU implementation of ggview.Renderer.
//
// Each view target is a pixmap layer of a LayeredPixmapTarget; EndDrawing
// composes them over the background. The cached and non-cached targets
// share one depth buffer, the overlay has its own.
type SoftwareRenderer struct {
	width, height int

	frame   *LayeredPixmapTarget
	targets [numTargets]*PixmapTarget
	depth   [2][]float32

	depthState gputypes.DepthStencilState
	depthTest  bool
	layerDepth int
	target     ggview.Target
	matrix     geom.Matrix

	groups    map[ggview.GroupID]*DisplayList
	nextGroup ggview.GroupID
	maxGroups int
	recording *DisplayList

	fill     gputypes.Color
	negative bool

	scratch *PixmapTarget
	mode    scratchMode
	cov     coverage
	stats   Stats
}

// SoftwareOption configures a SoftwareRenderer.
type SoftwareOption func(*SoftwareRenderer)

// WithMaxGroups limits the number of live groups. BeginGroup fails with
// ErrGroupLimit once the limit is reached.
func WithMaxGroups(n int) SoftwareOption {
	return func(s *SoftwareRenderer) {
		s.maxGroups = n
	}
}

// WithBackground sets the color targets are composed over.
func WithBackground(c gputypes.Color) SoftwareOption {
	return func(s *SoftwareRenderer) {
		s.frame.SetBackground(c)
	}
}

// WithDepthCompare sets the comparison used while the depth test is on.
// The default, CompareFunctionGreaterEqual, lets deeper layers win.
func WithDepthCompare(f gputypes.CompareFunction) SoftwareOption {
	return func(s *SoftwareRenderer) {
		s.depthState.DepthCompare = f
	}
}

// NewSoftwareRenderer creates a renderer drawing into width x height
// pixmaps.
func NewSoftwareRenderer(width, height int, opts ...SoftwareOption) (*SoftwareRenderer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	s := &SoftwareRenderer{
		frame: NewLayeredPixmapTarget(width, height),
		depthState: gputypes.DepthStencilState{
			Format:            gputypes.TextureFormatDepth32Float,
			DepthWriteEnabled: true,
			DepthCompare:      gputypes.CompareFunctionGreaterEqual,
		},
		matrix:    geom.Identity(),
		groups:    make(map[ggview.GroupID]*DisplayList),
		maxGroups: DefaultMaxGroups,
		fill:      gputypes.ColorBlack,
	}
	for t := range s.targets {
		target, err := s.frame.CreateLayer(t)
		if err != nil {
			return nil, err
		}
		s.targets[t] = target
	}
	s.allocate(width, height)
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *SoftwareRenderer) allocate(width, height int) {
	s.width, s.height = width, height
	s.scratch = NewPixmapTarget(width, height)
	for i := range s.depth {
		s.depth[i] = make([]float32, width*height)
		s.resetDepth(i)
	}
}

// Resize reallocates every target. Contents and depth are lost; groups are
// kept since they are stored in world coordinates.
func (s *SoftwareRenderer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	s.frame.Resize(width, height)
	s.allocate(width, height)
	return nil
}

// Image returns the composed frame. It is updated by EndDrawing.
func (s *SoftwareRenderer) Image() *image.RGBA {
	return s.frame.Image()
}

// TargetImage returns the pixmap backing a single view target.
func (s *SoftwareRenderer) TargetImage(t ggview.Target) *image.RGBA {
	if !validTarget(t) {
		return nil
	}
	return s.targets[t].Image()
}

// Stats returns the work counters.
func (s *SoftwareRenderer) Stats() Stats {
	return s.stats
}

// Groups returns the ids of the live groups in ascending order.
func (s *SoftwareRenderer) Groups() []ggview.GroupID {
	ids := make([]ggview.GroupID, 0, len(s.groups))
	for id := range s.groups {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Group returns the display list of a live group, or nil.
func (s *SoftwareRenderer) Group(id ggview.GroupID) *DisplayList {
	return s.groups[id]
}

// BeginGroup implements ggview.Renderer.
func (s *SoftwareRenderer) BeginGroup() (ggview.GroupID, error) {
	if s.recording != nil {
		return ggview.NoGroup, ErrNestedGroup
	}
	if s.maxGroups > 0 && len(s.groups) >= s.maxGroups {
		return ggview.NoGroup, fmt.Errorf("%w (%d)", ErrGroupLimit, s.maxGroups)
	}
	id := s.nextGroup
	s.nextGroup++
	s.recording = &DisplayList{Depth: s.layerDepth, Target: s.target}
	s.groups[id] = s.recording
	s.stats.GroupsRecorded++
	return id, nil
}

// EndGroup implements ggview.Renderer.
func (s *SoftwareRenderer) EndGroup() {
	s.recording = nil
}

// DeleteGroup implements ggview.Renderer.
func (s *SoftwareRenderer) DeleteGroup(id ggview.GroupID) {
	if _, ok := s.groups[id]; !ok {
		ggview.Logger().Warn("render: delete of unknown group", "group", int(id))
		return
	}
	delete(s.groups, id)
}

// DrawGroup implements ggview.Renderer.
func (s *SoftwareRenderer) DrawGroup(id ggview.GroupID) {
	g, ok := s.groups[id]
	if !ok {
		return
	}
	if s.recording != nil {
		ggview.Logger().Warn("render: DrawGroup while recording", "group", int(id))
		return
	}
	s.stats.GroupsDrawn++
	for _, cmd := range g.commands {
		s.execute(cmd, g.Depth)
	}
}

// ChangeGroupColor implements ggview.Renderer.
func (s *SoftwareRenderer) ChangeGroupColor(id ggview.GroupID, c gputypes.Color) {
	if g, ok := s.groups[id]; ok {
		g.SetColor(c)
	}
}

// ChangeGroupDepth implements ggview.Renderer.
func (s *SoftwareRenderer) ChangeGroupDepth(id ggview.GroupID, depth int) {
	if g, ok := s.groups[id]; ok {
		g.Depth = depth
	}
}

// ClearCache implements ggview.Renderer.
func (s *SoftwareRenderer) ClearCache() {
	clear(s.groups)
	s.recording = nil
}

// SetTarget implements ggview.Renderer.
func (s *SoftwareRenderer) SetTarget(t ggview.Target) {
	if validTarget(t) {
		s.target = t
	}
}

// ClearTarget implements ggview.Renderer. Clearing either the cached or
// the non-cached target resets their shared depth buffer.
func (s *SoftwareRenderer) ClearTarget(t ggview.Target) {
	if !validTarget(t) {
		return
	}
	s.targets[t].Clear(gputypes.ColorTransparent)
	s.resetDepth(depthIndex(t))
}

// SetLayerDepth implements ggview.Renderer.
func (s *SoftwareRenderer) SetLayerDepth(depth int) {
	s.layerDepth = depth
}

// EnableDepthTest implements ggview.Renderer.
func (s *SoftwareRenderer) EnableDepthTest(enabled bool) {
	s.depthTest = enabled
}

// StartDiffLayer implements ggview.Renderer. Content drawn until
// EndDiffLayer is composed as the absolute difference with the target.
func (s *SoftwareRenderer) StartDiffLayer() {
	s.startScratch(scratchDiff)
}

// EndDiffLayer implements ggview.Renderer.
func (s *SoftwareRenderer) EndDiffLayer() {
	s.endScratch()
}

// StartNegativesLayer implements ggview.Renderer. Negative shapes drawn
// until EndNegativesLayer only erase content of the same layer.
func (s *SoftwareRenderer) StartNegativesLayer() {
	s.startScratch(scratchNegatives)
}

// EndNegativesLayer implements ggview.Renderer.
func (s *SoftwareRenderer) EndNegativesLayer() {
	s.endScratch()
}

// BeginDrawing implements ggview.Renderer.
func (s *SoftwareRenderer) BeginDrawing() {
	s.stats.Frames++
}

// EndDrawing implements ggview.Renderer. It composes the targets into the
// frame returned by Image.
func (s *SoftwareRenderer) EndDrawing() {
	s.endScratch()
	s.frame.Composite()
}

// ScreenSize implements ggview.Renderer.
func (s *SoftwareRenderer) ScreenSize() geom.Point {
	return geom.Pt(float64(s.width), float64(s.height))
}

// SetWorldScreenMatrix implements ggview.Renderer.
func (s *SoftwareRenderer) SetWorldScreenMatrix(m geom.Matrix) {
	s.matrix = m
}

// SetFillColor implements Canvas.
func (s *SoftwareRenderer) SetFillColor(c gputypes.Color) {
	s.fill = c
}

// SetNegativeDrawMode implements Canvas.
func (s *SoftwareRenderer) SetNegativeDrawMode(negative bool) {
	s.negative = negative
}

// FillRect implements Canvas.
func (s *SoftwareRenderer) FillRect(r geom.Rect) {
	r = r.Normalize()
	s.FillPolygon([]geom.Point{r.Min, geom.Pt(r.Max.X, r.Min.Y), r.Max, geom.Pt(r.Min.X, r.Max.Y)})
}

// FillPolygon implements Canvas.
func (s *SoftwareRenderer) FillPolygon(points []geom.Point) {
	s.emit(&FillPolygonCommand{Style: s.style(), Points: slices.Clone(points)})
}

// FillCircle implements Canvas.
func (s *SoftwareRenderer) FillCircle(center geom.Point, radius float64) {
	s.emit(&FillCircleCommand{Style: s.style(), Center: center, Radius: radius})
}

// DrawSegment implements Canvas.
func (s *SoftwareRenderer) DrawSegment(a, b geom.Point, width float64) {
	s.emit(&SegmentCommand{Style: s.style(), A: a, B: b, Width: width})
}

// FillPath implements Canvas.
func (s *SoftwareRenderer) FillPath(contours [][]geom.Point) {
	cs := make([][]geom.Point, len(contours))
	for i, c := range contours {
		cs[i] = slices.Clone(c)
	}
	s.emit(&FillPathCommand{Style: s.style(), Contours: cs})
}

func (s *SoftwareRenderer) style() Style {
	return Style{Color: s.fill, Negative: s.negative}
}

func (s *SoftwareRenderer) emit(cmd Command) {
	if s.recording != nil {
		s.recording.append(cmd)
		return
	}
	s.execute(cmd, s.layerDepth)
}

// execute rasterizes cmd into the current destination.
func (s *SoftwareRenderer) execute(cmd Command, depth int) {
	clip := image.Rect(0, 0, s.width, s.height)
	var (
		mask *image.Alpha
		r    image.Rectangle
	)
	if cmd.Type() == CmdFillPath {
		mask, r = s.cov.rasterizeWinding(cmd.Outline(s.matrix), clip)
	} else {
		mask, r = s.cov.rasterize(cmd.Outline(s.matrix), clip)
	}
	if mask == nil {
		return
	}
	s.stats.CommandsExecuted++

	st := cmd.style()
	src := fromColor(st.Color)
	state := blendNormal
	if st.Negative {
		state = blendErase
	}
	dst := s.destination().Image()
	zbuf := s.depth[depthIndex(s.target)]
	z := float32(depth)

	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			a := mask.AlphaAt(x-r.Min.X, y-r.Min.Y).A
			if a == 0 {
				continue
			}
			i := y*s.width + x
			if s.depthTest && !depthPasses(s.depthState.DepthCompare, z, zbuf[i]) {
				continue
			}
			d := fromRGBA(dst.RGBAAt(x, y))
			dst.SetRGBA(x, y, blend(state, src.scale(float64(a)/255), d).rgba8())
			if s.depthState.DepthWriteEnabled && !st.Negative {
				zbuf[i] = z
			}
		}
	}
}

func (s *SoftwareRenderer) destination() *PixmapTarget {
	if s.mode != scratchNone {
		return s.scratch
	}
	return s.targets[s.target]
}

func (s *SoftwareRenderer) startScratch(mode scratchMode) {
	s.endScratch()
	s.scratch.Clear(gputypes.ColorTransparent)
	s.mode = mode
}

// endScratch composes the scratch layer onto the current target.
func (s *SoftwareRenderer) endScratch() {
	if s.mode == scratchNone {
		return
	}
	mode := s.mode
	s.mode = scratchNone

	src := s.scratch.Image()
	dst := s.targets[s.target].Image()
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			sp := src.RGBAAt(x, y)
			if sp.A == 0 {
				continue
			}
			sc, dc := fromRGBA(sp), fromRGBA(dst.RGBAAt(x, y))
			var out pixel
			if mode == scratchDiff {
				out = difference(sc, dc)
			} else {
				out = blend(blendNormal, sc, dc)
			}
			dst.SetRGBA(x, y, out.rgba8())
		}
	}
}

func (s *SoftwareRenderer) resetDepth(i int) {
	far := float32(math.Inf(-1))
	for j := range s.depth[i] {
		s.depth[i][j] = far
	}
}

func depthIndex(t ggview.Target) int {
	if t == ggview.TargetOverlay {
		return 1
	}
	return 0
}

func validTarget(t ggview.Target) bool {
	return t >= 0 && int(t) < numTargets
}

var (
	_ ggview.Renderer = (*SoftwareRenderer)(nil)
	_ Canvas          = (*SoftwareRenderer)(nil)
)
