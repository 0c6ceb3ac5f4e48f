// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggview

import (
	"errors"
	"sort"

	"github.com/gogpu/ggview/geom"
	"github.com/gogpu/gputypes"
)

// box is a test item with a fixed rectangle and layer list.
type box struct {
	ItemBase
	id        int
	rect      geom.Rect
	layers    []int
	lod       float64
	selfDraws int
}

func newBox(x, y, w, h float64, layers ...int) *box {
	return &box{rect: geom.XYWH(x, y, w, h), layers: layers}
}

func (b *box) BoundingBox() geom.Rect { return b.rect }
func (b *box) Layers() []int          { return b.layers }

func (b *box) LevelOfDetail(int, *View) float64 { return b.lod }

func (b *box) SelfDraw(int, *View) { b.selfDraws++ }

// drawRecord is one painter call observed by mockPainter.
type drawRecord struct {
	item      Item
	layer     int
	inGroup   bool
	target    Target
	depthTest bool
}

// mockRenderer records the calls the view makes.
type mockRenderer struct {
	nextID    GroupID
	live      map[GroupID]bool
	recording GroupID
	failAlloc bool

	target    Target
	depth     int
	depthTest bool
	size      geom.Point
	matrix    geom.Matrix

	begun       []GroupID
	deleted     []GroupID
	drawnGroups []GroupID
	colors      map[GroupID]gputypes.Color
	depths      map[GroupID]int
	cleared     []Target
	clearCache  int
	brackets    []string
}

func newMockRenderer() *mockRenderer {
	return &mockRenderer{
		recording: NoGroup,
		live:      make(map[GroupID]bool),
		colors:    make(map[GroupID]gputypes.Color),
		depths:    make(map[GroupID]int),
		size:      geom.Pt(800, 600),
	}
}

var errOutOfGroups = errors.New("out of groups")

func (r *mockRenderer) BeginGroup() (GroupID, error) {
	if r.failAlloc {
		return NoGroup, errOutOfGroups
	}
	id := r.nextID
	r.nextID++
	r.live[id] = true
	r.recording = id
	r.begun = append(r.begun, id)
	return id, nil
}

func (r *mockRenderer) EndGroup() { r.recording = NoGroup }

func (r *mockRenderer) DeleteGroup(id GroupID) {
	r.deleted = append(r.deleted, id)
	delete(r.live, id)
}

func (r *mockRenderer) DrawGroup(id GroupID) { r.drawnGroups = append(r.drawnGroups, id) }

func (r *mockRenderer) ChangeGroupColor(id GroupID, c gputypes.Color) { r.colors[id] = c }
func (r *mockRenderer) ChangeGroupDepth(id GroupID, depth int)        { r.depths[id] = depth }

func (r *mockRenderer) ClearCache() {
	r.clearCache++
	clear(r.live)
}

func (r *mockRenderer) SetTarget(t Target)           { r.target = t }
func (r *mockRenderer) ClearTarget(t Target)         { r.cleared = append(r.cleared, t) }
func (r *mockRenderer) SetLayerDepth(depth int)      { r.depth = depth }
func (r *mockRenderer) EnableDepthTest(enabled bool) { r.depthTest = enabled }

func (r *mockRenderer) StartDiffLayer()      { r.brackets = append(r.brackets, "diff(") }
func (r *mockRenderer) EndDiffLayer()        { r.brackets = append(r.brackets, ")diff") }
func (r *mockRenderer) StartNegativesLayer() { r.brackets = append(r.brackets, "neg(") }
func (r *mockRenderer) EndNegativesLayer()   { r.brackets = append(r.brackets, ")neg") }

func (r *mockRenderer) BeginDrawing() {}
func (r *mockRenderer) EndDrawing()   {}

func (r *mockRenderer) ScreenSize() geom.Point             { return r.size }
func (r *mockRenderer) SetWorldScreenMatrix(m geom.Matrix) { r.matrix = m }

// resetFrame forgets per-frame observations.
func (r *mockRenderer) resetFrame() {
	r.drawnGroups = nil
	r.cleared = nil
	r.brackets = nil
}

// mockPainter handles every item except those listed in skip.
type mockPainter struct {
	r     *mockRenderer
	color gputypes.Color
	skip  map[Item]bool
	draws []drawRecord
}

func newMockPainter(r *mockRenderer) *mockPainter {
	return &mockPainter{r: r, color: gputypes.ColorRed, skip: make(map[Item]bool)}
}

func (p *mockPainter) Draw(item Item, layer int) bool {
	if p.skip[item] {
		return false
	}
	p.draws = append(p.draws, drawRecord{
		item:      item,
		layer:     layer,
		inGroup:   p.r.recording != NoGroup,
		target:    p.r.target,
		depthTest: p.r.depthTest,
	})
	return true
}

func (p *mockPainter) Color(Item, int) gputypes.Color { return p.color }

// immediateDraws returns the draws issued outside group recording.
func (p *mockPainter) immediateDraws() []drawRecord {
	var out []drawRecord
	for _, d := range p.draws {
		if !d.inGroup {
			out = append(out, d)
		}
	}
	return out
}

func newTestView(opts ...Option) (*View, *mockRenderer, *mockPainter) {
	r := newMockRenderer()
	p := newMockPainter(r)
	opts = append([]Option{WithRenderer(r), WithPainter(p)}, opts...)
	return New(opts...), r, p
}

// queryIDs returns "layer:id" pairs of a query in a canonical order.
func queryIDs(v *View, r geom.Rect) [][2]int {
	var out [][2]int
	for _, li := range v.Query(r) {
		out = append(out, [2]int{li.Layer, li.Item.(*box).id})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i][0] != out[j][0] {
			return out[i][0] < out[j][0]
		}
		return out[i][1] < out[j][1]
	})
	return out
}

func totalIndexed(v *View) int {
	n := 0
	for _, l := range v.layers {
		n += l.items.Len()
	}
	return n
}
