// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggview

import (
	"slices"

	"github.com/gogpu/ggview/geom"
)

// View is a layered, spatially indexed viewport over a set of items.
//
// A View is not safe for concurrent use.
type View struct {
	cfg Config

	// layers is indexed by layer id. ordered holds the same records sorted
	// by rendering order, bottom first.
	layers  []*viewLayer
	ordered []*viewLayer

	topLayers      map[int]struct{}
	enableTopLayer bool

	// items holds every registered item. Removed items leave a nil
	// tombstone until compaction.
	items            []Item
	tombstones       int
	nextDrawPriority int

	// epoch is bumped by Clear. Item states from older epochs are
	// detached.
	epoch uint64

	dirty [targetCount]bool

	// seen is scratch for requirement walks during redraw.
	seen map[int]bool

	center geom.Point
	scale  float64

	renderer Renderer
	painter  Painter

	preview     *Group
	showPreview bool
}

// New creates a view.
//
// Example:
//
//	v := ggview.New(ggview.WithRenderer(r), ggview.WithPainter(p))
//	v.Add(track)
//	v.Paint()
func New(opts ...Option) *View {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	cfg := o.cfg
	if cfg.MaxLayers <= 0 {
		cfg.MaxLayers = DefaultMaxLayers
	}
	if cfg.PreviewLayer < 0 || cfg.PreviewLayer >= cfg.MaxLayers {
		cfg.PreviewLayer = cfg.MaxLayers - 1
	}
	cfg.Boundary = cfg.Boundary.Normalize()

	v := &View{
		cfg:            cfg,
		layers:         make([]*viewLayer, cfg.MaxLayers),
		topLayers:      make(map[int]struct{}),
		enableTopLayer: true,
		scale:          1,
		renderer:       o.renderer,
		painter:        o.painter,
		showPreview:    true,
	}
	for id := range v.layers {
		v.layers[id] = newViewLayer(id)
	}
	v.layers[cfg.PreviewLayer].target = TargetOverlay
	v.sortLayers()

	v.preview = NewGroup(cfg.PreviewLayer)
	v.center = cfg.Boundary.Clamp(geom.Point{})
	v.scale = v.clampScale(1)
	v.MarkDirty()
	v.pushMatrix()
	return v
}

// Config returns the view configuration, including runtime changes made
// through setters.
func (v *View) Config() Config {
	return v.cfg
}

// Renderer returns the current renderer, which may be nil.
func (v *View) Renderer() Renderer {
	return v.renderer
}

// SetRenderer switches the renderer. Groups created by the previous
// renderer are forgotten without being deleted, since they belong to that
// renderer's cache. They are rebuilt on demand.
func (v *View) SetRenderer(r Renderer) {
	for _, it := range v.items {
		if it != nil {
			it.base().state.groups = nil
		}
	}
	v.renderer = r
	Logger().Debug("ggview: renderer switched", "items", v.Len())
	v.pushMatrix()
	v.MarkDirty()
}

// Painter returns the current painter, which may be nil.
func (v *View) Painter() Painter {
	return v.painter
}

// SetPainter switches the painter. Every item is scheduled for a repaint
// on the next UpdateItems.
func (v *View) SetPainter(p Painter) {
	v.painter = p
	v.UpdateAllItems(UpdateRepaint)
}

// state returns the live view-state of item in v, or nil.
func (v *View) state(item Item) *itemData {
	if item == nil {
		return nil
	}
	d := item.base().state
	if !d.live() || d.view != v {
		return nil
	}
	return d
}

// validLayers filters ids outside [0, MaxLayers) and duplicates.
func (v *View) validLayers(ids []int) []int {
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if id < 0 || id >= len(v.layers) {
			Logger().Warn("ggview: invalid layer id", "layer", id, "max", len(v.layers))
			continue
		}
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

// Add registers item with the view and indexes it on every layer it
// occupies. The optional priority orders the item within its layers when
// draw priority is enabled; omitted or negative priorities are assigned
// from an increasing counter.
//
// Adding an item that already belongs to a view is reported and ignored.
func (v *View) Add(item Item, priority ...int) {
	if item == nil {
		return
	}
	b := item.base()
	if b.state.live() {
		assert(false, "item already registered", "sameView", b.state.view == v)
		return
	}

	prio := -1
	if len(priority) > 0 {
		prio = priority[0]
	}
	if prio < 0 {
		prio = v.nextDrawPriority
		v.nextDrawPriority++
	}

	d := &itemData{
		view:         v,
		epoch:        v.epoch,
		drawPriority: prio,
		cachedIndex:  len(v.items),
		flags:        Visible,
	}
	b.state = d
	v.items = append(v.items, item)

	d.layers = v.validLayers(item.Layers())
	if len(d.layers) == 0 {
		return
	}
	d.bbox = item.BoundingBox()
	for _, l := range d.layers {
		v.layers[l].items.Insert(d.bbox, item)
		v.MarkTargetDirty(v.layers[l].target)
	}
	d.requiredUpdate |= UpdateInitialAdd
}

// Remove unregisters item, drops it from every spatial index and releases
// its cached groups. Removing an unregistered item does nothing.
func (v *View) Remove(item Item) {
	d := v.state(item)
	if d == nil {
		return
	}

	idx := d.cachedIndex
	if idx < 0 || idx >= len(v.items) || v.items[idx] != item {
		idx = slices.Index(v.items, item)
	}
	if idx >= 0 {
		v.items[idx] = nil
		v.tombstones++
	} else {
		assert(false, "registered item missing from item list")
	}

	for _, l := range d.layers {
		layer := v.layers[l]
		if !layer.items.Remove(d.bbox, item) {
			Logger().Debug("ggview: item not found in layer index", "layer", l)
		}
		v.MarkTargetDirty(layer.target)
	}
	d.releaseGroups(v.renderer)
	d.view = nil
	item.base().state = nil

	if v.tombstones > v.cfg.CompactThreshold {
		v.compact()
	}
}

// compact drops tombstones from the item list and rewrites the cached
// index of every survivor.
func (v *View) compact() {
	n := 0
	for _, it := range v.items {
		if it == nil {
			continue
		}
		it.base().state.cachedIndex = n
		v.items[n] = it
		n++
	}
	clear(v.items[n:])
	Logger().Debug("ggview: compacted item list", "removed", len(v.items)-n, "items", n)
	v.items = v.items[:n]
	v.tombstones = 0
}

// Clear unregisters every item and drops the renderer's whole group cache.
// Item states created before Clear become detached; the items may be added
// again.
func (v *View) Clear() {
	for _, l := range v.layers {
		l.items.Clear()
	}
	clear(v.items)
	v.items = v.items[:0]
	v.tombstones = 0
	v.nextDrawPriority = 0
	if v.renderer != nil {
		v.renderer.ClearCache()
	}
	v.epoch++
	v.MarkDirty()
}

// Len returns the number of registered items.
func (v *View) Len() int {
	return len(v.items) - v.tombstones
}

// Items calls fn for every registered item in registration order until fn
// returns false.
func (v *View) Items(fn func(Item) bool) {
	for _, it := range v.items {
		if it != nil && !fn(it) {
			return
		}
	}
}

// Contains reports whether item is registered with v.
func (v *View) Contains(item Item) bool {
	return v.state(item) != nil
}

// DrawPriority returns the draw priority of a registered item.
func (v *View) DrawPriority(item Item) int {
	d := v.state(item)
	if !assert(d != nil, "item not registered") {
		return 0
	}
	return d.drawPriority
}

// SetDrawPriority changes the draw priority of a registered item and
// repaints its layers.
func (v *View) SetDrawPriority(item Item, priority int) {
	d := v.state(item)
	if !assert(d != nil, "item not registered") {
		return
	}
	d.drawPriority = priority
	v.Update(item, UpdateAppearance)
}

func (v *View) validLayer(id int) bool {
	return assert(id >= 0 && id < len(v.layers), "unknown layer", "layer", id)
}
