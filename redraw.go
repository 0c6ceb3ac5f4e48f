// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggview

import (
	"cmp"
	"slices"

	"github.com/gogpu/ggview/geom"
)

// MarkDirty marks every target for redraw.
func (v *View) MarkDirty() {
	for i := range v.dirty {
		v.dirty[i] = true
	}
}

// MarkTargetDirty marks one target for redraw.
func (v *View) MarkTargetDirty(t Target) {
	if assert(t >= 0 && t < targetCount, "unknown target", "target", t) {
		v.dirty[t] = true
	}
}

// IsTargetDirty reports whether a target needs redrawing.
func (v *View) IsTargetDirty(t Target) bool {
	return t >= 0 && t < targetCount && v.dirty[t]
}

// IsDirty reports whether any target needs redrawing.
func (v *View) IsDirty() bool {
	for _, d := range v.dirty {
		if d {
			return true
		}
	}
	return false
}

// MarkClean marks every target as up to date.
func (v *View) MarkClean() {
	clear(v.dirty[:])
}

// ClearTargets clears the renderer targets that need redrawing. The cached
// and non-cached targets are always cleared together.
func (v *View) ClearTargets() {
	if v.renderer == nil {
		return
	}
	if v.IsTargetDirty(TargetCached) || v.IsTargetDirty(TargetNonCached) {
		v.renderer.ClearTarget(TargetCached)
		v.renderer.ClearTarget(TargetNonCached)
		v.MarkDirty()
	}
	if v.IsTargetDirty(TargetOverlay) {
		v.renderer.ClearTarget(TargetOverlay)
	}
}

// Paint renders one frame: pending updates are reconciled, dirty targets
// are cleared and redrawn.
func (v *View) Paint() {
	v.UpdateItems()
	if v.renderer == nil {
		return
	}
	v.pushMatrix()
	v.renderer.BeginDrawing()
	v.ClearTargets()
	v.Redraw()
	v.renderer.EndDrawing()
}

// Redraw draws the visible region of every dirty target and marks the view
// clean.
func (v *View) Redraw() {
	if v.renderer == nil {
		return
	}
	v.redrawRect(v.visibleRect())
	v.MarkClean()
}

// layerPass collects the state of one redraw pass over a layer.
type layerPass struct {
	v                *View
	layer            int
	deferred         []Item
	foundTransparent bool
	drawTransparent  bool
	useDrawPriority  bool
	reverseDrawOrder bool
}

// visit decides whether an item found by the index is drawn in this pass.
func (p *layerPass) visit(it Item) bool {
	d := it.base().state
	if !d.isRenderable() || it.LevelOfDetail(p.layer, p.v) >= p.v.scale {
		return true
	}
	transparent := it.ForcedTransparency() > 0
	if transparent != p.drawTransparent {
		if transparent {
			p.foundTransparent = true
		}
		return true
	}
	if p.useDrawPriority {
		p.deferred = append(p.deferred, it)
	} else {
		p.v.draw(it, p.layer, p.drawTransparent)
	}
	return true
}

func (p *layerPass) flush() {
	if len(p.deferred) == 0 {
		return
	}
	slices.SortStableFunc(p.deferred, func(a, b Item) int {
		c := cmp.Compare(a.base().state.drawPriority, b.base().state.drawPriority)
		if p.reverseDrawOrder {
			return -c
		}
		return c
	})
	for _, it := range p.deferred {
		p.v.draw(it, p.layer, p.drawTransparent)
	}
	p.deferred = p.deferred[:0]
}

// redrawRect draws every drawable layer, bottom first, restricted to the
// items intersecting rect. Items with forced transparency are drawn in a
// second pass on the non-cached target with depth testing.
func (v *View) redrawRect(rect geom.Rect) {
	r := v.renderer
	pass := layerPass{
		v:                v,
		useDrawPriority:  v.cfg.UseDrawPriority,
		reverseDrawOrder: v.cfg.ReverseDrawOrder,
	}

	for _, l := range v.ordered {
		if !v.layerDrawable(l) {
			continue
		}
		pass.layer = l.id

		r.SetTarget(l.target)
		r.SetLayerDepth(l.renderingOrder)
		switch {
		case l.diffLayer:
			r.StartDiffLayer()
		case l.hasNegatives:
			r.StartNegativesLayer()
		}

		l.items.Query(rect, pass.visit)
		pass.flush()
		if l.id == v.cfg.PreviewLayer {
			v.drawPreview()
		}

		switch {
		case l.diffLayer:
			r.EndDiffLayer()
		case l.hasNegatives:
			r.EndNegativesLayer()
		}
	}

	if !pass.foundTransparent {
		return
	}
	pass.drawTransparent = true
	r.SetTarget(TargetNonCached)
	r.EnableDepthTest(true)
	for _, l := range v.ordered {
		if !v.layerDrawable(l) {
			continue
		}
		pass.layer = l.id
		r.SetLayerDepth(l.renderingOrder)
		l.items.Query(rect, pass.visit)
		pass.flush()
	}
	r.EnableDepthTest(false)
}

// draw draws one (item, layer) pair. Cached layers replay the item's
// group, building it first when missing; immediate draws and non-cached
// layers go through the painter.
func (v *View) draw(item Item, layer int, immediate bool) {
	d := item.base().state
	if v.layers[layer].target == TargetCached && !immediate {
		g := d.group(layer)
		if g == NoGroup {
			v.updateItemGeometry(item, layer)
			g = d.group(layer)
			v.renderer.SetTarget(TargetCached)
			v.renderer.SetLayerDepth(v.layers[layer].renderingOrder)
		}
		if g != NoGroup {
			v.renderer.DrawGroup(g)
		}
		return
	}
	v.paint(item, layer)
}
