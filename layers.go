// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggview

import (
	"cmp"
	"maps"
	"slices"

	"github.com/gogpu/ggview/geom"
)

// sortLayers recomputes the ordered layer list. Ties keep id order.
func (v *View) sortLayers() {
	v.ordered = append(v.ordered[:0], v.layers...)
	slices.SortStableFunc(v.ordered, func(a, b *viewLayer) int {
		return cmp.Compare(a.renderingOrder, b.renderingOrder)
	})
}

// SetLayerOrder sets the rendering order of a layer. Higher orders are
// drawn on top.
func (v *View) SetLayerOrder(layer, order int) {
	if !v.validLayer(layer) {
		return
	}
	v.layers[layer].renderingOrder = order
	v.sortLayers()
}

// LayerOrder returns the rendering order of a layer.
func (v *View) LayerOrder(layer int) int {
	if !v.validLayer(layer) {
		return 0
	}
	return v.layers[layer].renderingOrder
}

// SortLayers returns a copy of layers sorted topmost first.
func (v *View) SortLayers(layers []int) []int {
	out := slices.Clone(layers)
	slices.SortStableFunc(out, func(a, b int) int {
		return cmp.Compare(v.LayerOrder(b), v.LayerOrder(a))
	})
	return out
}

// UpdateAllLayersOrder re-sorts the layers and pushes the current
// rendering orders to every cached group.
func (v *View) UpdateAllLayersOrder() {
	v.sortLayers()
	if v.renderer != nil {
		for _, it := range v.items {
			if it == nil {
				continue
			}
			for _, g := range it.base().state.groups {
				v.renderer.ChangeGroupDepth(g.group, v.layers[g.layer].renderingOrder)
			}
		}
	}
	v.MarkDirty()
}

// SetTopLayer marks a layer as drawn above all others. While the top-layer
// modifier is enabled the layer's rendering order is raised by
// TopLayerBoost. Repeated calls with the same value do nothing.
func (v *View) SetTopLayer(layer int, enabled bool) {
	if !v.validLayer(layer) {
		return
	}
	_, isTop := v.topLayers[layer]
	if enabled == isTop {
		return
	}
	if enabled {
		v.topLayers[layer] = struct{}{}
		if v.enableTopLayer {
			v.layers[layer].renderingOrder += v.cfg.TopLayerBoost
		}
	} else {
		delete(v.topLayers, layer)
		if v.enableTopLayer {
			v.layers[layer].renderingOrder -= v.cfg.TopLayerBoost
		}
	}
	v.sortLayers()
}

// IsTopLayer reports whether layer is marked with SetTopLayer.
func (v *View) IsTopLayer(layer int) bool {
	_, ok := v.topLayers[layer]
	return ok
}

// EnableTopLayer turns the top-layer order boost on or off for every
// layer marked with SetTopLayer.
func (v *View) EnableTopLayer(enable bool) {
	if enable == v.enableTopLayer {
		return
	}
	v.enableTopLayer = enable
	boost := v.cfg.TopLayerBoost
	if !enable {
		boost = -boost
	}
	for l := range v.topLayers {
		v.layers[l].renderingOrder += boost
	}
	v.UpdateAllLayersOrder()
	v.ClearTargets()
}

// ClearTopLayers unmarks every top layer and removes their boost.
func (v *View) ClearTopLayers() {
	if v.enableTopLayer {
		for l := range v.topLayers {
			v.layers[l].renderingOrder -= v.cfg.TopLayerBoost
		}
	}
	clear(v.topLayers)
	v.sortLayers()
}

// SetRequired makes layer drawable only while required is visible.
// Requirements are checked recursively at redraw time.
func (v *View) SetRequired(layer, required int, on bool) {
	if !v.validLayer(layer) || !v.validLayer(required) {
		return
	}
	l := v.layers[layer]
	if on {
		if l.required == nil {
			l.required = make(map[int]struct{})
		}
		l.required[required] = struct{}{}
	} else {
		delete(l.required, required)
	}
}

// requiredLayersEnabled reports whether every layer required by id is
// visible, following requirements transitively. seen cuts cycles.
func (v *View) requiredLayersEnabled(id int, seen map[int]bool) bool {
	seen[id] = true
	for req := range v.layers[id].required {
		if !v.layers[req].visible {
			return false
		}
		if !seen[req] && !v.requiredLayersEnabled(req, seen) {
			return false
		}
	}
	return true
}

// layerDrawable reports whether a layer takes part in a redraw.
func (v *View) layerDrawable(l *viewLayer) bool {
	if !l.visible || !v.IsTargetDirty(l.target) {
		return false
	}
	if len(l.required) == 0 {
		return true
	}
	if v.seen == nil {
		v.seen = make(map[int]bool)
	} else {
		clear(v.seen)
	}
	return v.requiredLayersEnabled(l.id, v.seen)
}

// SetLayerVisible shows or hides a layer.
func (v *View) SetLayerVisible(layer int, visible bool) {
	if !v.validLayer(layer) {
		return
	}
	l := v.layers[layer]
	if l.visible != visible {
		v.MarkTargetDirty(l.target)
		l.visible = visible
	}
}

// IsLayerVisible reports whether a layer is visible.
func (v *View) IsLayerVisible(layer int) bool {
	if !v.validLayer(layer) {
		return false
	}
	return v.layers[layer].visible
}

// SetLayerDisplayOnly excludes a layer from queries. Its items are still
// drawn.
func (v *View) SetLayerDisplayOnly(layer int, displayOnly bool) {
	if v.validLayer(layer) {
		v.layers[layer].displayOnly = displayOnly
	}
}

// SetLayerTarget sets the composition target of a layer.
func (v *View) SetLayerTarget(layer int, t Target) {
	if !v.validLayer(layer) || !assert(t >= 0 && t < targetCount, "unknown target", "target", t) {
		return
	}
	l := v.layers[layer]
	if l.target != t {
		v.MarkTargetDirty(l.target)
		l.target = t
		v.MarkTargetDirty(t)
	}
}

// LayerTarget returns the composition target of a layer.
func (v *View) LayerTarget(layer int) Target {
	if !v.validLayer(layer) {
		return TargetCached
	}
	return v.layers[layer].target
}

// IsCached reports whether a layer draws through cached groups.
func (v *View) IsCached(layer int) bool {
	if !v.validLayer(layer) {
		return false
	}
	return v.layers[layer].target == TargetCached
}

// SetLayerDiff makes a layer draw in difference mode.
func (v *View) SetLayerDiff(layer int, diff bool) {
	if v.validLayer(layer) && v.layers[layer].diffLayer != diff {
		v.layers[layer].diffLayer = diff
		v.MarkTargetDirty(v.layers[layer].target)
	}
}

// SetLayerHasNegatives makes a layer draw with negative-shape support.
func (v *View) SetLayerHasNegatives(layer int, negatives bool) {
	if v.validLayer(layer) && v.layers[layer].hasNegatives != negatives {
		v.layers[layer].hasNegatives = negatives
		v.MarkTargetDirty(v.layers[layer].target)
	}
}

// UpdateLayerColor recolors the cached groups of every item on a layer
// using the painter's current colors.
func (v *View) UpdateLayerColor(layer int) {
	if !v.IsCached(layer) {
		return
	}
	l := v.layers[layer]
	l.items.Query(geom.MaxRect(), func(it Item) bool {
		v.updateItemColor(it, layer)
		return true
	})
	v.MarkTargetDirty(l.target)
}

// UpdateAllLayersColor recolors every cached layer.
func (v *View) UpdateAllLayersColor() {
	for _, l := range v.layers {
		if l.target == TargetCached {
			v.UpdateLayerColor(l.id)
		}
	}
}

// ReorderLayerData moves layer records to new ids. remap maps old ids to
// new ids; layers not mentioned keep their id. Items, their cached groups
// and layer requirements follow their layers, as does the preview group.
// remap must be a permutation of its keys; any other mapping is rejected.
func (v *View) ReorderLayerData(remap map[int]int) {
	targets := make(map[int]bool, len(remap))
	for from, to := range remap {
		if !v.validLayer(from) || !v.validLayer(to) {
			return
		}
		_, vacated := remap[to]
		if !assert(!targets[to] && vacated, "layer remap collides", "layer", to) {
			return
		}
		targets[to] = true
	}
	moveID := func(id int) int {
		if to, ok := remap[id]; ok {
			return to
		}
		return id
	}

	next := make([]*viewLayer, len(v.layers))
	for id, l := range v.layers {
		if _, moved := remap[id]; !moved && next[id] == nil {
			next[id] = l
		}
	}
	for _, from := range slices.Sorted(maps.Keys(remap)) {
		l := v.layers[from]
		l.id = remap[from]
		next[l.id] = l
	}
	for id := range next {
		next[id].id = id
		if len(next[id].required) > 0 {
			req := make(map[int]struct{}, len(next[id].required))
			for r := range next[id].required {
				req[moveID(r)] = struct{}{}
			}
			next[id].required = req
		}
	}
	v.layers = next

	top := make(map[int]struct{}, len(v.topLayers))
	for l := range v.topLayers {
		top[moveID(l)] = struct{}{}
	}
	v.topLayers = top
	v.cfg.PreviewLayer = moveID(v.cfg.PreviewLayer)
	v.preview.layer = v.cfg.PreviewLayer

	for _, it := range v.items {
		if it == nil {
			continue
		}
		d := it.base().state
		for i, l := range d.layers {
			d.layers[i] = moveID(l)
		}
		for i := range d.groups {
			d.groups[i].layer = moveID(d.groups[i].layer)
		}
		d.requiredUpdate |= UpdateColor
	}

	v.sortLayers()
	v.MarkDirty()
	v.UpdateItems()
}

// CopySettings copies the layer setup of other: visibility, query
// exclusion, target, rendering order, draw modes and requirements.
func (v *View) CopySettings(other *View) {
	n := min(len(v.layers), len(other.layers))
	for id := 0; id < n; id++ {
		src, dst := other.layers[id], v.layers[id]
		dst.visible = src.visible
		dst.displayOnly = src.displayOnly
		dst.target = src.target
		dst.renderingOrder = src.renderingOrder
		dst.diffLayer = src.diffLayer
		dst.hasNegatives = src.hasNegatives
		dst.required = maps.Clone(src.required)
	}
	v.topLayers = maps.Clone(other.topLayers)
	if v.topLayers == nil {
		v.topLayers = make(map[int]struct{})
	}
	v.enableTopLayer = other.enableTopLayer
	v.UpdateAllLayersOrder()
}
