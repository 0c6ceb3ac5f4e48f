// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggview

// Update schedules item for reconciliation on the next UpdateItems.
// Without flags the item is fully refreshed (UpdateAll).
func (v *View) Update(item Item, flags ...UpdateFlags) {
	d := v.state(item)
	if !assert(d != nil, "update of unregistered item") {
		return
	}
	if len(flags) == 0 {
		d.requiredUpdate |= UpdateAll
		return
	}
	for _, f := range flags {
		d.requiredUpdate |= f
	}
}

// UpdateAllItems schedules every item for reconciliation with flags.
func (v *View) UpdateAllItems(flags UpdateFlags) {
	for _, it := range v.items {
		if it != nil {
			it.base().state.requiredUpdate |= flags
		}
	}
}

// UpdateAllItemsConditionally schedules the items accepted by cond.
func (v *View) UpdateAllItemsConditionally(flags UpdateFlags, cond func(Item) bool) {
	for _, it := range v.items {
		if it != nil && cond(it) {
			it.base().state.requiredUpdate |= flags
		}
	}
}

// HasPendingUpdates reports whether any item awaits reconciliation.
func (v *View) HasPendingUpdates() bool {
	for _, it := range v.items {
		if it != nil && it.base().state.requiredUpdate != UpdateNone {
			return true
		}
	}
	return false
}

// UpdateItems reconciles every scheduled item with the spatial indices and
// the renderer's group cache.
//
// When the fraction of items with geometry or layer changes exceeds
// RebuildThreshold, every index is rebuilt from scratch first. The
// observable result is the same either way.
func (v *View) UpdateItems() {
	total, reindex := 0, 0
	for _, it := range v.items {
		if it == nil {
			continue
		}
		total++
		if it.base().state.requiredUpdate.needsReindex() {
			reindex++
		}
	}
	if total == 0 {
		return
	}

	if reindex > 0 && float64(reindex)/float64(total) > v.cfg.RebuildThreshold {
		Logger().Debug("ggview: rebuilding spatial indices", "dirty", reindex, "items", total)
		v.rebuildIndices()
	}

	for _, it := range v.items {
		if it == nil {
			continue
		}
		if f := it.base().state.requiredUpdate; f != UpdateNone {
			v.invalidateItem(it, f)
		}
	}
}

// rebuildIndices refills every layer index from fresh bounding boxes and
// layer lists. Geometry and layer bits become repaints, since the index
// work they asked for is done.
func (v *View) rebuildIndices() {
	for _, l := range v.layers {
		l.items.Clear()
	}
	for _, it := range v.items {
		if it == nil {
			continue
		}
		d := it.base().state
		if f := d.requiredUpdate; f.needsReindex() {
			d.requiredUpdate = f&^(UpdateGeometry|UpdateLayers) | UpdateRepaint
		}

		layers := v.validLayers(it.Layers())
		for _, l := range d.layers {
			v.MarkTargetDirty(v.layers[l].target)
		}
		v.releaseStaleGroups(d, layers)
		d.layers = layers
		if len(layers) == 0 {
			continue
		}
		d.bbox = it.BoundingBox()
		for _, l := range layers {
			v.layers[l].items.Insert(d.bbox, it)
		}
	}
}

func (v *View) releaseStaleGroups(d *itemData, keep []int) {
	for _, l := range d.releaseStaleGroups(v.renderer, keep) {
		v.MarkTargetDirty(v.layers[l].target)
	}
}

// invalidateItem applies the pending update flags of one item.
func (v *View) invalidateItem(item Item, flags UpdateFlags) {
	d := item.base().state

	if flags&UpdateInitialAdd != 0 {
		// The item was indexed by Add.
		flags = UpdateAll
	} else if flags&UpdateLayers != 0 {
		v.updateLayers(item)
	} else if flags&UpdateGeometry != 0 {
		v.updateBbox(item)
	}

	for _, l := range d.layers {
		layer := v.layers[l]
		if layer.target == TargetCached {
			switch {
			case flags&(UpdateGeometry|UpdateLayers|UpdateRepaint) != 0:
				v.updateItemGeometry(item, l)
			case flags&UpdateColor != 0:
				v.updateItemColor(item, l)
			}
		}
		v.MarkTargetDirty(layer.target)
	}
	d.requiredUpdate = UpdateNone
}

// updateLayers moves item to its current layer set.
func (v *View) updateLayers(item Item) {
	d := item.base().state
	for _, l := range d.layers {
		v.layers[l].items.Remove(d.bbox, item)
		v.MarkTargetDirty(v.layers[l].target)
	}
	d.releaseGroups(v.renderer)

	d.layers = v.validLayers(item.Layers())
	if len(d.layers) == 0 {
		return
	}
	d.bbox = item.BoundingBox()
	for _, l := range d.layers {
		v.layers[l].items.Insert(d.bbox, item)
		v.MarkTargetDirty(v.layers[l].target)
	}
}

// updateBbox re-indexes item under its current bounding box.
func (v *View) updateBbox(item Item) {
	d := item.base().state
	bbox := item.BoundingBox()
	for _, l := range d.layers {
		layer := v.layers[l]
		layer.items.Remove(d.bbox, item)
		layer.items.Insert(bbox, item)
		v.MarkTargetDirty(layer.target)
	}
	d.bbox = bbox
}

// updateItemGeometry rebuilds the cached group of item on layer.
func (v *View) updateItemGeometry(item Item, layer int) {
	r := v.renderer
	if r == nil {
		return
	}
	d := item.base().state
	l := v.layers[layer]

	r.SetTarget(l.target)
	r.SetLayerDepth(l.renderingOrder)

	if g := d.group(layer); g != NoGroup {
		r.DeleteGroup(g)
		d.setGroup(layer, NoGroup)
	}

	id, err := r.BeginGroup()
	if err != nil {
		Logger().Warn("ggview: group allocation failed", "layer", layer, "error", err)
		return
	}
	d.setGroup(layer, id)
	v.paint(item, layer)
	r.EndGroup()
}

// updateItemColor recolors the cached group of item on layer in place.
func (v *View) updateItemColor(item Item, layer int) {
	if v.renderer == nil || v.painter == nil {
		return
	}
	d := item.base().state
	if g := d.group(layer); g != NoGroup {
		v.renderer.ChangeGroupColor(g, v.painter.Color(item, layer))
	}
}

// paint issues the draw calls of item on layer.
func (v *View) paint(item Item, layer int) {
	if v.painter == nil || !v.painter.Draw(item, layer) {
		item.SelfDraw(layer, v)
	}
}

// RecacheAllItems rebuilds the cached groups of every item on every cached
// layer.
func (v *View) RecacheAllItems() {
	for _, it := range v.items {
		if it == nil {
			continue
		}
		for _, l := range it.base().state.layers {
			if v.layers[l].target == TargetCached {
				v.updateItemGeometry(it, l)
			}
		}
	}
	v.MarkTargetDirty(TargetCached)
}

// Hide hides or shows an item without unregistering it. With onOverlay the
// overlay-hidden flag is changed instead.
func (v *View) Hide(item Item, hide, onOverlay bool) {
	d := v.state(item)
	if !assert(d != nil, "hide of unregistered item") {
		return
	}
	flag := Hidden
	if onOverlay {
		flag = OverlayHidden
	}
	if hide == (d.flags&flag != 0) {
		return
	}
	if hide {
		d.flags |= flag
	} else {
		d.flags &^= flag
	}
	d.requiredUpdate |= UpdateAppearance
}

// SetVisible changes the visible flag of an item.
func (v *View) SetVisible(item Item, visible bool) {
	d := v.state(item)
	if !assert(d != nil, "visibility change of unregistered item") {
		return
	}
	if visible == (d.flags&Visible != 0) {
		return
	}
	if visible {
		d.flags |= Visible
	} else {
		d.flags &^= Visible
	}
	d.requiredUpdate |= UpdateAppearance | UpdateColor
}

// IsVisible reports whether item has its visible flag set.
func (v *View) IsVisible(item Item) bool {
	d := v.state(item)
	return d != nil && d.flags&Visible != 0
}

// IsHiddenOnOverlay reports whether item is hidden on the overlay.
func (v *View) IsHiddenOnOverlay(item Item) bool {
	d := v.state(item)
	return d != nil && d.flags&OverlayHidden != 0
}
