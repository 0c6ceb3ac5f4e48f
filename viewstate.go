// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggview

import (
	"slices"

	"github.com/gogpu/ggview/geom"
)

// layerGroup binds a cached renderer group to one layer of an item.
type layerGroup struct {
	layer int
	group GroupID
}

// itemData is the view-side state of one registered item. It hangs off the
// item's ItemBase and points back at the owning view.
type itemData struct {
	view  *View
	epoch uint64

	flags          ItemFlags
	requiredUpdate UpdateFlags
	drawPriority   int

	// cachedIndex is the item's slot in View.items. Compaction rewrites it.
	cachedIndex int

	// bbox and layers are what the spatial indices currently hold for the
	// item. Removal uses them, never the item's live geometry.
	bbox   geom.Rect
	layers []int

	// groups is small: one entry per cached layer.
	groups []layerGroup
}

// live reports whether the state still belongs to its view. States from
// before the view's last Clear are detached.
func (d *itemData) live() bool {
	return d != nil && d.view != nil && d.epoch == d.view.epoch
}

func (d *itemData) group(layer int) GroupID {
	for _, g := range d.groups {
		if g.layer == layer {
			return g.group
		}
	}
	return NoGroup
}

func (d *itemData) setGroup(layer int, id GroupID) {
	for i := range d.groups {
		if d.groups[i].layer == layer {
			if id == NoGroup {
				d.groups = slices.Delete(d.groups, i, i+1)
			} else {
				d.groups[i].group = id
			}
			return
		}
	}
	if id != NoGroup {
		d.groups = append(d.groups, layerGroup{layer: layer, group: id})
	}
}

// releaseGroups deletes every cached group through r and forgets them.
func (d *itemData) releaseGroups(r Renderer) {
	if r != nil {
		for _, g := range d.groups {
			r.DeleteGroup(g.group)
		}
	}
	d.groups = d.groups[:0]
}

// releaseStaleGroups deletes the groups of layers not in keep.
// It returns the layers whose groups were released.
func (d *itemData) releaseStaleGroups(r Renderer, keep []int) []int {
	var stale []int
	d.groups = slices.DeleteFunc(d.groups, func(g layerGroup) bool {
		if slices.Contains(keep, g.layer) {
			return false
		}
		if r != nil {
			r.DeleteGroup(g.group)
		}
		stale = append(stale, g.layer)
		return true
	})
	return stale
}

func (d *itemData) onLayer(layer int) bool {
	return slices.Contains(d.layers, layer)
}

func (d *itemData) isRenderable() bool {
	return d.flags == Visible
}
