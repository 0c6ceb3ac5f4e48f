// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggview

import (
	"cmp"
	"slices"

	"github.com/gogpu/ggview/geom"
)

// Group is an item that draws a collection of other items on a single
// layer. The members are not registered with the view; the group draws
// them through the painter, layer by layer in rendering order.
//
// Groups carry transient content: previews, drag outlines, selection
// markers.
type Group struct {
	ItemBase
	layer   int
	members []Item
}

// NewGroup creates an empty group on layer.
func NewGroup(layer int) *Group {
	return &Group{layer: layer}
}

// Add appends an item to the group.
func (g *Group) Add(item Item) {
	g.members = append(g.members, item)
}

// Remove drops an item from the group.
func (g *Group) Remove(item Item) {
	g.members = slices.DeleteFunc(g.members, func(m Item) bool { return m == item })
}

// Clear drops every member.
func (g *Group) Clear() {
	clear(g.members)
	g.members = g.members[:0]
}

// Len returns the number of members.
func (g *Group) Len() int {
	return len(g.members)
}

// Members returns the members in insertion order.
func (g *Group) Members() []Item {
	return slices.Clone(g.members)
}

// Layer returns the layer the group lives on.
func (g *Group) Layer() int {
	return g.layer
}

// SetLayer moves the group to another layer. Call View.Update with
// UpdateLayers if the group is registered.
func (g *Group) SetLayer(layer int) {
	g.layer = layer
}

// Layers returns the group's single layer.
func (g *Group) Layers() []int {
	return []int{g.layer}
}

// BoundingBox returns the union of the members' boxes. An empty group has
// an empty box at the origin.
func (g *Group) BoundingBox() geom.Rect {
	if len(g.members) == 0 {
		return geom.Rect{}
	}
	bb := g.members[0].BoundingBox()
	for _, m := range g.members[1:] {
		bb = bb.Union(m.BoundingBox())
	}
	return bb
}

// SelfDraw draws every member on each of its layers, lowest rendering
// order first.
func (g *Group) SelfDraw(_ int, v *View) {
	if len(g.members) == 0 {
		return
	}
	var layers []int
	for _, m := range g.members {
		for _, l := range m.Layers() {
			if l >= 0 && l < len(v.layers) && !slices.Contains(layers, l) {
				layers = append(layers, l)
			}
		}
	}
	slices.SortStableFunc(layers, func(a, b int) int {
		return cmp.Compare(v.layers[a].renderingOrder, v.layers[b].renderingOrder)
	})

	r := v.renderer
	for _, l := range layers {
		if r != nil {
			r.SetLayerDepth(v.layers[l].renderingOrder)
		}
		for _, m := range g.members {
			if slices.Contains(m.Layers(), l) {
				v.paint(m, l)
			}
		}
	}
}

// Preview returns the view's preview group. It is drawn on the preview
// layer's target while ShowPreview is on.
func (v *View) Preview() *Group {
	return v.preview
}

// AddToPreview appends an item to the preview group.
func (v *View) AddToPreview(item Item) {
	v.preview.Add(item)
	v.MarkTargetDirty(v.layers[v.cfg.PreviewLayer].target)
}

// ClearPreview empties the preview group.
func (v *View) ClearPreview() {
	if v.preview.Len() == 0 {
		return
	}
	v.preview.Clear()
	v.MarkTargetDirty(v.layers[v.cfg.PreviewLayer].target)
}

// ShowPreview shows or hides the preview group.
func (v *View) ShowPreview(show bool) {
	if v.showPreview != show {
		v.showPreview = show
		v.MarkTargetDirty(v.layers[v.cfg.PreviewLayer].target)
	}
}

func (v *View) drawPreview() {
	if v.showPreview && v.preview.Len() > 0 {
		v.preview.SelfDraw(v.cfg.PreviewLayer, v)
	}
}
