// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggview

import "github.com/gogpu/ggview/geom"

func (l *viewLayer) queryable() bool {
	return l.visible && !l.displayOnly
}

// Query returns every (item, layer) pair whose indexed bounding box
// intersects r, topmost layer first. Invisible and display-only layers
// are skipped. An item on several matching layers is returned once per
// layer.
func (v *View) Query(r geom.Rect) []LayerItem {
	var out []LayerItem
	for i := len(v.ordered) - 1; i >= 0; i-- {
		l := v.ordered[i]
		if !l.queryable() {
			continue
		}
		l.items.Query(r, func(it Item) bool {
			out = append(out, LayerItem{Item: it, Layer: l.id})
			return true
		})
	}
	return out
}

// QueryFunc calls fn for every item whose indexed bounding box intersects
// r, walking the eligible layers bottom first. Returning false from fn
// ends the scan of the current layer.
func (v *View) QueryFunc(r geom.Rect, fn func(Item) bool) {
	for _, l := range v.ordered {
		if l.queryable() {
			l.items.Query(r, fn)
		}
	}
}
