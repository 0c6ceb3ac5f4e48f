// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggview

import (
	"fmt"

	"github.com/gogpu/ggview/spatial"
)

// Target is the composition bucket a layer's output is accumulated into.
type Target int

const (
	// TargetCached holds layers drawn from cached renderer groups.
	TargetCached Target = iota

	// TargetNonCached holds layers drawn immediately every frame.
	TargetNonCached

	// TargetOverlay holds transient content such as previews and
	// selection markers.
	TargetOverlay

	targetCount
)

var targetNames = [targetCount]string{
	TargetCached:    "Cached",
	TargetNonCached: "NonCached",
	TargetOverlay:   "Overlay",
}

// String returns the target name.
func (t Target) String() string {
	if t >= 0 && t < targetCount {
		return targetNames[t]
	}
	return fmt.Sprintf("Target(%d)", int(t))
}

// GroupID identifies a renderer-owned cached draw list.
type GroupID int

// NoGroup marks the absence of a cached group.
const NoGroup GroupID = -1

// viewLayer is the record of one layer id. Records are created with the
// view and never destroyed; ReorderLayerData moves them between ids.
type viewLayer struct {
	id             int
	visible        bool
	displayOnly    bool
	diffLayer      bool
	hasNegatives   bool
	renderingOrder int
	target         Target
	required       map[int]struct{}
	items          *spatial.Index[Item]
}

func newViewLayer(id int) *viewLayer {
	return &viewLayer{
		id:             id,
		visible:        true,
		renderingOrder: id,
		target:         TargetCached,
		items:          spatial.New[Item](),
	}
}

// LayerItem is one (item, layer) pair returned by [View.Query].
type LayerItem struct {
	Item  Item
	Layer int
}
