// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggview

import (
	"strings"

	"github.com/gogpu/ggview/geom"
)

// Item is anything a View can index and draw.
//
// Implementations embed [ItemBase], which supplies the view-state slot and
// default SelfDraw, LevelOfDetail and transparency behavior. Items must be
// pointer types: the view stores them in sets and compares them by
// identity.
type Item interface {
	// BoundingBox returns the item's current world-space extent.
	BoundingBox() geom.Rect

	// Layers returns the layer ids the item occupies.
	Layers() []int

	// SelfDraw draws the item on one layer when no painter handles it.
	SelfDraw(layer int, v *View)

	// LevelOfDetail returns the scale the view must exceed for the item to
	// be drawn on layer. Zero means always drawn.
	LevelOfDetail(layer int, v *View) float64

	// ForcedTransparency returns the transparency forced on the item, in
	// [0, 1]. Items with a positive value are drawn in a separate pass.
	ForcedTransparency() float64

	base() *ItemBase
}

// ItemBase carries the per-view bookkeeping of an item. Embed it in every
// type passed to [View.Add].
type ItemBase struct {
	state        *itemData
	transparency float64
}

func (b *ItemBase) base() *ItemBase { return b }

// SelfDraw is a no-op.
func (*ItemBase) SelfDraw(int, *View) {}

// LevelOfDetail returns 0, so the item is visible at every scale.
func (*ItemBase) LevelOfDetail(int, *View) float64 { return 0 }

// ForcedTransparency returns the value set by SetForcedTransparency.
func (b *ItemBase) ForcedTransparency() float64 { return b.transparency }

// SetForcedTransparency forces the item to be drawn with the given
// transparency in [0, 1]. The change takes effect on the next redraw of
// the item's layers; call [View.Update] with UpdateRepaint to refresh them.
func (b *ItemBase) SetForcedTransparency(t float64) {
	b.transparency = min(max(t, 0), 1)
}

// View returns the view the item is registered with, or nil.
func (b *ItemBase) View() *View {
	if !b.state.live() {
		return nil
	}
	return b.state.view
}

// IsRegistered reports whether the item belongs to a view.
func (b *ItemBase) IsRegistered() bool {
	return b.state.live()
}

// ItemFlags is the visibility state of an item.
type ItemFlags uint8

// Item visibility flags. An item is renderable only when its flags are
// exactly Visible.
const (
	Visible       ItemFlags = 1 << 0
	Hidden        ItemFlags = 1 << 1
	OverlayHidden ItemFlags = 1 << 2
)

// UpdateFlags describe what changed about an item since it was last
// reconciled with the view.
type UpdateFlags uint8

// Update flags. UpdateAll sets every bit except UpdateInitialAdd.
const (
	UpdateNone       UpdateFlags = 0
	UpdateAppearance UpdateFlags = 1 << 0
	UpdateColor      UpdateFlags = 1 << 1
	UpdateGeometry   UpdateFlags = 1 << 2
	UpdateLayers     UpdateFlags = 1 << 3
	UpdateInitialAdd UpdateFlags = 1 << 4
	UpdateRepaint    UpdateFlags = 1 << 5
	UpdateAll        UpdateFlags = 0xef
)

var updateFlagNames = [...]struct {
	flag UpdateFlags
	name string
}{
	{UpdateAppearance, "Appearance"},
	{UpdateColor, "Color"},
	{UpdateGeometry, "Geometry"},
	{UpdateLayers, "Layers"},
	{UpdateInitialAdd, "InitialAdd"},
	{UpdateRepaint, "Repaint"},
}

// String returns the set bits joined by "|".
func (f UpdateFlags) String() string {
	switch f {
	case UpdateNone:
		return "None"
	case UpdateAll:
		return "All"
	}
	var sb strings.Builder
	for _, n := range updateFlagNames {
		if f&n.flag == 0 {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('|')
		}
		sb.WriteString(n.name)
	}
	if sb.Len() == 0 {
		return "Unknown"
	}
	return sb.String()
}

// needsReindex reports whether f requires spatial index work.
func (f UpdateFlags) needsReindex() bool {
	return f&(UpdateGeometry|UpdateLayers) != 0
}
