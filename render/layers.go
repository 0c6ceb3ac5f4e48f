// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"image"
	"slices"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/draw"
)

// layer represents a single compositing layer.
type layer struct {
	target  *PixmapTarget
	visible bool
}

// LayeredPixmapTarget composes z-ordered pixmap layers onto a base image.
// Layers are composited in ascending z-order, lower values behind higher
// ones. The software renderer keeps one layer per view target.
type LayeredPixmapTarget struct {
	base       *image.RGBA
	background gputypes.Color
	layers     map[int]*layer
	zOrder     []int // cached sorted z-order list
	width      int
	height     int
}

// NewLayeredPixmapTarget creates a new layered CPU render target.
func NewLayeredPixmapTarget(width, height int) *LayeredPixmapTarget {
	return &LayeredPixmapTarget{
		base:   image.NewRGBA(image.Rect(0, 0, width, height)),
		layers: make(map[int]*layer),
		width:  width,
		height: height,
	}
}

// Width returns the target width in pixels.
func (t *LayeredPixmapTarget) Width() int {
	return t.width
}

// Height returns the target height in pixels.
func (t *LayeredPixmapTarget) Height() int {
	return t.height
}

// Image returns the base image. Call Composite first to get the
// composited result.
func (t *LayeredPixmapTarget) Image() *image.RGBA {
	return t.base
}

// SetBackground sets the color the base is filled with before compositing.
func (t *LayeredPixmapTarget) SetBackground(c gputypes.Color) {
	t.background = c
}

// CreateLayer creates a new layer at the specified z-order.
func (t *LayeredPixmapTarget) CreateLayer(z int) (*PixmapTarget, error) {
	if _, exists := t.layers[z]; exists {
		return nil, fmt.Errorf("render: layer with z=%d already exists", z)
	}

	l := &layer{
		target:  NewPixmapTarget(t.width, t.height),
		visible: true,
	}
	t.layers[z] = l
	t.zOrder = nil
	return l.target, nil
}

// Layer returns the layer at z-order z, or nil.
func (t *LayeredPixmapTarget) Layer(z int) *PixmapTarget {
	if l, ok := t.layers[z]; ok {
		return l.target
	}
	return nil
}

// RemoveLayer removes a layer by z-order.
func (t *LayeredPixmapTarget) RemoveLayer(z int) error {
	if _, exists := t.layers[z]; !exists {
		return fmt.Errorf("render: layer with z=%d does not exist", z)
	}
	delete(t.layers, z)
	t.zOrder = nil
	return nil
}

// SetLayerVisible controls layer visibility. Hidden layers keep their
// content but are not composited.
func (t *LayeredPixmapTarget) SetLayerVisible(z int, visible bool) {
	if l, exists := t.layers[z]; exists {
		l.visible = visible
	}
}

// Layers returns all layer z-orders in render order (ascending).
func (t *LayeredPixmapTarget) Layers() []int {
	if t.zOrder == nil {
		t.zOrder = make([]int, 0, len(t.layers))
		for z := range t.layers {
			t.zOrder = append(t.zOrder, z)
		}
		slices.Sort(t.zOrder)
	}
	return slices.Clone(t.zOrder)
}

// Composite fills the base with the background and blends every visible
// layer onto it in z-order (source over).
func (t *LayeredPixmapTarget) Composite() {
	draw.Draw(t.base, t.base.Bounds(), image.NewUniform(toRGBA(t.background)), image.Point{}, draw.Src)
	for _, z := range t.Layers() {
		l := t.layers[z]
		if l.visible {
			draw.Draw(t.base, t.base.Bounds(), l.target.Image(), image.Point{}, draw.Over)
		}
	}
}

// Resize reallocates the base and every layer. Contents are not preserved.
func (t *LayeredPixmapTarget) Resize(width, height int) {
	t.width, t.height = width, height
	t.base = image.NewRGBA(image.Rect(0, 0, width, height))
	for _, l := range t.layers {
		l.target.Resize(width, height)
	}
}
