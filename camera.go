// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggview

import "github.com/gogpu/ggview/geom"

// screenSize returns the renderer's drawable size, or zero without a
// renderer.
func (v *View) screenSize() geom.Point {
	if v.renderer == nil {
		return geom.Point{}
	}
	return v.renderer.ScreenSize()
}

// WorldScreenMatrix returns the world to screen transform: the camera
// center maps to the middle of the screen, scaled and mirrored.
func (v *View) WorldScreenMatrix() geom.Matrix {
	sx, sy := v.scale, v.scale
	if v.cfg.MirrorX {
		sx = -sx
	}
	if v.cfg.MirrorY {
		sy = -sy
	}
	half := v.screenSize().Div(2)
	return geom.Translate(half.X, half.Y).
		Multiply(geom.Scale(sx, sy)).
		Multiply(geom.Translate(-v.center.X, -v.center.Y))
}

func (v *View) pushMatrix() {
	if v.renderer != nil {
		v.renderer.SetWorldScreenMatrix(v.WorldScreenMatrix())
	}
}

// ToWorld converts a screen position to world coordinates.
func (v *View) ToWorld(p geom.Point) geom.Point {
	return v.WorldScreenMatrix().Invert().TransformPoint(p)
}

// ToScreen converts a world position to screen coordinates.
func (v *View) ToScreen(p geom.Point) geom.Point {
	return v.WorldScreenMatrix().TransformPoint(p)
}

// ToWorldDistance converts a screen distance to world units.
func (v *View) ToWorldDistance(d float64) float64 {
	return d / v.scale
}

// ToScreenDistance converts a world distance to pixels.
func (v *View) ToScreenDistance(d float64) float64 {
	return d * v.scale
}

// Center returns the world point shown in the middle of the screen.
func (v *View) Center() geom.Point {
	return v.center
}

// SetCenter moves the camera. The center is clamped into the boundary.
func (v *View) SetCenter(c geom.Point) {
	v.center = v.cfg.Boundary.Clamp(c)
	v.pushMatrix()
	v.MarkDirty()
}

// Scale returns the current zoom factor.
func (v *View) Scale() float64 {
	return v.scale
}

func (v *View) clampScale(s float64) float64 {
	return min(max(s, v.cfg.MinScale), v.cfg.MaxScale)
}

// SetScale sets the zoom factor, clamped to the scale limits. When an
// anchor is given, the world point under it stays at the same screen
// position; otherwise the center is kept.
func (v *View) SetScale(scale float64, anchor ...geom.Point) {
	a := v.center
	if len(anchor) > 0 {
		a = anchor[0]
	}
	screenAnchor := v.ToScreen(a)
	v.scale = v.clampScale(scale)

	delta := v.ToWorld(screenAnchor).Sub(a)
	v.SetCenter(v.center.Sub(delta))
}

// SetScaleLimits changes the zoom limits and re-clamps the current scale.
func (v *View) SetScaleLimits(minScale, maxScale float64) {
	if !assert(minScale > 0 && maxScale >= minScale, "invalid scale limits",
		"min", minScale, "max", maxScale) {
		return
	}
	v.cfg.MinScale = minScale
	v.cfg.MaxScale = maxScale
	v.SetScale(v.scale)
}

// Boundary returns the rectangle the center is clamped into.
func (v *View) Boundary() geom.Rect {
	return v.cfg.Boundary
}

// SetBoundary changes the center clamp rectangle and re-clamps the center.
func (v *View) SetBoundary(r geom.Rect) {
	v.cfg.Boundary = r.Normalize()
	v.SetCenter(v.center)
}

// SetMirror mirrors the world horizontally and/or vertically around the
// screen center.
func (v *View) SetMirror(x, y bool) {
	v.cfg.MirrorX = x
	v.cfg.MirrorY = y
	v.pushMatrix()
	v.MarkDirty()
}

// IsMirroredX reports whether the view is mirrored horizontally.
func (v *View) IsMirroredX() bool {
	return v.cfg.MirrorX
}

// IsMirroredY reports whether the view is mirrored vertically.
func (v *View) IsMirroredY() bool {
	return v.cfg.MirrorY
}

// Viewport returns the visible world rectangle.
func (v *View) Viewport() geom.Rect {
	return v.visibleRect()
}

func (v *View) visibleRect() geom.Rect {
	size := v.screenSize()
	return geom.NewRect(v.ToWorld(geom.Point{}), v.ToWorld(size))
}

// SetViewport centers the camera on r and zooms so that r fits the screen.
// Without a renderer only the center changes.
func (v *View) SetViewport(r geom.Rect) {
	r = r.Normalize()
	size := v.screenSize()
	v.SetCenter(r.Center())
	if size.X <= 0 || size.Y <= 0 || r.Width() <= 0 || r.Height() <= 0 {
		return
	}
	v.SetScale(min(size.X/r.Width(), size.Y/r.Height()))
}
