// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package navigate

import (
	"math"

	"github.com/gogpu/ggview"
	"github.com/gogpu/ggview/geom"
	"github.com/gogpu/gpucontext"
)

// Default controller settings.
const (
	DefaultZoomStep   = 1.25
	DefaultLinePixels = 40.0
	DefaultPagePixels = 400.0
)

// Config holds the controller settings.
type Config struct {
	// ZoomStep is the scale factor applied per wheel line.
	ZoomStep float64

	// PanButtons are the buttons that pan while dragged.
	PanButtons gpucontext.Buttons

	// LinePixels and PagePixels convert line and page scroll deltas
	// to pixels.
	LinePixels float64
	PagePixels float64
}

// DefaultConfig returns the default settings.
func DefaultConfig() Config {
	return Config{
		ZoomStep:   DefaultZoomStep,
		PanButtons: gpucontext.ButtonsMiddle,
		LinePixels: DefaultLinePixels,
		PagePixels: DefaultPagePixels,
	}
}

// Option configures a Controller.
type Option func(*Config)

// WithZoomStep sets the scale factor applied per wheel line.
func WithZoomStep(step float64) Option {
	return func(c *Config) {
		if step > 1 {
			c.ZoomStep = step
		}
	}
}

// WithPanButtons sets the buttons that pan while dragged.
func WithPanButtons(b gpucontext.Buttons) Option {
	return func(c *Config) {
		c.PanButtons = b
	}
}

// Controller pans and zooms a view from input events.
type Controller struct {
	view    *ggview.View
	cfg     Config
	panning bool
	pointer int
	last    geom.Point
}

// New creates a controller driving v.
func New(v *ggview.View, opts ...Option) *Controller {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Controller{view: v, cfg: cfg}
}

// Attach subscribes the controller to event sources. Nil sources are
// skipped.
func (c *Controller) Attach(pointers gpucontext.PointerEventSource, scrolls gpucontext.ScrollEventSource, gestures gpucontext.GestureEventSource) {
	if pointers != nil {
		pointers.OnPointer(func(ev gpucontext.PointerEvent) { c.HandlePointer(ev) })
	}
	if scrolls != nil {
		scrolls.OnScrollEvent(func(ev gpucontext.ScrollEvent) { c.HandleScroll(ev) })
	}
	if gestures != nil {
		gestures.OnGesture(func(ev gpucontext.GestureEvent) { c.HandleGesture(ev) })
	}
}

// Panning reports whether a drag pan is in progress.
func (c *Controller) Panning() bool {
	return c.panning
}

// HandlePointer processes a pointer event.
func (c *Controller) HandlePointer(ev gpucontext.PointerEvent) bool {
	p := geom.Pt(ev.X, ev.Y)
	switch ev.Type {
	case gpucontext.PointerDown:
		if !c.panning && c.isPanButton(ev.Button) {
			c.panning = true
			c.pointer = ev.PointerID
			c.last = p
		}
	case gpucontext.PointerMove:
		if c.panning && ev.PointerID == c.pointer {
			moved := c.dragTo(p)
			c.last = p
			return moved
		}
	case gpucontext.PointerUp:
		if c.panning && ev.PointerID == c.pointer && c.isPanButton(ev.Button) {
			c.panning = false
		}
	case gpucontext.PointerCancel, gpucontext.PointerLeave:
		c.panning = false
	}
	return false
}

// HandleScroll processes a wheel or touchpad scroll event.
func (c *Controller) HandleScroll(ev gpucontext.ScrollEvent) bool {
	dx, dy := c.toPixels(ev.DeltaX, ev.DeltaMode), c.toPixels(ev.DeltaY, ev.DeltaMode)
	switch {
	case ev.Modifiers.HasControl():
		return c.Pan(geom.Pt(dy, 0))
	case ev.Modifiers.HasShift():
		return c.Pan(geom.Pt(dx, dy))
	}
	if dy == 0 {
		return false
	}
	// Scrolling down zooms out.
	factor := math.Pow(c.cfg.ZoomStep, -dy/c.cfg.LinePixels)
	return c.ZoomAt(factor, geom.Pt(ev.X, ev.Y))
}

// HandleGesture processes a multi-touch gesture.
func (c *Controller) HandleGesture(ev gpucontext.GestureEvent) bool {
	if ev.NumPointers < 2 {
		return false
	}
	changed := false
	if ev.ZoomDelta > 0 && ev.ZoomDelta != 1 {
		changed = c.ZoomAt(ev.ZoomDelta, geom.Pt(ev.Center.X, ev.Center.Y))
	}
	// Content follows the fingers.
	t := geom.Pt(-ev.TranslationDelta.X, -ev.TranslationDelta.Y)
	if c.Pan(t) {
		changed = true
	}
	return changed
}

// Pan moves the camera by a screen-space delta. Positive deltas move the
// viewport right and down, so content moves the other way.
func (c *Controller) Pan(d geom.Point) bool {
	if d == (geom.Point{}) {
		return false
	}
	v := c.view
	origin := v.ToWorld(geom.Point{})
	shift := v.ToWorld(d).Sub(origin)
	before := v.Center()
	v.SetCenter(before.Add(shift))
	return v.Center() != before
}

// ZoomAt multiplies the scale by factor keeping the world point under the
// screen position anchor in place.
func (c *Controller) ZoomAt(factor float64, anchor geom.Point) bool {
	v := c.view
	before := v.Scale()
	v.SetScale(before*factor, v.ToWorld(anchor))
	return v.Scale() != before
}

// dragTo pans so the world point under the last pointer position follows
// the pointer to p.
func (c *Controller) dragTo(p geom.Point) bool {
	return c.Pan(c.last.Sub(p))
}

func (c *Controller) isPanButton(b gpucontext.Button) bool {
	var mask gpucontext.Buttons
	switch b {
	case gpucontext.ButtonLeft:
		mask = gpucontext.ButtonsLeft
	case gpucontext.ButtonMiddle:
		mask = gpucontext.ButtonsMiddle
	case gpucontext.ButtonRight:
		mask = gpucontext.ButtonsRight
	default:
		return false
	}
	return c.cfg.PanButtons&mask != 0
}

func (c *Controller) toPixels(d float64, mode gpucontext.ScrollDeltaMode) float64 {
	switch mode {
	case gpucontext.ScrollDeltaLine:
		return d * c.cfg.LinePixels
	case gpucontext.ScrollDeltaPage:
		return d * c.cfg.PagePixels
	default:
		return d
	}
}
