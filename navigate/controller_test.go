// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package navigate

import (
	"testing"

	"github.com/gogpu/ggview"
	"github.com/gogpu/ggview/geom"
	"github.com/gogpu/ggview/render"
	"github.com/gogpu/gpucontext"
)

func newController(t *testing.T, opts ...Option) (*Controller, *ggview.View) {
	t.Helper()
	v := ggview.New(ggview.WithRenderer(render.NewTraceRenderer(800, 600)))
	return New(v, opts...), v
}

func press(b gpucontext.Button, x, y float64) gpucontext.PointerEvent {
	return gpucontext.PointerEvent{Type: gpucontext.PointerDown, Button: b, X: x, Y: y}
}

func move(x, y float64) gpucontext.PointerEvent {
	return gpucontext.PointerEvent{Type: gpucontext.PointerMove, Button: gpucontext.ButtonNone, X: x, Y: y}
}

func release(b gpucontext.Button, x, y float64) gpucontext.PointerEvent {
	return gpucontext.PointerEvent{Type: gpucontext.PointerUp, Button: b, X: x, Y: y}
}

func TestDragPansContentWithPointer(t *testing.T) {
	c, v := newController(t)
	v.SetScale(2)

	grabbed := v.ToWorld(geom.Pt(100, 100))
	c.HandlePointer(press(gpucontext.ButtonMiddle, 100, 100))
	if !c.Panning() {
		t.Fatal("middle button did not start panning")
	}
	if !c.HandlePointer(move(150, 80)) {
		t.Error("drag move reported no change")
	}
	// The grabbed world point stays under the pointer.
	if got := v.ToScreen(grabbed); !got.Near(geom.Pt(150, 80), 1e-9) {
		t.Errorf("grabbed point at %v, want 150,80", got)
	}

	c.HandlePointer(release(gpucontext.ButtonMiddle, 150, 80))
	if c.Panning() {
		t.Error("release did not stop panning")
	}
	before := v.Center()
	if c.HandlePointer(move(300, 300)) {
		t.Error("move without a button changed the view")
	}
	if v.Center() != before {
		t.Error("center moved after release")
	}
}

func TestDragIgnoresOtherButtons(t *testing.T) {
	c, _ := newController(t)
	c.HandlePointer(press(gpucontext.ButtonLeft, 10, 10))
	if c.Panning() {
		t.Error("left button panned with default config")
	}

	c, _ = newController(t, WithPanButtons(gpucontext.ButtonsLeft|gpucontext.ButtonsMiddle))
	c.HandlePointer(press(gpucontext.ButtonLeft, 10, 10))
	if !c.Panning() {
		t.Error("left button did not pan when enabled")
	}
	c.HandlePointer(gpucontext.PointerEvent{Type: gpucontext.PointerCancel})
	if c.Panning() {
		t.Error("cancel did not stop panning")
	}
}

func TestDragMirrored(t *testing.T) {
	c, v := newController(t)
	v.SetMirror(true, false)

	grabbed := v.ToWorld(geom.Pt(400, 300))
	c.HandlePointer(press(gpucontext.ButtonMiddle, 400, 300))
	c.HandlePointer(move(420, 310))
	if got := v.ToScreen(grabbed); !got.Near(geom.Pt(420, 310), 1e-9) {
		t.Errorf("grabbed point at %v, want 420,310", got)
	}
}

func TestWheelZoomsAroundPointer(t *testing.T) {
	c, v := newController(t)
	cursor := geom.Pt(200, 150)
	under := v.ToWorld(cursor)

	changed := c.HandleScroll(gpucontext.ScrollEvent{
		X: cursor.X, Y: cursor.Y, DeltaY: -1, DeltaMode: gpucontext.ScrollDeltaLine,
	})
	if !changed {
		t.Fatal("wheel up reported no change")
	}
	if got := v.Scale(); got < DefaultZoomStep-1e-9 || got > DefaultZoomStep+1e-9 {
		t.Errorf("Scale() = %v, want %v", got, DefaultZoomStep)
	}
	if got := v.ToScreen(under); !got.Near(cursor, 1e-6) {
		t.Errorf("point under cursor moved to %v", got)
	}

	c.HandleScroll(gpucontext.ScrollEvent{X: cursor.X, Y: cursor.Y, DeltaY: 2, DeltaMode: gpucontext.ScrollDeltaLine})
	want := 1 / DefaultZoomStep
	if got := v.Scale(); got < want-1e-9 || got > want+1e-9 {
		t.Errorf("Scale() after zoom out = %v, want %v", got, want)
	}
}

func TestWheelZoomClamped(t *testing.T) {
	c, v := newController(t)
	v.SetScaleLimits(0.5, 1)
	if c.HandleScroll(gpucontext.ScrollEvent{DeltaY: -1, DeltaMode: gpucontext.ScrollDeltaLine}) {
		t.Error("zoom past the limit reported a change")
	}
	if v.Scale() != 1 {
		t.Errorf("Scale() = %v, want 1", v.Scale())
	}
}

func TestModifiedWheelPans(t *testing.T) {
	c, v := newController(t)

	c.HandleScroll(gpucontext.ScrollEvent{DeltaY: 10, Modifiers: gpucontext.ModControl})
	if got := v.Center(); got != geom.Pt(10, 0) {
		t.Errorf("Ctrl+wheel center = %v, want 10,0", got)
	}

	c.HandleScroll(gpucontext.ScrollEvent{DeltaY: 1, DeltaMode: gpucontext.ScrollDeltaLine, Modifiers: gpucontext.ModShift})
	if got := v.Center(); got != geom.Pt(10, DefaultLinePixels) {
		t.Errorf("Shift+wheel center = %v, want 10,%v", got, DefaultLinePixels)
	}
	if v.Scale() != 1 {
		t.Errorf("panning changed the scale to %v", v.Scale())
	}
}

func TestGesture(t *testing.T) {
	c, v := newController(t)
	if c.HandleGesture(gpucontext.GestureEvent{NumPointers: 1, ZoomDelta: 2}) {
		t.Error("single pointer gesture changed the view")
	}

	center := gpucontext.Point{X: 400, Y: 300}
	if !c.HandleGesture(gpucontext.GestureEvent{NumPointers: 2, ZoomDelta: 2, Center: center}) {
		t.Fatal("pinch reported no change")
	}
	if v.Scale() != 2 {
		t.Errorf("Scale() = %v, want 2", v.Scale())
	}

	before := v.Center()
	c.HandleGesture(gpucontext.GestureEvent{
		NumPointers: 2, ZoomDelta: 1, TranslationDelta: gpucontext.Point{X: 20},
	})
	// At scale 2, 20 pixels are 10 world units; content moves right.
	if got := v.Center(); !got.Near(before.Sub(geom.Pt(10, 0)), 1e-9) {
		t.Errorf("Center() = %v, want %v", got, before.Sub(geom.Pt(10, 0)))
	}
}

type fakeSources struct {
	pointer func(gpucontext.PointerEvent)
	scroll  func(gpucontext.ScrollEvent)
}

func (f *fakeSources) OnPointer(fn func(gpucontext.PointerEvent))     { f.pointer = fn }
func (f *fakeSources) OnScrollEvent(fn func(gpucontext.ScrollEvent)) { f.scroll = fn }

func TestAttach(t *testing.T) {
	c, v := newController(t)
	src := &fakeSources{}
	c.Attach(src, src, nil)
	if src.pointer == nil || src.scroll == nil {
		t.Fatal("Attach did not subscribe")
	}
	src.scroll(gpucontext.ScrollEvent{DeltaY: 5, Modifiers: gpucontext.ModControl})
	if got := v.Center(); got != geom.Pt(5, 0) {
		t.Errorf("Center() = %v, want 5,0", got)
	}
}
