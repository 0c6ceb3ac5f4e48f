// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/gogpu/ggview"
	"github.com/gogpu/ggview/geom"
	"github.com/gogpu/gputypes"
)

// TraceRenderer records the calls it receives as text and draws nothing.
// It also checks group bookkeeping: deleting or drawing a group that is
// not live is logged as a warning.
type TraceRenderer struct {
	size      geom.Point
	calls     []string
	live      map[ggview.GroupID]struct{}
	nextGroup ggview.GroupID
	recording bool
}

// NewTraceRenderer creates a trace renderer reporting a width x height
// screen.
func NewTraceRenderer(width, height int) *TraceRenderer {
	return &TraceRenderer{
		size: geom.Pt(float64(width), float64(height)),
		live: make(map[ggview.GroupID]struct{}),
	}
}

// Calls returns the recorded calls, one per entry.
func (t *TraceRenderer) Calls() []string {
	return t.calls
}

// Count returns how many recorded calls start with prefix.
func (t *TraceRenderer) Count(prefix string) int {
	n := 0
	for _, c := range t.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

// LiveGroups returns the number of groups created and not yet released.
func (t *TraceRenderer) LiveGroups() int {
	return len(t.live)
}

// Reset forgets the recorded calls. Group bookkeeping is kept.
func (t *TraceRenderer) Reset() {
	t.calls = t.calls[:0]
}

// WriteTo writes the recorded calls, one per line.
func (t *TraceRenderer) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, c := range t.calls {
		n, err := fmt.Fprintln(w, c)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (t *TraceRenderer) log(format string, args ...any) {
	t.calls = append(t.calls, fmt.Sprintf(format, args...))
}

// BeginGroup implements ggview.Renderer.
func (t *TraceRenderer) BeginGroup() (ggview.GroupID, error) {
	if t.recording {
		return ggview.NoGroup, ErrNestedGroup
	}
	id := t.nextGroup
	t.nextGroup++
	t.live[id] = struct{}{}
	t.recording = true
	t.log("BeginGroup %d", id)
	return id, nil
}

// EndGroup implements ggview.Renderer.
func (t *TraceRenderer) EndGroup() {
	t.recording = false
	t.log("EndGroup")
}

// DeleteGroup implements ggview.Renderer.
func (t *TraceRenderer) DeleteGroup(id ggview.GroupID) {
	if _, ok := t.live[id]; !ok {
		ggview.Logger().Warn("render: trace: delete of unknown group", "group", int(id))
	}
	delete(t.live, id)
	t.log("DeleteGroup %d", id)
}

// DrawGroup implements ggview.Renderer.
func (t *TraceRenderer) DrawGroup(id ggview.GroupID) {
	if _, ok := t.live[id]; !ok {
		ggview.Logger().Warn("render: trace: draw of unknown group", "group", int(id))
	}
	t.log("DrawGroup %d", id)
}

// ChangeGroupColor implements ggview.Renderer.
func (t *TraceRenderer) ChangeGroupColor(id ggview.GroupID, c gputypes.Color) {
	t.log("ChangeGroupColor %d %s", id, formatColor(c))
}

// ChangeGroupDepth implements ggview.Renderer.
func (t *TraceRenderer) ChangeGroupDepth(id ggview.GroupID, depth int) {
	t.log("ChangeGroupDepth %d %d", id, depth)
}

// ClearCache implements ggview.Renderer.
func (t *TraceRenderer) ClearCache() {
	clear(t.live)
	t.recording = false
	t.log("ClearCache")
}

// SetTarget implements ggview.Renderer.
func (t *TraceRenderer) SetTarget(target ggview.Target) {
	t.log("SetTarget %s", target)
}

// ClearTarget implements ggview.Renderer.
func (t *TraceRenderer) ClearTarget(target ggview.Target) {
	t.log("ClearTarget %s", target)
}

// SetLayerDepth implements ggview.Renderer.
func (t *TraceRenderer) SetLayerDepth(depth int) {
	t.log("SetLayerDepth %d", depth)
}

// EnableDepthTest implements ggview.Renderer.
func (t *TraceRenderer) EnableDepthTest(enabled bool) {
	t.log("EnableDepthTest %t", enabled)
}

// StartDiffLayer implements ggview.Renderer.
func (t *TraceRenderer) StartDiffLayer() { t.log("StartDiffLayer") }

// EndDiffLayer implements ggview.Renderer.
func (t *TraceRenderer) EndDiffLayer() { t.log("EndDiffLayer") }

// StartNegativesLayer implements ggview.Renderer.
func (t *TraceRenderer) StartNegativesLayer() { t.log("StartNegativesLayer") }

// EndNegativesLayer implements ggview.Renderer.
func (t *TraceRenderer) EndNegativesLayer() { t.log("EndNegativesLayer") }

// BeginDrawing implements ggview.Renderer.
func (t *TraceRenderer) BeginDrawing() { t.log("BeginDrawing") }

// EndDrawing implements ggview.Renderer.
func (t *TraceRenderer) EndDrawing() { t.log("EndDrawing") }

// ScreenSize implements ggview.Renderer.
func (t *TraceRenderer) ScreenSize() geom.Point {
	return t.size
}

// SetWorldScreenMatrix implements ggview.Renderer.
func (t *TraceRenderer) SetWorldScreenMatrix(m geom.Matrix) {
	t.log("SetWorldScreenMatrix [%g %g %g %g %g %g]", m.A, m.B, m.C, m.D, m.E, m.F)
}

// SetFillColor implements Canvas.
func (t *TraceRenderer) SetFillColor(c gputypes.Color) {
	t.log("SetFillColor %s", formatColor(c))
}

// SetNegativeDrawMode implements Canvas.
func (t *TraceRenderer) SetNegativeDrawMode(negative bool) {
	t.log("SetNegativeDrawMode %t", negative)
}

// FillRect implements Canvas.
func (t *TraceRenderer) FillRect(r geom.Rect) {
	t.log("FillRect %g,%g %g,%g", r.Min.X, r.Min.Y, r.Max.X, r.Max.Y)
}

// FillPolygon implements Canvas.
func (t *TraceRenderer) FillPolygon(points []geom.Point) {
	t.log("FillPolygon %d", len(points))
}

// FillPath implements Canvas.
func (t *TraceRenderer) FillPath(contours [][]geom.Point) {
	t.log("FillPath %d", len(contours))
}

// FillCircle implements Canvas.
func (t *TraceRenderer) FillCircle(center geom.Point, radius float64) {
	t.log("FillCircle %g,%g %g", center.X, center.Y, radius)
}

// DrawSegment implements Canvas.
func (t *TraceRenderer) DrawSegment(a, b geom.Point, width float64) {
	t.log("DrawSegment %g,%g %g,%g %g", a.X, a.Y, b.X, b.Y, width)
}

func formatColor(c gputypes.Color) string {
	return fmt.Sprintf("rgba(%.3g,%.3g,%.3g,%.3g)", c.R, c.G, c.B, c.A)
}

var (
	_ ggview.Renderer = (*TraceRenderer)(nil)
	_ Canvas          = (*TraceRenderer)(nil)
)
