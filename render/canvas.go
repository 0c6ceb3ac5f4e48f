// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/ggview/geom"
	"github.com/gogpu/gputypes"
)

// Canvas is the drawing surface painters draw items with. Coordinates are
// world coordinates; the renderer applies the view's world to screen
// transform.
//
// While a group is being recorded, canvas calls are appended to the group
// instead of being drawn.
type Canvas interface {
	SetFillColor(c gputypes.Color)

	// SetNegativeDrawMode makes subsequent shapes erase what is below
	// them instead of covering it.
	SetNegativeDrawMode(negative bool)

	FillRect(r geom.Rect)
	FillPolygon(points []geom.Point)
	FillCircle(center geom.Point, radius float64)
	DrawSegment(a, b geom.Point, width float64)

	// FillPath fills closed contours with the nonzero winding rule.
	FillPath(contours [][]geom.Point)
}
