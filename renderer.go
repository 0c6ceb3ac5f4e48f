// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggview

import (
	"github.com/gogpu/ggview/geom"
	"github.com/gogpu/gputypes"
)

// Renderer is the drawing back end of a View.
//
// Groups are renderer-owned compiled draw lists. Between BeginGroup and
// EndGroup every draw call issued to the renderer is recorded into the
// group instead of being drawn. The view owns the lifetime of the groups
// it creates and releases each one exactly once through DeleteGroup or
// wholesale through ClearCache.
type Renderer interface {
	BeginGroup() (GroupID, error)
	EndGroup()
	DeleteGroup(id GroupID)
	DrawGroup(id GroupID)
	ChangeGroupColor(id GroupID, c gputypes.Color)
	ChangeGroupDepth(id GroupID, depth int)
	ClearCache()

	SetTarget(t Target)
	ClearTarget(t Target)

	// SetLayerDepth sets the depth of subsequent draw calls. Larger
	// values are closer to the viewer.
	SetLayerDepth(depth int)
	EnableDepthTest(enabled bool)

	StartDiffLayer()
	EndDiffLayer()
	StartNegativesLayer()
	EndNegativesLayer()

	BeginDrawing()
	EndDrawing()

	// ScreenSize returns the drawable size in pixels.
	ScreenSize() geom.Point

	// SetWorldScreenMatrix sets the world to screen transform used by
	// subsequent draw calls.
	SetWorldScreenMatrix(m geom.Matrix)
}
