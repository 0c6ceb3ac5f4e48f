// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggview

import "github.com/gogpu/gputypes"

// Painter turns domain items into renderer calls. It knows the item types
// of the application; the view does not.
type Painter interface {
	// Draw draws item on layer through the renderer the painter was built
	// with. It returns false when it does not handle the item, in which
	// case the view falls back to Item.SelfDraw.
	Draw(item Item, layer int) bool

	// Color returns the color item should have on layer. The view uses it
	// to recolor cached groups without rebuilding them.
	Color(item Item, layer int) gputypes.Color
}
