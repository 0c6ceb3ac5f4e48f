// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package navigate turns gpucontext input events into camera moves on a
// ggview.View.
//
// Bindings:
//   - dragging with a pan button (middle by default) pans
//   - the wheel zooms around the pointer
//   - Ctrl+wheel pans horizontally, Shift+wheel pans vertically
//   - two-finger gestures zoom around their centroid and pan
//
// Handlers return true when the camera changed, so the host knows a
// repaint is due.
package navigate
