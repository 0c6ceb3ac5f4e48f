// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package geom provides the small amount of 2D geometry the viewport
// engine needs: points, axis-aligned rectangles and affine matrices.
//
// World coordinates are float64. Rectangles are closed: two rectangles
// that share only an edge intersect. This matches the semantics of the
// per-layer spatial index, so a query and a brute-force scan over
// [Rect.Intersects] always agree.
package geom
