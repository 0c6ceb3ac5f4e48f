// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package spatial provides the per-layer spatial index used by the view.
//
// An [Index] maps axis-aligned world rectangles to values and answers
// "which values intersect this rectangle" queries. It is a thin typed
// wrapper over an R-tree (github.com/tidwall/rtree) that adds removal
// reporting and a [geom.Rect] based API.
//
// Intersection is closed: a value whose rectangle only touches the query
// rectangle along an edge is reported.
//
// An Index is not safe for concurrent use. Callers must not mutate the
// index from inside a [Index.Query] visitor.
package spatial
