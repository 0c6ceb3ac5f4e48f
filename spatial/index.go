// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package spatial

import (
	"github.com/gogpu/ggview/geom"
	"github.com/tidwall/rtree"
)

// Index is a spatial index of values keyed by their bounding rectangle.
//
// The same value may be stored under several rectangles, but callers of
// this package in the view store each value exactly once per layer.
type Index[T comparable] struct {
	tree rtree.RTreeG[T]
}

// New creates an empty index.
func New[T comparable]() *Index[T] {
	return &Index[T]{}
}

// Insert adds v under the rectangle r.
func (ix *Index[T]) Insert(r geom.Rect, v T) {
	lo, hi := r.Normalize().Bounds()
	ix.tree.Insert(lo, hi, v)
}

// Remove deletes v stored under exactly the rectangle r.
// It reports whether an entry was removed.
func (ix *Index[T]) Remove(r geom.Rect, v T) bool {
	lo, hi := r.Normalize().Bounds()
	n := ix.tree.Len()
	ix.tree.Delete(lo, hi, v)
	return ix.tree.Len() < n
}

// Query calls visit for every value whose rectangle intersects r.
// Iteration stops early when visit returns false.
// Visit order is unspecified.
func (ix *Index[T]) Query(r geom.Rect, visit func(v T) bool) {
	lo, hi := r.Normalize().Bounds()
	ix.tree.Search(lo, hi, func(_, _ [2]float64, v T) bool {
		return visit(v)
	})
}

// Collect returns every value intersecting r.
func (ix *Index[T]) Collect(r geom.Rect) []T {
	var out []T
	ix.Query(r, func(v T) bool {
		out = append(out, v)
		return true
	})
	return out
}

// Scan calls visit for every entry in the index along with its rectangle.
func (ix *Index[T]) Scan(visit func(r geom.Rect, v T) bool) {
	ix.tree.Scan(func(lo, hi [2]float64, v T) bool {
		return visit(geom.Rect{
			Min: geom.Pt(lo[0], lo[1]),
			Max: geom.Pt(hi[0], hi[1]),
		}, v)
	})
}

// Len returns the number of entries.
func (ix *Index[T]) Len() int {
	return ix.tree.Len()
}

// Bounds returns the rectangle covering every entry.
// It is the zero rectangle when the index is empty.
func (ix *Index[T]) Bounds() geom.Rect {
	lo, hi := ix.tree.Bounds()
	return geom.Rect{Min: geom.Pt(lo[0], lo[1]), Max: geom.Pt(hi[0], hi[1])}
}

// Clear removes every entry.
func (ix *Index[T]) Clear() {
	ix.tree.Clear()
}
