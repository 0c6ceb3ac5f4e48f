// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"testing"

	"github.com/gogpu/ggview/geom"
)

func square(x0, y0, x1, y1 float64) []geom.Point {
	return []geom.Point{geom.Pt(x0, y0), geom.Pt(x1, y0), geom.Pt(x1, y1), geom.Pt(x0, y1)}
}

func reversed(pts []geom.Point) []geom.Point {
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}

func TestCoverageSquare(t *testing.T) {
	var c coverage
	mask, r := c.rasterize([][]geom.Point{square(2, 2, 6, 6)}, image.Rect(0, 0, 10, 10))
	if mask == nil {
		t.Fatal("mask is nil")
	}
	if want := image.Rect(2, 2, 6, 6); r != want {
		t.Fatalf("rect = %v, want %v", r, want)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if a := mask.AlphaAt(x, y).A; a < 250 {
				t.Errorf("coverage at %d,%d = %d, want full", x, y, a)
			}
		}
	}
}

func TestCoverageClipped(t *testing.T) {
	var c coverage
	_, r := c.rasterize([][]geom.Point{square(-5, -5, 3, 3)}, image.Rect(0, 0, 10, 10))
	if want := image.Rect(0, 0, 3, 3); r != want {
		t.Errorf("rect = %v, want %v", r, want)
	}

	mask, _ := c.rasterize([][]geom.Point{square(20, 20, 30, 30)}, image.Rect(0, 0, 10, 10))
	if mask != nil {
		t.Error("off-screen polygon should produce no mask")
	}
}

func TestCoverageOppositeWindingDoesNotCancel(t *testing.T) {
	var c coverage
	polys := [][]geom.Point{
		square(0, 0, 4, 4),
		reversed(square(2, 2, 6, 6)),
	}
	mask, r := c.rasterize(polys, image.Rect(0, 0, 10, 10))
	if mask == nil {
		t.Fatal("mask is nil")
	}
	// Pixel 3,3 lies in both squares.
	if a := mask.AlphaAt(3-r.Min.X, 3-r.Min.Y).A; a < 250 {
		t.Errorf("overlap coverage = %d, want full", a)
	}
}

func TestCoverageWindingCutsHole(t *testing.T) {
	var c coverage
	polys := [][]geom.Point{
		square(0, 0, 8, 8),
		reversed(square(2, 2, 6, 6)),
	}
	mask, r := c.rasterizeWinding(polys, image.Rect(0, 0, 10, 10))
	if mask == nil {
		t.Fatal("mask is nil")
	}
	if a := mask.AlphaAt(4-r.Min.X, 4-r.Min.Y).A; a != 0 {
		t.Errorf("hole coverage = %d, want 0", a)
	}
	if a := mask.AlphaAt(1-r.Min.X, 1-r.Min.Y).A; a < 250 {
		t.Errorf("ring coverage = %d, want full", a)
	}
}

func TestCoverageReusesMask(t *testing.T) {
	var c coverage
	c.rasterize([][]geom.Point{square(0, 0, 8, 8)}, image.Rect(0, 0, 10, 10))
	mask, _ := c.rasterize([][]geom.Point{square(0, 0, 2, 2)}, image.Rect(0, 0, 10, 10))
	if b := mask.Bounds(); b != image.Rect(0, 0, 2, 2) {
		t.Errorf("mask bounds = %v, want 2x2", b)
	}
	if mask.Stride != 2 {
		t.Errorf("mask stride = %d, want 2", mask.Stride)
	}
}

func TestSegmentOutline(t *testing.T) {
	seg := &SegmentCommand{A: geom.Pt(0, 0), B: geom.Pt(10, 0), Width: 2}
	polys := seg.Outline(geom.Identity())
	if len(polys) != 3 {
		t.Fatalf("segment outline has %d polygons, want body and two caps", len(polys))
	}

	dot := &SegmentCommand{A: geom.Pt(1, 1), B: geom.Pt(1, 1), Width: 2}
	if n := len(dot.Outline(geom.Identity())); n != 1 {
		t.Errorf("zero-length segment has %d polygons, want 1", n)
	}

	if polys := (&SegmentCommand{Width: 0}).Outline(geom.Identity()); polys != nil {
		t.Error("zero-width segment should have no outline")
	}
}

func TestCommandTypeString(t *testing.T) {
	if got := CmdSegment.String(); got != "Segment" {
		t.Errorf("CmdSegment.String() = %q", got)
	}
	if got := CommandType(200).String(); got != "Unknown" {
		t.Errorf("CommandType(200).String() = %q", got)
	}
}
