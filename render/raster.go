// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"math"

	"github.com/gogpu/ggview/geom"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// coverage rasterizes screen-space polygons into an alpha mask. The mask
// covers the polygons' pixel bounds clipped to clip; r is that rectangle in
// screen pixels and mask pixel (0, 0) maps to r.Min. A nil mask means
// nothing is visible.
type coverage struct {
	z    *vector.Rasterizer
	mask *image.Alpha
}

func (c *coverage) rasterize(polys [][]geom.Point, clip image.Rectangle) (*image.Alpha, image.Rectangle) {
	return c.fill(polys, clip, true)
}

// rasterizeWinding is rasterize without orientation normalization, so
// contours wound the other way cancel coverage.
func (c *coverage) rasterizeWinding(polys [][]geom.Point, clip image.Rectangle) (*image.Alpha, image.Rectangle) {
	return c.fill(polys, clip, false)
}

func (c *coverage) fill(polys [][]geom.Point, clip image.Rectangle, normalize bool) (*image.Alpha, image.Rectangle) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, poly := range polys {
		for _, p := range poly {
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
	}
	if minX > maxX || minY > maxY {
		return nil, image.Rectangle{}
	}
	r := image.Rect(
		int(math.Floor(math.Max(minX, float64(clip.Min.X)))),
		int(math.Floor(math.Max(minY, float64(clip.Min.Y)))),
		int(math.Ceil(math.Min(maxX, float64(clip.Max.X)))),
		int(math.Ceil(math.Min(maxY, float64(clip.Max.Y)))),
	).Intersect(clip)
	if r.Empty() {
		return nil, image.Rectangle{}
	}

	w, h := r.Dx(), r.Dy()
	if c.z == nil {
		c.z = vector.NewRasterizer(w, h)
	} else {
		c.z.Reset(w, h)
	}
	c.z.DrawOp = draw.Src

	ox, oy := float64(r.Min.X), float64(r.Min.Y)
	for _, poly := range polys {
		if len(poly) < 3 {
			continue
		}
		// The rasterizer accumulates signed area, so overlapping
		// subpaths only add up when they wind the same way.
		reverse := normalize && signedArea(poly) < 0
		for i := range poly {
			p := poly[i]
			if reverse {
				p = poly[len(poly)-1-i]
			}
			x, y := float32(p.X-ox), float32(p.Y-oy)
			if i == 0 {
				c.z.MoveTo(x, y)
			} else {
				c.z.LineTo(x, y)
			}
		}
		c.z.ClosePath()
	}

	mask := c.alpha(w, h)
	c.z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask, r
}

// alpha returns a cleared w x h mask, reusing the previous buffer when it
// is large enough.
func (c *coverage) alpha(w, h int) *image.Alpha {
	n := w * h
	if c.mask == nil || cap(c.mask.Pix) < n {
		c.mask = image.NewAlpha(image.Rect(0, 0, w, h))
		return c.mask
	}
	c.mask.Pix = c.mask.Pix[:n]
	clear(c.mask.Pix)
	c.mask.Stride = w
	c.mask.Rect = image.Rect(0, 0, w, h)
	return c.mask
}

func signedArea(poly []geom.Point) float64 {
	var a float64
	for i, p := range poly {
		q := poly[(i+1)%len(poly)]
		a += p.X*q.Y - q.X*p.Y
	}
	return a / 2
}
