// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"math/rand/v2"
	"strconv"

	"github.com/gogpu/ggview"
	"github.com/gogpu/ggview/geom"
	"github.com/gogpu/ggview/render"
	"github.com/gogpu/gputypes"
)

// Board layers, bottom first.
const (
	layerSubstrate = iota
	layerZones
	layerCopperBottom
	layerCopperTop
	layerSilk
	layerRatsnest
	layerFab
)

const (
	numLayers    = 16
	layerPreview = numLayers - 1
)

var layerColors = map[int]gputypes.Color{
	layerSubstrate:    gputypes.NewColorRGB(0.05, 0.2, 0.1),
	layerZones:        gputypes.NewColor(0.8, 0.6, 0.2, 1),
	layerCopperBottom: gputypes.NewColorRGB(0.2, 0.4, 0.9),
	layerCopperTop:    gputypes.NewColorRGB(0.9, 0.3, 0.2),
	layerSilk:         gputypes.NewColorRGB(0.95, 0.95, 0.9),
	layerRatsnest:     gputypes.NewColor(0.7, 0.7, 0.7, 0.8),
	layerFab:          gputypes.NewColorRGB(0.5, 0.5, 0.5),
	layerPreview:      gputypes.NewColor(1, 1, 0, 0.35),
}

// outline is the board edge filled on the substrate layer.
type outline struct {
	ggview.ItemBase
	rect geom.Rect
}

func (o *outline) BoundingBox() geom.Rect { return o.rect }
func (o *outline) Layers() []int          { return []int{layerSubstrate} }

// track is a copper segment.
type track struct {
	ggview.ItemBase
	a, b  geom.Point
	width float64
	layer int
}

func (t *track) BoundingBox() geom.Rect {
	return geom.NewRect(t.a, t.b).Inflate(t.width / 2)
}

func (t *track) Layers() []int { return []int{t.layer} }

// pad is a through-hole pad present on both copper layers. Its drill is
// drawn as a negative shape; the fab layer carries its name.
type pad struct {
	ggview.ItemBase
	name   string
	center geom.Point
	size   float64
	drill  float64
}

func (p *pad) BoundingBox() geom.Rect {
	return geom.XYWH(p.center.X-p.size/2, p.center.Y-p.size/2, p.size, p.size)
}

func (p *pad) Layers() []int { return []int{layerCopperTop, layerCopperBottom, layerFab} }

// LevelOfDetail hides fab markings until zoomed in.
func (p *pad) LevelOfDetail(layer int, _ *ggview.View) float64 {
	if layer == layerFab {
		return 2
	}
	return 0
}

// zone is a translucent copper pour.
type zone struct {
	ggview.ItemBase
	points []geom.Point
}

func (z *zone) BoundingBox() geom.Rect {
	bb := geom.NewRect(z.points[0], z.points[0])
	for _, p := range z.points[1:] {
		bb = bb.Union(geom.NewRect(p, p))
	}
	return bb
}

func (z *zone) Layers() []int { return []int{layerZones} }

// airwire is an unrouted connection, redrawn every frame.
type airwire struct {
	ggview.ItemBase
	from, to *pad
}

func (w *airwire) BoundingBox() geom.Rect { return geom.NewRect(w.from.center, w.to.center) }
func (w *airwire) Layers() []int          { return []int{layerRatsnest} }

// marker highlights a selection in the preview.
type marker struct {
	ggview.ItemBase
	rect geom.Rect
}

func (m *marker) BoundingBox() geom.Rect { return m.rect }
func (m *marker) Layers() []int          { return []int{layerPreview} }

// boardPainter draws board items on a render.Canvas. Pad names are
// drawn only when labels is set.
type boardPainter struct {
	canvas render.Canvas
	labels *labeler
}

func (p *boardPainter) Color(item ggview.Item, layer int) gputypes.Color {
	c := layerColors[layer]
	return c.WithAlpha(c.A * (1 - item.ForcedTransparency()))
}

func (p *boardPainter) Draw(item ggview.Item, layer int) bool {
	c := p.canvas
	c.SetFillColor(p.Color(item, layer))
	switch it := item.(type) {
	case *outline:
		c.FillRect(it.rect)
	case *track:
		c.DrawSegment(it.a, it.b, it.width)
	case *pad:
		if layer == layerFab {
			if p.labels != nil && it.name != "" {
				c.FillPath(p.labels.Contours(it.name, it.center, it.size/2))
			} else {
				c.DrawSegment(it.center.Sub(geom.Pt(it.size/2, 0)), it.center.Add(geom.Pt(it.size/2, 0)), it.size/10)
			}
			return true
		}
		c.FillRect(it.BoundingBox())
		c.SetNegativeDrawMode(true)
		c.FillCircle(it.center, it.drill/2)
		c.SetNegativeDrawMode(false)
	case *zone:
		c.FillPolygon(it.points)
	case *airwire:
		c.DrawSegment(it.from.center, it.to.center, 0.1)
	case *marker:
		c.FillRect(it.rect)
	default:
		return false
	}
	return true
}

// board is the generated scene.
type board struct {
	edge   geom.Rect
	items  []ggview.Item
	pads   []*pad
	tracks []*track
}

// generateBoard lays out n items on a w x h millimeter board.
func generateBoard(rng *rand.Rand, n int, w, h float64) *board {
	b := &board{edge: geom.XYWH(0, 0, w, h)}
	b.items = append(b.items, &outline{rect: b.edge})

	point := func(margin float64) geom.Point {
		return geom.Pt(margin+rng.Float64()*(w-2*margin), margin+rng.Float64()*(h-2*margin))
	}

	for range 3 {
		c := point(w / 6)
		r := w / 10
		z := &zone{points: []geom.Point{
			c.Add(geom.Pt(-r, -r/2)), c.Add(geom.Pt(0, -r)), c.Add(geom.Pt(r, -r/2)),
			c.Add(geom.Pt(r, r/2)), c.Add(geom.Pt(0, r)), c.Add(geom.Pt(-r, r/2)),
		}}
		z.SetForcedTransparency(0.5)
		b.items = append(b.items, z)
	}

	for i := range n {
		switch i % 3 {
		case 0:
			p := &pad{name: strconv.Itoa(len(b.pads) + 1), center: point(2), size: 1.6, drill: 0.8}
			b.pads = append(b.pads, p)
			b.items = append(b.items, p)
		default:
			a := point(1)
			d := geom.Pt(rng.Float64()*10-5, rng.Float64()*10-5)
			layer := layerCopperTop
			if rng.IntN(2) == 0 {
				layer = layerCopperBottom
			}
			t := &track{a: a, b: b.edge.Clamp(a.Add(d)), width: 0.25 + rng.Float64()*0.5, layer: layer}
			b.tracks = append(b.tracks, t)
			b.items = append(b.items, t)
		}
	}

	for i := 1; i < len(b.pads); i += 7 {
		b.items = append(b.items, &airwire{from: b.pads[i-1], to: b.pads[i]})
	}
	return b
}

// setupLayers configures targets and rendering properties of the board
// layers.
func setupLayers(v *ggview.View) {
	v.SetLayerTarget(layerRatsnest, ggview.TargetNonCached)
	v.SetLayerHasNegatives(layerCopperTop, true)
	v.SetLayerHasNegatives(layerCopperBottom, true)
	v.SetLayerDiff(layerFab, true)
	v.SetLayerOrder(layerCopperBottom, layerZones)
	v.SetLayerOrder(layerZones, layerCopperBottom)
	v.SetRequired(layerFab, layerCopperTop, true)
	v.UpdateAllLayersOrder()
}
