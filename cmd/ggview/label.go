// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"bytes"
	"fmt"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"github.com/gogpu/ggview/geom"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// labelPPEM is the size labels are shaped and outlined at. Outlines are
// scaled to world units afterwards.
const labelPPEM = 32

// curveSteps is the number of line pieces a glyph curve is flattened into.
const curveSteps = 4

// labeler turns short strings into filled glyph contours. Text is shaped
// with go-text/typesetting and the shaped glyph ids are outlined from the
// same font with sfnt. Both parse goregular, so glyph ids agree.
type labeler struct {
	face   *font.Face
	shaper shaping.HarfbuzzShaper
	sfnt   *sfnt.Font
	buf    sfnt.Buffer

	cache map[string]shapedLabel
}

// shapedLabel holds contours at labelPPEM with the pen starting at the
// origin on the baseline.
type shapedLabel struct {
	contours [][]geom.Point
	width    float64
}

func newLabeler() (*labeler, error) {
	face, err := font.ParseTTF(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("parse label font: %w", err)
	}
	f, err := sfnt.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse label outlines: %w", err)
	}
	return &labeler{face: face, sfnt: f, cache: make(map[string]shapedLabel)}, nil
}

// Contours returns the glyph contours of text, height world units tall
// per em, centered on center. Contours keep the font's winding so
// counters stay open under a nonzero fill.
func (l *labeler) Contours(text string, center geom.Point, height float64) [][]geom.Point {
	sl := l.shape(text)
	if len(sl.contours) == 0 {
		return nil
	}
	k := height / labelPPEM
	// Baseline a third of an em below the center reads as centered for
	// digits and capitals.
	origin := center.Sub(geom.Pt(sl.width*k/2, -height/3))

	out := make([][]geom.Point, len(sl.contours))
	for i, c := range sl.contours {
		pts := make([]geom.Point, len(c))
		for j, p := range c {
			pts[j] = origin.Add(p.Mul(k))
		}
		out[i] = pts
	}
	return out
}

func (l *labeler) shape(text string) shapedLabel {
	if sl, ok := l.cache[text]; ok {
		return sl
	}
	runes := []rune(text)
	if len(runes) == 0 {
		return shapedLabel{}
	}
	out := l.shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      l.face,
		Size:      fixed.I(labelPPEM),
		Script:    language.Latin,
		Language:  language.NewLanguage("en"),
	})

	var (
		sl  shapedLabel
		pen float64
	)
	for _, g := range out.Glyphs {
		at := geom.Pt(pen+fixedFloat(g.XOffset), -fixedFloat(g.YOffset))
		sl.contours = append(sl.contours, l.glyph(sfnt.GlyphIndex(g.GlyphID), at)...)
		pen += fixedFloat(g.Advance)
	}
	sl.width = pen
	l.cache[text] = sl
	return sl
}

// glyph flattens the outline of gid into closed contours offset by at.
// sfnt outlines have y growing downwards, as board coordinates do.
func (l *labeler) glyph(gid sfnt.GlyphIndex, at geom.Point) [][]geom.Point {
	segs, err := l.sfnt.LoadGlyph(&l.buf, gid, fixed.I(labelPPEM), nil)
	if err != nil {
		return nil
	}

	var (
		contours [][]geom.Point
		cur      []geom.Point
	)
	pt := func(p fixed.Point26_6) geom.Point {
		return at.Add(geom.Pt(fixedFloat(p.X), fixedFloat(p.Y)))
	}
	flush := func() {
		if len(cur) >= 3 {
			contours = append(contours, cur)
		}
		cur = nil
	}
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			flush()
			cur = append(cur, pt(s.Args[0]))
		case sfnt.SegmentOpLineTo:
			cur = append(cur, pt(s.Args[0]))
		case sfnt.SegmentOpQuadTo:
			p0, c, p1 := cur[len(cur)-1], pt(s.Args[0]), pt(s.Args[1])
			for i := 1; i <= curveSteps; i++ {
				t := float64(i) / curveSteps
				u := 1 - t
				cur = append(cur, p0.Mul(u*u).Add(c.Mul(2*u*t)).Add(p1.Mul(t*t)))
			}
		case sfnt.SegmentOpCubeTo:
			p0, c0, c1, p1 := cur[len(cur)-1], pt(s.Args[0]), pt(s.Args[1]), pt(s.Args[2])
			for i := 1; i <= curveSteps; i++ {
				t := float64(i) / curveSteps
				u := 1 - t
				cur = append(cur, p0.Mul(u*u*u).Add(c0.Mul(3*u*u*t)).Add(c1.Mul(3*u*t*t)).Add(p1.Mul(t*t*t)))
			}
		}
	}
	flush()
	return contours
}

func fixedFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
