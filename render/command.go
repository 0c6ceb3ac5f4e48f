// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"math"

	"github.com/gogpu/ggview"
	"github.com/gogpu/ggview/geom"
	"github.com/gogpu/gputypes"
)

// CommandType identifies the type of a command.
type CommandType uint8

const (
	CmdFillPolygon CommandType = iota // Fill a closed polygon
	CmdFillCircle                     // Fill a circle
	CmdSegment                        // Draw a thick segment with round caps
	CmdFillPath                      // Fill contours with the nonzero rule
)

var commandTypeNames = [...]string{
	CmdFillPolygon: "FillPolygon",
	CmdFillCircle:  "FillCircle",
	CmdSegment:     "Segment",
	CmdFillPath:    "FillPath",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Style is the paint state a command was recorded with.
type Style struct {
	Color gputypes.Color

	// Negative commands erase what is below them.
	Negative bool
}

func (s *Style) style() *Style { return s }

// Command is one recorded drawing operation in world coordinates.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType

	// Outline returns the closed screen-space polygons covered by the
	// command under the world to screen transform m.
	Outline(m geom.Matrix) [][]geom.Point

	style() *Style
}

// FillPolygonCommand fills a closed polygon.
type FillPolygonCommand struct {
	Style
	Points []geom.Point
}

// Type implements Command.
func (*FillPolygonCommand) Type() CommandType { return CmdFillPolygon }

// Outline implements Command.
func (c *FillPolygonCommand) Outline(m geom.Matrix) [][]geom.Point {
	if len(c.Points) < 3 {
		return nil
	}
	return [][]geom.Point{transformAll(m, c.Points)}
}

// FillCircleCommand fills a circle.
type FillCircleCommand struct {
	Style
	Center geom.Point
	Radius float64
}

// Type implements Command.
func (*FillCircleCommand) Type() CommandType { return CmdFillCircle }

// Outline implements Command.
func (c *FillCircleCommand) Outline(m geom.Matrix) [][]geom.Point {
	if c.Radius <= 0 {
		return nil
	}
	return [][]geom.Point{transformAll(m, circle(c.Center, c.Radius, c.Radius*m.ScaleFactor()))}
}

// SegmentCommand draws a segment of the given width with round caps.
type SegmentCommand struct {
	Style
	A, B  geom.Point
	Width float64
}

// Type implements Command.
func (*SegmentCommand) Type() CommandType { return CmdSegment }

// Outline implements Command.
func (c *SegmentCommand) Outline(m geom.Matrix) [][]geom.Point {
	r := c.Width / 2
	if r <= 0 {
		return nil
	}
	sr := r * m.ScaleFactor()
	d := c.B.Sub(c.A)
	l := d.Length()
	if l == 0 {
		return [][]geom.Point{transformAll(m, circle(c.A, r, sr))}
	}
	n := geom.Pt(-d.Y, d.X).Mul(r / l)
	body := []geom.Point{c.A.Add(n), c.B.Add(n), c.B.Sub(n), c.A.Sub(n)}
	return [][]geom.Point{
		transformAll(m, body),
		transformAll(m, circle(c.A, r, sr)),
		transformAll(m, circle(c.B, r, sr)),
	}
}

// FillPathCommand fills a set of closed contours with the nonzero winding
// rule. Contours wound against the outer ones cut holes, as in glyph
// outlines.
type FillPathCommand struct {
	Style
	Contours [][]geom.Point
}

// Type implements Command.
func (*FillPathCommand) Type() CommandType { return CmdFillPath }

// Outline implements Command.
func (c *FillPathCommand) Outline(m geom.Matrix) [][]geom.Point {
	var out [][]geom.Point
	for _, contour := range c.Contours {
		if len(contour) >= 3 {
			out = append(out, transformAll(m, contour))
		}
	}
	return out
}

// circle approximates a circle by a polygon fine enough for a screen
// radius of screenRadius pixels.
func circle(c geom.Point, r, screenRadius float64) []geom.Point {
	n := int(math.Ceil(2 * math.Pi * screenRadius / 3))
	n = max(12, min(n, 128))
	pts := make([]geom.Point, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = geom.Pt(c.X+r*math.Cos(a), c.Y+r*math.Sin(a))
	}
	return pts
}

func transformAll(m geom.Matrix, pts []geom.Point) []geom.Point {
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		out[i] = m.TransformPoint(p)
	}
	return out
}

// DisplayList is a recorded group: the commands issued between BeginGroup
// and EndGroup together with the layer depth and target they were
// recorded for.
type DisplayList struct {
	Depth    int
	Target   ggview.Target
	commands []Command
}

// Len returns the number of commands.
func (d *DisplayList) Len() int {
	return len(d.commands)
}

// Commands returns the recorded commands. The slice must not be modified.
func (d *DisplayList) Commands() []Command {
	return d.commands
}

// SetColor recolors every command of the list.
func (d *DisplayList) SetColor(c gputypes.Color) {
	for _, cmd := range d.commands {
		cmd.style().Color = c
	}
}

func (d *DisplayList) append(cmd Command) {
	d.commands = append(d.commands, cmd)
}
