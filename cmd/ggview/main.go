// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command ggview renders a synthetic circuit board through a ggview.View
// and writes the last frame as a PNG.
//
// Settings are read from the environment:
//
//	GGVIEW_WIDTH, GGVIEW_HEIGHT  output size in pixels
//	GGVIEW_ITEMS                 number of pads and tracks
//	GGVIEW_SEED                  scene seed
//	GGVIEW_ZOOM                  wheel lines zoomed in before the last frame
//	GGVIEW_OUTPUT                PNG path
//	GGVIEW_RENDERER              renderer name (software, trace)
//	GGVIEW_VERBOSE               debug logging and call traces
package main

import (
	"fmt"
	"image/png"
	"io"
	"log"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/gogpu/ggview"
	"github.com/gogpu/ggview/geom"
	"github.com/gogpu/ggview/navigate"
	"github.com/gogpu/ggview/render"
	"github.com/gogpu/gpucontext"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type config struct {
	Width    int     `envconfig:"WIDTH" default:"1024"`
	Height   int     `envconfig:"HEIGHT" default:"768"`
	Items    int     `envconfig:"ITEMS" default:"3000"`
	Seed     uint64  `envconfig:"SEED" default:"1"`
	Zoom     float64 `envconfig:"ZOOM" default:"4"`
	Output   string  `envconfig:"OUTPUT" default:"board.png"`
	Renderer string  `envconfig:"RENDERER" default:"software"`
	Verbose  bool    `envconfig:"VERBOSE"`
}

func loadConfig() (config, error) {
	var cfg config
	if err := envconfig.Process("ggview", &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("ggview: %v", err)
	}

	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	ggview.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(cfg, os.Stdout); err != nil {
		log.Fatalf("ggview: %v", err)
	}
}

// frame is one painted frame of the report.
type frame struct {
	name string
	took time.Duration
}

func run(cfg config, out io.Writer) error {
	r, err := render.New(cfg.Renderer, cfg.Width, cfg.Height)
	if err != nil {
		return err
	}
	canvas, ok := r.(render.Canvas)
	if !ok {
		return fmt.Errorf("renderer %q has no canvas", cfg.Renderer)
	}

	labels, err := newLabeler()
	if err != nil {
		return err
	}

	v := ggview.New(
		ggview.WithRenderer(r),
		ggview.WithPainter(&boardPainter{canvas: canvas, labels: labels}),
		ggview.WithMaxLayers(numLayers),
		ggview.WithDrawPriority(true),
	)
	setupLayers(v)

	b := generateBoard(rand.New(rand.NewPCG(cfg.Seed, 0)), cfg.Items, 100, 80)
	for _, it := range b.items {
		v.Add(it)
	}
	v.SetViewport(b.edge.Inflate(2))

	var frames []frame
	paint := func(name string) {
		start := time.Now()
		v.Paint()
		frames = append(frames, frame{name: name, took: time.Since(start)})
	}

	paint("initial")

	// Nudge every tenth track and select a few pads.
	for i, t := range b.tracks {
		if i%10 == 0 {
			t.b = b.edge.Clamp(t.b.Add(geom.Pt(1, 1)))
			v.Update(t, ggview.UpdateGeometry)
		}
	}
	for _, p := range b.pads[:min(5, len(b.pads))] {
		v.AddToPreview(&marker{rect: p.BoundingBox().Inflate(0.5)})
	}
	paint("edit")

	// Zoom in around the screen center and drag the board a little.
	nav := navigate.New(v)
	mid := r.ScreenSize().Div(2)
	nav.HandleScroll(gpucontext.ScrollEvent{X: mid.X, Y: mid.Y, DeltaY: -cfg.Zoom, DeltaMode: gpucontext.ScrollDeltaLine})
	nav.HandlePointer(gpucontext.PointerEvent{Type: gpucontext.PointerDown, Button: gpucontext.ButtonMiddle, X: mid.X, Y: mid.Y})
	nav.HandlePointer(gpucontext.PointerEvent{Type: gpucontext.PointerMove, X: mid.X + 40, Y: mid.Y + 20})
	nav.HandlePointer(gpucontext.PointerEvent{Type: gpucontext.PointerUp, Button: gpucontext.ButtonMiddle, X: mid.X + 40, Y: mid.Y + 20})
	paint("navigate")

	report(out, v, r, frames)

	switch rr := r.(type) {
	case *render.SoftwareRenderer:
		return writePNG(cfg.Output, rr)
	case *render.TraceRenderer:
		if cfg.Verbose {
			_, err := rr.WriteTo(out)
			return err
		}
	}
	return nil
}

func report(out io.Writer, v *ggview.View, r ggview.Renderer, frames []frame) {
	p := message.NewPrinter(language.English)
	p.Fprintf(out, "items: %d, scale %.3f\n", v.Len(), v.Scale())
	for _, f := range frames {
		p.Fprintf(out, "frame %-8s %v\n", f.name, f.took.Round(time.Microsecond))
	}
	switch rr := r.(type) {
	case *render.SoftwareRenderer:
		st := rr.Stats()
		p.Fprintf(out, "groups: %d live, %d recorded, %d drawn; commands executed: %d\n",
			len(rr.Groups()), st.GroupsRecorded, st.GroupsDrawn, st.CommandsExecuted)
	case *render.TraceRenderer:
		p.Fprintf(out, "groups: %d live; calls: %d\n", rr.LiveGroups(), len(rr.Calls()))
	}
}

func writePNG(path string, r *render.SoftwareRenderer) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, r.Image()); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
