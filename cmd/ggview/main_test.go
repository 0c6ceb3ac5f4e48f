// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"bytes"
	"image/png"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/ggview"
	"github.com/gogpu/ggview/render"
)

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("GGVIEW_WIDTH", "320")
	t.Setenv("GGVIEW_RENDERER", "trace")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 320 || cfg.Renderer != "trace" {
		t.Errorf("config = %+v", cfg)
	}
	if cfg.Height != 768 || cfg.Output != "board.png" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestGenerateBoard(t *testing.T) {
	b := generateBoard(rand.New(rand.NewPCG(1, 0)), 30, 100, 80)
	if len(b.pads) != 10 || len(b.tracks) != 20 {
		t.Errorf("pads = %d, tracks = %d, want 10 and 20", len(b.pads), len(b.tracks))
	}
	for _, it := range b.items {
		if bb := it.BoundingBox(); !bb.IsValid() {
			t.Errorf("%T has invalid bbox %v", it, bb)
		}
	}
}

func TestBoardPainterDrawsEveryItem(t *testing.T) {
	tr := render.NewTraceRenderer(100, 100)
	p := &boardPainter{canvas: tr}
	b := generateBoard(rand.New(rand.NewPCG(2, 0)), 9, 50, 50)
	for _, it := range b.items {
		if !p.Draw(it, it.Layers()[0]) {
			t.Errorf("painter skipped %T", it)
		}
	}
	if !p.Draw(&marker{}, layerPreview) {
		t.Error("painter skipped marker")
	}
	// Pads punch their drill.
	if tr.Count("SetNegativeDrawMode true") != len(b.pads) {
		t.Errorf("negative draws = %d, want %d", tr.Count("SetNegativeDrawMode true"), len(b.pads))
	}
}

func TestRunSoftware(t *testing.T) {
	out := filepath.Join(t.TempDir(), "board.png")
	var buf bytes.Buffer
	cfg := config{Width: 160, Height: 120, Items: 60, Seed: 3, Zoom: 2, Output: out, Renderer: render.NameSoftware}
	if err := run(cfg, &buf); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 160 || b.Dy() != 120 {
		t.Errorf("image size = %v", b)
	}
	for _, want := range []string{"frame initial", "frame edit", "frame navigate", "groups:"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("report missing %q:\n%s", want, buf.String())
		}
	}
}

func TestRunTrace(t *testing.T) {
	var buf bytes.Buffer
	cfg := config{Width: 64, Height: 64, Items: 12, Seed: 4, Zoom: 1, Renderer: render.NameTrace, Verbose: true}
	if err := run(cfg, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "BeginDrawing") {
		t.Error("verbose trace run did not dump calls")
	}
}

func TestRunUnknownRenderer(t *testing.T) {
	err := run(config{Width: 8, Height: 8, Renderer: "vulkan"}, &bytes.Buffer{})
	if err == nil {
		t.Fatal("unknown renderer accepted")
	}
}

func TestSetupLayers(t *testing.T) {
	v := ggview.New(ggview.WithMaxLayers(numLayers))
	setupLayers(v)
	if v.LayerTarget(layerRatsnest) != ggview.TargetNonCached {
		t.Error("ratsnest should be non-cached")
	}
	if v.LayerOrder(layerZones) <= v.LayerOrder(layerCopperBottom) {
		t.Error("zones should draw above bottom copper")
	}
}
