// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/ggview"
	"github.com/gogpu/ggview/geom"
	"github.com/gogpu/gputypes"
)

func TestTraceRendererRecordsCalls(t *testing.T) {
	tr := NewTraceRenderer(640, 480)
	if got := tr.ScreenSize(); got != geom.Pt(640, 480) {
		t.Errorf("ScreenSize() = %v", got)
	}

	tr.BeginDrawing()
	tr.SetTarget(ggview.TargetOverlay)
	tr.SetFillColor(gputypes.ColorRed)
	tr.FillRect(geom.XYWH(1, 2, 3, 4))
	tr.EndDrawing()

	want := []string{
		"BeginDrawing",
		"SetTarget Overlay",
		"SetFillColor rgba(1,0,0,1)",
		"FillRect 1,2 4,6",
		"EndDrawing",
	}
	got := tr.Calls()
	if len(got) != len(want) {
		t.Fatalf("Calls() = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, got[i], want[i])
		}
	}

	var buf bytes.Buffer
	if _, err := tr.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(buf.String(), "\n"); n != len(want) {
		t.Errorf("WriteTo wrote %d lines, want %d", n, len(want))
	}

	tr.Reset()
	if len(tr.Calls()) != 0 {
		t.Errorf("Reset kept %d calls", len(tr.Calls()))
	}
}

func TestTraceRendererGroups(t *testing.T) {
	tr := NewTraceRenderer(10, 10)

	a, err := tr.BeginGroup()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tr.BeginGroup(); !errors.Is(err, ErrNestedGroup) {
		t.Errorf("nested BeginGroup error = %v", err)
	}
	tr.EndGroup()
	b, _ := tr.BeginGroup()
	tr.EndGroup()

	if tr.LiveGroups() != 2 {
		t.Errorf("LiveGroups() = %d, want 2", tr.LiveGroups())
	}
	tr.DeleteGroup(a)
	if tr.LiveGroups() != 1 {
		t.Errorf("LiveGroups() after delete = %d, want 1", tr.LiveGroups())
	}
	tr.DrawGroup(b)
	if tr.Count("DrawGroup") != 1 {
		t.Errorf("Count(DrawGroup) = %d, want 1", tr.Count("DrawGroup"))
	}
	tr.ClearCache()
	if tr.LiveGroups() != 0 {
		t.Errorf("LiveGroups() after ClearCache = %d", tr.LiveGroups())
	}
}
