// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"math"
	"testing"

	"github.com/gogpu/gputypes"
)

func pixelNear(a, b pixel) bool {
	const eps = 1e-9
	return math.Abs(a.r-b.r) < eps && math.Abs(a.g-b.g) < eps &&
		math.Abs(a.b-b.b) < eps && math.Abs(a.a-b.a) < eps
}

func TestBlend(t *testing.T) {
	red := pixel{r: 1, a: 1}
	blue := pixel{b: 1, a: 1}
	halfRed := pixel{r: 0.5, a: 0.5}

	tests := []struct {
		name  string
		state gputypes.BlendState
		src   pixel
		dst   pixel
		want  pixel
	}{
		{"opaque over", blendNormal, red, blue, red},
		{"half over", blendNormal, halfRed, blue, pixel{r: 0.5, b: 0.5, a: 1}},
		{"over transparent", blendNormal, halfRed, pixel{}, halfRed},
		{"erase opaque", blendErase, red, blue, pixel{}},
		{"erase half", blendErase, halfRed, blue, pixel{b: 0.5, a: 0.5}},
		{"replace", gputypes.BlendStateReplace(), halfRed, blue, halfRed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := blend(tt.state, tt.src, tt.dst); !pixelNear(got, tt.want) {
				t.Errorf("blend = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDifference(t *testing.T) {
	white := pixel{r: 1, g: 1, b: 1, a: 1}
	red := pixel{r: 1, a: 1}

	got := difference(white, red)
	want := pixel{g: 1, b: 1, a: 1}
	if !pixelNear(got, want) {
		t.Errorf("difference(white, red) = %+v, want %+v", got, want)
	}

	// Symmetric in color.
	got = difference(red, white)
	if !pixelNear(got, want) {
		t.Errorf("difference(red, white) = %+v, want %+v", got, want)
	}
}

func TestBlendMinMax(t *testing.T) {
	state := gputypes.BlendState{
		Color: gputypes.BlendComponent{Operation: gputypes.BlendOperationMax},
		Alpha: gputypes.BlendComponent{Operation: gputypes.BlendOperationMin},
	}
	got := blend(state, pixel{r: 0.2, g: 0.9, a: 1}, pixel{r: 0.7, g: 0.1, a: 0.5})
	want := pixel{r: 0.7, g: 0.9, a: 0.5}
	if !pixelNear(got, want) {
		t.Errorf("blend = %+v, want %+v", got, want)
	}
}

func TestDepthPasses(t *testing.T) {
	tests := []struct {
		f        gputypes.CompareFunction
		src, dst float32
		want     bool
	}{
		{gputypes.CompareFunctionNever, 1, 0, false},
		{gputypes.CompareFunctionAlways, 0, 1, true},
		{gputypes.CompareFunctionLess, 0, 1, true},
		{gputypes.CompareFunctionLess, 1, 1, false},
		{gputypes.CompareFunctionLessEqual, 1, 1, true},
		{gputypes.CompareFunctionEqual, 2, 2, true},
		{gputypes.CompareFunctionNotEqual, 2, 2, false},
		{gputypes.CompareFunctionGreater, 2, 1, true},
		{gputypes.CompareFunctionGreaterEqual, 1, 1, true},
		{gputypes.CompareFunctionGreaterEqual, 0, 1, false},
		{gputypes.CompareFunctionGreaterEqual, 0, float32(math.Inf(-1)), true},
	}
	for _, tt := range tests {
		if got := depthPasses(tt.f, tt.src, tt.dst); got != tt.want {
			t.Errorf("depthPasses(%v, %v, %v) = %v, want %v", tt.f, tt.src, tt.dst, got, tt.want)
		}
	}
}

func TestFromColorPremultiplies(t *testing.T) {
	got := fromColor(gputypes.Color{R: 1, G: 0.5, B: 2, A: 0.5})
	want := pixel{r: 0.5, g: 0.25, b: 0.5, a: 0.5}
	if !pixelNear(got, want) {
		t.Errorf("fromColor = %+v, want %+v", got, want)
	}
}
