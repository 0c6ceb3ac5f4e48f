// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image/color"
	"math"

	"github.com/gogpu/gputypes"
)

// pixel is a premultiplied color with components in [0, 1].
type pixel struct {
	r, g, b, a float64
}

// fromColor premultiplies a straight-alpha color.
func fromColor(c gputypes.Color) pixel {
	a := clamp01(c.A)
	return pixel{
		r: clamp01(c.R) * a,
		g: clamp01(c.G) * a,
		b: clamp01(c.B) * a,
		a: a,
	}
}

func fromRGBA(c color.RGBA) pixel {
	return pixel{
		r: float64(c.R) / 255,
		g: float64(c.G) / 255,
		b: float64(c.B) / 255,
		a: float64(c.A) / 255,
	}
}

func (p pixel) rgba8() color.RGBA {
	return color.RGBA{R: quantize(p.r), G: quantize(p.g), B: quantize(p.b), A: quantize(p.a)}
}

func (p pixel) scale(s float64) pixel {
	return pixel{r: p.r * s, g: p.g * s, b: p.b * s, a: p.a * s}
}

func quantize(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255)) //nolint:gosec // clamped to [0, 255]
}

func clamp01(v float64) float64 {
	switch {
	case v < 0 || math.IsNaN(v):
		return 0
	case v > 1:
		return 1
	}
	return v
}

// Blend states used by the software renderer.
var (
	// blendNormal is source over in premultiplied space.
	blendNormal = gputypes.BlendStatePremultiplied()

	// blendErase removes destination coverage where the source is opaque.
	blendErase = gputypes.BlendState{
		Color: gputypes.BlendComponent{
			SrcFactor: gputypes.BlendFactorZero,
			DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
			Operation: gputypes.BlendOperationAdd,
		},
		Alpha: gputypes.BlendComponent{
			SrcFactor: gputypes.BlendFactorZero,
			DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
			Operation: gputypes.BlendOperationAdd,
		},
	}

	// blendSubtract and blendReverseSubtract together give the absolute
	// difference of source and destination color.
	blendSubtract        = differenceHalf(gputypes.BlendOperationSubtract)
	blendReverseSubtract = differenceHalf(gputypes.BlendOperationReverseSubtract)
)

func differenceHalf(op gputypes.BlendOperation) gputypes.BlendState {
	return gputypes.BlendState{
		Color: gputypes.BlendComponent{
			SrcFactor: gputypes.BlendFactorOne,
			DstFactor: gputypes.BlendFactorOne,
			Operation: op,
		},
		Alpha: gputypes.BlendComponent{
			SrcFactor: gputypes.BlendFactorOne,
			DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
			Operation: gputypes.BlendOperationAdd,
		},
	}
}

// blend combines a premultiplied source and destination the way a GPU
// color attachment configured with state would.
func blend(state gputypes.BlendState, src, dst pixel) pixel {
	return pixel{
		r: blendComponent(state.Color, src.r, dst.r, src.a, dst.a),
		g: blendComponent(state.Color, src.g, dst.g, src.a, dst.a),
		b: blendComponent(state.Color, src.b, dst.b, src.a, dst.a),
		a: blendComponent(state.Alpha, src.a, dst.a, src.a, dst.a),
	}
}

// difference blends src onto dst so overlapping content shows the
// absolute difference of the two colors.
func difference(src, dst pixel) pixel {
	sub := blend(blendSubtract, src, dst)
	rev := blend(blendReverseSubtract, src, dst)
	return pixel{
		r: math.Max(sub.r, rev.r),
		g: math.Max(sub.g, rev.g),
		b: math.Max(sub.b, rev.b),
		a: sub.a,
	}
}

func blendComponent(c gputypes.BlendComponent, s, d, sa, da float64) float64 {
	switch c.Operation {
	case gputypes.BlendOperationMin:
		return math.Min(s, d)
	case gputypes.BlendOperationMax:
		return math.Max(s, d)
	}

	fs := s * blendFactor(c.SrcFactor, s, d, sa, da)
	fd := d * blendFactor(c.DstFactor, s, d, sa, da)

	switch c.Operation {
	case gputypes.BlendOperationSubtract:
		return clamp01(fs - fd)
	case gputypes.BlendOperationReverseSubtract:
		return clamp01(fd - fs)
	default:
		return clamp01(fs + fd)
	}
}

// blendFactor evaluates f for one channel. Constant factors are treated as
// a white blend constant.
func blendFactor(f gputypes.BlendFactor, s, d, sa, da float64) float64 {
	switch f {
	case gputypes.BlendFactorZero, gputypes.BlendFactorOneMinusConstant:
		return 0
	case gputypes.BlendFactorSrc:
		return s
	case gputypes.BlendFactorOneMinusSrc:
		return 1 - s
	case gputypes.BlendFactorSrcAlpha:
		return sa
	case gputypes.BlendFactorOneMinusSrcAlpha:
		return 1 - sa
	case gputypes.BlendFactorDst:
		return d
	case gputypes.BlendFactorOneMinusDst:
		return 1 - d
	case gputypes.BlendFactorDstAlpha:
		return da
	case gputypes.BlendFactorOneMinusDstAlpha:
		return 1 - da
	case gputypes.BlendFactorSrcAlphaSaturated:
		return math.Min(sa, 1-da)
	default:
		return 1
	}
}

// depthPasses reports whether a fragment at depth src passes the
// comparison against the stored depth dst.
func depthPasses(f gputypes.CompareFunction, src, dst float32) bool {
	switch f {
	case gputypes.CompareFunctionNever:
		return false
	case gputypes.CompareFunctionLess:
		return src < dst
	case gputypes.CompareFunctionEqual:
		return src == dst
	case gputypes.CompareFunctionLessEqual:
		return src <= dst
	case gputypes.CompareFunctionGreater:
		return src > dst
	case gputypes.CompareFunctionNotEqual:
		return src != dst
	case gputypes.CompareFunctionGreaterEqual:
		return src >= dst
	default:
		return true
	}
}
