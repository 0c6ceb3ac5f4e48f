// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggview

import "github.com/gogpu/ggview/geom"

// Default configuration values.
const (
	DefaultMaxLayers        = 512
	DefaultMinScale         = 1e-3
	DefaultMaxScale         = 1e3
	DefaultRebuildThreshold = 0.3
	DefaultTopLayerBoost    = 10000
	DefaultCompactThreshold = 1024
	defaultBoundaryExtent   = 1e9
)

// Config holds the tunable parameters of a View.
//
// RebuildThreshold and TopLayerBoost are empirical values. They are
// exposed so applications can tune them for their item counts.
type Config struct {
	// Boundary is the rectangle the camera center is clamped into.
	Boundary geom.Rect

	// MinScale and MaxScale bound the zoom factor.
	MinScale, MaxScale float64

	// MaxLayers is the number of layer records. Valid layer ids are
	// [0, MaxLayers).
	MaxLayers int

	// RebuildThreshold is the fraction of items with geometry or layer
	// changes above which UpdateItems rebuilds every spatial index from
	// scratch instead of patching entries one by one.
	RebuildThreshold float64

	// TopLayerBoost is added to the rendering order of layers marked
	// with SetTopLayer while the top-layer modifier is enabled.
	TopLayerBoost int

	// CompactThreshold is the number of tombstones in the item list
	// that triggers compaction.
	CompactThreshold int

	// UseDrawPriority defers drawing within a layer and sorts items by
	// their draw priority.
	UseDrawPriority bool

	// ReverseDrawOrder draws higher priorities first when
	// UseDrawPriority is set.
	ReverseDrawOrder bool

	MirrorX, MirrorY bool

	// PreviewLayer hosts the view's preview group. Negative means
	// MaxLayers-1.
	PreviewLayer int
}

// DefaultConfig returns the default view configuration.
func DefaultConfig() Config {
	return Config{
		Boundary: geom.NewRect(
			geom.Pt(-defaultBoundaryExtent, -defaultBoundaryExtent),
			geom.Pt(defaultBoundaryExtent, defaultBoundaryExtent),
		),
		MinScale:         DefaultMinScale,
		MaxScale:         DefaultMaxScale,
		MaxLayers:        DefaultMaxLayers,
		RebuildThreshold: DefaultRebuildThreshold,
		TopLayerBoost:    DefaultTopLayerBoost,
		CompactThreshold: DefaultCompactThreshold,
		PreviewLayer:     -1,
	}
}

// Option configures a View during creation.
//
// Example:
//
//	v := ggview.New(
//	    ggview.WithRenderer(r),
//	    ggview.WithPainter(p),
//	    ggview.WithDrawPriority(true),
//	)
type Option func(*viewOptions)

type viewOptions struct {
	cfg      Config
	renderer Renderer
	painter  Painter
}

func defaultOptions() viewOptions {
	return viewOptions{cfg: DefaultConfig()}
}

// WithConfig replaces the whole configuration. Options applied after it
// still override individual fields.
func WithConfig(cfg Config) Option {
	return func(o *viewOptions) {
		o.cfg = cfg
	}
}

// WithBoundary sets the rectangle the camera center is clamped into.
func WithBoundary(r geom.Rect) Option {
	return func(o *viewOptions) {
		o.cfg.Boundary = r.Normalize()
	}
}

// WithScaleLimits sets the zoom limits.
func WithScaleLimits(minScale, maxScale float64) Option {
	return func(o *viewOptions) {
		if minScale > 0 && maxScale >= minScale {
			o.cfg.MinScale = minScale
			o.cfg.MaxScale = maxScale
		}
	}
}

// WithMaxLayers sets the number of layer records.
func WithMaxLayers(n int) Option {
	return func(o *viewOptions) {
		if n > 0 {
			o.cfg.MaxLayers = n
		}
	}
}

// WithRebuildThreshold sets the dirty-item fraction that switches
// UpdateItems to a full index rebuild.
func WithRebuildThreshold(f float64) Option {
	return func(o *viewOptions) {
		o.cfg.RebuildThreshold = f
	}
}

// WithTopLayerBoost sets the rendering order boost of top layers.
func WithTopLayerBoost(boost int) Option {
	return func(o *viewOptions) {
		o.cfg.TopLayerBoost = boost
	}
}

// WithCompactThreshold sets the tombstone count that triggers compaction
// of the item list.
func WithCompactThreshold(n int) Option {
	return func(o *viewOptions) {
		if n >= 0 {
			o.cfg.CompactThreshold = n
		}
	}
}

// WithDrawPriority enables priority sorted drawing within each layer.
func WithDrawPriority(enabled bool) Option {
	return func(o *viewOptions) {
		o.cfg.UseDrawPriority = enabled
	}
}

// WithReverseDrawOrder reverses the priority sort.
func WithReverseDrawOrder(enabled bool) Option {
	return func(o *viewOptions) {
		o.cfg.ReverseDrawOrder = enabled
	}
}

// WithMirror mirrors the world around the screen center.
func WithMirror(x, y bool) Option {
	return func(o *viewOptions) {
		o.cfg.MirrorX = x
		o.cfg.MirrorY = y
	}
}

// WithRenderer sets the renderer the view draws through.
func WithRenderer(r Renderer) Option {
	return func(o *viewOptions) {
		o.renderer = r
	}
}

// WithPainter sets the painter that turns items into draw calls.
func WithPainter(p Painter) Option {
	return func(o *viewOptions) {
		o.painter = p
	}
}

// WithPreviewLayer sets the layer of the view's preview group.
func WithPreviewLayer(layer int) Option {
	return func(o *viewOptions) {
		o.cfg.PreviewLayer = layer
	}
}
