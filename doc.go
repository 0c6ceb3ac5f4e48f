// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package ggview provides a layered, spatially indexed viewport engine for
// 2D editors with large item counts.
//
// # Overview
//
// A [View] holds a set of items, each occupying one or more of a fixed
// number of layers. Every layer keeps a spatial index of its items, so a
// redraw only touches what intersects the visible world rectangle. Items
// on cached layers are compiled once into renderer-owned groups and
// replayed every frame until they change.
//
// # Quick Start
//
//	v := ggview.New(
//	    ggview.WithRenderer(renderer),
//	    ggview.WithPainter(painter),
//	)
//	v.Add(pad)
//	v.SetCenter(geom.Pt(0, 0))
//	v.SetScale(4)
//	v.Paint()
//
//	// The pad moved: only its geometry needs reconciling.
//	v.Update(pad, ggview.UpdateGeometry)
//	v.Paint()
//
// # Items
//
// Domain types implement [Item] by embedding [ItemBase] and providing a
// bounding box and a layer list. Drawing is delegated to a [Painter]; an
// item the painter does not handle draws itself via SelfDraw.
//
// # Layers and targets
//
// Layers are drawn in ascending rendering order. Each layer composes into
// one of three targets: cached (group replay), non-cached (immediate) and
// overlay (transient content such as the preview group). Layers can be
// promoted above all others with [View.SetTopLayer], made dependent on
// the visibility of other layers with [View.SetRequired], or drawn in
// difference or negatives mode.
//
// # Updates
//
// Mutations are batched: [View.Update] records what changed and
// [View.UpdateItems] reconciles the spatial indices and the group cache.
// When a large share of items moved, the indices are rebuilt wholesale.
//
// # Coordinate System
//
// World coordinates map to screen pixels through the camera: the center
// is shown in the middle of the screen, scaled by the zoom factor and
// optionally mirrored.
package ggview
