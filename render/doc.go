// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render provides renderers for ggview.
//
// # Renderers
//
// [SoftwareRenderer] is a CPU renderer. It records groups as display lists
// of world-space commands, rasterizes them with golang.org/x/image/vector
// and composes three pixmap targets (cached, non-cached and overlay) into
// one image. Blending and depth testing are described with gputypes state
// objects, the same ones a GPU back end would consume.
//
// [TraceRenderer] draws nothing. It logs every call it receives, which is
// what tests and diagnostics need.
//
// Both implement [Canvas], the drawing surface painters use.
//
// # Registry
//
// Renderers are created by name through a registry:
//
//	r, err := render.New("software", 800, 600)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	v := ggview.New(ggview.WithRenderer(r))
//
// Third-party renderers register themselves from init with [Register].
package render
