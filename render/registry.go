// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"slices"

	"github.com/gogpu/ggview"
	"github.com/gogpu/gpucontext"
)

// Renderer names registered by this package.
const (
	NameSoftware = "software"
	NameTrace    = "trace"
)

// Factory creates a renderer for a width x height screen.
type Factory func(width, height int) (ggview.Renderer, error)

// renderers holds the registered factories. Best prefers the software
// renderer since it is the only one producing pixels.
var renderers = gpucontext.NewRegistry[Factory](
	gpucontext.WithPriority(NameSoftware, NameTrace),
)

func init() {
	Register(NameSoftware, func(width, height int) (ggview.Renderer, error) {
		return NewSoftwareRenderer(width, height)
	})
	Register(NameTrace, func(width, height int) (ggview.Renderer, error) {
		return NewTraceRenderer(width, height), nil
	})
}

// Register registers a renderer factory with the given name, replacing any
// previous registration. It is typically called from init:
//
//	func init() {
//	    render.Register("vulkan", NewVulkanRenderer)
//	}
//
// Register panics if factory is nil.
func Register(name string, factory Factory) {
	if factory == nil {
		panic("render: Register factory is nil")
	}
	renderers.Register(name, func() Factory { return factory })
}

// Unregister removes a renderer from the registry.
func Unregister(name string) {
	renderers.Unregister(name)
}

// New creates a renderer by name.
func New(name string, width, height int) (ggview.Renderer, error) {
	factory := renderers.Get(name)
	if factory == nil {
		return nil, fmt.Errorf("%w: %q (forgotten import?)", ErrNoRenderer, name)
	}
	return factory(width, height)
}

// Best creates the highest-priority registered renderer and returns it
// together with its name.
func Best(width, height int) (ggview.Renderer, string, error) {
	name := renderers.BestName()
	if name == "" {
		return nil, "", ErrNoRenderer
	}
	r, err := New(name, width, height)
	return r, name, err
}

// Available returns the registered renderer names sorted alphabetically.
func Available() []string {
	names := renderers.Available()
	slices.Sort(names)
	return names
}
