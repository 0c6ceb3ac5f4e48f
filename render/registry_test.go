// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/ggview"
)

func TestRegistryBuiltins(t *testing.T) {
	names := Available()
	for _, name := range []string{NameSoftware, NameTrace} {
		if !slices.Contains(names, name) {
			t.Errorf("Available() = %v, missing %q", names, name)
		}
	}
	if !slices.IsSorted(names) {
		t.Errorf("Available() not sorted: %v", names)
	}

	r, err := New(NameSoftware, 32, 16)
	if err != nil {
		t.Fatalf("New(software): %v", err)
	}
	if _, ok := r.(*SoftwareRenderer); !ok {
		t.Errorf("New(software) returned %T", r)
	}

	if _, err := New(NameSoftware, 0, 16); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("New(software, 0, 16) error = %v", err)
	}
}

func TestRegistryBestPrefersSoftware(t *testing.T) {
	r, name, err := Best(8, 8)
	if err != nil {
		t.Fatal(err)
	}
	if name != NameSoftware {
		t.Errorf("Best name = %q, want %q", name, NameSoftware)
	}
	if r == nil {
		t.Error("Best returned nil renderer")
	}
}

func TestRegistryUnknown(t *testing.T) {
	_, err := New("vulkan", 8, 8)
	if !errors.Is(err, ErrNoRenderer) {
		t.Errorf("New(vulkan) error = %v, want ErrNoRenderer", err)
	}
}

func TestRegistryRegisterUnregister(t *testing.T) {
	const name = "test-null"
	Register(name, func(w, h int) (ggview.Renderer, error) {
		return NewTraceRenderer(w, h), nil
	})
	defer Unregister(name)

	r, err := New(name, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := r.(*TraceRenderer); !ok {
		t.Errorf("New(%q) returned %T", name, r)
	}

	Unregister(name)
	if _, err := New(name, 4, 4); !errors.Is(err, ErrNoRenderer) {
		t.Errorf("after Unregister error = %v", err)
	}
}

func TestRegisterNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Register(nil) did not panic")
		}
	}()
	Register("nil", nil)
}
