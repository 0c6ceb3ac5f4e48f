// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "errors"

var (
	// ErrNoRenderer is returned when no renderer is registered under a name.
	ErrNoRenderer = errors.New("render: renderer not registered")

	// ErrInvalidSize is returned for non-positive target dimensions.
	ErrInvalidSize = errors.New("render: invalid size")

	// ErrGroupLimit is returned by BeginGroup when the group cache is full.
	ErrGroupLimit = errors.New("render: group limit reached")

	// ErrNestedGroup is returned by BeginGroup while a group is recording.
	ErrNestedGroup = errors.New("render: group already recording")
)
