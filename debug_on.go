// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build ggview_debug

package ggview

const debugAsserts = true
