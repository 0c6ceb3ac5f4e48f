// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggview

import "fmt"

// assert reports a broken precondition. Release builds log the failure at
// error level and let the caller recover; builds tagged ggview_debug panic.
// It returns cond so call sites can bail out in one line.
func assert(cond bool, msg string, args ...any) bool {
	if cond {
		return true
	}
	Logger().Error("ggview: "+msg, args...)
	if debugAsserts {
		panic(fmt.Sprintf("ggview: %s %v", msg, args))
	}
	return false
}
