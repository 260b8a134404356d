// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/genailakes/workspace-tui/internal/ui/styles"
)

func TestToastShowAndExpire(t *testing.T) {
	var toast Toast

	cmd := toast.Show("saved", ToastSuccess)
	if cmd == nil {
		t.Fatal("Show should return an expiry command")
	}
	if !toast.Visible() {
		t.Error("toast should be visible after Show")
	}

	toast.Expire(ToastExpiredMsg{Seq: 1})
	if toast.Visible() {
		t.Error("toast should hide when its own expiry fires")
	}
}

func TestToastStaleExpiryIgnored(t *testing.T) {
	var toast Toast

	toast.Show("first", ToastStatus)
	toast.Show("second", ToastError)

	// The first toast's timer fires after it was replaced.
	toast.Expire(ToastExpiredMsg{Seq: 1})
	if !toast.Visible() {
		t.Error("stale expiry must not clear a newer toast")
	}

	toast.Expire(ToastExpiredMsg{Seq: 2})
	if toast.Visible() {
		t.Error("current expiry should clear the toast")
	}
}

func TestToastView(t *testing.T) {
	theme := styles.NewTheme("dark")

	var toast Toast
	if got := toast.View(theme); got != "" {
		t.Errorf("hidden toast should render empty, got %q", got)
	}

	toast.Show("backend unreachable", ToastError)
	if got := toast.View(theme); !strings.Contains(got, "backend unreachable") {
		t.Errorf("rendered toast missing text: %q", got)
	}

	toast.Hide()
	if got := toast.View(theme); got != "" {
		t.Errorf("Hide should stop rendering, got %q", got)
	}
}
