//nolint:goconst // test cases intentionally repeat strings for readability
package keymap

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestByContext(t *testing.T) {
	tests := []struct {
		context  string
		minCount int
	}{
		{"global", 5},
		{"results", 4},
		{"history", 2},
		{"unknown", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.context, func(t *testing.T) {
			got := ByContext(tt.context)
			if len(got) < tt.minCount {
				t.Errorf("ByContext(%q) = %d bindings, want >= %d", tt.context, len(got), tt.minCount)
			}
			if tt.minCount == 0 && len(got) != 0 {
				t.Errorf("ByContext(%q) = %d bindings, want 0", tt.context, len(got))
			}
			for _, b := range got {
				if b.Context != tt.context {
					t.Errorf("binding %v has context %q", b.Keys, b.Context)
				}
			}
		})
	}
}

func TestAll_NoPrintableKeys(t *testing.T) {
	// Printable keys would be swallowed from the search input.
	for _, b := range All {
		for _, k := range b.Keys {
			if utf8.RuneCountInString(k) == 1 {
				t.Errorf("binding %q for %s shadows text input", k, b.Action)
			}
		}
	}
}

func TestAll_NoConflictsWithinContext(t *testing.T) {
	for _, ctx := range []string{"global", "results", "history"} {
		seen := map[string]Action{}
		for _, b := range append(ByContext("global"), ByContext(ctx)...) {
			for _, k := range b.Keys {
				if prev, ok := seen[k]; ok && prev != b.Action {
					t.Errorf("key %q bound to %s and %s in %s", k, prev, b.Action, ctx)
				}
				seen[k] = b.Action
			}
		}
	}
}

func TestHelp(t *testing.T) {
	got := Help("results")
	for _, want := range []string{"enter details", "ctrl+f favorite", "ctrl+u vote up", "ctrl+d vote down"} {
		if !strings.Contains(got, want) {
			t.Errorf("Help(results) = %q, missing %q", got, want)
		}
	}
	if Help("unknown") != "" {
		t.Error("Help(unknown) should be empty")
	}
}
