package headerbar

import (
	"strings"
	"testing"

	"github.com/llehouerou/culturedeck/internal/source"
	"github.com/llehouerou/culturedeck/internal/ui/testutil"
)

func TestRender(t *testing.T) {
	out := testutil.StripANSI(Render(source.ScopeMusic, 60))
	lines := strings.Split(out, "\n")

	if len(lines) != Height {
		t.Fatalf("Render() has %d lines, want %d", len(lines), Height)
	}
	if !strings.HasPrefix(lines[0], Title) {
		t.Errorf("banner = %q, want prefix %q", lines[0], Title)
	}
	if !strings.HasSuffix(lines[0], "dark") {
		t.Errorf("banner = %q, want theme name on the right", lines[0])
	}
	if testutil.MeasureWidth(lines[0]) != 60 {
		t.Errorf("banner width = %d, want 60", testutil.MeasureWidth(lines[0]))
	}
	for _, scope := range []string{"all", "artifacts", "music"} {
		if !strings.Contains(lines[1], scope) {
			t.Errorf("tabs = %q, missing %q", lines[1], scope)
		}
	}
}
