package render

import (
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain ascii unchanged", "Nkisi Nkondi", "Nkisi Nkondi"},
		{"accented text kept", "Sèvres Porcelain", "Sèvres Porcelain"},
		{"newline becomes space", "line one\nline two", "line one line two"},
		{"tab becomes space", "a\tb", "a b"},
		{"nbsp becomes space", "Luba\u00a0people", "Luba people"},
		{"control chars dropped", "bell\x07 escape\x1b[31m", "bell escape[31m"},
		{"invalid utf8 dropped", "bad\xffbyte", "badbyte"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPlainText(t *testing.T) {
	input := "<p>A <i>nkisi</i> figure,<br>Kongo &amp; Luba.</p>\n\n"
	want := "A nkisi figure, Kongo & Luba."
	if got := PlainText(input); got != want {
		t.Errorf("PlainText() = %q, want %q", got, want)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"no truncation needed", "hello", 10, "hello"},
		{"exact fit", "hello", 5, "hello"},
		{"truncation with ellipsis", "hello world", 8, "hello..."},
		{"very short max width", "hello", 3, "..."},
		{"wide characters", "日本語のタイトル", 7, "日本..."},
		{"sanitized first", "a\nb", 10, "a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.input, tt.maxWidth); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestRow(t *testing.T) {
	got := Row("left", "right", 20)
	if len(got) != 20 {
		t.Errorf("Row() length = %d, want 20", len(got))
	}
	if !strings.HasPrefix(got, "left") || !strings.HasSuffix(got, "right") {
		t.Errorf("Row() = %q", got)
	}

	// Minimum gap of one space
	if got := Row("left", "right", 5); got != "left right" {
		t.Errorf("Row() = %q, want %q", got, "left right")
	}
}

func TestSeparator(t *testing.T) {
	if got := Separator(5); got != "─────" {
		t.Errorf("Separator(5) = %q", got)
	}
	if got := Separator(-1); got != "" {
		t.Errorf("Separator(-1) = %q, want empty", got)
	}
}

func TestWrap(t *testing.T) {
	got := Wrap("The Luba kingdom flourished in the Congo basin", 16)
	want := []string{"The Luba kingdom", "flourished in", "the Congo basin"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("Wrap() = %q, want %q", got, want)
	}

	if got := Wrap("anything", 0); got != nil {
		t.Errorf("Wrap(width 0) = %q, want nil", got)
	}
}
