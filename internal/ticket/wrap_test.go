package ticket

import (
	"strings"
	"testing"

	"golang.org/x/image/font/basicfont"
)

// basicfont.Face7x13 advances 7px per glyph, which makes widths exact.
var testFace = basicfont.Face7x13

func TestWrapEmptyInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty string", input: ""},
		{name: "spaces only", input: "   "},
		{name: "tabs and newlines", input: "\t\n "},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := Wrap(tc.input, testFace, 100)
			if len(got) != 1 || got[0] != "" {
				t.Fatalf("Wrap(%q) = %q, want one empty line", tc.input, got)
			}
		})
	}
}

func TestWrapGreedy(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		expect   []string
	}{
		{
			name:     "single short line",
			input:    "Kaffee machen",
			maxWidth: 536,
			expect:   []string{"Kaffee machen"},
		},
		{
			name:  "wraps at word boundary",
			input: "aaaa bbbb cccc",
			// 9 glyphs * 7px = 63px, so "aaaa bbbb" fits and "cccc" wraps.
			maxWidth: 63,
			expect:   []string{"aaaa bbbb", "cccc"},
		},
		{
			name:     "exact width tie is accepted",
			input:    "aaaa bbbb",
			maxWidth: 63,
			expect:   []string{"aaaa bbbb"},
		},
		{
			name:     "one pixel short of tie overflows",
			input:    "aaaa bbbb",
			maxWidth: 62,
			expect:   []string{"aaaa", "bbbb"},
		},
		{
			name:     "collapses repeated whitespace",
			input:    "a    b",
			maxWidth: 536,
			expect:   []string{"a b"},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := Wrap(tc.input, testFace, tc.maxWidth)
			if len(got) != len(tc.expect) {
				t.Fatalf("Wrap() = %q, want %q", got, tc.expect)
			}
			for i := range got {
				if got[i] != tc.expect[i] {
					t.Fatalf("Wrap() line %d = %q, want %q", i, got[i], tc.expect[i])
				}
			}
		})
	}
}

func TestWrapUnbreakableToken(t *testing.T) {
	token := strings.Repeat("x", 200) // 1400px, far over any budget here

	got := Wrap(token, testFace, 536)
	if len(got) != 1 {
		t.Fatalf("Wrap() produced %d lines, want 1", len(got))
	}
	if got[0] != token {
		t.Fatalf("unbreakable token was modified: got %d chars, want %d", len(got[0]), len(token))
	}
}

func TestWrapUnbreakableTokenBetweenWords(t *testing.T) {
	token := strings.Repeat("x", 50)
	got := Wrap("ab "+token+" cd", testFace, 70) // 10 glyphs per line

	want := []string{"ab", token, "cd"}
	if len(got) != len(want) {
		t.Fatalf("Wrap() = %q, want %q", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("Wrap() line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestWrapLinesFitBudget(t *testing.T) {
	input := "the quick brown fox jumps over the lazy dog again and again and again"
	maxWidth := 80

	for _, line := range Wrap(input, testFace, maxWidth) {
		if w := MeasureWidth(testFace, line); w > maxWidth && strings.Contains(line, " ") {
			t.Fatalf("line %q measures %dpx, over budget %d", line, w, maxWidth)
		}
	}
}

func TestWrapIdempotent(t *testing.T) {
	input := "eine ziemlich lange zeile die sicher mehrfach umgebrochen werden muss"
	maxWidth := 90

	wrapped := Wrap(input, testFace, maxWidth)
	for _, line := range wrapped {
		again := Wrap(line, testFace, maxWidth)
		if len(again) != 1 || again[0] != line {
			t.Fatalf("re-wrapping %q gave %q, want it unchanged", line, again)
		}
	}
}

func TestMeasureWidth(t *testing.T) {
	if got := MeasureWidth(testFace, ""); got != 0 {
		t.Fatalf("MeasureWidth(\"\") = %d, want 0", got)
	}
	if got := MeasureWidth(testFace, "abc"); got != 21 {
		t.Fatalf("MeasureWidth(\"abc\") = %d, want 21", got)
	}
}
