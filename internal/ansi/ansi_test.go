package ansi

import (
	"testing"
)

func TestStrip_ColorCodes(t *testing.T) {
	p := NewStripper()

	input := "\x1b[31mred\x1b[0m plain \x1b[1;32;40mgreen\x1b[0m"
	got := p.Strip(input)
	want := "red plain green"
	if got != want {
		t.Errorf("Strip() = %q, want %q", got, want)
	}
}

func TestStrip_OSCSequences(t *testing.T) {
	p := NewStripper()

	// Window title set via OSC, BEL-terminated
	input := "\x1b]0;my title\x07prompt$ "
	got := p.Strip(input)
	if got != "prompt$ " {
		t.Errorf("Strip() = %q, want %q", got, "prompt$ ")
	}

	// ST-terminated OSC
	input = "\x1b]8;;http://example.com\x1b\\link"
	got = p.Strip(input)
	if got != "link" {
		t.Errorf("Strip() = %q, want %q", got, "link")
	}
}

func TestStrip_CursorForwardBecomesSpaces(t *testing.T) {
	p := NewStripper()

	got := p.Strip("a\x1b[4Cb")
	if got != "a    b" {
		t.Errorf("Strip() = %q, want %q", got, "a    b")
	}

	// No count means one cell
	got = p.Strip("a\x1b[Cb")
	if got != "a b" {
		t.Errorf("Strip() = %q, want %q", got, "a b")
	}
}

func TestStrip_CarriageReturnOverwrite(t *testing.T) {
	p := NewStripper()

	// Progress-bar style updates keep only the final state per line
	got := p.Strip("downloading 10%\rdownloading 99%")
	if got != "downloading 99%" {
		t.Errorf("Strip() = %q, want %q", got, "downloading 99%")
	}

	// Newlines survive CR resolution
	got = p.Strip("line1\r\nline2")
	if got != "line1\nline2" {
		t.Errorf("Strip() = %q, want %q", got, "line1\nline2")
	}
}

func TestStrip_DecorativeGlyphs(t *testing.T) {
	p := NewStripper()

	// Box drawing, blocks and braille spinners vanish; text stays
	got := p.Strip("─│┌┐█▀⠋⠙ working")
	if got != " working" {
		t.Errorf("Strip() = %q, want %q", got, " working")
	}
}

func TestStrip_ControlCharacters(t *testing.T) {
	p := NewStripper()

	got := p.Strip("a\x00b\x08c\x07d")
	if got != "abcd" {
		t.Errorf("Strip() = %q, want %q", got, "abcd")
	}

	// Tab and newline are preserved
	got = p.Strip("a\tb\nc")
	if got != "a\tb\nc" {
		t.Errorf("Strip() = %q, want %q", got, "a\tb\nc")
	}
}

func TestStrip_PlainTextUntouched(t *testing.T) {
	p := NewStripper()

	input := "ls -la\ntotal 42\ndrwxr-xr-x  5 user staff"
	if got := p.Strip(input); got != input {
		t.Errorf("Strip() modified plain text: %q", got)
	}
}

func TestStrip_StrayEscapeByte(t *testing.T) {
	p := NewStripper()

	// An escape byte from a form the sequence pattern does not know must
	// still never reach the preview.
	got := p.Strip("before\x1bafter")
	if got != "beforeafter" {
		t.Errorf("Strip() = %q, want %q", got, "beforeafter")
	}
}

func TestIncompleteSuffix(t *testing.T) {
	cases := []struct {
		name string
		text string
		want int
	}{
		{"no escape", "plain text", -1},
		{"complete csi", "\x1b[31mred", -1},
		{"csi cut mid-parameter", "red\x1b[3", 3},
		{"lone trailing escape", "done\x1b", 4},
		{"complete osc bel", "\x1b]0;title\x07x", -1},
		{"complete osc st", "\x1b]8;;url\x1b\\x", -1},
		{"open osc", "x\x1b]0;titl", 1},
		{"open dcs", "\x1bPdata", 0},
		{"charset cut short", "x\x1b(", 1},
		{"complete charset", "x\x1b(B", -1},
		{"two byte escape", "x\x1b=", -1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := IncompleteSuffix(c.text); got != c.want {
				t.Errorf("IncompleteSuffix(%q) = %d, want %d", c.text, got, c.want)
			}
		})
	}
}

func TestIsEmptyLine(t *testing.T) {
	p := NewStripper()

	cases := []struct {
		line string
		want bool
	}{
		{"", true},
		{"   ", true},
		{"\x1b[0m", true},
		{"\x1b[31m \x1b[0m", true},
		{"x", false},
		{"\x1b[31mx\x1b[0m", false},
	}
	for _, c := range cases {
		if got := p.IsEmptyLine(c.line); got != c.want {
			t.Errorf("IsEmptyLine(%q) = %v, want %v", c.line, got, c.want)
		}
	}
}
