// Package ansi handles terminal escape code processing.
package ansi

import (
	"regexp"
	"strconv"
	"strings"
)

// Stripper removes terminal control sequences from raw output so the result
// is safe to show as small plain-text previews.
type Stripper struct {
	// Pattern to match ANSI escape codes
	ansiPattern *regexp.Regexp
	// Pattern for common control sequences
	controlPattern *regexp.Regexp
	// Cursor forward pattern (CSI n C) - used to preserve spacing
	cursorForwardPattern *regexp.Regexp
}

// NewStripper creates a new ANSI stripper.
func NewStripper() *Stripper {
	return &Stripper{
		// Matches ANSI escape sequences:
		// - CSI sequences: ESC[ followed by parameters and command
		// - OSC sequences: ESC] followed by text and BEL or ST
		// - DCS/SOS/PM/APC sequences terminated by ST
		// - Charset selection and keypad mode sequences
		ansiPattern: regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]|\x1b\][^\x07\x1b]*(?:\x07|\x1b\\)|\x1b[PX^_][^\x1b]*\x1b\\|\x1b[\(\)][AB012]|\x1b[>=]`),

		// Control characters that should be stripped, including any stray
		// escape byte left behind by a sequence form the pattern above does
		// not know (keeps newline and tab; carriage returns are resolved
		// separately so overwritten text drops)
		controlPattern: regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f\x7f]`),
		// Cursor forward (CSI n C) to preserve spacing
		// Example: ESC[4C means move cursor forward 4 cells
		cursorForwardPattern: regexp.MustCompile(`\x1b\[(\d*)C`),
	}
}

// Strip removes all ANSI escape codes, control characters, carriage returns
// and decorative glyphs from text.
func (p *Stripper) Strip(text string) string {
	// Replace cursor-forward sequences with spaces before stripping
	text = p.cursorForwardPattern.ReplaceAllStringFunc(text, func(match string) string {
		sub := p.cursorForwardPattern.FindStringSubmatch(match)
		count := 1
		if len(sub) > 1 && sub[1] != "" {
			if n, err := strconv.Atoi(sub[1]); err == nil && n > 0 {
				// Clamp to avoid pathological allocations
				if n > 200 {
					n = 200
				}
				count = n
			}
		}
		return strings.Repeat(" ", count)
	})
	// Remove ANSI escape sequences
	result := p.ansiPattern.ReplaceAllString(text, "")
	// Remove control characters
	result = p.controlPattern.ReplaceAllString(result, "")
	// Resolve carriage returns: keep only what the cursor would leave visible
	result = resolveCarriageReturns(result)
	// Drop glyphs that render poorly at thumbnail size
	return dropDecorativeRunes(result)
}

// resolveCarriageReturns emulates CR-overwrite within each line by keeping
// only the text after the last carriage return.
func resolveCarriageReturns(text string) string {
	if !strings.ContainsRune(text, '\r') {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if idx := strings.LastIndexByte(line, '\r'); idx >= 0 {
			lines[i] = line[idx+1:]
		}
	}
	return strings.Join(lines, "\n")
}

// dropDecorativeRunes removes spinner/box-drawing style glyph ranges.
func dropDecorativeRunes(text string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 0x2500 && r <= 0x257f: // box drawing
			return -1
		case r >= 0x2580 && r <= 0x259f: // block elements
			return -1
		case r >= 0x2800 && r <= 0x28ff: // braille spinners
			return -1
		case r >= 0xe000 && r <= 0xf8ff: // private use (nerd font icons)
			return -1
		default:
			return r
		}
	}, text)
}

// IncompleteSuffix returns the byte offset of a trailing escape sequence
// that has no terminator yet, or -1 when the text ends cleanly. Callers
// streaming chunked output hold the suffix back and prepend it to the next
// chunk, since reads split sequences at arbitrary byte boundaries.
func IncompleteSuffix(text string) int {
	i := strings.LastIndexByte(text, 0x1b)
	if i < 0 {
		return -1
	}
	rest := text[i:]
	if len(rest) == 1 {
		// Lone trailing ESC
		return i
	}
	switch rest[1] {
	case '[':
		// CSI: complete once a final byte in 0x40-0x7e appears
		for j := 2; j < len(rest); j++ {
			if rest[j] >= 0x40 && rest[j] <= 0x7e {
				return -1
			}
		}
		return i
	case ']':
		// OSC: complete on BEL. An ST terminator would itself hold the
		// last ESC, so reaching here means BEL is the only closer to find.
		if strings.IndexByte(rest[2:], 0x07) >= 0 {
			return -1
		}
		return i
	case 'P', 'X', '^', '_':
		// DCS/SOS/PM/APC close with ST; an open one still owns the last ESC.
		return i
	case '(', ')':
		// Charset selection carries one designator byte
		if len(rest) < 3 {
			return i
		}
		return -1
	case '\\':
		// ST closing an earlier sequence
		return -1
	default:
		// Two-byte escape, already complete
		return -1
	}
}

// IsEmptyLine returns true if the line contains only whitespace or control codes.
func (p *Stripper) IsEmptyLine(line string) bool {
	return strings.TrimSpace(p.Strip(line)) == ""
}
