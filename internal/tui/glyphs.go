package tui

import "strings"

// Terminals can't change the user's font, so affordances come in a Unicode
// and an ASCII flavour.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

func parseGlyphSet(s string) glyphSet {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ascii":
		return glyphSetASCII
	default:
		return glyphSetUnicode
	}
}

func (gs glyphSet) grid() string {
	if gs == glyphSetASCII {
		return "[#]"
	}
	return "▦"
}

func (gs glyphSet) list() string {
	if gs == glyphSetASCII {
		return "[=]"
	}
	return "☰"
}

func (gs glyphSet) search() string {
	if gs == glyphSetASCII {
		return ">"
	}
	return "⌕"
}

func (gs glyphSet) sortAsc() string {
	if gs == glyphSetASCII {
		return "A-Z"
	}
	return "A→Z"
}

func (gs glyphSet) sortDesc() string {
	if gs == glyphSetASCII {
		return "Z-A"
	}
	return "Z→A"
}

func (gs glyphSet) cursor() string {
	if gs == glyphSetASCII {
		return ">"
	}
	return "▸"
}

func (gs glyphSet) ellipsis() string {
	if gs == glyphSetASCII {
		return "..."
	}
	return "…"
}

func (gs glyphSet) scroll() string {
	if gs == glyphSetASCII {
		return "up/down"
	}
	return "↑/↓"
}
