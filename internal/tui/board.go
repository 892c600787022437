package tui

import (
	"slices"
	"strings"
	"unicode"

	"roster-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const (
	gridCardW = 30 // including border
	gridGapW  = 1
	gridCardH = 6 // 4 inner lines + border top/bottom
	listRowH  = 1
)

// card is the rendered form of one person. It keeps only the id as the way
// back to the record.
type card struct {
	id       int
	name     string
	role     string
	image    string
	initials string
}

func newCard(p model.Person) card {
	return card{
		id:       p.ID,
		name:     p.Name,
		role:     p.Role,
		image:    p.Image,
		initials: initials(p.Name),
	}
}

// zone is a clickable card rectangle relative to the board origin.
type zone struct {
	id         int
	x, y, w, h int
}

func (z zone) contains(x, y int) bool {
	return x >= z.x && x < z.x+z.w && y >= z.y && y < z.y+z.h
}

// board draws the card collection. Each Render discards every card and
// every click zone from the previous one.
type board struct {
	cards  []card
	roles  []string
	view   model.ViewMode
	glyphs glyphSet

	cursor int
	offset int // first visible row

	width  int
	height int
}

func newBoard(gs glyphSet) *board {
	return &board{view: model.ViewGrid, glyphs: gs, width: 80, height: 20}
}

func (b *board) Render(people []model.Person, view model.ViewMode) {
	cards := make([]card, 0, len(people))
	for _, p := range people {
		cards = append(cards, newCard(p))
	}
	b.cards = cards
	b.view = view
	b.ensureVisible()
}

func (b *board) SetView(view model.ViewMode) {
	b.view = view
	b.ensureVisible()
}

func (b *board) SetRoles(roles []string) {
	b.roles = slices.Clone(roles)
}

// Roles returns the role options from the last SetRoles.
func (b *board) Roles() []string { return slices.Clone(b.roles) }

func (b *board) SetSize(w, h int) {
	b.width = max(w, 1)
	b.height = max(h, 1)
	b.ensureVisible()
}

func (b *board) Len() int { return len(b.cards) }

// IDs returns the card ids in display order.
func (b *board) IDs() []int {
	ids := make([]int, 0, len(b.cards))
	for _, c := range b.cards {
		ids = append(ids, c.id)
	}
	return ids
}

func (b *board) Selected() (int, bool) {
	if b.cursor < 0 || b.cursor >= len(b.cards) {
		return 0, false
	}
	return b.cards[b.cursor].id, true
}

func (b *board) columns() int {
	if b.view == model.ViewList {
		return 1
	}
	return max(1, (b.width+gridGapW)/(gridCardW+gridGapW))
}

func (b *board) rowHeight() int {
	if b.view == model.ViewList {
		return listRowH
	}
	return gridCardH
}

func (b *board) visibleRows() int {
	return max(1, b.height/b.rowHeight())
}

func (b *board) totalRows() int {
	cols := b.columns()
	return (len(b.cards) + cols - 1) / cols
}

// Move shifts the cursor by dx cards and dy rows.
func (b *board) Move(dx, dy int) {
	if len(b.cards) == 0 {
		return
	}
	if b.view == model.ViewList {
		dx = 0
	}
	b.cursor += dx + dy*b.columns()
	b.ensureVisible()
}

func (b *board) ensureVisible() {
	if b.cursor >= len(b.cards) {
		b.cursor = len(b.cards) - 1
	}
	if b.cursor < 0 {
		b.cursor = 0
	}
	row := b.cursor / b.columns()
	vis := b.visibleRows()
	if row < b.offset {
		b.offset = row
	}
	if row >= b.offset+vis {
		b.offset = row - vis + 1
	}
	b.offset = min(b.offset, max(0, b.totalRows()-vis))
	b.offset = max(b.offset, 0)
}

// HitTest maps a board-relative cell to the card drawn there.
func (b *board) HitTest(x, y int) (int, bool) {
	_, zones := b.layout()
	for _, z := range zones {
		if z.contains(x, y) {
			return z.id, true
		}
	}
	return 0, false
}

func (b *board) View() string {
	lines, _ := b.layout()
	return strings.Join(lines, "\n")
}

func (b *board) layout() ([]string, []zone) {
	if len(b.cards) == 0 {
		return []string{styleMuted().Render("No people match.")}, nil
	}
	if b.view == model.ViewList {
		return b.layoutList()
	}
	return b.layoutGrid()
}

func (b *board) layoutGrid() ([]string, []zone) {
	cols := b.columns()
	last := min(b.totalRows(), b.offset+b.visibleRows())
	gap := strings.Repeat(" ", gridGapW)

	var lines []string
	var zones []zone
	for r := b.offset; r < last; r++ {
		parts := make([]string, 0, cols*2)
		for c := 0; c < cols; c++ {
			i := r*cols + c
			if i >= len(b.cards) {
				break
			}
			if c > 0 {
				parts = append(parts, gap)
			}
			parts = append(parts, b.renderGridCard(b.cards[i], i == b.cursor))
			zones = append(zones, zone{
				id: b.cards[i].id,
				x:  c * (gridCardW + gridGapW),
				y:  (r - b.offset) * gridCardH,
				w:  gridCardW,
				h:  gridCardH,
			})
		}
		row := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
		lines = append(lines, strings.Split(row, "\n")...)
	}
	return lines, zones
}

func (b *board) layoutList() ([]string, []zone) {
	last := min(len(b.cards), b.offset+b.visibleRows())

	var lines []string
	var zones []zone
	for i := b.offset; i < last; i++ {
		lines = append(lines, b.renderListRow(b.cards[i], i == b.cursor))
		zones = append(zones, zone{id: b.cards[i].id, x: 0, y: i - b.offset, w: b.width, h: listRowH})
	}
	return lines, zones
}

func (b *board) renderGridCard(c card, selected bool) string {
	border := colorCardBorder
	if selected {
		border = colorSelectedBdr
	}
	st := lipgloss.NewStyle().
		Width(gridCardW-2). // border excluded
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Foreground(colorSurfaceFg)
	innerW := gridCardW - 2 - st.GetHorizontalPadding()

	badge := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorAccentFg).
		Background(colorAccent).
		Render(" " + c.initials + " ")
	name := lipgloss.NewStyle().Bold(true).Render(truncateToWidth(c.name, innerW, b.glyphs))
	role := lipgloss.NewStyle().Foreground(colorCardMetaFg).Render(truncateToWidth(c.role, innerW, b.glyphs))
	image := styleMuted().Render(truncateToWidth(c.image, innerW, b.glyphs))

	return st.Render(strings.Join([]string{badge, name, role, image}, "\n"))
}

func (b *board) renderListRow(c card, selected bool) string {
	prefix := "  "
	if selected {
		prefix = b.glyphs.cursor() + " "
	}
	nameW := 24
	roleW := 18
	head := prefix + padOrCut("["+c.initials+"]", 5) + " " +
		padOrCut(truncateToWidth(c.name, nameW, b.glyphs), nameW) + "  " +
		padOrCut(truncateToWidth(c.role, roleW, b.glyphs), roleW) + "  "
	rest := max(0, b.width-xansi.StringWidth(head))
	line := head + truncateToWidth(c.image, rest, b.glyphs)
	line = padOrCut(line, b.width)

	if selected {
		return lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true).Render(line)
	}
	return line
}

func initials(name string) string {
	var out []rune
	for _, w := range strings.Fields(name) {
		r := []rune(w)[0]
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		out = append(out, unicode.ToUpper(r))
		if len(out) == 2 {
			break
		}
	}
	if len(out) == 0 {
		return "?"
	}
	return string(out)
}

func truncateToWidth(s string, w int, gs glyphSet) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
	if w <= 0 {
		return ""
	}
	if xansi.StringWidth(s) <= w {
		return s
	}
	tail := gs.ellipsis()
	tw := xansi.StringWidth(tail)
	if w <= tw {
		return xansi.Cut(tail, 0, w)
	}
	return xansi.Cut(s, 0, w-tw) + tail
}

func padOrCut(s string, w int) string {
	cur := xansi.StringWidth(s)
	switch {
	case cur < w:
		return s + strings.Repeat(" ", w-cur)
	case cur > w:
		return xansi.Cut(s, 0, w)
	default:
		return s
	}
}
