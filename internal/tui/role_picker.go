package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// roleItem is one option of the role selector; role "" is "any role".
type roleItem struct {
	role string
}

func (i roleItem) FilterValue() string { return i.role }

func (i roleItem) label() string {
	if i.role == "" {
		return "Any role"
	}
	return i.role
}

type roleItemDelegate struct {
	normal   lipgloss.Style
	selected lipgloss.Style
}

func newRoleItemDelegate() roleItemDelegate {
	return roleItemDelegate{
		normal: lipgloss.NewStyle().Foreground(colorSurfaceFg),
		selected: lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true),
	}
}

func (d roleItemDelegate) Height() int                             { return 1 }
func (d roleItemDelegate) Spacing() int                            { return 0 }
func (d roleItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d roleItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(roleItem)
	if !ok {
		return
	}
	st := d.normal
	if index == m.Index() {
		st = d.selected
	}
	fmt.Fprint(w, st.Render(padOrCut(" "+it.label(), m.Width())))
}

func newRolePicker() list.Model {
	l := list.New(nil, newRoleItemDelegate(), 32, 10)
	l.Title = "Filter by role"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	// The app handles esc itself.
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	return l
}

// setRoleOptions rebuilds the options ("Any role" first) and selects current.
func setRoleOptions(l *list.Model, roles []string, current string) {
	items := make([]list.Item, 0, len(roles)+1)
	items = append(items, roleItem{})
	sel := 0
	for i, r := range roles {
		items = append(items, roleItem{role: r})
		if r == current {
			sel = i + 1
		}
	}
	l.SetItems(items)
	l.SetHeight(min(len(items), 12))
	l.Select(sel)
}

func selectedRole(l list.Model) (string, bool) {
	it, ok := l.SelectedItem().(roleItem)
	if !ok {
		return "", false
	}
	return it.role, true
}
