package tui

import (
	"context"
	"fmt"
	"strings"

	"roster-cli/internal/directory"
	"roster-cli/internal/model"
	"roster-cli/internal/query"
	"roster-cli/internal/store"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

const (
	// Fixed rows above the board: title, search, filters, notice, spacer.
	chromeTopLines = 5
	// Lines of the detail box that are not story text.
	modalChromeLines = 11
	rolePickerW      = 40
)

type Options struct {
	Store  *store.Store
	Engine query.Engine
	// Glyphs is "unicode" or "ascii".
	Glyphs string
	// Watch reloads a file-backed source when it changes.
	Watch  bool
	Logger *zap.Logger
}

type loadedMsg struct {
	people []model.Person
	err    error
}

type reloadMsg struct{}

type appModel struct {
	ctx     context.Context
	store   *store.Store
	ctrl    *directory.Controller
	board   *board
	watcher *store.Watcher
	logger  *zap.Logger
	glyphs  glyphSet
	keys    keyMap

	width  int
	height int

	search        textinput.Model
	searchFocused bool

	picker  list.Model
	picking bool

	story     viewport.Model
	storyOpen bool
	storyFor  int

	help help.Model
}

func newAppModel(ctx context.Context, opts Options) appModel {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	gs := parseGlyphSet(opts.Glyphs)
	b := newBoard(gs)

	m := appModel{
		ctx:    ctx,
		store:  opts.Store,
		ctrl:   directory.NewController(opts.Store, opts.Engine, b, logger),
		board:  b,
		logger: logger,
		glyphs: gs,
		keys:   defaultKeyMap(),
		width:  80,
		height: 24,
		picker: newRolePicker(),
		story:  viewport.New(40, modalMinStory),
		help:   help.New(),
	}

	m.search = textinput.New()
	m.search.Prompt = gs.search() + " "
	m.search.Placeholder = "Search by name"
	m.search.CharLimit = 200
	m.search.Width = 40

	m.resize(m.width, m.height)
	return m
}

func (m appModel) Init() tea.Cmd {
	cmds := []tea.Cmd{loadPeopleCmd(m.ctx, m.store.Source())}
	if m.watcher != nil {
		cmds = append(cmds, waitForReload(m.watcher))
	}
	return tea.Batch(cmds...)
}

func loadPeopleCmd(ctx context.Context, src store.Source) tea.Cmd {
	return func() tea.Msg {
		people, err := store.Load(ctx, src)
		return loadedMsg{people: people, err: err}
	}
}

func waitForReload(w *store.Watcher) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-w.Reloads(); !ok {
			return nil
		}
		return reloadMsg{}
	}
}

func (m *appModel) dispatch(ev directory.Event) {
	m.ctrl.Dispatch(ev)
	m.syncStory()
}

// syncStory keeps the story viewport in step with the modal record.
func (m *appModel) syncStory() {
	p, ok := m.ctrl.Modal().Record()
	if !ok {
		m.storyOpen = false
		return
	}
	if m.storyOpen && m.storyFor == p.ID {
		return
	}
	m.storyOpen = true
	m.storyFor = p.ID
	m.layoutStory(p)
	m.story.GotoTop()
}

func (m *appModel) layoutStory(p model.Person) {
	bodyW := modalBodyWidth(m.width)
	content := renderMarkdown(p.Story, bodyW)
	if content == "" {
		content = styleMuted().Render("(no story)")
	}
	maxH := max(modalMinStory, m.height-modalChromeLines-2)
	m.story.Width = bodyW
	m.story.Height = min(maxH, max(modalMinStory, lipgloss.Height(content)))
	m.story.SetContent(content)
}

func (m *appModel) resize(w, h int) {
	m.width = w
	m.height = h
	m.search.Width = max(10, min(60, w-4))
	m.picker.SetWidth(modalBodyWidth(min(w, rolePickerW)))
	m.help.Width = w
	m.layoutBoard()
	if p, ok := m.ctrl.Modal().Record(); ok {
		m.layoutStory(p)
	}
}

// footerLines is the height of the help footer, which grows when full help
// is shown.
func (m appModel) footerLines() int {
	return lipgloss.Height(m.help.View(m.keys))
}

func (m appModel) boardHeight() int {
	return max(1, m.height-chromeTopLines-m.footerLines())
}

// layoutBoard fits the board between the header and the footer.
func (m *appModel) layoutBoard() {
	m.board.SetSize(m.width, m.boardHeight())
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case loadedMsg:
		m.dispatch(directory.DataLoaded{Records: msg.people, Err: msg.err})
		return m, nil

	case reloadMsg:
		m.logger.Info("reloading people", zap.String("source", m.store.Source().String()))
		return m, tea.Batch(loadPeopleCmd(m.ctx, m.store.Source()), waitForReload(m.watcher))

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch {
		case m.ctrl.Modal().IsOpen():
			return m.updateModal(msg)
		case m.picking:
			return m.updatePicker(msg)
		case m.searchFocused:
			return m.updateSearch(msg)
		default:
			return m.updateBoard(msg)
		}
	}

	if m.searchFocused {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.dispatch(directory.EscapePressed{})
		return m, nil
	case key.Matches(msg, m.keys.Close):
		m.dispatch(directory.CloseRequested{})
		return m, nil
	}
	var cmd tea.Cmd
	m.story, cmd = m.story.Update(msg)
	return m, cmd
}

func (m appModel) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.picking = false
		return m, nil
	case key.Matches(msg, m.keys.Open):
		m.picking = false
		if role, ok := selectedRole(m.picker); ok {
			m.dispatch(directory.RoleChanged{Role: role})
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

func (m appModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter, tea.KeyTab:
		m.searchFocused = false
		m.search.Blur()
		return m, nil
	}
	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if v := m.search.Value(); v != before {
		m.dispatch(directory.SearchChanged{Text: v})
	}
	return m, cmd
}

func (m appModel) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Escape):
		m.dispatch(directory.EscapePressed{})
	case key.Matches(msg, m.keys.Search):
		m.searchFocused = true
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.Role):
		setRoleOptions(&m.picker, m.board.Roles(), m.ctrl.State().Role)
		m.picking = true
	case key.Matches(msg, m.keys.ClearRole):
		m.dispatch(directory.RoleChanged{Role: ""})
	case key.Matches(msg, m.keys.Sort):
		m.dispatch(directory.SortChanged{Order: m.ctrl.State().Sort.Toggle()})
	case key.Matches(msg, m.keys.View):
		m.dispatch(directory.ViewToggled{})
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layoutBoard()
	case key.Matches(msg, m.keys.Open):
		if id, ok := m.board.Selected(); ok {
			m.dispatch(directory.CardActivated{ID: id})
		}
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(0, -1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(0, 1)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1, 0)
	}
	return m, nil
}

func (m *appModel) moveCursor(dx, dy int) {
	if m.ctrl.Modal().ScrollLocked() {
		return
	}
	m.board.Move(dx, dy)
}

func (m appModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	modal := m.ctrl.Modal()
	switch {
	case modal.IsOpen():
		if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
			var cmd tea.Cmd
			m.story, cmd = m.story.Update(msg)
			return m, cmd
		}
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			_, box := placeOverlay(m.width, m.height, m.detailBox())
			if !box.contains(msg.X, msg.Y) {
				m.dispatch(directory.OverlayClicked{})
			}
		}
		return m, nil

	case m.picking:
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.moveCursor(0, -1)
	case tea.MouseButtonWheelDown:
		m.moveCursor(0, 1)
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			break
		}
		if id, ok := m.board.HitTest(msg.X, msg.Y-chromeTopLines); ok {
			m.dispatch(directory.CardActivated{ID: id})
		}
	}
	return m, nil
}

func (m appModel) View() string {
	if m.ctrl.Modal().IsOpen() {
		out, _ := placeOverlay(m.width, m.height, m.detailBox())
		return out
	}
	if m.picking {
		box := renderModalBox(min(m.width, rolePickerW), "Filter by role", m.picker.View())
		out, _ := placeOverlay(m.width, m.height, box)
		return out
	}
	return m.viewMain()
}

func (m appModel) detailBox() string {
	p, _ := m.ctrl.Modal().Record()
	body := renderDetailBody(p, m.story.View(), modalBodyWidth(m.width), m.glyphs)
	return renderModalBox(m.width, p.Name, body)
}

func (m appModel) viewMain() string {
	st := m.ctrl.State()

	title := lipgloss.NewStyle().Bold(true).Render("People")
	count := styleMuted().Render(fmt.Sprintf("  %d of %d", m.board.Len(), m.store.Len()))
	viewIcon := m.glyphs.grid() + " grid"
	if st.View == model.ViewList {
		viewIcon = m.glyphs.list() + " list"
	}
	header := title + count
	if gap := m.width - lipgloss.Width(header) - lipgloss.Width(viewIcon); gap > 0 {
		header += strings.Repeat(" ", gap) + viewIcon
	}

	role := st.Role
	if role == "" {
		role = "Any"
	}
	order := m.glyphs.sortAsc()
	if st.Sort == model.SortNameDesc {
		order = m.glyphs.sortDesc()
	}
	filters := styleMuted().Render("role: ") + role + styleMuted().Render("   sort: ") + order

	notice := ""
	switch {
	case !m.ctrl.Loaded():
		notice = styleMuted().Render("Loading people" + m.glyphs.ellipsis())
	case m.ctrl.LoadErr() != nil:
		notice = styleNotice().Render(truncateToWidth("Could not load people: "+m.ctrl.LoadErr().Error(), m.width, m.glyphs))
	}

	boardH := m.boardHeight()
	boardLines := []string{}
	if m.ctrl.Loaded() {
		boardLines = strings.Split(m.board.View(), "\n")
	}
	for len(boardLines) < boardH {
		boardLines = append(boardLines, "")
	}
	boardLines = boardLines[:boardH]

	lines := []string{header, m.search.View(), filters, notice, ""}
	lines = append(lines, boardLines...)
	lines = append(lines, m.help.View(m.keys))
	return strings.Join(lines, "\n")
}

// Run starts the interactive directory and blocks until the user quits.
func Run(ctx context.Context, opts Options) error {
	applyThemePreference()
	applyColorProfilePreference()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := newAppModel(ctx, opts)
	if opts.Watch {
		w, err := store.NewWatcher(opts.Store.Source(), m.logger)
		if err != nil {
			return err
		}
		defer w.Close()
		go w.Run(ctx)
		m.watcher = w
	}

	_, err := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	).Run()
	return err
}
