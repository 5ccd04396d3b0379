package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/skratchdot/open-golang/open"

	"github.com/five82/strip/internal/comic"
	"github.com/five82/strip/internal/logtail"
	"github.com/five82/strip/internal/nav"
	"github.com/five82/strip/internal/prefs"
	"github.com/five82/strip/internal/state"
	"github.com/five82/strip/internal/view"
)

const logTailLines = 500

// Navigator is the navigation surface the UI drives.
type Navigator interface {
	Init(ctx context.Context) error
	Goto(ctx context.Context, id int) error
	Next(ctx context.Context) error
	Prev(ctx context.Context) error
	First(ctx context.Context) error
	Last(ctx context.Context) error
	Random(ctx context.Context) error
	RefreshLatest(ctx context.Context) (bool, error)
	Cursor() state.Cursor
	Status() state.Snapshot
}

// ImageLoader renders comic images for the preview pane.
type ImageLoader interface {
	Load(ctx context.Context, url string, width, maxRows int) (string, error)
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Navigator Navigator
	Presenter *Presenter  // attached to the program by Run
	Preview   ImageLoader // nil disables the image preview
	Prefs     prefs.Prefs
	PrefsPath string
	LogPath   string
	Session   string // log session id shown in the log overlay
	Logger    *zerolog.Logger
	OpenURL   func(string) error // nil uses the system browser
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	nav       Navigator
	loader    ImageLoader
	keys      keyMap
	log       zerolog.Logger
	openURL   func(string) error
	prefs     prefs.Prefs
	prefsPath string
	logPath   string
	session   string

	// UI state
	theme    Theme
	width    int
	height   int
	ready    bool
	showHelp bool
	showLogs bool

	// Comic state, as last presented by the navigator
	view    view.State
	spinner spinner.Model

	// Jump entry
	jump    textinput.Model
	jumping bool
	jumpErr string

	// Footer status line
	status       string
	statusDanger bool

	// Image preview
	previewOn  bool
	previewURL string
	previewArt string
	previewErr string

	// Log overlay
	logViewport viewport.Model
	logErr      string
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	log := zerolog.Nop()
	if opts.Logger != nil {
		log = opts.Logger.With().Str("component", "ui").Logger()
	}

	openURL := opts.OpenURL
	if openURL == nil {
		openURL = open.Run
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	userPrefs := opts.Prefs
	if userPrefs.Theme == "" {
		userPrefs.Theme = prefs.Default().Theme
	}

	jump := textinput.New()
	jump.Prompt = "Go to #"
	jump.Placeholder = "number"
	jump.CharLimit = 8
	jump.Width = 10

	return Model{
		ctx:       ctx,
		nav:       opts.Navigator,
		loader:    opts.Preview,
		keys:      DefaultKeyMap(),
		log:       log,
		openURL:   openURL,
		prefs:     userPrefs,
		prefsPath: prefsPath,
		logPath:   opts.LogPath,
		session:   opts.Session,
		theme:     GetTheme(userPrefs.Theme),
		view:      view.Initial(),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		jump:      jump,
		previewOn: opts.Preview != nil && !userPrefs.HidePreview,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.navCmd("init", m.nav.Init)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.logViewport = viewport.New(max(m.width-4, 10), max(m.height-6, 3))
		} else {
			m.logViewport.Width = max(m.width-4, 10)
			m.logViewport.Height = max(m.height-6, 3)
		}
		m.ready = true
		// Preview art depends on the terminal size.
		m.previewURL = ""
		return m, m.ensurePreview()

	case stateMsg:
		wasLoading := m.view.Loading
		m.view = view.State(msg)
		var cmds []tea.Cmd
		if m.view.Loading && !wasLoading {
			cmds = append(cmds, m.spinner.Tick)
		}
		if cmd := m.ensurePreview(); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case spinner.TickMsg:
		if !m.view.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case navDoneMsg:
		m.handleNavDone(msg)
		return m, nil

	case refreshDoneMsg:
		m.handleRefreshDone(msg)
		return m, nil

	case previewMsg:
		if msg.url != m.previewURL {
			return m, nil
		}
		m.previewArt = msg.art
		m.previewErr = ""
		if msg.err != nil {
			m.previewErr = msg.err.Error()
			m.log.Warn().Err(msg.err).Str("url", msg.url).Msg("image preview failed")
		}
		return m, nil

	case openDoneMsg:
		if msg.err != nil {
			m.setStatus("Could not open a browser", true)
			m.log.Warn().Err(msg.err).Str("url", msg.url).Msg("open browser failed")
		} else {
			m.setStatus("Opened image in browser", false)
		}
		return m, nil

	case logsMsg:
		m.logErr = ""
		if msg.err != nil {
			m.logErr = msg.err.Error()
			return m, nil
		}
		m.logViewport.SetContent(strings.Join(msg.lines, "\n"))
		m.logViewport.GotoBottom()
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return view.Placeholder
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.showLogs {
		return m.renderLogs()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}
	if m.jumping {
		return m.handleJumpKey(msg)
	}
	if m.showLogs {
		return m.handleLogsKey(msg)
	}

	m.status = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		return m, m.navCmd("prev", m.nav.Prev)

	case key.Matches(msg, m.keys.Next):
		return m, m.navCmd("next", m.nav.Next)

	case key.Matches(msg, m.keys.First):
		return m, m.navCmd("first", m.nav.First)

	case key.Matches(msg, m.keys.Last):
		return m, m.navCmd("last", m.nav.Last)

	case key.Matches(msg, m.keys.Random):
		return m, m.navCmd("random", m.nav.Random)

	case key.Matches(msg, m.keys.Jump):
		m.jumping = true
		m.jumpErr = ""
		m.jump.SetValue("")
		return m, m.jump.Focus()

	case key.Matches(msg, m.keys.Refresh):
		m.setStatus("Checking for new comics...", false)
		return m, m.refreshCmd()

	case key.Matches(msg, m.keys.Open):
		if m.view.ImageURL == "" {
			m.setStatus("No image to open", true)
			return m, nil
		}
		return m, m.openCmd(m.view.ImageURL)

	case key.Matches(msg, m.keys.TogglePreview):
		if m.loader == nil {
			m.setStatus("Image preview is disabled in config", true)
			return m, nil
		}
		m.previewOn = !m.previewOn
		m.prefs.HidePreview = !m.previewOn
		m.savePrefs()
		if m.previewOn {
			m.setStatus("Image preview on", false)
			m.previewURL = ""
			return m, m.ensurePreview()
		}
		m.setStatus("Image preview off", false)
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Logs):
		m.showLogs = true
		return m, m.loadLogsCmd()
	}

	return m, nil
}

// handleJumpKey processes keyboard input while the jump entry is open.
func (m Model) handleJumpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		m.closeJump()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		id, problem := parseJump(m.jump.Value(), m.nav.Cursor().Max)
		if problem != "" {
			m.jumpErr = problem
			return m, nil
		}
		m.closeJump()
		nv := m.nav
		return m, m.navCmd("goto", func(ctx context.Context) error {
			return nv.Goto(ctx, id)
		})
	}

	var cmd tea.Cmd
	m.jump, cmd = m.jump.Update(msg)
	m.jumpErr = ""
	return m, cmd
}

// handleLogsKey processes keyboard input for the log overlay.
func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Logs), key.Matches(msg, m.keys.Quit):
		m.showLogs = false
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadLogsCmd()
	}
	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

func (m *Model) closeJump() {
	m.jumping = false
	m.jumpErr = ""
	m.jump.SetValue("")
	m.jump.Blur()
}

func (m *Model) handleNavDone(msg navDoneMsg) {
	switch {
	case msg.err == nil:
	case errors.Is(msg.err, nav.ErrSuperseded), errors.Is(msg.err, nav.ErrOutOfRange):
		// The navigator already presented the outcome.
	case errors.Is(msg.err, nav.ErrNotInitialized):
		m.setStatus("Waiting for the latest comic. Press R to retry", true)
	default:
		if msg.op == "init" {
			m.setStatus("Could not load the latest comic. Press R to retry", true)
		}
	}
}

func (m *Model) handleRefreshDone(msg refreshDoneMsg) {
	st := msg.status
	switch {
	case msg.err != nil:
		text := view.GenericError
		if st.ConsecutiveFailures > 1 {
			text = fmt.Sprintf("%s (%s error, %d in a row)", text, comic.Kind(st.LastError), st.ConsecutiveFailures)
		}
		m.setStatus(text, true)
	case msg.raised:
		m.setStatus(fmt.Sprintf("Latest comic is now #%d", st.Cursor.Max), false)
	default:
		text := fmt.Sprintf("Up to date, latest is #%d", st.Cursor.Max)
		if !st.LastUpdated.IsZero() {
			text += " (checked " + st.LastUpdated.Format("15:04:05") + ")"
		}
		m.setStatus(text, false)
	}
}

func (m *Model) setStatus(text string, danger bool) {
	m.status = text
	m.statusDanger = danger
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.log.Warn().Err(err).Str("path", m.prefsPath).Msg("save prefs failed")
	}
}

// ensurePreview starts a preview render for the displayed image when one is
// needed and not already under way.
func (m *Model) ensurePreview() tea.Cmd {
	if !m.ready || !m.previewOn || m.loader == nil {
		return nil
	}
	url := m.view.ImageURL
	if url == "" || url == m.previewURL {
		return nil
	}
	m.previewURL = url
	m.previewArt = ""
	m.previewErr = ""
	width, rows := m.previewSize()
	loader, ctx := m.loader, m.ctx
	return func() tea.Msg {
		art, err := loader.Load(ctx, url, width, rows)
		return previewMsg{url: url, art: art, err: err}
	}
}

// previewSize leaves room for the header, the title block, the alt text and the footer.
func (m Model) previewSize() (int, int) {
	return max(m.width-4, 10), max(m.height-12, 4)
}

// parseJump validates jump input against [1, latest]. It returns a user-facing
// problem text when the input cannot be used.
func parseJump(input string, latest int) (int, string) {
	if latest < 1 {
		return 0, "Still loading the latest comic"
	}
	trimmed := strings.TrimPrefix(strings.TrimSpace(input), "#")
	id, err := strconv.Atoi(strings.TrimSpace(trimmed))
	if err != nil || id < 1 || id > latest {
		return 0, nav.RangeMessage(latest)
	}
	return id, ""
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	header := m.renderHeader()
	bar := m.renderCommandBar()
	footer := m.renderFooter()

	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(bar) - lipgloss.Height(footer)
	body := lipgloss.NewStyle().
		Width(m.width).
		Height(max(bodyHeight, 1)).
		MaxHeight(max(bodyHeight, 1)).
		Render(m.renderComic())

	return lipgloss.JoinVertical(lipgloss.Left, header, bar, body, footer)
}

// Messages

type stateMsg view.State

type navDoneMsg struct {
	op  string
	err error
}

type refreshDoneMsg struct {
	raised bool
	status state.Snapshot
	err    error
}

type previewMsg struct {
	url string
	art string
	err error
}

type openDoneMsg struct {
	url string
	err error
}

type logsMsg struct {
	lines []string
	err   error
}

// Commands

func (m Model) navCmd(op string, fn func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return navDoneMsg{op: op, err: fn(ctx)}
	}
}

func (m Model) refreshCmd() tea.Cmd {
	ctx, nv := m.ctx, m.nav
	return func() tea.Msg {
		raised, err := nv.RefreshLatest(ctx)
		return refreshDoneMsg{raised: raised, status: nv.Status(), err: err}
	}
}

func (m Model) openCmd(url string) tea.Cmd {
	openURL := m.openURL
	return func() tea.Msg {
		return openDoneMsg{url: url, err: openURL(url)}
	}
}

func (m Model) loadLogsCmd() tea.Cmd {
	path := m.logPath
	return func() tea.Msg {
		if path == "" {
			return logsMsg{err: errors.New("file logging is disabled")}
		}
		raw, err := logtail.Read(path, logTailLines)
		if err != nil {
			return logsMsg{err: err}
		}
		lines := make([]string, 0, len(raw))
		for _, line := range raw {
			lines = append(lines, logtail.Format(logtail.Parse(line)))
		}
		return logsMsg{lines: lines}
	}
}

// Run starts the Bubble Tea program and blocks until it exits. Cancelling
// the context ends the program without an error.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
		opts.Context = ctx
	}
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if opts.Presenter != nil {
		opts.Presenter.Attach(p)
		defer opts.Presenter.Attach(nil)
	}
	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
