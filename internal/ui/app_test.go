package ui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/strip/internal/comic"
	"github.com/five82/strip/internal/nav"
	"github.com/five82/strip/internal/prefs"
	"github.com/five82/strip/internal/state"
	"github.com/five82/strip/internal/view"
)

type fakeNav struct {
	mu     sync.Mutex
	cursor state.Cursor
	status state.Snapshot
	calls  []string
	gotoID int
	err    error
}

func (f *fakeNav) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return f.err
}

func (f *fakeNav) Init(context.Context) error   { return f.record("init") }
func (f *fakeNav) Next(context.Context) error   { return f.record("next") }
func (f *fakeNav) Prev(context.Context) error   { return f.record("prev") }
func (f *fakeNav) First(context.Context) error  { return f.record("first") }
func (f *fakeNav) Last(context.Context) error   { return f.record("last") }
func (f *fakeNav) Random(context.Context) error { return f.record("random") }

func (f *fakeNav) Goto(_ context.Context, id int) error {
	f.mu.Lock()
	f.gotoID = id
	f.mu.Unlock()
	return f.record("goto")
}

func (f *fakeNav) RefreshLatest(context.Context) (bool, error) {
	return true, f.record("refresh")
}

func (f *fakeNav) Cursor() state.Cursor {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cursor
}

func (f *fakeNav) Status() state.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	st := f.status
	st.Cursor = f.cursor
	return st
}

func (f *fakeNav) lastCall() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return ""
	}
	return f.calls[len(f.calls)-1]
}

type fakeLoader struct {
	mu   sync.Mutex
	urls []string
}

func (f *fakeLoader) Load(_ context.Context, url string, _, _ int) (string, error) {
	f.mu.Lock()
	f.urls = append(f.urls, url)
	f.mu.Unlock()
	return "ART", nil
}

func newTestModel(t *testing.T, fn *fakeNav, loader ImageLoader) Model {
	t.Helper()
	opts := Options{
		Navigator: fn,
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
		OpenURL:   func(string) error { return nil },
	}
	if loader != nil {
		opts.Preview = loader
	}
	m := New(opts)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func TestParseJump(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		max     int
		wantID  int
		wantErr string
	}{
		{"plain", "42", 100, 42, ""},
		{"spaces and hash", "  #7 ", 100, 7, ""},
		{"upper bound", "100", 100, 100, ""},
		{"zero", "0", 100, 0, "Please enter a number between 1 and 100"},
		{"too big", "101", 100, 0, "Please enter a number between 1 and 100"},
		{"not a number", "abc", 2950, 0, "Please enter a number between 1 and 2950"},
		{"empty", "", 5, 0, "Please enter a number between 1 and 5"},
		{"uninitialized", "3", 0, 0, "Still loading the latest comic"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, problem := parseJump(tt.input, tt.max)
			assert.Equal(t, tt.wantID, id)
			assert.Equal(t, tt.wantErr, problem)
		})
	}
}

func TestNavigationKeysDispatch(t *testing.T) {
	tests := []struct {
		key  tea.KeyMsg
		want string
	}{
		{tea.KeyMsg{Type: tea.KeyLeft}, "prev"},
		{runes("h"), "prev"},
		{runes("p"), "prev"},
		{tea.KeyMsg{Type: tea.KeyRight}, "next"},
		{runes("l"), "next"},
		{runes("n"), "next"},
		{runes("r"), "random"},
		{tea.KeyMsg{Type: tea.KeyHome}, "first"},
		{runes("g"), "first"},
		{tea.KeyMsg{Type: tea.KeyEnd}, "last"},
		{runes("G"), "last"},
	}
	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			fn := &fakeNav{cursor: state.Cursor{Current: 5, Max: 10}}
			m := newTestModel(t, fn, nil)

			_, cmd := press(t, m, tt.key)
			require.NotNil(t, cmd)
			msg := cmd()

			done, ok := msg.(navDoneMsg)
			require.True(t, ok, "got %T", msg)
			assert.Equal(t, tt.want, done.op)
			assert.Equal(t, tt.want, fn.lastCall())
		})
	}
}

func TestJump_InvalidInputKeepsEntryOpenWithoutFetch(t *testing.T) {
	fn := &fakeNav{cursor: state.Cursor{Current: 2950, Max: 2950}}
	m := newTestModel(t, fn, nil)

	m, _ = press(t, m, runes(":"))
	require.True(t, m.jumping)

	m, _ = press(t, m, runes("abc"))
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.True(t, m.jumping)
	assert.Equal(t, "Please enter a number between 1 and 2950", m.jumpErr)
	assert.Empty(t, fn.lastCall())
	assert.Contains(t, m.View(), "Please enter a number between 1 and 2950")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.jumping)
	assert.Empty(t, m.jumpErr)
}

func TestJump_ValidInputGoesToComic(t *testing.T) {
	fn := &fakeNav{cursor: state.Cursor{Current: 10, Max: 100}}
	m := newTestModel(t, fn, nil)

	m, _ = press(t, m, runes("/"))
	m, _ = press(t, m, runes("42"))
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.False(t, m.jumping)
	done := cmd().(navDoneMsg)
	assert.Equal(t, "goto", done.op)
	assert.Equal(t, 42, fn.gotoID)
}

func TestJump_QuitKeyTypesInsteadOfQuitting(t *testing.T) {
	fn := &fakeNav{cursor: state.Cursor{Current: 1, Max: 3}}
	m := newTestModel(t, fn, nil)

	m, _ = press(t, m, runes(":"))
	m, _ = press(t, m, runes("q"))

	assert.True(t, m.jumping)
	assert.Equal(t, "q", m.jump.Value())
}

func TestQuitKeys(t *testing.T) {
	m := newTestModel(t, &fakeNav{}, nil)

	_, cmd := press(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestStateMsg_RendersComic(t *testing.T) {
	m := newTestModel(t, &fakeNav{}, nil)

	s := view.Render(view.Initial(), comic.Comic{Num: 42, Title: "Answer", Img: "http://x/i.png", Alt: "hover text"})
	s = view.WithCursor(s, 42, 100)
	updated, _ := m.Update(stateMsg(s))
	m = updated.(Model)

	out := m.View()
	assert.Contains(t, out, "#42")
	assert.Contains(t, out, "Answer")
	assert.Contains(t, out, "http://x/i.png")
	assert.Contains(t, out, "hover text")
	assert.Contains(t, out, "/ 100")
}

func TestStateMsg_LoadingStartsSpinnerOnce(t *testing.T) {
	m := newTestModel(t, &fakeNav{}, nil)

	updated, cmd := m.Update(stateMsg(view.ShowLoading(view.Initial())))
	m = updated.(Model)
	assert.NotNil(t, cmd)
	assert.True(t, m.view.Loading)

	_, cmd = m.Update(stateMsg(view.ShowLoading(view.Initial())))
	assert.Nil(t, cmd)
}

func TestStateMsg_ErrorShownInFooter(t *testing.T) {
	m := newTestModel(t, &fakeNav{}, nil)

	updated, _ := m.Update(stateMsg(view.ShowError(view.Initial(), "")))
	m = updated.(Model)

	assert.Contains(t, m.View(), view.GenericError)
}

func TestPreview_LoadsForDisplayedImage(t *testing.T) {
	loader := &fakeLoader{}
	m := newTestModel(t, &fakeNav{}, loader)
	require.True(t, m.previewOn)

	s := view.Render(view.Initial(), comic.Comic{Num: 1, Title: "one", Img: "http://x/1.png"})
	updated, cmd := m.Update(stateMsg(s))
	m = updated.(Model)
	require.NotNil(t, cmd)

	var preview previewMsg
	switch msg := cmd().(type) {
	case previewMsg:
		preview = msg
	case tea.BatchMsg:
		for _, c := range msg {
			if p, ok := c().(previewMsg); ok {
				preview = p
			}
		}
	}
	require.Equal(t, "http://x/1.png", preview.url)

	updated, _ = m.Update(preview)
	m = updated.(Model)
	assert.Contains(t, m.View(), "ART")

	stale := previewMsg{url: "http://x/old.png", art: "OLD"}
	updated, _ = m.Update(stale)
	m = updated.(Model)
	assert.NotContains(t, m.View(), "OLD")
}

func TestTogglePreviewAndThemePersistPrefs(t *testing.T) {
	m := newTestModel(t, &fakeNav{}, &fakeLoader{})

	m, _ = press(t, m, runes("i"))
	assert.False(t, m.previewOn)
	m, _ = press(t, m, runes("T"))
	assert.Equal(t, "Kanagawa", m.theme.Name)

	saved, err := prefs.Load(m.prefsPath)
	require.NoError(t, err)
	assert.Equal(t, "Kanagawa", saved.Theme)
	assert.True(t, saved.HidePreview)
}

func TestTogglePreview_DisabledWithoutLoader(t *testing.T) {
	m := newTestModel(t, &fakeNav{}, nil)

	m, _ = press(t, m, runes("i"))

	assert.False(t, m.previewOn)
	assert.Equal(t, "Image preview is disabled in config", m.status)
}

func TestOpenKey(t *testing.T) {
	var opened string
	fn := &fakeNav{}
	m := New(Options{
		Navigator: fn,
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
		OpenURL: func(url string) error {
			opened = url
			return nil
		},
	})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = updated.(Model)

	m, cmd := press(t, m, runes("o"))
	assert.Nil(t, cmd)
	assert.Equal(t, "No image to open", m.status)

	updated, _ = m.Update(stateMsg(view.Render(view.Initial(), comic.Comic{Num: 3, Title: "t", Img: "http://x/3.png"})))
	m = updated.(Model)
	m, cmd = press(t, m, runes("o"))
	require.NotNil(t, cmd)
	updated, _ = m.Update(cmd())
	m = updated.(Model)

	assert.Equal(t, "http://x/3.png", opened)
	assert.Equal(t, "Opened image in browser", m.status)
}

func TestRefreshKeyReportsResult(t *testing.T) {
	fn := &fakeNav{cursor: state.Cursor{Current: 4, Max: 8}}
	m := newTestModel(t, fn, nil)

	m, cmd := press(t, m, runes("R"))
	require.NotNil(t, cmd)
	updated, _ := m.Update(cmd())
	m = updated.(Model)

	assert.Equal(t, "refresh", fn.lastCall())
	assert.Equal(t, "Latest comic is now #8", m.status)
}

func TestRefreshDone_ReportsCheckTimeAndFailureStreak(t *testing.T) {
	m := newTestModel(t, &fakeNav{}, nil)
	checked := time.Date(2024, 3, 1, 9, 30, 15, 0, time.Local)

	updated, _ := m.Update(refreshDoneMsg{status: state.Snapshot{
		Cursor:      state.Cursor{Current: 3, Max: 9},
		LastUpdated: checked,
	}})
	m = updated.(Model)
	assert.Equal(t, "Up to date, latest is #9 (checked 09:30:15)", m.status)
	assert.False(t, m.statusDanger)

	netErr := &comic.NetworkError{URL: "u", StatusCode: 503}
	updated, _ = m.Update(refreshDoneMsg{err: netErr, status: state.Snapshot{LastError: netErr, ConsecutiveFailures: 1}})
	m = updated.(Model)
	assert.Equal(t, view.GenericError, m.status)

	updated, _ = m.Update(refreshDoneMsg{err: netErr, status: state.Snapshot{LastError: netErr, ConsecutiveFailures: 3}})
	m = updated.(Model)
	assert.Equal(t, view.GenericError+" (network error, 3 in a row)", m.status)
	assert.True(t, m.statusDanger)
}

func TestNavDone_NotInitializedPromptsRetry(t *testing.T) {
	m := newTestModel(t, &fakeNav{}, nil)

	updated, _ := m.Update(navDoneMsg{op: "next", err: nav.ErrNotInitialized})
	m = updated.(Model)
	assert.True(t, strings.HasPrefix(m.status, "Waiting for the latest comic"))

	updated, _ = m.Update(navDoneMsg{op: "goto", err: nav.ErrSuperseded})
	m = updated.(Model)
	assert.True(t, strings.HasPrefix(m.status, "Waiting for the latest comic"))

	updated, _ = m.Update(navDoneMsg{op: "init", err: errors.New("offline")})
	m = updated.(Model)
	assert.Equal(t, "Could not load the latest comic. Press R to retry", m.status)
}

func TestHelpOverlayClosesOnAnyKey(t *testing.T) {
	m := newTestModel(t, &fakeNav{}, nil)

	m, _ = press(t, m, runes("?"))
	require.True(t, m.showHelp)
	assert.Contains(t, m.View(), "Keyboard Shortcuts")
	assert.Contains(t, m.View(), "Jump to number")

	m, cmd := press(t, m, runes("n"))
	assert.False(t, m.showHelp)
	assert.Nil(t, cmd)
}

func TestLogOverlayShowsFormattedTail(t *testing.T) {
	m := newTestModel(t, &fakeNav{}, nil)
	m.logPath = filepath.Join(t.TempDir(), "missing.log")
	m.session = "1f0c2d9a-6d1e-4a37-9a51-2b7f7c1e0d44"

	m, cmd := press(t, m, runes("L"))
	require.True(t, m.showLogs)
	require.NotNil(t, cmd)

	updated, _ := m.Update(logsMsg{lines: []string{"12:00:00 INFO  fetched comic id=5"}})
	m = updated.(Model)
	assert.Contains(t, m.View(), "fetched comic id=5")
	assert.Contains(t, m.View(), "session 1f0c2d9a")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.showLogs)
}

type captureSender struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (c *captureSender) Send(msg tea.Msg) {
	c.mu.Lock()
	c.msgs = append(c.msgs, msg)
	c.mu.Unlock()
}

func TestPresenter_ForwardsWhenAttached(t *testing.T) {
	p := NewPresenter()
	p.Present(view.Initial())

	sender := &captureSender{}
	p.Attach(sender)
	p.Present(view.ShowLoading(view.Initial()))
	p.Attach(nil)
	p.Present(view.Initial())

	require.Len(t, sender.msgs, 1)
	got, ok := sender.msgs[0].(stateMsg)
	require.True(t, ok)
	assert.True(t, got.Loading)
}
