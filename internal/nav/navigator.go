package nav

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/five82/strip/internal/comic"
	"github.com/five82/strip/internal/state"
	"github.com/five82/strip/internal/view"
)

var (
	// ErrNotInitialized is returned by navigation before Init succeeded.
	ErrNotInitialized = errors.New("navigation not initialized")
	// ErrOutOfRange is returned by Goto for ids outside [1, max].
	ErrOutOfRange = errors.New("comic id out of range")
	// ErrSuperseded is returned when a newer request finished first and this
	// response was discarded.
	ErrSuperseded = errors.New("response superseded by a newer request")
)

// RandomMode controls whether Random moves the cursor.
type RandomMode string

const (
	// RandomMove makes the random comic the new cursor position.
	RandomMove RandomMode = "move"
	// RandomPeek shows the random comic but leaves the cursor where it was.
	RandomPeek RandomMode = "peek"
)

// ParseRandomMode normalizes a mode name; empty selects RandomMove.
func ParseRandomMode(value string) (RandomMode, error) {
	switch RandomMode(strings.ToLower(strings.TrimSpace(value))) {
	case "", RandomMove:
		return RandomMove, nil
	case RandomPeek:
		return RandomPeek, nil
	default:
		return "", fmt.Errorf("unknown random mode %q", value)
	}
}

// Options configure a Navigator.
type Options struct {
	Source     comic.Source
	Presenter  view.Presenter
	Store      *state.Store    // nil allocates a private store
	Logger     *zerolog.Logger // nil discards
	RandomMode RandomMode
	Intn       func(n int) int // uniform in [0, n); nil uses math/rand/v2
}

// Navigator tracks the cursor, sequences fetches and maps their outcome to
// view states.
type Navigator struct {
	source    comic.Source
	presenter view.Presenter
	store     *state.Store
	log       zerolog.Logger
	mode      RandomMode
	intn      func(n int) int

	mu   sync.Mutex // guards view and orders Present calls
	view view.State
}

// New builds a Navigator. Source and Presenter are required.
func New(opts Options) (*Navigator, error) {
	if opts.Source == nil {
		return nil, fmt.Errorf("navigator requires a comic source")
	}
	if opts.Presenter == nil {
		return nil, fmt.Errorf("navigator requires a presenter")
	}
	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = opts.Logger.With().Str("component", "nav").Logger()
	}
	mode, err := ParseRandomMode(string(opts.RandomMode))
	if err != nil {
		return nil, err
	}
	intn := opts.Intn
	if intn == nil {
		intn = rand.IntN
	}
	return &Navigator{
		source:    opts.Source,
		presenter: opts.Presenter,
		store:     store,
		log:       log,
		mode:      mode,
		intn:      intn,
		view:      view.Initial(),
	}, nil
}

// Init fetches the latest comic, seeds current = max = latest.num and renders it.
func (n *Navigator) Init(ctx context.Context) error {
	seq := n.store.Begin()
	n.showLoading("init", 0, seq)
	c, err := n.source.FetchLatest(ctx)

	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.store.IsLatest(seq) {
		n.log.Debug().Uint64("seq", seq).Str("op", "init").Msg("discarding stale response")
		return ErrSuperseded
	}
	if err != nil {
		return n.failLocked("init", 0, seq, err)
	}
	n.store.Seed(c.Num)
	n.log.Info().Int("max", c.Num).Msg("seeded cursor from latest comic")
	n.renderLocked(c)
	return nil
}

// Goto shows comic id and moves the cursor there. Ids outside [1, max] are
// rejected without a fetch.
func (n *Navigator) Goto(ctx context.Context, id int) error {
	cur := n.store.Cursor()
	if !cur.Initialized() {
		return ErrNotInitialized
	}
	if id < 1 || id > cur.Max {
		n.mu.Lock()
		n.view = view.ShowFormError(n.view, RangeMessage(cur.Max))
		n.presentLocked()
		n.mu.Unlock()
		return fmt.Errorf("goto %d: %w", id, ErrOutOfRange)
	}
	return n.load(ctx, "goto", id, true)
}

// Next advances one comic. It is a no-op at max. While an earlier move is
// still loading, Next counts from that move's target.
func (n *Navigator) Next(ctx context.Context) error {
	return n.step(ctx, "next", 1)
}

// Prev goes back one comic. It is a no-op at 1. While an earlier move is
// still loading, Prev counts from that move's target.
func (n *Navigator) Prev(ctx context.Context) error {
	return n.step(ctx, "prev", -1)
}

// First is Goto(1).
func (n *Navigator) First(ctx context.Context) error {
	return n.Goto(ctx, 1)
}

// Last is Goto(max).
func (n *Navigator) Last(ctx context.Context) error {
	cur := n.store.Cursor()
	if !cur.Initialized() {
		return ErrNotInitialized
	}
	return n.Goto(ctx, cur.Max)
}

// Random shows a comic chosen uniformly from [1, max]. Whether the cursor
// follows depends on the RandomMode.
func (n *Navigator) Random(ctx context.Context) error {
	cur := n.store.Cursor()
	if !cur.Initialized() {
		return ErrNotInitialized
	}
	id := n.intn(cur.Max) + 1
	return n.load(ctx, "random", id, n.mode == RandomMove)
}

// RefreshLatest re-reads the latest comic and raises max when it grew. The
// displayed comic is untouched. Before Init has succeeded it behaves like Init.
func (n *Navigator) RefreshLatest(ctx context.Context) (bool, error) {
	if !n.store.Cursor().Initialized() {
		if err := n.Init(ctx); err != nil {
			return false, err
		}
		return true, nil
	}
	c, err := n.source.FetchLatest(ctx)
	if err != nil {
		n.store.Fail(err)
		n.log.Warn().Err(err).Str("kind", comic.Kind(err)).Msg("refresh latest failed")
		return false, err
	}
	raised := n.store.RaiseMax(c.Num)
	if raised {
		n.log.Info().Int("max", c.Num).Msg("raised max from latest comic")
		n.mu.Lock()
		n.presentLocked()
		n.mu.Unlock()
	}
	return raised, nil
}

// Cursor returns the current navigation position.
func (n *Navigator) Cursor() state.Cursor {
	return n.store.Cursor()
}

// Status returns the cursor together with the outcome of the last request.
func (n *Navigator) Status() state.Snapshot {
	return n.store.Snapshot()
}

// Mode returns the configured random mode.
func (n *Navigator) Mode() RandomMode {
	return n.mode
}

// View returns the last presented state.
func (n *Navigator) View() view.State {
	n.mu.Lock()
	defer n.mu.Unlock()
	cur := n.store.Cursor()
	return view.WithCursor(n.view, cur.Current, cur.Max)
}

// RangeMessage is the id-entry error shown for values outside [1, latest].
func RangeMessage(latest int) string {
	return fmt.Sprintf("Please enter a number between 1 and %d", latest)
}

func (n *Navigator) step(ctx context.Context, op string, delta int) error {
	if !n.store.Cursor().Initialized() {
		return ErrNotInitialized
	}
	id, seq, ok := n.store.Step(delta)
	if !ok {
		return nil
	}
	n.showLoading(op, id, seq)
	return n.fetch(ctx, op, id, seq, true)
}

func (n *Navigator) load(ctx context.Context, op string, id int, move bool) error {
	var seq uint64
	if move {
		seq = n.store.BeginMove(id)
	} else {
		seq = n.store.Begin()
	}
	n.showLoading(op, id, seq)
	return n.fetch(ctx, op, id, seq, move)
}

func (n *Navigator) fetch(ctx context.Context, op string, id int, seq uint64, move bool) error {
	c, err := n.source.FetchByID(ctx, id)

	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.store.IsLatest(seq) {
		n.log.Debug().Uint64("seq", seq).Str("op", op).Int("id", id).Msg("discarding stale response")
		return ErrSuperseded
	}
	if err != nil {
		return n.failLocked(op, id, seq, err)
	}
	if move {
		if !n.store.Commit(seq, id) {
			n.log.Debug().Uint64("seq", seq).Str("op", op).Int("id", id).Msg("discarding stale response")
			return ErrSuperseded
		}
	} else {
		n.store.Touch()
	}
	n.log.Debug().Uint64("seq", seq).Str("op", op).Int("id", c.Num).Msg("rendered comic")
	n.renderLocked(c)
	return nil
}

func (n *Navigator) showLoading(op string, id int, seq uint64) {
	n.log.Debug().Uint64("seq", seq).Str("op", op).Int("id", id).Msg("fetching comic")

	n.mu.Lock()
	n.view = view.ShowLoading(view.HideErrors(n.view))
	n.presentLocked()
	n.mu.Unlock()
}

func (n *Navigator) failLocked(op string, id int, seq uint64, err error) error {
	n.store.FailRequest(seq, err)
	n.log.Error().
		Err(err).
		Str("op", op).
		Int("id", id).
		Uint64("seq", seq).
		Str("kind", comic.Kind(err)).
		Msg("fetch comic failed")
	if !n.store.Cursor().Initialized() {
		n.view = view.Clear(n.view)
	}
	n.view = view.ShowError(n.view, view.GenericError)
	n.presentLocked()
	return fmt.Errorf("%s: %w", op, err)
}

func (n *Navigator) renderLocked(c comic.Comic) {
	n.view = view.Render(n.view, c)
	n.presentLocked()
}

func (n *Navigator) presentLocked() {
	cur := n.store.Cursor()
	n.presenter.Present(view.WithCursor(n.view, cur.Current, cur.Max))
}
