package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/strip/internal/view"
)

// Sender delivers messages into a running program. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// Presenter forwards navigator view states into the Bubble Tea event loop.
// States presented while no program is attached are dropped.
type Presenter struct {
	mu     sync.RWMutex
	sender Sender
}

// NewPresenter returns a detached Presenter.
func NewPresenter() *Presenter {
	return &Presenter{}
}

// Attach sets the program that receives states. nil detaches.
func (p *Presenter) Attach(s Sender) {
	p.mu.Lock()
	p.sender = s
	p.mu.Unlock()
}

// Present implements view.Presenter.
func (p *Presenter) Present(s view.State) {
	p.mu.RLock()
	sender := p.sender
	p.mu.RUnlock()
	if sender == nil {
		return
	}
	sender.Send(stateMsg(s))
}
