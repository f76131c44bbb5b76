// Package reports builds each dashboard report from a fresh vendor fetch and
// tracks the loading state of every report page.
package reports

import (
	"errors"
	"fmt"
)

// State is the loading state of a report page.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateError   State = "error"
)

// ErrInvalidTransition is returned when an event does not apply to the
// current state.
var ErrInvalidTransition = errors.New("invalid page state transition")

// Page is the state of one report page. Each page owns its state; a failure
// on one page never touches another.
type Page struct {
	Name    string `json:"name"`
	State   State  `json:"state"`
	Message string `json:"message,omitempty"`
	Err     error  `json:"-"`
}

// NewPage returns an idle page.
func NewPage(name string) *Page {
	return &Page{Name: name, State: StateIdle}
}

// Start moves the page to loading. A settled page may be started again to
// refresh it.
func (p *Page) Start() error {
	if p.State == StateLoading {
		return p.invalid("start")
	}
	p.State = StateLoading
	p.Message = ""
	p.Err = nil
	return nil
}

// Succeed settles a loading page as ready.
func (p *Page) Succeed() error {
	if p.State != StateLoading {
		return p.invalid("succeed")
	}
	p.State = StateReady
	return nil
}

// Fail settles a loading page as failed with a user-facing message.
func (p *Page) Fail(err error, message string) error {
	if p.State != StateLoading {
		return p.invalid("fail")
	}
	p.State = StateError
	p.Err = err
	p.Message = message
	return nil
}

func (p *Page) invalid(event string) error {
	return fmt.Errorf("%w: %s from %s on page %s", ErrInvalidTransition, event, p.State, p.Name)
}
