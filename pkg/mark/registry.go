package mark

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/reservedesk/reserve/internal/event_bus"
	"github.com/reservedesk/reserve/internal/utils"
)

// Registry holds the mark buttons of the application, each with its own state.
type Registry struct {
	mu      sync.RWMutex
	buttons map[string]*Button
	baseURL string

	toggler Toggler
	clock   utils.Clock
	bus     *event_bus.EventBus
	opts    Options
}

func NewRegistry(baseURL string, toggler Toggler, clock utils.Clock, bus *event_bus.EventBus, opts Options) *Registry {
	return &Registry{
		buttons: make(map[string]*Button),
		baseURL: baseURL,
		toggler: toggler,
		clock:   clock,
		bus:     bus,
		opts:    opts,
	}
}

// Bind (re)creates the button with the given id. Without an explicit action the button is bound
// to <baseURL>/<id>/. A button with a request in flight cannot be rebound; a replaced button
// refuses further submissions with ErrRetired.
func (r *Registry) Bind(id, action string, marked bool) (*Button, error) {
	action, err := r.resolveAction(id, action)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.buttons[id]; ok && !existing.retire() {
		return nil, ErrPending
	}
	button := NewButton(id, action, marked, r.toggler, r.clock, r.bus, r.opts)
	r.buttons[id] = button
	return button, nil
}

func (r *Registry) resolveAction(id, action string) (string, error) {
	if action != "" {
		return action, nil
	}
	if r.baseURL == "" {
		return "", fmt.Errorf("%w: %s", ErrNoAction, id)
	}
	return strings.TrimSuffix(r.baseURL, "/") + "/" + url.PathEscape(id) + "/", nil
}

func (r *Registry) Get(id string) (*Button, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	button, ok := r.buttons[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownButton, id)
	}
	return button, nil
}
