package calendar

import (
	"context"
	"sync"

	"github.com/reservedesk/reserve/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

const (
	AddDialog     = "add"
	EditDialog    = "edit"
	PreviewDialog = "preview"
)

type Dialog interface {
	Name() string
	Show()
	Hide()
	Visible() bool
}

// Modal is a dialog that announces on the bus when it is fully hidden.
type Modal struct {
	mu      sync.Mutex
	name    string
	visible bool
	bus     *event_bus.EventBus
}

func NewModal(name string, bus *event_bus.EventBus) *Modal {
	return &Modal{name: name, bus: bus}
}

func (m *Modal) Name() string {
	return m.name
}

func (m *Modal) Show() {
	m.mu.Lock()
	m.visible = true
	m.mu.Unlock()
}

// Hide closes the dialog. Listeners of the hidden event have run when Hide returns.
func (m *Modal) Hide() {
	m.mu.Lock()
	m.visible = false
	m.mu.Unlock()

	err := m.bus.Publish(event_bus.NewEvent(context.Background(), event_bus.DialogHiddenType,
		event_bus.DialogHidden{Name: m.name}))
	if err != nil {
		log.Errorf("dialog %s: hidden listeners failed: %v", m.name, err)
	}
}

func (m *Modal) Visible() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.visible
}

// Dialogs groups the three editor dialogs.
type Dialogs struct {
	Add     Dialog
	Edit    Dialog
	Preview Dialog
}

func NewModals(bus *event_bus.EventBus) Dialogs {
	return Dialogs{
		Add:     NewModal(AddDialog, bus),
		Edit:    NewModal(EditDialog, bus),
		Preview: NewModal(PreviewDialog, bus),
	}
}
