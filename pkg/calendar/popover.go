package calendar

import "sync"

type Popover struct {
	EventID string `json:"eventId"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Popovers tracks the hover popovers currently on screen. At most one is open, and only while
// the pointer is still over the event it belongs to.
type Popovers struct {
	mu   sync.Mutex
	open []Popover
}

func NewPopovers() *Popovers {
	return &Popovers{}
}

// Enter records the pointer entering an event and shows its description, if it has one.
func (p *Popovers) Enter(event WidgetEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.open = nil
	if event.Description == "" {
		return
	}
	p.open = append(p.open, Popover{EventID: event.ID, Title: event.Title, Content: event.Description})
}

func (p *Popovers) Leave() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.open = nil
}

// Clear removes every popover, for a drag or an activation of the event.
func (p *Popovers) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.open = nil
}

func (p *Popovers) Open() []Popover {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Popover(nil), p.open...)
}
