package mark

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/reservedesk/reserve/internal/event_bus"
	"github.com/reservedesk/reserve/internal/utils"
	log "github.com/sirupsen/logrus"
)

// InlineMessage is the short notice shown next to a button after a failed toggle.
type InlineMessage struct {
	ID        string      `json:"id"`
	Text      string      `json:"text"`
	Kind      MessageKind `json:"kind"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

type Options struct {
	// Timeout bounds a single toggle request so a silent server cannot keep the button disabled.
	Timeout         time.Duration
	MessageDuration time.Duration
}

func DefaultOptions() Options {
	return Options{
		Timeout:         10 * time.Second,
		MessageDuration: 3 * time.Second,
	}
}

// View is a button as seen from outside.
type View struct {
	ID      string         `json:"id"`
	Action  string         `json:"action"`
	State   ButtonState    `json:"state"`
	Message *InlineMessage `json:"message,omitempty"`
}

// Button is one mark control bound to one URL. Submissions while a request is in flight are
// refused; the disabled state is the only guard.
type Button struct {
	mu      sync.Mutex
	id      string
	action  string
	state   ButtonState
	message *InlineMessage
	timer   utils.Timer
	retired bool

	toggler Toggler
	clock   utils.Clock
	bus     *event_bus.EventBus
	opts    Options
}

func NewButton(id, action string, marked bool, toggler Toggler, clock utils.Clock, bus *event_bus.EventBus, opts Options) *Button {
	return &Button{
		id:      id,
		action:  action,
		state:   InitialState(marked),
		toggler: toggler,
		clock:   clock,
		bus:     bus,
		opts:    opts,
	}
}

func (b *Button) View() View {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.view()
}

func (b *Button) view() View {
	v := View{ID: b.id, Action: b.action, State: b.state}
	if b.message != nil {
		m := *b.message
		v.Message = &m
	}
	return v
}

// Submit sends one toggle request and applies its outcome. Failures are not returned as errors:
// the button is rolled back and carries an inline message instead. The only error is ErrPending.
func (b *Button) Submit(ctx context.Context, token string) (View, error) {
	b.mu.Lock()
	if b.retired {
		v := b.view()
		b.mu.Unlock()
		return v, ErrRetired
	}
	if b.state.Disabled {
		v := b.view()
		b.mu.Unlock()
		log.Debugf("mark button %s: submit ignored, request in flight", b.id)
		return v, ErrPending
	}
	pending, snapshot := Begin(b.state)
	b.state = pending
	b.mu.Unlock()

	reqCtx := ctx
	if b.opts.Timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, b.opts.Timeout)
		defer cancel()
	}

	started := b.clock.Now()
	resp, err := b.toggler.Toggle(reqCtx, b.action, token)
	next, message := Resolve(snapshot, Result{Response: resp, Err: err})

	b.mu.Lock()
	b.state = next
	if message != "" {
		b.showMessage(message, MessageError)
	}
	v := b.view()
	b.mu.Unlock()

	b.publish(ctx, resp, message, b.clock.Now().Sub(started))
	return v, nil
}

// retire stops the button from accepting submissions. It fails while a request is in flight.
func (b *Button) retire() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state.Disabled {
		return false
	}
	b.retired = true
	return true
}

// showMessage replaces any message already attached to the button. Callers hold b.mu.
func (b *Button) showMessage(text string, kind MessageKind) {
	if b.timer != nil {
		b.timer.Stop()
	}
	msg := &InlineMessage{
		ID:        uuid.NewString(),
		Text:      text,
		Kind:      kind,
		ExpiresAt: b.clock.Now().Add(b.opts.MessageDuration),
	}
	b.message = msg
	b.timer = b.clock.AfterFunc(b.opts.MessageDuration, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.message != nil && b.message.ID == msg.ID {
			b.message = nil
			b.timer = nil
		}
	})
}

func (b *Button) publish(ctx context.Context, resp Response, message string, took time.Duration) {
	b.mu.Lock()
	marked := b.state.Marked
	b.mu.Unlock()

	err := b.bus.Publish(event_bus.NewEvent(context.WithoutCancel(ctx), event_bus.MarkToggledType, event_bus.MarkToggled{
		ButtonID: b.id,
		Action:   resp.Action,
		Marked:   marked,
		Failed:   message != "",
		Message:  message,
		Took:     took,
	}))
	if err != nil {
		log.Errorf("mark button %s: failed to publish toggle: %v", b.id, err)
	}
}
