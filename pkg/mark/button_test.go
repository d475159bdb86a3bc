package mark

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/reservedesk/reserve/internal/event_bus"
	"github.com/reservedesk/reserve/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 8, 1, 9, 0, 0, 0, time.UTC)

type buttonTest struct {
	button  *Button
	toggler *TogglerStub
	clock   *utils.MockClock
	mu      sync.Mutex
	events  []event_bus.MarkToggled
}

func (bt *buttonTest) published() []event_bus.MarkToggled {
	bt.mu.Lock()
	defer bt.mu.Unlock()
	return append([]event_bus.MarkToggled(nil), bt.events...)
}

func setupButtonTest(t *testing.T, marked bool, results ...Result) *buttonTest {
	bus := event_bus.NewEventBus()
	bt := &buttonTest{
		toggler: NewTogglerStub(results...),
		clock:   &utils.MockClock{FixedNow: testNow},
	}
	unsubscribe := event_bus.SubscribeTyped(bus, event_bus.MarkToggledType, func(e event_bus.EventT[event_bus.MarkToggled]) error {
		bt.mu.Lock()
		defer bt.mu.Unlock()
		bt.events = append(bt.events, e.Data)
		return nil
	})
	t.Cleanup(unsubscribe)
	bt.button = NewButton("42", "/mark/42/", marked, bt.toggler, bt.clock, bus, DefaultOptions())
	return bt
}

func TestButton_Submit_Created(t *testing.T) {
	bt := setupButtonTest(t, false, Result{Response: Response{Success: true, Action: ActionCreated}})

	view, err := bt.button.Submit(context.Background(), "csrf-1")

	require.NoError(t, err)
	assert.Equal(t, MarkedState(), view.State)
	assert.Nil(t, view.Message)
	assert.Equal(t, []string{"/mark/42/"}, bt.toggler.Calls())
	assert.Equal(t, []string{"csrf-1"}, bt.toggler.Tokens())
	assert.Equal(t, 0, bt.clock.Pending())

	events := bt.published()
	require.Len(t, events, 1)
	assert.Equal(t, "42", events[0].ButtonID)
	assert.Equal(t, ActionCreated, events[0].Action)
	assert.True(t, events[0].Marked)
	assert.False(t, events[0].Failed)
}

func TestButton_Submit_Deleted(t *testing.T) {
	bt := setupButtonTest(t, true, Result{Response: Response{Success: true, Action: ActionDeleted}})

	view, err := bt.button.Submit(context.Background(), "t")

	require.NoError(t, err)
	assert.Equal(t, UnmarkedState(), view.State)
	assert.Equal(t, UnmarkedTitle, view.State.Title)
	assert.Equal(t, UnmarkedMargin, view.State.MarginLeft)
	assert.Nil(t, view.Message)
}

func TestButton_Submit_ToggleTwice(t *testing.T) {
	bt := setupButtonTest(t, false,
		Result{Response: Response{Success: true, Action: ActionCreated}},
		Result{Response: Response{Success: true, Action: ActionDeleted}},
	)

	first, err := bt.button.Submit(context.Background(), "t")
	require.NoError(t, err)
	second, err := bt.button.Submit(context.Background(), "t")
	require.NoError(t, err)

	assert.True(t, first.State.Marked)
	assert.False(t, second.State.Marked)
	assert.Len(t, bt.toggler.Calls(), 2)
}

func TestButton_Submit_DeclinedShowsMessageForItsDuration(t *testing.T) {
	bt := setupButtonTest(t, false, Result{Response: Response{Success: false, Message: "X"}})
	before := bt.button.View().State

	view, err := bt.button.Submit(context.Background(), "t")

	require.NoError(t, err)
	assert.Equal(t, before, view.State)
	require.NotNil(t, view.Message)
	assert.Equal(t, "X", view.Message.Text)
	assert.Equal(t, MessageError, view.Message.Kind)
	assert.Equal(t, testNow.Add(3*time.Second), view.Message.ExpiresAt)

	bt.clock.Advance(2 * time.Second)
	assert.NotNil(t, bt.button.View().Message)

	bt.clock.Advance(time.Second)
	assert.Nil(t, bt.button.View().Message)
	assert.Equal(t, 0, bt.clock.Pending())

	events := bt.published()
	require.Len(t, events, 1)
	assert.True(t, events[0].Failed)
	assert.Equal(t, "X", events[0].Message)
	assert.False(t, events[0].Marked)
}

func TestButton_Submit_TransportFailure(t *testing.T) {
	bt := setupButtonTest(t, true, Result{Err: errors.New("connection reset")})

	view, err := bt.button.Submit(context.Background(), "t")

	require.NoError(t, err)
	assert.Equal(t, MarkedState(), view.State)
	require.NotNil(t, view.Message)
	assert.Equal(t, ConnectionError, view.Message.Text)
}

func TestButton_Submit_NewMessageReplacesOld(t *testing.T) {
	bt := setupButtonTest(t, false,
		Result{Response: Response{Success: false, Message: "first"}},
		Result{Response: Response{Success: false, Message: "second"}},
	)

	first, err := bt.button.Submit(context.Background(), "t")
	require.NoError(t, err)
	bt.clock.Advance(2 * time.Second)
	second, err := bt.button.Submit(context.Background(), "t")
	require.NoError(t, err)

	require.NotNil(t, first.Message)
	require.NotNil(t, second.Message)
	assert.NotEqual(t, first.Message.ID, second.Message.ID)
	assert.Equal(t, "second", second.Message.Text)
	assert.Equal(t, 1, bt.clock.Pending())

	// The first message would have expired here; the second one must survive it.
	bt.clock.Advance(1500 * time.Millisecond)
	current := bt.button.View().Message
	require.NotNil(t, current)
	assert.Equal(t, second.Message.ID, current.ID)

	bt.clock.Advance(2 * time.Second)
	assert.Nil(t, bt.button.View().Message)
}

func TestButton_Submit_SuccessKeepsMessageUntilExpiry(t *testing.T) {
	bt := setupButtonTest(t, false,
		Result{Response: Response{Success: false, Message: "busy"}},
		Result{Response: Response{Success: true, Action: ActionCreated}},
	)

	_, err := bt.button.Submit(context.Background(), "t")
	require.NoError(t, err)
	view, err := bt.button.Submit(context.Background(), "t")
	require.NoError(t, err)

	assert.True(t, view.State.Marked)
	require.NotNil(t, view.Message)
	assert.Equal(t, "busy", view.Message.Text)

	bt.clock.Advance(3 * time.Second)
	assert.Nil(t, bt.button.View().Message)
}

func TestButton_Submit_RefusedWhileInFlight(t *testing.T) {
	bt := setupButtonTest(t, false, Result{Response: Response{Success: true, Action: ActionCreated}})
	gate := make(chan struct{})
	bt.toggler.Gate = gate
	bt.toggler.Started = make(chan struct{})

	type outcome struct {
		view View
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		v, err := bt.button.Submit(context.Background(), "t")
		done <- outcome{v, err}
	}()
	<-bt.toggler.Started

	pending := bt.button.View().State
	assert.True(t, pending.Disabled)
	assert.True(t, pending.Pending)
	assert.Equal(t, SpinnerLabel, pending.Label)

	view, err := bt.button.Submit(context.Background(), "t")
	assert.ErrorIs(t, err, ErrPending)
	assert.True(t, view.State.Disabled)

	close(gate)
	result := <-done
	require.NoError(t, result.err)
	assert.Equal(t, MarkedState(), result.view.State)
	assert.Len(t, bt.toggler.Calls(), 1)
	assert.Len(t, bt.published(), 1)
}

func TestButton_Submit_TimeoutRestoresButton(t *testing.T) {
	bus := event_bus.NewEventBus()
	toggler := NewTogglerStub()
	toggler.Gate = make(chan struct{})
	clock := &utils.MockClock{FixedNow: testNow}
	button := NewButton("7", "/mark/7/", false, toggler, clock, bus, Options{
		Timeout:         20 * time.Millisecond,
		MessageDuration: time.Second,
	})

	view, err := button.Submit(context.Background(), "t")

	require.NoError(t, err)
	assert.Equal(t, UnmarkedState(), view.State)
	require.NotNil(t, view.Message)
	assert.Equal(t, ConnectionError, view.Message.Text)
}

func TestButton_IndependentButtons(t *testing.T) {
	bus := event_bus.NewEventBus()
	clock := &utils.MockClock{FixedNow: testNow}
	slow := NewTogglerStub()
	slow.Gate = make(chan struct{})
	slow.Started = make(chan struct{})
	fast := NewTogglerStub(Result{Response: Response{Success: true, Action: ActionCreated}})

	a := NewButton("a", "/mark/a/", false, slow, clock, bus, DefaultOptions())
	b := NewButton("b", "/mark/b/", false, fast, clock, bus, DefaultOptions())

	done := make(chan struct{})
	go func() {
		_, _ = a.Submit(context.Background(), "t")
		close(done)
	}()
	<-slow.Started

	view, err := b.Submit(context.Background(), "t")
	require.NoError(t, err)
	assert.True(t, view.State.Marked)
	assert.True(t, a.View().State.Disabled)

	close(slow.Gate)
	<-done
	assert.False(t, a.View().State.Disabled)
}
