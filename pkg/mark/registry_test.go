package mark

import (
	"context"
	"testing"

	"github.com/reservedesk/reserve/internal/event_bus"
	"github.com/reservedesk/reserve/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRegistryTest(baseURL string, toggler Toggler) *Registry {
	return NewRegistry(baseURL, toggler, &utils.MockClock{FixedNow: testNow}, event_bus.NewEventBus(), DefaultOptions())
}

func TestRegistry_Bind(t *testing.T) {
	tests := []struct {
		name       string
		baseURL    string
		action     string
		wantAction string
		wantErr    error
	}{
		{"explicit action", "", "/custom/9/", "/custom/9/", nil},
		{"derived from base url", "https://site.example/mark", "", "https://site.example/mark/9/", nil},
		{"base url with trailing slash", "/mark/", "", "/mark/9/", nil},
		{"no action and no base url", "", "", "", ErrNoAction},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := setupRegistryTest(tt.baseURL, NewTogglerStub())

			button, err := registry.Bind("9", tt.action, true)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			view := button.View()
			assert.Equal(t, tt.wantAction, view.Action)
			assert.Equal(t, MarkedState(), view.State)
		})
	}
}

func TestRegistry_Get(t *testing.T) {
	registry := setupRegistryTest("/mark", NewTogglerStub())

	_, err := registry.Get("missing")
	assert.ErrorIs(t, err, ErrUnknownButton)

	bound, err := registry.Bind("1", "", false)
	require.NoError(t, err)
	got, err := registry.Get("1")
	require.NoError(t, err)
	assert.Same(t, bound, got)
}

func TestRegistry_RebindWhileInFlight(t *testing.T) {
	toggler := NewTogglerStub()
	toggler.Gate = make(chan struct{})
	toggler.Started = make(chan struct{})
	registry := setupRegistryTest("/mark", toggler)
	button, err := registry.Bind("1", "", false)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		_, _ = button.Submit(context.Background(), "t")
		close(done)
	}()
	<-toggler.Started

	_, err = registry.Bind("1", "", true)
	assert.ErrorIs(t, err, ErrPending)

	close(toggler.Gate)
	<-done
	rebound, err := registry.Bind("1", "", true)
	require.NoError(t, err)
	assert.True(t, rebound.View().State.Marked)
}

func TestRegistry_RebindRetiresPreviousButton(t *testing.T) {
	toggler := NewTogglerStub()
	registry := setupRegistryTest("/mark", toggler)
	_, err := registry.Bind("1", "", false)
	require.NoError(t, err)
	stale, err := registry.Get("1")
	require.NoError(t, err)

	_, err = registry.Bind("1", "", true)
	require.NoError(t, err)

	_, err = stale.Submit(context.Background(), "t")
	assert.ErrorIs(t, err, ErrRetired)
	assert.Empty(t, toggler.Calls())

	current, err := registry.Get("1")
	require.NoError(t, err)
	view, err := current.Submit(context.Background(), "t")
	require.NoError(t, err)
	assert.True(t, view.State.Marked)
	assert.Len(t, toggler.Calls(), 1)
}
