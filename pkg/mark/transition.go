package mark

func MarkedState() ButtonState {
	return ButtonState{
		Label:      MarkedLabel,
		ClassName:  MarkedClass,
		Title:      MarkedTitle,
		MarginLeft: MarkedMargin,
		Marked:     true,
	}
}

func UnmarkedState() ButtonState {
	return ButtonState{
		Label:      UnmarkedLabel,
		ClassName:  UnmarkedClass,
		Title:      UnmarkedTitle,
		MarginLeft: UnmarkedMargin,
	}
}

func InitialState(marked bool) ButtonState {
	if marked {
		return MarkedState()
	}
	return UnmarkedState()
}

func TakeSnapshot(state ButtonState) Snapshot {
	return Snapshot{
		Label:      state.Label,
		ClassName:  state.ClassName,
		Title:      state.Title,
		MarginLeft: state.MarginLeft,
		Marked:     state.Marked,
	}
}

func (s Snapshot) Restore() ButtonState {
	return ButtonState{
		Label:      s.Label,
		ClassName:  s.ClassName,
		Title:      s.Title,
		MarginLeft: s.MarginLeft,
		Marked:     s.Marked,
	}
}

// Begin puts the button into its pending state and returns the snapshot to roll back to.
func Begin(state ButtonState) (ButtonState, Snapshot) {
	snapshot := TakeSnapshot(state)
	pending := state
	pending.Label = SpinnerLabel
	pending.Disabled = true
	pending.Pending = true
	return pending, snapshot
}

// Resolve computes the state after a request. The returned message is non-empty only when the
// button was rolled back to the snapshot and the user has to be told why.
func Resolve(snapshot Snapshot, result Result) (ButtonState, string) {
	if result.Err != nil {
		return snapshot.Restore(), ConnectionError
	}

	resp := result.Response
	if !resp.Success {
		message := resp.Message
		if message == "" {
			message = GenericError
		}
		return snapshot.Restore(), message
	}

	switch resp.Action {
	case ActionCreated:
		return MarkedState(), ""
	case ActionDeleted:
		return UnmarkedState(), ""
	default:
		return snapshot.Restore(), GenericError
	}
}
