package mark

import (
	"errors"
)

var (
	// ErrPending is returned when a toggle is submitted while the previous one is in flight.
	ErrPending          = errors.New("mark request already in flight")
	ErrUnexpectedStatus = errors.New("unexpected response status")
	ErrNotJSON          = errors.New("response is not JSON")
	ErrUnknownButton    = errors.New("unknown mark button")
	ErrNoAction         = errors.New("mark button has no bound URL")
	// ErrRetired is returned by a button that was replaced by a newer binding of its id.
	ErrRetired          = errors.New("mark button was rebound")
)

const (
	ActionCreated = "created"
	ActionDeleted = "deleted"
)

const (
	MarkedLabel     = `<em class="icon ni ni-check"></em>`
	MarkedClass     = "btn btn-warning mark-btn marked"
	MarkedTitle     = "حذف نشان"
	MarkedMargin    = "5px"
	UnmarkedLabel   = `<em class="icon ni ni-bookmark"></em>`
	UnmarkedClass   = "btn btn-gray mark-btn"
	UnmarkedTitle   = "افزودن نشان"
	UnmarkedMargin  = "0"
	SpinnerLabel    = `<span class="spinner-border spinner-border-sm"></span>`
	GenericError    = "خطا"
	ConnectionError = "خطا در ارتباط"
)

// ButtonState is everything the mark button shows.
type ButtonState struct {
	Label      string `json:"label"`
	ClassName  string `json:"className"`
	Title      string `json:"title"`
	MarginLeft string `json:"marginLeft"`
	Marked     bool   `json:"marked"`
	Disabled   bool   `json:"disabled"`
	Pending    bool   `json:"pending"`
}

// Snapshot is the appearance of a button taken right before a request, used to roll it back.
type Snapshot struct {
	Label      string
	ClassName  string
	Title      string
	MarginLeft string
	Marked     bool
}

// Response is the JSON body returned by the mark endpoint.
type Response struct {
	Success bool   `json:"success"`
	Action  string `json:"action,omitempty"`
	Message string `json:"message,omitempty"`
}

// Result is how a request ended: a decoded response, or a transport error.
type Result struct {
	Response Response
	Err      error
}

type MessageKind string

const (
	MessageError   MessageKind = "error"
	MessageSuccess MessageKind = "success"
)
