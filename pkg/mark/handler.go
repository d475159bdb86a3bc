package mark

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/reservedesk/reserve/internal/rest"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	registry *Registry
}

type BindRequest struct {
	Action string `json:"action"`
	Marked bool   `json:"marked"`
}

func NewHandler(registry *Registry) *Handler {
	return &Handler{registry: registry}
}

func (h *Handler) BindButton(w http.ResponseWriter, r *http.Request) {
	var req BindRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}

	button, err := h.registry.Bind(mux.Vars(r)["buttonId"], req.Action, req.Marked)
	if err != nil {
		writeMarkError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, button.View())
}

func (h *Handler) GetButton(w http.ResponseWriter, r *http.Request) {
	button, err := h.registry.Get(mux.Vars(r)["buttonId"])
	if err != nil {
		writeMarkError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, button.View())
}

// Toggle submits the button. The anti-forgery token is read from the X-CSRFToken header, or from
// the csrfmiddlewaretoken form field.
func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	button, err := h.registry.Get(mux.Vars(r)["buttonId"])
	if err != nil {
		writeMarkError(w, err)
		return
	}

	token := r.Header.Get(TokenHeader)
	if token == "" {
		token = r.FormValue(TokenField)
	}
	if token == "" {
		rest.WriteError(w, http.StatusBadRequest, "Missing anti-forgery token", "send it as "+TokenHeader+" or "+TokenField)
		return
	}

	view, err := button.Submit(r.Context(), token)
	if errors.Is(err, ErrPending) {
		rest.WriteJSON(w, http.StatusConflict, view)
		return
	}
	if err != nil {
		writeMarkError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, view)
}

func writeMarkError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUnknownButton):
		rest.WriteError(w, http.StatusNotFound, "Mark button not found", err.Error())
	case errors.Is(err, ErrNoAction):
		rest.WriteError(w, http.StatusBadRequest, "Mark button has no URL", err.Error())
	case errors.Is(err, ErrPending):
		rest.WriteError(w, http.StatusConflict, "Mark request in flight", err.Error())
	case errors.Is(err, ErrRetired):
		rest.WriteError(w, http.StatusConflict, "Mark button was rebound", err.Error())
	default:
		log.Errorf("mark request failed: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
