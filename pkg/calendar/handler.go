package calendar

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/reservedesk/reserve/internal/rest"
	"github.com/reservedesk/reserve/internal/utils"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	editor *Editor
	clock  utils.Clock
}

type EventDTO struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end,omitzero"`
	AllDay      bool      `json:"allDay"`
	ClassName   string    `json:"className,omitempty"`
}

type SelectionDTO struct {
	Form    EditForm `json:"form"`
	Preview Preview  `json:"preview"`
}

func NewHandler(editor *Editor, clock utils.Clock) *Handler {
	return &Handler{editor: editor, clock: clock}
}

func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	events := h.editor.Events()
	dtos := make([]EventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, eventToDTO(e))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func (h *Handler) GetAddForm(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, h.editor.OpenAdd())
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var fields FormFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}

	event, err := h.editor.Create(r.Context(), fields)
	if err != nil {
		writeEditorError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, eventToDTO(event))
}

func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventId := mux.Vars(r)["eventId"]

	form, preview, err := h.editor.Select(r.Context(), eventId)
	if err != nil {
		writeEditorError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, SelectionDTO{Form: form, Preview: preview})
}

func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var fields FormFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}

	event, err := h.editor.Update(r.Context(), EditForm{ID: mux.Vars(r)["eventId"], FormFields: fields})
	if err != nil {
		writeEditorError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, eventToDTO(event))
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.editor.Delete(r.Context(), mux.Vars(r)["eventId"]); err != nil {
		writeEditorError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetDays(w http.ResponseWriter, r *http.Request) {
	from, err := time.Parse(dateLayout, r.URL.Query().Get("from"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid from (date) format", "'from' must be in YYYY-MM-DD format")
		return
	}
	to, err := time.Parse(dateLayout, r.URL.Query().Get("to"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid to (date) format", "'to' must be in YYYY-MM-DD format")
		return
	}

	cells, err := h.editor.DayCells(from, to)
	if err != nil {
		writeEditorError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, cells)
}

func (h *Handler) ExportEvents(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="calendar.ics"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(h.editor.ExportICS(h.clock.Now()))); err != nil {
		log.Errorf("failed to write calendar export: %v", err)
	}
}

func writeEditorError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrStaleReference):
		rest.WriteError(w, http.StatusNotFound, "Event no longer exists", err.Error())
	case errors.Is(err, ErrEventNotFound):
		rest.WriteError(w, http.StatusNotFound, "Event not found", err.Error())
	case errors.Is(err, ErrUnknownTheme), errors.Is(err, ErrInvalidEvent):
		rest.WriteError(w, http.StatusBadRequest, "Invalid event", err.Error())
	case errors.Is(err, ErrInvalidRange):
		rest.WriteError(w, http.StatusBadRequest, "Invalid date range", err.Error())
	default:
		log.Errorf("calendar request failed: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func eventToDTO(e WidgetEvent) EventDTO {
	dto := EventDTO{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Start:       e.Start,
		End:         e.End,
		AllDay:      e.AllDay,
	}
	if len(e.ClassNames) > 0 {
		dto.ClassName = e.ClassNames[0]
	}
	return dto
}
