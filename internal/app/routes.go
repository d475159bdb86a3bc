package app

import (
	"github.com/gorilla/mux"
	"github.com/reservedesk/reserve/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Calendar
	r.HandleFunc("/api/calendar/event", deps.CalendarHandler.GetEvents).Methods("GET")
	r.HandleFunc("/api/calendar/event", deps.CalendarHandler.CreateEvent).Methods("POST")
	r.HandleFunc("/api/calendar/event/{eventId}", deps.CalendarHandler.GetEvent).Methods("GET")
	r.HandleFunc("/api/calendar/event/{eventId}", deps.CalendarHandler.UpdateEvent).Methods("PUT")
	r.HandleFunc("/api/calendar/event/{eventId}", deps.CalendarHandler.DeleteEvent).Methods("DELETE")
	r.HandleFunc("/api/calendar/form/add", deps.CalendarHandler.GetAddForm).Methods("GET")
	r.HandleFunc("/api/calendar/days", deps.CalendarHandler.GetDays).Methods("GET")
	r.HandleFunc("/api/calendar/export.ics", deps.CalendarHandler.ExportEvents).Methods("GET")

	// Mark buttons
	r.HandleFunc("/api/mark/{buttonId}", deps.MarkHandler.BindButton).Methods("PUT")
	r.HandleFunc("/api/mark/{buttonId}", deps.MarkHandler.GetButton).Methods("GET")
	r.HandleFunc("/api/mark/{buttonId}/toggle", deps.MarkHandler.Toggle).Methods("POST")
}
