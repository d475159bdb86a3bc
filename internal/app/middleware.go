package app

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/reservedesk/reserve/internal/config"
	log "github.com/sirupsen/logrus"
)

const RequestIdHeader = "X-Request-Id"

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Tag every request with an id, reusing the caller's one when present
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			requestId := req.Header.Get(RequestIdHeader)
			if requestId == "" {
				requestId = uuid.NewString()
			}
			w.Header().Set(RequestIdHeader, requestId)

			started := deps.Clock.Now()
			log.WithField("requestId", requestId).Debugf("%s %s", req.Method, req.URL.Path)
			next.ServeHTTP(w, req)
			log.WithFields(log.Fields{
				"requestId": requestId,
				"took":      deps.Clock.Now().Sub(started).Round(time.Microsecond),
			}).Debugf("%s %s done", req.Method, req.URL.Path)
		})
	})
}
