package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/reservedesk/reserve/internal/config"
	"github.com/reservedesk/reserve/internal/utils"
	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 15 * time.Second

// Application wires configuration, router, and server lifecycle.
type Application struct {
	cfg    config.Application
	deps   *Dependencies
	router *mux.Router
	srv    *http.Server
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication() (*Application, error) {
	cfg, err := config.Load("./config/application.yaml")
	if err != nil {
		return nil, err
	}
	return NewApplicationWith(cfg, &utils.SystemClock{})
}

func NewApplicationWith(cfg config.Application, clock utils.Clock) (*Application, error) {
	r := mux.NewRouter()

	// Build dependencies (editor, mark buttons, handlers...)
	deps := BuildDependencies(cfg, clock, NewMarkToggler())
	if err := deps.CalendarEditor.Start(); err != nil {
		deps.Close()
		return nil, err
	}

	// Middleware chain
	SetupMiddleware(r, deps, cfg)

	// Routes
	RegisterRoutes(r, deps, cfg)

	srv := &http.Server{
		Handler:      r,
		Addr:         cfg.Listen,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Application{cfg: cfg, deps: deps, router: r, srv: srv}, nil
}

// Run serves until ctx is cancelled, then gives in-flight requests shutdownTimeout to finish.
func (a *Application) Run(ctx context.Context) error {
	defer a.deps.Close()

	errs := make(chan error, 1)
	go func() {
		log.Infof("Starting server on %s", a.srv.Addr)
		errs <- a.srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
