package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/reservedesk/reserve/internal/config"
	"github.com/reservedesk/reserve/internal/event_bus"
	"github.com/reservedesk/reserve/internal/utils"
	"github.com/reservedesk/reserve/pkg/mark"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

type toggleParams struct {
	Action string
	Id     string
	Token  string
	Marked bool
}

func toggleCommand(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "toggle",
		Usage: "send one mark toggle and print the resulting button",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "action", Usage: "URL the button is bound to; defaults to <mark.baseurl>/<id>/"},
			&cli.StringFlag{Name: "id", Value: "cli", Usage: "button id"},
			&cli.StringFlag{Name: "token", Required: true, Usage: "anti-forgery token", Sources: cli.EnvVars("RESERVE_MARK_TOKEN")},
			&cli.BoolFlag{Name: "marked", Usage: "the button starts out marked"},
			&cli.DurationFlag{Name: "timeout", Usage: "request timeout, overrides mark.timeout"},
			&cli.StringFlag{Name: "config", Value: "./config/application.yaml", Usage: "configuration file"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := config.Load(cmd.String("config"))
			if err != nil {
				return err
			}
			if timeout := cmd.Duration("timeout"); timeout > 0 {
				cfg.Mark.Timeout = timeout
			}

			return runToggle(ctx, out, cfg.Mark, mark.NewHTTPToggler(&http.Client{}), toggleParams{
				Action: cmd.String("action"),
				Id:     cmd.String("id"),
				Token:  cmd.String("token"),
				Marked: cmd.Bool("marked"),
			})
		},
	}
}

func runToggle(ctx context.Context, out io.Writer, cfg config.Mark, toggler mark.Toggler, params toggleParams) error {
	bus := event_bus.NewEventBus()
	unsubscribe := event_bus.SubscribeTyped(bus, event_bus.MarkToggledType, func(e event_bus.EventT[event_bus.MarkToggled]) error {
		log.Debugf("toggle of %s took %s", e.Data.ButtonID, e.Data.Took)
		return nil
	})
	defer unsubscribe()

	registry := mark.NewRegistry(cfg.BaseURL, toggler, utils.SystemClock{}, bus, mark.Options{
		Timeout:         cfg.Timeout,
		MessageDuration: cfg.MessageDuration,
	})
	button, err := registry.Bind(params.Id, params.Action, params.Marked)
	if err != nil {
		return err
	}

	view, err := button.Submit(ctx, params.Token)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(view); err != nil {
		return err
	}
	if view.Message != nil {
		return cli.Exit(fmt.Sprintf("mark not toggled: %s", view.Message.Text), 1)
	}
	return nil
}
