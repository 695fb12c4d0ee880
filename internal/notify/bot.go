// Package notify owns the Telegram front end: operator commands arrive here
// and are handed to the shared command runner.
package notify

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	tele "gopkg.in/telebot.v3"

	"time-warp/internal/models"
	"time-warp/internal/service"
	"time-warp/internal/timewarp"
)

// TravelBot is the Telegram bot exposing /travel, /warp and /now.
type TravelBot struct {
	bot     *tele.Bot
	adminID int64
	runner  *service.CommandRunner
}

// NewTravelBot creates a new TravelBot
func NewTravelBot(token string, adminID int64, runner *service.CommandRunner) (*TravelBot, error) {
	bot, err := tele.NewBot(tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return nil, err
	}

	t := &TravelBot{bot: bot, adminID: adminID, runner: runner}
	t.registerHandlers()
	return t, nil
}

func (t *TravelBot) registerHandlers() {
	t.bot.Use(t.adminOnly)

	t.bot.Handle("/travel", func(c tele.Context) error {
		return t.run(c, append([]string{"travel"}, c.Args()...))
	})
	t.bot.Handle("/warp", func(c tele.Context) error {
		return t.run(c, append([]string{"warp"}, c.Args()...))
	})
	t.bot.Handle("/now", func(c tele.Context) error {
		return t.run(c, []string{"now"})
	})
	t.bot.Handle("/help", func(c tele.Context) error {
		return c.Send(helpText)
	})
}

// adminOnly drops updates from anyone but the configured operator.
func (t *TravelBot) adminOnly(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		if t.adminID != 0 && c.Sender() != nil && c.Sender().ID != t.adminID {
			log.Printf("Ignoring command from unauthorized user %d", c.Sender().ID)
			return nil
		}
		return next(c)
	}
}

func (t *TravelBot) run(c tele.Context, args []string) error {
	out, err := t.runner.Execute(context.Background(), args)
	if err != nil {
		return c.Send("⚠️ " + userMessage(err))
	}
	return c.Send(out)
}

// userMessage flattens a failure into the single human-readable line the bot
// reports. Every error ends the requested operation; nothing is retried.
func userMessage(err error) string {
	switch {
	case errors.Is(err, timewarp.ErrNestedRelative):
		return "already travelling by a relative offset; nested relative travel is not allowed"
	case errors.Is(err, models.ErrWarpNotFound):
		return "no such warp point"
	case errors.Is(err, models.ErrWarpExists):
		return "a warp point with that id already exists"
	default:
		return err.Error()
	}
}

const helpText = `Commands:
/now
/travel to <date> <command...>
/travel by <delta> <command...>
/travel warp <id> <command...>
/warp create <id> to|by <value> [description...]
/warp delete <id>
/warp list

Dates are UTC (2030-01-01, 2030-01-01 15:04, RFC3339, or epoch millis).
Deltas look like 1h, -90m, 1d2h30m, 2w.
Travel commands nest: /travel to 2030-01-01 travel by 1h now`

// Start begins polling for updates (blocking).
func (t *TravelBot) Start() {
	log.Println("Telegram bot polling started")
	t.bot.Start()
}

// Stop stops the bot.
func (t *TravelBot) Stop() {
	t.bot.Stop()
}

// Send pushes a message to the operator, used by schedulers and one-shot runs.
func (t *TravelBot) Send(text string) error {
	_, err := t.bot.Send(&tele.User{ID: t.adminID}, strings.TrimSpace(text))
	return err
}
