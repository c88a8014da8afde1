// Package router wires incoming updates to FSM conversations, registered
// commands and callbacks, logging one summary line per handled update.
package router

import (
	"time"

	tg "github.com/maz-edu/sellersbot/core/telegram"
	"github.com/maz-edu/sellersbot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// FSM is the minimal interface of a conversation manager. Text updates are
// offered to the FSM before command lookup so an active conversation owns
// the user's input.
type FSM interface {
	InProgress(userID int64) bool
	HandleText(c tele.Context) error
}

// TextOptions controls fallback behaviour for unknown text.
type TextOptions struct {
	UnknownText tele.HandlerFunc
}

// TextRoute builds the tele.OnText handler.
func TextRoute(fsm FSM, reg *tg.Registry, opts TextOptions) tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		text := c.Text()

		if fsm != nil && fsm.InProgress(c.Sender().ID) {
			return handleWithSummary(c, "fsm", start, func() error {
				return fsm.HandleText(c)
			})
		}

		if reg != nil {
			if key, cmd, ok := reg.LookupCommand(text); ok && cmd.Handler != nil {
				return handleWithSummary(c, normalizeHandlerName(key), start, func() error {
					return cmd.Handler(c)
				})
			}
			if fb := reg.TextFallback(); fb != nil {
				return handleWithSummary(c, "fallback", start, func() error {
					return fb(c)
				})
			}
		}

		if opts.UnknownText != nil {
			return handleWithSummary(c, "unknown_text", start, func() error {
				return opts.UnknownText(c)
			})
		}

		logHandlerSummary(c, "unknown_text", start, nil)
		return nil
	}

	return tg.Route{
		Endpoint: tele.OnText,
		Handler:  middleware.Recover(middleware.Logging(handler)),
	}
}
