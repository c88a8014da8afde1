package bot

import (
	"strings"

	tele "gopkg.in/telebot.v4"

	tg "github.com/maz-edu/sellersbot/core/telegram"
	tghelpers "github.com/maz-edu/sellersbot/core/telegram/helpers"
	"github.com/maz-edu/sellersbot/internal/flow"
)

// conversations multiplexes the bot's flows behind the router's FSM
// contract. A user has at most one flow in progress at a time.
type conversations struct {
	registration *flow.Registration
	referral     *flow.Referral
	registry     *tg.Registry
}

// InProgress reports whether any flow owns the user's text input.
func (f *conversations) InProgress(userID int64) bool {
	return f.registration.Active(userID) || f.referral.Active(userID)
}

// HandleText feeds one text update into the user's active flow. /cancel and
// /start abort the conversation; other commands run without disturbing it.
func (f *conversations) HandleText(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	text := strings.TrimSpace(c.Text())

	if strings.HasPrefix(text, "/") {
		switch text {
		case "/cancel":
			return sendReplies(c, f.cancel(sender.ID))
		case "/start":
			f.abort(sender.ID)
			return sendReplies(c, flow.Greeting())
		}
		if f.registry != nil {
			if _, cmd, ok := f.registry.LookupCommand(text); ok && cmd.Handler != nil {
				return cmd.Handler(c)
			}
		}
		return nil
	}

	ev := flow.Event{
		UserID:   sender.ID,
		Username: sender.Username,
		Text:     c.Text(),
	}
	ctx := tghelpers.BuildContext(c)

	var (
		replies []flow.Reply
		err     error
	)
	switch {
	case f.registration.Active(sender.ID):
		replies, err = f.registration.Handle(ctx, ev)
	case f.referral.Active(sender.ID):
		replies, err = f.referral.Handle(ctx, ev)
	default:
		return nil
	}

	if sendErr := sendReplies(c, replies); sendErr != nil && err == nil {
		err = sendErr
	}
	return err
}

func (f *conversations) cancel(userID int64) []flow.Reply {
	if f.registration.Active(userID) {
		return f.registration.Cancel(userID)
	}
	return f.referral.Cancel(userID)
}

func (f *conversations) abort(userID int64) {
	f.registration.Cancel(userID)
	f.referral.Cancel(userID)
}
