package bot

import (
	tele "gopkg.in/telebot.v4"

	tghelpers "github.com/maz-edu/sellersbot/core/telegram/helpers"
	"github.com/maz-edu/sellersbot/core/telegram/keyboard"
	"github.com/maz-edu/sellersbot/internal/flow"
)

// sendReplies translates flow replies into Telegram sends, in order. An Edit
// reply rewrites the triggering message; everything else is a fresh send.
func sendReplies(c tele.Context, replies []flow.Reply) error {
	for _, r := range replies {
		markup := markupFor(r)
		if r.Edit {
			if err := tghelpers.EditText(c, r.Text, markup); err != nil {
				return err
			}
			continue
		}
		if err := tghelpers.SendText(c, r.Text, markup); err != nil {
			return err
		}
	}
	return nil
}

func markupFor(r flow.Reply) *tele.ReplyMarkup {
	switch {
	case len(r.Inline) > 0:
		rows := make([][]keyboard.InlineBtn, len(r.Inline))
		for i, row := range r.Inline {
			btns := make([]keyboard.InlineBtn, len(row))
			for j, b := range row {
				btns[j] = keyboard.InlineBtn{Text: b.Text, Unique: b.Action, Data: b.Payload}
			}
			rows[i] = btns
		}
		return keyboard.InlineButtonsRows(rows...)
	case len(r.Keyboard) > 0:
		return keyboard.ReplyButtons(r.Keyboard...)
	case r.RemoveKeyboard:
		return keyboard.RemoveKeyboard()
	}
	return nil
}
