package helpers

import (
	tele "gopkg.in/telebot.v4"
)

// SendText sends raw text to the current recipient with an optional markup.
func SendText(c tele.Context, text string, markup ...*tele.ReplyMarkup) error {
	if len(markup) > 0 && markup[0] != nil {
		return c.Send(text, markup[0])
	}
	return c.Send(text)
}

// EditText edits the current message, or sends a new one when there is
// nothing to edit (e.g. the update was not a callback).
func EditText(c tele.Context, text string, markup ...*tele.ReplyMarkup) error {
	var rm *tele.ReplyMarkup
	if len(markup) > 0 {
		rm = markup[0]
	}
	return c.EditOrSend(text, &tele.SendOptions{ReplyMarkup: rm})
}
