// Package flow implements the bot's conversations as transport-agnostic
// state machines. Flows consume plain text events and produce replies; the
// bot layer translates replies into Telegram sends and keyboards.
package flow

// Event is one inbound text message from a user.
type Event struct {
	UserID   int64
	Username string
	Text     string
}

// Button is an inline button. Action and Payload together form the callback
// routing key; the transport layer encodes them on the wire.
type Button struct {
	Text    string
	Action  string
	Payload string
}

// Reply is one outbound message. At most one of Keyboard, RemoveKeyboard and
// Inline is set.
type Reply struct {
	Text string

	// Keyboard renders a one-shot reply keyboard, row by row.
	Keyboard [][]string

	// RemoveKeyboard clears any visible reply keyboard.
	RemoveKeyboard bool

	// Inline attaches inline buttons, row by row.
	Inline [][]Button

	// Edit asks the transport to edit the triggering message in place
	// instead of sending a new one. Only meaningful for callback events.
	Edit bool
}

// Greeting is the /start screen.
func Greeting() []Reply {
	return []Reply{{Text: msgWelcome}}
}

// Help is the /help screen.
func Help() []Reply {
	return []Reply{{Text: msgHelp}}
}
