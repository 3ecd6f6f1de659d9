package dialog

// Choice is one inline keyboard button: a visible label and the opaque token
// delivered back through HandleButton when pressed.
type Choice struct {
	Label string
	Token string
}

// Messenger is the outbound side of the transport. The engine never talks to
// Telegram directly; it emits prompts through this interface, which also
// covers push notifications sent outside the recipient's own dialog turn.
type Messenger interface {
	SendText(id int64, text string) error
	SendChoice(id int64, text string, choices []Choice) error
	SendDocument(id int64, path, caption string) error
}
