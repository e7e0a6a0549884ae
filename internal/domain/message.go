package domain

import "strings"

// Command is a user action recognised independently of the session mode
type Command string

const (
	CommandNone   Command = ""
	CommandStart  Command = "start"
	CommandCards  Command = "cards"
	CommandNext   Command = "next"
	CommandAdd    Command = "add_word"
	CommandDelete Command = "delete_word"
	// CommandUnknown is any other slash command
	CommandUnknown Command = "unknown"
)

// Button labels shown on the reply keyboard
const (
	ButtonNext   = "Дальше ⏭"
	ButtonAdd    = "Добавить слово ➕"
	ButtonDelete = "Удалить слово🔙"
)

// ParseCommand maps slash commands and keyboard labels to a Command
func ParseCommand(text string) Command {
	switch text {
	case "/start":
		return CommandStart
	case "/cards":
		return CommandCards
	case ButtonNext:
		return CommandNext
	case ButtonAdd:
		return CommandAdd
	case ButtonDelete:
		return CommandDelete
	}
	if strings.HasPrefix(text, "/") {
		return CommandUnknown
	}
	return CommandNone
}

// Incoming is a message received from a user
type Incoming struct {
	UserID  int64
	Text    string
	Command Command
}

// Outgoing is the bot's reply to an Incoming message
type Outgoing struct {
	Text string
	// Options are answer buttons for the current card
	Options []string
	// ShowMenu adds the command buttons to the keyboard
	ShowMenu bool
}
