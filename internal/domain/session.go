package domain

import "time"

// Mode represents what the bot expects from the user next
type Mode string

const (
	ModeIdle               Mode = "idle"
	ModeAwaitingAnswer     Mode = "awaiting_answer"
	ModeAwaitingNewWord    Mode = "awaiting_new_word"
	ModeAwaitingDeleteWord Mode = "awaiting_delete_word"
)

// Session holds the user's transient quiz state.
// In ModeAwaitingAnswer Target is never empty and Distractors never contain it.
type Session struct {
	Mode        Mode
	Target      string
	Translation string
	Distractors []string
	UpdatedAt   time.Time
}

// IdleSession returns a session in the rest state
func IdleSession() Session {
	return Session{Mode: ModeIdle}
}
