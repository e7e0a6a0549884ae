package domain

// Word represents an English word with its Russian translation.
// OwnerID is nil for global words visible to every user.
type Word struct {
	ID      int64  `db:"id"`
	English string `db:"english_word"`
	Russian string `db:"russian_word"`
	OwnerID *int64 `db:"user_id"`
}

// IsGlobal reports whether the word is shared by all users
func (w Word) IsGlobal() bool {
	return w.OwnerID == nil
}

// WordPair is a word-translation pair before it is stored
type WordPair struct {
	English string `yaml:"english" validate:"required,max=64"`
	Russian string `yaml:"russian" validate:"required,max=64"`
}

// Card is a single quiz question
type Card struct {
	Target      Word
	Distractors []Word
	// Options holds the English text of target and distractors in display order
	Options []string
}

// AnswerResult is the outcome of answering a card
type AnswerResult struct {
	Correct     bool
	Target      string
	Translation string
	// Next is nil when no further card could be drawn
	Next *Card
}
