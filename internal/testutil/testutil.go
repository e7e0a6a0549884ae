package testutil

import (
	"cardbot/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestWord creates a global test word
func NewTestWord(id int64, english, russian string) domain.Word {
	return domain.Word{
		ID:      id,
		English: english,
		Russian: russian,
	}
}

// NewTestUserWord creates a test word owned by the user
func NewTestUserWord(id, userID int64, english, russian string) domain.Word {
	w := NewTestWord(id, english, russian)
	w.OwnerID = &userID
	return w
}
