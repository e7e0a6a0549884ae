package repository

import (
	"context"

	"cardbot/internal/domain"
)

// UserRepository defines user data operations
type UserRepository interface {
	EnsureUser(ctx context.Context, user domain.User) error
}

// WordRepository defines word data operations
type WordRepository interface {
	// FindVisibleWord returns a word with the given English text that is global
	// or linked to the user, or nil if there is none
	FindVisibleWord(ctx context.Context, userID int64, english string) (*domain.Word, error)
	// AddUserWord inserts a word owned by the user and links it in one transaction
	AddUserWord(ctx context.Context, userID int64, english, russian string) (*domain.Word, error)
	// AddGlobalWord inserts a global word, reporting false if it already exists
	AddGlobalWord(ctx context.Context, english, russian string) (bool, error)
	// DeleteUserWord removes the user's link and the word itself when the user owns it
	DeleteUserWord(ctx context.Context, userID int64, english string) (bool, error)
	// SampleWords returns up to count random visible words, distinct by English text
	SampleWords(ctx context.Context, userID int64, count int) ([]domain.Word, error)
}
