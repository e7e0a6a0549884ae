package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cardbot/internal/domain"
	"cardbot/internal/repository"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// WordService handles the user's word list
type WordService struct {
	wordRepo repository.WordRepository
	validate *validator.Validate
	logger   *zap.Logger
}

// NewWordService creates a new word service
func NewWordService(wordRepo repository.WordRepository, logger *zap.Logger) *WordService {
	return &WordService{
		wordRepo: wordRepo,
		validate: validator.New(),
		logger:   logger,
	}
}

// ParseWordPair parses "english, russian" input.
// Exactly two non-empty comma-separated fields are accepted.
func ParseWordPair(text string) (domain.WordPair, error) {
	parts := strings.Split(text, ",")
	if len(parts) != 2 {
		return domain.WordPair{}, fmt.Errorf("%w: expected 2 fields, got %d", domain.ErrMalformedInput, len(parts))
	}

	pair := domain.WordPair{
		English: strings.TrimSpace(parts[0]),
		Russian: strings.TrimSpace(parts[1]),
	}
	if pair.English == "" || pair.Russian == "" {
		return domain.WordPair{}, fmt.Errorf("%w: empty field", domain.ErrMalformedInput)
	}

	return pair, nil
}

// NormalizeWord trims and lower-cases a word for storage and comparison
func NormalizeWord(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// AddWord stores a new word for the user.
// A word already visible to the user, global or their own, is a duplicate.
func (s *WordService) AddWord(ctx context.Context, userID int64, english, russian string) (*domain.Word, error) {
	pair := domain.WordPair{
		English: NormalizeWord(english),
		Russian: strings.TrimSpace(russian),
	}
	if err := s.validate.Struct(pair); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedInput, err)
	}

	existing, err := s.wordRepo.FindVisibleWord(ctx, userID, pair.English)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateWord
	}

	word, err := s.wordRepo.AddUserWord(ctx, userID, pair.English, pair.Russian)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Word added",
		zap.Int64("user_id", userID),
		zap.Int64("word_id", word.ID),
		zap.String("word", word.English),
	)

	return word, nil
}

// DeleteWord removes the word from the user's list
func (s *WordService) DeleteWord(ctx context.Context, userID int64, english string) error {
	english = NormalizeWord(english)
	if english == "" {
		return fmt.Errorf("%w: empty word", domain.ErrMalformedInput)
	}

	found, err := s.wordRepo.DeleteUserWord(ctx, userID, english)
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrWordNotFound
	}

	s.logger.Info("Word deleted",
		zap.Int64("user_id", userID),
		zap.String("word", english),
	)

	return nil
}

// SampleWords returns up to count random words visible to the user
func (s *WordService) SampleWords(ctx context.Context, userID int64, count int) ([]domain.Word, error) {
	if count <= 0 {
		return nil, nil
	}
	return s.wordRepo.SampleWords(ctx, userID, count)
}

// ImportGlobalWords stores words shared by all users, skipping invalid and existing ones.
// It returns the number of words inserted.
func (s *WordService) ImportGlobalWords(ctx context.Context, pairs []domain.WordPair) (int, error) {
	inserted := 0
	for _, p := range pairs {
		pair := domain.WordPair{
			English: NormalizeWord(p.English),
			Russian: strings.TrimSpace(p.Russian),
		}

		if err := s.validate.Struct(pair); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				s.logger.Warn("Skipping invalid global word",
					zap.String("word", p.English),
					zap.String("field", verrs[0].Field()),
					zap.String("rule", verrs[0].Tag()),
				)
				continue
			}
			return inserted, err
		}

		ok, err := s.wordRepo.AddGlobalWord(ctx, pair.English, pair.Russian)
		if err != nil {
			return inserted, err
		}
		if ok {
			inserted++
		}
	}

	return inserted, nil
}
