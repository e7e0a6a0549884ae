package service

import (
	"context"
	"errors"
	"math/rand"

	"cardbot/internal/domain"

	"go.uber.org/zap"
)

// cardSize is the number of options on a card, target included
const cardSize = 4

// SessionStore keeps per-user quiz state
type SessionStore interface {
	Get(userID int64) domain.Session
	Set(userID int64, sess domain.Session)
	Reset(userID int64)
}

// QuizService draws cards and grades answers
type QuizService struct {
	words    *WordService
	sessions SessionStore
	shuffle  func(n int, swap func(i, j int))
	logger   *zap.Logger
}

// NewQuizService creates a new quiz service
func NewQuizService(words *WordService, sessions SessionStore, logger *zap.Logger) *QuizService {
	return &QuizService{
		words:    words,
		sessions: sessions,
		shuffle:  rand.Shuffle,
		logger:   logger,
	}
}

// NextCard draws a new card and moves the user to ModeAwaitingAnswer.
// The first sampled word is the target, the rest are distractors.
func (s *QuizService) NextCard(ctx context.Context, userID int64) (*domain.Card, error) {
	words, err := s.words.SampleWords(ctx, userID, cardSize)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		s.sessions.Reset(userID)
		return nil, domain.ErrNoWordsAvailable
	}

	card := &domain.Card{Target: words[0]}
	target := NormalizeWord(card.Target.English)
	card.Options = append(card.Options, card.Target.English)

	seen := map[string]bool{target: true}
	distractors := make([]string, 0, len(words)-1)
	for _, w := range words[1:] {
		key := NormalizeWord(w.English)
		if seen[key] {
			continue
		}
		seen[key] = true
		card.Distractors = append(card.Distractors, w)
		card.Options = append(card.Options, w.English)
		distractors = append(distractors, w.English)
	}

	s.shuffle(len(card.Options), func(i, j int) {
		card.Options[i], card.Options[j] = card.Options[j], card.Options[i]
	})

	s.sessions.Set(userID, domain.Session{
		Mode:        domain.ModeAwaitingAnswer,
		Target:      card.Target.English,
		Translation: card.Target.Russian,
		Distractors: distractors,
	})

	s.logger.Debug("Card drawn",
		zap.Int64("user_id", userID),
		zap.String("target", card.Target.English),
		zap.Int("options", len(card.Options)),
	)

	return card, nil
}

// CurrentCard rebuilds the card the user is answering, with options reshuffled
func (s *QuizService) CurrentCard(userID int64) (*domain.Card, error) {
	sess := s.sessions.Get(userID)
	if sess.Mode != domain.ModeAwaitingAnswer || sess.Target == "" {
		return nil, domain.ErrNoActiveCard
	}

	card := &domain.Card{
		Target:  domain.Word{English: sess.Target, Russian: sess.Translation},
		Options: append([]string{sess.Target}, sess.Distractors...),
	}
	for _, d := range sess.Distractors {
		card.Distractors = append(card.Distractors, domain.Word{English: d})
	}

	s.shuffle(len(card.Options), func(i, j int) {
		card.Options[i], card.Options[j] = card.Options[j], card.Options[i]
	})

	return card, nil
}

// Evaluate grades the answer to the current card and draws the next one.
// A wrong answer also moves on to a new card.
func (s *QuizService) Evaluate(ctx context.Context, userID int64, answer string) (*domain.AnswerResult, error) {
	sess := s.sessions.Get(userID)
	if sess.Mode != domain.ModeAwaitingAnswer || sess.Target == "" {
		return nil, domain.ErrNoActiveCard
	}

	result := &domain.AnswerResult{
		Correct:     NormalizeWord(answer) == NormalizeWord(sess.Target),
		Target:      sess.Target,
		Translation: sess.Translation,
	}

	s.logger.Info("Answer evaluated",
		zap.Int64("user_id", userID),
		zap.String("target", sess.Target),
		zap.Bool("correct", result.Correct),
	)

	next, err := s.NextCard(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrNoWordsAvailable) {
		return nil, err
	}
	result.Next = next

	return result, nil
}
