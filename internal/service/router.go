package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cardbot/internal/domain"
	"cardbot/internal/session"

	"go.uber.org/zap"
)

// Bot replies
const (
	msgGreeting      = "Hello, stranger, let's study English...\n\nНажми /cards, чтобы получить карточку."
	msgIdleHint      = "Нажми /cards, чтобы начать тренировку."
	msgCard          = "Выбери перевод слова:\n🇷🇺 %s"
	msgCorrect       = "Отлично! ❤\n%s -> %s"
	msgWrong         = "Допущена ошибка! Попробуй ещё раз."
	msgNoWords       = "No words available. Please add new words."
	msgAddPrompt     = "Send the word in English and its translation in Russian separated by a comma."
	msgAdded         = "Word '%s' with translation '%s' added."
	msgInvalidFormat = "Invalid format. Please use 'English, Russian'."
	msgDuplicate     = "Word '%s' is already in your list."
	msgDeletePrompt  = "Send the word in English you want to delete."
	msgDeleted       = "Word '%s' deleted."
	msgNotFound      = "Word '%s' is not in your list."
	msgFailure       = "Произошла ошибка. Попробуйте позже."
	msgUnknown       = "Неизвестная команда."
)

// Router maps incoming messages to quiz and word actions based on the session mode
type Router struct {
	words    *WordService
	quiz     *QuizService
	sessions SessionStore
	locks    *session.UserLocks
	logger   *zap.Logger
}

// NewRouter creates a new conversation router
func NewRouter(words *WordService, quiz *QuizService, sessions SessionStore, logger *zap.Logger) *Router {
	return &Router{
		words:    words,
		quiz:     quiz,
		sessions: sessions,
		locks:    session.NewUserLocks(),
		logger:   logger,
	}
}

// HandleIncoming processes one message and returns the reply.
// Messages from the same user are handled one at a time.
// Commands take priority over the current session mode.
func (r *Router) HandleIncoming(ctx context.Context, in domain.Incoming) domain.Outgoing {
	unlock := r.locks.Lock(in.UserID)
	defer unlock()

	switch in.Command {
	case domain.CommandStart:
		r.sessions.Reset(in.UserID)
		return domain.Outgoing{Text: msgGreeting, ShowMenu: true}
	case domain.CommandCards, domain.CommandNext:
		return r.nextCard(ctx, in.UserID, "")
	case domain.CommandAdd:
		r.sessions.Set(in.UserID, domain.Session{Mode: domain.ModeAwaitingNewWord})
		return domain.Outgoing{Text: msgAddPrompt}
	case domain.CommandDelete:
		r.sessions.Set(in.UserID, domain.Session{Mode: domain.ModeAwaitingDeleteWord})
		return domain.Outgoing{Text: msgDeletePrompt}
	case domain.CommandUnknown:
		return r.unknownCommand(in.UserID)
	}

	text := strings.TrimSpace(in.Text)

	switch r.sessions.Get(in.UserID).Mode {
	case domain.ModeAwaitingAnswer:
		return r.answer(ctx, in.UserID, text)
	case domain.ModeAwaitingNewWord:
		return r.addWord(ctx, in.UserID, text)
	case domain.ModeAwaitingDeleteWord:
		return r.deleteWord(ctx, in.UserID, text)
	default:
		return domain.Outgoing{Text: msgIdleHint, ShowMenu: true}
	}
}

func (r *Router) nextCard(ctx context.Context, userID int64, prefix string) domain.Outgoing {
	card, err := r.quiz.NextCard(ctx, userID)
	if errors.Is(err, domain.ErrNoWordsAvailable) {
		return domain.Outgoing{Text: prefix + msgNoWords, ShowMenu: true}
	}
	if err != nil {
		return r.failure(userID, "next card", err)
	}
	return cardReply(prefix, card)
}

func (r *Router) answer(ctx context.Context, userID int64, text string) domain.Outgoing {
	res, err := r.quiz.Evaluate(ctx, userID, text)
	if errors.Is(err, domain.ErrNoActiveCard) {
		return domain.Outgoing{Text: msgIdleHint, ShowMenu: true}
	}
	if err != nil {
		return r.failure(userID, "evaluate answer", err)
	}

	feedback := msgWrong
	if res.Correct {
		feedback = fmt.Sprintf(msgCorrect, res.Target, res.Translation)
	}
	feedback += "\n\n"

	if res.Next == nil {
		return domain.Outgoing{Text: feedback + msgNoWords, ShowMenu: true}
	}
	return cardReply(feedback, res.Next)
}

func (r *Router) addWord(ctx context.Context, userID int64, text string) domain.Outgoing {
	pair, err := ParseWordPair(text)
	if err != nil {
		return domain.Outgoing{Text: msgInvalidFormat}
	}

	word, err := r.words.AddWord(ctx, userID, pair.English, pair.Russian)
	switch {
	case errors.Is(err, domain.ErrMalformedInput):
		return domain.Outgoing{Text: msgInvalidFormat}
	case errors.Is(err, domain.ErrDuplicateWord):
		r.sessions.Reset(userID)
		return domain.Outgoing{Text: fmt.Sprintf(msgDuplicate, NormalizeWord(pair.English)), ShowMenu: true}
	case err != nil:
		return r.failure(userID, "add word", err)
	}

	r.sessions.Reset(userID)
	return domain.Outgoing{Text: fmt.Sprintf(msgAdded, word.English, word.Russian), ShowMenu: true}
}

func (r *Router) deleteWord(ctx context.Context, userID int64, text string) domain.Outgoing {
	err := r.words.DeleteWord(ctx, userID, text)
	switch {
	case errors.Is(err, domain.ErrMalformedInput):
		return domain.Outgoing{Text: msgDeletePrompt}
	case errors.Is(err, domain.ErrWordNotFound):
		r.sessions.Reset(userID)
		return domain.Outgoing{Text: fmt.Sprintf(msgNotFound, NormalizeWord(text)), ShowMenu: true}
	case err != nil:
		return r.failure(userID, "delete word", err)
	}

	r.sessions.Reset(userID)
	return domain.Outgoing{Text: fmt.Sprintf(msgDeleted, NormalizeWord(text)), ShowMenu: true}
}

// unknownCommand repeats what the user is expected to send next
func (r *Router) unknownCommand(userID int64) domain.Outgoing {
	prefix := msgUnknown + "\n\n"

	switch r.sessions.Get(userID).Mode {
	case domain.ModeAwaitingAnswer:
		card, err := r.quiz.CurrentCard(userID)
		if err != nil {
			return domain.Outgoing{Text: prefix + msgIdleHint, ShowMenu: true}
		}
		return cardReply(prefix, card)
	case domain.ModeAwaitingNewWord:
		return domain.Outgoing{Text: prefix + msgAddPrompt}
	case domain.ModeAwaitingDeleteWord:
		return domain.Outgoing{Text: prefix + msgDeletePrompt}
	default:
		return domain.Outgoing{Text: prefix + msgIdleHint, ShowMenu: true}
	}
}

// failure logs the error and returns a generic reply; the session is left as is
func (r *Router) failure(userID int64, op string, err error) domain.Outgoing {
	var storeErr *domain.StoreError
	if errors.As(err, &storeErr) {
		r.logger.Error("Store failure",
			zap.Int64("user_id", userID),
			zap.String("op", op),
			zap.String("store_op", storeErr.Op),
			zap.Error(err),
		)
	} else {
		r.logger.Error("Failed to handle message",
			zap.Int64("user_id", userID),
			zap.String("op", op),
			zap.Error(err),
		)
	}
	return domain.Outgoing{Text: msgFailure, ShowMenu: true}
}

func cardReply(prefix string, card *domain.Card) domain.Outgoing {
	return domain.Outgoing{
		Text:     prefix + fmt.Sprintf(msgCard, card.Target.Russian),
		Options:  card.Options,
		ShowMenu: true,
	}
}
