package middleware

import (
	"context"
	"time"

	"cardbot/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const ensureUserTimeout = 5 * time.Second

// UserEnsurer registers chat senders in the store
type UserEnsurer interface {
	EnsureUser(ctx context.Context, user domain.User) error
}

// EnsureUser creates middleware that registers the sender before any handler runs
func EnsureUser(users UserEnsurer, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil {
				return next(c)
			}

			ctx, cancel := context.WithTimeout(context.Background(), ensureUserTimeout)
			defer cancel()

			if err := users.EnsureUser(ctx, domain.User{ID: sender.ID, Username: sender.Username}); err != nil {
				logger.Error("Failed to ensure user exists in middleware",
					zap.Error(err),
					zap.Int64("user_id", sender.ID),
				)
				return c.Send("Произошла ошибка. Попробуйте позже.")
			}

			return next(c)
		}
	}
}
