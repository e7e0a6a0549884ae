package handler

import (
	"context"
	"strings"
	"time"

	"cardbot/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// requestTimeout bounds store access for a single update
const requestTimeout = 10 * time.Second

// MessageRouter turns an incoming message into a reply
type MessageRouter interface {
	HandleIncoming(ctx context.Context, in domain.Incoming) domain.Outgoing
}

// Registrar is the part of *tele.Bot used to register handlers
type Registrar interface {
	Handle(endpoint interface{}, h tele.HandlerFunc, m ...tele.MiddlewareFunc)
}

// Handler manages all bot interactions
type Handler struct {
	bot    Registrar
	router MessageRouter
	logger *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(bot Registrar, router MessageRouter, logger *zap.Logger) *Handler {
	return &Handler{
		bot:    bot,
		router: router,
		logger: logger,
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleMessage)
	h.bot.Handle("/cards", h.handleMessage)

	// Answers, keyboard buttons and pending input
	h.bot.Handle(tele.OnText, h.handleMessage)
}

// handleMessage routes a text message and sends the reply
func (h *Handler) handleMessage(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}

	text := strings.TrimSpace(c.Text())
	cmd := domain.ParseCommand(commandText(text))
	if cmd == domain.CommandUnknown {
		h.logger.Debug("Unknown command", zap.Int64("user_id", sender.ID), zap.String("text", text))
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	out := h.router.HandleIncoming(ctx, domain.Incoming{
		UserID:  sender.ID,
		Text:    text,
		Command: cmd,
	})

	if err := c.Send(out.Text, replyMarkup(out)); err != nil {
		h.logger.Warn("Failed to send reply",
			zap.Error(err),
			zap.Int64("user_id", sender.ID),
		)
		return err
	}
	return nil
}

// commandText strips the bot mention and arguments from a slash command
func commandText(text string) string {
	if !strings.HasPrefix(text, "/") {
		return text
	}
	if i := strings.IndexAny(text, "@ "); i > 0 {
		return text[:i]
	}
	return text
}

// replyMarkup renders answer options two per row followed by the command buttons
func replyMarkup(out domain.Outgoing) *tele.ReplyMarkup {
	if len(out.Options) == 0 && !out.ShowMenu {
		return &tele.ReplyMarkup{RemoveKeyboard: true}
	}

	markup := &tele.ReplyMarkup{ResizeKeyboard: true}

	btns := make([]tele.Btn, 0, len(out.Options))
	for _, opt := range out.Options {
		btns = append(btns, markup.Text(opt))
	}
	rows := markup.Split(2, btns)

	if out.ShowMenu {
		rows = append(rows,
			markup.Row(markup.Text(domain.ButtonNext)),
			markup.Row(markup.Text(domain.ButtonAdd), markup.Text(domain.ButtonDelete)),
		)
	}

	markup.Reply(rows...)
	return markup
}
