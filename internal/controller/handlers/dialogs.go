package handlers

import (
	"context"
	"strconv"
	"strings"

	"github.com/Freeeeeet/portal_bot/internal/controller/callbacks/student"
	"github.com/Freeeeeet/portal_bot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от состояния пользователя
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	// Игнорируем команды (они обрабатываются другими handlers)
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	chatID := update.Message.Chat.ID

	switch h.states.GetState(chatID) {
	case state.StateAwaitDuration:
		h.handleDurationStep(ctx, b, update)
	default:
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "🤔 Не понимаю. Используйте /help для списка команд.",
		})
	}
}

// handleDurationStep обрабатывает ввод длительности и завершает бронирование
func (h *Handlers) handleDurationStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	input := strings.TrimSpace(update.Message.Text)

	duration, err := strconv.Atoi(input)
	if err != nil || duration <= 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Введите длительность в минутах положительным числом, например 60.\n\nДля отмены используйте /cancel",
		})
		return
	}

	slotID := h.states.PendingSlot(chatID)
	h.states.ClearState(chatID)
	if slotID == "" {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Слот для бронирования не выбран. Откройте расписание заново.",
		})
		return
	}

	h.logger.Info("Completing booking from dialog",
		zap.Int64("chat_id", chatID),
		zap.String("slot_id", slotID),
		zap.Int("duration_minutes", duration))

	text := student.CompleteBooking(ctx, b, chatID, slotID, duration, h.cb)
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})
}
