package student

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/portal_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/portal_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/portal_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/portal_bot/internal/model"
	"github.com/Freeeeeet/portal_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Booking Flow
// ========================

// HandleBookSlot начинает диалог бронирования: запоминает слот и
// просит у студента длительность занятия
func HandleBookSlot(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	slotID, err := common.ParseArgFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат данных")
		return
	}

	chatID := callback.From.ID
	student := h.States.Student(chatID)
	if !student.IsAuthenticated() {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "🔐 Сначала войдите через /login <id>")
		return
	}

	view := h.States.View(chatID)
	if view == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Расписание не открыто")
		return
	}

	slot, ok := view.Slot(slotID)
	if !ok {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Слот не найден. Обновите расписание.")
		return
	}
	if slot.IsBooked {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "🔒 Слот уже занят")
		return
	}

	h.States.SetPendingSlot(chatID, slotID)

	when := formatting.FormatTimeRange(slot.StartTime, slot.EndTime)
	if day, err := slot.Day(); err == nil {
		when = formatting.FormatDate(day) + ", " + when
	}
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text: fmt.Sprintf("📝 Бронируем слот %s\n\nВведите длительность занятия в минутах (например, 60):",
			when),
	})
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// CompleteBooking выполняет бронирование после ввода длительности.
// Возвращает текст для ответа студенту.
func CompleteBooking(ctx context.Context, b *bot.Bot, chatID int64, slotID string, duration int, h *callbacktypes.Handler) string {
	view := h.States.View(chatID)
	if view == nil {
		return "❌ Расписание не открыто. Используйте /teacher <id>."
	}

	session, err := h.BookingService.Book(ctx, view, slotID, duration)
	if err != nil {
		h.Logger.Info("Booking rejected",
			zap.Int64("chat_id", chatID),
			zap.String("slot_id", slotID),
			zap.Error(err))
		return bookingErrorText(err)
	}

	RenderSchedule(ctx, b, chatID, h)

	var slot *model.Slot
	if s, ok := view.Slot(slotID); ok {
		slot = &s
	}
	return "✅ Слот забронирован!\n\n" + formatting.FormatSessionCard(session, slot, time.Now())
}

func bookingErrorText(err error) string {
	var failed *service.BookingFailedError
	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		return "🔐 Сначала войдите через /login <id>"
	case errors.Is(err, service.ErrInvalidDuration):
		return "❌ Длительность должна быть положительным числом минут"
	case errors.Is(err, service.ErrBookingInProgress):
		return "⏳ Этот слот уже бронируется, подождите"
	case errors.Is(err, service.ErrSlotNotFound):
		return "❌ Слот не найден. Обновите расписание."
	case errors.Is(err, service.ErrViewClosed):
		return "❌ Расписание было закрыто. Откройте его заново через /teacher <id>."
	case errors.As(err, &failed):
		return "❌ Не удалось забронировать: " + failed.Message
	default:
		return "❌ Не удалось связаться с порталом. Попробуйте позже."
	}
}
