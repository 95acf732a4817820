package callbacks

import (
	"context"
	"strings"

	"github.com/Freeeeeet/portal_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/portal_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/portal_bot/internal/controller/callbacks/student"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Main Callback Router
// ========================

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	h.Logger.Info("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID),
		zap.String("user_name", callback.From.FirstName))

	switch {
	// ===== Schedule View: Filters & Layout =====
	case strings.HasPrefix(data, student.SetFilter):
		student.HandleSetFilter(ctx, b, callback, h)
	case data == student.ToggleShowBooked:
		student.HandleToggleShowBooked(ctx, b, callback, h)
	case strings.HasPrefix(data, student.ToggleDate):
		student.HandleToggleDate(ctx, b, callback, h)
	case strings.HasPrefix(data, student.SelectDate):
		student.HandleSelectDate(ctx, b, callback, h)
	case data == student.RefreshView:
		student.HandleRefresh(ctx, b, callback, h)
	case data == student.ScheduleImage:
		student.HandleScheduleImage(ctx, b, callback, h)
	case data == student.CloseView:
		student.HandleCloseView(ctx, b, callback, h)

	// ===== Booking & Sessions =====
	case strings.HasPrefix(data, student.BookSlot):
		student.HandleBookSlot(ctx, b, callback, h)
	case strings.HasPrefix(data, student.SessionCard):
		student.HandleSessionCard(ctx, b, callback, h)
	case data == student.MySessions:
		student.HandleMySessions(ctx, b, callback, h)

	case data == "noop":
		// No operation - просто подтверждаем callback
		common.AnswerCallback(ctx, b, callback.ID, "")

	// ===== Unknown Callback =====
	default:
		h.Logger.Warn("Unknown callback",
			zap.String("data", data),
			zap.Int64("user_id", callback.From.ID))
		common.AnswerCallback(ctx, b, callback.ID, "❌ Неизвестная команда")
	}
}
