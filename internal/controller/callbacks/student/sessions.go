package student

import (
	"context"
	"strings"
	"time"

	"github.com/Freeeeeet/portal_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/portal_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/portal_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/portal_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/portal_bot/internal/model"
	"github.com/Freeeeeet/portal_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// ========================
// My Sessions
// ========================

// HandleMySessions показывает список сессий студента из открытого экрана
func HandleMySessions(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	chatID := callback.From.ID
	SendMySessions(ctx, b, chatID, h)
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// SendMySessions отправляет сводку сессий в чат. Используется и из
// callback-кнопки, и из команды /mysessions.
func SendMySessions(ctx context.Context, b *bot.Bot, chatID int64, h *callbacktypes.Handler) {
	student := h.States.Student(chatID)
	if !student.IsAuthenticated() {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "🔐 Сначала войдите через /login <id>",
		})
		return
	}

	view := h.States.View(chatID)
	if view == nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "📭 Расписание не открыто. Используйте /teacher <id>, чтобы открыть.",
		})
		return
	}

	sessions := view.Sessions()
	if len(sessions) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "📭 У вас пока нет сессий у этого учителя.",
		})
		return
	}

	now := time.Now()
	var text strings.Builder
	text.WriteString("📋 <b>Мои сессии</b>\n")

	kb := keyboard.NewBuilder()
	for i := range sessions {
		sess := &sessions[i]
		var slot *model.Slot
		if s, ok := view.Slot(sess.SlotID); ok {
			slot = &s
		}

		text.WriteString("\n")
		text.WriteString(formatting.FormatSessionCard(sess, slot, now))
		text.WriteString("\n")

		label := sessionLabel(sess, slot)
		if service.CanJoin(sess, now) {
			kb.Row(keyboard.URLButton("🎥 "+label, sess.MeetingLink))
		} else {
			kb.Row(keyboard.Button("💜 "+label, SessionCard+sess.SlotID))
		}
	}
	kb.Row(keyboard.Button("⬅️ К расписанию", RefreshView))

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text.String(),
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: kb.Build(),
	})
}

// HandleSessionCard показывает карточку одной сессии
func HandleSessionCard(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	slotID, err := common.ParseArgFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат данных")
		return
	}

	chatID := callback.From.ID
	view := h.States.View(chatID)
	if view == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Расписание не открыто")
		return
	}

	sess := view.SessionForSlot(slotID)
	if sess == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Сессия не найдена. Обновите расписание.")
		return
	}

	var slot *model.Slot
	if s, ok := view.Slot(slotID); ok {
		slot = &s
	}

	now := time.Now()
	kb := keyboard.NewBuilder()
	if service.CanJoin(sess, now) {
		kb.Row(keyboard.URLButton("🎥 Присоединиться", sess.MeetingLink))
	}
	kb.Row(keyboard.Button("⬅️ К расписанию", RefreshView))

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        formatting.FormatSessionCard(sess, slot, now),
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: kb.Build(),
	})
	common.AnswerCallback(ctx, b, callback.ID, "")
}

func sessionLabel(sess *model.Session, slot *model.Slot) string {
	if slot != nil {
		label := formatting.FormatTimeRange(slot.StartTime, slot.EndTime)
		if day, err := slot.Day(); err == nil {
			label = formatting.FormatDate(day) + " " + label
		}
		return label
	}
	if sess.SessionStart != nil {
		return formatting.FormatDateTime(*sess.SessionStart)
	}
	return "Сессия " + sess.ID
}
