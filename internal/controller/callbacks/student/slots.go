package student

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/portal_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/portal_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/portal_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/portal_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/portal_bot/internal/controller/state"
	"github.com/Freeeeeet/portal_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Schedule View Rendering
// ========================

const maxDateButtons = 5

// RenderSchedule отрисовывает экран расписания чата: шапка со сводкой,
// группы по датам с учётом фильтров и клавиатура действий. Существующее
// сообщение редактируется на месте, иначе отправляется новое.
func RenderSchedule(ctx context.Context, b *bot.Bot, chatID int64, h *callbacktypes.Handler) {
	view := h.States.View(chatID)
	if view == nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "📭 Расписание не открыто. Используйте /teacher <id>, чтобы открыть.",
		})
		return
	}

	prefs := h.States.Prefs(chatID)
	now := time.Now()
	proj := service.Project(view.Slots(), service.ProjectionOptions{
		Filter:       prefs.Filter,
		ShowBooked:   prefs.ShowBooked,
		SelectedDate: prefs.SelectedDate,
	})

	text := buildScheduleText(view, proj, prefs, now)
	kb := buildScheduleKeyboard(view, proj, prefs, now)

	messageID := h.States.MessageID(chatID)
	if messageID != 0 {
		_, err := b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:      chatID,
			MessageID:   messageID,
			Text:        text,
			ParseMode:   models.ParseModeHTML,
			ReplyMarkup: kb,
		})
		if err == nil {
			return
		}
		// Сообщение могло устареть или быть удалено - шлём новое
		h.Logger.Debug("Edit schedule message failed, sending new one",
			zap.Int64("chat_id", chatID), zap.Error(err))
	}

	msg, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: kb,
	})
	if err != nil {
		h.Logger.Error("Failed to send schedule message",
			zap.Int64("chat_id", chatID), zap.Error(err))
		return
	}
	h.States.SetMessageID(chatID, msg.ID)
}

func buildScheduleText(view *service.ScheduleView, proj service.Projection, prefs state.ViewPrefs, now time.Time) string {
	var b strings.Builder
	b.WriteString(formatting.FormatScheduleHeader(view.TeacherID(), proj.Summary))
	b.WriteString("\n")

	if proj.Summary.Total == 0 {
		b.WriteString("\n📭 У учителя пока нет опубликованных окон. Загляните позже.")
		return b.String()
	}
	if len(proj.Groups) == 0 {
		b.WriteString("\n🔍 Под текущие фильтры не попал ни один слот.")
		return b.String()
	}

	for _, group := range proj.Groups {
		collapsed := prefs.Collapsed[group.Key]
		b.WriteString("\n")
		b.WriteString(formatting.FormatDateGroup(group, now, collapsed))
		b.WriteString("\n")
		if collapsed {
			continue
		}
		for _, slot := range group.Slots {
			sess := view.SessionForSlot(slot.ID)
			b.WriteString(formatting.FormatSlotLine(slot, sess, now))
			b.WriteString("\n")
			if sess != nil {
				if minutes, ok := service.Countdown(sess, now); ok && sess.HasMeetingLink() {
					b.WriteString(fmt.Sprintf("   🔒 ссылка откроется через %s\n", service.FormatCountdown(minutes)))
				} else if service.CanJoin(sess, now) {
					b.WriteString("   🟢 сессия идёт, можно присоединяться\n")
				}
			}
		}
	}

	return b.String()
}

func buildScheduleKeyboard(view *service.ScheduleView, proj service.Projection, prefs state.ViewPrefs, now time.Time) *models.InlineKeyboardMarkup {
	kb := keyboard.NewBuilder()

	// Статусный фильтр со счётчиками из нефильтрованного набора
	kb.Row(
		filterButton("Все", service.FilterAll, proj.Summary.Total, prefs.Filter),
		filterButton("🟢", service.FilterAvailable, proj.Summary.Available, prefs.Filter),
		filterButton("🔒", service.FilterBooked, proj.Summary.Booked, prefs.Filter),
	)

	toggleText := "👁 Занятые: показаны"
	if !prefs.ShowBooked {
		toggleText = "👁 Занятые: скрыты"
	}
	kb.Row(keyboard.Button(toggleText, ToggleShowBooked))

	// Быстрый выбор даты
	if dateRow := buildDateRow(view, prefs, now); len(dateRow) > 1 {
		kb.Row(dateRow...)
	}

	// Кнопки по видимым группам
	for _, group := range proj.Groups {
		collapsed := prefs.Collapsed[group.Key]
		kb.Row(keyboard.Button(formatting.FormatDateGroup(group, now, collapsed), ToggleDate+group.Key))
		if collapsed {
			continue
		}
		for _, slot := range group.Slots {
			sess := view.SessionForSlot(slot.ID)
			switch {
			case sess != nil && service.CanJoin(sess, now):
				kb.Row(keyboard.URLButton("🎥 "+slot.StartTime+" · Присоединиться", sess.MeetingLink))
			case sess != nil:
				kb.Row(keyboard.Button("💜 "+slot.StartTime+" · Моя сессия", SessionCard+slot.ID))
			case !slot.IsBooked:
				kb.Row(keyboard.Button("📝 "+slot.StartTime+" · Забронировать", BookSlot+slot.ID))
			}
		}
	}

	kb.Row(
		keyboard.Button("🔄 Обновить", RefreshView),
		keyboard.Button("🖼 Картинкой", ScheduleImage),
	)
	kb.Row(
		keyboard.Button("📋 Мои сессии", MySessions),
		keyboard.Button("❌ Закрыть", CloseView),
	)

	return kb.Build()
}

func filterButton(label string, filter service.SlotFilter, count int, active service.SlotFilter) models.InlineKeyboardButton {
	text := fmt.Sprintf("%s (%d)", label, count)
	if filter == active {
		text = "· " + text + " ·"
	}
	return keyboard.Button(text, SetFilter+string(filter))
}

func buildDateRow(view *service.ScheduleView, prefs state.ViewPrefs, now time.Time) []models.InlineKeyboardButton {
	groups := service.GroupByDate(view.Slots())
	keys := service.SortedDateKeys(groups)

	row := []models.InlineKeyboardButton{}
	allText := "📆 Все даты"
	if prefs.SelectedDate == "" {
		allText = "· " + allText + " ·"
	}
	row = append(row, keyboard.Button(allText, SelectDate+"all"))

	added := 0
	for _, key := range keys {
		if added >= maxDateButtons {
			break
		}
		// Нечитаемые даты группируются под сырым значением и в быстрый
		// выбор не попадают; их слоты остаются видны в общем списке
		day, err := time.Parse(service.DateKeyLayout, key)
		if err != nil {
			continue
		}
		text := formatting.GetWeekdayShort(int(day.Weekday())) + " " + key[:5]
		if prefs.SelectedDate == key {
			text = "· " + text + " ·"
		}
		row = append(row, keyboard.Button(text, SelectDate+key))
		added++
	}
	return row
}

// ========================
// Filter Handlers
// ========================

// HandleSetFilter переключает статусный фильтр
func HandleSetFilter(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	arg, err := common.ParseArgFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат данных")
		return
	}

	chatID := callback.From.ID
	h.States.UpdatePrefs(chatID, func(p *state.ViewPrefs) {
		p.Filter = service.SlotFilter(arg)
	})

	RenderSchedule(ctx, b, chatID, h)
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleToggleShowBooked переключает показ занятых слотов
func HandleToggleShowBooked(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	chatID := callback.From.ID
	h.States.UpdatePrefs(chatID, func(p *state.ViewPrefs) {
		p.ShowBooked = !p.ShowBooked
	})

	RenderSchedule(ctx, b, chatID, h)
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleToggleDate сворачивает или разворачивает группу даты
func HandleToggleDate(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	key, err := common.ParseArgFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат данных")
		return
	}

	chatID := callback.From.ID
	h.States.UpdatePrefs(chatID, func(p *state.ViewPrefs) {
		p.Collapsed[key] = !p.Collapsed[key]
	})

	RenderSchedule(ctx, b, chatID, h)
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleSelectDate фильтрует экран по одной дате
func HandleSelectDate(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	key, err := common.ParseArgFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат данных")
		return
	}
	if key == "all" {
		key = ""
	}

	chatID := callback.From.ID
	h.States.UpdatePrefs(chatID, func(p *state.ViewPrefs) {
		p.SelectedDate = key
	})

	RenderSchedule(ctx, b, chatID, h)
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleRefresh перечитывает расписание с бэкенда
func HandleRefresh(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	chatID := callback.From.ID
	view := h.States.View(chatID)
	if view == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Расписание не открыто")
		return
	}

	if err := view.Refresh(ctx); err != nil {
		h.Logger.Error("Failed to refresh schedule", zap.Int64("chat_id", chatID), zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Не удалось обновить расписание. Попробуйте позже.")
		return
	}

	RenderSchedule(ctx, b, chatID, h)
	common.AnswerCallback(ctx, b, callback.ID, "🔄 Обновлено")
}

// HandleCloseView закрывает экран расписания
func HandleCloseView(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	chatID := callback.From.ID

	if old := h.States.SetView(chatID, nil); old != nil {
		old.Close()
	}
	h.Gate.Unregister(chatID)

	if msg := common.GetMessageFromCallback(callback); msg != nil {
		b.DeleteMessage(ctx, &bot.DeleteMessageParams{ChatID: msg.Chat.ID, MessageID: msg.ID})
	}
	common.AnswerCallback(ctx, b, callback.ID, "Расписание закрыто")
}

// HandleScheduleImage отправляет расписание картинкой
func HandleScheduleImage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	chatID := callback.From.ID
	view := h.States.View(chatID)
	if view == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Расписание не открыто")
		return
	}

	prefs := h.States.Prefs(chatID)
	proj := service.Project(view.Slots(), service.ProjectionOptions{
		Filter:       prefs.Filter,
		ShowBooked:   prefs.ShowBooked,
		SelectedDate: prefs.SelectedDate,
	})

	imageData, err := common.RenderScheduleImage(proj, view.SessionForSlot, time.Now())
	if err != nil {
		h.Logger.Warn("Failed to render schedule image", zap.Int64("chat_id", chatID), zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Нечего рисовать: под фильтры не попал ни один слот")
		return
	}

	b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:  chatID,
		Photo:   &models.InputFileUpload{Filename: "schedule.png", Data: bytes.NewReader(imageData)},
		Caption: "🖼 Расписание учителя",
	})
	common.AnswerCallback(ctx, b, callback.ID, "")
}
