package formatting

import (
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/portal_bot/internal/model"
	"github.com/Freeeeeet/portal_bot/internal/service"
)

// FormatScheduleHeader форматирует шапку экрана расписания со сводкой
func FormatScheduleHeader(teacherID string, summary service.Summary) string {
	return fmt.Sprintf(
		"🎓 <b>Расписание учителя</b>\n"+
			"🆔 <code>%s</code>\n\n"+
			"✅ Свободно: %d\n"+
			"🔒 Занято: %d\n"+
			"📊 Всего слотов: %d\n"+
			"📅 Дней с окнами: %d",
		teacherID,
		summary.Available,
		summary.Booked,
		summary.Total,
		summary.Days,
	)
}

// FormatDateGroup форматирует заголовок группы даты
func FormatDateGroup(group service.DateGroup, now time.Time, collapsed bool) string {
	marker := "▼"
	if collapsed {
		marker = "▶"
	}

	label := group.Key
	if !group.Date.IsZero() {
		label = DayLabel(group.Date, now)
	}

	return fmt.Sprintf("%s 📅 %s · %d свободно · %d занято",
		marker, label, group.Available, group.Booked)
}

// FormatSlotLine форматирует одну строку слота в списке
func FormatSlotLine(slot model.Slot, sess *model.Session, now time.Time) string {
	timeRange := FormatTimeRange(slot.StartTime, slot.EndTime)
	duration := FormatDuration(slot.DurationMinutes())

	switch {
	case sess != nil:
		return fmt.Sprintf("💜 %s · %s · ваша сессия", timeRange, duration)
	case slot.IsBooked:
		return fmt.Sprintf("🔒 %s · %s · занято", timeRange, duration)
	default:
		return fmt.Sprintf("🟢 %s · %s · свободно", timeRange, duration)
	}
}

// FormatSessionCard форматирует карточку сессии с учётом временного гейта.
// Ссылка на конференцию появляется в тексте только когда гейт открыт.
func FormatSessionCard(sess *model.Session, slot *model.Slot, now time.Time) string {
	var b strings.Builder

	statusEmoji := "⏳"
	statusText := "Ожидает подтверждения"
	if sess.Status == model.SessionStatusConfirmed {
		statusEmoji = "✅"
		statusText = "Подтверждена"
	}

	b.WriteString(fmt.Sprintf("%s <b>Сессия</b>\n", statusEmoji))
	if slot != nil {
		if day, err := slot.Day(); err == nil {
			b.WriteString(fmt.Sprintf("📅 %s\n", FormatDateWithWeekday(day)))
		}
		b.WriteString(fmt.Sprintf("🕐 %s\n", FormatTimeRange(slot.StartTime, slot.EndTime)))
	} else if sess.SessionStart != nil {
		b.WriteString(fmt.Sprintf("📅 %s\n", FormatDateTime(*sess.SessionStart)))
	}
	b.WriteString(fmt.Sprintf("⏱ Длительность: %s\n", FormatDuration(int(sess.Duration))))
	b.WriteString(fmt.Sprintf("📊 Статус: %s\n", statusText))
	if sess.MeetingID != "" {
		b.WriteString(fmt.Sprintf("#️⃣ Конференция: <code>%s</code>\n", sess.MeetingID))
	}

	switch {
	case service.CanJoin(sess, now):
		b.WriteString("\n🟢 <b>Сессия идёт — присоединяйтесь!</b>")
	case !sess.HasMeetingLink():
		b.WriteString("\n⏳ Ссылка на конференцию ещё не назначена")
	default:
		if minutes, ok := service.Countdown(sess, now); ok {
			b.WriteString(fmt.Sprintf("\n🔒 Ссылка откроется через %s", service.FormatCountdown(minutes)))
		} else {
			b.WriteString("\n🔒 Ссылка пока закрыта")
		}
	}

	return b.String()
}
