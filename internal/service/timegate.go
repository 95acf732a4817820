package service

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/portal_bot/internal/model"
)

// Временной гейт: ссылка на конференцию скрыта до session_start и
// открывается с него. Всё пересчитывается от переданного now при каждом
// обращении - никаких закэшированных флагов "уже открыто".

// CanJoin сообщает, можно ли показывать ссылку на конференцию.
// Истина только когда session_start наступил и ссылка назначена.
func CanJoin(sess *model.Session, now time.Time) bool {
	if sess == nil || sess.SessionStart == nil {
		return false
	}
	if !sess.HasMeetingLink() {
		return false
	}
	return !sess.SessionStart.After(now)
}

// Countdown возвращает минуты до начала сессии, округлённые вверх.
// ok=false когда отсчёт не нужен: старт не назначен или уже наступил.
func Countdown(sess *model.Session, now time.Time) (int, bool) {
	if sess == nil || sess.SessionStart == nil {
		return 0, false
	}
	diff := sess.SessionStart.Sub(now)
	if diff <= 0 {
		return 0, false
	}
	minutes := int((diff + time.Minute - 1) / time.Minute)
	return minutes, true
}

// FormatCountdown форматирует отсчёт: "10m", "2h", "2h 5m".
func FormatCountdown(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	h := minutes / 60
	m := minutes % 60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}
