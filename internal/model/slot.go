package model

import (
	"fmt"
	"time"
)

// Slot - окно доступности, опубликованное учителем.
// Дата и время приходят от портала как локальные "настенные" значения
// без таймзоны, поэтому храним их строками и парсим по требованию.
type Slot struct {
	ID        string `json:"_id"`
	TeacherID string `json:"teacher_id,omitempty"`
	Date      string `json:"date"`       // "2006-01-02"
	StartTime string `json:"start_time"` // "15:04"
	EndTime   string `json:"end_time"`   // "15:04"
	IsBooked  bool   `json:"is_booked"`
}

// Бэкенд иногда присылает дату как полный ISO timestamp
var dayLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"}

var clockLayouts = []string{"15:04", "15:04:05"}

// Day возвращает календарную дату слота (время суток отброшено).
func (s *Slot) Day() (time.Time, error) {
	for _, layout := range dayLayouts {
		if t, err := time.Parse(layout, s.Date); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("parse slot date %q", s.Date)
}

// StartAt собирает момент начала из даты и start_time слота в указанной
// таймзоне. Зона не закодирована в данных: если учитель и студент в разных
// зонах, результат неоднозначен - сознательно сохраняем семантику оригинала.
func (s *Slot) StartAt(loc *time.Location) (time.Time, error) {
	day, err := s.Day()
	if err != nil {
		return time.Time{}, err
	}
	clock, err := parseClock(s.StartTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse slot start_time %q: %w", s.StartTime, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, loc), nil
}

// DurationMinutes возвращает длительность окна в минутах, 0 если время
// нечитаемо.
func (s *Slot) DurationMinutes() int {
	start, err := parseClock(s.StartTime)
	if err != nil {
		return 0
	}
	end, err := parseClock(s.EndTime)
	if err != nil {
		return 0
	}
	d := end.Sub(start)
	if d <= 0 {
		return 0
	}
	return int(d / time.Minute)
}

func parseClock(value string) (time.Time, error) {
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported time format")
}
