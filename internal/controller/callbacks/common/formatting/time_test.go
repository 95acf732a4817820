package formatting

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{minutes: 0, want: "—"},
		{minutes: -5, want: "—"},
		{minutes: 45, want: "45 мин"},
		{minutes: 60, want: "1 ч"},
		{minutes: 90, want: "1 ч 30 мин"},
		{minutes: 120, want: "2 ч"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatDuration(tt.minutes); got != tt.want {
				t.Errorf("FormatDuration(%d) = %q, want %q", tt.minutes, got, tt.want)
			}
		})
	}
}

func TestDayLabel(t *testing.T) {
	now := time.Date(2024, time.March, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		day  time.Time
		want string
	}{
		{name: "today", day: time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC), want: "Сегодня"},
		{name: "tomorrow", day: time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC), want: "Завтра"},
		{name: "later", day: time.Date(2024, time.March, 13, 0, 0, 0, 0, time.UTC), want: "13.03.2024 (Среда)"},
		{name: "past", day: time.Date(2024, time.March, 8, 0, 0, 0, 0, time.UTC), want: "08.03.2024 (Пятница)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DayLabel(tt.day, now); got != tt.want {
				t.Errorf("DayLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatTimeRange(t *testing.T) {
	if got := FormatTimeRange("10:00", "11:00"); got != "10:00-11:00" {
		t.Errorf("FormatTimeRange() = %q", got)
	}
}
