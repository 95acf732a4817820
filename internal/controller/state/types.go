package state

import (
	"github.com/Freeeeeet/portal_bot/internal/model"
	"github.com/Freeeeeet/portal_bot/internal/service"
)

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

const (
	StateNone          UserState = "" // Нет активного состояния
	StateAwaitDuration UserState = "await_duration"
)

// ViewPrefs - выбранные пользователем фильтры экрана расписания.
type ViewPrefs struct {
	Filter       service.SlotFilter
	ShowBooked   bool
	SelectedDate string          // ключ даты, "" - все
	Collapsed    map[string]bool // свёрнутые группы дат
}

// DefaultPrefs - состояние фильтров при открытии экрана.
func DefaultPrefs() ViewPrefs {
	return ViewPrefs{
		Filter:     service.FilterAll,
		ShowBooked: true,
		Collapsed:  make(map[string]bool),
	}
}

// UserData - всё состояние одного чата: привязанный студент, открытый
// экран расписания, фильтры и текущий шаг диалога.
type UserData struct {
	State         UserState
	Student       model.Student
	View          *service.ScheduleView
	Prefs         ViewPrefs
	PendingSlotID string // слот, для которого ждём длительность
	MessageID     int    // сообщение с расписанием, редактируем на месте
}
