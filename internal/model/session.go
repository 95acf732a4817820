package model

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

type SessionStatus string

const (
	SessionStatusPending   SessionStatus = "pending"   // Создана, ждёт подтверждения бэкендом
	SessionStatusConfirmed SessionStatus = "confirmed" // Подтверждена
)

// Session - подтверждённая запись студента на слот.
// Создаётся только бэкендом в ответ на бронирование; клиент её не меняет
// и не удаляет. meeting_id и meeting_link появляются позже, когда бэкенд
// назначит конференцию.
type Session struct {
	ID           string        `json:"_id"`
	SlotID       string        `json:"slot_id"`
	StudentID    string        `json:"student_id"`
	TeacherID    string        `json:"teacher_id"`
	Duration     Minutes       `json:"duration"`
	SessionStart *time.Time    `json:"session_start,omitempty"`
	Status       SessionStatus `json:"status"`
	MeetingID    string        `json:"meeting_id,omitempty"`
	MeetingLink  string        `json:"meeting_link,omitempty"`
}

// HasMeetingLink сообщает, назначена ли сессии ссылка на конференцию.
func (s *Session) HasMeetingLink() bool {
	return strings.TrimSpace(s.MeetingLink) != ""
}

// Minutes - длительность в минутах. Веб-клиент портала отправляет
// длительность строкой из prompt(), поэтому бэкенд может вернуть её
// и числом, и строкой.
type Minutes int

func (m *Minutes) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*m = Minutes(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	*m = Minutes(n)
	return nil
}
