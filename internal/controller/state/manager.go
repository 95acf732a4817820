package state

import (
	"sync"

	"github.com/Freeeeeet/portal_bot/internal/model"
	"github.com/Freeeeeet/portal_bot/internal/service"
)

// Manager управляет состояниями чатов
type Manager struct {
	mu    sync.RWMutex
	chats map[int64]*UserData // chatID -> UserData
}

// NewManager создаёт новый менеджер состояний
func NewManager() *Manager {
	return &Manager{
		chats: make(map[int64]*UserData),
	}
}

func (m *Manager) data(chatID int64) *UserData {
	if d, ok := m.chats[chatID]; ok {
		return d
	}
	d := &UserData{Prefs: DefaultPrefs()}
	m.chats[chatID] = d
	return d
}

// GetState получает текущее состояние диалога
func (m *Manager) GetState(chatID int64) UserState {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if d, ok := m.chats[chatID]; ok {
		return d.State
	}
	return StateNone
}

// SetState устанавливает состояние диалога
func (m *Manager) SetState(chatID int64, st UserState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data(chatID).State = st
}

// ClearState сбрасывает диалог и ожидающий слот
func (m *Manager) ClearState(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if d, ok := m.chats[chatID]; ok {
		d.State = StateNone
		d.PendingSlotID = ""
	}
}

// Student возвращает привязанного к чату студента
func (m *Manager) Student(chatID int64) model.Student {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if d, ok := m.chats[chatID]; ok {
		return d.Student
	}
	return model.Student{}
}

// SetStudent привязывает чат к студенту портала
func (m *Manager) SetStudent(chatID int64, student model.Student) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data(chatID).Student = student
}

// View возвращает открытый экран расписания чата
func (m *Manager) View(chatID int64) *service.ScheduleView {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if d, ok := m.chats[chatID]; ok {
		return d.View
	}
	return nil
}

// SetView устанавливает экран расписания и возвращает предыдущий,
// чтобы вызывающий мог его корректно закрыть. Фильтры сбрасываются.
func (m *Manager) SetView(chatID int64, view *service.ScheduleView) *service.ScheduleView {
	m.mu.Lock()
	defer m.mu.Unlock()

	d := m.data(chatID)
	old := d.View
	d.View = view
	d.Prefs = DefaultPrefs()
	d.MessageID = 0
	d.State = StateNone
	d.PendingSlotID = ""
	return old
}

// Prefs возвращает копию фильтров чата
func (m *Manager) Prefs(chatID int64) ViewPrefs {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if d, ok := m.chats[chatID]; ok {
		prefs := d.Prefs
		collapsed := make(map[string]bool, len(prefs.Collapsed))
		for k, v := range prefs.Collapsed {
			collapsed[k] = v
		}
		prefs.Collapsed = collapsed
		return prefs
	}
	return DefaultPrefs()
}

// UpdatePrefs меняет фильтры чата под блокировкой
func (m *Manager) UpdatePrefs(chatID int64, update func(*ViewPrefs)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d := m.data(chatID)
	if d.Prefs.Collapsed == nil {
		d.Prefs.Collapsed = make(map[string]bool)
	}
	update(&d.Prefs)
}

// PendingSlot возвращает слот, для которого ждём ввод длительности
func (m *Manager) PendingSlot(chatID int64) string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if d, ok := m.chats[chatID]; ok {
		return d.PendingSlotID
	}
	return ""
}

// SetPendingSlot запоминает слот и переводит диалог в ожидание длительности
func (m *Manager) SetPendingSlot(chatID int64, slotID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d := m.data(chatID)
	d.PendingSlotID = slotID
	d.State = StateAwaitDuration
}

// MessageID возвращает сообщение с расписанием
func (m *Manager) MessageID(chatID int64) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if d, ok := m.chats[chatID]; ok {
		return d.MessageID
	}
	return 0
}

// SetMessageID запоминает сообщение с расписанием для редактирования на месте
func (m *Manager) SetMessageID(chatID int64, messageID int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data(chatID).MessageID = messageID
}
