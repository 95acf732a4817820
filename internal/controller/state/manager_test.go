package state

import (
	"testing"

	"github.com/Freeeeeet/portal_bot/internal/model"
	"github.com/Freeeeeet/portal_bot/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerDialogState(t *testing.T) {
	m := NewManager()

	assert.Equal(t, StateNone, m.GetState(1))

	m.SetPendingSlot(1, "a1")
	assert.Equal(t, StateAwaitDuration, m.GetState(1))
	assert.Equal(t, "a1", m.PendingSlot(1))

	m.ClearState(1)
	assert.Equal(t, StateNone, m.GetState(1))
	assert.Empty(t, m.PendingSlot(1))
}

func TestManagerStudent(t *testing.T) {
	m := NewManager()

	assert.False(t, m.Student(1).IsAuthenticated())

	m.SetStudent(1, model.Student{ID: "stud1", Name: "Аня"})
	got := m.Student(1)
	assert.True(t, got.IsAuthenticated())
	assert.Equal(t, "stud1", got.ID)

	// Чаты изолированы
	assert.False(t, m.Student(2).IsAuthenticated())
}

func TestManagerSetViewResetsChatState(t *testing.T) {
	m := NewManager()

	m.SetPendingSlot(1, "a1")
	m.SetMessageID(1, 42)
	m.UpdatePrefs(1, func(p *ViewPrefs) {
		p.Filter = service.FilterBooked
		p.Collapsed["10.03.2024"] = true
	})

	old := m.SetView(1, nil)
	assert.Nil(t, old)

	// Новый экран стартует с чистыми фильтрами и диалогом
	assert.Equal(t, StateNone, m.GetState(1))
	assert.Empty(t, m.PendingSlot(1))
	assert.Zero(t, m.MessageID(1))

	prefs := m.Prefs(1)
	assert.Equal(t, service.FilterAll, prefs.Filter)
	assert.True(t, prefs.ShowBooked)
	assert.Empty(t, prefs.Collapsed)
}

func TestManagerPrefsReturnsCopy(t *testing.T) {
	m := NewManager()

	m.UpdatePrefs(1, func(p *ViewPrefs) {
		p.Collapsed["10.03.2024"] = true
	})

	prefs := m.Prefs(1)
	prefs.Collapsed["11.03.2024"] = true
	prefs.Filter = service.FilterBooked

	again := m.Prefs(1)
	require.Len(t, again.Collapsed, 1)
	assert.Equal(t, service.FilterAll, again.Filter)
}

func TestManagerUpdatePrefs(t *testing.T) {
	m := NewManager()

	m.UpdatePrefs(1, func(p *ViewPrefs) {
		p.ShowBooked = false
		p.SelectedDate = "10.03.2024"
	})

	prefs := m.Prefs(1)
	assert.False(t, prefs.ShowBooked)
	assert.Equal(t, "10.03.2024", prefs.SelectedDate)
}
