package service

import (
	"context"
	"testing"
	"time"

	"github.com/Freeeeeet/portal_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Сквозной сценарий: бронирование пятнадцатиминутного слота и поведение
// временного гейта вокруг момента старта.
func TestBookingFlowEndToEnd(t *testing.T) {
	portal := newFakePortal()
	portal.slots = []model.Slot{{
		ID:        "a1",
		Date:      "2024-03-10",
		StartTime: "10:00",
		EndTime:   "10:15",
	}}
	portal.bookBody = `{"session":{
		"_id":"s1",
		"slot_id":"a1",
		"student_id":"stud1",
		"teacher_id":"t1",
		"duration":15,
		"session_start":"2024-03-10T10:00:00Z",
		"status":"pending",
		"meeting_id":"m-1",
		"meeting_link":"https://meet.example.com/m-1"
	}}`

	view, api := newTestView(t, portal, model.Student{ID: "stud1"})
	svc := NewBookingService(api, zap.NewNop(), time.UTC)

	sess, err := svc.Book(context.Background(), view, "a1", 15)
	require.NoError(t, err)

	// Бэкенд получил настенные 10:00 слота как UTC момент
	require.Len(t, portal.bookRequests, 1)
	assert.Equal(t, "2024-03-10T10:00:00Z", portal.bookRequests[0]["requested_time"])

	require.NotNil(t, sess.SessionStart)
	assert.Equal(t, "2024-03-10T10:00:00Z", sess.SessionStart.UTC().Format(time.RFC3339))

	// За десять минут до старта: гейт закрыт, отсчёт ровно 10m
	before := time.Date(2024, time.March, 10, 9, 50, 0, 0, time.UTC)
	assert.False(t, CanJoin(sess, before))
	minutes, ok := Countdown(sess, before)
	require.True(t, ok)
	assert.Equal(t, "10m", FormatCountdown(minutes))

	// Секундой позже старта: гейт открыт, отсчёта нет
	after := time.Date(2024, time.March, 10, 10, 0, 1, 0, time.UTC)
	assert.True(t, CanJoin(sess, after))
	_, ok = Countdown(sess, after)
	assert.False(t, ok)

	// Экран видит зафиксированный результат
	got, found := view.Slot("a1")
	require.True(t, found)
	assert.True(t, got.IsBooked)
	require.NotNil(t, view.SessionForSlot("a1"))
}
