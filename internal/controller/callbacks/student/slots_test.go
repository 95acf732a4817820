package student

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Freeeeeet/portal_bot/internal/apiclient"
	"github.com/Freeeeeet/portal_bot/internal/controller/state"
	"github.com/Freeeeeet/portal_bot/internal/model"
	"github.com/Freeeeeet/portal_bot/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newViewWithSlots(t *testing.T, slots []model.Slot) *service.ScheduleView {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/availability/student/") {
			w.Write([]byte(`[]`))
			return
		}
		json.NewEncoder(w).Encode(slots)
	}))
	t.Cleanup(srv.Close)

	api := apiclient.New(srv.URL, 5*time.Second, zap.NewNop())
	svc := service.NewScheduleService(api, zap.NewNop())

	view, err := svc.Open(context.Background(), model.Student{ID: "stud1"}, "t1")
	require.NoError(t, err)
	return view
}

func TestBuildDateRowSkipsUnparseableDates(t *testing.T) {
	view := newViewWithSlots(t, []model.Slot{
		{ID: "a1", Date: "n/a", StartTime: "10:00", EndTime: "11:00"},
		{ID: "a2", Date: "", StartTime: "11:00", EndTime: "12:00"},
		{ID: "a3", Date: "2024-03-10", StartTime: "12:00", EndTime: "13:00"},
	})

	row := buildDateRow(view, state.DefaultPrefs(), time.Now())

	// "Все даты" плюс единственная читаемая дата; мусорные ключи пропущены
	require.Len(t, row, 2)
	assert.Equal(t, SelectDate+"all", row[0].CallbackData)
	assert.Equal(t, SelectDate+"10.03.2024", row[1].CallbackData)
}

func TestBuildDateRowAllUnparseable(t *testing.T) {
	view := newViewWithSlots(t, []model.Slot{
		{ID: "a1", Date: "n/a", StartTime: "10:00", EndTime: "11:00"},
	})

	row := buildDateRow(view, state.DefaultPrefs(), time.Now())

	require.Len(t, row, 1)
	assert.Equal(t, SelectDate+"all", row[0].CallbackData)
}

func TestBuildScheduleKeyboardToleratesMalformedDates(t *testing.T) {
	view := newViewWithSlots(t, []model.Slot{
		{ID: "a1", Date: "n/a", StartTime: "10:00", EndTime: "11:00"},
		{ID: "a2", Date: "2024-03-10", StartTime: "12:00", EndTime: "13:00", IsBooked: true},
	})

	prefs := state.DefaultPrefs()
	proj := service.Project(view.Slots(), service.ProjectionOptions{
		Filter:     prefs.Filter,
		ShowBooked: prefs.ShowBooked,
	})

	// Экран с мусорной датой рисуется, а не падает
	require.NotPanics(t, func() {
		buildScheduleKeyboard(view, proj, prefs, time.Now())
		buildScheduleText(view, proj, prefs, time.Now())
	})
}
