package service

import (
	"sort"
	"testing"

	"github.com/Freeeeeet/portal_bot/internal/model"
)

func slot(id, date string, booked bool) model.Slot {
	return model.Slot{
		ID:        id,
		TeacherID: "t1",
		Date:      date,
		StartTime: "10:00",
		EndTime:   "11:00",
		IsBooked:  booked,
	}
}

func TestSortedDateKeysChronological(t *testing.T) {
	// 28 марта лексикографически больше, чем 01 апреля, -
	// строковая сортировка ключей дала бы обратный порядок
	groups := GroupByDate([]model.Slot{
		slot("a1", "2024-04-01", false),
		slot("a2", "2024-03-28", false),
		slot("a3", "2024-12-05", false),
	})

	got := SortedDateKeys(groups)
	want := []string{"28.03.2024", "01.04.2024", "05.12.2024"}
	if len(got) != len(want) {
		t.Fatalf("SortedDateKeys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("SortedDateKeys() = %v, want %v", got, want)
		}
	}

	if sort.StringsAreSorted(got) {
		t.Error("keys happen to be string-sorted, test data does not exercise the chronological order")
	}
}

func TestSortedDateKeysUnparseableLast(t *testing.T) {
	groups := GroupByDate([]model.Slot{
		slot("a1", "garbage-date", false),
		slot("a2", "2024-03-28", false),
	})

	got := SortedDateKeys(groups)
	if len(got) != 2 {
		t.Fatalf("SortedDateKeys() = %v, want 2 keys", got)
	}
	if got[0] != "28.03.2024" || got[1] != "garbage-date" {
		t.Errorf("SortedDateKeys() = %v, want readable dates first", got)
	}
}

func TestProjectGrouping(t *testing.T) {
	slots := []model.Slot{
		slot("a1", "2024-03-10", false),
		slot("a2", "2024-03-10", true),
		slot("a3", "2024-03-11", false),
	}

	proj := Project(slots, ProjectionOptions{Filter: FilterAll, ShowBooked: true})

	if len(proj.Groups) != 2 {
		t.Fatalf("Groups = %d, want 2", len(proj.Groups))
	}
	if proj.Groups[0].Key != "10.03.2024" || proj.Groups[1].Key != "11.03.2024" {
		t.Errorf("group keys = %s, %s", proj.Groups[0].Key, proj.Groups[1].Key)
	}
	if len(proj.Groups[0].Slots) != 2 || len(proj.Groups[1].Slots) != 1 {
		t.Errorf("group sizes = %d, %d, want 2, 1",
			len(proj.Groups[0].Slots), len(proj.Groups[1].Slots))
	}
	if proj.Visible != 3 {
		t.Errorf("Visible = %d, want 3", proj.Visible)
	}
}

func TestProjectFilters(t *testing.T) {
	slots := []model.Slot{
		slot("a1", "2024-03-10", false),
		slot("a2", "2024-03-10", true),
		slot("a3", "2024-03-11", true),
	}

	tests := []struct {
		name        string
		opts        ProjectionOptions
		wantVisible int
		wantGroups  int
	}{
		{
			name:        "available only",
			opts:        ProjectionOptions{Filter: FilterAvailable, ShowBooked: true},
			wantVisible: 1,
			wantGroups:  1,
		},
		{
			name:        "booked only",
			opts:        ProjectionOptions{Filter: FilterBooked, ShowBooked: true},
			wantVisible: 2,
			wantGroups:  2,
		},
		{
			// Пересечение фильтров: booked-фильтр при скрытых занятых
			// не показывает ничего
			name:        "booked filter with booked hidden",
			opts:        ProjectionOptions{Filter: FilterBooked, ShowBooked: false},
			wantVisible: 0,
			wantGroups:  0,
		},
		{
			name:        "all with booked hidden",
			opts:        ProjectionOptions{Filter: FilterAll, ShowBooked: false},
			wantVisible: 1,
			wantGroups:  1,
		},
		{
			name:        "selected date",
			opts:        ProjectionOptions{Filter: FilterAll, ShowBooked: true, SelectedDate: "11.03.2024"},
			wantVisible: 1,
			wantGroups:  1,
		},
		{
			name:        "empty filter defaults to all",
			opts:        ProjectionOptions{ShowBooked: true},
			wantVisible: 3,
			wantGroups:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proj := Project(slots, tt.opts)
			if proj.Visible != tt.wantVisible {
				t.Errorf("Visible = %d, want %d", proj.Visible, tt.wantVisible)
			}
			if len(proj.Groups) != tt.wantGroups {
				t.Errorf("Groups = %d, want %d", len(proj.Groups), tt.wantGroups)
			}

			// Сводка считается по полному набору и не зависит от фильтров
			if proj.Summary.Total != 3 || proj.Summary.Available != 1 || proj.Summary.Booked != 2 {
				t.Errorf("Summary = %+v, want totals over unfiltered set", proj.Summary)
			}
			if proj.Summary.Days != 2 {
				t.Errorf("Summary.Days = %d, want 2", proj.Summary.Days)
			}
		})
	}
}

func TestProjectGroupCountersUnfiltered(t *testing.T) {
	slots := []model.Slot{
		slot("a1", "2024-03-10", false),
		slot("a2", "2024-03-10", true),
	}

	proj := Project(slots, ProjectionOptions{Filter: FilterAvailable, ShowBooked: true})
	if len(proj.Groups) != 1 {
		t.Fatalf("Groups = %d, want 1", len(proj.Groups))
	}

	group := proj.Groups[0]
	if len(group.Slots) != 1 {
		t.Errorf("group slots = %d, want 1 after filter", len(group.Slots))
	}
	// Счётчики группы - по всем слотам даты, не по выжившим
	if group.Available != 1 || group.Booked != 1 {
		t.Errorf("group counters = %d/%d, want 1/1", group.Available, group.Booked)
	}
}

func TestProjectEmptyInput(t *testing.T) {
	proj := Project(nil, ProjectionOptions{Filter: FilterAll, ShowBooked: true})
	if len(proj.Groups) != 0 || proj.Visible != 0 {
		t.Errorf("Project(nil) = %+v, want empty projection", proj)
	}
	if proj.Summary.Total != 0 || proj.Summary.Days != 0 {
		t.Errorf("Summary = %+v, want zeros", proj.Summary)
	}
}
