package service

import (
	"sort"
	"time"

	"github.com/Freeeeeet/portal_bot/internal/model"
)

// Проекция расписания для отображения: группировка слотов по датам,
// хронологическая сортировка, фильтры и счётчики.

type SlotFilter string

const (
	FilterAll       SlotFilter = "all"
	FilterAvailable SlotFilter = "available"
	FilterBooked    SlotFilter = "booked"
)

// DateKeyLayout - ключ группы в формате отображения. Формат день-первый,
// поэтому лексикографический порядок ключей не совпадает с календарным.
const DateKeyLayout = "02.01.2006"

// DateKey возвращает ключ группы для слота; слоты с нечитаемой датой
// собираются под сырым значением даты.
func DateKey(slot model.Slot) string {
	day, err := slot.Day()
	if err != nil {
		return slot.Date
	}
	return day.Format(DateKeyLayout)
}

// GroupByDate группирует слоты по календарной дате, время суток отброшено.
func GroupByDate(slots []model.Slot) map[string][]model.Slot {
	groups := make(map[string][]model.Slot)
	for _, slot := range slots {
		key := DateKey(slot)
		groups[key] = append(groups[key], slot)
	}
	return groups
}

// SortedDateKeys возвращает ключи групп в календарном порядке.
// Сортируем по распарсенной дате: строковая сортировка ключей
// вида "28.03.2024" < "01.04.2024" дала бы неверный порядок.
func SortedDateKeys(groups map[string][]model.Slot) []string {
	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		di, erri := time.Parse(DateKeyLayout, keys[i])
		dj, errj := time.Parse(DateKeyLayout, keys[j])
		if erri != nil || errj != nil {
			// Нечитаемые ключи уходят в конец, между собой - по строке
			if erri != nil && errj != nil {
				return keys[i] < keys[j]
			}
			return errj != nil
		}
		return di.Before(dj)
	})
	return keys
}

// ProjectionOptions - выбранные пользователем фильтры экрана.
type ProjectionOptions struct {
	Filter       SlotFilter
	ShowBooked   bool
	SelectedDate string // ключ даты; "" - все даты
}

// DateGroup - одна дата на экране с выжившими после фильтров слотами.
type DateGroup struct {
	Key       string
	Date      time.Time
	Slots     []model.Slot
	Available int // счётчики по всем слотам даты, до фильтров
	Booked    int
}

// Summary - агрегаты по полному набору слотов; фильтры на них не влияют.
type Summary struct {
	Available int
	Booked    int
	Total     int
	Days      int
}

// Projection - готовый к отрисовке срез расписания.
type Projection struct {
	Groups  []DateGroup
	Summary Summary
	Visible int // слотов прошло фильтры
}

// Project строит проекцию: статусный фильтр и переключатель "показывать
// занятые" пересекаются, группа без выживших слотов опускается целиком.
func Project(slots []model.Slot, opts ProjectionOptions) Projection {
	if opts.Filter == "" {
		opts.Filter = FilterAll
	}

	summary := Summary{Total: len(slots)}
	for _, slot := range slots {
		if slot.IsBooked {
			summary.Booked++
		} else {
			summary.Available++
		}
	}

	groups := GroupByDate(slots)
	summary.Days = len(groups)

	proj := Projection{Summary: summary}
	for _, key := range SortedDateKeys(groups) {
		if opts.SelectedDate != "" && opts.SelectedDate != key {
			continue
		}

		daySlots := groups[key]
		group := DateGroup{Key: key}
		if day, err := time.Parse(DateKeyLayout, key); err == nil {
			group.Date = day
		}

		for _, slot := range daySlots {
			if slot.IsBooked {
				group.Booked++
			} else {
				group.Available++
			}
			if !matchesFilter(slot, opts.Filter) {
				continue
			}
			if slot.IsBooked && !opts.ShowBooked {
				continue
			}
			group.Slots = append(group.Slots, slot)
		}

		if len(group.Slots) == 0 {
			continue
		}
		proj.Visible += len(group.Slots)
		proj.Groups = append(proj.Groups, group)
	}

	return proj
}

func matchesFilter(slot model.Slot, filter SlotFilter) bool {
	switch filter {
	case FilterAvailable:
		return !slot.IsBooked
	case FilterBooked:
		return slot.IsBooked
	default:
		return true
	}
}
