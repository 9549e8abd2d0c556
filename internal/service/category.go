package service

import (
	"sort"
	"time"

	"fieldservice-service/internal/model"
)

type Category string

const (
	CategoryToday  Category = "today"
	CategoryFuture Category = "future"
	CategoryPast   Category = "past"
)

// Calendar сравнивает моменты времени по календарной дате в заданной зоне.
type Calendar struct {
	loc *time.Location
}

func NewCalendar(loc *time.Location) Calendar {
	if loc == nil {
		loc = time.Local
	}
	return Calendar{loc: loc}
}

func (c Calendar) Location() *time.Location {
	return c.loc
}

// CompareDays возвращает -1, 0 или 1, если дата t раньше, совпадает или
// позже даты ref.
func (c Calendar) CompareDays(t, ref time.Time) int {
	a, b := c.dayKey(t), c.dayKey(ref)
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (c Calendar) dayKey(t time.Time) int {
	y, m, d := t.In(c.loc).Date()
	return y*10000 + int(m)*100 + d
}

func (c Calendar) IsToday(a model.Appointment, now time.Time) bool {
	return c.CompareDays(a.ScheduledStart, now) == 0
}

func (c Calendar) IsFuture(a model.Appointment, now time.Time) bool {
	return c.CompareDays(a.ScheduledStart, now) > 0
}

// IsPast включает визиты прошлых дней и завершенные сегодняшние, поэтому
// сегодняшний Completed попадает и в today, и в past.
func (c Calendar) IsPast(a model.Appointment, now time.Time) bool {
	switch c.CompareDays(a.ScheduledStart, now) {
	case -1:
		return true
	case 0:
		return a.Status == model.AppointmentStatusCompleted
	default:
		return false
	}
}

func (c Calendar) Matches(category Category, a model.Appointment, now time.Time) bool {
	switch category {
	case CategoryToday:
		return c.IsToday(a, now)
	case CategoryFuture:
		return c.IsFuture(a, now)
	case CategoryPast:
		return c.IsPast(a, now)
	default:
		return false
	}
}

// sortByStart сортирует стабильно: при равном начале сохраняется порядок загрузки.
func sortByStart(list []model.Appointment, descending bool) {
	sort.SliceStable(list, func(i, j int) bool {
		if descending {
			return list[i].ScheduledStart.After(list[j].ScheduledStart)
		}
		return list[i].ScheduledStart.Before(list[j].ScheduledStart)
	})
}

// Unresolved оставляет из past только незавершенные визиты, сохраняя порядок.
func Unresolved(past []model.Appointment) []model.Appointment {
	result := make([]model.Appointment, 0, len(past))
	for _, a := range past {
		if a.Status != model.AppointmentStatusCompleted {
			result = append(result, a)
		}
	}
	return result
}
