package service

import (
	"context"
	"sync"

	"fieldservice-service/internal/model"
	"fieldservice-service/internal/utils"
)

// searchFields - поля визита, по которым ищет строка поиска.
func searchFields(a model.Appointment) []string {
	return []string{
		a.CustomerName,
		a.SiteName,
		a.JobNumber,
		a.Location.Address,
		a.Location.City,
		a.ServiceJobType,
	}
}

// MatchesSearch - без учета регистра, совпадение подстроки хотя бы в одном
// поле. Пустой или пробельный запрос совпадает со всем.
func MatchesSearch(a model.Appointment, query string) bool {
	if utils.IsBlank(query) {
		return true
	}
	folded := utils.Fold(query)
	for _, field := range searchFields(a) {
		if utils.ContainsFolded(field, folded) {
			return true
		}
	}
	return false
}

// FilterAppointments для пустого запроса возвращает исходный список как есть.
func FilterAppointments(list []model.Appointment, query string) []model.Appointment {
	if utils.IsBlank(query) {
		return list
	}
	result := make([]model.Appointment, 0, len(list))
	for _, a := range list {
		if MatchesSearch(a, query) {
			result = append(result, a)
		}
	}
	return result
}

type BoardView struct {
	Query      string              `json:"query"`
	Today      []model.Appointment `json:"today"`
	Unresolved []model.Appointment `json:"unresolved"`
	Future     []model.Appointment `json:"future"`
	Past       []model.Appointment `json:"past"`
}

// AppointmentBoard хранит неотфильтрованные списки категорий рядом с
// отфильтрованным видом: сброс запроса восстанавливает исходные списки и
// порядок без повторного обращения к AppointmentService.
type AppointmentBoard struct {
	appointments *AppointmentService

	mu     sync.RWMutex
	source BoardView
	view   BoardView
}

func NewAppointmentBoard(appointments *AppointmentService) *AppointmentBoard {
	return &AppointmentBoard{appointments: appointments}
}

// Refresh перечитывает категории и повторно применяет текущий запрос.
func (b *AppointmentBoard) Refresh(ctx context.Context) BoardView {
	past := b.appointments.Past(ctx)
	source := BoardView{
		Today:      b.appointments.Today(ctx),
		Unresolved: Unresolved(past),
		Future:     b.appointments.Future(ctx),
		Past:       past,
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.source = source
	b.view = filterView(source, b.view.Query)
	return copyView(b.view)
}

func (b *AppointmentBoard) Search(query string) BoardView {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.view = filterView(b.source, query)
	return copyView(b.view)
}

func (b *AppointmentBoard) View() BoardView {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return copyView(b.view)
}

func filterView(source BoardView, query string) BoardView {
	if utils.IsBlank(query) {
		query = ""
	}
	return BoardView{
		Query:      query,
		Today:      FilterAppointments(source.Today, query),
		Unresolved: FilterAppointments(source.Unresolved, query),
		Future:     FilterAppointments(source.Future, query),
		Past:       FilterAppointments(source.Past, query),
	}
}

// copyView отдает наружу копии, чтобы вызывающий не испортил исходные списки.
func copyView(v BoardView) BoardView {
	return BoardView{
		Query:      v.Query,
		Today:      cloneList(v.Today),
		Unresolved: cloneList(v.Unresolved),
		Future:     cloneList(v.Future),
		Past:       cloneList(v.Past),
	}
}

func cloneList(list []model.Appointment) []model.Appointment {
	out := make([]model.Appointment, len(list))
	for i, a := range list {
		out[i] = a.Clone()
	}
	return out
}
