package models

import (
	"time"

	"github.com/m04kA/SMC-ActionCentreService/internal/domain"
	"github.com/m04kA/SMC-ActionCentreService/pkg/types"
)

// Request модели

// ListByNurseRequest запрос расписания медсестры на дату
type ListByNurseRequest struct {
	NurseID string
	Date    time.Time
}

// Response модели

// VisitResponse ответ с данными записи на приём
type VisitResponse struct {
	ID          int64     `json:"id"`
	NurseID     string    `json:"nurseId"`
	CentreID    string    `json:"centreId"`
	ProcedureID string    `json:"procedureId"`
	VisitDate   string    `json:"visitDate"` // YYYY-MM-DD
	VisitTime   string    `json:"visitTime"` // HH:MM
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ScheduleEntry занятый слот в расписании медсестры, без контактных данных
type ScheduleEntry struct {
	VisitID     int64  `json:"visitId"`
	VisitTime   string `json:"visitTime"`
	CentreID    string `json:"centreId"`
	ProcedureID string `json:"procedureId"`
}

// ScheduleResponse расписание медсестры на дату
type ScheduleResponse struct {
	NurseID string          `json:"nurseId"`
	Date    string          `json:"date"`
	Visits  []ScheduleEntry `json:"visits"`
	Total   int             `json:"total"`
}

// Вспомогательные функции конвертации

// FromDomainVisit конвертирует domain.ScheduledVisit в VisitResponse
func FromDomainVisit(v *domain.ScheduledVisit) *VisitResponse {
	if v == nil {
		return nil
	}

	return &VisitResponse{
		ID:          v.ID,
		NurseID:     v.ProviderID,
		CentreID:    v.CentreID,
		ProcedureID: v.ProcedureID,
		VisitDate:   types.FormatDate(v.Date),
		VisitTime:   v.Time.String(),
		FirstName:   v.FirstName,
		LastName:    v.LastName,
		Email:       v.Email,
		Phone:       v.Phone,
		CreatedAt:   v.CreatedAt,
	}
}

// FromDomainSchedule конвертирует записи медсестры в расписание
func FromDomainSchedule(nurseID string, date time.Time, visits []*domain.ScheduledVisit) *ScheduleResponse {
	entries := make([]ScheduleEntry, len(visits))
	for i, v := range visits {
		entries[i] = ScheduleEntry{
			VisitID:     v.ID,
			VisitTime:   v.Time.String(),
			CentreID:    v.CentreID,
			ProcedureID: v.ProcedureID,
		}
	}

	return &ScheduleResponse{
		NurseID: nurseID,
		Date:    types.FormatDate(date),
		Visits:  entries,
		Total:   len(entries),
	}
}
