package models

import (
	"fmt"
	"time"

	"github.com/appointify/appointment-service/internal/domain"
	"github.com/appointify/appointment-service/pkg/types"
)

// Request модели

// DayInput настройки одного дня недели
type DayInput struct {
	DayOfWeek int    `json:"dayOfWeek"` // 0 = воскресенье .. 6 = суббота
	IsOpen    bool   `json:"isOpen"`
	StartTime string `json:"startTime,omitempty"` // "09:00", только для открытых дней
	EndTime   string `json:"endTime,omitempty"`
}

// UpdateScheduleRequest запрос на полную замену недельного расписания
type UpdateScheduleRequest struct {
	UserID int64      `json:"-"`
	Days   []DayInput `json:"days"`
}

// HolidayInput праздник или нерабочий день
type HolidayInput struct {
	Date string `json:"date"` // "2026-01-01"
	Name string `json:"name"`
}

// ReplaceHolidaysRequest запрос на полную замену списка праздников
type ReplaceHolidaysRequest struct {
	UserID   int64          `json:"-"`
	Holidays []HolidayInput `json:"holidays"`
}

// Response модели

// DayResponse настройки одного дня недели
type DayResponse struct {
	DayOfWeek int    `json:"dayOfWeek"`
	IsOpen    bool   `json:"isOpen"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
}

// HolidayResponse праздник
type HolidayResponse struct {
	ID   int64  `json:"id"`
	Date string `json:"date"`
	Name string `json:"name"`
}

// ScheduleResponse недельное расписание с праздниками
type ScheduleResponse struct {
	Days     []DayResponse     `json:"days"`
	Holidays []HolidayResponse `json:"holidays"`
}

// ToDomainDay конвертирует input в domain настройки дня
func (d DayInput) ToDomainDay(businessID int64) (domain.DaySchedule, error) {
	if d.DayOfWeek < 0 || d.DayOfWeek > 6 {
		return domain.DaySchedule{}, fmt.Errorf("day of week %d out of range", d.DayOfWeek)
	}

	day := domain.DaySchedule{
		BusinessID: businessID,
		DayOfWeek:  time.Weekday(d.DayOfWeek),
		IsOpen:     d.IsOpen,
	}
	if d.IsOpen {
		day.StartTime = types.TimeString(d.StartTime)
		day.EndTime = types.TimeString(d.EndTime)
	}

	if err := day.Validate(); err != nil {
		return domain.DaySchedule{}, err
	}

	return day, nil
}

// ToDomainHoliday конвертирует input в domain праздник
func (h HolidayInput) ToDomainHoliday(businessID int64) (domain.Holiday, error) {
	date, err := time.Parse(domain.DateFormat, h.Date)
	if err != nil {
		return domain.Holiday{}, fmt.Errorf("invalid date %q", h.Date)
	}

	if len(h.Name) > domain.MaxHolidayNameLength {
		return domain.Holiday{}, fmt.Errorf("name exceeds %d characters", domain.MaxHolidayNameLength)
	}

	return domain.Holiday{BusinessID: businessID, Date: date, Name: h.Name}, nil
}

// FromDomainSchedule конвертирует domain расписание в response
func FromDomainSchedule(days []domain.DaySchedule, holidays []domain.Holiday) *ScheduleResponse {
	resp := &ScheduleResponse{
		Days:     make([]DayResponse, 0, len(days)),
		Holidays: make([]HolidayResponse, 0, len(holidays)),
	}

	for _, d := range days {
		day := DayResponse{DayOfWeek: int(d.DayOfWeek), IsOpen: d.IsOpen}
		if d.IsOpen {
			day.StartTime = d.StartTime.String()
			day.EndTime = d.EndTime.String()
		}
		resp.Days = append(resp.Days, day)
	}

	for _, h := range holidays {
		resp.Holidays = append(resp.Holidays, HolidayResponse{
			ID:   h.ID,
			Date: h.Date.Format(domain.DateFormat),
			Name: h.Name,
		})
	}

	return resp
}
