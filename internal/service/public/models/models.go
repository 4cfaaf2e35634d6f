package models

import (
	"github.com/appointify/appointment-service/internal/domain"
	"github.com/appointify/appointment-service/internal/infra/cache/publicbusiness"
)

// PublicServiceResponse услуга на публичной странице
type PublicServiceResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// PublicDayResponse рабочие часы дня недели
type PublicDayResponse struct {
	DayOfWeek int    `json:"dayOfWeek"`
	IsOpen    bool   `json:"isOpen"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
}

// BusinessCardResponse карточка публичной страницы бронирования
type BusinessCardResponse struct {
	Name     string                  `json:"name"`
	Slug     string                  `json:"slug"`
	Services []PublicServiceResponse `json:"services"`
	Days     []PublicDayResponse     `json:"days"`
	Holidays []string                `json:"holidays"` // Даты "2026-01-01"
}

// BookedDatesResponse даты месяца, на которые есть занятые слоты
type BookedDatesResponse struct {
	Year  int      `json:"year"`
	Month int      `json:"month"`
	Dates []string `json:"dates"` // "2026-01-02"
}

// FromCard конвертирует кэшируемую карточку в response
func FromCard(card *publicbusiness.Card) *BusinessCardResponse {
	resp := &BusinessCardResponse{
		Name:     card.Business.Name,
		Slug:     card.Business.Slug,
		Services: make([]PublicServiceResponse, 0, len(card.Services)),
		Days:     make([]PublicDayResponse, 0, len(card.Days)),
		Holidays: make([]string, 0, len(card.Holidays)),
	}

	for _, s := range card.Services {
		resp.Services = append(resp.Services, PublicServiceResponse{
			ID:              s.ID,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
			Price:           s.Price,
		})
	}

	for _, d := range card.Days {
		day := PublicDayResponse{DayOfWeek: int(d.DayOfWeek), IsOpen: d.IsOpen}
		if d.IsOpen {
			day.StartTime = d.StartTime.String()
			day.EndTime = d.EndTime.String()
		}
		resp.Days = append(resp.Days, day)
	}

	for _, h := range card.Holidays {
		resp.Holidays = append(resp.Holidays, h.Date.Format(domain.DateFormat))
	}

	return resp
}
