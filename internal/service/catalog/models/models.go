package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/appointify/appointment-service/internal/domain"
)

// Request модели

// CreateServiceRequest запрос на создание услуги
type CreateServiceRequest struct {
	UserID          int64    `json:"-"`
	Name            string   `json:"name"`
	DurationMinutes int      `json:"durationMinutes"`
	Price           float64  `json:"price"`
	IsActive        *bool    `json:"isActive,omitempty"` // По умолчанию true
}

// UpdateServiceRequest запрос на обновление услуги
type UpdateServiceRequest struct {
	UserID          int64   `json:"-"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	IsActive        bool    `json:"isActive"`
}

// Validate проверяет поля создаваемой услуги
func (r *CreateServiceRequest) Validate() error {
	return validateServiceFields(r.Name, r.DurationMinutes, r.Price)
}

// Validate проверяет поля обновляемой услуги
func (r *UpdateServiceRequest) Validate() error {
	return validateServiceFields(r.Name, r.DurationMinutes, r.Price)
}

func validateServiceFields(name string, durationMinutes int, price float64) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name is required")
	}
	if len(name) > domain.MaxServiceNameLength {
		return fmt.Errorf("name exceeds %d characters", domain.MaxServiceNameLength)
	}
	if durationMinutes < domain.MinServiceDurationMinutes || durationMinutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("duration must be between %d and %d minutes",
			domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}
	if price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	return nil
}

// Response модели

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID              int64   `json:"id"`
	BusinessID      int64   `json:"businessId"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	IsActive        bool    `json:"isActive"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []*ServiceResponse `json:"services"`
	Total    int                `json:"total"`
}

// FromDomainService конвертирует domain услугу в response
func FromDomainService(s *domain.Service) *ServiceResponse {
	return &ServiceResponse{
		ID:              s.ID,
		BusinessID:      s.BusinessID,
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
		IsActive:        s.IsActive,
		CreatedAt:       s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       s.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainServiceList конвертирует список domain услуг в response
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	result := make([]*ServiceResponse, 0, len(services))
	for _, s := range services {
		result = append(result, FromDomainService(s))
	}
	return &ServiceListResponse{Services: result, Total: len(result)}
}
