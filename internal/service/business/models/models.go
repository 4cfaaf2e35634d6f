package models

import (
	"time"

	"github.com/appointify/appointment-service/internal/domain"
)

// Request модели

// OnboardRequest запрос на создание или обновление бизнеса
type OnboardRequest struct {
	UserID     int64  `json:"-"`
	Name       string `json:"name"`
	CategoryID *int64 `json:"categoryId,omitempty"`
}

// SetPublicEnabledRequest запрос на переключение публичной страницы
type SetPublicEnabledRequest struct {
	UserID  int64 `json:"-"`
	Enabled bool  `json:"enabled"`
}

// Response модели

// BusinessResponse ответ с данными бизнеса
type BusinessResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Slug            string `json:"slug"`
	CategoryID      *int64 `json:"categoryId,omitempty"`
	IsPublicEnabled bool   `json:"isPublicEnabled"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

// FromDomainBusiness конвертирует domain бизнес в response
func FromDomainBusiness(b *domain.Business) *BusinessResponse {
	return &BusinessResponse{
		ID:              b.ID,
		Name:            b.Name,
		Slug:            b.Slug,
		CategoryID:      b.CategoryID,
		IsPublicEnabled: b.IsPublicEnabled,
		CreatedAt:       b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       b.UpdatedAt.Format(time.RFC3339),
	}
}
