// Package publicbusiness кэширует карточку публичной страницы бронирования.
// Карточка (бизнес + услуги + расписание + праздники) читается на каждое
// открытие публичной страницы, поэтому держится в Redis с коротким TTL и
// инвалидируется при любом изменении настроек бизнеса.
package publicbusiness

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/appointify/appointment-service/internal/domain"
)

// ErrCacheMiss возвращается, когда карточки нет в кэше
var ErrCacheMiss = errors.New("publicbusiness.cache: miss")

// Card карточка публичной страницы бронирования
type Card struct {
	Business domain.Business      `json:"business"`
	Services []domain.Service     `json:"services"`
	Days     []domain.DaySchedule `json:"days"`
	Holidays []domain.Holiday     `json:"holidays"`
}

// Cache Redis-кэш карточек публичных страниц
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New создает кэш карточек с заданным TTL
func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func cardKey(slug string) string {
	return "public_card:" + slug
}

// Get получает карточку по slug. Отсутствие ключа - ErrCacheMiss.
func (c *Cache) Get(ctx context.Context, slug string) (*Card, error) {
	raw, err := c.client.Get(ctx, cardKey(slug)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("publicbusiness.cache: get %s: %w", slug, err)
	}

	var card Card
	if err := json.Unmarshal(raw, &card); err != nil {
		// Битое значение трактуем как промах, чтобы оно было перезаписано
		return nil, ErrCacheMiss
	}

	return &card, nil
}

// Set сохраняет карточку с TTL
func (c *Cache) Set(ctx context.Context, slug string, card *Card) error {
	raw, err := json.Marshal(card)
	if err != nil {
		return fmt.Errorf("publicbusiness.cache: marshal %s: %w", slug, err)
	}

	if err := c.client.Set(ctx, cardKey(slug), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("publicbusiness.cache: set %s: %w", slug, err)
	}

	return nil
}

// Invalidate удаляет карточку из кэша.
// Вызывается после изменения расписания, праздников, услуг или флага публичности.
func (c *Cache) Invalidate(ctx context.Context, slug string) error {
	if err := c.client.Del(ctx, cardKey(slug)).Err(); err != nil {
		return fmt.Errorf("publicbusiness.cache: invalidate %s: %w", slug, err)
	}
	return nil
}

// NoopCache заглушка кэша для конфигурации без Redis: каждое чтение - промах
type NoopCache struct{}

// NewNoop создает заглушку кэша
func NewNoop() *NoopCache {
	return &NoopCache{}
}

// Get всегда возвращает ErrCacheMiss
func (c *NoopCache) Get(_ context.Context, _ string) (*Card, error) {
	return nil, ErrCacheMiss
}

// Set ничего не делает
func (c *NoopCache) Set(_ context.Context, _ string, _ *Card) error {
	return nil
}

// Invalidate ничего не делает
func (c *NoopCache) Invalidate(_ context.Context, _ string) error {
	return nil
}
