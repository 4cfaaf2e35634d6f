package business

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/appointify/appointment-service/internal/domain"
	"github.com/appointify/appointment-service/pkg/dbmetrics"
	"github.com/appointify/appointment-service/pkg/psqlbuilder"
)

const businessColumns = "id, owner_user_id, name, slug, category_id, is_public_enabled, created_at, updated_at"

// Repository репозиторий для работы с бизнесами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бизнесов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert создает бизнес или обновляет существующий бизнес владельца.
// Онбординг идемпотентен: повторный вызов для того же владельца обновляет
// название и категорию, slug и флаг публичности сохраняются.
func (r *Repository) Upsert(ctx context.Context, b *domain.Business) (*domain.Business, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("business").
		Columns("owner_user_id", "name", "slug", "category_id", "is_public_enabled").
		Values(b.OwnerUserID, b.Name, b.Slug, b.CategoryID, b.IsPublicEnabled).
		Suffix(`ON CONFLICT (owner_user_id) DO UPDATE
			SET name = EXCLUDED.name,
			    category_id = EXCLUDED.category_id,
			    updated_at = NOW()
			RETURNING ` + businessColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	stored, err := scanBusiness(row)
	if err != nil {
		var pqErr *pq.Error
		// 23505 unique_violation: занят slug другим бизнесом
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return stored, nil
}

// GetByOwner получает бизнес по ID владельца
func (r *Repository) GetByOwner(ctx context.Context, ownerUserID int64) (*domain.Business, error) {
	return r.getByCondition(ctx, "GetByOwner", squirrel.Eq{"owner_user_id": ownerUserID})
}

// GetBySlug получает бизнес по публичному slug
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*domain.Business, error) {
	return r.getByCondition(ctx, "GetBySlug", squirrel.Eq{"slug": slug})
}

// SetPublicEnabled включает или выключает публичную страницу бронирования
func (r *Repository) SetPublicEnabled(ctx context.Context, id int64, enabled bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("business").
		Set("is_public_enabled", enabled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetPublicEnabled - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetPublicEnabled - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetPublicEnabled - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBusinessNotFound
	}

	return nil
}

func (r *Repository) getByCondition(ctx context.Context, op string, cond squirrel.Eq) (*domain.Business, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(businessColumns).
		From("business").
		Where(cond).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	b, err := scanBusiness(row)
	if err == sql.ErrNoRows {
		return nil, ErrBusinessNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan business: %v", ErrScanRow, op, err)
	}

	return b, nil
}

func scanBusiness(row *sql.Row) (*domain.Business, error) {
	var b domain.Business
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.OwnerUserID,
		&b.Name,
		&b.Slug,
		&b.CategoryID,
		&b.IsPublicEnabled,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}
