package slot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/appointify/appointment-service/internal/domain"
	"github.com/appointify/appointment-service/pkg/dbmetrics"
	"github.com/appointify/appointment-service/pkg/psqlbuilder"
	"github.com/appointify/appointment-service/pkg/types"
)

// Repository репозиторий слотов.
// Строка appointment_slots - единственная точка сериализации для
// (business_id, slot_date, slot_time): уникальный индекс по этому ключу
// плюс условный UPDATE делают захват слота атомарным.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Claim атомарно захватывает слот (business, date, time).
// Если строки нет - создает её сразу занятой; если есть и свободна - помечает
// занятой; если есть и занята - ни одна строка не возвращается и метод
// завершается ErrSlotTaken. Никакого окна между чтением и записью нет.
func (r *Repository) Claim(ctx context.Context, businessID int64, date time.Time, t types.TimeString) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointment_slots").
		Columns("business_id", "slot_date", "slot_time", "is_booked").
		Values(businessID, date, t, true).
		Suffix(`ON CONFLICT (business_id, slot_date, slot_time) DO UPDATE
			SET is_booked = TRUE, updated_at = NOW()
			WHERE appointment_slots.is_booked = FALSE
			RETURNING id`).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Claim - build insert query: %v", ErrBuildQuery, err)
	}

	var id int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, ErrSlotTaken
	}
	if err != nil {
		return 0, fmt.Errorf("%w: Claim - execute insert: %w", ErrExecQuery, err)
	}

	return id, nil
}

// ClaimByID атомарно захватывает уже существующий слот по ID.
// Используется восстановлением отмененного бронирования: слот мог быть
// перебронирован, тогда возвращается ErrSlotTaken.
func (r *Repository) ClaimByID(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointment_slots").
		Set("is_booked", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "is_booked": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ClaimByID - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ClaimByID - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ClaimByID - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSlotTaken
	}

	return nil
}

// Release освобождает слот, делая его снова доступным для бронирования
func (r *Repository) Release(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointment_slots").
		Set("is_booked", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Release - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Release - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.AppointmentSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "business_id", "slot_date", "slot_time", "is_booked", "created_at", "updated_at").
		From("appointment_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.AppointmentSlot
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.BusinessID,
		&s.Date,
		&s.Time,
		&s.IsBooked,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// GetBookedTimes получает времена занятых слотов бизнеса на дату.
// Используется фильтром доступности при выдаче слотов.
func (r *Repository) GetBookedTimes(ctx context.Context, businessID int64, date time.Time) ([]types.TimeString, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("slot_time").
		From("appointment_slots").
		Where(squirrel.Eq{"business_id": businessID, "slot_date": date, "is_booked": true}).
		OrderBy("slot_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookedTimes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookedTimes - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	times := make([]types.TimeString, 0)
	for rows.Next() {
		var t types.TimeString
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("%w: GetBookedTimes - scan slot_time: %v", ErrScanRow, err)
		}
		times = append(times, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBookedTimes - rows error: %v", ErrScanRow, err)
	}

	return times, nil
}

// GetBookedDates получает даты с хотя бы одним занятым слотом за период
// [from, to). Правая граница исключается: вызывающий передает первое число
// следующего месяца. Используется календарем публичной страницы.
func (r *Repository) GetBookedDates(ctx context.Context, businessID int64, from, to time.Time) ([]time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT slot_date").
		From("appointment_slots").
		Where(squirrel.Eq{"business_id": businessID, "is_booked": true}).
		Where(squirrel.GtOrEq{"slot_date": from}).
		Where(squirrel.Lt{"slot_date": to}).
		OrderBy("slot_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookedDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookedDates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	dates := make([]time.Time, 0)
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("%w: GetBookedDates - scan slot_date: %v", ErrScanRow, err)
		}
		dates = append(dates, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBookedDates - rows error: %v", ErrScanRow, err)
	}

	return dates, nil
}

// ReleaseOrphans освобождает осиротевшие слоты: is_booked = true без единого
// активного бронирования. Такое состояние возможно при падении процесса между
// захватом слота и вставкой бронирования; grace-период не дает задеть
// бронирование, которое прямо сейчас в процессе создания.
func (r *Repository) ReleaseOrphans(ctx context.Context, gracePeriod time.Duration) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointment_slots").
		Set("is_booked", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"is_booked": true}).
		Where(squirrel.Expr("updated_at < NOW() - make_interval(secs => ?)", gracePeriod.Seconds())).
		Where(squirrel.Expr(`NOT EXISTS (
			SELECT 1 FROM bookings b
			WHERE b.slot_id = appointment_slots.id AND b.status <> 'cancelled'
		)`)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseOrphans - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseOrphans - execute update: %v", ErrExecQuery, err)
	}

	released, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseOrphans - get rows affected: %v", ErrExecQuery, err)
	}

	return released, nil
}
