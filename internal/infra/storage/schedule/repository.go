package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/appointify/appointment-service/internal/domain"
	"github.com/appointify/appointment-service/pkg/dbmetrics"
	"github.com/appointify/appointment-service/pkg/psqlbuilder"
)

// Repository репозиторий недельного расписания и праздников бизнеса
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetDays получает строки недельного расписания бизнеса.
// Отсутствующие дни недели - допустимое состояние, дефолт применяет domain.WeeklySchedule.
func (r *Repository) GetDays(ctx context.Context, businessID int64) ([]domain.DaySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "business_id", "day_of_week", "is_open", "start_time", "end_time").
		From("business_schedules").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("day_of_week ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetDays - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetDays - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	days := make([]domain.DaySchedule, 0, 7)
	for rows.Next() {
		var day domain.DaySchedule
		var weekday int

		if err := rows.Scan(&day.ID, &day.BusinessID, &weekday, &day.IsOpen, &day.StartTime, &day.EndTime); err != nil {
			return nil, fmt.Errorf("%w: GetDays - scan row: %v", ErrScanRow, err)
		}
		day.DayOfWeek = toWeekday(weekday)
		days = append(days, day)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetDays - rows error: %v", ErrScanRow, err)
	}

	return days, nil
}

// UpsertDays сохраняет набор строк расписания.
// Ключ (business_id, day_of_week) уникален, повторное сохранение обновляет часы.
func (r *Repository) UpsertDays(ctx context.Context, businessID int64, days []domain.DaySchedule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Insert("business_schedules").
		Columns("business_id", "day_of_week", "is_open", "start_time", "end_time")

	for i := range days {
		day := &days[i]
		builder = builder.Values(businessID, int(day.DayOfWeek), day.IsOpen, day.StartTime, day.EndTime)
	}

	query, args, err := builder.
		Suffix(`ON CONFLICT (business_id, day_of_week) DO UPDATE
			SET is_open = EXCLUDED.is_open,
			    start_time = EXCLUDED.start_time,
			    end_time = EXCLUDED.end_time`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpsertDays - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertDays - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetHolidays получает список праздников бизнеса
func (r *Repository) GetHolidays(ctx context.Context, businessID int64) ([]domain.Holiday, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "business_id", "holiday_date", "name").
		From("holidays").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("holiday_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetHolidays - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetHolidays - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	holidays := make([]domain.Holiday, 0)
	for rows.Next() {
		var h domain.Holiday
		if err := rows.Scan(&h.ID, &h.BusinessID, &h.Date, &h.Name); err != nil {
			return nil, fmt.Errorf("%w: GetHolidays - scan row: %v", ErrScanRow, err)
		}
		holidays = append(holidays, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetHolidays - rows error: %v", ErrScanRow, err)
	}

	return holidays, nil
}

// InsertHolidays добавляет праздники бизнеса
func (r *Repository) InsertHolidays(ctx context.Context, businessID int64, holidays []domain.Holiday) error {
	if len(holidays) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Insert("holidays").
		Columns("business_id", "holiday_date", "name")

	for i := range holidays {
		builder = builder.Values(businessID, holidays[i].Date, holidays[i].Name)
	}

	query, args, err := builder.
		Suffix("ON CONFLICT (business_id, holiday_date) DO UPDATE SET name = EXCLUDED.name").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: InsertHolidays - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: InsertHolidays - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteHolidays удаляет праздники бизнеса по ID
func (r *Repository) DeleteHolidays(ctx context.Context, businessID int64, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("holidays").
		Where(squirrel.Eq{"business_id": businessID, "id": ids}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteHolidays - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteHolidays - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// toWeekday конвертирует значение из БД (0=Sunday .. 6=Saturday) в time.Weekday
func toWeekday(v int) time.Weekday {
	return time.Weekday(v % 7)
}
