package slot

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Claim(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	date := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	t.Run("free slot is claimed and id returned", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO appointment_slots .*ON CONFLICT \(business_id, slot_date, slot_time\) DO UPDATE`).
			WithArgs(int64(7), date, "10:00", true).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

		id, err := repo.Claim(context.Background(), 7, date, "10:00")
		require.NoError(t, err)
		assert.Equal(t, int64(42), id)
	})

	t.Run("already booked slot returns ErrSlotTaken", func(t *testing.T) {
		// Условный upsert не вернул ни одной строки - слот занят
		mock.ExpectQuery(`INSERT INTO appointment_slots`).
			WithArgs(int64(7), date, "10:00", true).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.Claim(context.Background(), 7, date, "10:00")
		assert.ErrorIs(t, err, ErrSlotTaken)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ClaimByID(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("free slot", func(t *testing.T) {
		mock.ExpectExec(`UPDATE appointment_slots SET is_booked = .+ WHERE id = .+ AND is_booked = .+`).
			WithArgs(true, int64(42), false).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.ClaimByID(context.Background(), 42))
	})

	t.Run("rebooked slot returns ErrSlotTaken", func(t *testing.T) {
		mock.ExpectExec(`UPDATE appointment_slots`).
			WithArgs(true, int64(42), false).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.ClaimByID(context.Background(), 42), ErrSlotTaken)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Release(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectExec(`UPDATE appointment_slots SET is_booked = .+`).
		WithArgs(false, int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Release(context.Background(), 42))

	mock.ExpectExec(`UPDATE appointment_slots`).
		WithArgs(false, int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Release(context.Background(), 99), ErrSlotNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	date := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("existing slot", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, business_id, slot_date, slot_time, is_booked, created_at, updated_at FROM appointment_slots`).
			WithArgs(int64(42)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "business_id", "slot_date", "slot_time", "is_booked", "created_at", "updated_at"}).
				AddRow(int64(42), int64(7), date, "10:00:00", true, now, now))

		s, err := repo.GetByID(context.Background(), 42)
		require.NoError(t, err)
		assert.Equal(t, int64(7), s.BusinessID)
		assert.Equal(t, "10:00", s.Time.String())
		assert.True(t, s.IsBooked)
	})

	t.Run("missing slot", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, business_id, slot_date, slot_time, is_booked, created_at, updated_at FROM appointment_slots`).
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByID(context.Background(), 99)
		assert.ErrorIs(t, err, ErrSlotNotFound)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetBookedTimes(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	date := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT slot_time FROM appointment_slots`).
		WillReturnRows(sqlmock.NewRows([]string{"slot_time"}).
			AddRow("10:00:00").
			AddRow("14:30:00"))

	times, err := repo.GetBookedTimes(context.Background(), 7, date)
	require.NoError(t, err)
	require.Len(t, times, 2)
	assert.Equal(t, "10:00", times[0].String())
	assert.Equal(t, "14:30", times[1].String())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetBookedDates(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	// Правая граница строгая: занятый слот 1-го числа следующего месяца
	// не должен попадать в календарь текущего
	mock.ExpectQuery(`SELECT DISTINCT slot_date FROM appointment_slots WHERE .+slot_date >= \$\d+ AND slot_date < \$\d+`).
		WithArgs(int64(7), true, from, to).
		WillReturnRows(sqlmock.NewRows([]string{"slot_date"}).
			AddRow(time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)).
			AddRow(time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)))

	dates, err := repo.GetBookedDates(context.Background(), 7, from, to)
	require.NoError(t, err)
	require.Len(t, dates, 2)
	assert.Equal(t, time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), dates[1])

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ReleaseOrphans(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectExec(`UPDATE appointment_slots SET is_booked = .+NOT EXISTS`).
		WillReturnResult(sqlmock.NewResult(0, 3))

	released, err := repo.ReleaseOrphans(context.Background(), 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(3), released)

	require.NoError(t, mock.ExpectationsWereMet())
}
