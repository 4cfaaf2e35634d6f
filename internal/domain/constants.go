package domain

// Default schedule values
const (
	// SlotStepMinutes шаг сетки слотов. Все слоты начинаются на границе 30 минут.
	SlotStepMinutes = 30

	// DefaultOpenTime / DefaultCloseTime применяются, когда для дня недели
	// нет строки расписания (см. WeeklySchedule.Resolve)
	DefaultOpenTime  = "09:00"
	DefaultCloseTime = "17:00"
)

// Business validation constants
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 hours
	MaxServiceNameLength      = 120
	MaxCustomerNameLength     = 120
	MaxCustomerPhoneLength    = 32
	MaxNotesLength            = 500
	MaxHolidayNameLength      = 120
	MaxBusinessNameLength     = 120
)

// DateFormat формат дат в API и БД (YYYY-MM-DD)
const DateFormat = "2006-01-02"
