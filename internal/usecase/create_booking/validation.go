package create_booking

import (
	"fmt"
	"strings"

	"github.com/appointify/appointment-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Slug == "" {
		return fmt.Errorf("%w: slug is required", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: time: %v", ErrInvalidInput, err)
	}

	// Время должно попадать на границу сетки
	minutes, err := req.Time.Minutes()
	if err != nil {
		return fmt.Errorf("%w: time: %v", ErrInvalidInput, err)
	}
	if minutes%domain.SlotStepMinutes != 0 {
		return fmt.Errorf("%w: time %s is not aligned to %d-minute grid",
			ErrInvalidTimeSlot, req.Time, domain.SlotStepMinutes)
	}

	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customer name exceeds %d characters",
			ErrInvalidInput, domain.MaxCustomerNameLength)
	}

	phone := strings.TrimSpace(req.CustomerPhone)
	if phone == "" {
		return fmt.Errorf("%w: customer phone is required", ErrInvalidInput)
	}
	if len(phone) > domain.MaxCustomerPhoneLength {
		return fmt.Errorf("%w: customer phone exceeds %d characters",
			ErrInvalidInput, domain.MaxCustomerPhoneLength)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters",
			ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
