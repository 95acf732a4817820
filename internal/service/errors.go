package service

import "errors"

var (
	// ErrNotAuthenticated - чат не привязан к студенту портала.
	ErrNotAuthenticated = errors.New("student is not authenticated")

	// ErrInvalidDuration - длительность не положительная; до сети не доходим.
	ErrInvalidDuration = errors.New("duration must be a positive number of minutes")

	// ErrBookingInProgress - по этому слоту уже идёт бронирование.
	ErrBookingInProgress = errors.New("booking for this slot is already in progress")

	// ErrSlotNotFound - слот отсутствует в загруженном расписании.
	ErrSlotNotFound = errors.New("slot not found")

	// ErrViewClosed - экран закрыт, поздний ответ сервера не применяем.
	ErrViewClosed = errors.New("schedule view is closed")
)

// BookingFailedError - отказ бэкенда на запрос бронирования.
// Message - текст сервера, показывается пользователю как есть.
type BookingFailedError struct {
	Message string
	Err     error
}

func (e *BookingFailedError) Error() string {
	if e.Message != "" {
		return "booking failed: " + e.Message
	}
	if e.Err != nil {
		return "booking failed: " + e.Err.Error()
	}
	return "booking failed"
}

func (e *BookingFailedError) Unwrap() error {
	return e.Err
}
