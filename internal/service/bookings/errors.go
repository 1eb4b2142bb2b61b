package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrRideNotFound возвращается, когда поездка не найдена
	ErrRideNotFound = errors.New("ride not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotComplete возвращается, когда завершить можно только подтвержденное бронирование
	ErrCannotComplete = errors.New("booking cannot be completed")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
