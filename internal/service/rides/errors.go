package rides

import "errors"

var (
	// ErrRideNotFound возвращается, когда поездка не найдена
	ErrRideNotFound = errors.New("ride not found")

	// ErrOwnerNotFound возвращается, когда автор поездки не зарегистрирован
	ErrOwnerNotFound = errors.New("ride owner not found")

	// ErrAccessDenied возвращается, когда пользователь не владелец поездки
	ErrAccessDenied = errors.New("access denied")

	// ErrRideHasBookings возвращается при удалении поездки с активными бронированиями
	ErrRideHasBookings = errors.New("ride has active bookings")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
