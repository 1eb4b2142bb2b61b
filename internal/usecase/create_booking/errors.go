package create_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput возвращается при отсутствующих или некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrMissingFields возвращается, когда не переданы обязательные поля
	ErrMissingFields = fmt.Errorf("%w: please provide all required fields", ErrInvalidInput)

	// ErrInvalidRideID возвращается, когда rideId не является UUID
	ErrInvalidRideID = fmt.Errorf("%w: invalid ride ID format", ErrInvalidInput)

	// ErrRideNotFound возвращается, когда поездка не найдена
	ErrRideNotFound = errors.New("create_booking: ride not found")

	// ErrUserNotFound возвращается, когда пассажир не найден
	ErrUserNotFound = errors.New("create_booking: user not found")

	// ErrCapacityExceeded возвращается, когда свободных мест меньше запрошенного
	ErrCapacityExceeded = errors.New("create_booking: not enough seats available")

	// ErrSelfBooking возвращается, когда владелец пытается забронировать свою поездку
	ErrSelfBooking = errors.New("create_booking: cannot book own ride")

	// ErrDuplicateBooking возвращается, когда у пассажира уже есть активное бронирование поездки
	ErrDuplicateBooking = errors.New("create_booking: ride already booked by this user")

	// ErrRideBusy возвращается, когда не удалось дождаться блокировки поездки
	ErrRideBusy = errors.New("create_booking: ride is being booked, try again")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// CapacityError отказ по вместимости с текущим числом свободных мест
type CapacityError struct {
	Available int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("Not enough seats available. Only %d seat(s) left.", e.Available)
}

func (e *CapacityError) Unwrap() error {
	return ErrCapacityExceeded
}
