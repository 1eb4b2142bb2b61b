package ride

import "errors"

var (
	// ErrRideNotFound возвращается, когда поездка не найдена
	ErrRideNotFound = errors.New("ride.repository: ride not found")

	// ErrNotEnoughSeats возвращается, когда свободных мест меньше, чем нужно списать
	ErrNotEnoughSeats = errors.New("ride.repository: not enough seats")

	// ErrOwnerNotFound возвращается, когда владелец поездки отсутствует в users
	ErrOwnerNotFound = errors.New("ride.repository: ride owner not found")

	// ErrRideReferenced возвращается, когда на поездку ссылаются бронирования
	ErrRideReferenced = errors.New("ride.repository: ride is referenced by bookings")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("ride.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("ride.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("ride.repository: failed to scan row")
)
