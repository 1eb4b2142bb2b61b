package domain

// Business validation constants
const (
	MinSeatsPerBooking = 1
	MaxPassengerCount  = 50
	MaxMessageLength   = 500
	MaxLocationLength  = 255
	MaxCityLength      = 100
	DefaultUserRating  = 5.0
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, при которых бронирование занимает места и блокирует повторное
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
