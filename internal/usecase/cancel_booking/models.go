package cancel_booking

import (
	"time"

	"github.com/google/uuid"
)

// Request запрос на отмену бронирования пассажиром
type Request struct {
	BookingID uuid.UUID
	UserID    uuid.UUID
}

// Response итог отмены
type Response struct {
	ID            uuid.UUID
	RideID        uuid.UUID
	Status        string
	SeatsRestored int
	CancelledAt   time.Time
}
