package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RideBookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	RideID  string    `validate:"required"`       // строковый ID, формат проверяется отдельно
	RiderID uuid.UUID `validate:"required"`       // пассажир из аутентификации
	Seats   int       `validate:"required,min=1"` // 0 считается отсутствующим значением
	Message string    `validate:"max=500"`
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         uuid.UUID
	RideID     uuid.UUID
	UserID     uuid.UUID
	Seats      int
	TotalPrice int64
	Status     string
	Message    string
	IsRead     bool

	// Поездка на момент бронирования
	RideSummary    string
	RideDate       time.Time
	RideTime       types.TimeString
	PricePerSeat   int64
	RemainingSeats int

	CreatedAt time.Time
	UpdatedAt time.Time
}
