package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RideBookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// ContactInfo контакты пассажира на момент бронирования
type ContactInfo struct {
	Name  string
	Phone string
	Email string
}

// Booking represents a rider's reservation of seats on a ride
type Booking struct {
	ID     uuid.UUID
	RideID uuid.UUID
	UserID uuid.UUID // пассажир

	Seats      int
	TotalPrice int64 // pricePerSeat * seats на момент бронирования, дальше не пересчитывается
	Status     BookingStatus

	// Denormalized rider contacts for the ride owner's inbox
	Contact ContactInfo
	Message string
	IsRead  bool

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive returns true while the booking still holds seats
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeCompleted returns true if the ride owner can mark the booking completed
func (b *Booking) CanBeCompleted() bool {
	return b.Status == StatusConfirmed
}

// RideSummary поля поездки, которые показываются в списке бронирований пассажира
type RideSummary struct {
	ID           uuid.UUID
	PickupPoint  Location
	DropoffPoint Location
	Date         time.Time
	Time         types.TimeString
	PricePerSeat int64
}

// BookingWithRide бронирование вместе с кратким описанием поездки
type BookingWithRide struct {
	Booking
	Ride RideSummary
}
