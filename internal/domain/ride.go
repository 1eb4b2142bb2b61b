package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RideBookingService/pkg/types"
)

// RideStatus represents the lifecycle state of a published ride
type RideStatus string

const (
	RideStatusActive    RideStatus = "active"
	RideStatusCancelled RideStatus = "cancelled"
	RideStatusCompleted RideStatus = "completed"
)

// Location точка посадки или высадки
type Location struct {
	Name    string
	City    string
	Address string
}

// RouteInfo маршрут, выбранный водителем при публикации
type RouteInfo struct {
	Distance string
	Duration string
	Toll     bool
}

// Ride represents a published ride offer
type Ride struct {
	ID     uuid.UUID
	UserID uuid.UUID // владелец (водитель)

	PickupPoint  Location
	DropoffPoint Location
	Date         time.Time
	Time         types.TimeString

	// PassengerCount оставшиеся свободные места, никогда не меньше нуля
	PassengerCount int
	PricePerSeat   int64
	SelectedRoute  *RouteInfo
	Status         RideStatus

	PublishedAt time.Time
	UpdatedAt   time.Time
}

// HasSeats returns true if n seats can still be booked
func (r *Ride) HasSeats(n int) bool {
	return n > 0 && n <= r.PassengerCount
}

// IsOwnedBy returns true if the ride was published by userID
func (r *Ride) IsOwnedBy(userID uuid.UUID) bool {
	return r.UserID == userID
}

// Summary короткое описание поездки для уведомлений
func (r *Ride) Summary() string {
	return fmt.Sprintf("%s (%s) -> %s (%s) on %s at %s",
		r.PickupPoint.Name, r.PickupPoint.City,
		r.DropoffPoint.Name, r.DropoffPoint.City,
		r.Date.Format(DateFormat), r.Time)
}

// RideFilter фильтр поиска поездок
// Пустые поля не ограничивают выборку
type RideFilter struct {
	PickupCity  string     // подстрока без учета регистра
	DropoffCity string     // подстрока без учета регистра
	Date        *time.Time // поездки в течение этих суток
	MinSeats    *int       // свободных мест не меньше
	MaxPrice    *int64     // цена за место не больше
}

// RideUpdate изменяемые владельцем поля поездки
// nil означает, что поле не меняется и не попадает в UPDATE
type RideUpdate struct {
	PickupPoint    *Location
	DropoffPoint   *Location
	Date           *time.Time
	Time           *types.TimeString
	PassengerCount *int
	PricePerSeat   *int64
	SelectedRoute  *RouteInfo
	Status         *RideStatus
}

// IsEmpty returns true if the update changes nothing
func (u RideUpdate) IsEmpty() bool {
	return u.PickupPoint == nil && u.DropoffPoint == nil && u.Date == nil && u.Time == nil &&
		u.PassengerCount == nil && u.PricePerSeat == nil && u.SelectedRoute == nil && u.Status == nil
}

// ApplyTo переносит заданные поля на поездку
func (u RideUpdate) ApplyTo(ride *Ride) {
	if u.PickupPoint != nil {
		ride.PickupPoint = *u.PickupPoint
	}
	if u.DropoffPoint != nil {
		ride.DropoffPoint = *u.DropoffPoint
	}
	if u.Date != nil {
		ride.Date = *u.Date
	}
	if u.Time != nil {
		ride.Time = *u.Time
	}
	if u.PassengerCount != nil {
		ride.PassengerCount = *u.PassengerCount
	}
	if u.PricePerSeat != nil {
		ride.PricePerSeat = *u.PricePerSeat
	}
	if u.SelectedRoute != nil {
		route := *u.SelectedRoute
		ride.SelectedRoute = &route
	}
	if u.Status != nil {
		ride.Status = *u.Status
	}
}
