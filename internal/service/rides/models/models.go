package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RideBookingService/internal/domain"
)

// Request модели

// Location точка маршрута
type Location struct {
	Name    string `json:"name" validate:"required,max=255"`
	City    string `json:"city" validate:"required,max=100"`
	Address string `json:"address" validate:"max=255"`
}

// RouteInfo выбранный маршрут
type RouteInfo struct {
	Distance string `json:"distance"`
	Duration string `json:"duration"`
	Toll     bool   `json:"toll"`
}

// PublishRideRequest запрос на публикацию поездки
type PublishRideRequest struct {
	UserID         uuid.UUID  `json:"-" validate:"required"`
	PickupPoint    Location   `json:"pickupPoint"`
	DropoffPoint   Location   `json:"dropoffPoint"`
	Date           string     `json:"date" validate:"required"` // "2025-03-14"
	Time           string     `json:"time" validate:"required"` // "09:00"
	PassengerCount int        `json:"passengerCount" validate:"required,min=1,max=50"`
	PricePerSeat   int64      `json:"pricePerSeat" validate:"min=0"`
	SelectedRoute  *RouteInfo `json:"selectedRoute,omitempty"`
}

// UpdateRideRequest частичное обновление поездки, nil поля не меняются
type UpdateRideRequest struct {
	UserID         uuid.UUID  `json:"-" validate:"required"`
	PickupPoint    *Location  `json:"pickupPoint,omitempty"`
	DropoffPoint   *Location  `json:"dropoffPoint,omitempty"`
	Date           *string    `json:"date,omitempty"`
	Time           *string    `json:"time,omitempty"`
	PassengerCount *int       `json:"passengerCount,omitempty" validate:"omitempty,min=0,max=50"`
	PricePerSeat   *int64     `json:"pricePerSeat,omitempty" validate:"omitempty,min=0"`
	SelectedRoute  *RouteInfo `json:"selectedRoute,omitempty"`
	Status         *string    `json:"status,omitempty" validate:"omitempty,oneof=active cancelled completed"`
}

// SearchRequest параметры поиска (все опциональны)
type SearchRequest struct {
	PickupCity     string
	DropoffCity    string
	Date           string
	PassengerCount *int
	MaxPrice       *int64
}

// Response модели

// RideResponse ответ с данными поездки
type RideResponse struct {
	ID             uuid.UUID  `json:"id"`
	UserID         uuid.UUID  `json:"userId"`
	PickupPoint    Location   `json:"pickupPoint"`
	DropoffPoint   Location   `json:"dropoffPoint"`
	Date           string     `json:"date"`
	Time           string     `json:"time"`
	PassengerCount int        `json:"passengerCount"` // свободные места
	PricePerSeat   int64      `json:"pricePerSeat"`
	SelectedRoute  *RouteInfo `json:"selectedRoute,omitempty"`
	Status         string     `json:"status"`
	PublishedAt    time.Time  `json:"publishedAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// RideListResponse ответ со списком поездок
type RideListResponse struct {
	Rides []RideResponse `json:"rides"`
}

// Методы конвертации

// FromDomainRide конвертирует domain модель в DTO
func FromDomainRide(r *domain.Ride) *RideResponse {
	if r == nil {
		return nil
	}

	resp := &RideResponse{
		ID:             r.ID,
		UserID:         r.UserID,
		PickupPoint:    fromLocation(r.PickupPoint),
		DropoffPoint:   fromLocation(r.DropoffPoint),
		Date:           r.Date.Format(domain.DateFormat),
		Time:           r.Time.String(),
		PassengerCount: r.PassengerCount,
		PricePerSeat:   r.PricePerSeat,
		Status:         string(r.Status),
		PublishedAt:    r.PublishedAt,
		UpdatedAt:      r.UpdatedAt,
	}
	if r.SelectedRoute != nil {
		resp.SelectedRoute = &RouteInfo{
			Distance: r.SelectedRoute.Distance,
			Duration: r.SelectedRoute.Duration,
			Toll:     r.SelectedRoute.Toll,
		}
	}
	return resp
}

// FromDomainRideList конвертирует список domain моделей в DTO
func FromDomainRideList(rides []*domain.Ride) *RideListResponse {
	resp := &RideListResponse{Rides: make([]RideResponse, 0, len(rides))}
	for _, ride := range rides {
		if r := FromDomainRide(ride); r != nil {
			resp.Rides = append(resp.Rides, *r)
		}
	}
	return resp
}

// ToDomainLocation конвертирует DTO точки в domain
func ToDomainLocation(l Location) domain.Location {
	return domain.Location{Name: l.Name, City: l.City, Address: l.Address}
}

// ToDomainRoute конвертирует DTO маршрута в domain
func ToDomainRoute(r *RouteInfo) *domain.RouteInfo {
	if r == nil {
		return nil
	}
	return &domain.RouteInfo{Distance: r.Distance, Duration: r.Duration, Toll: r.Toll}
}

func fromLocation(l domain.Location) Location {
	return Location{Name: l.Name, City: l.City, Address: l.Address}
}
