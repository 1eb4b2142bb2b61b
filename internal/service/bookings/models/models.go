package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RideBookingService/internal/domain"
)

// Response модели

// ContactInfo контакты пассажира на момент бронирования
type ContactInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email"`
}

// Location точка маршрута
type Location struct {
	Name    string `json:"name"`
	City    string `json:"city"`
	Address string `json:"address"`
}

// RideSummary минимальные данные поездки для списка бронирований
type RideSummary struct {
	ID           uuid.UUID `json:"id"`
	PickupPoint  Location  `json:"pickupPoint"`
	DropoffPoint Location  `json:"dropoffPoint"`
	Date         string    `json:"date"` // "2025-03-14"
	Time         string    `json:"time"` // "09:00"
	PricePerSeat int64     `json:"pricePerSeat"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          uuid.UUID    `json:"id"`
	RideID      uuid.UUID    `json:"rideId"`
	UserID      uuid.UUID    `json:"userId"`
	Seats       int          `json:"seats"`
	TotalPrice  int64        `json:"totalPrice"`
	Status      string       `json:"status"`
	ContactInfo ContactInfo  `json:"contactInfo"`
	Message     string       `json:"message,omitempty"`
	IsRead      bool         `json:"isRead"`
	Ride        *RideSummary `json:"ride,omitempty"`

	CancelledAt *string   `json:"cancelledAt,omitempty"` // ISO 8601 format
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:         b.ID,
		RideID:     b.RideID,
		UserID:     b.UserID,
		Seats:      b.Seats,
		TotalPrice: b.TotalPrice,
		Status:     string(b.Status),
		ContactInfo: ContactInfo{
			Name:  b.Contact.Name,
			Phone: b.Contact.Phone,
			Email: b.Contact.Email,
		},
		Message:   b.Message,
		IsRead:    b.IsRead,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingWithRide добавляет к бронированию сводку поездки
func FromDomainBookingWithRide(b *domain.BookingWithRide) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := FromDomainBooking(&b.Booking)
	resp.Ride = &RideSummary{
		ID:           b.Ride.ID,
		PickupPoint:  fromLocation(b.Ride.PickupPoint),
		DropoffPoint: fromLocation(b.Ride.DropoffPoint),
		Date:         b.Ride.Date.Format(domain.DateFormat),
		Time:         b.Ride.Time.String(),
		PricePerSeat: b.Ride.PricePerSeat,
	}
	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}
	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}
	return resp
}

// FromDomainBookingWithRideList то же для списка "мои бронирования"
func FromDomainBookingWithRideList(bookings []*domain.BookingWithRide) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}
	for _, booking := range bookings {
		if bookingResp := FromDomainBookingWithRide(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}
	return resp
}

func fromLocation(l domain.Location) Location {
	return Location{Name: l.Name, City: l.City, Address: l.Address}
}
