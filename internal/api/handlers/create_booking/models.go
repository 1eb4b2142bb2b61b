package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RideBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-RideBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-RideBookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
// seats принимается числом или строкой
type CreateBookingRequest struct {
	RideID  string        `json:"rideId"`
	Seats   types.FlexInt `json:"seats"`
	Message string        `json:"message"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID             string `json:"id"`
	RideID         string `json:"rideId"`
	UserID         string `json:"userId"`
	Seats          int    `json:"seats"`
	TotalPrice     int64  `json:"totalPrice"`
	Status         string `json:"status"`
	Message        string `json:"message,omitempty"`
	IsRead         bool   `json:"isRead"`
	RideSummary    string `json:"rideSummary"`
	RideDate       string `json:"rideDate"`
	RideTime       string `json:"rideTime"`
	PricePerSeat   int64  `json:"pricePerSeat"`
	RemainingSeats int    `json:"remainingSeats"`
	CreatedAt      string `json:"createdAt"`
	UpdatedAt      string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(riderID uuid.UUID) *createBooking.Request {
	return &createBooking.Request{
		RideID:  r.RideID,
		RiderID: riderID,
		Seats:   r.Seats.Value,
		Message: r.Message,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:             resp.ID.String(),
		RideID:         resp.RideID.String(),
		UserID:         resp.UserID.String(),
		Seats:          resp.Seats,
		TotalPrice:     resp.TotalPrice,
		Status:         resp.Status,
		Message:        resp.Message,
		IsRead:         resp.IsRead,
		RideSummary:    resp.RideSummary,
		RideDate:       resp.RideDate.Format(domain.DateFormat),
		RideTime:       resp.RideTime.String(),
		PricePerSeat:   resp.PricePerSeat,
		RemainingSeats: resp.RemainingSeats,
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      resp.UpdatedAt.Format(time.RFC3339),
	}
}
