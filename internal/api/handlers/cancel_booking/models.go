package cancel_booking

import (
	"time"

	cancelBooking "github.com/m04kA/SMC-RideBookingService/internal/usecase/cancel_booking"
)

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	ID            string `json:"id"`
	RideID        string `json:"rideId"`
	Status        string `json:"status"`
	SeatsRestored int    `json:"seatsRestored"`
	CancelledAt   string `json:"cancelledAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	return &CancelBookingResponse{
		ID:            resp.ID.String(),
		RideID:        resp.RideID.String(),
		Status:        resp.Status,
		SeatsRestored: resp.SeatsRestored,
		CancelledAt:   resp.CancelledAt.Format(time.RFC3339),
	}
}
