package get_ride_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RideBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RideBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RideBookingService/internal/service/bookings"
)

const (
	msgInvalidRideID = "invalid ride ID"
	msgMissingUserID = "authorization required"
	msgRideNotFound  = "ride not found"
	msgForbidden     = "only the ride owner can view its bookings"
)

// Handler входящие бронирования поездки для водителя
type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/rides/{rideId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rideID, err := handlers.PathUUID(r, "rideId")
	if err != nil {
		h.logger.Warn("GET /rides/{id}/bookings - Invalid ride ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRideID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /rides/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.GetRideBookings(r.Context(), rideID, userID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrRideNotFound):
			h.logger.Warn("GET /rides/{id}/bookings - Ride not found: ride_id=%s", rideID)
			handlers.RespondNotFound(w, msgRideNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /rides/{id}/bookings - Access denied: ride_id=%s, user_id=%s", rideID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /rides/{id}/bookings - Failed to get bookings: ride_id=%s, error=%v", rideID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /rides/{id}/bookings - Retrieved %d bookings for ride_id=%s", len(result.Bookings), rideID)
	handlers.RespondList(w, result.Bookings, len(result.Bookings))
}
