package delete_ride

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RideBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RideBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RideBookingService/internal/service/rides"
)

const (
	msgInvalidRideID   = "invalid ride ID"
	msgMissingUserID   = "authorization required"
	msgNotFound        = "ride not found"
	msgForbidden       = "only the ride owner can delete it"
	msgRideHasBookings = "ride has active bookings and cannot be deleted"
)

type Handler struct {
	service RideService
	logger  Logger
}

func NewHandler(service RideService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/rides/{rideId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rideID, err := handlers.PathUUID(r, "rideId")
	if err != nil {
		h.logger.Warn("DELETE /rides/{id} - Invalid ride ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRideID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /rides/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.Delete(r.Context(), rideID, userID); err != nil {
		switch {
		case errors.Is(err, rides.ErrRideNotFound):
			h.logger.Warn("DELETE /rides/{id} - Ride not found: ride_id=%s", rideID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rides.ErrAccessDenied):
			h.logger.Warn("DELETE /rides/{id} - Access denied: ride_id=%s, user_id=%s", rideID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rides.ErrRideHasBookings):
			h.logger.Warn("DELETE /rides/{id} - Ride has bookings: ride_id=%s", rideID)
			handlers.RespondError(w, http.StatusConflict, handlers.CodeRideHasBookings, msgRideHasBookings)

		default:
			h.logger.Error("DELETE /rides/{id} - Failed to delete ride: ride_id=%s, error=%v", rideID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /rides/{id} - Ride deleted successfully: ride_id=%s", rideID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
