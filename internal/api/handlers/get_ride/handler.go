package get_ride

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RideBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RideBookingService/internal/service/rides"
)

const (
	msgInvalidRideID = "invalid ride ID"
	msgNotFound      = "ride not found"
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

// Handle GET /api/v1/rides/{rideId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rideID, err := handlers.PathUUID(r, "rideId")
	if err != nil {
		h.logger.Warn("GET /rides/{id} - Invalid ride ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRideID)
		return
	}

	ride, err := h.service.GetByID(r.Context(), rideID)
	if err != nil {
		if errors.Is(err, rides.ErrRideNotFound) {
			h.logger.Warn("GET /rides/{id} - Ride not found: ride_id=%s", rideID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /rides/{id} - Failed to get ride: ride_id=%s, error=%v", rideID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ride)
}
