package list_rides

import (
	"net/http"

	"github.com/m04kA/SMC-RideBookingService/internal/api/handlers"
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

// Handle GET /api/v1/rides
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /rides - Failed to list rides: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /rides - Retrieved %d rides", len(result.Rides))
	handlers.RespondList(w, result.Rides, len(result.Rides))
}
