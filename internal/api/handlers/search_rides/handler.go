package search_rides

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RideBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RideBookingService/internal/service/rides"
)

const (
	msgInvalidQuery  = "invalid search parameters"
	msgInvalidFilter = "date must be YYYY-MM-DD, passengerCount and maxPrice must not be negative"
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

// Handle GET /api/v1/rides/search
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := parseQuery(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /rides/search - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.Search(r.Context(), req)
	if err != nil {
		if errors.Is(err, rides.ErrInvalidInput) {
			h.logger.Warn("GET /rides/search - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		h.logger.Error("GET /rides/search - Failed to search rides: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /rides/search - Found %d rides", len(result.Rides))
	handlers.RespondList(w, result.Rides, len(result.Rides))
}
