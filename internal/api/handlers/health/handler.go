package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-RideBookingService/internal/api/handlers"
)

const pingTimeout = 2 * time.Second

// Pinger зависимость, доступность которой проверяет /health
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Logger interface {
	Warn(format string, v ...interface{})
}

type status struct {
	Status string `json:"status"`
}

// Handler отвечает 200, пока доступна база данных
type Handler struct {
	db     Pinger
	logger Logger
}

func NewHandler(db Pinger, logger Logger) *Handler {
	return &Handler{db: db, logger: logger}
}

// Handle GET /health
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Warn("GET /health - Database unavailable: %v", err)
		handlers.RespondJSON(w, http.StatusServiceUnavailable, status{Status: "unavailable"})
		return
	}

	handlers.RespondJSON(w, http.StatusOK, status{Status: "ok"})
}
