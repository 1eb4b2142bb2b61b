package notification

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
)

// TaskHandler обрабатывает задачи TypeBookingConfirmation в воркере
type TaskHandler struct {
	sender  Sender
	logger  Logger
	metrics MetricsRecorder
}

func NewTaskHandler(sender Sender, logger Logger, metrics MetricsRecorder) *TaskHandler {
	return &TaskHandler{sender: sender, logger: logger, metrics: metrics}
}

// ProcessTask реализует asynq.Handler
// Поврежденный payload не ретраится (asynq.SkipRetry), ошибка отправки ретраится asynq
func (h *TaskHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var msg BookingConfirmation
	if err := json.Unmarshal(t.Payload(), &msg); err != nil {
		h.logger.Error("Notification: bad payload for %s: %v", t.Type(), err)
		h.record("dropped")
		return fmt.Errorf("%w: %v: %w", ErrDecodePayload, err, asynq.SkipRetry)
	}

	if err := h.sender.SendBookingConfirmation(ctx, msg); err != nil {
		h.logger.Warn("Notification: send failed booking=%s: %v", msg.BookingID, err)
		h.record("failed")
		return err
	}

	h.logger.Info("Notification: booking confirmation sent booking=%s to=%s", msg.BookingID, msg.RiderEmail)
	h.record("sent")
	return nil
}

// Register регистрирует обработчик в asynq.ServeMux
func (h *TaskHandler) Register(mux *asynq.ServeMux) {
	mux.Handle(TypeBookingConfirmation, h)
}

func (h *TaskHandler) record(result string) {
	if h.metrics != nil {
		h.metrics.RecordNotification(result)
	}
}
