package notification

import (
	"context"

	"github.com/hibiken/asynq"
)

// Sender доставляет подтверждение пассажиру (SMTP, лог)
type Sender interface {
	SendBookingConfirmation(ctx context.Context, msg BookingConfirmation) error
}

// Enqueuer часть *asynq.Client, нужная диспетчеру
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// MetricsRecorder учитывает исход отправки уведомлений
type MetricsRecorder interface {
	RecordNotification(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
