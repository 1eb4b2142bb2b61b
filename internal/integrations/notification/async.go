package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
)

// AsyncDispatcher ставит подтверждение в очередь asynq, письмо отправляет воркер
type AsyncDispatcher struct {
	client   Enqueuer
	queue    string
	maxRetry int
	timeout  time.Duration
	logger   Logger
}

// NewAsyncDispatcher создает диспетчер поверх asynq-клиента
// timeout ограничивает обработку одной задачи в воркере
func NewAsyncDispatcher(client Enqueuer, queue string, maxRetry int, timeout time.Duration, logger Logger) *AsyncDispatcher {
	return &AsyncDispatcher{
		client:   client,
		queue:    queue,
		maxRetry: maxRetry,
		timeout:  timeout,
		logger:   logger,
	}
}

// NotifyBookingConfirmed ставит задачу TypeBookingConfirmation в очередь
func (d *AsyncDispatcher) NotifyBookingConfirmed(ctx context.Context, msg BookingConfirmation) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncodePayload, err)
	}

	task := asynq.NewTask(TypeBookingConfirmation, payload)
	info, err := d.client.EnqueueContext(ctx, task,
		asynq.Queue(d.queue),
		asynq.MaxRetry(d.maxRetry),
		asynq.Timeout(d.timeout),
	)
	if err != nil {
		return fmt.Errorf("%w: booking=%s: %v", ErrEnqueue, msg.BookingID, err)
	}

	d.logger.Info("Notification: enqueued booking confirmation booking=%s task=%s queue=%s",
		msg.BookingID, info.ID, info.Queue)
	return nil
}
