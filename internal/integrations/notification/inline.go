package notification

import (
	"context"
	"sync"
	"time"
)

// InlineDispatcher отправляет письмо в отдельной горутине процесса API
// Используется, когда Redis выключен. Отправка не зависит от контекста запроса
// и ограничена собственным таймаутом
type InlineDispatcher struct {
	sender  Sender
	timeout time.Duration
	logger  Logger
	metrics MetricsRecorder

	wg sync.WaitGroup
}

func NewInlineDispatcher(sender Sender, timeout time.Duration, logger Logger, metrics MetricsRecorder) *InlineDispatcher {
	return &InlineDispatcher{
		sender:  sender,
		timeout: timeout,
		logger:  logger,
		metrics: metrics,
	}
}

// NotifyBookingConfirmed запускает отправку и сразу возвращает nil
func (d *InlineDispatcher) NotifyBookingConfirmed(_ context.Context, msg BookingConfirmation) error {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.sender.SendBookingConfirmation(ctx, msg); err != nil {
			d.logger.Error("Notification: failed to send booking confirmation booking=%s: %v", msg.BookingID, err)
			d.record("failed")
			return
		}
		d.record("sent")
	}()
	return nil
}

// Wait дожидается завершения запущенных отправок (graceful shutdown)
func (d *InlineDispatcher) Wait() {
	d.wg.Wait()
}

func (d *InlineDispatcher) record(result string) {
	if d.metrics != nil {
		d.metrics.RecordNotification(result)
	}
}
