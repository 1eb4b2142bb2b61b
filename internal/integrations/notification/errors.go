package notification

import "errors"

var (
	// ErrEncodePayload возвращается, если не удалось сериализовать payload задачи
	ErrEncodePayload = errors.New("notification: failed to encode payload")

	// ErrDecodePayload возвращается, если payload задачи поврежден
	ErrDecodePayload = errors.New("notification: failed to decode payload")

	// ErrEnqueue возвращается, если задачу не удалось поставить в очередь
	ErrEnqueue = errors.New("notification: failed to enqueue task")

	// ErrSend возвращается при ошибке доставки письма
	ErrSend = errors.New("notification: failed to send message")

	// ErrNoRecipient возвращается, если у пассажира нет email
	ErrNoRecipient = errors.New("notification: recipient email is empty")
)
