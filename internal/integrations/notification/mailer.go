package notification

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"strconv"
	"strings"
)

const confirmationSubject = "Your Ride Booking is Confirmed!"

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Ride Booking Confirmed!</h2>
  <p>Hello{{if .RiderName}} {{.RiderName}}{{end}},</p>
  <p>Your ride has been successfully booked. Here are your booking details:</p>
  <h3>Booking #{{.BookingID}}</h3>
  <p><strong>From:</strong> {{.PickupCity}}</p>
  <p><strong>To:</strong> {{.DropoffCity}}</p>
  <p><strong>Date:</strong> {{.Date}}</p>
  <p><strong>Time:</strong> {{.Time}}</p>
  <p><strong>Seats Booked:</strong> {{.Seats}}</p>
  <p><strong>Total Price:</strong> &#8377;{{.TotalPrice}}</p>
  <p>Thank you for choosing our service. Have a safe journey!</p>
  <p>Best regards,<br>RideShare Team</p>
</div>
`))

// SendMailFunc сигнатура net/smtp.SendMail
type SendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer отправляет HTML-письмо через SMTP
type SMTPMailer struct {
	addr     string
	auth     smtp.Auth
	from     string
	sendMail SendMailFunc
}

// NewSMTPMailer создает отправителя; при пустом username аутентификация не используется
func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPMailer{
		addr:     net.JoinHostPort(host, strconv.Itoa(port)),
		auth:     auth,
		from:     from,
		sendMail: smtp.SendMail,
	}
}

// SendBookingConfirmation рендерит письмо и отправляет его пассажиру
// net/smtp не принимает контекст, поэтому проверяется только отмена до отправки
func (m *SMTPMailer) SendBookingConfirmation(ctx context.Context, msg BookingConfirmation) error {
	if strings.TrimSpace(msg.RiderEmail) == "" {
		return ErrNoRecipient
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrSend, err)
	}

	body, err := RenderConfirmation(msg)
	if err != nil {
		return fmt.Errorf("%w: render: %v", ErrSend, err)
	}

	var raw bytes.Buffer
	fmt.Fprintf(&raw, "From: \"RideShare\" <%s>\r\n", m.from)
	fmt.Fprintf(&raw, "To: %s\r\n", msg.RiderEmail)
	fmt.Fprintf(&raw, "Subject: %s\r\n", confirmationSubject)
	raw.WriteString("MIME-Version: 1.0\r\n")
	raw.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	raw.WriteString(body)

	if err := m.sendMail(m.addr, m.auth, m.from, []string{msg.RiderEmail}, raw.Bytes()); err != nil {
		return fmt.Errorf("%w: %v", ErrSend, err)
	}
	return nil
}

// RenderConfirmation HTML-тело письма подтверждения
func RenderConfirmation(msg BookingConfirmation) (string, error) {
	var buf bytes.Buffer
	if err := confirmationTemplate.Execute(&buf, msg); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// LogMailer пишет подтверждение в лог вместо отправки (SMTP выключен)
type LogMailer struct {
	logger Logger
}

func NewLogMailer(logger Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendBookingConfirmation(_ context.Context, msg BookingConfirmation) error {
	if strings.TrimSpace(msg.RiderEmail) == "" {
		return ErrNoRecipient
	}
	m.logger.Info("Notification: [smtp disabled] booking confirmation to=%s booking=%s ride=%q seats=%d total=%d",
		msg.RiderEmail, msg.BookingID, msg.RideSummary, msg.Seats, msg.TotalPrice)
	return nil
}
