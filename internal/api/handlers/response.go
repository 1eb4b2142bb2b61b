package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"
)

// Коды ошибок, по которым клиент выбирает сообщение
const (
	CodeInvalidRequest  = "INVALID_REQUEST"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeCapacity        = "CAPACITY_EXCEEDED"
	CodeSelfBooking     = "SELF_BOOKING_FORBIDDEN"
	CodeDuplicate       = "DUPLICATE_BOOKING"
	CodeCannotCancel    = "CANNOT_CANCEL"
	CodeRideHasBookings = "RIDE_HAS_BOOKINGS"
	CodeRideBusy        = "RIDE_BUSY"
	CodeRateLimited     = "RATE_LIMITED"
	CodeInternal        = "INTERNAL"
)

const (
	msgInternal = "internal server error"

	maxBodyBytes = 1 << 20
)

var ErrEmptyBody = errors.New("request body is empty")

// SuccessResponse успешный ответ
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Count   *int        `json:"count,omitempty"`
}

// ErrorResponse ответ с ошибкой
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Code      string `json:"code"`
	Msg       string `json:"msg"`
	Available *int   `json:"available,omitempty"`
	Error     string `json:"error,omitempty"`
}

// DecodeJSON читает тело запроса в v
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return ErrEmptyBody
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return ErrEmptyBody
	}
	return json.Unmarshal(body, v)
}

// RespondJSON отправляет {success: true, data}
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	write(w, status, SuccessResponse{Success: true, Data: data})
}

// RespondList отправляет список с количеством элементов
func RespondList(w http.ResponseWriter, data interface{}, count int) {
	write(w, http.StatusOK, SuccessResponse{Success: true, Data: data, Count: &count})
}

// RespondError отправляет {success: false, code, msg}
func RespondError(w http.ResponseWriter, status int, code, msg string) {
	write(w, status, ErrorResponse{Code: code, Msg: msg})
}

// RespondErrorBody отправляет заранее собранный ErrorResponse
func RespondErrorBody(w http.ResponseWriter, status int, body ErrorResponse) {
	body.Success = false
	write(w, status, body)
}

func RespondBadRequest(w http.ResponseWriter, msg string) {
	RespondError(w, http.StatusBadRequest, CodeInvalidRequest, msg)
}

func RespondUnauthorized(w http.ResponseWriter, msg string) {
	RespondError(w, http.StatusUnauthorized, CodeUnauthorized, msg)
}

func RespondForbidden(w http.ResponseWriter, msg string) {
	RespondError(w, http.StatusForbidden, CodeForbidden, msg)
}

func RespondNotFound(w http.ResponseWriter, msg string) {
	RespondError(w, http.StatusNotFound, CodeNotFound, msg)
}

// RespondInternalError скрывает детали ошибки от клиента
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, CodeInternal, msgInternal)
}

// RespondInternalErrorDetail добавляет текст ошибки (только вне production)
func RespondInternalErrorDetail(w http.ResponseWriter, err error, expose bool) {
	body := ErrorResponse{Code: CodeInternal, Msg: msgInternal}
	if expose && err != nil {
		body.Error = err.Error()
	}
	write(w, http.StatusInternalServerError, body)
}

func write(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
