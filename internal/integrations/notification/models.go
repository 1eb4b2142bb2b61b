package notification

// TypeBookingConfirmation тип asynq-задачи подтверждения бронирования
const TypeBookingConfirmation = "notification:booking_confirmation"

// BookingConfirmation данные письма пассажиру о подтвержденном бронировании
// Сериализуется в payload задачи asynq
type BookingConfirmation struct {
	BookingID   string `json:"booking_id"`
	RideID      string `json:"ride_id"`
	RiderName   string `json:"rider_name"`
	RiderEmail  string `json:"rider_email"`
	PickupCity  string `json:"pickup_city"`
	DropoffCity string `json:"dropoff_city"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	RideSummary string `json:"ride_summary"`
	Seats       int    `json:"seats"`
	TotalPrice  int64  `json:"total_price"`
}
