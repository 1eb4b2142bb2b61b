package domain

import (
	"time"

	"github.com/google/uuid"
)

// User профиль пользователя
type User struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Phone     string
	Bio       string
	Rating    float64
	RideCount int
	CreatedAt time.Time
}

// Contact снимок контактов для бронирования
func (u *User) Contact() ContactInfo {
	return ContactInfo{Name: u.Name, Phone: u.Phone, Email: u.Email}
}

// ProfileUpdate редактируемые пользователем поля профиля, nil не меняет поле
type ProfileUpdate struct {
	Name  *string
	Phone *string
	Bio   *string
}

// IsEmpty returns true if the update changes nothing
func (u ProfileUpdate) IsEmpty() bool {
	return u.Name == nil && u.Phone == nil && u.Bio == nil
}
