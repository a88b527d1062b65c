package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Booking links a user to a package by a name snapshot taken at booking
// time. Renaming or deleting the package later leaves the row untouched.
type Booking struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	PackageName string    `json:"packageName"`
	BookingDate time.Time `json:"bookingDate"`
}

var ErrNotFound = errors.New("booking not found")

type CreateBookingRequest struct {
	PackageID string `json:"packageId" binding:"required,uuid"`
	// resolved identity, never taken from the payload
	UserID string `json:"-"`
}

func New(userID, packageName string) Booking {
	return Booking{
		ID:          uuid.NewString(),
		UserID:      userID,
		PackageName: packageName,
		BookingDate: time.Now().UTC(),
	}
}
