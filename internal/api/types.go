package api

import "github.com/pawsuite/grooming-booking/internal/booking"

type PrepareBookingRequest struct {
	OwnerName     string `json:"ownerName"`
	OwnerEmail    string `json:"ownerEmail"`
	PetName       string `json:"petName"`
	PetType       string `json:"petType"`
	ServiceID     string `json:"serviceId"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	PaymentMethod string `json:"paymentMethod"`
	Notes         string `json:"notes"`
}

// ConfirmBookingRequest is the intent exactly as Prepare returned it.
type ConfirmBookingRequest = booking.BookingIntent

type LoginRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type LoginResponse struct {
	User     booking.User `json:"user"`
	Redirect string       `json:"redirect,omitempty"`
}

type SessionResponse struct {
	User booking.User `json:"user"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
