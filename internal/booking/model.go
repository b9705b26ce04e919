package booking

import "time"

type Status string

const (
	// StatusPending is the initial status of every confirmed booking.
	// Later transitions (groomer accepts, customer cancels) happen outside
	// this service.
	StatusPending Status = "Pending"
)

// Service is a groomable offering. The catalog is seeded once and read-only
// afterwards.
type Service struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Duration string  `json:"duration"`
}

// User is the current session holder. Either field may be empty, not both.
type User struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// DisplayName is what greeting UIs show, preferring the name over the email.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// FormValues carries the raw booking form exactly as submitted, untrimmed.
type FormValues struct {
	OwnerName     string
	OwnerEmail    string
	PetName       string
	PetType       string
	ServiceID     string
	Date          string // calendar date, 2006-01-02
	Time          string // local time of day, 15:04
	PaymentMethod string
	Notes         string
}

// BookingIntent is a validated booking that the user has not confirmed yet.
// It lives only between Prepare and Confirm and is never persisted.
type BookingIntent struct {
	OwnerName     string `json:"ownerName"`
	OwnerEmail    string `json:"ownerEmail"`
	PetName       string `json:"petName"`
	PetType       string `json:"petType,omitempty"`
	ServiceID     string `json:"serviceId"`
	ServiceName   string `json:"serviceName"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	PaymentMethod string `json:"paymentMethod"`
	Notes         string `json:"notes,omitempty"`
}

// BookingRecord is a confirmed booking as persisted. Records are append-only
// and never mutated here.
type BookingRecord struct {
	BookingIntent
	ID        string    `json:"id"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}
