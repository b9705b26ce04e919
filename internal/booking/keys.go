package booking

// Store keys. Every value is a JSON document.
const (
	keyServices     = "services"     // []Service
	keyCurrentUser  = "current_user" // User
	keyAppointments = "appointments" // []BookingRecord, append-only
	keyLastBooking  = "last_booking" // BookingRecord, last write wins
	keyAfterLogin   = "after_login"  // redirect target for the login flow
)
