package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pawsuite/grooming-booking/internal/booking"
)

func listServicesHandler(catalog *booking.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		services, err := catalog.ListServices(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, services)
	}
}

func prepareBookingHandler(wf *booking.Workflow) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PrepareBookingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		intent, err := wf.Prepare(r.Context(), booking.FormValues{
			OwnerName:     req.OwnerName,
			OwnerEmail:    req.OwnerEmail,
			PetName:       req.PetName,
			PetType:       req.PetType,
			ServiceID:     req.ServiceID,
			Date:          req.Date,
			Time:          req.Time,
			PaymentMethod: req.PaymentMethod,
			Notes:         req.Notes,
		})
		if err != nil {
			handleBookingError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, intent)
	}
}

func confirmBookingHandler(wf *booking.Workflow) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var intent ConfirmBookingRequest
		if err := json.NewDecoder(r.Body).Decode(&intent); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		rec, err := wf.Confirm(r.Context(), &intent)
		if err != nil {
			handleBookingError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, rec)
	}
}

func listBookingsHandler(wf *booking.Workflow) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := wf.ListBookings(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, records)
	}
}

func lastBookingHandler(wf *booking.Workflow) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := wf.LastBooking(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}
		if rec == nil {
			writeError(w, http.StatusNotFound, "no_bookings", "nothing has been booked yet")
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

func loginHandler(sessions *booking.Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		user := booking.User{Name: req.Name, Email: req.Email}
		if err := sessions.Login(r.Context(), user); err != nil {
			if errors.Is(err, booking.ErrMissingFields) {
				writeError(w, http.StatusBadRequest, "missing_fields", "a name or email is required")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		redirect, err := sessions.ConsumeRedirect(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, LoginResponse{User: user, Redirect: redirect})
	}
}

func currentSessionHandler(sessions *booking.Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := sessions.CurrentUser(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}
		if user == nil {
			writeError(w, http.StatusNotFound, "not_logged_in", "no current session")
			return
		}
		writeJSON(w, http.StatusOK, SessionResponse{User: *user})
	}
}

func logoutHandler(sessions *booking.Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := sessions.Logout(r.Context()); err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleBookingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, booking.ErrMissingPayment):
		writeError(w, http.StatusBadRequest, "missing_payment", err.Error())
	case errors.Is(err, booking.ErrMissingFields):
		writeError(w, http.StatusBadRequest, "missing_fields", err.Error())
	case errors.Is(err, booking.ErrInvalidDateTime):
		writeError(w, http.StatusBadRequest, "invalid_datetime", err.Error())
	case errors.Is(err, booking.ErrPastDateTime):
		writeError(w, http.StatusBadRequest, "past_datetime", err.Error())
	case errors.Is(err, booking.ErrClosedDay):
		writeError(w, http.StatusBadRequest, "closed_day", err.Error())
	case errors.Is(err, booking.ErrOutsideHours):
		writeError(w, http.StatusBadRequest, "outside_hours", err.Error())
	case errors.Is(err, booking.ErrUnknownService):
		writeError(w, http.StatusNotFound, "unknown_service", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
