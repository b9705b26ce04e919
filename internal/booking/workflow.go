package booking

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Workflow drives a booking from raw form values to a persisted record in
// two steps: Prepare validates and assembles the intent for the customer to
// review, Confirm records it. Each call is stateless; nothing is held
// between the two beyond the intent the caller passes back.
type Workflow struct {
	catalog  *Catalog
	recorder *Recorder
	hours    Hours
	now      func() time.Time
}

func NewWorkflow(catalog *Catalog, recorder *Recorder, hours Hours) *Workflow {
	return &Workflow{
		catalog:  catalog,
		recorder: recorder,
		hours:    hours,
		now:      time.Now,
	}
}

// Prepare validates the form and returns the intent to show the customer.
// Checks short-circuit in order: payment method, required fields, slot
// rules, service lookup. An unknown service id is rejected outright rather
// than booked under a placeholder name.
func (w *Workflow) Prepare(ctx context.Context, form FormValues) (*BookingIntent, error) {
	ownerName := strings.TrimSpace(form.OwnerName)
	ownerEmail := strings.TrimSpace(form.OwnerEmail)
	petName := strings.TrimSpace(form.PetName)
	serviceID := strings.TrimSpace(form.ServiceID)
	date := strings.TrimSpace(form.Date)
	timeOfDay := strings.TrimSpace(form.Time)

	if strings.TrimSpace(form.PaymentMethod) == "" {
		return nil, ErrMissingPayment
	}
	if ownerName == "" || ownerEmail == "" || petName == "" || serviceID == "" || date == "" || timeOfDay == "" {
		return nil, ErrMissingFields
	}

	if err := w.hours.ValidateSlot(date, timeOfDay, w.now()); err != nil {
		return nil, err
	}

	svc, err := w.catalog.GetService(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	return &BookingIntent{
		OwnerName:     ownerName,
		OwnerEmail:    ownerEmail,
		PetName:       petName,
		PetType:       form.PetType,
		ServiceID:     serviceID,
		ServiceName:   svc.Name,
		Date:          date,
		Time:          timeOfDay,
		PaymentMethod: strings.TrimSpace(form.PaymentMethod),
		Notes:         strings.TrimSpace(form.Notes),
	}, nil
}

// Confirm records an intent the customer accepted. The slot is checked
// again: the customer may have sat on the review screen long enough for it
// to slip into the past.
func (w *Workflow) Confirm(ctx context.Context, intent *BookingIntent) (*BookingRecord, error) {
	if err := w.hours.ValidateSlot(intent.Date, intent.Time, w.now()); err != nil {
		return nil, err
	}

	rec, err := w.recorder.Record(ctx, intent)
	if err != nil {
		return nil, fmt.Errorf("record booking: %w", err)
	}
	return rec, nil
}

// ListBookings returns every persisted booking in append order.
func (w *Workflow) ListBookings(ctx context.Context) ([]BookingRecord, error) {
	return w.recorder.List(ctx)
}

// LastBooking returns the most recent record for the confirmation view, or
// nil when nothing has been booked yet.
func (w *Workflow) LastBooking(ctx context.Context) (*BookingRecord, error) {
	return w.recorder.Last(ctx)
}
