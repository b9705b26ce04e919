package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pawsuite/grooming-booking/internal/storage"
)

// Recorder turns confirmed intents into persisted records. The clock and id
// generator are injectable so tests stay deterministic.
type Recorder struct {
	store storage.Store
	now   func() time.Time
	newID func() string
}

func NewRecorder(store storage.Store) *Recorder {
	return &Recorder{
		store: store,
		now:   time.Now,
		newID: NewBookingID,
	}
}

// NewBookingID returns "apt_" plus twelve random hex characters, unique
// among stored records for any realistic booking volume.
func NewBookingID() string {
	return "apt_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// Record appends a new BookingRecord derived from the intent and overwrites
// the last-booking slot the confirmation view reads. Store failures
// propagate to the caller; nothing is retried or dropped silently.
func (r *Recorder) Record(ctx context.Context, intent *BookingIntent) (*BookingRecord, error) {
	records, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	rec := BookingRecord{
		BookingIntent: *intent,
		ID:            r.newID(),
		Status:        StatusPending,
		CreatedAt:     r.now(),
	}
	records = append(records, rec)

	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode bookings: %w", err)
	}
	if err := r.store.Set(ctx, keyAppointments, data); err != nil {
		return nil, fmt.Errorf("write bookings: %w", err)
	}

	last, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode last booking: %w", err)
	}
	if err := r.store.Set(ctx, keyLastBooking, last); err != nil {
		return nil, fmt.Errorf("write last booking: %w", err)
	}

	return &rec, nil
}

// List returns all persisted bookings in append order. Absent or malformed
// data reads as an empty sequence.
func (r *Recorder) List(ctx context.Context) ([]BookingRecord, error) {
	raw, err := r.store.Get(ctx, keyAppointments)
	if errors.Is(err, storage.ErrNotFound) {
		return []BookingRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read bookings: %w", err)
	}

	var records []BookingRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return []BookingRecord{}, nil
	}
	return records, nil
}

// Last returns the most recently recorded booking, or nil when there is
// none yet.
func (r *Recorder) Last(ctx context.Context) (*BookingRecord, error) {
	raw, err := r.store.Get(ctx, keyLastBooking)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read last booking: %w", err)
	}

	var rec BookingRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, nil
	}
	return &rec, nil
}
